package handlers

import (
	"encoding/json"
	"net/http"

	"nursethink/logger"
	"nursethink/models"
	"nursethink/services"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	service *services.CoachService
	log     *logger.Logger
}

func NewChatHandler(service *services.CoachService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{service: service, log: log}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sessions/{id}/chat", h.GetTranscript).Methods("GET")
	router.HandleFunc("/sessions/{id}/chat", h.SendMessage).Methods("POST")
	router.HandleFunc("/sessions/{id}/chat", h.ClearTranscript).Methods("DELETE")
}

func (h *ChatHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	turns, err := h.service.ChatTranscript(mux.Vars(r)["id"])
	if err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}
	if turns == nil {
		turns = []models.ChatTurn{}
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{"transcript": turns})
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("Failed to decode chat request JSON", "error", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	resp, err := h.service.SendChat(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, resp)
}

func (h *ChatHandler) ClearTranscript(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearChat(mux.Vars(r)["id"]); err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *ChatHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
