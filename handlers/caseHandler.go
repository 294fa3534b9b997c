package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"nursethink/logger"
	"nursethink/models"
	"nursethink/services"

	"github.com/gorilla/mux"
)

type CaseHandler struct {
	service *services.CoachService
	log     *logger.Logger
}

func NewCaseHandler(service *services.CoachService, log *logger.Logger) *CaseHandler {
	return &CaseHandler{service: service, log: log}
}

func (h *CaseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sessions/{id}/cases", h.StartCase).Methods("POST")
	router.HandleFunc("/sessions/{id}/cases/current", h.CurrentCase).Methods("GET")
	router.HandleFunc("/sessions/{id}/cases/submit", h.SubmitStage).Methods("POST")
	router.HandleFunc("/sessions/{id}/cases/advance", h.AdvanceStage).Methods("POST")
}

func (h *CaseHandler) StartCase(w http.ResponseWriter, r *http.Request) {
	var req models.StartCaseRequest
	// An empty body starts a case on the default topic.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	view, err := h.service.StartCase(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, view)
}

func (h *CaseHandler) CurrentCase(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.CurrentCase(mux.Vars(r)["id"])
	if err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, view)
}

func (h *CaseHandler) SubmitStage(w http.ResponseWriter, r *http.Request) {
	var answer models.StageAnswer
	if err := json.NewDecoder(r.Body).Decode(&answer); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	view, err := h.service.SubmitStage(r.Context(), mux.Vars(r)["id"], answer)
	if err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, view)
}

func (h *CaseHandler) AdvanceStage(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.AdvanceStage(mux.Vars(r)["id"])
	if err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, view)
}

func (h *CaseHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *CaseHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
