package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"nursethink/db"
	"nursethink/logger"
	"nursethink/models"
	"nursethink/services"
	"nursethink/services/extract"
	"nursethink/services/ngn"
	"nursethink/services/prompt"

	"github.com/gorilla/mux"
)

const maxUploadBytes = 20 << 20

type CoachHandler struct {
	service *services.CoachService
	log     *logger.Logger
}

func NewCoachHandler(service *services.CoachService, log *logger.Logger) *CoachHandler {
	return &CoachHandler{service: service, log: log}
}

func (h *CoachHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/templates", h.ListTemplates).Methods("GET")
	router.HandleFunc("/cases/schema", h.CaseSchema).Methods("GET")
	router.HandleFunc("/prompts", h.ComposePrompt).Methods("POST")
	router.HandleFunc("/notes/extract", h.ExtractNotes).Methods("POST")
	router.HandleFunc("/sessions", h.CreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", h.DeleteSession).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/generate", h.Generate).Methods("POST")
	router.HandleFunc("/sessions/{id}/attempts", h.ListAttempts).Methods("GET")
}

func (h *CoachHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, prompt.Templates)
}

func (h *CoachHandler) CaseSchema(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, ngn.CaseSchema())
}

func (h *CoachHandler) ComposePrompt(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	text, err := h.service.ComposePrompt(req)
	if err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{"prompt": text})
}

func (h *CoachHandler) ExtractNotes(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.log.Error("Failed to read uploaded notes", "filename", header.Filename, "error", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Could not read the uploaded file")
		return
	}

	text := extract.ExtractText(header.Filename, data)
	resp := map[string]any{
		"filename": header.Filename,
		"text":     text,
		"chars":    len(text),
	}
	if text == "" {
		resp["warning"] = "I couldn't extract text from that file. Try a .txt export or copy/paste notes."
	}

	h.log.Info("Successfully extracted notes", "filename", header.Filename, "chars", len(text))
	h.writeJSONResponse(w, http.StatusOK, resp)
}

func (h *CoachHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.service.Sessions().Create()
	h.writeJSONResponse(w, http.StatusCreated, map[string]any{
		"id":         session.ID,
		"created_at": session.CreatedAt,
	})
}

func (h *CoachHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Sessions().Delete(mux.Vars(r)["id"]); err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CoachHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Generate(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.writeErrorResponse(w, statusFor(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, resp)
}

func (h *CoachHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.service.Attempts(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.log.Error("Failed to list attempts", "error", err)
			h.writeErrorResponse(w, status, "Failed to retrieve attempts")
			return
		}
		h.writeErrorResponse(w, status, err.Error())
		return
	}
	if attempts == nil {
		attempts = []*db.StoredAttempt{}
	}

	h.writeJSONResponse(w, http.StatusOK, attempts)
}

func (h *CoachHandler) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*models.GenerateRequest, bool) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return nil, false
	}
	if err := req.Controls.Normalize(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}

func (h *CoachHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *CoachHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
