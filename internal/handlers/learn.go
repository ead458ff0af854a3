package handlers

import (
	"net/http"

	"svl-backend/internal/models"
	"svl-backend/internal/services"
)

type LearnHandler struct {
	learn *services.LearnService
}

func NewLearnHandler(learn *services.LearnService) *LearnHandler {
	return &LearnHandler{learn: learn}
}

func (h *LearnHandler) Roadmap(w http.ResponseWriter, r *http.Request) {
	var req models.LearnRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.learn.Roadmap(r.Context(), req.Topic))
}

func (h *LearnHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.LearnChatRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, models.ChatResponse{Response: h.learn.Chat(r.Context(), req.Message, req.Context)})
}

func (h *LearnHandler) Summary(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"video_id": "is required"}, r))
		return
	}

	summary, err := h.learn.Summary(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SummaryResponse{Summary: summary})
}
