package handlers

import (
	"net/http"

	"svl-backend/internal/models"
	"svl-backend/internal/services"
)

type StudyHandler struct {
	study *services.StudyService
}

func NewStudyHandler(study *services.StudyService) *StudyHandler {
	return &StudyHandler{study: study}
}

// ProcessVideo handles POST /api/process-video.
func (h *StudyHandler) ProcessVideo(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessVideoRequest
	if !decode(w, r, &req) {
		return
	}

	material, err := h.study.ProcessVideo(r.Context(), req.URL)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, material)
}

// Chat handles POST /api/chat.
func (h *StudyHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decode(w, r, &req) {
		return
	}

	reply, err := h.study.Chat(r.Context(), req.VideoID, req.Message)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

// GenerateFlashcards handles POST /api/generate-flashcards.
func (h *StudyHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateFlashcardsRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Count == 0 {
		req.Count = services.DefaultBatchCount
	}

	batch, err := h.study.MoreFlashcards(r.Context(), req.VideoID, req.Count)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// GenerateQuiz handles POST /api/generate-quiz.
func (h *StudyHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Count == 0 {
		req.Count = services.DefaultBatchCount
	}
	if req.Difficulty == "" {
		req.Difficulty = services.DefaultDifficulty
	}

	batch, err := h.study.MoreQuiz(r.Context(), req.VideoID, req.Count, req.Difficulty)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// ExplainFlashcard handles POST /api/explain-flashcard.
func (h *StudyHandler) ExplainFlashcard(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainFlashcardRequest
	if !decode(w, r, &req) {
		return
	}

	explanation := h.study.ExplainFlashcard(r.Context(), req.VideoID, req.Term, req.Definition)
	writeJSON(w, http.StatusOK, models.ExplanationResponse{Explanation: explanation})
}

// MindMap handles POST /api/generate-mindmap.
func (h *StudyHandler) MindMap(w http.ResponseWriter, r *http.Request) {
	var req models.VideoRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.study.MindMap(r.Context(), req.VideoID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Infographic handles POST /api/generate-infographic.
func (h *StudyHandler) Infographic(w http.ResponseWriter, r *http.Request) {
	var req models.VideoRequest
	if !decode(w, r, &req) {
		return
	}

	info, err := h.study.Infographic(r.Context(), req.VideoID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
