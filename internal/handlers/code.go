package handlers

import (
	"net/http"

	"svl-backend/internal/models"
	"svl-backend/internal/services"
)

type CodeHandler struct {
	code *services.CodeService
}

func NewCodeHandler(code *services.CodeService) *CodeHandler {
	return &CodeHandler{code: code}
}

func (h *CodeHandler) Tree(w http.ResponseWriter, r *http.Request) {
	var req models.CodeTreeRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.code.Tree(r.Context(), req.Language))
}

func (h *CodeHandler) Resources(w http.ResponseWriter, r *http.Request) {
	var req models.CodeResourcesRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.code.Resources(r.Context(), req.Language, req.Topic))
}

func (h *CodeHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.CodeChatRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, models.ChatResponse{Response: h.code.Chat(r.Context(), req.Language, req.Topic, req.Message)})
}

func (h *CodeHandler) CustomRoadmap(w http.ResponseWriter, r *http.Request) {
	var req models.CustomRoadmapRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.code.CustomRoadmap(r.Context(), req.Language))
}
