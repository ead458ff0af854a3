package handlers

import (
	"net/http"
	"strings"

	"svl-backend/internal/llm"
	"svl-backend/internal/models"
)

// ProviderReporter lists the configured providers in fallback order.
type ProviderReporter interface {
	Status() []llm.ProviderStatus
}

// SessionCounter reports how many videos are remembered.
type SessionCounter interface {
	Sessions() int
}

// SearchReporter reports whether roadmap and resource video search can run.
type SearchReporter interface {
	SearchConfigured() bool
}

var providerLabels = map[string]string{
	"groq":   "Groq",
	"openai": "OpenAI",
	"gemini": "Gemini",
}

type HealthHandler struct {
	providers ProviderReporter
	sessions  SessionCounter
	search    SearchReporter
}

// NewHealthHandler builds the health endpoint. sessions and search may be nil.
func NewHealthHandler(providers ProviderReporter, sessions SessionCounter, search SearchReporter) *HealthHandler {
	return &HealthHandler{providers: providers, sessions: sessions, search: search}
}

// Health reports provider configuration. The status is "degraded" when no
// provider has a credential.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	statuses := h.providers.Status()
	resp := models.HealthResponse{
		Status:    "healthy",
		Providers: make([]models.ProviderHealth, 0, len(statuses)),
	}

	labels := make([]string, 0, len(statuses))
	configured := false
	for _, s := range statuses {
		resp.Providers = append(resp.Providers, models.ProviderHealth{Name: s.Name, Configured: s.Configured})
		label, ok := providerLabels[s.Name]
		if !ok {
			label = s.Name
		}
		labels = append(labels, label)
		configured = configured || s.Configured
	}
	resp.AI = "Multi-AI (" + strings.Join(labels, "/") + ")"
	if !configured {
		resp.Status = "degraded"
	}
	if h.sessions != nil {
		resp.Sessions = h.sessions.Sessions()
	}
	if h.search != nil {
		resp.VideoSearch = h.search.SearchConfigured()
	}

	writeJSON(w, http.StatusOK, resp)
}

// Root is the service banner.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "SVL Backend Running"})
}
