package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"svl-backend/internal/handlers"
	"svl-backend/internal/middleware"
	"svl-backend/internal/websocket"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Study  *handlers.StudyHandler
	Learn  *handlers.LearnHandler
	Code   *handlers.CodeHandler
	Health *handlers.HealthHandler
	Hub    *websocket.Hub
}

// New builds the HTTP routes. The returned limiter must be stopped on
// shutdown.
func New(h Handlers, frontendURL string, apiRateLimit int) (http.Handler, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware. RealIP runs first so the logger and the rate
	// limiter see the client address rather than the proxy's.
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	apiLimiter := middleware.NewRateLimiter(apiRateLimit, time.Minute)

	r.Get("/", h.Health.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/ws", h.Hub.HandleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(apiLimiter.Middleware)

			// ──── Video study ────
			r.Post("/process-video", h.Study.ProcessVideo)
			r.Post("/chat", h.Study.Chat)
			r.Post("/generate-flashcards", h.Study.GenerateFlashcards)
			r.Post("/generate-quiz", h.Study.GenerateQuiz)
			r.Post("/explain-flashcard", h.Study.ExplainFlashcard)
			r.Post("/generate-mindmap", h.Study.MindMap)
			r.Post("/generate-infographic", h.Study.Infographic)

			// ──── Topic learning ────
			r.Route("/learn", func(r chi.Router) {
				r.Post("/generate-roadmap", h.Learn.Roadmap)
				r.Post("/chat", h.Learn.Chat)
				r.Get("/summary", h.Learn.Summary)
			})

			// ──── Coding ────
			r.Route("/code", func(r chi.Router) {
				r.Post("/generate-tree", h.Code.Tree)
				r.Post("/get-resources", h.Code.Resources)
				r.Post("/chat", h.Code.Chat)
				r.Post("/generate-custom-roadmap", h.Code.CustomRoadmap)
			})
		})
	})

	return r, apiLimiter
}
