package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"svl-backend/internal/config"
	"svl-backend/internal/database"
	"svl-backend/internal/handlers"
	"svl-backend/internal/llm"
	"svl-backend/internal/router"
	"svl-backend/internal/services"
	"svl-backend/internal/session"
	"svl-backend/internal/websocket"
)

const janitorInterval = time.Minute

// ProcessVideo walks the provider chain up to three times: topic
// extraction, then the rich and simplified generation tiers.
const (
	chainCallsPerRequest = 3
	writeSlack           = 10 * time.Second
)

// writeTimeout is long enough for a request that exhausts the chain on
// every call and still has to write the template answer.
func writeTimeout(chainBudget, overhead time.Duration) time.Duration {
	return chainCallsPerRequest*chainBudget + overhead
}

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting SVL backend", "env", cfg.Env, "port", cfg.Port)

	ctx := context.Background()

	// ──── Step 2: Build the AI fallback chain ────
	chain, closeAI, err := buildChain(ctx, cfg, logger)
	if err != nil {
		logger.Error("AI provider initialization failed", "error", err)
		os.Exit(1)
	}
	defer closeAI()
	if !chain.AnyConfigured() {
		logger.Warn("no AI provider has a key; every answer will come from templates")
	}

	// ──── Step 3: Optional Redis ────
	var (
		cooldown   session.Cooldown
		memCool    *session.MemoryCooldown
		pubsubConn *redis.Client
	)
	if cfg.RedisURL != "" {
		redisClients, err := database.NewRedisClients(cfg.RedisURL)
		if err != nil {
			logger.Error("Redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClients.Close()
		cooldown = session.NewRedisCooldown(redisClients.Cooldown, cfg.RateLimitWindow)
		pubsubConn = redisClients.PubSub
		logger.Info("Redis connected")
	} else {
		memCool = session.NewMemoryCooldown(cfg.RateLimitWindow, nil)
		cooldown = memCool
	}

	// ──── Step 4: Session store ────
	store := session.NewStore(cfg.SessionMaxVideos, cfg.SessionTTL, nil)
	if memCool != nil {
		store.StartJanitor(janitorInterval, memCool.Sweep)
	} else {
		store.StartJanitor(janitorInterval)
	}
	defer store.Stop()

	// ──── Step 5: YouTube ────
	youtubeService, err := services.NewYouTubeService(ctx, cfg.YouTubeAPIKey, logger)
	if err != nil {
		logger.Error("YouTube client initialization failed", "error", err)
		os.Exit(1)
	}
	if cfg.YouTubeAPIKey == "" {
		logger.Warn("YOUTUBE_API_KEY not set; roadmap and resource links will be empty")
	}

	// ──── Step 6: WebSocket hub ────
	wsHub := websocket.NewHub(pubsubConn, logger)

	// ──── Step 7: Services and handlers ────
	studyService := services.NewStudyService(chain, youtubeService, store, cooldown, wsHub, logger)
	learnService := services.NewLearnService(chain, youtubeService, logger)
	codeService := services.NewCodeService(chain, youtubeService, logger)

	handler, apiLimiter := router.New(router.Handlers{
		Study:  handlers.NewStudyHandler(studyService),
		Learn:  handlers.NewLearnHandler(learnService),
		Code:   handlers.NewCodeHandler(codeService),
		Health: handlers.NewHealthHandler(chain, studyService, youtubeService),
		Hub:    wsHub,
	}, cfg.FrontendURL, cfg.APIRateLimit)
	defer apiLimiter.Stop()
	logger.Debug("request budget", "chain", chain.Budget(), "write_timeout", writeTimeout(chain.Budget(), services.LookupBudget+writeSlack))

	// ──── Step 8: Start HTTP Server ────
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(chain.Budget(), services.LookupBudget+writeSlack),
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
		close(idle)
	}()

	logger.Info("SVL backend ready",
		"api", fmt.Sprintf("http://localhost:%s/api", cfg.Port),
		"ws", fmt.Sprintf("ws://localhost:%s/api/ws", cfg.Port))

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	<-idle
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// buildChain wires the providers in the configured order. The returned
// func closes the Gemini client.
func buildChain(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*llm.Chain, func(), error) {
	closeAI := func() {}
	links := make([]llm.Link, 0, len(cfg.ProviderOrder))

	for _, name := range cfg.ProviderOrder {
		var provider llm.Provider
		switch name {
		case "groq":
			provider = llm.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqModel, cfg.AITimeout)
		case "openai":
			provider = llm.NewOpenAIChatProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AITimeout)
		case "gemini":
			gemini, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return nil, closeAI, err
			}
			closeAI = func() {
				if err := gemini.Close(); err != nil {
					logger.Warn("closing Gemini client", "error", err)
				}
			}
			provider = gemini
		default:
			continue
		}

		links = append(links, llm.Link{
			Provider: provider,
			Policy:   llm.RetryPolicy{Attempts: cfg.AttemptsFor(name), Delay: cfg.AIRetryDelay},
			Timeout:  cfg.AITimeout,
		})
		logger.Info("AI provider registered", "provider", name, "configured", provider.Configured(), "attempts", cfg.AttemptsFor(name))
	}

	return llm.NewChain(logger, links...), closeAI, nil
}
