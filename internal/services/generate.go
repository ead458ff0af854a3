package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"svl-backend/internal/extract"
	"svl-backend/internal/llm"
	"svl-backend/internal/models"
	"svl-backend/internal/validate"
)

// Completer is the fallback chain as seen by the services.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) llm.Result
}

// VideoSource looks up everything the services need from YouTube. Every
// method degrades instead of failing: no transcript is "", an unknown
// title is a placeholder.
type VideoSource interface {
	Transcript(ctx context.Context, videoID string) string
	Title(ctx context.Context, videoID string) string
	Search(ctx context.Context, query string, limit int) ([]models.VideoResult, error)
}

// Publisher receives progress events for a video. A nil Publisher is
// allowed.
type Publisher interface {
	Publish(ctx context.Context, videoID string, msg models.WSMessage)
}

var errNoAnswer = errors.New("no provider produced an answer")

// stage is one tier of a structured generation.
type stage struct {
	tier   string
	prompt string
	schema validate.Schema
}

// generator runs prompts through the chain and turns the answers into
// validated values.
type generator struct {
	ai     Completer
	logger *slog.Logger
}

func newGenerator(ai Completer, logger *slog.Logger) generator {
	if logger == nil {
		logger = slog.Default()
	}
	return generator{ai: ai, logger: logger}
}

func (g generator) text(ctx context.Context, prompt string) string {
	return g.ai.Complete(ctx, llm.Request{Prompt: prompt}).Text
}

// structured extracts, validates and decodes one answer into out.
func (g generator) structured(ctx context.Context, prompt string, schema validate.Schema, out any) error {
	res := g.ai.Complete(ctx, llm.Request{Prompt: prompt})
	if !res.OK() {
		return errNoAnswer
	}
	p, err := extract.Object(res.Text)
	if err != nil {
		return fmt.Errorf("%s answer: %w", res.Provider, err)
	}
	if err := validate.Check(p, schema); err != nil {
		return fmt.Errorf("%s answer: %w", res.Provider, err)
	}
	return extract.Decode(p, out)
}

// generate tries each stage in order and returns the first value that
// passes its schema, with the tier that produced it. ok is false when every
// stage failed and the caller must use its template.
func generate[T any](ctx context.Context, g generator, kind string, stages ...stage) (T, string, bool) {
	for _, s := range stages {
		var out T
		err := g.structured(ctx, s.prompt, s.schema, &out)
		if err == nil {
			g.logger.Info("generated", "kind", kind, "tier", s.tier)
			return out, s.tier, true
		}

		var rej *validate.Rejection
		switch {
		case errors.As(err, &rej):
			g.logger.Warn("answer rejected", "kind", kind, "tier", s.tier, "reason", rej.Reason, "field", rej.Field, "detail", rej.Detail)
		default:
			g.logger.Warn("generation failed", "kind", kind, "tier", s.tier, "error", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	g.logger.Warn("using template", "kind", kind)
	var zero T
	return zero, models.TierTemplate, false
}
