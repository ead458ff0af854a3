package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"svl-backend/internal/extract"
	"svl-backend/internal/models"
	"svl-backend/internal/templates"
	"svl-backend/internal/validate"
)

const (
	roadmapLinksPerTopic = 4
	roadmapSearchWorkers = 4
)

// LearnService serves the topic-driven learning pages, which work without a
// processed video.
type LearnService struct {
	gen    generator
	videos VideoSource
	logger *slog.Logger
}

func NewLearnService(ai Completer, videos VideoSource, logger *slog.Logger) *LearnService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LearnService{gen: newGenerator(ai, logger), videos: videos, logger: logger}
}

// roadmapTopics asks for an ordered topic list, falling back to the
// generic outline.
func (s *LearnService) roadmapTopics(ctx context.Context, topic string) []string {
	answer := s.gen.text(ctx, buildRoadmapPrompt(topic))
	if answer == "" {
		return templates.RoadmapTopics(topic)
	}
	items, err := extract.Array(answer)
	if err != nil {
		s.logger.Warn("roadmap answer unusable", "topic", topic, "error", err)
		return templates.RoadmapTopics(topic)
	}
	names, err := validate.RoadmapTopics(items)
	if err != nil {
		s.logger.Warn("roadmap answer rejected", "topic", topic, "error", err)
		return templates.RoadmapTopics(topic)
	}
	return names
}

// Roadmap returns an ordered list of topics with up to four video links
// each. A failed search leaves that entry without links.
func (s *LearnService) Roadmap(ctx context.Context, topic string) []models.RoadmapEntry {
	names := s.roadmapTopics(ctx, topic)
	entries := make([]models.RoadmapEntry, len(names))

	var g errgroup.Group
	g.SetLimit(roadmapSearchWorkers)
	for i, name := range names {
		entries[i] = models.RoadmapEntry{Index: i, Topic: name, Links: []string{}}
		g.Go(func() error {
			results, err := s.videos.Search(ctx, name, roadmapLinksPerTopic)
			if err != nil {
				s.logger.Warn("roadmap search failed", "topic", name, "error", err)
				return nil
			}
			for _, r := range results {
				if len(entries[i].Links) == roadmapLinksPerTopic {
					break
				}
				entries[i].Links = append(entries[i].Links, r.URL)
			}
			return nil
		})
	}
	_ = g.Wait()

	return entries
}

// Chat answers a free-standing question. hint, when set, names what the
// student is studying.
func (s *LearnService) Chat(ctx context.Context, message, hint string) string {
	if reply := s.gen.text(ctx, buildLearnChatPrompt(message, hint)); reply != "" {
		return reply
	}
	return templates.LearnReply()
}

// Summary summarizes any video by id. It does not need a processed video
// but does need a transcript.
func (s *LearnService) Summary(ctx context.Context, videoID string) (string, error) {
	transcript := s.videos.Transcript(ctx, videoID)
	if transcript == "" {
		return "", &NotFoundError{Message: "No transcript available"}
	}
	if summary := s.gen.text(ctx, buildSummaryPrompt(transcript)); summary != "" {
		return summary, nil
	}
	return templates.SummaryUnavailable, nil
}
