package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/url"
	"strings"

	"svl-backend/internal/models"
	"svl-backend/internal/templates"
	"svl-backend/internal/validate"
)

const resourceVideoLimit = 4

// roadmapColors are the card gradients a custom roadmap can get.
var roadmapColors = []string{
	"from-purple-500 to-pink-500",
	"from-blue-500 to-cyan-500",
	"from-green-500 to-emerald-500",
	"from-red-500 to-orange-500",
	"from-indigo-500 to-purple-500",
}

// CodeService serves the programming-language learning pages.
type CodeService struct {
	gen    generator
	videos VideoSource
	logger *slog.Logger
}

func NewCodeService(ai Completer, videos VideoSource, logger *slog.Logger) *CodeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CodeService{gen: newGenerator(ai, logger), videos: videos, logger: logger}
}

// Tree lays out a learning path for language.
func (s *CodeService) Tree(ctx context.Context, language string) *models.CodeTree {
	tree, _, ok := generate[models.CodeTree](ctx, s.gen, "code_tree",
		stage{tier: models.TierRich, prompt: buildCodeTreePrompt(language), schema: validate.CodeTree},
		stage{tier: models.TierSimplified, prompt: buildSimplifiedCodeTreePrompt(language), schema: validate.CodeTree},
	)
	if !ok {
		tree = templates.CodeTree(language)
	}
	if tree.Connections == nil {
		tree.Connections = []models.CodeConnection{}
	}
	return &tree
}

type practicePayload struct {
	Practice    []models.PracticeSite `json:"practice"`
	Description string                `json:"description"`
}

// Resources finds tutorial videos and practice sites for one topic. Videos
// come from search and are kept when the model fails.
func (s *CodeService) Resources(ctx context.Context, language, topic string) *models.CodeResources {
	out := &models.CodeResources{Videos: []models.VideoResult{}, Practice: []models.PracticeSite{}}

	videos, err := s.videos.Search(ctx, fmt.Sprintf("%s %s tutorial", language, topic), resourceVideoLimit)
	if err != nil {
		s.logger.Warn("resource search failed", "language", language, "topic", topic, "error", err)
	} else if videos != nil {
		out.Videos = videos
	}

	practice, _, ok := generate[practicePayload](ctx, s.gen, "practice_resources",
		stage{tier: models.TierRich, prompt: buildPracticePrompt(language, topic), schema: validate.PracticeResources},
	)
	if !ok {
		out.Description = templates.ResourcesUnavailable
		return out
	}
	if practice.Practice != nil {
		out.Practice = practice.Practice
	}
	out.Description = practice.Description
	return out
}

func (s *CodeService) Chat(ctx context.Context, language, topic, message string) string {
	if reply := s.gen.text(ctx, buildCodeChatPrompt(language, topic, message)); reply != "" {
		return reply
	}
	return templates.CodeReply(language)
}

// CustomRoadmap builds a multi-topic roadmap card for any language.
func (s *CodeService) CustomRoadmap(ctx context.Context, language string) *models.CustomRoadmap {
	language = strings.TrimSpace(language)

	roadmap, _, ok := generate[models.CustomRoadmap](ctx, s.gen, "custom_roadmap",
		stage{tier: models.TierRich, prompt: buildCustomRoadmapPrompt(language), schema: validate.CustomRoadmap},
		stage{tier: models.TierSimplified, prompt: buildSimplifiedCustomRoadmapPrompt(language), schema: validate.CustomRoadmap},
	)
	if !ok {
		roadmap.Topics = templates.CustomRoadmapTopics(language)
	}
	roadmap.IconURL = DevIconURL(language)
	roadmap.Color = RoadmapColor(language)
	return &roadmap
}

// DevIconURL is the devicon SVG for language. Unknown languages yield a URL
// that 404s and the client shows its placeholder.
func DevIconURL(language string) string {
	name := url.PathEscape(strings.ToLower(strings.TrimSpace(language)))
	return fmt.Sprintf("https://cdn.jsdelivr.net/gh/devicons/devicon@latest/icons/%s/%s-original.svg", name, name)
}

// RoadmapColor picks a gradient from the language name. The same name
// always gets the same gradient.
func RoadmapColor(language string) string {
	h := fnv.New32a()
	h.Write([]byte(language))
	return roadmapColors[h.Sum32()%uint32(len(roadmapColors))]
}
