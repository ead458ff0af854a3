package services

import (
	"context"
	"fmt"
	"log/slog"

	"svl-backend/internal/models"
	"svl-backend/internal/session"
	"svl-backend/internal/templates"
	"svl-backend/internal/validate"
)

const (
	DefaultBatchCount = 5
	DefaultDifficulty = "medium"

	opFlashcards = "flashcards"
	opQuiz       = "quiz"

	defaultTopic = "this topic"
)

var processSteps = []string{
	"Fetching video details",
	"Fetching transcript",
	"Identifying topic",
	"Generating study materials",
}

// StudyService turns a YouTube video into study material and answers the
// follow-up requests for that video.
type StudyService struct {
	gen      generator
	videos   VideoSource
	store    *session.Store
	cooldown session.Cooldown
	events   Publisher
	logger   *slog.Logger
}

func NewStudyService(ai Completer, videos VideoSource, store *session.Store, cooldown session.Cooldown, events Publisher, logger *slog.Logger) *StudyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyService{
		gen:      newGenerator(ai, logger),
		videos:   videos,
		store:    store,
		cooldown: cooldown,
		events:   events,
		logger:   logger,
	}
}

func (s *StudyService) publish(ctx context.Context, videoID, msgType string, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, videoID, models.WSMessage{Type: msgType, Payload: payload})
}

func (s *StudyService) progress(ctx context.Context, videoID string, step int) {
	s.publish(ctx, videoID, models.EventStatusUpdate, models.StatusUpdate{
		VideoID:    videoID,
		Step:       step,
		TotalSteps: len(processSteps),
		StepName:   processSteps[step-1],
	})
}

// ProcessVideo builds the full study bundle for url and remembers the video
// for later calls. Generation never fails: the template is the last tier.
func (s *StudyService) ProcessVideo(ctx context.Context, url string) (*models.StudyMaterial, error) {
	videoID := ExtractVideoID(url)
	if videoID == "" {
		return nil, &ValidationError{Fields: map[string]string{"url": "Invalid YouTube URL"}}
	}

	s.progress(ctx, videoID, 1)
	title := s.videos.Title(ctx, videoID)

	s.progress(ctx, videoID, 2)
	transcript := s.videos.Transcript(ctx, videoID)

	s.progress(ctx, videoID, 3)
	topic := s.extractTopic(ctx, title, transcript)
	s.logger.Info("processing video", "video_id", videoID, "title", title, "topic", topic, "transcript_chars", len(transcript))

	s.progress(ctx, videoID, 4)
	content, tier, ok := generate[models.StudyContent](ctx, s.gen, "study_material",
		stage{tier: models.TierRich, prompt: buildStudyPrompt(topic, title, transcript), schema: validate.StudyMaterial},
		stage{tier: models.TierSimplified, prompt: buildSimplifiedStudyPrompt(topic), schema: validate.SimplifiedStudyMaterial},
	)
	if err := ctx.Err(); err != nil {
		// The caller went away; watchers still hear why nothing arrives.
		s.publish(context.WithoutCancel(ctx), videoID, models.EventError, models.ErrorEvent{
			VideoID:      videoID,
			ErrorCode:    "CANCELLED",
			ErrorMessage: "Processing was cancelled",
		})
		return nil, err
	}
	if !ok {
		content = templates.StudyContent(topic)
	}

	s.store.Put(session.VideoContext{
		VideoID:     videoID,
		Title:       title,
		Topic:       topic,
		Transcript:  transcript,
		Explanation: content.DetailedExplanation,
	})

	s.publish(ctx, videoID, models.EventCompleted, models.CompletedEvent{VideoID: videoID, Tier: tier})

	return &models.StudyMaterial{
		VideoID:      videoID,
		Title:        title,
		Topic:        topic,
		Transcript:   transcript,
		StudyContent: content,
		Tier:         tier,
	}, nil
}

func (s *StudyService) lookup(videoID string) (session.VideoContext, error) {
	vc, ok := s.store.Get(videoID)
	if !ok {
		return session.VideoContext{}, errVideoNotFound
	}
	return vc, nil
}

// admit applies the per-video cooldown for op. Cooldown backend errors are
// logged and the call goes through.
func (s *StudyService) admit(ctx context.Context, videoID, op string) error {
	if s.cooldown == nil {
		return nil
	}
	wait, err := s.cooldown.Allow(ctx, session.CooldownKey(videoID, op))
	if err != nil {
		s.logger.Error("cooldown check failed", "video_id", videoID, "op", op, "error", err)
		return nil
	}
	if wait > 0 {
		return newRateLimitError(wait)
	}
	return nil
}

// Chat answers a question about a processed video in a few sentences.
func (s *StudyService) Chat(ctx context.Context, videoID, message string) (string, error) {
	vc, err := s.lookup(videoID)
	if err != nil {
		return "", err
	}

	contextText := fmt.Sprintf("Teaching %s", vc.Topic)
	switch {
	case vc.Transcript != "":
		contextText = truncate(vc.Transcript, transcriptChatLimit)
	case vc.Explanation != "":
		contextText = truncate(vc.Explanation, transcriptChatLimit)
	}

	if reply := s.gen.text(ctx, buildChatPrompt(vc.Topic, contextText, message)); reply != "" {
		return reply, nil
	}
	return templates.TutorReply(vc.Topic), nil
}

type flashcardPayload struct {
	Flashcards []models.Flashcard `json:"flashcards"`
}

type quizPayload struct {
	QuizQuestions []models.QuizQuestion `json:"quiz_questions"`
}

// MoreFlashcards generates up to count new unique flashcards. The cooldown
// is checked before the video lookup.
func (s *StudyService) MoreFlashcards(ctx context.Context, videoID string, count int) (*models.FlashcardBatch, error) {
	if count <= 0 {
		count = DefaultBatchCount
	}
	if err := s.admit(ctx, videoID, opFlashcards); err != nil {
		return nil, err
	}
	vc, err := s.lookup(videoID)
	if err != nil {
		return nil, err
	}

	out, tier, ok := generate[flashcardPayload](ctx, s.gen, "flashcards",
		stage{tier: models.TierRich, prompt: buildFlashcardsPrompt(vc.Topic, vc.Transcript, count), schema: validate.FlashcardBatch},
		stage{tier: models.TierSimplified, prompt: buildSimplifiedFlashcardsPrompt(vc.Topic, count), schema: validate.FlashcardBatch},
	)
	if !ok {
		return &models.FlashcardBatch{
			Flashcards: templates.Flashcards(vc.Topic, count),
			Success:    false,
			Status:     models.StatusFallback,
		}, nil
	}

	cards := validate.DedupFlashcards(out.Flashcards, count)
	s.logger.Info("flashcards generated", "video_id", videoID, "tier", tier, "received", len(out.Flashcards), "returned", len(cards))
	return &models.FlashcardBatch{
		Flashcards: cards,
		Success:    true,
		Status:     validate.BatchStatus(len(cards), count),
	}, nil
}

// MoreQuiz generates up to count new unique quiz questions at difficulty.
func (s *StudyService) MoreQuiz(ctx context.Context, videoID string, count int, difficulty string) (*models.QuizBatch, error) {
	if count <= 0 {
		count = DefaultBatchCount
	}
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	if err := s.admit(ctx, videoID, opQuiz); err != nil {
		return nil, err
	}
	vc, err := s.lookup(videoID)
	if err != nil {
		return nil, err
	}

	out, tier, ok := generate[quizPayload](ctx, s.gen, "quiz",
		stage{tier: models.TierRich, prompt: buildQuizPrompt(vc.Topic, vc.Transcript, count, difficulty), schema: validate.QuizBatch},
		stage{tier: models.TierSimplified, prompt: buildSimplifiedQuizPrompt(vc.Topic, count, difficulty), schema: validate.QuizBatch},
	)
	if !ok {
		return &models.QuizBatch{
			QuizQuestions: templates.Quiz(vc.Topic, count, difficulty),
			Success:       false,
			Status:        models.StatusFallback,
		}, nil
	}

	questions := validate.DedupQuiz(out.QuizQuestions, count, difficulty)
	s.logger.Info("quiz generated", "video_id", videoID, "tier", tier, "received", len(out.QuizQuestions), "returned", len(questions))
	return &models.QuizBatch{
		QuizQuestions: questions,
		Success:       true,
		Status:        validate.BatchStatus(len(questions), count),
	}, nil
}

// ExplainFlashcard expands one flashcard into a markdown explanation. It
// works without a processed video, falling back to a generic topic.
func (s *StudyService) ExplainFlashcard(ctx context.Context, videoID, term, definition string) string {
	topic, transcript := defaultTopic, ""
	if vc, ok := s.store.Get(videoID); ok {
		topic, transcript = vc.Topic, vc.Transcript
	}

	prompt := buildExplainPrompt(term, definition, topic, contextOr(transcript, transcriptBatchLimit, topic))
	if reply := s.gen.text(ctx, prompt); reply != "" {
		return reply
	}
	return templates.FlashcardExplanation(term, definition, topic)
}

func (s *StudyService) MindMap(ctx context.Context, videoID string) (*models.MindMap, error) {
	vc, err := s.lookup(videoID)
	if err != nil {
		return nil, err
	}

	m, _, ok := generate[models.MindMap](ctx, s.gen, "mindmap",
		stage{tier: models.TierRich, prompt: buildMindMapPrompt(vc.Topic, vc.Transcript), schema: validate.MindMap},
		stage{tier: models.TierSimplified, prompt: buildSimplifiedMindMapPrompt(vc.Topic), schema: validate.MindMap},
	)
	if !ok {
		m = templates.MindMap(vc.Topic)
	}
	return &m, nil
}

func (s *StudyService) Infographic(ctx context.Context, videoID string) (*models.Infographic, error) {
	vc, err := s.lookup(videoID)
	if err != nil {
		return nil, err
	}

	info, _, ok := generate[models.Infographic](ctx, s.gen, "infographic",
		stage{tier: models.TierRich, prompt: buildInfographicPrompt(vc.Topic, vc.Transcript), schema: validate.Infographic},
		stage{tier: models.TierSimplified, prompt: buildSimplifiedInfographicPrompt(vc.Topic), schema: validate.Infographic},
	)
	if !ok {
		info = templates.Infographic(vc.Topic)
	}
	return &info, nil
}

// Sessions is the number of videos currently remembered.
func (s *StudyService) Sessions() int {
	return s.store.Len()
}
