package validate

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svl-backend/internal/extract"
	"svl-backend/internal/models"
)

func cards(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = map[string]any{"term": fmt.Sprintf("Term %d", i), "definition": "A definition."}
	}
	return out
}

func questions(n int) []any {
	out := make([]any, n)
	for i := range out {
		q := map[string]any{"id": float64(i + 1), "question": fmt.Sprintf("Q%d?", i), "explanation": "Because."}
		if i%2 == 0 {
			q["type"] = "multiple_choice"
			q["options"] = []any{"a", "b", "c", "d"}
			q["correct"] = float64(0)
		} else {
			q["type"] = "true_false"
			q["correct"] = false
		}
		out[i] = q
	}
	return out
}

func points(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = fmt.Sprintf("Point %d", i)
	}
	return out
}

func validStudy() extract.Payload {
	return extract.Payload{
		"video_summary":        strings.Repeat("s", MinSummaryChars+1),
		"detailed_explanation": strings.Repeat("e", MinExplanationChars+1),
		"key_points":           points(MinKeyPoints),
		"flashcards":           cards(MinFlashcards),
		"quiz_questions":       questions(MinQuizQuestions),
	}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var rej *Rejection
	require.True(t, errors.As(err, &rej), "expected *Rejection, got %v", err)
	return rej.Reason
}

func TestStudyMaterialAcceptsAtThresholds(t *testing.T) {
	assert.NoError(t, Check(validStudy(), StudyMaterial))
}

func TestStudyMaterialRemovingAnyKeyRejects(t *testing.T) {
	for _, key := range studyKeys {
		t.Run(key, func(t *testing.T) {
			p := validStudy()
			delete(p, key)
			err := Check(p, StudyMaterial)
			require.Error(t, err)
			assert.Equal(t, MissingKey, reasonOf(t, err))
		})
	}
}

func TestStudyMaterialThresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(extract.Payload)
		reason Reason
	}{
		{"summary exactly 200", func(p extract.Payload) { p["video_summary"] = strings.Repeat("s", 200) }, BelowThreshold},
		{"explanation exactly 1500", func(p extract.Payload) { p["detailed_explanation"] = strings.Repeat("e", 1500) }, BelowThreshold},
		{"four key points", func(p extract.Payload) { p["key_points"] = points(4) }, BelowThreshold},
		{"nine flashcards", func(p extract.Payload) { p["flashcards"] = cards(9) }, BelowThreshold},
		{"seven quiz items", func(p extract.Payload) { p["quiz_questions"] = questions(7) }, BelowThreshold},
		{"key point object", func(p extract.Payload) {
			l := points(5)
			l[2] = map[string]any{"text": "x"}
			p["key_points"] = l
		}, MalformedItem},
		{"summary not a string", func(p extract.Payload) { p["video_summary"] = float64(3) }, MalformedItem},
		{"flashcards not a list", func(p extract.Payload) { p["flashcards"] = "none" }, MalformedItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validStudy()
			tt.mutate(p)
			assert.Equal(t, tt.reason, reasonOf(t, Check(p, StudyMaterial)))
		})
	}
}

func TestStudyMaterialCountsRunes(t *testing.T) {
	p := validStudy()
	// 201 two-byte runes is long enough; 101 would be 202 bytes but too short.
	p["video_summary"] = strings.Repeat("é", 201)
	assert.NoError(t, Check(p, StudyMaterial))
	p["video_summary"] = strings.Repeat("é", 101)
	assert.Error(t, Check(p, StudyMaterial))
}

func TestSimplifiedStudyMaterial(t *testing.T) {
	p := extract.Payload{
		"video_summary":        "short",
		"detailed_explanation": "short too",
		"key_points":           points(1),
		"flashcards":           cards(1),
		"quiz_questions":       questions(1),
	}
	assert.NoError(t, Check(p, SimplifiedStudyMaterial))
	assert.Error(t, Check(p, StudyMaterial))

	p["flashcards"] = []any{}
	assert.Equal(t, BelowThreshold, reasonOf(t, Check(p, SimplifiedStudyMaterial)))
}

func TestFlashcardBatch(t *testing.T) {
	assert.NoError(t, Check(extract.Payload{"flashcards": cards(1)}, FlashcardBatch))
	assert.Equal(t, MissingKey, reasonOf(t, Check(extract.Payload{"cards": cards(1)}, FlashcardBatch)))
	assert.Equal(t, BelowThreshold, reasonOf(t, Check(extract.Payload{"flashcards": []any{}}, FlashcardBatch)))
	assert.Equal(t, MalformedItem, reasonOf(t, Check(extract.Payload{
		"flashcards": []any{map[string]any{"term": "x", "definition": "  "}},
	}, FlashcardBatch)))
}

func TestQuizBatch(t *testing.T) {
	assert.NoError(t, Check(extract.Payload{"quiz_questions": questions(2)}, QuizBatch))

	for _, key := range []string{"question", "type", "correct", "explanation"} {
		t.Run("missing "+key, func(t *testing.T) {
			q := questions(1)
			delete(q[0].(map[string]any), key)
			assert.Equal(t, MalformedItem, reasonOf(t, Check(extract.Payload{"quiz_questions": q}, QuizBatch)))
		})
	}
}

func TestCheckNilPayload(t *testing.T) {
	assert.Equal(t, MissingKey, reasonOf(t, Check(nil, FlashcardBatch)))
}

func TestMindMap(t *testing.T) {
	good := extract.Payload{
		"central_topic": "Photosynthesis",
		"main_branches": []any{
			map[string]any{"id": "1", "label": "Fundamentals", "sub_nodes": []any{map[string]any{"id": "1.1", "label": "Light"}}},
		},
	}
	assert.NoError(t, Check(good, MindMap))

	bare := extract.Payload{
		"central_topic": "Photosynthesis",
		"main_branches": []any{map[string]any{"label": "Fundamentals", "sub_nodes": []any{}}},
	}
	assert.Equal(t, BelowThreshold, reasonOf(t, Check(bare, MindMap)))
}

func TestInfographic(t *testing.T) {
	good := extract.Payload{
		"title":          "Topic - Visual Summary",
		"key_statistics": []any{map[string]any{"label": "Speed", "value": "3e8 m/s"}},
		"process_flow":   []any{map[string]any{"step": float64(1), "title": "Start"}},
		"key_facts":      []any{"fact"},
	}
	assert.NoError(t, Check(good, Infographic))
	delete(good, "key_facts")
	assert.Equal(t, MissingKey, reasonOf(t, Check(good, Infographic)))
}

func TestCodeTree(t *testing.T) {
	assert.NoError(t, Check(extract.Payload{
		"topics":      []any{map[string]any{"id": float64(1), "title": "Intro"}, map[string]any{"id": "2", "title": "Vars"}},
		"connections": []any{map[string]any{"from": "1", "to": "2"}},
	}, CodeTree))
	assert.Equal(t, MalformedItem, reasonOf(t, Check(extract.Payload{
		"topics": []any{map[string]any{"title": "Intro"}},
	}, CodeTree)))
}

func TestCustomRoadmap(t *testing.T) {
	assert.NoError(t, Check(extract.Payload{
		"topics": []any{map[string]any{"name": "Basics", "levels": []any{map[string]any{"title": "Syntax"}}}},
	}, CustomRoadmap))
	assert.Equal(t, BelowThreshold, reasonOf(t, Check(extract.Payload{
		"topics": []any{map[string]any{"name": "Basics"}},
	}, CustomRoadmap)))
}

func TestPracticeResources(t *testing.T) {
	assert.NoError(t, Check(extract.Payload{"practice": []any{}}, PracticeResources))
	assert.Error(t, Check(extract.Payload{"description": "x"}, PracticeResources))
}

func TestRoadmapTopics(t *testing.T) {
	got, err := RoadmapTopics([]any{" Basics ", "", float64(3), "Advanced"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Basics", "Advanced"}, got)

	_, err = RoadmapTopics([]any{""})
	assert.Error(t, err)
}

func TestDedupFlashcards(t *testing.T) {
	in := []models.Flashcard{
		{Term: "Inertia", Definition: "first"},
		{Term: "  inertia ", Definition: "second"},
		{Term: "Mass", Definition: "m"},
		{Term: "", Definition: "blank term"},
		{Term: "Force", Definition: "f"},
	}

	got := DedupFlashcards(in, 10)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Definition)
	assert.Equal(t, "Mass", got[1].Term)
	assert.Equal(t, "Force", got[2].Term)

	assert.Len(t, DedupFlashcards(in, 2), 2)
	assert.Empty(t, DedupFlashcards(in, 0))
}

func TestDedupQuizRenumbers(t *testing.T) {
	in := []models.QuizQuestion{
		{ID: 9, Question: "What is X?", Difficulty: "hard"},
		{ID: 4, Question: "what is x?"},
		{ID: 7, Question: "Why Y?"},
		{ID: 2, Question: "How Z?"},
	}

	got := DedupQuiz(in, 2, "medium")
	require.Len(t, got, 2)
	assert.Equal(t, models.FlexInt(1), got[0].ID)
	assert.Equal(t, models.FlexInt(2), got[1].ID)
	assert.Equal(t, "hard", got[0].Difficulty)
	assert.Equal(t, "medium", got[1].Difficulty)
	assert.Equal(t, "Why Y?", got[1].Question)
}

func TestBatchStatus(t *testing.T) {
	assert.Equal(t, models.StatusSuccess, BatchStatus(5, 5))
	assert.Equal(t, models.StatusPartial, BatchStatus(3, 5))
}
