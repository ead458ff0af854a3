package validate

import (
	"strings"

	"svl-backend/internal/models"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DedupFlashcards drops cards whose term repeats an earlier one, ignoring
// case and surrounding space, and keeps at most count cards. A shorter
// result is returned as is.
func DedupFlashcards(cards []models.Flashcard, count int) []models.Flashcard {
	seen := make(map[string]struct{}, len(cards))
	out := make([]models.Flashcard, 0, min(len(cards), max(count, 0)))
	for _, card := range cards {
		if len(out) >= count {
			break
		}
		key := normalize(card.Term)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, card)
	}
	return out
}

// DedupQuiz is DedupFlashcards keyed on the question text. Survivors are
// renumbered from 1 and get difficulty when they have none.
func DedupQuiz(questions []models.QuizQuestion, count int, difficulty string) []models.QuizQuestion {
	seen := make(map[string]struct{}, len(questions))
	out := make([]models.QuizQuestion, 0, min(len(questions), max(count, 0)))
	for _, q := range questions {
		if len(out) >= count {
			break
		}
		key := normalize(q.Question)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	for i := range out {
		out[i].ID = models.FlexInt(i + 1)
		if out[i].Difficulty == "" {
			out[i].Difficulty = difficulty
		}
	}
	return out
}

// BatchStatus labels a deduplicated batch against the requested size.
func BatchStatus(got, requested int) string {
	if got < requested {
		return models.StatusPartial
	}
	return models.StatusSuccess
}
