package services

import (
	"context"
	"strings"
)

// topicKeywords maps title keywords to canonical topics. Order matters: the
// first keyword found in the title wins.
var topicKeywords = []struct {
	keyword string
	topic   string
}{
	{"lenz", "Lenz's Law"},
	{"fleming", "Fleming's Left Hand Rule"},
	{"thermodynamics", "Laws of Thermodynamics"},
	{"photosynthesis", "Photosynthesis"},
	{"mitosis", "Mitosis"},
	{"meiosis", "Meiosis"},
	{"zeroth", "Zeroth Law of Thermodynamics"},
}

const (
	minTopicChars   = 3
	maxTopicChars   = 100
	titleTopicChars = 50
)

func keywordTopic(title string) (string, bool) {
	lower := strings.ToLower(title)
	for _, k := range topicKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.topic, true
		}
	}
	return "", false
}

// cleanTopic trims the model's answer and strips surrounding quotes. It
// reports false when the answer is not a plausible topic name.
func cleanTopic(answer string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if n := len([]rune(answer)); n <= minTopicChars || n >= maxTopicChars {
		return "", false
	}
	topic := strings.TrimSpace(strings.Trim(answer, `"'`))
	if topic == "" {
		return "", false
	}
	return topic, true
}

// extractTopic names the subject of a video: a keyword match on the title,
// else the model's answer, else the start of the title.
func (s *StudyService) extractTopic(ctx context.Context, title, transcript string) string {
	if topic, ok := keywordTopic(title); ok {
		return topic
	}
	if topic, ok := cleanTopic(s.gen.text(ctx, buildTopicPrompt(title, transcript))); ok {
		return topic
	}
	return truncate(title, titleTopicChars)
}
