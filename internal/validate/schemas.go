package validate

import (
	"strings"

	"svl-backend/internal/extract"
)

// Study material thresholds.
const (
	MinSummaryChars     = 200
	MinExplanationChars = 1500
	MinKeyPoints        = 5
	MinFlashcards       = 10
	MinQuizQuestions    = 8
)

var studyKeys = []string{"video_summary", "detailed_explanation", "key_points", "flashcards", "quiz_questions"}

// StudyMaterial accepts a full study bundle from the rich prompt.
func StudyMaterial(p extract.Payload) error {
	c := checker{schema: "study_material", p: p}
	if err := c.require(studyKeys...); err != nil {
		return err
	}
	if err := c.longerThan("video_summary", MinSummaryChars); err != nil {
		return err
	}
	if err := c.longerThan("detailed_explanation", MinExplanationChars); err != nil {
		return err
	}
	return c.studyLists(MinKeyPoints, MinFlashcards, MinQuizQuestions)
}

// SimplifiedStudyMaterial is the relaxed schema for the second tier: every
// section must be present and non-empty.
func SimplifiedStudyMaterial(p extract.Payload) error {
	c := checker{schema: "study_material_simplified", p: p}
	if err := c.require(studyKeys...); err != nil {
		return err
	}
	if err := c.longerThan("video_summary", 0); err != nil {
		return err
	}
	if err := c.longerThan("detailed_explanation", 0); err != nil {
		return err
	}
	return c.studyLists(1, 1, 1)
}

func (c checker) studyLists(keyPoints, flashcards, quiz int) error {
	points, err := c.atLeast("key_points", keyPoints)
	if err != nil {
		return err
	}
	if err := c.eachString("key_points", points); err != nil {
		return err
	}
	cards, err := c.atLeast("flashcards", flashcards)
	if err != nil {
		return err
	}
	if err := c.eachObject("flashcards", cards, "term", "definition"); err != nil {
		return err
	}
	questions, err := c.atLeast("quiz_questions", quiz)
	if err != nil {
		return err
	}
	return c.quizItems(questions)
}

// FlashcardBatch accepts at least one card with a term and a definition.
func FlashcardBatch(p extract.Payload) error {
	c := checker{schema: "flashcard_batch", p: p}
	if err := c.require("flashcards"); err != nil {
		return err
	}
	cards, err := c.atLeast("flashcards", 1)
	if err != nil {
		return err
	}
	return c.eachObject("flashcards", cards, "term", "definition")
}

// QuizBatch accepts at least one complete question.
func QuizBatch(p extract.Payload) error {
	c := checker{schema: "quiz_batch", p: p}
	if err := c.require("quiz_questions"); err != nil {
		return err
	}
	questions, err := c.atLeast("quiz_questions", 1)
	if err != nil {
		return err
	}
	return c.quizItems(questions)
}

// quizItems needs question, type, correct and explanation on every item.
// correct may legitimately be 0 or false, so only its presence is checked.
func (c checker) quizItems(items []any) error {
	if err := c.eachObject("quiz_questions", items, "question", "type", "explanation"); err != nil {
		return err
	}
	for i, item := range items {
		if v, ok := item.(map[string]any)["correct"]; !ok || v == nil {
			return c.reject(MalformedItem, "quiz_questions", "item %d has no correct answer", i)
		}
	}
	return nil
}

// MindMap needs a central topic and branches that each carry labelled nodes.
func MindMap(p extract.Payload) error {
	c := checker{schema: "mind_map", p: p}
	if err := c.require("central_topic", "main_branches"); err != nil {
		return err
	}
	if err := c.longerThan("central_topic", 0); err != nil {
		return err
	}
	branches, err := c.atLeast("main_branches", 1)
	if err != nil {
		return err
	}
	if err := c.eachObject("main_branches", branches, "label"); err != nil {
		return err
	}
	for i, b := range branches {
		nodes, ok := b.(map[string]any)["sub_nodes"].([]any)
		if !ok || len(nodes) == 0 {
			return c.reject(BelowThreshold, "main_branches", "branch %d has no sub nodes", i)
		}
		if err := c.eachObject("sub_nodes", nodes, "label"); err != nil {
			return err
		}
	}
	return nil
}

// Infographic needs a title and at least one statistic, step and fact.
func Infographic(p extract.Payload) error {
	c := checker{schema: "infographic", p: p}
	if err := c.require("title", "key_statistics", "process_flow", "key_facts"); err != nil {
		return err
	}
	if err := c.longerThan("title", 0); err != nil {
		return err
	}
	stats, err := c.atLeast("key_statistics", 1)
	if err != nil {
		return err
	}
	if err := c.eachObject("key_statistics", stats, "label"); err != nil {
		return err
	}
	steps, err := c.atLeast("process_flow", 1)
	if err != nil {
		return err
	}
	if err := c.eachObject("process_flow", steps, "title"); err != nil {
		return err
	}
	facts, err := c.atLeast("key_facts", 1)
	if err != nil {
		return err
	}
	return c.eachString("key_facts", facts)
}

// CodeTree needs topics that each carry an id and a title.
func CodeTree(p extract.Payload) error {
	c := checker{schema: "code_tree", p: p}
	if err := c.require("topics"); err != nil {
		return err
	}
	topics, err := c.atLeast("topics", 1)
	if err != nil {
		return err
	}
	if err := c.eachObject("topics", topics, "title"); err != nil {
		return err
	}
	for i, t := range topics {
		switch id := t.(map[string]any)["id"].(type) {
		case string:
			if strings.TrimSpace(id) == "" {
				return c.reject(MalformedItem, "topics", "item %d has empty id", i)
			}
		case float64:
		default:
			return c.reject(MalformedItem, "topics", "item %d has no id", i)
		}
	}
	if _, ok := p["connections"]; ok {
		if _, err := c.list("connections"); err != nil {
			return err
		}
	}
	return nil
}

// CustomRoadmap needs topics with a name and at least one titled level.
func CustomRoadmap(p extract.Payload) error {
	c := checker{schema: "custom_roadmap", p: p}
	if err := c.require("topics"); err != nil {
		return err
	}
	topics, err := c.atLeast("topics", 1)
	if err != nil {
		return err
	}
	if err := c.eachObject("topics", topics, "name"); err != nil {
		return err
	}
	for i, t := range topics {
		levels, ok := t.(map[string]any)["levels"].([]any)
		if !ok || len(levels) == 0 {
			return c.reject(BelowThreshold, "topics", "topic %d has no levels", i)
		}
		if err := c.eachObject("levels", levels, "title"); err != nil {
			return err
		}
	}
	return nil
}

// PracticeResources needs a practice list, which may be empty.
func PracticeResources(p extract.Payload) error {
	c := checker{schema: "practice_resources", p: p}
	if err := c.require("practice"); err != nil {
		return err
	}
	sites, err := c.list("practice")
	if err != nil {
		return err
	}
	return c.eachObject("practice", sites, "name", "url")
}

// RoadmapTopics accepts a list of topic names and returns the trimmed,
// non-empty ones. At least one is required.
func RoadmapTopics(items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	if len(out) == 0 {
		return nil, &Rejection{Schema: "roadmap", Reason: BelowThreshold, Field: "topics", Detail: "no topic names"}
	}
	return out, nil
}
