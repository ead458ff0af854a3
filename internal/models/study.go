package models

// Batch status values.
const (
	StatusSuccess  = "success"
	StatusPartial  = "partial"
	StatusFallback = "fallback"
)

// Generation tiers, most to least preferred.
const (
	TierRich       = "ai"
	TierSimplified = "ai_simplified"
	TierTemplate   = "template"
)

type ProcessVideoRequest struct {
	URL string `json:"url" validate:"required"`
}

// StudyContent is the generated part of a study bundle.
type StudyContent struct {
	VideoSummary        string         `json:"video_summary"`
	DetailedExplanation string         `json:"detailed_explanation"`
	KeyPoints           []string       `json:"key_points"`
	Flashcards          []Flashcard    `json:"flashcards"`
	QuizQuestions       []QuizQuestion `json:"quiz_questions"`
}

type StudyMaterial struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	Transcript string `json:"transcript"`
	StudyContent
	Tier string `json:"tier"`
}

type VideoRequest struct {
	VideoID string `json:"video_id" validate:"required"`
}

type MindMapNode struct {
	ID          FlexID `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type MindMapBranch struct {
	ID       FlexID        `json:"id"`
	Label    string        `json:"label"`
	Color    string        `json:"color,omitempty"`
	SubNodes []MindMapNode `json:"sub_nodes"`
}

type MindMap struct {
	CentralTopic string          `json:"central_topic"`
	MainBranches []MindMapBranch `json:"main_branches"`
}

type Statistic struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type ProcessStep struct {
	Step        FlexInt `json:"step"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon,omitempty"`
}

type TimelineEvent struct {
	Year  string `json:"year"`
	Event string `json:"event"`
}

type Application struct {
	Area   string `json:"area"`
	Usage  string `json:"usage"`
	Impact string `json:"impact,omitempty"`
	Icon   string `json:"icon,omitempty"`
}

type Infographic struct {
	Title         string          `json:"title"`
	KeyStatistics []Statistic     `json:"key_statistics"`
	ProcessFlow   []ProcessStep   `json:"process_flow"`
	KeyFacts      []string        `json:"key_facts"`
	Timeline      []TimelineEvent `json:"timeline"`
	Applications  []Application   `json:"applications"`
}
