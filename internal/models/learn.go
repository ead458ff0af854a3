package models

type LearnRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// RoadmapEntry is one step of a learning roadmap with up to four video links.
type RoadmapEntry struct {
	Index int      `json:"index"`
	Topic string   `json:"topic"`
	Links []string `json:"links"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type CodeTreeRequest struct {
	Language string `json:"language" validate:"required"`
}

type CodeTopic struct {
	ID    FlexID  `json:"id"`
	Title string  `json:"title"`
	Level string  `json:"level"` // "beginner" | "intermediate" | "advanced"
	Row   FlexInt `json:"row"`
	Col   FlexInt `json:"col"`
}

type CodeConnection struct {
	From FlexID `json:"from"`
	To   FlexID `json:"to"`
}

type CodeTree struct {
	Topics      []CodeTopic      `json:"topics"`
	Connections []CodeConnection `json:"connections"`
}

type CodeResourcesRequest struct {
	Language string `json:"language" validate:"required"`
	Topic    string `json:"topic" validate:"required"`
}

type PracticeSite struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type CodeResources struct {
	Videos      []VideoResult  `json:"videos"`
	Practice    []PracticeSite `json:"practice"`
	Description string         `json:"description"`
}

type CodeChatRequest struct {
	Language string `json:"language" validate:"required"`
	Topic    string `json:"topic"`
	Message  string `json:"message" validate:"required"`
}

type CustomRoadmapRequest struct {
	Language string `json:"language" validate:"required"`
}

type RoadmapLevel struct {
	ID       FlexID   `json:"id"`
	Title    string   `json:"title"`
	Videos   []string `json:"videos"`
	Practice []string `json:"practice"`
	Learning []string `json:"learning"`
}

type RoadmapTopic struct {
	ID     FlexID         `json:"id"`
	Name   string         `json:"name"`
	Levels []RoadmapLevel `json:"levels"`
}

type CustomRoadmap struct {
	IconURL string         `json:"iconUrl"`
	Color   string         `json:"color"`
	Topics  []RoadmapTopic `json:"topics"`
}
