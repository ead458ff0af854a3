package models

// ChatRequest is a tutoring question about a processed video.
type ChatRequest struct {
	VideoID string `json:"video_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// LearnChatRequest is a free-standing question. Context is an optional hint
// from the client, such as the roadmap topic being studied.
type LearnChatRequest struct {
	Message string `json:"message" validate:"required"`
	Context string `json:"context"`
}

// ChatResponse is the reply from the AI tutor.
type ChatResponse struct {
	Response string `json:"response"`
}
