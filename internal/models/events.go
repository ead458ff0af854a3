package models

// WebSocket message types
const (
	EventStatusUpdate = "status_update"
	EventCompleted    = "completed"
	EventError        = "error"
)

type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type StatusUpdate struct {
	VideoID    string `json:"video_id"`
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	StepName   string `json:"step_name"`
}

type CompletedEvent struct {
	VideoID string `json:"video_id"`
	Tier    string `json:"tier"`
}

type ErrorEvent struct {
	VideoID      string `json:"video_id"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// API Error response
type APIError struct {
	Code              string            `json:"code"`
	Message           string            `json:"message"`
	Fields            map[string]string `json:"fields,omitempty"`
	RetryAfterSeconds int               `json:"retry_after_seconds,omitempty"`
	RequestID         string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type HealthResponse struct {
	Status    string           `json:"status"`
	AI        string           `json:"ai"`
	Providers []ProviderHealth `json:"providers"`
	Sessions  int              `json:"sessions"`

	// VideoSearch is false when roadmap and resource links cannot be found.
	VideoSearch bool `json:"video_search"`
}

type ProviderHealth struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}
