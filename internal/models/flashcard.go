package models

type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Difficulty string `json:"difficulty,omitempty"` // "beginner" | "intermediate" | "advanced"
}

type GenerateFlashcardsRequest struct {
	VideoID string `json:"video_id" validate:"required"`
	Count   int    `json:"count" validate:"omitempty,min=1,max=50"`
}

// FlashcardBatch is the response of an incremental flashcard request.
// Success is false only when the deterministic template was used.
type FlashcardBatch struct {
	Flashcards []Flashcard `json:"flashcards"`
	Success    bool        `json:"success"`
	Status     string      `json:"status"`
}

type ExplainFlashcardRequest struct {
	VideoID    string `json:"video_id"`
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition"`
}

type ExplanationResponse struct {
	Explanation string `json:"explanation"`
}
