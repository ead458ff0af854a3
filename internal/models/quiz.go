package models

const (
	QuizMultipleChoice = "multiple_choice"
	QuizTrueFalse      = "true_false"
)

// QuizQuestion holds either a multiple choice item, where Correct is the
// option index, or a true/false item, where Correct is a bool.
type QuizQuestion struct {
	ID          FlexInt  `json:"id"`
	Question    string   `json:"question"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
	Correct     any      `json:"correct"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty,omitempty"`
}

type GenerateQuizRequest struct {
	VideoID    string `json:"video_id" validate:"required"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=50"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type QuizBatch struct {
	QuizQuestions []QuizQuestion `json:"quiz_questions"`
	Success       bool           `json:"success"`
	Status        string         `json:"status"`
}
