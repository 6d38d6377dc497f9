package entity

import (
	"bytes"
	"encoding/json"
)

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

type GenerateQuestionsRequest struct {
	UserID             string  `json:"userId"`
	DietaryPreferences *string `json:"dietaryPreferences,omitempty"`
	Allergies          *string `json:"allergies,omitempty"`
	HealthGoals        *string `json:"healthGoals,omitempty"`
}

type GenerateQuestionsResponse struct {
	SessionID string     `json:"sessionId"`
	Questions []Question `json:"questions"`
}

// AnswerInput is an answer as submitted; a nil Answer means the field was absent or null
type AnswerInput struct {
	QuestionID string  `json:"questionId"`
	Question   string  `json:"question,omitempty"`
	Answer     *string `json:"answer"`
}

type SubmitAnswersRequest struct {
	UserID          string        `json:"userId"`
	SessionID       string        `json:"sessionId"`
	Answers         []AnswerInput `json:"answers"`
	HabitBackground *string       `json:"habitBackground,omitempty"`

	// answersPresent distinguishes an absent answers field from an empty array
	answersPresent bool
}

func (r *SubmitAnswersRequest) UnmarshalJSON(data []byte) error {
	type alias SubmitAnswersRequest
	var raw struct {
		alias
		Answers json.RawMessage `json:"answers"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = SubmitAnswersRequest(raw.alias)
	r.Answers = nil
	r.answersPresent = len(raw.Answers) > 0 && string(raw.Answers) != "null"
	if !r.answersPresent {
		return nil
	}

	if err := json.Unmarshal(raw.Answers, &r.Answers); err != nil {
		r.Answers = nil
		if bytes.HasPrefix(bytes.TrimSpace(raw.Answers), []byte("[")) {
			return NewValidationError(ErrInvalidFormat, "Invalid value for field: answers")
		}
		// Not an array at all. Leave Answers empty so validation reports the shape.
	}

	return nil
}

// AnswersPresent reports whether the answers field was supplied
func (r *SubmitAnswersRequest) AnswersPresent() bool {
	return r.answersPresent || r.Answers != nil
}

type SummaryRequest struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

type SummaryResponse struct {
	UserID         string          `json:"userId"`
	SessionID      string          `json:"sessionId"`
	CookingProfile *CookingProfile `json:"cookingProfile"`
}

type LogEventRequest struct {
	EventType string         `json:"eventType"`
	UserID    string         `json:"userId"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProfileExport struct {
	Content       []byte
	ContentType   string
	FileExtension string
}
