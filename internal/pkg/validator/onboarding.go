package validator

import (
	"github.com/pantrypal/onboarding-backend/internal/entity"
)

// ValidateGenerateQuestions validates GenerateQuestionsRequest.
// Preference fields are optional.
func ValidateGenerateQuestions(req *entity.GenerateQuestionsRequest) error {
	if req.UserID == "" {
		return missingField("userId")
	}

	return nil
}

// ValidateSubmitAnswers validates answer submission
func ValidateSubmitAnswers(req *entity.SubmitAnswersRequest) error {
	if req.UserID == "" {
		return missingField("userId")
	}
	if req.SessionID == "" {
		return missingField("sessionId")
	}
	if !req.AnswersPresent() {
		return missingField("answers")
	}
	if len(req.Answers) == 0 {
		return entity.NewValidationError(entity.ErrInvalidFormat, "answers must be a non-empty array")
	}

	for _, answer := range req.Answers {
		if answer.QuestionID == "" {
			return entity.NewValidationError(entity.ErrMissingField, "Each answer must include questionId")
		}
		// An empty string is a valid answer, only absent or null is rejected
		if answer.Answer == nil {
			return entity.NewValidationError(entity.ErrMissingField, "Each answer must include answer")
		}
	}

	return nil
}

// ValidateLogEvent validates LogEventRequest
func ValidateLogEvent(req *entity.LogEventRequest) error {
	if req.EventType == "" {
		return missingField("eventType")
	}
	if req.UserID == "" {
		return missingField("userId")
	}

	return nil
}

// ValidateSummary validates SummaryRequest
func ValidateSummary(req *entity.SummaryRequest) error {
	if req.UserID == "" {
		return missingField("userId")
	}
	if req.SessionID == "" {
		return missingField("sessionId")
	}

	return nil
}
