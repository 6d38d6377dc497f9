package onboarding

import (
	"context"

	"github.com/pantrypal/onboarding-backend/internal/entity"
)

type OnboardingUsecase interface {
	GenerateQuestions(ctx context.Context, req *entity.GenerateQuestionsRequest) (*entity.GenerateQuestionsResponse, error)
	SubmitAnswers(ctx context.Context, req *entity.SubmitAnswersRequest) (*entity.MessageResponse, error)
	GetSummary(ctx context.Context, req *entity.SummaryRequest) (*entity.SummaryResponse, error)
	ExportProfile(ctx context.Context, userID, sessionID string, format entity.ResultFormat) (*entity.ProfileExport, error)
	LogEvent(ctx context.Context, req *entity.LogEventRequest) (*entity.MessageResponse, error)
}
