package onboarding

import (
	"context"

	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/pkg/formatter"
)

type QuestionGenerator interface {
	Generate(ctx context.Context, prefs entity.Preferences) ([]entity.Question, error)
}

type ProfileGenerator interface {
	Generate(ctx context.Context, pairs []entity.QAPair, habitBackground *string) (*entity.CookingProfile, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}

// Recorder receives business counters; *metrics.Metrics satisfies it
type Recorder interface {
	IncEvent(eventType string)
	IncSessionWrite(status string)
}
