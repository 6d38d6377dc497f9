package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/pkg/logger"
	"github.com/pantrypal/onboarding-backend/internal/pkg/validator"
	"github.com/pantrypal/onboarding-backend/internal/repository"
	"go.uber.org/zap"
)

const (
	MessageOnboardingCompleted = "Onboarding completed successfully"
	MessageEventLogged         = "Event logged successfully"
)

// OnboardingUsecase drives a session from question generation to profile summary
type OnboardingUsecase struct {
	sessionRepo       repository.SessionRepository
	questionGenerator QuestionGenerator
	profileGenerator  ProfileGenerator
	formatterFactory  FormatterFactory
	recorder          Recorder
	now               func() time.Time
	newID             func() string
}

// NewUsecase creates a new onboarding use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	questionGenerator QuestionGenerator,
	profileGenerator ProfileGenerator,
	formatterFactory FormatterFactory,
	recorder Recorder,
) *OnboardingUsecase {
	return &OnboardingUsecase{
		sessionRepo:       sessionRepo,
		questionGenerator: questionGenerator,
		profileGenerator:  profileGenerator,
		formatterFactory:  formatterFactory,
		recorder:          recorder,
		now:               func() time.Time { return time.Now().UTC() },
		newID:             func() string { return uuid.New().String() },
	}
}

// GenerateQuestions opens a new session with a freshly generated questionnaire
func (uc *OnboardingUsecase) GenerateQuestions(
	ctx context.Context,
	req *entity.GenerateQuestionsRequest,
) (*entity.GenerateQuestionsResponse, error) {
	if err := validator.ValidateGenerateQuestions(req); err != nil {
		return nil, err
	}

	prefs := entity.Preferences{
		DietaryPreferences: req.DietaryPreferences,
		Allergies:          req.Allergies,
		HealthGoals:        req.HealthGoals,
	}

	questions, err := uc.questionGenerator.Generate(ctx, prefs)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	now := uc.now()
	session := &entity.OnboardingSession{
		UserID:             req.UserID,
		SessionID:          uc.newID(),
		Status:             entity.SessionStatusQuestionsGenerated,
		DietaryPreferences: deref(prefs.DietaryPreferences),
		Allergies:          deref(prefs.Allergies),
		HealthGoals:        deref(prefs.HealthGoals),
		Questions:          questions,
		Answers:            []entity.Answer{},
		QAPairs:            []entity.QAPair{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	ctx = logger.WithSession(ctx, session.UserID, session.SessionID)

	if err := uc.sessionRepo.Put(ctx, session, 0); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	uc.recorder.IncSessionWrite(string(session.Status))

	ctxzap.Info(ctx, "onboarding questions generated", zap.Int("question_count", len(questions)))

	return &entity.GenerateQuestionsResponse{
		SessionID: session.SessionID,
		Questions: questions,
	}, nil
}

// SubmitAnswers records the user's answers and completes the session.
// An unknown session is not an error: answers are stored without question context.
func (uc *OnboardingUsecase) SubmitAnswers(
	ctx context.Context,
	req *entity.SubmitAnswersRequest,
) (*entity.MessageResponse, error) {
	if err := validator.ValidateSubmitAnswers(req); err != nil {
		return nil, err
	}

	ctx = logger.WithSession(ctx, req.UserID, req.SessionID)

	existing, err := uc.sessionRepo.Get(ctx, req.UserID, req.SessionID)
	if err != nil {
		if !errors.Is(err, entity.ErrSessionNotFound) {
			return nil, fmt.Errorf("get session: %w", err)
		}
		ctxzap.Warn(ctx, "answers submitted for unknown session, continuing without questions")
	}

	now := uc.now()
	answers := toAnswers(req.Answers)

	session := &entity.OnboardingSession{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Questions: []entity.Question{},
		CreatedAt: now,
	}
	expectedVersion := 0

	if existing != nil {
		if !existing.Status.CanMoveTo(entity.SessionStatusCompleted) {
			return nil, fmt.Errorf("%w: %s -> %s", entity.ErrInvalidSessionStatus, existing.Status, entity.SessionStatusCompleted)
		}
		session.DietaryPreferences = existing.DietaryPreferences
		session.Allergies = existing.Allergies
		session.HealthGoals = existing.HealthGoals
		session.CreatedAt = existing.CreatedAt
		if existing.Questions != nil {
			session.Questions = existing.Questions
		}
		expectedVersion = existing.Version
	}

	session.Status = entity.SessionStatusCompleted
	session.Answers = answers
	session.QAPairs = BuildQAPairs(session.Questions, answers)
	session.HabitBackground = req.HabitBackground
	session.UpdatedAt = now

	if err := uc.sessionRepo.Put(ctx, session, expectedVersion); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	uc.recorder.IncSessionWrite(string(session.Status))

	ctxzap.Info(ctx, "onboarding answers recorded",
		zap.Int("answer_count", len(answers)),
		zap.Bool("known_session", existing != nil),
	)

	return &entity.MessageResponse{Message: MessageOnboardingCompleted}, nil
}

// GetSummary derives a cooking profile from a completed session without persisting it
func (uc *OnboardingUsecase) GetSummary(
	ctx context.Context,
	req *entity.SummaryRequest,
) (*entity.SummaryResponse, error) {
	if err := validator.ValidateSummary(req); err != nil {
		return nil, err
	}

	ctx = logger.WithSession(ctx, req.UserID, req.SessionID)

	profile, err := uc.buildProfile(ctx, req.UserID, req.SessionID)
	if err != nil {
		return nil, err
	}

	return &entity.SummaryResponse{
		UserID:         req.UserID,
		SessionID:      req.SessionID,
		CookingProfile: profile,
	}, nil
}

// ExportProfile renders the session's cooking profile as a downloadable document
func (uc *OnboardingUsecase) ExportProfile(
	ctx context.Context,
	userID, sessionID string,
	format entity.ResultFormat,
) (*entity.ProfileExport, error) {
	if format == "" {
		format = entity.FormatMarkdown
	}
	if err := validator.ValidateSummary(&entity.SummaryRequest{UserID: userID, SessionID: sessionID}); err != nil {
		return nil, err
	}
	if !format.IsValid() {
		return nil, entity.NewValidationError(entity.ErrInvalidParameter, "Invalid value for field: format")
	}

	ctx = logger.WithSession(ctx, userID, sessionID)

	f, err := uc.formatterFactory.Create(format)
	if err != nil {
		return nil, fmt.Errorf("create formatter: %w", err)
	}

	profile, err := uc.buildProfile(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	content, err := f.Format(profile)
	if err != nil {
		return nil, fmt.Errorf("format profile: %w", err)
	}

	ctxzap.Info(ctx, "cooking profile exported", zap.String("format", string(format)), zap.Int("size", len(content)))

	return &entity.ProfileExport{
		Content:       content,
		ContentType:   f.ContentType(),
		FileExtension: f.FileExtension(),
	}, nil
}

// LogEvent records a client reported event; nothing is persisted
func (uc *OnboardingUsecase) LogEvent(ctx context.Context, req *entity.LogEventRequest) (*entity.MessageResponse, error) {
	if err := validator.ValidateLogEvent(req); err != nil {
		return nil, err
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	ctxzap.Info(ctx, "onboarding event",
		zap.String("event_type", req.EventType),
		zap.String("user_id", req.UserID),
		zap.Any("metadata", metadata),
		zap.Time("timestamp", uc.now()),
	)
	uc.recorder.IncEvent(req.EventType)

	return &entity.MessageResponse{Message: MessageEventLogged}, nil
}

func (uc *OnboardingUsecase) buildProfile(ctx context.Context, userID, sessionID string) (*entity.CookingProfile, error) {
	session, err := uc.sessionRepo.Get(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if len(session.QAPairs) == 0 {
		return nil, entity.ErrNoQAPairs
	}

	profile, err := uc.profileGenerator.Generate(ctx, session.QAPairs, session.HabitBackground)
	if err != nil {
		return nil, fmt.Errorf("generate profile: %w", err)
	}

	return profile, nil
}
