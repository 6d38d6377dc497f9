package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"go.uber.org/zap"
)

const (
	questionsTemperature float32 = 0.7
	profileTemperature   float32 = 0.5
)

// Completer turns a prompt into raw model text
type Completer interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) (string, error)
}

var codeFence = regexp.MustCompile("```json|```")

// stripCodeFence removes markdown fences that chat models like to wrap JSON in
func stripCodeFence(text string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
}

// decodeCompletion strips fences and unmarshals the model output into out
func decodeCompletion(text string, out any) error {
	if err := json.Unmarshal([]byte(stripCodeFence(text)), out); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrCompletionUnparseable, err)
	}
	return nil
}

func invalidShape(format string, args ...any) error {
	return fmt.Errorf("%w: %s", entity.ErrCompletionInvalidShape, fmt.Sprintf(format, args...))
}

type QuestionGenerator struct {
	completer Completer
	maxTokens int
}

func NewQuestionGenerator(completer Completer, maxTokens int) *QuestionGenerator {
	return &QuestionGenerator{completer: completer, maxTokens: maxTokens}
}

// Generate asks the model for the onboarding questionnaire and validates its shape
func (g *QuestionGenerator) Generate(ctx context.Context, prefs entity.Preferences) ([]entity.Question, error) {
	prompt, err := RenderQuestionsPrompt(prefs)
	if err != nil {
		return nil, err
	}

	text, err := g.completer.Complete(ctx, &entity.CompletionRequest{
		Purpose:     entity.CompletionPurposeQuestions,
		Prompt:      prompt,
		MaxTokens:   g.maxTokens,
		Temperature: questionsTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrCompletionFailed, err)
	}

	var questions []entity.Question
	if err := decodeCompletion(text, &questions); err != nil {
		ctxzap.Warn(ctx, "question completion is not valid JSON", zap.Int("length", len(text)))
		return nil, err
	}

	if err := validateQuestions(questions); err != nil {
		ctxzap.Warn(ctx, "question completion has invalid shape", zap.Error(err))
		return nil, err
	}

	return questions, nil
}

func validateQuestions(questions []entity.Question) error {
	if len(questions) != QuestionCount {
		return invalidShape("expected %d questions, got %d", QuestionCount, len(questions))
	}

	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.QuestionID) == "" {
			return invalidShape("question %d has no questionId", i+1)
		}
		if _, dup := seen[q.QuestionID]; dup {
			return invalidShape("duplicate questionId %q", q.QuestionID)
		}
		seen[q.QuestionID] = struct{}{}

		if strings.TrimSpace(q.Question) == "" {
			return invalidShape("question %q has no text", q.QuestionID)
		}
		if wantMandatory := i < MandatoryCount; q.Mandatory != wantMandatory {
			return invalidShape("question %q mandatory=%t, want %t", q.QuestionID, q.Mandatory, wantMandatory)
		}
		if q.Type != entity.QuestionTypeMultipleChoice {
			return invalidShape("question %q has type %q", q.QuestionID, q.Type)
		}
		if len(q.Options) != OptionCount {
			return invalidShape("question %q has %d options, want %d", q.QuestionID, len(q.Options), OptionCount)
		}
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return invalidShape("question %q has an empty option", q.QuestionID)
			}
		}
		if q.Options[OptionCount-1] != entity.OtherOption {
			return invalidShape("question %q must end with %q", q.QuestionID, entity.OtherOption)
		}
	}

	return nil
}

type ProfileGenerator struct {
	completer Completer
	maxTokens int
}

func NewProfileGenerator(completer Completer, maxTokens int) *ProfileGenerator {
	return &ProfileGenerator{completer: completer, maxTokens: maxTokens}
}

// Generate derives a cooking profile from the session transcript. The result is never stored.
func (g *ProfileGenerator) Generate(ctx context.Context, pairs []entity.QAPair, habitBackground *string) (*entity.CookingProfile, error) {
	prompt, err := RenderProfilePrompt(pairs, habitBackground)
	if err != nil {
		return nil, err
	}

	text, err := g.completer.Complete(ctx, &entity.CompletionRequest{
		Purpose:     entity.CompletionPurposeProfile,
		Prompt:      prompt,
		MaxTokens:   g.maxTokens,
		Temperature: profileTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrCompletionFailed, err)
	}

	var profile entity.CookingProfile
	if err := decodeCompletion(text, &profile); err != nil {
		ctxzap.Warn(ctx, "profile completion is not valid JSON", zap.Int("length", len(text)))
		return nil, err
	}

	if err := normalizeProfile(&profile); err != nil {
		ctxzap.Warn(ctx, "profile completion has invalid shape", zap.Error(err))
		return nil, err
	}

	return &profile, nil
}

func normalizeProfile(p *entity.CookingProfile) error {
	if !p.CookingSkill.IsValid() {
		return invalidShape("unknown cookingSkill %q", p.CookingSkill)
	}
	if p.ServingSize <= 0 {
		return invalidShape("servingSize must be positive, got %d", p.ServingSize)
	}
	if !p.AvailableTime.IsValid() {
		return invalidShape("unknown availableTime %q", p.AvailableTime)
	}
	if !p.CookingFrequency.IsValid() {
		return invalidShape("unknown cookingFrequency %q", p.CookingFrequency)
	}
	if strings.TrimSpace(p.Summary) == "" {
		return invalidShape("summary is empty")
	}

	if p.CuisinePreferences == nil {
		p.CuisinePreferences = []string{}
	}
	if p.FlavorProfile == nil {
		p.FlavorProfile = []string{}
	}
	if p.DietaryRestrictions == nil {
		p.DietaryRestrictions = []string{}
	}

	return nil
}
