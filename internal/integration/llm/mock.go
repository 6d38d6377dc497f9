package llm

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/config"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector returns canned completions for local runs and tests
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Name() string {
	return config.LLMProviderMock
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] completing prompt", zap.String("purpose", string(req.Purpose)))

	switch req.Purpose {
	case entity.CompletionPurposeQuestions:
		return mockQuestions, nil
	case entity.CompletionPurposeProfile:
		return mockProfile, nil
	default:
		return "", fmt.Errorf("mock completion: unknown purpose %q", req.Purpose)
	}
}

// Wrapped in a markdown fence the way chat models often answer
const mockQuestions = "```json\n" + `[
  {"questionId": "q1", "question": "How would you describe your cooking skill level?", "mandatory": true, "type": "multiple_choice",
   "options": ["Beginner, I follow recipes closely", "Comfortable with the basics", "Confident and improvise often", "Very experienced home cook", "Other"]},
  {"questionId": "q2", "question": "How many people do you usually cook for?", "mandatory": true, "type": "multiple_choice",
   "options": ["Just myself", "Two people", "Three to four people", "Five or more", "Other"]},
  {"questionId": "q3", "question": "How much time do you have to cook on a typical day?", "mandatory": true, "type": "multiple_choice",
   "options": ["Under 15 minutes", "15 to 30 minutes", "30 to 60 minutes", "More than an hour", "Other"]},
  {"questionId": "q4", "question": "Which cuisines do you enjoy the most?", "mandatory": false, "type": "multiple_choice",
   "options": ["Italian", "Asian", "Mexican", "Mediterranean", "Other"]},
  {"questionId": "q5", "question": "How do you usually plan your meals?", "mandatory": false, "type": "multiple_choice",
   "options": ["I plan the whole week", "A few days ahead", "Day by day", "I decide at mealtime", "Other"]},
  {"questionId": "q6", "question": "Which kitchen equipment do you rely on?", "mandatory": false, "type": "multiple_choice",
   "options": ["Stovetop and oven", "Air fryer", "Slow cooker or pressure cooker", "Microwave only", "Other"]},
  {"questionId": "q7", "question": "Which flavors do you gravitate towards?", "mandatory": false, "type": "multiple_choice",
   "options": ["Spicy", "Sweet", "Savory", "Tangy", "Other"]},
  {"questionId": "q8", "question": "How often do you cook compared to eating out?", "mandatory": false, "type": "multiple_choice",
   "options": ["I rarely cook", "Sometimes", "Most days", "Every day", "Other"]}
]` + "\n```"

const mockProfile = `{
  "cookingSkill": "intermediate",
  "servingSize": 2,
  "availableTime": "30-60 mins",
  "cuisinePreferences": ["Italian", "Mediterranean"],
  "flavorProfile": ["savory"],
  "dietaryRestrictions": [],
  "cookingFrequency": "often",
  "summary": "Comfortable home cook preparing meals for two on most days. Prefers savory Italian and Mediterranean dishes that fit in under an hour."
}`
