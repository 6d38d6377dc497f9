package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	text string
	err  error
	last *entity.CompletionRequest
}

func strPtr(s string) *string { return &s }

func (s *stubCompleter) Complete(_ context.Context, req *entity.CompletionRequest) (string, error) {
	s.last = req
	return s.text, s.err
}

func validQuestions() []entity.Question {
	questions := make([]entity.Question, 0, QuestionCount)
	for i := 1; i <= QuestionCount; i++ {
		questions = append(questions, entity.Question{
			QuestionID: fmt.Sprintf("q%d", i),
			Question:   fmt.Sprintf("Question %d?", i),
			Mandatory:  i <= MandatoryCount,
			Type:       entity.QuestionTypeMultipleChoice,
			Options:    []string{"a", "b", "c", "d", entity.OtherOption},
		})
	}
	return questions
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n[1]\n```", "[1]"},
		{"```\n{}\n```", "{}"},
		{"  [1]  ", "[1]"},
		{"prefix ```json[1]``` suffix", "prefix [1] suffix"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in))
	}
}

func TestQuestionGeneratorGenerate(t *testing.T) {
	stub := &stubCompleter{text: "```json\n" + mustJSON(t, validQuestions()) + "\n```"}
	g := NewQuestionGenerator(stub, 1024)

	questions, err := g.Generate(context.Background(), entity.Preferences{Allergies: strPtr("peanuts")})
	require.NoError(t, err)
	require.Len(t, questions, QuestionCount)
	assert.True(t, questions[0].Mandatory)
	assert.False(t, questions[QuestionCount-1].Mandatory)

	require.NotNil(t, stub.last)
	assert.Equal(t, entity.CompletionPurposeQuestions, stub.last.Purpose)
	assert.Equal(t, 1024, stub.last.MaxTokens)
	assert.InDelta(t, 0.7, stub.last.Temperature, 0.0001)
	assert.Contains(t, stub.last.Prompt, "- Allergies: peanuts")
	assert.Contains(t, stub.last.Prompt, "- Dietary preferences: not specified")
}

func TestQuestionGeneratorRejectsBadShape(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]entity.Question) []entity.Question
	}{
		{"too few", func(q []entity.Question) []entity.Question { return q[:7] }},
		{"optional first", func(q []entity.Question) []entity.Question { q[1].Mandatory = false; return q }},
		{"mandatory tail", func(q []entity.Question) []entity.Question { q[5].Mandatory = true; return q }},
		{"duplicate id", func(q []entity.Question) []entity.Question { q[4].QuestionID = "q1"; return q }},
		{"empty id", func(q []entity.Question) []entity.Question { q[2].QuestionID = ""; return q }},
		{"wrong type", func(q []entity.Question) []entity.Question { q[3].Type = "free_text"; return q }},
		{"four options", func(q []entity.Question) []entity.Question { q[6].Options = q[6].Options[1:]; return q }},
		{"other not last", func(q []entity.Question) []entity.Question {
			q[7].Options = []string{entity.OtherOption, "a", "b", "c", "d"}
			return q
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCompleter{text: mustJSON(t, tt.mutate(validQuestions()))}

			_, err := NewQuestionGenerator(stub, 1024).Generate(context.Background(), entity.Preferences{})
			assert.ErrorIs(t, err, entity.ErrCompletionInvalidShape)
		})
	}
}

func TestQuestionGeneratorUnparseable(t *testing.T) {
	stub := &stubCompleter{text: "Sure! Here are your questions: q1..."}

	_, err := NewQuestionGenerator(stub, 1024).Generate(context.Background(), entity.Preferences{})
	assert.ErrorIs(t, err, entity.ErrCompletionUnparseable)
}

func TestQuestionGeneratorCompletionFailure(t *testing.T) {
	upstream := errors.New("upstream down")
	stub := &stubCompleter{err: upstream}

	_, err := NewQuestionGenerator(stub, 1024).Generate(context.Background(), entity.Preferences{})
	assert.ErrorIs(t, err, entity.ErrCompletionFailed)
	assert.ErrorIs(t, err, upstream)
}

const validProfileJSON = `{
  "cookingSkill": "beginner",
  "servingSize": 1,
  "availableTime": "under 30 mins",
  "cuisinePreferences": ["Thai"],
  "flavorProfile": ["spicy"],
  "cookingFrequency": "sometimes",
  "summary": "New cook making quick meals for one."
}`

func TestProfileGeneratorGenerate(t *testing.T) {
	stub := &stubCompleter{text: "```json\n" + validProfileJSON + "\n```"}
	pairs := []entity.QAPair{
		{QuestionID: "q1", Question: "Skill?", Answer: "beginner"},
		{QuestionID: "q2", Question: "People?", Answer: "1"},
	}

	profile, err := NewProfileGenerator(stub, 512).Generate(context.Background(), pairs, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.CookingSkillBeginner, profile.CookingSkill)
	assert.Equal(t, 1, profile.ServingSize)
	assert.NotNil(t, profile.DietaryRestrictions)
	assert.Empty(t, profile.DietaryRestrictions)

	assert.Equal(t, entity.CompletionPurposeProfile, stub.last.Purpose)
	assert.InDelta(t, 0.5, stub.last.Temperature, 0.0001)
	assert.Contains(t, stub.last.Prompt, "User background: not specified")
	assert.Contains(t, stub.last.Prompt, "Q: Skill?\nA: beginner\n\nQ: People?\nA: 1")
}

func TestProfileGeneratorRejectsBadShape(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"skill", "cookingSkill", "chef"},
		{"serving size", "servingSize", 0},
		{"time", "availableTime", "whenever"},
		{"frequency", "cookingFrequency", "weekly"},
		{"summary", "summary", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(validProfileJSON), &doc))
			doc[tt.field] = tt.value

			stub := &stubCompleter{text: mustJSON(t, doc)}
			_, err := NewProfileGenerator(stub, 512).Generate(context.Background(), nil, strPtr("bg"))
			assert.ErrorIs(t, err, entity.ErrCompletionInvalidShape)
		})
	}
}

func TestRenderQuestionsPromptDefaults(t *testing.T) {
	prompt, err := RenderQuestionsPrompt(entity.Preferences{DietaryPreferences: strPtr("vegan")})
	require.NoError(t, err)

	assert.Contains(t, prompt, "- Dietary preferences: vegan")
	assert.Contains(t, prompt, "- Allergies: none")
	assert.Contains(t, prompt, "- Health goals: not specified")
	assert.Contains(t, prompt, "Generate exactly 8 questions")
	assert.Contains(t, prompt, `4 specific options + "Other" as last option`)
}

func TestRenderPromptsKeepSuppliedEmptyValues(t *testing.T) {
	prompt, err := RenderQuestionsPrompt(entity.Preferences{
		DietaryPreferences: strPtr(""),
		Allergies:          strPtr(" "),
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "- Dietary preferences: \n")
	assert.Contains(t, prompt, "- Allergies:  \n")
	assert.Contains(t, prompt, "- Health goals: not specified")

	prompt, err = RenderProfilePrompt(nil, strPtr(""))
	require.NoError(t, err)
	assert.Contains(t, prompt, "User background: \n")
	assert.NotContains(t, prompt, "not specified")
}

func TestTranscript(t *testing.T) {
	assert.Equal(t, "", Transcript(nil))
	assert.Equal(t, "Q: a\nA: b", Transcript([]entity.QAPair{{Question: "a", Answer: "b"}}))
}
