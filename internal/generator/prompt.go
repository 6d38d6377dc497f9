package generator

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pantrypal/onboarding-backend/internal/entity"
)

// PromptVersion is bumped whenever a template changes wording or output contract
const PromptVersion = "v1"

const (
	QuestionCount   = 8
	MandatoryCount  = 3
	OptionCount     = 5
	notSpecified    = "not specified"
	noAllergies     = "none"
	qaPairSeparator = "\n\n"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var (
	questionsTemplate = mustTemplate("questions")
	profileTemplate   = mustTemplate("profile")
)

func mustTemplate(name string) *template.Template {
	file := fmt.Sprintf("prompts/%s.%s.tmpl", name, PromptVersion)
	return template.Must(template.ParseFS(promptFS, file))
}

type questionsPromptData struct {
	DietaryPreferences string
	Allergies          string
	HealthGoals        string
	QuestionCount      int
	MandatoryCount     int
	OptionalCount      int
	SpecificOptions    int
	OtherOption        string
}

type profilePromptData struct {
	HabitBackground string
	Transcript      string
}

// RenderQuestionsPrompt fills the question template. Absent preferences are
// described as "not specified", absent allergies as "none". Supplied values,
// even empty ones, are used as given.
func RenderQuestionsPrompt(prefs entity.Preferences) (string, error) {
	data := questionsPromptData{
		DietaryPreferences: orDefault(prefs.DietaryPreferences, notSpecified),
		Allergies:          orDefault(prefs.Allergies, noAllergies),
		HealthGoals:        orDefault(prefs.HealthGoals, notSpecified),
		QuestionCount:      QuestionCount,
		MandatoryCount:     MandatoryCount,
		OptionalCount:      QuestionCount - MandatoryCount,
		SpecificOptions:    OptionCount - 1,
		OtherOption:        entity.OtherOption,
	}

	var sb strings.Builder
	if err := questionsTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render questions prompt: %w", err)
	}
	return sb.String(), nil
}

// RenderProfilePrompt fills the profile template with every QA pair in order
func RenderProfilePrompt(pairs []entity.QAPair, habitBackground *string) (string, error) {
	data := profilePromptData{
		HabitBackground: orDefault(habitBackground, notSpecified),
		Transcript:      Transcript(pairs),
	}

	var sb strings.Builder
	if err := profileTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render profile prompt: %w", err)
	}
	return sb.String(), nil
}

// Transcript renders pairs as "Q: ...\nA: ..." blocks separated by a blank line
func Transcript(pairs []entity.QAPair) string {
	blocks := make([]string, 0, len(pairs))
	for _, p := range pairs {
		blocks = append(blocks, "Q: "+p.Question+"\nA: "+p.Answer)
	}
	return strings.Join(blocks, qaPairSeparator)
}

func orDefault(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
