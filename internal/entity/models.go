package entity

import (
	"time"
)

type SessionStatus string

// Session status represents how far the onboarding flow has progressed.
// Status only moves forward.
const (
	SessionStatusQuestionsGenerated SessionStatus = "questions_generated" // Questions generated, waiting for answers
	SessionStatusCompleted          SessionStatus = "completed"           // Answers recorded
)

// rank orders statuses so transitions can be checked for regressions
func (s SessionStatus) rank() int {
	switch s {
	case SessionStatusQuestionsGenerated:
		return 1
	case SessionStatusCompleted:
		return 2
	default:
		return 0
	}
}

// CanMoveTo reports whether the status may transition to next without regressing.
func (s SessionStatus) CanMoveTo(next SessionStatus) bool {
	return next.rank() >= s.rank()
}

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

// OtherOption is the sentinel option every question ends with
const OtherOption = "Other"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Question struct {
	QuestionID string       `json:"questionId"`
	Question   string       `json:"question"`
	Mandatory  bool         `json:"mandatory"`
	Type       QuestionType `json:"type"`
	Options    []string     `json:"options"`
}

type Answer struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question,omitempty"`
	Answer     string `json:"answer"`
}

type QAPair struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// OnboardingSession is the full record kept per (userId, sessionId).
// Every write replaces the whole record.
type OnboardingSession struct {
	UserID             string        `json:"userId"`
	SessionID          string        `json:"sessionId"`
	Status             SessionStatus `json:"status"`
	DietaryPreferences string        `json:"dietaryPreferences"`
	Allergies          string        `json:"allergies"`
	HealthGoals        string        `json:"healthGoals"`
	Questions          []Question    `json:"questions"`
	Answers            []Answer      `json:"answers"`
	QAPairs            []QAPair      `json:"qaPairs"`
	HabitBackground    *string       `json:"habitBackground"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`

	// Version is the optimistic concurrency token, bumped by the store on every write
	Version int `json:"-"`
}

// Preferences are the free-text inputs used to personalise questions; nil means not supplied
type Preferences struct {
	DietaryPreferences *string
	Allergies          *string
	HealthGoals        *string
}

type CookingSkill string

const (
	CookingSkillBeginner     CookingSkill = "beginner"
	CookingSkillIntermediate CookingSkill = "intermediate"
	CookingSkillAdvanced     CookingSkill = "advanced"
)

func (s CookingSkill) IsValid() bool {
	switch s {
	case CookingSkillBeginner, CookingSkillIntermediate, CookingSkillAdvanced:
		return true
	default:
		return false
	}
}

type CookingFrequency string

const (
	CookingFrequencyRarely    CookingFrequency = "rarely"
	CookingFrequencySometimes CookingFrequency = "sometimes"
	CookingFrequencyOften     CookingFrequency = "often"
	CookingFrequencyDaily     CookingFrequency = "daily"
)

func (f CookingFrequency) IsValid() bool {
	switch f {
	case CookingFrequencyRarely, CookingFrequencySometimes, CookingFrequencyOften, CookingFrequencyDaily:
		return true
	default:
		return false
	}
}

type AvailableTime string

const (
	AvailableTimeUnder30 AvailableTime = "under 30 mins"
	AvailableTime30To60  AvailableTime = "30-60 mins"
	AvailableTimeOver60  AvailableTime = "over 60 mins"
)

func (t AvailableTime) IsValid() bool {
	switch t {
	case AvailableTimeUnder30, AvailableTime30To60, AvailableTimeOver60:
		return true
	default:
		return false
	}
}

// CookingProfile is derived from a session's QA pairs and never persisted
type CookingProfile struct {
	CookingSkill        CookingSkill     `json:"cookingSkill"`
	ServingSize         int              `json:"servingSize"`
	AvailableTime       AvailableTime    `json:"availableTime"`
	CuisinePreferences  []string         `json:"cuisinePreferences"`
	FlavorProfile       []string         `json:"flavorProfile"`
	DietaryRestrictions []string         `json:"dietaryRestrictions"`
	CookingFrequency    CookingFrequency `json:"cookingFrequency"`
	Summary             string           `json:"summary"`
}
