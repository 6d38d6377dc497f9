package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pantrypal/onboarding-backend/internal/entity"
)

const baseTitle = "PantryPal cooking profile"

type Formatter interface {
	Format(profile *entity.CookingProfile) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

type field struct {
	Label string
	Value string
}

// profileFields lists profile attributes in display order
func profileFields(p *entity.CookingProfile) []field {
	return []field{
		{"Cooking skill", string(p.CookingSkill)},
		{"Serving size", strconv.Itoa(p.ServingSize)},
		{"Available time", string(p.AvailableTime)},
		{"Cooking frequency", string(p.CookingFrequency)},
		{"Cuisine preferences", joinOrNone(p.CuisinePreferences)},
		{"Flavor profile", joinOrNone(p.FlavorProfile)},
		{"Dietary restrictions", joinOrNone(p.DietaryRestrictions)},
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
