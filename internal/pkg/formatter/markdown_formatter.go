package formatter

import (
	"bytes"
	"fmt"

	"github.com/pantrypal/onboarding-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(profile *entity.CookingProfile) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n%s\n\n", baseTitle, profile.Summary)
	fmt.Fprintf(&buf, "## Details\n\n")
	for _, f := range profileFields(profile) {
		fmt.Fprintf(&buf, "- **%s:** %s\n", f.Label, f.Value)
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
