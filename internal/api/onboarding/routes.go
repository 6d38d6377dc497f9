package onboarding

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers onboarding routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/questions", h.GenerateQuestions)
	r.Post("/answer", h.SubmitAnswers)
	r.Post("/summary", h.GetSummary)
	r.Post("/event", h.LogEvent)
	r.Get("/profile/{userId}/{sessionId}", h.ExportProfile)
}
