package user

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers account routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/signup", h.SignUp)
}
