package validator

import (
	"fmt"

	"github.com/pantrypal/onboarding-backend/internal/entity"
)

// MinPasswordLength is the shortest password accepted at signup
const MinPasswordLength = 8

// ValidateSignUp validates SignUpRequest
func ValidateSignUp(req *entity.SignUpRequest) error {
	if req.Username == "" {
		return missingField("username")
	}
	if req.Email == "" {
		return missingField("email")
	}
	if req.Password == "" {
		return missingField("password")
	}
	if len(req.Password) < MinPasswordLength {
		return entity.NewValidationError(entity.ErrInvalidParameter,
			fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	return nil
}

func missingField(name string) error {
	return entity.NewValidationError(entity.ErrMissingField, "Missing required field: "+name)
}
