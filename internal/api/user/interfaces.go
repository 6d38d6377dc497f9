package user

import (
	"context"

	"github.com/pantrypal/onboarding-backend/internal/entity"
)

type UserUsecase interface {
	SignUp(ctx context.Context, req *entity.SignUpRequest) (*entity.SignUpResponse, error)
}
