package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/pantrypal/onboarding-backend/internal/pkg/validator"
	"github.com/pantrypal/onboarding-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const MessageUserCreated = "User created successfully"

// bcrypt only reads this many bytes of a password
const maxPasswordBytes = 72

// UserUsecase implements account creation
type UserUsecase struct {
	userRepo   repository.UserRepository
	bcryptCost int
	now        func() time.Time
}

func NewUsecase(userRepo repository.UserRepository, bcryptCost int) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SignUp hashes the password and stores a new account
func (uc *UserUsecase) SignUp(ctx context.Context, req *entity.SignUpRequest) (*entity.SignUpResponse, error) {
	if err := validator.ValidateSignUp(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes(req.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    uc.now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrUserAlreadyExists) {
			ctxzap.Warn(ctx, "signup rejected, username or email taken", zap.String("username", req.Username))
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	ctxzap.Info(ctx, "user created", zap.String("user_id", user.ID))

	return &entity.SignUpResponse{
		Message: MessageUserCreated,
		UserID:  user.ID,
	}, nil
}

// passwordBytes cuts long passwords to the prefix bcrypt hashes instead of rejecting them
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		return b[:maxPasswordBytes]
	}
	return b
}
