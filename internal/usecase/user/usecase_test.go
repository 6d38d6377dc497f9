package user

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingRepo struct {
	users []*entity.User
	err   error
}

func (r *recordingRepo) Create(_ context.Context, u *entity.User) error {
	if r.err != nil {
		return r.err
	}
	r.users = append(r.users, u)
	return nil
}

func TestSignUp(t *testing.T) {
	repo := &recordingRepo{}
	uc := NewUsecase(repo, bcrypt.MinCost)

	resp, err := uc.SignUp(context.Background(), &entity.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "User created successfully", resp.Message)

	_, err = uuid.Parse(resp.UserID)
	assert.NoError(t, err)

	require.Len(t, repo.users, 1)
	stored := repo.users[0]
	assert.Equal(t, resp.UserID, stored.ID)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestSignUpAcceptsPasswordsLongerThanBcryptLimit(t *testing.T) {
	repo := &recordingRepo{}
	uc := NewUsecase(repo, bcrypt.MinCost)
	password := strings.Repeat("p", 80)

	resp, err := uc.SignUp(context.Background(), &entity.SignUpRequest{Username: "a", Email: "a@b.c", Password: password})
	require.NoError(t, err)
	assert.Equal(t, "User created successfully", resp.Message)

	hash := []byte(repo.users[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte(password[:maxPasswordBytes])))
}

func TestSignUpUsesConfiguredCost(t *testing.T) {
	repo := &recordingRepo{}
	uc := NewUsecase(repo, 5)

	_, err := uc.SignUp(context.Background(), &entity.SignUpRequest{Username: "a", Email: "a@b.c", Password: "12345678"})
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(repo.users[0].PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestSignUpValidation(t *testing.T) {
	repo := &recordingRepo{}
	uc := NewUsecase(repo, bcrypt.MinCost)

	_, err := uc.SignUp(context.Background(), &entity.SignUpRequest{Username: "a", Email: "a@b.c", Password: "short"})

	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Password must be at least 8 characters", vErr.Message)
	assert.Empty(t, repo.users)
}

func TestSignUpDuplicate(t *testing.T) {
	uc := NewUsecase(&recordingRepo{err: entity.ErrUserAlreadyExists}, bcrypt.MinCost)

	_, err := uc.SignUp(context.Background(), &entity.SignUpRequest{Username: "a", Email: "a@b.c", Password: "12345678"})
	assert.ErrorIs(t, err, entity.ErrUserAlreadyExists)
}
