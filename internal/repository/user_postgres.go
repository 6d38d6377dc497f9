package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pantrypal/onboarding-backend/internal/entity"
)

const uniqueViolation = "23505"

// UserPostgres implements UserRepository using PostgreSQL
type UserPostgres struct {
	db DB
}

func NewUserPostgres(db DB) *UserPostgres {
	return &UserPostgres{db: db}
}

const insertUserSQL = `
INSERT INTO users (id, username, email, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (r *UserPostgres) Create(ctx context.Context, user *entity.User) error {
	_, err := r.db.Exec(ctx, insertUserSQL, user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrUserAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
