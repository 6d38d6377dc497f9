package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pantrypal/onboarding-backend/internal/entity"
)

// SessionRepository keeps one onboarding record per (userId, sessionId).
// Put overwrites the whole record when the stored version still equals
// expectedVersion; expectedVersion 0 means the record must not exist yet.
type SessionRepository interface {
	Get(ctx context.Context, userID, sessionID string) (*entity.OnboardingSession, error)
	Put(ctx context.Context, session *entity.OnboardingSession, expectedVersion int) error
}

// UserRepository stores accounts created at signup
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
}

// DB is the subset of pgxpool.Pool the postgres stores rely on
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ SessionRepository = &SessionPostgres{}
	_ SessionRepository = &SessionMemory{}
	_ UserRepository    = &UserPostgres{}
	_ UserRepository    = &UserMemory{}
)
