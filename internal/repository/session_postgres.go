package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pantrypal/onboarding-backend/internal/entity"
)

// SessionPostgres implements SessionRepository using a JSONB record column
type SessionPostgres struct {
	db DB
}

func NewSessionPostgres(db DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

const selectSessionSQL = `
SELECT record, version
FROM onboarding_sessions
WHERE user_id = $1 AND session_id = $2`

func (r *SessionPostgres) Get(ctx context.Context, userID, sessionID string) (*entity.OnboardingSession, error) {
	var (
		raw     []byte
		version int
	)

	err := r.db.QueryRow(ctx, selectSessionSQL, userID, sessionID).Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session entity.OnboardingSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	session.Version = version

	return &session, nil
}

const insertSessionSQL = `
INSERT INTO onboarding_sessions (user_id, session_id, status, record, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, 1, $5, $6)
ON CONFLICT (user_id, session_id) DO NOTHING`

const updateSessionSQL = `
UPDATE onboarding_sessions
SET status = $3, record = $4, version = version + 1, updated_at = $5
WHERE user_id = $1 AND session_id = $2 AND version = $6`

func (r *SessionPostgres) Put(ctx context.Context, session *entity.OnboardingSession, expectedVersion int) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	if expectedVersion == 0 {
		tag, err := r.db.Exec(ctx, insertSessionSQL,
			session.UserID, session.SessionID, string(session.Status), raw, session.CreatedAt, session.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return entity.ErrSessionVersionConflict
		}
	} else {
		tag, err := r.db.Exec(ctx, updateSessionSQL,
			session.UserID, session.SessionID, string(session.Status), raw, session.UpdatedAt, expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return entity.ErrSessionVersionConflict
		}
	}

	session.Version = expectedVersion + 1
	return nil
}
