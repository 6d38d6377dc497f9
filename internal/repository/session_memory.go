package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

type memoryRecord struct {
	raw     []byte
	version int
}

// SessionMemory keeps sessions in process memory. Records are stored
// serialized so callers never share state with the store.
type SessionMemory struct {
	mu    sync.Mutex
	items *cache.Cache
	ttl   time.Duration
}

// NewSessionMemory creates the store; ttl 0 keeps records until restart
func NewSessionMemory(ttl, cleanupInterval time.Duration) *SessionMemory {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &SessionMemory{
		items: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func sessionKey(userID, sessionID string) string {
	return userID + "\x00" + sessionID
}

func (r *SessionMemory) Get(_ context.Context, userID, sessionID string) (*entity.OnboardingSession, error) {
	item, ok := r.items.Get(sessionKey(userID, sessionID))
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	rec := item.(memoryRecord)
	var session entity.OnboardingSession
	if err := json.Unmarshal(rec.raw, &session); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	session.Version = rec.version

	return &session, nil
}

func (r *SessionMemory) Put(_ context.Context, session *entity.OnboardingSession, expectedVersion int) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	key := sessionKey(session.UserID, session.SessionID)

	r.mu.Lock()
	defer r.mu.Unlock()

	current := 0
	if item, ok := r.items.Get(key); ok {
		current = item.(memoryRecord).version
	}
	if current != expectedVersion {
		return entity.ErrSessionVersionConflict
	}

	r.items.Set(key, memoryRecord{raw: raw, version: expectedVersion + 1}, cache.DefaultExpiration)
	session.Version = expectedVersion + 1

	return nil
}

// Len reports the number of live sessions
func (r *SessionMemory) Len() int {
	return r.items.ItemCount()
}
