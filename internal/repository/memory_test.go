package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionMemory(0, time.Minute)

	_, err := store.Get(ctx, "u1", "s1")
	require.ErrorIs(t, err, entity.ErrSessionNotFound)

	session := sampleSession()
	require.NoError(t, store.Put(ctx, session, 0))
	assert.Equal(t, 1, session.Version)

	got, err := store.Get(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, entity.SessionStatusQuestionsGenerated, got.Status)

	got.Status = entity.SessionStatusCompleted
	require.NoError(t, store.Put(ctx, got, 1))

	again, err := store.Get(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusCompleted, again.Status)
	assert.Equal(t, 2, again.Version)
	assert.Equal(t, 1, store.Len())
}

func TestSessionMemoryIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewSessionMemory(0, time.Minute)

	session := sampleSession()
	require.NoError(t, store.Put(ctx, session, 0))
	session.Questions[0].Question = "mutated after write"

	got, err := store.Get(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Skill?", got.Questions[0].Question)
}

func TestSessionMemoryKeysByUserAndSession(t *testing.T) {
	ctx := context.Background()
	store := NewSessionMemory(0, time.Minute)

	require.NoError(t, store.Put(ctx, sampleSession(), 0))

	_, err := store.Get(ctx, "u2", "s1")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSessionMemoryConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewSessionMemory(0, time.Minute)

	require.NoError(t, store.Put(ctx, sampleSession(), 0))
	assert.ErrorIs(t, store.Put(ctx, sampleSession(), 0), entity.ErrSessionVersionConflict)
	assert.ErrorIs(t, store.Put(ctx, sampleSession(), 7), entity.ErrSessionVersionConflict)
}

func TestSessionMemoryConcurrentWritersOneWins(t *testing.T) {
	ctx := context.Background()
	store := NewSessionMemory(0, time.Minute)
	require.NoError(t, store.Put(ctx, sampleSession(), 0))

	var (
		wg       sync.WaitGroup
		winners  atomic.Int32
		conflict atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Put(ctx, sampleSession(), 1)
			if err == nil {
				winners.Add(1)
			} else if assert.ErrorIs(t, err, entity.ErrSessionVersionConflict) {
				conflict.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
	assert.Equal(t, int32(9), conflict.Load())
}

func TestSessionMemoryExpires(t *testing.T) {
	ctx := context.Background()
	store := NewSessionMemory(20*time.Millisecond, time.Millisecond)
	require.NoError(t, store.Put(ctx, sampleSession(), 0))

	assert.Eventually(t, func() bool {
		_, err := store.Get(ctx, "u1", "s1")
		return err == entity.ErrSessionNotFound
	}, time.Second, 10*time.Millisecond)
}

func TestUserMemoryUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewUserMemory()

	require.NoError(t, store.Create(ctx, &entity.User{ID: "1", Username: "alice", Email: "a@example.com"}))
	assert.ErrorIs(t, store.Create(ctx, &entity.User{ID: "2", Username: "alice", Email: "other@example.com"}), entity.ErrUserAlreadyExists)
	assert.ErrorIs(t, store.Create(ctx, &entity.User{ID: "3", Username: "bob", Email: "a@example.com"}), entity.ErrUserAlreadyExists)
	assert.NoError(t, store.Create(ctx, &entity.User{ID: "4", Username: "bob", Email: "b@example.com"}))
}
