package repository

import (
	"context"
	"sync"

	"github.com/pantrypal/onboarding-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

// UserMemory keeps accounts in process memory with unique username and email
type UserMemory struct {
	mu    sync.Mutex
	items *cache.Cache
}

func NewUserMemory() *UserMemory {
	return &UserMemory{items: cache.New(cache.NoExpiration, 0)}
}

func (r *UserMemory) Create(_ context.Context, user *entity.User) error {
	usernameKey := "username:" + user.Username
	emailKey := "email:" + user.Email

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items.Get(usernameKey); ok {
		return entity.ErrUserAlreadyExists
	}
	if _, ok := r.items.Get(emailKey); ok {
		return entity.ErrUserAlreadyExists
	}

	stored := *user
	r.items.Set(usernameKey, stored, cache.NoExpiration)
	r.items.Set(emailKey, stored.ID, cache.NoExpiration)

	return nil
}
