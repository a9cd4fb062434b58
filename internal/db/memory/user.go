package memory

import (
	"context"
	"fmt"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// UserRepository is the in-memory user store
type UserRepository struct {
	s *Store
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, repository.ErrNotFound)
}

// Create creates a new user. Usernames are unique.
func (r *UserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return nil, fmt.Errorf("user %q: %w", user.Username, repository.ErrConflict)
		}
	}

	r.s.nextUserID++
	ts := now()
	user.ID = r.s.nextUserID
	user.CreatedAt = ts
	user.UpdatedAt = ts
	r.s.users[user.ID] = user

	return &user, nil
}
