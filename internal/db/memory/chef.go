package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// ChefRepository is the in-memory chef store
type ChefRepository struct {
	s *Store
}

// List retrieves all chefs with their dishes
func (r *ChefRepository) List(ctx context.Context) ([]*models.Chef, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	chefs := make([]*models.Chef, 0, len(r.s.chefs))
	for _, id := range slices.Sorted(maps.Keys(r.s.chefs)) {
		chefs = append(chefs, r.s.chefWithDishes(id))
	}
	return chefs, nil
}

// GetByID retrieves a chef with its dishes, each dish carrying its chefs.
// The chef itself is the instance referenced from those dishes.
func (r *ChefRepository) GetByID(ctx context.Context, id int64) (*models.Chef, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.chefs[id]; !ok {
		return nil, fmt.Errorf("chef %d: %w", id, repository.ErrNotFound)
	}

	chef := r.s.shallowChef(id)
	chef.Dishes = []*models.Dish{}
	for _, dishID := range r.s.dishIDsOf(id) {
		dish := r.s.dishWithChefs(dishID)
		for i, c := range dish.Chefs {
			if c.ID == id {
				dish.Chefs[i] = chef
			}
		}
		chef.Dishes = append(chef.Dishes, dish)
	}
	return chef, nil
}

// ListByIDs retrieves the chefs with the given IDs. Unknown IDs are skipped
// and duplicates collapse.
func (r *ChefRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Chef, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := slices.Clone(ids)
	slices.Sort(wanted)
	wanted = slices.Compact(wanted)

	chefs := make([]*models.Chef, 0, len(wanted))
	for _, id := range wanted {
		if _, ok := r.s.chefs[id]; ok {
			chefs = append(chefs, r.s.chefWithDishes(id))
		}
	}
	return chefs, nil
}

// Save inserts or updates a chef's own fields. Links are left alone.
func (r *ChefRepository) Save(ctx context.Context, chef *models.Chef) (*models.Chef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ts := now()
	if chef.ID == 0 {
		r.s.nextChefID++
		chef.ID = r.s.nextChefID
		chef.CreatedAt = ts
	} else {
		existing, ok := r.s.chefs[chef.ID]
		if !ok {
			return nil, fmt.Errorf("chef %d: %w", chef.ID, repository.ErrNotFound)
		}
		chef.CreatedAt = existing.CreatedAt
	}
	chef.UpdatedAt = ts
	if chef.Dishes == nil {
		chef.Dishes = []*models.Dish{}
	}

	stored := *chef
	stored.Dishes = nil
	r.s.chefs[chef.ID] = stored

	return chef, nil
}

// Delete removes a chef and its links. Dishes stay.
func (r *ChefRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.chefs[id]; !ok {
		return fmt.Errorf("chef %d: %w", id, repository.ErrNotFound)
	}

	delete(r.s.chefs, id)
	for _, chefs := range r.s.links {
		delete(chefs, id)
	}
	return nil
}

// Count returns the number of stored chefs
func (r *ChefRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.chefs), nil
}
