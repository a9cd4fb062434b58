package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// DishRepository is the in-memory dish store
type DishRepository struct {
	s *Store
}

// List retrieves all dishes with their chefs
func (r *DishRepository) List(ctx context.Context) ([]*models.Dish, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	dishes := make([]*models.Dish, 0, len(r.s.dishes))
	for _, id := range slices.Sorted(maps.Keys(r.s.dishes)) {
		dishes = append(dishes, r.s.dishWithChefs(id))
	}
	return dishes, nil
}

// GetByID retrieves a dish by ID
func (r *DishRepository) GetByID(ctx context.Context, id int64) (*models.Dish, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.dishes[id]; !ok {
		return nil, fmt.Errorf("dish %d: %w", id, repository.ErrNotFound)
	}
	return r.s.dishWithChefs(id), nil
}

// GetByCode retrieves a dish by its dish code
func (r *DishRepository) GetByCode(ctx context.Context, code string) (*models.Dish, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if id, ok := r.s.dishIDByCode(code); ok {
		return r.s.dishWithChefs(id), nil
	}
	return nil, fmt.Errorf("dish %q: %w", code, repository.ErrNotFound)
}

// ListByChef retrieves every dish linked to the given chef
func (r *DishRepository) ListByChef(ctx context.Context, chefID int64) ([]*models.Dish, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.dishIDsOf(chefID)
	dishes := make([]*models.Dish, 0, len(ids))
	for _, id := range ids {
		dishes = append(dishes, r.s.dishWithChefs(id))
	}
	return dishes, nil
}

// Save inserts or updates a dish and replaces its links with dish.Chefs.
// Links to chefs that are not stored are ignored.
func (r *DishRepository) Save(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if id, ok := r.s.dishIDByCode(dish.DishCode); ok && id != dish.ID {
		return nil, fmt.Errorf("dish code %q: %w", dish.DishCode, repository.ErrConflict)
	}

	ts := now()
	if dish.ID == 0 {
		r.s.nextDishID++
		dish.ID = r.s.nextDishID
		dish.CreatedAt = ts
	} else {
		existing, ok := r.s.dishes[dish.ID]
		if !ok {
			return nil, fmt.Errorf("dish %d: %w", dish.ID, repository.ErrNotFound)
		}
		dish.CreatedAt = existing.CreatedAt
	}
	dish.UpdatedAt = ts

	stored := *dish
	stored.Chefs = nil
	r.s.dishes[dish.ID] = stored

	links := make(map[int64]struct{}, len(dish.Chefs))
	for _, c := range dish.Chefs {
		if _, ok := r.s.chefs[c.ID]; ok {
			links[c.ID] = struct{}{}
		}
	}
	r.s.links[dish.ID] = links

	return dish, nil
}

// Delete removes a dish and its links
func (r *DishRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.dishes[id]; !ok {
		return fmt.Errorf("dish %d: %w", id, repository.ErrNotFound)
	}

	delete(r.s.dishes, id)
	delete(r.s.links, id)
	return nil
}

// Count returns the number of stored dishes
func (r *DishRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.dishes), nil
}

func (s *Store) dishIDByCode(code string) (int64, bool) {
	for id, d := range s.dishes {
		if d.DishCode == code {
			return id, true
		}
	}
	return 0, false
}
