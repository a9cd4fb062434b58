package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// ChefRepository handles chef data access
type ChefRepository struct {
	db *sqlx.DB
}

// NewChefRepository creates a new chef repository
func NewChefRepository(db *sqlx.DB) *ChefRepository {
	return &ChefRepository{db: db}
}

// List retrieves all chefs with their dishes
func (r *ChefRepository) List(ctx context.Context) ([]*models.Chef, error) {
	query := `
		SELECT id, first_name, last_name, bio, gender, created_at, updated_at
		FROM chefs
		ORDER BY id ASC
	`

	var chefs []*models.Chef
	err := r.db.SelectContext(ctx, &chefs, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list chefs: %w", err)
	}

	if err := attachDishes(ctx, r.db, chefs); err != nil {
		return nil, err
	}

	return chefs, nil
}

// GetByID retrieves a chef with its dishes, each dish carrying its chefs.
// The returned chef itself is the instance referenced from those dishes.
func (r *ChefRepository) GetByID(ctx context.Context, id int64) (*models.Chef, error) {
	query := `
		SELECT id, first_name, last_name, bio, gender, created_at, updated_at
		FROM chefs
		WHERE id = $1
	`

	var chef models.Chef
	err := r.db.GetContext(ctx, &chef, query, id)
	if err != nil {
		return nil, wrapError(err, "failed to get chef")
	}

	if err := attachDishes(ctx, r.db, []*models.Chef{&chef}); err != nil {
		return nil, err
	}

	if err := attachChefs(ctx, r.db, chef.Dishes); err != nil {
		return nil, err
	}

	// Point the dishes back at this chef instance
	for _, dish := range chef.Dishes {
		for i, c := range dish.Chefs {
			if c.ID == chef.ID {
				dish.Chefs[i] = &chef
			}
		}
	}

	return &chef, nil
}

// ListByIDs retrieves the chefs with the given IDs. Unknown IDs are skipped.
func (r *ChefRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Chef, error) {
	if len(ids) == 0 {
		return []*models.Chef{}, nil
	}

	query := `
		SELECT id, first_name, last_name, bio, gender, created_at, updated_at
		FROM chefs
		WHERE id = ANY($1)
		ORDER BY id ASC
	`

	var chefs []*models.Chef
	err := r.db.SelectContext(ctx, &chefs, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list chefs by id: %w", err)
	}

	if err := attachDishes(ctx, r.db, chefs); err != nil {
		return nil, err
	}

	return chefs, nil
}

// Save inserts or updates a chef's own columns. Dish links are owned by
// dishes and are left alone.
func (r *ChefRepository) Save(ctx context.Context, chef *models.Chef) (*models.Chef, error) {
	var saved models.Chef
	var err error

	if chef.ID == 0 {
		query := `
			INSERT INTO chefs (first_name, last_name, bio, gender)
			VALUES ($1, $2, $3, $4)
			RETURNING id, first_name, last_name, bio, gender, created_at, updated_at
		`
		err = r.db.GetContext(ctx, &saved, query,
			chef.FirstName,
			chef.LastName,
			chef.Bio,
			chef.Gender,
		)
	} else {
		query := `
			UPDATE chefs
			SET first_name = $1, last_name = $2, bio = $3, gender = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING id, first_name, last_name, bio, gender, created_at, updated_at
		`
		err = r.db.GetContext(ctx, &saved, query,
			chef.FirstName,
			chef.LastName,
			chef.Bio,
			chef.Gender,
			chef.ID,
		)
	}
	if err != nil {
		return nil, wrapError(err, "failed to save chef")
	}

	chef.ID = saved.ID
	chef.CreatedAt = saved.CreatedAt
	chef.UpdatedAt = saved.UpdatedAt
	if chef.Dishes == nil {
		chef.Dishes = []*models.Dish{}
	}

	return chef, nil
}

// Delete deletes a chef. Its dish links cascade; the dishes stay.
func (r *ChefRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM chefs
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete chef: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("chef %d: %w", id, ErrNotFound)
	}

	return nil
}

// Count returns the number of stored chefs
func (r *ChefRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM chefs`); err != nil {
		return 0, fmt.Errorf("failed to count chefs: %w", err)
	}
	return n, nil
}
