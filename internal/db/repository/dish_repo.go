package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// DishRepository handles dish data access
type DishRepository struct {
	db *sqlx.DB
}

// NewDishRepository creates a new dish repository
func NewDishRepository(db *sqlx.DB) *DishRepository {
	return &DishRepository{db: db}
}

// List retrieves all dishes with their chefs
func (r *DishRepository) List(ctx context.Context) ([]*models.Dish, error) {
	query := `
		SELECT id, dish_code, name, cuisine, preparation_time, created_at, updated_at
		FROM dishes
		ORDER BY id ASC
	`

	var dishes []*models.Dish
	err := r.db.SelectContext(ctx, &dishes, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	if err := attachChefs(ctx, r.db, dishes); err != nil {
		return nil, err
	}

	return dishes, nil
}

// GetByID retrieves a dish by ID
func (r *DishRepository) GetByID(ctx context.Context, id int64) (*models.Dish, error) {
	query := `
		SELECT id, dish_code, name, cuisine, preparation_time, created_at, updated_at
		FROM dishes
		WHERE id = $1
	`

	var dish models.Dish
	err := r.db.GetContext(ctx, &dish, query, id)
	if err != nil {
		return nil, wrapError(err, "failed to get dish")
	}

	if err := attachChefs(ctx, r.db, []*models.Dish{&dish}); err != nil {
		return nil, err
	}

	return &dish, nil
}

// GetByCode retrieves a dish by its dish code
func (r *DishRepository) GetByCode(ctx context.Context, code string) (*models.Dish, error) {
	query := `
		SELECT id, dish_code, name, cuisine, preparation_time, created_at, updated_at
		FROM dishes
		WHERE dish_code = $1
	`

	var dish models.Dish
	err := r.db.GetContext(ctx, &dish, query, code)
	if err != nil {
		return nil, wrapError(err, "failed to get dish by code")
	}

	if err := attachChefs(ctx, r.db, []*models.Dish{&dish}); err != nil {
		return nil, err
	}

	return &dish, nil
}

// ListByChef retrieves every dish linked to the given chef
func (r *DishRepository) ListByChef(ctx context.Context, chefID int64) ([]*models.Dish, error) {
	query := `
		SELECT d.id, d.dish_code, d.name, d.cuisine, d.preparation_time, d.created_at, d.updated_at
		FROM dishes d
		JOIN dish_chefs dc ON dc.dish_id = d.id
		WHERE dc.chef_id = $1
		ORDER BY d.id ASC
	`

	var dishes []*models.Dish
	err := r.db.SelectContext(ctx, &dishes, query, chefID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes by chef: %w", err)
	}

	if err := attachChefs(ctx, r.db, dishes); err != nil {
		return nil, err
	}

	return dishes, nil
}

// Save inserts or updates a dish and replaces its chef links in one
// transaction. The dish is returned with its ID and timestamps set.
func (r *DishRepository) Save(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// No-op once committed
	defer func() { _ = tx.Rollback() }()

	var saved models.Dish
	if dish.ID == 0 {
		query := `
			INSERT INTO dishes (dish_code, name, cuisine, preparation_time)
			VALUES ($1, $2, $3, $4)
			RETURNING id, dish_code, name, cuisine, preparation_time, created_at, updated_at
		`
		err = tx.GetContext(ctx, &saved, query,
			dish.DishCode,
			dish.Name,
			dish.Cuisine,
			dish.PreparationTime,
		)
	} else {
		query := `
			UPDATE dishes
			SET dish_code = $1, name = $2, cuisine = $3, preparation_time = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING id, dish_code, name, cuisine, preparation_time, created_at, updated_at
		`
		err = tx.GetContext(ctx, &saved, query,
			dish.DishCode,
			dish.Name,
			dish.Cuisine,
			dish.PreparationTime,
			dish.ID,
		)
	}
	if err != nil {
		return nil, wrapError(err, "failed to save dish")
	}

	// Replace the chef links
	_, err = tx.ExecContext(ctx, `DELETE FROM dish_chefs WHERE dish_id = $1`, saved.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear dish chefs: %w", err)
	}

	for _, chef := range dish.Chefs {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO dish_chefs (dish_id, chef_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			saved.ID, chef.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to link chef %d to dish: %w", chef.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit dish: %w", err)
	}

	dish.ID = saved.ID
	dish.CreatedAt = saved.CreatedAt
	dish.UpdatedAt = saved.UpdatedAt

	return dish, nil
}

// Delete deletes a dish. Its chef links go with it.
func (r *DishRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM dishes
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("dish %d: %w", id, ErrNotFound)
	}

	return nil
}

// Count returns the number of stored dishes
func (r *DishRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM dishes`); err != nil {
		return 0, fmt.Errorf("failed to count dishes: %w", err)
	}
	return n, nil
}
