package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// dishChefRow is one dish_chefs link joined with the chef it points at
type dishChefRow struct {
	DishID int64 `db:"dish_id"`
	models.Chef
}

// chefDishRow is one dish_chefs link joined with the dish it points at
type chefDishRow struct {
	ChefID int64 `db:"chef_id"`
	models.Dish
}

// attachChefs loads the chefs of every dish in one query. The chefs are
// loaded without their own dishes.
func attachChefs(ctx context.Context, q sqlx.QueryerContext, dishes []*models.Dish) error {
	if len(dishes) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(dishes))
	byID := make(map[int64]*models.Dish, len(dishes))
	for _, d := range dishes {
		d.Chefs = []*models.Chef{}
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}

	query := `
		SELECT dc.dish_id, c.id, c.first_name, c.last_name, c.bio, c.gender, c.created_at, c.updated_at
		FROM dish_chefs dc
		JOIN chefs c ON c.id = dc.chef_id
		WHERE dc.dish_id = ANY($1)
		ORDER BY dc.dish_id, c.id
	`

	var rows []dishChefRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load dish chefs: %w", err)
	}

	for i := range rows {
		chef := rows[i].Chef
		if d, ok := byID[rows[i].DishID]; ok {
			d.Chefs = append(d.Chefs, &chef)
		}
	}

	return nil
}

// attachDishes loads the dishes of every chef in one query. The dishes are
// loaded without their own chefs.
func attachDishes(ctx context.Context, q sqlx.QueryerContext, chefs []*models.Chef) error {
	if len(chefs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(chefs))
	byID := make(map[int64]*models.Chef, len(chefs))
	for _, c := range chefs {
		c.Dishes = []*models.Dish{}
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}

	query := `
		SELECT dc.chef_id, d.id, d.dish_code, d.name, d.cuisine, d.preparation_time, d.created_at, d.updated_at
		FROM dish_chefs dc
		JOIN dishes d ON d.id = dc.dish_id
		WHERE dc.chef_id = ANY($1)
		ORDER BY dc.chef_id, d.id
	`

	var rows []chefDishRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load chef dishes: %w", err)
	}

	for i := range rows {
		dish := rows[i].Dish
		if c, ok := byID[rows[i].ChefID]; ok {
			c.Dishes = append(c.Dishes, &dish)
		}
	}

	return nil
}
