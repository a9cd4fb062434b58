package repository

import (
	"context"

	"github.com/pizza-nz/dish-admin/internal/db"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// ChefStore persists chefs. Saving a chef never touches its dish links.
type ChefStore interface {
	List(ctx context.Context) ([]*models.Chef, error)
	GetByID(ctx context.Context, id int64) (*models.Chef, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Chef, error)
	Save(ctx context.Context, chef *models.Chef) (*models.Chef, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// DishStore persists dishes. A dish owns its chef links: saving a dish
// replaces the stored links with dish.Chefs.
type DishStore interface {
	List(ctx context.Context) ([]*models.Dish, error)
	GetByID(ctx context.Context, id int64) (*models.Dish, error)
	GetByCode(ctx context.Context, code string) (*models.Dish, error)
	ListByChef(ctx context.Context, chefID int64) ([]*models.Dish, error)
	Save(ctx context.Context, dish *models.Dish) (*models.Dish, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// UserStore persists users
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
}

// Repositories provides access to all repository instances
type Repositories struct {
	Chef ChefStore
	Dish DishStore
	User UserStore

	// Ping reports datastore health
	Ping func(ctx context.Context) error
}

// NewRepositories creates the Postgres-backed repositories
func NewRepositories(database *db.Postgres) *Repositories {
	return &Repositories{
		Chef: NewChefRepository(database.DB),
		Dish: NewDishRepository(database.DB),
		User: NewUserRepository(database.DB),
		Ping: database.HealthCheck,
	}
}
