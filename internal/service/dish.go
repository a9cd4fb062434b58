package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// DishService handles dish business logic and keeps the chef side of each
// dish's association in step with the dish side
type DishService struct {
	repos *repository.Repositories
}

// NewDishService creates a new dish service
func NewDishService(repos *repository.Repositories) *DishService {
	return &DishService{
		repos: repos,
	}
}

// ListDishes retrieves all dishes
func (s *DishService) ListDishes(ctx context.Context) ([]*models.Dish, error) {
	return s.repos.Dish.List(ctx)
}

// FindByDishCode retrieves a dish by its dish code
func (s *DishService) FindByDishCode(ctx context.Context, code string) (*models.Dish, error) {
	return s.repos.Dish.GetByCode(ctx, code)
}

// FindByID retrieves a dish by ID
func (s *DishService) FindByID(ctx context.Context, id int64) (*models.Dish, error) {
	return s.repos.Dish.GetByID(ctx, id)
}

// ListByChef retrieves the dishes linked to a chef
func (s *DishService) ListByChef(ctx context.Context, chefID int64) ([]*models.Dish, error) {
	return s.repos.Dish.ListByChef(ctx, chefID)
}

// CreateDish validates the request, links the requested chefs and saves the dish
func (s *DishService) CreateDish(ctx context.Context, req models.DishRequest) (*models.Dish, error) {
	if err := validateDish(req); err != nil {
		return nil, err
	}

	chefs, err := s.repos.Chef.ListByIDs(ctx, req.ChefIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chefs: %w", err)
	}

	dish := &models.Dish{
		DishCode:        req.DishCode,
		Name:            req.Name,
		Cuisine:         req.Cuisine,
		PreparationTime: req.PreparationTime,
	}
	models.LinkChefs(dish, chefs)

	saved, err := s.repos.Dish.Save(ctx, dish)
	if err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	return saved, nil
}

// UpdateDish overwrites an existing dish and its chef set. Chefs dropped
// from the set are not unlinked in memory; the stored association follows
// the dish.
func (s *DishService) UpdateDish(ctx context.Context, id int64, req models.DishRequest) (*models.Dish, error) {
	if err := validateDish(req); err != nil {
		return nil, err
	}

	// Get the existing dish
	dish, err := s.repos.Dish.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}

	chefs, err := s.repos.Chef.ListByIDs(ctx, req.ChefIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chefs: %w", err)
	}

	// Update the fields
	dish.DishCode = req.DishCode
	dish.Name = req.Name
	dish.Cuisine = req.Cuisine
	dish.PreparationTime = req.PreparationTime
	models.LinkChefs(dish, chefs)

	saved, err := s.repos.Dish.Save(ctx, dish)
	if err != nil {
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}

	return saved, nil
}

// DeleteDish deletes a dish. Its chefs stay.
func (s *DishService) DeleteDish(ctx context.Context, id int64) error {
	if err := s.repos.Dish.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	return nil
}

func validateDish(req models.DishRequest) error {
	switch {
	case strings.TrimSpace(req.DishCode) == "":
		return fmt.Errorf("%w: dish code is required", ErrInvalidInput)
	case strings.TrimSpace(req.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case !req.Cuisine.Valid():
		return fmt.Errorf("%w: unknown cuisine %q", ErrInvalidInput, req.Cuisine)
	case req.PreparationTime < 0:
		return fmt.Errorf("%w: preparation time must not be negative", ErrInvalidInput)
	}
	return nil
}
