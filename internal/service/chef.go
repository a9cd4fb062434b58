package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// ChefService handles chef business logic
type ChefService struct {
	repos *repository.Repositories
}

// NewChefService creates a new chef service
func NewChefService(repos *repository.Repositories) *ChefService {
	return &ChefService{
		repos: repos,
	}
}

// ListChefs retrieves all chefs
func (s *ChefService) ListChefs(ctx context.Context) ([]*models.Chef, error) {
	return s.repos.Chef.List(ctx)
}

// FindByID retrieves a chef with its dishes
func (s *ChefService) FindByID(ctx context.Context, id int64) (*models.Chef, error) {
	return s.repos.Chef.GetByID(ctx, id)
}

// CreateChef creates a chef with no dishes
func (s *ChefService) CreateChef(ctx context.Context, req models.ChefRequest) (*models.Chef, error) {
	if err := validateChef(req); err != nil {
		return nil, err
	}

	chef := &models.Chef{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Gender:    req.Gender,
		Dishes:    []*models.Dish{},
	}

	saved, err := s.repos.Chef.Save(ctx, chef)
	if err != nil {
		return nil, fmt.Errorf("failed to create chef: %w", err)
	}

	return saved, nil
}

// UpdateChef overwrites a chef's own fields. Its dishes are untouched.
func (s *ChefService) UpdateChef(ctx context.Context, id int64, req models.ChefRequest) (*models.Chef, error) {
	if err := validateChef(req); err != nil {
		return nil, err
	}

	// Get the existing chef
	chef, err := s.repos.Chef.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get chef: %w", err)
	}

	// Update the fields
	chef.FirstName = req.FirstName
	chef.LastName = req.LastName
	chef.Bio = req.Bio
	chef.Gender = req.Gender

	saved, err := s.repos.Chef.Save(ctx, chef)
	if err != nil {
		return nil, fmt.Errorf("failed to update chef: %w", err)
	}

	return saved, nil
}

// DeleteChef detaches the chef from all of its dishes and deletes it. The
// dishes themselves are kept and never saved here.
func (s *ChefService) DeleteChef(ctx context.Context, id int64) error {
	chef, err := s.repos.Chef.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get chef: %w", err)
	}

	models.UnlinkChef(chef)

	if err := s.repos.Chef.Delete(ctx, chef.ID); err != nil {
		return fmt.Errorf("failed to delete chef: %w", err)
	}

	return nil
}

func validateChef(req models.ChefRequest) error {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if !req.Gender.Valid() {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, req.Gender)
	}
	return nil
}
