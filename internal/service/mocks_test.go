package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

type mockChefStore struct {
	mock.Mock
}

func (m *mockChefStore) List(ctx context.Context) ([]*models.Chef, error) {
	args := m.Called(ctx)
	chefs, _ := args.Get(0).([]*models.Chef)
	return chefs, args.Error(1)
}

func (m *mockChefStore) GetByID(ctx context.Context, id int64) (*models.Chef, error) {
	args := m.Called(ctx, id)
	chef, _ := args.Get(0).(*models.Chef)
	return chef, args.Error(1)
}

func (m *mockChefStore) ListByIDs(ctx context.Context, ids []int64) ([]*models.Chef, error) {
	args := m.Called(ctx, ids)
	chefs, _ := args.Get(0).([]*models.Chef)
	return chefs, args.Error(1)
}

func (m *mockChefStore) Save(ctx context.Context, chef *models.Chef) (*models.Chef, error) {
	args := m.Called(ctx, chef)
	saved, _ := args.Get(0).(*models.Chef)
	return saved, args.Error(1)
}

func (m *mockChefStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockChefStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockDishStore struct {
	mock.Mock
}

func (m *mockDishStore) List(ctx context.Context) ([]*models.Dish, error) {
	args := m.Called(ctx)
	dishes, _ := args.Get(0).([]*models.Dish)
	return dishes, args.Error(1)
}

func (m *mockDishStore) GetByID(ctx context.Context, id int64) (*models.Dish, error) {
	args := m.Called(ctx, id)
	dish, _ := args.Get(0).(*models.Dish)
	return dish, args.Error(1)
}

func (m *mockDishStore) GetByCode(ctx context.Context, code string) (*models.Dish, error) {
	args := m.Called(ctx, code)
	dish, _ := args.Get(0).(*models.Dish)
	return dish, args.Error(1)
}

func (m *mockDishStore) ListByChef(ctx context.Context, chefID int64) ([]*models.Dish, error) {
	args := m.Called(ctx, chefID)
	dishes, _ := args.Get(0).([]*models.Dish)
	return dishes, args.Error(1)
}

// Save echoes the given dish when the expectation returns no dish
func (m *mockDishStore) Save(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	args := m.Called(ctx, dish)
	saved, _ := args.Get(0).(*models.Dish)
	if saved == nil && args.Error(1) == nil {
		saved = dish
	}
	return saved, args.Error(1)
}

func (m *mockDishStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDishStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// mockRepositories wires fresh mocks into a Repositories value
func mockRepositories() (*repository.Repositories, *mockChefStore, *mockDishStore) {
	chefs := &mockChefStore{}
	dishes := &mockDishStore{}
	return &repository.Repositories{Chef: chefs, Dish: dishes}, chefs, dishes
}
