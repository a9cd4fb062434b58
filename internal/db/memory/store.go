// Package memory provides an in-memory implementation of the repository
// stores. It backs the "memory" database driver and the service tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// Store holds chefs, dishes, users and the dish/chef links behind one lock.
// Records are stored as scalar copies; every read hands out fresh values.
type Store struct {
	mu sync.RWMutex

	nextChefID int64
	nextDishID int64
	nextUserID int64

	chefs  map[int64]models.Chef
	dishes map[int64]models.Dish
	users  map[int64]models.User

	// dish id -> set of chef ids
	links map[int64]map[int64]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		chefs:  make(map[int64]models.Chef),
		dishes: make(map[int64]models.Dish),
		users:  make(map[int64]models.User),
		links:  make(map[int64]map[int64]struct{}),
	}
}

// NewRepositories creates repositories backed by a fresh Store.
func NewRepositories() *repository.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Chef: &ChefRepository{s: s},
		Dish: &DishRepository{s: s},
		User: &UserRepository{s: s},
		Ping: func(context.Context) error { return nil },
	}
}

// Reset clears all state. Useful for test setup/teardown.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextChefID, s.nextDishID, s.nextUserID = 0, 0, 0
	s.chefs = make(map[int64]models.Chef)
	s.dishes = make(map[int64]models.Dish)
	s.users = make(map[int64]models.User)
	s.links = make(map[int64]map[int64]struct{})
}

// The helpers below expect s.mu to be held.

func (s *Store) chefIDsOf(dishID int64) []int64 {
	return slices.Sorted(maps.Keys(s.links[dishID]))
}

func (s *Store) dishIDsOf(chefID int64) []int64 {
	var ids []int64
	for dishID, chefs := range s.links {
		if _, ok := chefs[chefID]; ok {
			ids = append(ids, dishID)
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *Store) shallowChef(id int64) *models.Chef {
	c := s.chefs[id]
	c.Dishes = nil
	return &c
}

func (s *Store) shallowDish(id int64) *models.Dish {
	d := s.dishes[id]
	d.Chefs = nil
	return &d
}

// dishWithChefs returns the dish with its chefs, the chefs without dishes
func (s *Store) dishWithChefs(id int64) *models.Dish {
	d := s.shallowDish(id)
	d.Chefs = []*models.Chef{}
	for _, chefID := range s.chefIDsOf(id) {
		d.Chefs = append(d.Chefs, s.shallowChef(chefID))
	}
	return d
}

// chefWithDishes returns the chef with its dishes, the dishes without chefs
func (s *Store) chefWithDishes(id int64) *models.Chef {
	c := s.shallowChef(id)
	c.Dishes = []*models.Dish{}
	for _, dishID := range s.dishIDsOf(id) {
		c.Dishes = append(c.Dishes, s.shallowDish(dishID))
	}
	return c
}

func now() time.Time {
	return time.Now().UTC()
}
