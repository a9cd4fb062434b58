//go:build integration
// +build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pizza-nz/dish-admin/internal/config"
	"github.com/pizza-nz/dish-admin/internal/db"
	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

// setupRepositories starts a PostgreSQL container, applies the migrations
// and returns repositories bound to it
func setupRepositories(t *testing.T) *repository.Repositories {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("dish_admin"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.Database{
		Driver:         config.DriverPostgres,
		Host:           host,
		Port:           port.Int(),
		User:           "testuser",
		Password:       "testpass",
		DBName:         "dish_admin",
		SSLMode:        "disable",
		MigrationsPath: "../../../migrations",
	}

	require.NoError(t, db.Migrate(cfg))

	database, err := db.NewPostgres(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return repository.NewRepositories(database)
}

func TestPostgresRepositories(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Ping(ctx))

	gordon, err := repos.Chef.Save(ctx, &models.Chef{FirstName: "Gordon", LastName: "Ramsay", Gender: models.GenderMale})
	require.NoError(t, err)
	alice, err := repos.Chef.Save(ctx, &models.Chef{FirstName: "Alice", LastName: "Waters", Gender: models.GenderFemale})
	require.NoError(t, err)
	require.NotZero(t, gordon.ID)

	t.Run("dish save links chefs", func(t *testing.T) {
		dish := &models.Dish{DishCode: "D01", Name: "Scrambled Eggs", Cuisine: models.CuisineBritish, PreparationTime: 10}
		models.LinkChefs(dish, []*models.Chef{gordon, alice})

		saved, err := repos.Dish.Save(ctx, dish)
		require.NoError(t, err)
		require.NotZero(t, saved.ID)

		got, err := repos.Dish.GetByCode(ctx, "D01")
		require.NoError(t, err)
		require.ElementsMatch(t, []int64{gordon.ID, alice.ID}, got.ChefIDs())

		byChef, err := repos.Dish.ListByChef(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, byChef, 1)
	})

	t.Run("duplicate dish code conflicts", func(t *testing.T) {
		_, err := repos.Dish.Save(ctx, &models.Dish{DishCode: "D01", Name: "Copy", Cuisine: models.CuisineItalian})
		require.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("chef lookup shares root instance", func(t *testing.T) {
		chef, err := repos.Chef.GetByID(ctx, gordon.ID)
		require.NoError(t, err)
		require.Len(t, chef.Dishes, 1)
		require.True(t, chef.Dishes[0].Chefs[0] == chef || chef.Dishes[0].Chefs[1] == chef)
	})

	t.Run("chef save keeps links", func(t *testing.T) {
		alice.Bio = "Chez Panisse"
		alice.Dishes = nil
		_, err := repos.Chef.Save(ctx, alice)
		require.NoError(t, err)

		byChef, err := repos.Dish.ListByChef(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, byChef, 1)
	})

	t.Run("chef delete cascades links", func(t *testing.T) {
		require.NoError(t, repos.Chef.Delete(ctx, gordon.ID))

		got, err := repos.Dish.GetByCode(ctx, "D01")
		require.NoError(t, err)
		require.Equal(t, []int64{alice.ID}, got.ChefIDs())

		_, err = repos.Chef.GetByID(ctx, gordon.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)
		require.ErrorIs(t, repos.Chef.Delete(ctx, gordon.ID), repository.ErrNotFound)
	})

	t.Run("list by ids", func(t *testing.T) {
		chefs, err := repos.Chef.ListByIDs(ctx, []int64{alice.ID, alice.ID, 9999})
		require.NoError(t, err)
		require.Len(t, chefs, 1)
		require.Len(t, chefs[0].Dishes, 1)

		empty, err := repos.Chef.ListByIDs(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, empty)
	})

	t.Run("users", func(t *testing.T) {
		u, err := repos.User.Create(ctx, models.User{Username: "admin", PasswordHash: "x", Role: models.RoleAdmin})
		require.NoError(t, err)

		_, err = repos.User.Create(ctx, models.User{Username: "admin", PasswordHash: "y", Role: models.RoleUser})
		require.ErrorIs(t, err, repository.ErrConflict)

		got, err := repos.User.GetByUsername(ctx, "admin")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, models.RoleAdmin, got.Role)

		_, err = repos.User.GetByID(ctx, 9999)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("counts", func(t *testing.T) {
		n, err := repos.Dish.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		n, err = repos.Chef.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})
}
