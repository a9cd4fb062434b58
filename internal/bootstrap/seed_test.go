package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pizza-nz/dish-admin/internal/config"
	"github.com/pizza-nz/dish-admin/internal/db/memory"
	"github.com/pizza-nz/dish-admin/internal/models"
	"github.com/pizza-nz/dish-admin/internal/service"
)

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	hasher := service.BcryptHasher{Cost: bcrypt.MinCost}
	cfg := config.Seed{Enabled: true, AdminPassword: "admin-pw", UserPassword: "user-pw"}

	require.NoError(t, Seed(ctx, repos, hasher, cfg))
	require.NoError(t, Seed(ctx, repos, hasher, cfg))

	chefs, err := repos.Chef.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, chefs)

	dishes, err := repos.Dish.List(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 5)
	for _, d := range dishes {
		require.Empty(t, d.Chefs, "seeded dishes are not linked to chefs")
	}

	admin, err := repos.User.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.NoError(t, hasher.Compare(admin.PasswordHash, "admin-pw"))

	user, err := repos.User.GetByUsername(ctx, "user")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, user.Role)
}

func TestSeed_KeepsExistingData(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	hasher := service.BcryptHasher{Cost: bcrypt.MinCost}

	_, err := repos.Dish.Save(ctx, &models.Dish{DishCode: "X1", Name: "House Special", Cuisine: models.CuisineIndian})
	require.NoError(t, err)

	require.NoError(t, Seed(ctx, repos, hasher, config.Seed{AdminPassword: "a", UserPassword: "u"}))

	n, err := repos.Dish.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = repos.Chef.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, n)
}
