package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

func saveChef(t *testing.T, repos *repository.Repositories, first string) *models.Chef {
	t.Helper()
	c, err := repos.Chef.Save(context.Background(), &models.Chef{
		FirstName: first,
		LastName:  "Test",
		Gender:    models.GenderFemale,
	})
	require.NoError(t, err)
	return c
}

func saveDish(t *testing.T, repos *repository.Repositories, code string, chefs ...*models.Chef) *models.Dish {
	t.Helper()
	d, err := repos.Dish.Save(context.Background(), &models.Dish{
		DishCode: code,
		Name:     "Dish " + code,
		Cuisine:  models.CuisineItalian,
		Chefs:    chefs,
	})
	require.NoError(t, err)
	return d
}

func TestDishSave_AssignsIDAndLinks(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	a := saveChef(t, repos, "Ada")
	b := saveChef(t, repos, "Bo")
	d := saveDish(t, repos, "D01", a, b)

	require.NotZero(t, d.ID)
	require.False(t, d.CreatedAt.IsZero())

	got, err := repos.Dish.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{a.ID, b.ID}, got.ChefIDs())

	chef, err := repos.Chef.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{d.ID}, chef.DishIDs())
}

func TestDishSave_RewritesLinks(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	a := saveChef(t, repos, "Ada")
	b := saveChef(t, repos, "Bo")
	d := saveDish(t, repos, "D01", a, b)

	d.Chefs = []*models.Chef{b}
	_, err := repos.Dish.Save(ctx, d)
	require.NoError(t, err)

	dishes, err := repos.Dish.ListByChef(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, dishes)

	dishes, err = repos.Dish.ListByChef(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
}

func TestDishSave_DuplicateCode(t *testing.T) {
	repos := NewRepositories()
	saveDish(t, repos, "D01")

	_, err := repos.Dish.Save(context.Background(), &models.Dish{
		DishCode: "D01",
		Name:     "Again",
		Cuisine:  models.CuisineFrench,
	})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestDishSave_UnknownID(t *testing.T) {
	repos := NewRepositories()

	_, err := repos.Dish.Save(context.Background(), &models.Dish{
		ID:       42,
		DishCode: "D42",
		Name:     "Ghost",
		Cuisine:  models.CuisineFrench,
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChefSave_LeavesLinksAlone(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	a := saveChef(t, repos, "Ada")
	d := saveDish(t, repos, "D01", a)

	// A chef value without dishes must not drop the stored link
	_, err := repos.Chef.Save(ctx, &models.Chef{ID: a.ID, FirstName: "Ada", LastName: "Renamed", Gender: models.GenderFemale})
	require.NoError(t, err)

	got, err := repos.Dish.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{a.ID}, got.ChefIDs())
	require.Equal(t, "Renamed", got.Chefs[0].LastName)
}

func TestChefGetByID_SharesRootInstance(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	a := saveChef(t, repos, "Ada")
	b := saveChef(t, repos, "Bo")
	saveDish(t, repos, "D01", a, b)
	saveDish(t, repos, "D02", a)

	chef, err := repos.Chef.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, chef.Dishes, 2)
	for _, d := range chef.Dishes {
		require.True(t, d.HasChef(chef))
		require.Contains(t, d.Chefs, chef)
	}

	models.UnlinkChef(chef)
	require.Empty(t, chef.Dishes)
}

func TestChefDelete_CascadesLinksOnly(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	a := saveChef(t, repos, "Ada")
	b := saveChef(t, repos, "Bo")
	d := saveDish(t, repos, "D01", a, b)

	require.NoError(t, repos.Chef.Delete(ctx, a.ID))

	got, err := repos.Dish.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{b.ID}, got.ChefIDs())

	n, err := repos.Dish.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.ErrorIs(t, repos.Chef.Delete(ctx, a.ID), repository.ErrNotFound)
}

func TestChefListByIDs_SkipsUnknownAndDuplicates(t *testing.T) {
	repos := NewRepositories()
	a := saveChef(t, repos, "Ada")
	b := saveChef(t, repos, "Bo")

	chefs, err := repos.Chef.ListByIDs(context.Background(), []int64{b.ID, 99, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, chefs, 2)
	require.Equal(t, a.ID, chefs[0].ID)
	require.Equal(t, b.ID, chefs[1].ID)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	d := saveDish(t, repos, "D01")

	got, err := repos.Dish.GetByID(ctx, d.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repos.Dish.GetByCode(ctx, "D01")
	require.NoError(t, err)
	require.Equal(t, "Dish D01", again.Name)
}

func TestUserCreate_UniqueUsername(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	u, err := repos.User.Create(ctx, models.User{Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	_, err = repos.User.Create(ctx, models.User{Username: "admin", Role: models.RoleUser})
	require.ErrorIs(t, err, repository.ErrConflict)

	got, err := repos.User.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = repos.User.GetByID(ctx, 99)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReset(t *testing.T) {
	store := NewStore()
	repos := store.Repositories()
	saveChef(t, repos, "Ada")

	store.Reset()

	n, err := repos.Chef.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
	require.NoError(t, repos.Ping(context.Background()))
}
