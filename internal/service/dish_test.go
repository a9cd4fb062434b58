package service

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/pizza-nz/dish-admin/internal/db/memory"
	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
)

func validDishRequest(code string, chefIDs ...int64) models.DishRequest {
	return models.DishRequest{
		DishCode:        code,
		Name:            "Dish",
		Cuisine:         models.CuisineItalian,
		PreparationTime: 10,
		ChefIDs:         chefIDs,
	}
}

func createChefs(t *testing.T, svc *ChefService, n int) []*models.Chef {
	t.Helper()
	chefs := make([]*models.Chef, 0, n)
	for i := 0; i < n; i++ {
		c, err := svc.CreateChef(context.Background(), models.ChefRequest{
			FirstName: "Test",
			LastName:  "Chef",
			Gender:    models.GenderMale,
		})
		require.NoError(t, err)
		chefs = append(chefs, c)
	}
	return chefs
}

func TestCreateDish_LinksResolvedChefs(t *testing.T) {
	ctx := context.Background()
	repos, chefStore, dishStore := mockRepositories()

	gordon := &models.Chef{ID: 1, FirstName: "Gordon", Dishes: []*models.Dish{}}
	chefStore.On("ListByIDs", mock.Anything, []int64{1, 1, 7}).Return([]*models.Chef{gordon}, nil).Once()
	dishStore.On("Save", mock.Anything, mock.AnythingOfType("*models.Dish")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Dish).ID = 10 }).
		Return(nil, nil).Once()

	svc := NewDishService(repos)
	dish, err := svc.CreateDish(ctx, validDishRequest("D1", 1, 1, 7))
	require.NoError(t, err)

	require.Equal(t, int64(10), dish.ID)
	require.Len(t, dish.Chefs, 1)
	require.Same(t, gordon, dish.Chefs[0])
	require.Len(t, gordon.Dishes, 1)
	require.Same(t, dish, gordon.Dishes[0])

	chefStore.AssertExpectations(t)
	dishStore.AssertExpectations(t)
}

func TestCreateDish_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		edit func(*models.DishRequest)
	}{
		{"empty code", func(r *models.DishRequest) { r.DishCode = "" }},
		{"blank code", func(r *models.DishRequest) { r.DishCode = "   " }},
		{"empty name", func(r *models.DishRequest) { r.Name = "" }},
		{"missing cuisine", func(r *models.DishRequest) { r.Cuisine = "" }},
		{"unknown cuisine", func(r *models.DishRequest) { r.Cuisine = "KLINGON" }},
		{"negative preparation time", func(r *models.DishRequest) { r.PreparationTime = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, chefStore, dishStore := mockRepositories()
			svc := NewDishService(repos)

			req := validDishRequest("D1", 1)
			tt.edit(&req)

			_, err := svc.CreateDish(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)

			// Nothing is resolved or saved
			chefStore.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
			dishStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateDish_NotFound(t *testing.T) {
	repos, _, dishStore := mockRepositories()
	dishStore.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound).Once()

	svc := NewDishService(repos)
	_, err := svc.UpdateDish(context.Background(), 5, validDishRequest("D5"))
	require.ErrorIs(t, err, ErrNotFound)
	dishStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateDish_ReplacesChefs(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	dishes := NewDishService(repos)
	chefs := createChefs(t, NewChefService(repos), 3)

	dish, err := dishes.CreateDish(ctx, validDishRequest("D1", chefs[0].ID, chefs[1].ID))
	require.NoError(t, err)

	req := validDishRequest("D1-B", chefs[1].ID, chefs[2].ID)
	req.Name = "Renamed"
	req.Cuisine = models.CuisineJapanese
	updated, err := dishes.UpdateDish(ctx, dish.ID, req)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, []int64{chefs[1].ID, chefs[2].ID}, updated.ChefIDs())

	// The stored association follows the dish
	byFirst, err := dishes.ListByChef(ctx, chefs[0].ID)
	require.NoError(t, err)
	require.Empty(t, byFirst)

	_, err = dishes.FindByDishCode(ctx, "D1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindByDishCode_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := NewDishService(repos)

	created, err := svc.CreateDish(ctx, models.DishRequest{
		DishCode:        "D04",
		Name:            "Lobster Ravioli",
		Cuisine:         models.CuisineFrench,
		PreparationTime: 80,
	})
	require.NoError(t, err)

	found, err := svc.FindByDishCode(ctx, "D04")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, "Lobster Ravioli", found.Name)
	require.Equal(t, models.CuisineFrench, found.Cuisine)
	require.Equal(t, 80, found.PreparationTime)
	require.Empty(t, found.Chefs)

	_, err = svc.FindByDishCode(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.FindByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDish_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc := NewDishService(memory.NewRepositories())

	_, err := svc.CreateDish(ctx, validDishRequest("D1"))
	require.NoError(t, err)
	_, err = svc.CreateDish(ctx, validDishRequest("D1"))
	require.ErrorIs(t, err, ErrConflict)
}

func TestDeleteDish_KeepsChefs(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	dishes := NewDishService(repos)
	chefSvc := NewChefService(repos)
	chefs := createChefs(t, chefSvc, 1)

	dish, err := dishes.CreateDish(ctx, validDishRequest("D1", chefs[0].ID))
	require.NoError(t, err)

	require.NoError(t, dishes.DeleteDish(ctx, dish.ID))
	require.ErrorIs(t, dishes.DeleteDish(ctx, dish.ID), ErrNotFound)

	chef, err := chefSvc.FindByID(ctx, chefs[0].ID)
	require.NoError(t, err)
	require.Empty(t, chef.Dishes)
}

func TestCreateDish_InvalidInputPersistsNothing(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		ctx := context.Background()
		repos := memory.NewRepositories()
		svc := NewDishService(repos)

		req := models.DishRequest{
			DishCode:        rapid.SampledFrom([]string{"", " ", "D1"}).Draw(r, "code"),
			Name:            rapid.SampledFrom([]string{"", "Dish"}).Draw(r, "name"),
			Cuisine:         rapid.SampledFrom([]models.Cuisine{"", "NONE", models.CuisineIndian}).Draw(r, "cuisine"),
			PreparationTime: rapid.IntRange(-5, 5).Draw(r, "prep"),
		}
		valid := req.DishCode == "D1" && req.Name != "" && req.Cuisine.Valid() && req.PreparationTime >= 0

		_, err := svc.CreateDish(ctx, req)
		n, countErr := repos.Dish.Count(ctx)
		require.NoError(r, countErr)

		if valid {
			require.NoError(r, err)
			require.Equal(r, 1, n)
		} else {
			require.ErrorIs(r, err, ErrInvalidInput)
			require.Zero(r, n)
		}
	})
}

// TestListByChef_MatchesLinks runs random create/update/delete sequences and
// checks ListByChef against an independently tracked link table.
func TestListByChef_MatchesLinks(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		ctx := context.Background()
		repos := memory.NewRepositories()
		dishes := NewDishService(repos)
		chefSvc := NewChefService(repos)

		numChefs := rapid.IntRange(1, 4).Draw(r, "numChefs")
		var chefIDs []int64
		for i := 0; i < numChefs; i++ {
			c, err := chefSvc.CreateChef(ctx, models.ChefRequest{FirstName: "C", LastName: "C", Gender: models.GenderFemale})
			require.NoError(r, err)
			chefIDs = append(chefIDs, c.ID)
		}

		// dish id -> chef ids expected to be linked
		want := map[int64][]int64{}
		var dishIDs []int64
		codes := 0

		steps := rapid.IntRange(1, 20).Draw(r, "steps")
		for i := 0; i < steps; i++ {
			linked := rapid.SliceOfDistinct(rapid.SampledFrom(chefIDs), func(id int64) int64 { return id }).Draw(r, "chefs")

			switch op := rapid.IntRange(0, 3).Draw(r, "op"); {
			case op <= 1 || len(dishIDs) == 0:
				codes++
				d, err := dishes.CreateDish(ctx, validDishRequest("D"+string(rune('A'+codes)), linked...))
				require.NoError(r, err)
				dishIDs = append(dishIDs, d.ID)
				want[d.ID] = linked
			case op == 2:
				id := rapid.SampledFrom(dishIDs).Draw(r, "update")
				d, err := dishes.FindByID(ctx, id)
				require.NoError(r, err)
				_, err = dishes.UpdateDish(ctx, id, validDishRequest(d.DishCode, linked...))
				require.NoError(r, err)
				want[id] = linked
			default:
				id := rapid.SampledFrom(dishIDs).Draw(r, "delete")
				require.NoError(r, dishes.DeleteDish(ctx, id))
				dishIDs = slices.DeleteFunc(dishIDs, func(x int64) bool { return x == id })
				delete(want, id)
			}
		}

		for _, chefID := range chefIDs {
			var expected []int64
			for dishID, linked := range want {
				if slices.Contains(linked, chefID) {
					expected = append(expected, dishID)
				}
			}

			got, err := dishes.ListByChef(ctx, chefID)
			require.NoError(r, err)
			var gotIDs []int64
			for _, d := range got {
				gotIDs = append(gotIDs, d.ID)
			}
			require.ElementsMatch(r, expected, gotIDs)
		}
	})
}
