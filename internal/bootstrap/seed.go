// Package bootstrap loads the startup fixtures.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pizza-nz/dish-admin/internal/config"
	"github.com/pizza-nz/dish-admin/internal/db/repository"
	"github.com/pizza-nz/dish-admin/internal/models"
	"github.com/pizza-nz/dish-admin/internal/service"
)

var seedChefs = []models.Chef{
	{FirstName: "Gordon", LastName: "Ramsay", Bio: "Fiery British chef known for Hell's Kitchen.", Gender: models.GenderMale},
	{FirstName: "Massimo", LastName: "Bottura", Bio: "Chef patron of Osteria Francescana in Modena.", Gender: models.GenderMale},
	{FirstName: "Alice", LastName: "Waters", Bio: "Pioneer of California cuisine at Chez Panisse.", Gender: models.GenderFemale},
	{FirstName: "Heston", LastName: "Blumenthal", Bio: "Experimental cook behind The Fat Duck.", Gender: models.GenderMale},
	{FirstName: "Dominique", LastName: "Crenn", Bio: "French chef of Atelier Crenn in San Francisco.", Gender: models.GenderFemale},
}

var seedDishes = []models.Dish{
	{DishCode: "D01", Name: "Scrambled Eggs", Cuisine: models.CuisineBritish, PreparationTime: 10},
	{DishCode: "D02", Name: "Tiramisu", Cuisine: models.CuisineItalian, PreparationTime: 30},
	{DishCode: "D03", Name: "Seasonal Salad", Cuisine: models.CuisineAmerican, PreparationTime: 20},
	{DishCode: "D04", Name: "Lobster Ravioli", Cuisine: models.CuisineFrench, PreparationTime: 80},
	{DishCode: "D05", Name: "Tagliatelle al Ragu", Cuisine: models.CuisineItalian, PreparationTime: 60},
}

// Seed inserts the fixture chefs, dishes and accounts. Chefs and dishes are
// only added to an empty store and accounts only when the username is free,
// so running it again changes nothing.
func Seed(ctx context.Context, repos *repository.Repositories, hasher service.PasswordHasher, cfg config.Seed) error {
	n, err := repos.Chef.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count chefs: %w", err)
	}
	if n == 0 {
		for _, c := range seedChefs {
			chef := c
			if _, err := repos.Chef.Save(ctx, &chef); err != nil {
				return fmt.Errorf("failed to seed chef %s %s: %w", c.FirstName, c.LastName, err)
			}
		}
		log.Printf("Seeded %d chefs", len(seedChefs))
	}

	n, err = repos.Dish.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count dishes: %w", err)
	}
	if n == 0 {
		for _, d := range seedDishes {
			dish := d
			if _, err := repos.Dish.Save(ctx, &dish); err != nil {
				return fmt.Errorf("failed to seed dish %s: %w", d.DishCode, err)
			}
		}
		log.Printf("Seeded %d dishes", len(seedDishes))
	}

	accounts := []struct {
		username string
		password string
		role     models.Role
	}{
		{"admin", cfg.AdminPassword, models.RoleAdmin},
		{"user", cfg.UserPassword, models.RoleUser},
	}
	for _, a := range accounts {
		if err := seedUser(ctx, repos, hasher, a.username, a.password, a.role); err != nil {
			return err
		}
	}

	return nil
}

func seedUser(ctx context.Context, repos *repository.Repositories, hasher service.PasswordHasher, username, password string, role models.Role) error {
	_, err := repos.User.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password for %s: %w", username, err)
	}

	_, err = repos.User.Create(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    username,
		Role:         role,
	})
	if err != nil {
		return fmt.Errorf("failed to seed user %s: %w", username, err)
	}

	log.Printf("Seeded user %s (%s)", username, role)
	return nil
}
