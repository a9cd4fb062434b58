package models

import (
	"encoding/json"
	"time"
)

// Cuisine is the culinary origin of a dish
type Cuisine string

const (
	CuisineBritish  Cuisine = "BRITISH"
	CuisineItalian  Cuisine = "ITALIAN"
	CuisineAmerican Cuisine = "AMERICAN"
	CuisineFrench   Cuisine = "FRENCH"
	CuisineMexican  Cuisine = "MEXICAN"
	CuisineChinese  Cuisine = "CHINESE"
	CuisineJapanese Cuisine = "JAPANESE"
	CuisineIndian   Cuisine = "INDIAN"
)

// Cuisines lists every cuisine in display order
var Cuisines = []Cuisine{
	CuisineBritish,
	CuisineItalian,
	CuisineAmerican,
	CuisineFrench,
	CuisineMexican,
	CuisineChinese,
	CuisineJapanese,
	CuisineIndian,
}

// Valid reports whether c is a known cuisine
func (c Cuisine) Valid() bool {
	for _, known := range Cuisines {
		if c == known {
			return true
		}
	}
	return false
}

// Dish represents a menu item prepared by zero or more chefs
type Dish struct {
	ID              int64     `db:"id" json:"id"`
	DishCode        string    `db:"dish_code" json:"dish_code"`
	Name            string    `db:"name" json:"name"`
	Cuisine         Cuisine   `db:"cuisine" json:"cuisine"`
	PreparationTime int       `db:"preparation_time" json:"preparation_time"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	// Not stored directly in the database
	Chefs []*Chef `db:"-" json:"-"`
}

// DishRef is the short form of a dish embedded in chef responses
type DishRef struct {
	ID       int64  `json:"id"`
	DishCode string `json:"dish_code"`
	Name     string `json:"name"`
}

// MarshalJSON renders the dish with its chefs as references.
func (d Dish) MarshalJSON() ([]byte, error) {
	type alias Dish
	refs := make([]ChefRef, 0, len(d.Chefs))
	for _, c := range d.Chefs {
		refs = append(refs, ChefRef{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName})
	}
	return json.Marshal(struct {
		alias
		Chefs []ChefRef `json:"chefs"`
	}{
		alias: alias(d),
		Chefs: refs,
	})
}

// DishRequest is used for dish creation/update
type DishRequest struct {
	DishCode        string  `json:"dish_code"`
	Name            string  `json:"name"`
	Cuisine         Cuisine `json:"cuisine"`
	PreparationTime int     `json:"preparation_time"`
	ChefIDs         []int64 `json:"chef_ids"`
}
