package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Gender of a chef
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Genders lists every gender in display order
var Genders = []Gender{GenderMale, GenderFemale}

// Valid reports whether g is a known gender
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ParseGender converts a form value into a Gender
func ParseGender(s string) (Gender, error) {
	g := Gender(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown gender %q", s)
	}
	return g, nil
}

// Chef represents a cook that can be linked to many dishes
type Chef struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Bio       string    `db:"bio" json:"bio"`
	Gender    Gender    `db:"gender" json:"gender"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Not stored directly in the database
	Dishes []*Dish `db:"-" json:"-"`
}

// ChefRef is the short form of a chef embedded in dish responses
type ChefRef struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MarshalJSON renders the chef with its dishes as references so the
// chef/dish graph never recurses.
func (c Chef) MarshalJSON() ([]byte, error) {
	type alias Chef
	refs := make([]DishRef, 0, len(c.Dishes))
	for _, d := range c.Dishes {
		refs = append(refs, DishRef{ID: d.ID, DishCode: d.DishCode, Name: d.Name})
	}
	return json.Marshal(struct {
		alias
		Dishes []DishRef `json:"dishes"`
	}{
		alias:  alias(c),
		Dishes: refs,
	})
}

// ChefRequest is used for chef creation/update
type ChefRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Gender    Gender `json:"gender"`
}
