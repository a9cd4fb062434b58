package models

import "slices"

// sameChef reports whether a and b denote the same chef record. Unsaved
// chefs (ID 0) are only equal to themselves.
func sameChef(a, b *Chef) bool {
	if a == b {
		return true
	}
	return a != nil && b != nil && a.ID != 0 && a.ID == b.ID
}

func sameDish(a, b *Dish) bool {
	if a == b {
		return true
	}
	return a != nil && b != nil && a.ID != 0 && a.ID == b.ID
}

// HasChef reports whether c is among the dish's chefs
func (d *Dish) HasChef(c *Chef) bool {
	return slices.ContainsFunc(d.Chefs, func(x *Chef) bool { return sameChef(x, c) })
}

// HasDish reports whether d is among the chef's dishes
func (c *Chef) HasDish(d *Dish) bool {
	return slices.ContainsFunc(c.Dishes, func(x *Dish) bool { return sameDish(x, d) })
}

// ChefIDs returns the IDs of the dish's chefs
func (d *Dish) ChefIDs() []int64 {
	ids := make([]int64, 0, len(d.Chefs))
	for _, c := range d.Chefs {
		ids = append(ids, c.ID)
	}
	return ids
}

// DishIDs returns the IDs of the chef's dishes
func (c *Chef) DishIDs() []int64 {
	ids := make([]int64, 0, len(c.Dishes))
	for _, d := range c.Dishes {
		ids = append(ids, d.ID)
	}
	return ids
}

// LinkChefs makes chefs the dish's chef set and adds the dish to every chef
// that does not list it yet. Chefs previously linked to the dish but absent
// from chefs keep their own reference to it; the dish side owns the stored
// association.
func LinkChefs(d *Dish, chefs []*Chef) {
	d.Chefs = slices.Clone(chefs)
	for _, c := range d.Chefs {
		if !c.HasDish(d) {
			c.Dishes = append(c.Dishes, d)
		}
	}
}

// UnlinkChef removes c from the chef set of every dish it is linked to and
// empties its own dish list.
func UnlinkChef(c *Chef) {
	for _, d := range c.Dishes {
		d.Chefs = slices.DeleteFunc(d.Chefs, func(x *Chef) bool { return sameChef(x, c) })
	}
	c.Dishes = []*Dish{}
}
