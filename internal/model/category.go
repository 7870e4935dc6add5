package model

// Category filter values accepted by the store
const (
	CategoryAll        = "all"
	CategoryVegetarian = "vegetarian"
	CategoryQuick      = "quick"
	CategoryDessert    = "dessert"
)

// QuickCookingTime is the longest cooking time, in minutes, of a recipe tagged quick
const QuickCookingTime = 30

// Categories lists the known filter values in display order
func Categories() []string {
	return []string{CategoryAll, CategoryVegetarian, CategoryQuick, CategoryDessert}
}
