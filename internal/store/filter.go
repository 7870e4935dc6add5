package store

import (
	"slices"
	"strings"

	"github.com/pageza/recipebox/internal/model"
)

// View selects the optional predicates of a filtered read
type View struct {
	// MineOnly keeps recipes created by the session user
	MineOnly bool
	// FavoritesOnly keeps favorite recipes
	FavoritesOnly bool
}

// Criteria is everything a filtered read depends on
type Criteria struct {
	SearchTerm    string
	ActiveFilter  string
	UserID        string
	Favorites     []string
	MineOnly      bool
	FavoritesOnly bool
	Mode          CategoryMode
}

// Filter returns the recipes matching the current search term and active
// filter, narrowed by v. Order is preserved.
func (s *RecipeStore) Filter(v View) []model.Recipe {
	st := s.read()
	c := Criteria{
		SearchTerm:    st.SearchTerm,
		ActiveFilter:  st.ActiveFilter,
		Favorites:     st.Favorites,
		MineOnly:      v.MineOnly,
		FavoritesOnly: v.FavoritesOnly,
		Mode:          s.opts.categories,
	}
	if st.User != nil {
		c.UserID = st.User.ID
	}
	return FilterRecipes(st.Recipes, c)
}

// FilterRecipes keeps the recipes satisfying every predicate of c:
// search term, ownership, favorites and category.
func FilterRecipes(recipes []model.Recipe, c Criteria) []model.Recipe {
	term := strings.ToLower(c.SearchTerm)
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !matchesSearch(r, term) {
			continue
		}
		if c.MineOnly && (c.UserID == "" || r.CreatedBy != c.UserID) {
			continue
		}
		if c.FavoritesOnly && !slices.Contains(c.Favorites, r.ID) {
			continue
		}
		if !matchesCategory(r, c.ActiveFilter, c.Mode) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

// matchesSearch expects term already lower cased
func matchesSearch(r model.Recipe, term string) bool {
	if term == "" || strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}

func matchesCategory(r model.Recipe, filter string, mode CategoryMode) bool {
	if mode != CategoryTags || filter == "" || filter == model.CategoryAll {
		return true
	}
	return slices.ContainsFunc(r.Tags, func(tag string) bool {
		return strings.EqualFold(tag, filter)
	})
}
