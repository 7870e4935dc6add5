package model

import (
	"slices"
	"time"
)

// SystemCreator is the CreatedBy value of generated seed recipes.
const SystemCreator = "system"

// Recipe represents a recipe held by the store
type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	CookingTime  int       `json:"cookingTime"`
	Rating       float64   `json:"rating"`
	Image        string    `json:"image"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the recipe
func (r Recipe) Clone() Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Instructions = slices.Clone(r.Instructions)
	r.Tags = slices.Clone(r.Tags)
	return r
}

// HasTag reports whether the recipe carries the given category tag
func (r Recipe) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// RecipeDraft holds the caller supplied fields of a new recipe. The store
// assigns ID, CreatedBy and CreatedAt.
type RecipeDraft struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  int      `json:"cookingTime"`
	Rating       float64  `json:"rating"`
	Image        string   `json:"image"`
	Tags         []string `json:"tags,omitempty"`
}

// NewRecipe builds the stored recipe for the draft
func (d RecipeDraft) NewRecipe(id, createdBy string, createdAt time.Time) Recipe {
	return Recipe{
		ID:           id,
		Title:        d.Title,
		Ingredients:  slices.Clone(d.Ingredients),
		Instructions: slices.Clone(d.Instructions),
		CookingTime:  d.CookingTime,
		Rating:       d.Rating,
		Image:        d.Image,
		Tags:         slices.Clone(d.Tags),
		CreatedBy:    createdBy,
		CreatedAt:    createdAt,
	}
}

// RecipePatch is a partial update. Nil fields are left untouched.
// Identity and provenance (ID, CreatedBy, CreatedAt) cannot be patched.
type RecipePatch struct {
	Title        *string  `json:"title,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	CookingTime  *int     `json:"cookingTime,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Image        *string  `json:"image,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all
func (p RecipePatch) IsEmpty() bool {
	return p.Title == nil && p.Ingredients == nil && p.Instructions == nil &&
		p.CookingTime == nil && p.Rating == nil && p.Image == nil && p.Tags == nil
}

// Apply returns a copy of r with the provided fields replaced
func (p RecipePatch) Apply(r Recipe) Recipe {
	out := r.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Ingredients != nil {
		out.Ingredients = slices.Clone(p.Ingredients)
	}
	if p.Instructions != nil {
		out.Instructions = slices.Clone(p.Instructions)
	}
	if p.CookingTime != nil {
		out.CookingTime = *p.CookingTime
	}
	if p.Rating != nil {
		out.Rating = *p.Rating
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.Tags != nil {
		out.Tags = slices.Clone(p.Tags)
	}
	return out
}
