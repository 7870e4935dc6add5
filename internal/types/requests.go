package types

import (
	"github.com/pageza/recipebox/internal/model"
)

// DefaultRecipeImage is used when a new recipe has no image
const DefaultRecipeImage = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c"

// AuthRequest is the body of login and signup
type AuthRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateRecipeRequest mirrors the recipe form rules
type CreateRecipeRequest struct {
	Title        string   `json:"title" binding:"required,min=3"`
	CookingTime  int      `json:"cookingTime" binding:"required,min=1"`
	Image        string   `json:"image" binding:"omitempty,url"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" binding:"required,min=1,dive,required"`
	Tags         []string `json:"tags" binding:"omitempty,dive,oneof=vegetarian quick dessert"`
}

// Draft converts the request into a store draft. New recipes start unrated.
func (r CreateRecipeRequest) Draft() model.RecipeDraft {
	image := r.Image
	if image == "" {
		image = DefaultRecipeImage
	}
	return model.RecipeDraft{
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CookingTime:  r.CookingTime,
		Rating:       0,
		Image:        image,
		Tags:         r.Tags,
	}
}

// UpdateRecipeRequest is a partial update; absent fields are left untouched.
// Rating is not editable through the form and is always preserved.
type UpdateRecipeRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=3"`
	CookingTime  *int     `json:"cookingTime" binding:"omitempty,min=1"`
	Image        *string  `json:"image" binding:"omitempty,url"`
	Ingredients  []string `json:"ingredients" binding:"omitempty,min=1,dive,required"`
	Instructions []string `json:"instructions" binding:"omitempty,min=1,dive,required"`
	Tags         []string `json:"tags" binding:"omitempty,dive,oneof=vegetarian quick dessert"`
}

// Patch converts the request into a store patch
func (r UpdateRecipeRequest) Patch() model.RecipePatch {
	return model.RecipePatch{
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CookingTime:  r.CookingTime,
		Image:        r.Image,
		Tags:         r.Tags,
	}
}

// SearchRequest sets the search term
type SearchRequest struct {
	Term string `json:"term"`
}

// FilterRequest sets the active category filter
type FilterRequest struct {
	Filter string `json:"filter" binding:"required"`
}
