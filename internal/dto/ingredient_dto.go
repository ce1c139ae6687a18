package dto

import "github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"

// IngredientRequest is used for create and update. Nil fields are left
// unchanged on update and treated as blank on create. A non-nil TagIDs
// replaces the full tag set; zero ids are ignored.
type IngredientRequest struct {
	Name        *string `json:"name" form:"name"`
	Category    *string `json:"category" form:"category"`
	Description *string `json:"description" form:"description"`
	Notes       *string `json:"notes" form:"notes"`
	TagIDs      []uint  `json:"tag_ids" form:"tag_ids"`
}

type IngredientListResponse struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	Total       int                 `json:"total"`
}

type IngredientFormResponse struct {
	Ingredient models.Ingredient `json:"ingredient"`
	Tags       []models.Tag      `json:"tags"`
}

type TagListResponse struct {
	Tags []models.Tag `json:"tags"`
}
