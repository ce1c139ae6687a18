package dto

import "github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"

type BatchRequest struct {
	RecipeID *uint   `json:"recipe_id" form:"recipe_id"`
	MadeOn   *string `json:"made_on" form:"made_on"`
	Notes    *string `json:"notes" form:"notes"`
}

type BatchListResponse struct {
	Batches []models.Batch `json:"batches"`
	Total   int            `json:"total"`
}

type BatchFormResponse struct {
	Batch   models.Batch    `json:"batch"`
	Recipes []models.Recipe `json:"recipes"`
}
