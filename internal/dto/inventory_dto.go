package dto

import "github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"

type InventoryItemRequest struct {
	IngredientID *uint   `json:"ingredient_id" form:"ingredient_id"`
	Brand        *string `json:"brand" form:"brand"`
	Size         *string `json:"size" form:"size"`
	Location     *string `json:"location" form:"location"`
	PurchaseDate *string `json:"purchase_date" form:"purchase_date"`
	Notes        *string `json:"notes" form:"notes"`
}

type InventoryItemListResponse struct {
	InventoryItems []models.InventoryItem `json:"inventory_items"`
	Total          int                    `json:"total"`
}

type InventoryItemFormResponse struct {
	InventoryItem models.InventoryItem `json:"inventory_item"`
	Ingredients   []models.Ingredient  `json:"ingredients"`
}
