package dto

import "github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"

type DashboardStats struct {
	Ingredients    int64 `json:"ingredients"`
	InventoryItems int64 `json:"inventory_items"`
	Recipes        int64 `json:"recipes"`
	Batches        int64 `json:"batches"`
}

type DashboardResponse struct {
	Stats         DashboardStats  `json:"stats"`
	RecentRecipes []models.Recipe `json:"recent_recipes"`
	RecentBatches []models.Batch  `json:"recent_batches"`
}
