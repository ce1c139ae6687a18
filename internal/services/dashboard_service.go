package services

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/identity"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"gorm.io/gorm"
)

const recentLimit = 5

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Show returns per-user counts and the most recent recipes and batches.
func (s *DashboardService) Show(userID uint) (*dto.DashboardResponse, error) {
	var stats dto.DashboardStats
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Ingredient{}, &stats.Ingredients},
		{&models.InventoryItem{}, &stats.InventoryItems},
		{&models.Recipe{}, &stats.Recipes},
		{&models.Batch{}, &stats.Batches},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Scopes(identity.ForUser(userID)).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	recipes := []models.Recipe{}
	if err := s.db.Scopes(identity.ForUser(userID)).
		Order("created_at DESC").Order("id DESC").
		Limit(recentLimit).
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent recipes: %w", err)
	}

	batches := []models.Batch{}
	if err := s.db.Scopes(identity.ForUser(userID)).
		Preload("Recipe").
		Order("made_on DESC").Order("id DESC").
		Limit(recentLimit).
		Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent batches: %w", err)
	}

	return &dto.DashboardResponse{
		Stats:         stats,
		RecentRecipes: recipes,
		RecentBatches: batches,
	}, nil
}
