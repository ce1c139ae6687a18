package services

import (
	"fmt"
	"testing"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/testutil"
)

func TestDashboardShow(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewDashboardService(db)
	user := testutil.CreateUser(t, db, "maker@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")

	empty, err := svc.Show(user.ID)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if empty.RecentRecipes == nil || empty.RecentBatches == nil {
		t.Error("recent lists should be empty, not nil")
	}

	ingredient := testutil.CreateIngredient(t, db, user.ID, "Marshmallow Root")
	testutil.CreateInventoryItem(t, db, user.ID, ingredient.ID, "2025-01-01")
	var lastRecipe uint
	for i := 1; i <= 7; i++ {
		recipe := testutil.CreateRecipe(t, db, user.ID, fmt.Sprintf("Recipe %d", i), ingredient.ID)
		testutil.CreateBatch(t, db, user.ID, recipe.ID, fmt.Sprintf("2025-01-%02d", i))
		lastRecipe = recipe.ID
	}
	otherIngredient := testutil.CreateIngredient(t, db, other.ID, "Hidden")
	testutil.CreateRecipe(t, db, other.ID, "Hidden", otherIngredient.ID)

	resp, err := svc.Show(user.ID)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}

	stats := resp.Stats
	if stats.Ingredients != 1 || stats.InventoryItems != 1 || stats.Recipes != 7 || stats.Batches != 7 {
		t.Errorf("stats = %+v", stats)
	}
	if len(resp.RecentRecipes) != recentLimit || len(resp.RecentBatches) != recentLimit {
		t.Fatalf("recent = %d recipes, %d batches, want %d each", len(resp.RecentRecipes), len(resp.RecentBatches), recentLimit)
	}
	if resp.RecentRecipes[0].ID != lastRecipe {
		t.Errorf("most recent recipe = %d, want %d", resp.RecentRecipes[0].ID, lastRecipe)
	}
	top := resp.RecentBatches[0]
	if top.MadeOn.Format("2006-01-02") != "2025-01-07" || top.Recipe == nil {
		t.Errorf("most recent batch = %+v", top)
	}
}
