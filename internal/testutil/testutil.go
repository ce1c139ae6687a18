// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/config"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/database"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const Password = "password123"

// NewDB returns a migrated in-memory SQLite database with the default tags.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedTags(db); err != nil {
		t.Fatalf("seed tags: %v", err)
	}
	return db
}

func Config() *config.Config {
	return &config.Config{
		DBDriver:       "sqlite",
		SessionSecret:  "test-session-secret",
		SessionTTL:     time.Hour,
		StorageBackend: "memory",
		MaxUploadBytes: 1 << 20,
		CORSOrigins:    "*",
		AppEnv:         "test",
	}
}

func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateIngredient(t *testing.T, db *gorm.DB, userID uint, name string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{UserID: userID, Name: name, Category: "Oil"}
	if err := db.Omit(clause.Associations).Create(ingredient).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	return ingredient
}

// CreateRecipe stores a recipe with one row per ingredient.
func CreateRecipe(t *testing.T, db *gorm.DB, userID uint, title string, ingredientIDs ...uint) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{UserID: userID, Title: title, ProductType: "Conditioner", Method: "Mix"}
	if err := db.Omit(clause.Associations).Create(recipe).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	for _, id := range ingredientIDs {
		row := &models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: id, Quantity: "1oz"}
		if err := db.Omit(clause.Associations).Create(row).Error; err != nil {
			t.Fatalf("create recipe ingredient: %v", err)
		}
		recipe.RecipeIngredients = append(recipe.RecipeIngredients, *row)
	}
	return recipe
}

func CreateInventoryItem(t *testing.T, db *gorm.DB, userID, ingredientID uint, purchased string) *models.InventoryItem {
	t.Helper()
	date, err := time.Parse("2006-01-02", purchased)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	item := &models.InventoryItem{UserID: userID, IngredientID: ingredientID, PurchaseDate: date, Brand: "Acme"}
	if err := db.Omit(clause.Associations).Create(item).Error; err != nil {
		t.Fatalf("create inventory item: %v", err)
	}
	return item
}

func CreateBatch(t *testing.T, db *gorm.DB, userID, recipeID uint, madeOn string) *models.Batch {
	t.Helper()
	date, err := time.Parse("2006-01-02", madeOn)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	batch := &models.Batch{UserID: userID, RecipeID: recipeID, MadeOn: date}
	if err := db.Omit(clause.Associations).Create(batch).Error; err != nil {
		t.Fatalf("create batch: %v", err)
	}
	return batch
}

// Count returns the number of rows for model matching the optional condition.
func Count(t *testing.T, db *gorm.DB, model interface{}, query ...interface{}) int64 {
	t.Helper()
	q := db.Model(model)
	if len(query) > 0 {
		q = q.Where(query[0], query[1:]...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func Ptr[T any](v T) *T {
	return &v
}
