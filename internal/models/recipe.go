package models

import "time"

type Recipe struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	UserID            uint               `gorm:"not null;index" json:"user_id"`
	Title             string             `gorm:"size:255" json:"title"`
	ProductType       string             `gorm:"size:255" json:"product_type"`
	Method            string             `gorm:"type:text" json:"method"`
	Photo             Photo              `gorm:"embedded;embeddedPrefix:photo_" json:"photo"`
	LockVersion       int                `gorm:"not null;default:0" json:"lock_version"`
	RecipeIngredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"recipe_ingredients"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	User              User               `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeIngredient binds a recipe to one ingredient with a free-text quantity
// such as "2oz" or "5 drops".
type RecipeIngredient struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RecipeID     uint        `gorm:"not null;index" json:"recipe_id"`
	IngredientID uint        `gorm:"not null;index" json:"ingredient_id"`
	Quantity     string      `gorm:"size:255" json:"quantity"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
