package models

import "time"

// InventoryItem is one purchased lot of an ingredient.
type InventoryItem struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"not null;index" json:"user_id"`
	IngredientID uint        `gorm:"not null;index" json:"ingredient_id"`
	Brand        string      `gorm:"size:255" json:"brand"`
	Size         string      `gorm:"size:255" json:"size"`
	Location     string      `gorm:"size:255" json:"location"`
	PurchaseDate time.Time   `gorm:"type:date" json:"purchase_date"`
	Notes        string      `gorm:"type:text" json:"notes"`
	Photo        Photo       `gorm:"embedded;embeddedPrefix:photo_" json:"photo"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	User         User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
