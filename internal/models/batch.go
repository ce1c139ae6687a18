package models

import "time"

// Batch records one production run of a recipe.
type Batch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`
	MadeOn    time.Time `gorm:"type:date" json:"made_on"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
