package models

import "time"

type Ingredient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"size:255" json:"name"`
	Category    string    `gorm:"size:255" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Photo       Photo     `gorm:"embedded;embeddedPrefix:photo_" json:"photo"`
	Tags        []Tag     `gorm:"many2many:ingredients_tags;constraint:OnDelete:CASCADE" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
