package models

import "time"

// Tag is a label shared by every user.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// DefaultTags are seeded at startup.
var DefaultTags = []string{
	"Hair Growth",
	"Moisturizing",
	"Anti-inflammatory",
	"Scalp Soothing",
	"Shine",
	"Curl Definition",
	"Preservative",
	"Emulsifier",
	"Antioxidant",
	"Humectant",
	"Emollient",
	"Surfactant",
}
