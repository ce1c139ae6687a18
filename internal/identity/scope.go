package identity

import "gorm.io/gorm"

// ForUser returns a GORM scope that limits a query to rows owned by userID.
func ForUser(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
