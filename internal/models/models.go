package models

// All returns every model for AutoMigrate, parents before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Session{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&InventoryItem{},
		&Batch{},
		&SystemLog{},
	}
}
