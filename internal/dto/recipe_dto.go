package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
)

// RecipeRequest carries the recipe fields plus its ingredient rows in a
// single submission.
type RecipeRequest struct {
	Title             *string               `json:"title" form:"title"`
	ProductType       *string               `json:"product_type" form:"product_type"`
	Method            *string               `json:"method" form:"method"`
	LockVersion       *int                  `json:"lock_version" form:"lock_version"`
	RecipeIngredients []RecipeIngredientRow `json:"recipe_ingredients" form:"recipe_ingredients"`
}

// RecipeIngredientRow is one submitted ingredient line. A row without ID is
// a new line; a row with ID edits or, with Destroy set, removes an existing
// line of the same recipe.
type RecipeIngredientRow struct {
	ID           uint    `json:"id,omitempty" form:"id"`
	IngredientID *uint   `json:"ingredient_id" form:"ingredient_id"`
	Quantity     *string `json:"quantity" form:"quantity"`
	Destroy      Flag    `json:"_destroy,omitempty" form:"_destroy"`
}

// Flag is a checkbox value. JSON bodies may send it as a bool, a number or
// a string such as "1" or "true", the way HTML forms submit checkboxes.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case float64:
		*f = v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "on", "yes":
			*f = true
		case "", "0", "false", "f", "off", "no":
			*f = false
		default:
			return fmt.Errorf("invalid flag value %q", v)
		}
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}

type RecipeListResponse struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}

// RecipeFormResponse is the scaffold for the recipe form: the recipe with
// its editable rows and the ingredients the user can pick from.
type RecipeFormResponse struct {
	Recipe      models.Recipe       `json:"recipe"`
	Ingredients []models.Ingredient `json:"ingredients"`
}
