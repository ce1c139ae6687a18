package services

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"gorm.io/gorm"
)

const (
	newRecipeRows = 5
	editSpareRows = 1
)

// rowPlan is the diff between a recipe's stored ingredient rows and a
// submitted set.
type rowPlan struct {
	inserts []models.RecipeIngredient
	updates []models.RecipeIngredient
	deletes []uint
	refs    []rowRef
	kept    int
}

// rowRef is an ingredient reference that must be checked for ownership.
type rowRef struct {
	rowID        uint
	field        string
	ingredientID uint
}

func rowBlank(row dto.RecipeIngredientRow) bool {
	noIngredient := row.IngredientID == nil || *row.IngredientID == 0
	noQuantity := row.Quantity == nil || blank(*row.Quantity)
	return noIngredient && noQuantity
}

func rowField(i int) string {
	return fmt.Sprintf("recipe_ingredients[%d].ingredient_id", i)
}

// planRows turns submitted rows into inserts, updates and deletes against
// existing. A row id outside existing fails the whole plan.
func planRows(existing []models.RecipeIngredient, rows []dto.RecipeIngredientRow) (*rowPlan, error) {
	stored := make(map[uint]models.RecipeIngredient, len(existing))
	for _, ri := range existing {
		stored[ri.ID] = ri
	}

	plan := &rowPlan{}
	removed := make(map[uint]bool)
	changed := make(map[uint]int)

	for i, row := range rows {
		if row.ID == 0 {
			if bool(row.Destroy) || rowBlank(row) {
				continue
			}
			ri := models.RecipeIngredient{}
			if row.IngredientID != nil {
				ri.IngredientID = *row.IngredientID
			}
			if row.Quantity != nil {
				ri.Quantity = strings.TrimSpace(*row.Quantity)
			}
			plan.inserts = append(plan.inserts, ri)
			plan.refs = append(plan.refs, rowRef{field: rowField(i), ingredientID: ri.IngredientID})
			continue
		}

		current, ok := stored[row.ID]
		if !ok {
			return nil, ErrRecipeIngredientNotFound
		}
		if removed[row.ID] {
			continue
		}
		if row.Destroy {
			removed[row.ID] = true
			plan.deletes = append(plan.deletes, row.ID)
			if idx, ok := changed[row.ID]; ok {
				plan.updates[idx].ID = 0
			}
			continue
		}

		if row.IngredientID != nil {
			current.IngredientID = *row.IngredientID
		}
		if row.Quantity != nil {
			current.Quantity = strings.TrimSpace(*row.Quantity)
		}
		stored[row.ID] = current

		if idx, ok := changed[row.ID]; ok {
			plan.updates[idx] = current
		} else {
			changed[row.ID] = len(plan.updates)
			plan.updates = append(plan.updates, current)
		}
		plan.refs = append(plan.refs, rowRef{rowID: row.ID, field: rowField(i), ingredientID: current.IngredientID})
	}

	// Updates cancelled by a later _destroy keep ID 0 and are dropped here.
	updates := plan.updates[:0]
	for _, ri := range plan.updates {
		if ri.ID != 0 {
			updates = append(updates, ri)
		}
	}
	plan.updates = updates

	refs := plan.refs[:0]
	for _, ref := range plan.refs {
		if ref.rowID == 0 || !removed[ref.rowID] {
			refs = append(refs, ref)
		}
	}
	plan.refs = refs

	plan.kept = len(existing) - len(plan.deletes) + len(plan.inserts)
	return plan, nil
}

// validate checks that every referenced ingredient belongs to userID and
// that at least one row survives.
func (p *rowPlan) validate(tx *gorm.DB, userID uint, v *ValidationError) error {
	ids := make([]uint, 0, len(p.refs))
	for _, ref := range p.refs {
		if ref.ingredientID != 0 {
			ids = append(ids, ref.ingredientID)
		}
	}
	owned, err := ownedIngredientIDs(tx, userID, ids)
	if err != nil {
		return err
	}
	for _, ref := range p.refs {
		if !owned[ref.ingredientID] {
			v.Add(ref.field, MsgMustExist)
		}
	}

	if p.kept < 1 {
		v.Add(BaseField, MsgNoRecipeRow)
	}
	return nil
}

// apply writes the plan for recipeID: deletes, then updates, then inserts.
func (p *rowPlan) apply(tx *gorm.DB, recipeID uint) error {
	if len(p.deletes) > 0 {
		if err := tx.Where("recipe_id = ? AND id IN ?", recipeID, p.deletes).
			Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
	}
	for _, ri := range p.updates {
		if err := tx.Model(&models.RecipeIngredient{}).
			Where("id = ? AND recipe_id = ?", ri.ID, recipeID).
			Updates(map[string]interface{}{
				"ingredient_id": ri.IngredientID,
				"quantity":      ri.Quantity,
			}).Error; err != nil {
			return err
		}
	}
	for i := range p.inserts {
		p.inserts[i].RecipeID = recipeID
		if err := tx.Omit("Ingredient").Create(&p.inserts[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// withBlankRows pads rows with n empty candidates for the form.
func withBlankRows(rows []models.RecipeIngredient, n int) []models.RecipeIngredient {
	out := make([]models.RecipeIngredient, 0, len(rows)+n)
	out = append(out, rows...)
	for i := 0; i < n; i++ {
		out = append(out, models.RecipeIngredient{})
	}
	return out
}
