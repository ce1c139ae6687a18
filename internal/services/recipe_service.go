package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/identity"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrRecipeIngredientNotFound = errors.New("recipe ingredient not found")
	ErrRecipeConflict           = errors.New("recipe was modified by another request")
)

type RecipeService struct {
	db     *gorm.DB
	photos *PhotoService
}

func NewRecipeService(db *gorm.DB, photos *PhotoService) *RecipeService {
	return &RecipeService{db: db, photos: photos}
}

func orderedRows(db *gorm.DB) *gorm.DB {
	return db.Order("recipe_ingredients.id ASC")
}

func (s *RecipeService) List(userID uint) (*dto.RecipeListResponse, error) {
	var recipes []models.Recipe
	if err := s.db.Scopes(identity.ForUser(userID)).
		Order("created_at DESC").Order("id DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return &dto.RecipeListResponse{Recipes: recipes, Total: len(recipes)}, nil
}

// Get loads the recipe with its rows ordered by id and each row's ingredient.
func (s *RecipeService) Get(userID, id uint) (*models.Recipe, error) {
	return s.load(s.db, userID, id)
}

func (s *RecipeService) load(db *gorm.DB, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.Scopes(identity.ForUser(userID)).
		Preload("RecipeIngredients", orderedRows).
		Preload("RecipeIngredients.Ingredient").
		First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

func (s *RecipeService) userIngredients(userID uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Scopes(identity.ForUser(userID)).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// NewForm returns a blank recipe with five empty ingredient rows.
func (s *RecipeService) NewForm(userID uint) (*dto.RecipeFormResponse, error) {
	ingredients, err := s.userIngredients(userID)
	if err != nil {
		return nil, err
	}
	return &dto.RecipeFormResponse{
		Recipe: models.Recipe{
			UserID:            userID,
			RecipeIngredients: withBlankRows(nil, newRecipeRows),
		},
		Ingredients: ingredients,
	}, nil
}

// EditForm returns the stored recipe. A recipe without rows gets one blank
// row to fill in.
func (s *RecipeService) EditForm(userID, id uint) (*dto.RecipeFormResponse, error) {
	recipe, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if len(recipe.RecipeIngredients) == 0 {
		recipe.RecipeIngredients = withBlankRows(nil, editSpareRows)
	}
	ingredients, err := s.userIngredients(userID)
	if err != nil {
		return nil, err
	}
	return &dto.RecipeFormResponse{Recipe: *recipe, Ingredients: ingredients}, nil
}

func applyRecipeFields(recipe *models.Recipe, req *dto.RecipeRequest) {
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.ProductType != nil {
		recipe.ProductType = *req.ProductType
	}
	if req.Method != nil {
		recipe.Method = *req.Method
	}
}

func validateRecipe(v *ValidationError, recipe *models.Recipe) {
	if blank(recipe.Title) {
		v.Add("title", MsgBlank)
	}
	if blank(recipe.ProductType) {
		v.Add("product_type", MsgBlank)
	}
	if blank(recipe.Method) {
		v.Add("method", MsgBlank)
	}
}

// Create saves a recipe together with its submitted ingredient rows. Nothing
// is written unless the recipe and every kept row are valid.
func (s *RecipeService) Create(ctx context.Context, userID uint, req *dto.RecipeRequest, upload *storage.Upload) (*models.Recipe, error) {
	recipe := models.Recipe{UserID: userID}
	applyRecipeFields(&recipe, req)

	plan, err := planRows(nil, req.RecipeIngredients)
	if err != nil {
		return nil, err
	}

	var uploaded string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		v := NewValidationError()
		validateRecipe(v, &recipe)
		s.photos.Validate(v, upload)
		if err := plan.validate(tx, userID, v); err != nil {
			return err
		}
		if v.Any() {
			return v
		}

		if upload != nil {
			photo, err := s.photos.Store(ctx, userID, PhotoKindRecipe, upload)
			if err != nil {
				return fmt.Errorf("failed to store photo: %w", err)
			}
			recipe.Photo = photo
			uploaded = photo.Key
		}

		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		return plan.apply(tx, recipe.ID)
	})
	if err != nil {
		s.photos.Discard(ctx, uploaded)
		return nil, err
	}

	slog.Info("recipe saved", "user_id", userID, "recipe_id", recipe.ID, "rows", len(plan.inserts))
	return s.Get(userID, recipe.ID)
}

// Update applies field edits and the row diff in one transaction. A
// submitted lock_version that no longer matches fails with ErrRecipeConflict.
func (s *RecipeService) Update(ctx context.Context, userID, id uint, req *dto.RecipeRequest, upload *storage.Upload) (*models.Recipe, error) {
	var (
		uploaded string
		replaced string
		plan     *rowPlan
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Scopes(identity.ForUser(userID)).
			Preload("RecipeIngredients", orderedRows).
			First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		if req.LockVersion != nil && *req.LockVersion != recipe.LockVersion {
			return ErrRecipeConflict
		}

		var err error
		if plan, err = planRows(recipe.RecipeIngredients, req.RecipeIngredients); err != nil {
			return err
		}

		applyRecipeFields(&recipe, req)
		v := NewValidationError()
		validateRecipe(v, &recipe)
		s.photos.Validate(v, upload)
		if err := plan.validate(tx, userID, v); err != nil {
			return err
		}
		if v.Any() {
			return v
		}

		updates := map[string]interface{}{
			"title":        recipe.Title,
			"product_type": recipe.ProductType,
			"method":       recipe.Method,
			"lock_version": recipe.LockVersion + 1,
			"updated_at":   time.Now(),
		}
		if upload != nil {
			photo, err := s.photos.Store(ctx, userID, PhotoKindRecipe, upload)
			if err != nil {
				return fmt.Errorf("failed to store photo: %w", err)
			}
			uploaded = photo.Key
			replaced = recipe.Photo.Key
			for col, val := range photoColumns(photo) {
				updates[col] = val
			}
		}

		res := tx.Model(&models.Recipe{}).
			Where("id = ? AND lock_version = ?", recipe.ID, recipe.LockVersion).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeConflict
		}

		return plan.apply(tx, recipe.ID)
	})
	if err != nil {
		s.photos.Discard(ctx, uploaded)
		return nil, err
	}

	s.photos.Discard(ctx, replaced)
	slog.Info("recipe saved", "user_id", userID, "recipe_id", id,
		"inserted", len(plan.inserts), "updated", len(plan.updates), "deleted", len(plan.deletes))
	return s.Get(userID, id)
}

// Delete removes the recipe with its rows and batches.
func (s *RecipeService) Delete(ctx context.Context, userID, id uint) error {
	var photoKey string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Scopes(identity.ForUser(userID)).First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		photoKey = recipe.Photo.Key

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Batch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		return err
	}

	s.photos.Discard(ctx, photoKey)
	slog.Info("recipe deleted", "user_id", userID, "recipe_id", id)
	return nil
}
