package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/identity"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

type IngredientService struct {
	db     *gorm.DB
	photos *PhotoService
}

func NewIngredientService(db *gorm.DB, photos *PhotoService) *IngredientService {
	return &IngredientService{db: db, photos: photos}
}

func (s *IngredientService) List(userID uint) (*dto.IngredientListResponse, error) {
	var ingredients []models.Ingredient
	if err := s.db.Scopes(identity.ForUser(userID)).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Order("name ASC").Order("id ASC").
		Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return &dto.IngredientListResponse{Ingredients: ingredients, Total: len(ingredients)}, nil
}

func (s *IngredientService) Get(userID, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.Scopes(identity.ForUser(userID)).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to load ingredient: %w", err)
	}
	return &ingredient, nil
}

// NewForm returns a blank ingredient with every selectable tag.
func (s *IngredientService) NewForm(userID uint) (*dto.IngredientFormResponse, error) {
	tags, err := NewTagService(s.db).List()
	if err != nil {
		return nil, err
	}
	return &dto.IngredientFormResponse{
		Ingredient: models.Ingredient{UserID: userID, Tags: []models.Tag{}},
		Tags:       tags,
	}, nil
}

func (s *IngredientService) EditForm(userID, id uint) (*dto.IngredientFormResponse, error) {
	ingredient, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	tags, err := NewTagService(s.db).List()
	if err != nil {
		return nil, err
	}
	return &dto.IngredientFormResponse{Ingredient: *ingredient, Tags: tags}, nil
}

func applyIngredientFields(ingredient *models.Ingredient, req *dto.IngredientRequest) {
	if req.Name != nil {
		ingredient.Name = *req.Name
	}
	if req.Category != nil {
		ingredient.Category = *req.Category
	}
	if req.Description != nil {
		ingredient.Description = *req.Description
	}
	if req.Notes != nil {
		ingredient.Notes = *req.Notes
	}
}

func validateIngredient(v *ValidationError, ingredient *models.Ingredient) {
	if blank(ingredient.Name) {
		v.Add("name", MsgBlank)
	}
	if blank(ingredient.Category) {
		v.Add("category", MsgBlank)
	}
}

func (s *IngredientService) Create(ctx context.Context, userID uint, req *dto.IngredientRequest, upload *storage.Upload) (*models.Ingredient, error) {
	ingredient := models.Ingredient{UserID: userID}
	applyIngredientFields(&ingredient, req)

	v := NewValidationError()
	validateIngredient(v, &ingredient)
	s.photos.Validate(v, upload)

	var uploaded string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, req.TagIDs, v)
		if err != nil {
			return err
		}
		if v.Any() {
			return v
		}

		if upload != nil {
			photo, err := s.photos.Store(ctx, userID, PhotoKindIngredient, upload)
			if err != nil {
				return fmt.Errorf("failed to store photo: %w", err)
			}
			ingredient.Photo = photo
			uploaded = photo.Key
		}

		if err := tx.Omit(clause.Associations).Create(&ingredient).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&ingredient).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.photos.Discard(ctx, uploaded)
		return nil, err
	}

	slog.Info("ingredient created", "user_id", userID, "ingredient_id", ingredient.ID)
	return s.Get(userID, ingredient.ID)
}

func (s *IngredientService) Update(ctx context.Context, userID, id uint, req *dto.IngredientRequest, upload *storage.Upload) (*models.Ingredient, error) {
	var (
		uploaded string
		replaced string
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.Scopes(identity.ForUser(userID)).First(&ingredient, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return err
		}

		applyIngredientFields(&ingredient, req)
		v := NewValidationError()
		validateIngredient(v, &ingredient)
		s.photos.Validate(v, upload)

		var tags []models.Tag
		if req.TagIDs != nil {
			var err error
			if tags, err = resolveTags(tx, req.TagIDs, v); err != nil {
				return err
			}
		}
		if v.Any() {
			return v
		}

		updates := map[string]interface{}{
			"name":        ingredient.Name,
			"category":    ingredient.Category,
			"description": ingredient.Description,
			"notes":       ingredient.Notes,
		}
		if upload != nil {
			photo, err := s.photos.Store(ctx, userID, PhotoKindIngredient, upload)
			if err != nil {
				return fmt.Errorf("failed to store photo: %w", err)
			}
			uploaded = photo.Key
			replaced = ingredient.Photo.Key
			for col, val := range photoColumns(photo) {
				updates[col] = val
			}
		}

		if err := tx.Model(&ingredient).Updates(updates).Error; err != nil {
			return err
		}
		if req.TagIDs != nil {
			if err := tx.Model(&ingredient).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.photos.Discard(ctx, uploaded)
		return nil, err
	}

	s.photos.Discard(ctx, replaced)
	slog.Info("ingredient updated", "user_id", userID, "ingredient_id", id)
	return s.Get(userID, id)
}

// Delete removes the ingredient with its recipe rows, inventory items and
// tag links. Recipes that used it are kept.
func (s *IngredientService) Delete(ctx context.Context, userID, id uint) error {
	var photoKeys []string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.Scopes(identity.ForUser(userID)).First(&ingredient, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return err
		}

		var itemKeys []string
		if err := tx.Model(&models.InventoryItem{}).
			Where("ingredient_id = ? AND photo_key <> ''", ingredient.ID).
			Pluck("photo_key", &itemKeys).Error; err != nil {
			return err
		}
		photoKeys = append(itemKeys, ingredient.Photo.Key)

		if err := tx.Where("ingredient_id = ?", ingredient.ID).Delete(&models.InventoryItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ingredient_id = ?", ingredient.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&ingredient).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&ingredient).Error
	})
	if err != nil {
		return err
	}

	s.photos.Discard(ctx, photoKeys...)
	slog.Info("ingredient deleted", "user_id", userID, "ingredient_id", id)
	return nil
}

// ownedIngredientIDs returns the subset of ids that belong to userID.
func ownedIngredientIDs(tx *gorm.DB, userID uint, ids []uint) (map[uint]bool, error) {
	owned := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return owned, nil
	}
	var found []uint
	if err := tx.Model(&models.Ingredient{}).
		Scopes(identity.ForUser(userID)).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		owned[id] = true
	}
	return owned, nil
}
