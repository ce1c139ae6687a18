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

var ErrInventoryItemNotFound = errors.New("inventory item not found")

type InventoryService struct {
	db     *gorm.DB
	photos *PhotoService
}

func NewInventoryService(db *gorm.DB, photos *PhotoService) *InventoryService {
	return &InventoryService{db: db, photos: photos}
}

func (s *InventoryService) List(userID uint) (*dto.InventoryItemListResponse, error) {
	var items []models.InventoryItem
	if err := s.db.Scopes(identity.ForUser(userID)).
		Preload("Ingredient").
		Order("purchase_date DESC").Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return &dto.InventoryItemListResponse{InventoryItems: items, Total: len(items)}, nil
}

func (s *InventoryService) Get(userID, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.Scopes(identity.ForUser(userID)).Preload("Ingredient").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to load inventory item: %w", err)
	}
	return &item, nil
}

func (s *InventoryService) NewForm(userID uint) (*dto.InventoryItemFormResponse, error) {
	var ingredients []models.Ingredient
	if err := s.db.Scopes(identity.ForUser(userID)).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return &dto.InventoryItemFormResponse{
		InventoryItem: models.InventoryItem{UserID: userID},
		Ingredients:   ingredients,
	}, nil
}

func (s *InventoryService) EditForm(userID, id uint) (*dto.InventoryItemFormResponse, error) {
	item, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	form, err := s.NewForm(userID)
	if err != nil {
		return nil, err
	}
	form.InventoryItem = *item
	return form, nil
}

// applyInventoryFields copies the submitted fields onto item and validates
// the result. Dates are checked only when submitted or missing.
func applyInventoryFields(v *ValidationError, item *models.InventoryItem, req *dto.InventoryItemRequest) {
	if req.IngredientID != nil {
		item.IngredientID = *req.IngredientID
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	switch {
	case req.PurchaseDate != nil:
		item.PurchaseDate = parseDate(v, "purchase_date", *req.PurchaseDate)
	case item.PurchaseDate.IsZero():
		v.Add("purchase_date", MsgBlank)
	}
}

func checkIngredientRef(tx *gorm.DB, v *ValidationError, userID, ingredientID uint) error {
	if ingredientID == 0 {
		v.Add("ingredient_id", MsgBlank)
		return nil
	}
	owned, err := ownedIngredientIDs(tx, userID, []uint{ingredientID})
	if err != nil {
		return err
	}
	if !owned[ingredientID] {
		v.Add("ingredient_id", MsgMustExist)
	}
	return nil
}

func (s *InventoryService) Create(ctx context.Context, userID uint, req *dto.InventoryItemRequest, upload *storage.Upload) (*models.InventoryItem, error) {
	item := models.InventoryItem{UserID: userID}
	v := NewValidationError()
	applyInventoryFields(v, &item, req)
	s.photos.Validate(v, upload)

	var uploaded string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkIngredientRef(tx, v, userID, item.IngredientID); err != nil {
			return err
		}
		if v.Any() {
			return v
		}

		if upload != nil {
			photo, err := s.photos.Store(ctx, userID, PhotoKindInventoryItem, upload)
			if err != nil {
				return fmt.Errorf("failed to store photo: %w", err)
			}
			item.Photo = photo
			uploaded = photo.Key
		}
		return tx.Omit(clause.Associations).Create(&item).Error
	})
	if err != nil {
		s.photos.Discard(ctx, uploaded)
		return nil, err
	}

	slog.Info("inventory item created", "user_id", userID, "inventory_item_id", item.ID)
	return s.Get(userID, item.ID)
}

func (s *InventoryService) Update(ctx context.Context, userID, id uint, req *dto.InventoryItemRequest, upload *storage.Upload) (*models.InventoryItem, error) {
	var (
		uploaded string
		replaced string
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.Scopes(identity.ForUser(userID)).First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInventoryItemNotFound
			}
			return err
		}

		v := NewValidationError()
		applyInventoryFields(v, &item, req)
		s.photos.Validate(v, upload)
		if err := checkIngredientRef(tx, v, userID, item.IngredientID); err != nil {
			return err
		}
		if v.Any() {
			return v
		}

		updates := map[string]interface{}{
			"ingredient_id": item.IngredientID,
			"brand":         item.Brand,
			"size":          item.Size,
			"location":      item.Location,
			"purchase_date": item.PurchaseDate,
			"notes":         item.Notes,
			"updated_at":    time.Now(),
		}
		if upload != nil {
			photo, err := s.photos.Store(ctx, userID, PhotoKindInventoryItem, upload)
			if err != nil {
				return fmt.Errorf("failed to store photo: %w", err)
			}
			uploaded = photo.Key
			replaced = item.Photo.Key
			for col, val := range photoColumns(photo) {
				updates[col] = val
			}
		}
		return tx.Model(&item).Updates(updates).Error
	})
	if err != nil {
		s.photos.Discard(ctx, uploaded)
		return nil, err
	}

	s.photos.Discard(ctx, replaced)
	slog.Info("inventory item updated", "user_id", userID, "inventory_item_id", id)
	return s.Get(userID, id)
}

func (s *InventoryService) Delete(ctx context.Context, userID, id uint) error {
	var item models.InventoryItem
	if err := s.db.Scopes(identity.ForUser(userID)).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInventoryItemNotFound
		}
		return fmt.Errorf("failed to load inventory item: %w", err)
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.photos.Discard(ctx, item.Photo.Key)
	slog.Info("inventory item deleted", "user_id", userID, "inventory_item_id", id)
	return nil
}
