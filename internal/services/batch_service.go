package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/identity"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBatchNotFound = errors.New("batch not found")

type BatchService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBatchService(db *gorm.DB) *BatchService {
	return &BatchService{db: db, now: time.Now}
}

func (s *BatchService) List(userID uint) (*dto.BatchListResponse, error) {
	var batches []models.Batch
	if err := s.db.Scopes(identity.ForUser(userID)).
		Preload("Recipe").
		Order("made_on DESC").Order("id DESC").
		Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return &dto.BatchListResponse{Batches: batches, Total: len(batches)}, nil
}

func (s *BatchService) Get(userID, id uint) (*models.Batch, error) {
	var batch models.Batch
	if err := s.db.Scopes(identity.ForUser(userID)).Preload("Recipe").First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}
	return &batch, nil
}

// NewForm returns a batch dated today, optionally for recipeID.
func (s *BatchService) NewForm(userID, recipeID uint) (*dto.BatchFormResponse, error) {
	var recipes []models.Recipe
	if err := s.db.Scopes(identity.ForUser(userID)).Order("title ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	today, _ := time.Parse(dateLayout, s.now().Format(dateLayout))
	return &dto.BatchFormResponse{
		Batch:   models.Batch{UserID: userID, RecipeID: recipeID, MadeOn: today},
		Recipes: recipes,
	}, nil
}

func (s *BatchService) Create(userID uint, req *dto.BatchRequest) (*models.Batch, error) {
	batch := models.Batch{UserID: userID}
	v := NewValidationError()

	if req.RecipeID != nil {
		batch.RecipeID = *req.RecipeID
	}
	if req.Notes != nil {
		batch.Notes = *req.Notes
	}
	madeOn := ""
	if req.MadeOn != nil {
		madeOn = *req.MadeOn
	}
	batch.MadeOn = parseDate(v, "made_on", madeOn)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if batch.RecipeID == 0 {
			v.Add("recipe_id", MsgBlank)
		} else {
			var count int64
			if err := tx.Model(&models.Recipe{}).
				Scopes(identity.ForUser(userID)).
				Where("id = ?", batch.RecipeID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				v.Add("recipe_id", MsgMustExist)
			}
		}
		if v.Any() {
			return v
		}
		return tx.Omit(clause.Associations).Create(&batch).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("batch created", "user_id", userID, "batch_id", batch.ID, "recipe_id", batch.RecipeID)
	return s.Get(userID, batch.ID)
}

func (s *BatchService) Delete(userID, id uint) error {
	res := s.db.Scopes(identity.ForUser(userID)).Where("id = ?", id).Delete(&models.Batch{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete batch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBatchNotFound
	}
	slog.Info("batch deleted", "user_id", userID, "batch_id", id)
	return nil
}
