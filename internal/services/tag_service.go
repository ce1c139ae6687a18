package services

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"gorm.io/gorm"
)

const msgUnknownTag = "contains an unknown tag"

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// resolveTags loads the tags named by ids. Zero ids are dropped and
// duplicates collapse; any id without a row adds a tag_ids error.
func resolveTags(tx *gorm.DB, ids []uint, v *ValidationError) ([]models.Tag, error) {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	tags := []models.Tag{}
	if len(unique) == 0 {
		return tags, nil
	}
	if err := tx.Where("id IN ?", unique).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		v.Add("tag_ids", msgUnknownTag)
	}
	return tags, nil
}
