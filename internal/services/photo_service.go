package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/storage"
	"github.com/google/uuid"
)

// Owner kinds used in blob keys.
const (
	PhotoKindIngredient    = "ingredient"
	PhotoKindInventoryItem = "inventory_item"
	PhotoKindRecipe        = "recipe"
)

// PhotoService stores photos for ingredients, inventory items and recipes.
type PhotoService struct {
	store    storage.BlobStore
	maxBytes int64
}

func NewPhotoService(store storage.BlobStore, maxBytes int64) *PhotoService {
	return &PhotoService{store: store, maxBytes: maxBytes}
}

// Validate adds a "photo" field error when the upload cannot be accepted.
func (s *PhotoService) Validate(v *ValidationError, upload *storage.Upload) {
	if upload == nil {
		return
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		v.Add("photo", "must be an image")
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		v.Add("photo", fmt.Sprintf("is too large (maximum is %d bytes)", s.maxBytes))
	}
}

// Store uploads the file and returns the reference to save on the owner.
func (s *PhotoService) Store(ctx context.Context, userID uint, kind string, upload *storage.Upload) (models.Photo, error) {
	filename := path.Base(strings.ReplaceAll(upload.Filename, "\\", "/"))
	if filename == "." || filename == "/" {
		filename = "photo"
	}
	key := fmt.Sprintf("photos/%d/%s/%s_%s", userID, kind, uuid.New().String(), filename)

	if err := s.store.Put(ctx, key, *upload); err != nil {
		return models.Photo{}, err
	}
	metrics.RecordPhotoUpload(upload.Size)

	return models.Photo{
		Key:         key,
		URL:         s.store.URL(key),
		Filename:    filename,
		ContentType: upload.ContentType,
		ByteSize:    upload.Size,
	}, nil
}

// Discard deletes blobs whose owners are gone. Failures are logged, not
// returned: the owning rows are already committed.
func (s *PhotoService) Discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			slog.Error("photo delete failed", "key", key, "error", err)
		}
	}
}

// photoColumns maps a photo onto the embedded photo_* columns for map updates.
func photoColumns(p models.Photo) map[string]interface{} {
	return map[string]interface{}{
		"photo_key":          p.Key,
		"photo_url":          p.URL,
		"photo_filename":     p.Filename,
		"photo_content_type": p.ContentType,
		"photo_byte_size":    p.ByteSize,
	}
}
