package database

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"gorm.io/gorm"
)

func TestSeedTagsIsQuietAndIdempotent(t *testing.T) {
	db, err := Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var out bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: newLogger(&out)})

	for i := 0; i < 2; i++ {
		if err := SeedTags(quiet); err != nil {
			t.Fatalf("SeedTags run %d: %v", i+1, err)
		}
	}

	var count int64
	if err := quiet.Model(&models.Tag{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(len(models.DefaultTags)) {
		t.Errorf("tags = %d, want %d", count, len(models.DefaultTags))
	}

	var user models.User
	if err := quiet.First(&user, 999).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected query log output:\n%s", out.String())
	}
}
