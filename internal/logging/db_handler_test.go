package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/testutil"
)

func TestDBHandlerPersistsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	handler := NewDBHandler(db)
	defer handler.Stop()

	logger := slog.New(handler).With("request_id", "req-1")
	logger.Info("not persisted")
	logger.Error("recipe save failed", "user_id", 7, "action", "recipe.update", "error", "boom", "recipe_id", 42)
	handler.Flush()

	var logs []models.SystemLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}

	got := logs[0]
	if got.Level != "ERROR" || got.Message != "recipe save failed" {
		t.Errorf("entry = %+v", got)
	}
	if got.RequestID != "req-1" || got.Action != "recipe.update" || got.Error != "boom" {
		t.Errorf("mapped columns = %+v", got)
	}
	if got.UserID == nil || *got.UserID != "7" {
		t.Errorf("user_id = %v, want 7", got.UserID)
	}

	var extra map[string]interface{}
	if err := json.Unmarshal(got.Extra, &extra); err != nil {
		t.Fatalf("extra: %v", err)
	}
	if extra["recipe_id"] != float64(42) {
		t.Errorf("extra = %v", extra)
	}
}

func TestCleanupDeletesOldLogs(t *testing.T) {
	db := testutil.NewDB(t)
	handler := NewDBHandler(db)
	defer handler.Stop()

	logger := slog.New(handler)
	logger.Error("old")
	logger.Error("new")
	handler.Flush()

	old := time.Now().Add(-2 * logRetention)
	if err := db.Model(&models.SystemLog{}).Where("message = ?", "old").Update("timestamp", old).Error; err != nil {
		t.Fatalf("age log: %v", err)
	}

	deleted, err := Cleanup(db, time.Now().Add(-logRetention))
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if n := testutil.Count(t, db, &models.SystemLog{}); n != 1 {
		t.Errorf("remaining = %d, want 1", n)
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var info, errs bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		nil,
		slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With("component", "test")

	logger.Info("hello")
	logger.Error("failure")

	if !strings.Contains(info.String(), "hello") || !strings.Contains(info.String(), "failure") {
		t.Errorf("info handler got %q", info.String())
	}
	if strings.Contains(errs.String(), "hello") || !strings.Contains(errs.String(), "component=test") {
		t.Errorf("error handler got %q", errs.String())
	}
}
