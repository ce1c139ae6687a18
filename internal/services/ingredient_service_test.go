package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/storage"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/testutil"
	"gorm.io/gorm"
)

func setupIngredientService(t *testing.T) (*gorm.DB, *IngredientService, *storage.MemoryStore) {
	t.Helper()
	db := testutil.NewDB(t)
	store := storage.NewMemoryStore()
	return db, NewIngredientService(db, NewPhotoService(store, 1<<20)), store
}

func tagIDs(t *testing.T, db *gorm.DB, names ...string) []uint {
	t.Helper()
	var ids []uint
	if err := db.Model(&models.Tag{}).Where("name IN ?", names).Order("name ASC").Pluck("id", &ids).Error; err != nil {
		t.Fatalf("tag ids: %v", err)
	}
	if len(ids) != len(names) {
		t.Fatalf("found %d tags for %v", len(ids), names)
	}
	return ids
}

func pngUpload(name string) *storage.Upload {
	return &storage.Upload{Filename: name, ContentType: "image/png", Size: 4, Body: strings.NewReader("\x89PNG")}
}

func TestCreateIngredient(t *testing.T) {
	db, svc, store := setupIngredientService(t)
	user := testutil.CreateUser(t, db, "maker@example.com")
	ids := tagIDs(t, db, "Emollient", "Shine")

	req := &dto.IngredientRequest{
		Name:     testutil.Ptr("Shea Butter"),
		Category: testutil.Ptr("Butter"),
		Notes:    testutil.Ptr("Unrefined"),
		TagIDs:   append(ids, 0),
	}

	ingredient, err := svc.Create(context.Background(), user.ID, req, pngUpload("shea.png"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ingredient.Name != "Shea Butter" || ingredient.Category != "Butter" {
		t.Errorf("ingredient = %+v", ingredient)
	}
	if len(ingredient.Tags) != 2 || ingredient.Tags[0].Name != "Emollient" {
		t.Errorf("tags = %+v, want Emollient and Shine", ingredient.Tags)
	}
	if !ingredient.Photo.Attached() || !strings.HasSuffix(ingredient.Photo.Key, "_shea.png") {
		t.Errorf("photo = %+v", ingredient.Photo)
	}
	if store.Len() != 1 {
		t.Errorf("blobs = %d, want 1", store.Len())
	}
}

func TestCreateIngredientValidation(t *testing.T) {
	db, svc, store := setupIngredientService(t)
	user := testutil.CreateUser(t, db, "maker@example.com")

	req := &dto.IngredientRequest{Name: testutil.Ptr(""), TagIDs: []uint{9999}}
	upload := &storage.Upload{Filename: "notes.txt", ContentType: "text/plain", Size: 2, Body: strings.NewReader("hi")}

	_, err := svc.Create(context.Background(), user.ID, req, upload)
	fields := validationFields(t, err)
	for field, msg := range map[string]string{
		"name":     MsgBlank,
		"category": MsgBlank,
		"tag_ids":  msgUnknownTag,
		"photo":    "must be an image",
	} {
		if got := fields[field]; len(got) != 1 || got[0] != msg {
			t.Errorf("%s errors = %v, want [%s]", field, got, msg)
		}
	}
	if n := testutil.Count(t, db, &models.Ingredient{}); n != 0 {
		t.Errorf("ingredients = %d, want 0", n)
	}
	if store.Len() != 0 {
		t.Errorf("blobs = %d, want 0", store.Len())
	}
}

func TestUpdateIngredientReplacesTagsAndPhoto(t *testing.T) {
	db, svc, store := setupIngredientService(t)
	user := testutil.CreateUser(t, db, "maker@example.com")
	ctx := context.Background()

	created, err := svc.Create(ctx, user.ID, &dto.IngredientRequest{
		Name:     testutil.Ptr("Aloe"),
		Category: testutil.Ptr("Gel"),
		TagIDs:   tagIDs(t, db, "Moisturizing", "Humectant"),
	}, pngUpload("old.png"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	oldKey := created.Photo.Key

	updated, err := svc.Update(ctx, user.ID, created.ID, &dto.IngredientRequest{
		Description: testutil.Ptr("Inner leaf"),
		TagIDs:      tagIDs(t, db, "Scalp Soothing"),
	}, pngUpload("new.png"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != "Aloe" || updated.Description != "Inner leaf" {
		t.Errorf("fields = %+v, want name kept and description set", updated)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "Scalp Soothing" {
		t.Errorf("tags = %+v, want only Scalp Soothing", updated.Tags)
	}
	if updated.Photo.Key == oldKey {
		t.Error("photo was not replaced")
	}
	if _, _, err := store.Get(oldKey); !errors.Is(err, storage.ErrBlobNotFound) {
		t.Errorf("old blob should be gone, got %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("blobs = %d, want 1", store.Len())
	}

	// Omitting tag_ids leaves the tag set alone.
	again, err := svc.Update(ctx, user.ID, created.ID, &dto.IngredientRequest{Notes: testutil.Ptr("x")}, nil)
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if len(again.Tags) != 1 {
		t.Errorf("tags = %d, want 1", len(again.Tags))
	}
}

func TestDeleteIngredientCascades(t *testing.T) {
	db, svc, _ := setupIngredientService(t)
	user := testutil.CreateUser(t, db, "maker@example.com")
	doomed := testutil.CreateIngredient(t, db, user.ID, "Doomed")
	kept := testutil.CreateIngredient(t, db, user.ID, "Kept")
	recipe := testutil.CreateRecipe(t, db, user.ID, "Blend", doomed.ID, kept.ID)
	testutil.CreateInventoryItem(t, db, user.ID, doomed.ID, "2025-01-01")
	testutil.CreateInventoryItem(t, db, user.ID, kept.ID, "2025-01-02")

	if err := svc.Delete(context.Background(), user.ID, doomed.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if n := testutil.Count(t, db, &models.Recipe{}, "id = ?", recipe.ID); n != 1 {
		t.Errorf("recipe should survive")
	}
	if n := testutil.Count(t, db, &models.RecipeIngredient{}); n != 1 {
		t.Errorf("recipe ingredients = %d, want 1", n)
	}
	if n := testutil.Count(t, db, &models.InventoryItem{}); n != 1 {
		t.Errorf("inventory items = %d, want 1", n)
	}
	if n := testutil.Count(t, db, &models.Ingredient{}, "id = ?", kept.ID); n != 1 {
		t.Errorf("other ingredient should survive")
	}
}

func TestIngredientCrossUserAccess(t *testing.T) {
	db, svc, _ := setupIngredientService(t)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	intruder := testutil.CreateUser(t, db, "intruder@example.com")
	ingredient := testutil.CreateIngredient(t, db, owner.ID, "Private")
	ctx := context.Background()

	if _, err := svc.Get(intruder.ID, ingredient.ID); !errors.Is(err, ErrIngredientNotFound) {
		t.Errorf("Get: expected ErrIngredientNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, intruder.ID, ingredient.ID, &dto.IngredientRequest{Name: testutil.Ptr("Stolen")}, nil); !errors.Is(err, ErrIngredientNotFound) {
		t.Errorf("Update: expected ErrIngredientNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, intruder.ID, ingredient.ID); !errors.Is(err, ErrIngredientNotFound) {
		t.Errorf("Delete: expected ErrIngredientNotFound, got %v", err)
	}

	list, err := svc.List(intruder.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("intruder sees %d ingredients", list.Total)
	}
}

func TestListIngredientsByName(t *testing.T) {
	db, svc, _ := setupIngredientService(t)
	user := testutil.CreateUser(t, db, "maker@example.com")
	for _, name := range []string{"Zinc", "Aloe", "Mango"} {
		testutil.CreateIngredient(t, db, user.ID, name)
	}

	list, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, ing := range list.Ingredients {
		names = append(names, ing.Name)
	}
	if strings.Join(names, ",") != "Aloe,Mango,Zinc" {
		t.Errorf("order = %v", names)
	}

	form, err := svc.NewForm(user.ID)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	if len(form.Tags) != len(models.DefaultTags) {
		t.Errorf("form tags = %d, want %d", len(form.Tags), len(models.DefaultTags))
	}
}
