package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/models"
	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/testutil"
)

func TestBatchNewFormDefaults(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBatchService(db)
	svc.now = func() time.Time { return time.Date(2025, 6, 9, 22, 30, 0, 0, time.UTC) }

	user := testutil.CreateUser(t, db, "maker@example.com")
	ingredient := testutil.CreateIngredient(t, db, user.ID, "Flax")
	testutil.CreateRecipe(t, db, user.ID, "Zesty Gel", ingredient.ID)
	recipe := testutil.CreateRecipe(t, db, user.ID, "Flax Gel", ingredient.ID)

	form, err := svc.NewForm(user.ID, recipe.ID)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	if got := form.Batch.MadeOn.Format("2006-01-02"); got != "2025-06-09" {
		t.Errorf("made_on = %s, want 2025-06-09", got)
	}
	if form.Batch.RecipeID != recipe.ID {
		t.Errorf("recipe_id = %d, want %d", form.Batch.RecipeID, recipe.ID)
	}
	if len(form.Recipes) != 2 || form.Recipes[0].Title != "Flax Gel" {
		t.Errorf("recipes = %+v, want ordered by title", form.Recipes)
	}
}

func TestCreateBatch(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBatchService(db)
	user := testutil.CreateUser(t, db, "maker@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")
	ingredient := testutil.CreateIngredient(t, db, user.ID, "Flax")
	recipe := testutil.CreateRecipe(t, db, user.ID, "Flax Gel", ingredient.ID)
	otherIngredient := testutil.CreateIngredient(t, db, other.ID, "Okra")
	foreign := testutil.CreateRecipe(t, db, other.ID, "Okra Gel", otherIngredient.ID)

	tests := []struct {
		name   string
		req    dto.BatchRequest
		errors map[string]string
	}{
		{
			name:   "blank",
			req:    dto.BatchRequest{},
			errors: map[string]string{"recipe_id": MsgBlank, "made_on": MsgBlank},
		},
		{
			name:   "bad date",
			req:    dto.BatchRequest{RecipeID: testutil.Ptr(recipe.ID), MadeOn: testutil.Ptr("June 9")},
			errors: map[string]string{"made_on": MsgInvalid},
		},
		{
			name:   "another user's recipe",
			req:    dto.BatchRequest{RecipeID: testutil.Ptr(foreign.ID), MadeOn: testutil.Ptr("2025-06-09")},
			errors: map[string]string{"recipe_id": MsgMustExist},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(user.ID, &tt.req)
			fields := validationFields(t, err)
			for field, msg := range tt.errors {
				if got := fields[field]; len(got) != 1 || got[0] != msg {
					t.Errorf("%s errors = %v, want [%s]", field, got, msg)
				}
			}
		})
	}

	batch, err := svc.Create(user.ID, &dto.BatchRequest{
		RecipeID: testutil.Ptr(recipe.ID),
		MadeOn:   testutil.Ptr("2025-06-09"),
		Notes:    testutil.Ptr("Strained twice"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if batch.Recipe == nil || batch.Recipe.Title != "Flax Gel" {
		t.Errorf("recipe = %+v, want Flax Gel preloaded", batch.Recipe)
	}
	if n := testutil.Count(t, db, &models.Batch{}); n != 1 {
		t.Errorf("batches = %d, want 1", n)
	}
}

func TestBatchListAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBatchService(db)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	intruder := testutil.CreateUser(t, db, "intruder@example.com")
	ingredient := testutil.CreateIngredient(t, db, owner.ID, "Flax")
	recipe := testutil.CreateRecipe(t, db, owner.ID, "Flax Gel", ingredient.ID)
	first := testutil.CreateBatch(t, db, owner.ID, recipe.ID, "2025-01-01")
	second := testutil.CreateBatch(t, db, owner.ID, recipe.ID, "2025-02-01")

	list, err := svc.List(owner.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Total != 2 || list.Batches[0].ID != second.ID {
		t.Errorf("list = %+v, want newest first", list.Batches)
	}

	if _, err := svc.Get(intruder.ID, first.ID); !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("Get: expected ErrBatchNotFound, got %v", err)
	}
	if err := svc.Delete(intruder.ID, first.ID); !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("Delete: expected ErrBatchNotFound, got %v", err)
	}
	if err := svc.Delete(owner.ID, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := testutil.Count(t, db, &models.Batch{}); n != 1 {
		t.Errorf("batches = %d, want 1", n)
	}
}
