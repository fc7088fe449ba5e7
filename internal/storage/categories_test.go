package storage

import (
	"context"
	"errors"
	"testing"
)

func TestCategories_CreateAndGet(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	created, err := store.CreateCategory(ctx, "Dairy", "Milk and milk products")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("Created category should have a non-zero id")
	}
	if !created.IsActive {
		t.Error("Created category should be active")
	}

	byName, err := store.GetCategoryByName(ctx, "Dairy")
	if err != nil {
		t.Fatalf("GetCategoryByName failed: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Errorf("GetCategoryByName = %+v, want id %d", byName, created.ID)
	}

	byID, err := store.GetCategoryByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCategoryByID failed: %v", err)
	}
	if byID == nil || byID.Name != "Dairy" {
		t.Errorf("GetCategoryByID = %+v, want Dairy", byID)
	}
}

func TestCategories_AbsentIsNilNotError(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cat, err := store.GetCategoryByName(ctx, "Nonexistent")
	if err != nil {
		t.Fatalf("GetCategoryByName failed: %v", err)
	}
	if cat != nil {
		t.Errorf("Expected nil for absent category, got %+v", cat)
	}

	cat, err = store.GetCategoryByID(ctx, 999)
	if err != nil {
		t.Fatalf("GetCategoryByID failed: %v", err)
	}
	if cat != nil {
		t.Errorf("Expected nil for absent id, got %+v", cat)
	}
}

func TestCategories_CreateExistingReturnsSame(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first, err := store.CreateCategory(ctx, "Dairy", "")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	second, err := store.CreateCategory(ctx, "Dairy", "different description")
	if err != nil {
		t.Fatalf("Second CreateCategory failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Re-creating a category should return the existing one: got id %d, want %d", second.ID, first.ID)
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("Expected 1 category, got %d", len(categories))
	}
}

func TestCategories_OrderedByName(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for _, name := range []string{"Snacks", "Beverages", "Dairy"} {
		if _, err := store.CreateCategory(ctx, name, ""); err != nil {
			t.Fatalf("CreateCategory(%q) failed: %v", name, err)
		}
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}

	want := []string{"Beverages", "Dairy", "Snacks"}
	if len(categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(categories))
	}
	for i, name := range want {
		if categories[i].Name != name {
			t.Errorf("categories[%d].Name = %q, want %q", i, categories[i].Name, name)
		}
	}
}

func TestSubcategories_CreateAndScope(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	dairy, err := store.CreateCategory(ctx, "Dairy", "")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	homeCare, err := store.CreateCategory(ctx, "Home Care", "")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	milk, err := store.CreateSubcategory(ctx, "Milk", dairy.ID)
	if err != nil {
		t.Fatalf("CreateSubcategory failed: %v", err)
	}
	if _, err := store.CreateSubcategory(ctx, "Detergent", homeCare.ID); err != nil {
		t.Fatalf("CreateSubcategory failed: %v", err)
	}

	// Same name under a different category is a distinct subcategory.
	milkHC, err := store.CreateSubcategory(ctx, "Milk", homeCare.ID)
	if err != nil {
		t.Fatalf("CreateSubcategory failed: %v", err)
	}
	if milkHC.ID == milk.ID {
		t.Error("Same name under different categories must be distinct rows")
	}

	// Same (category, name) pair returns the existing row.
	again, err := store.CreateSubcategory(ctx, "Milk", dairy.ID)
	if err != nil {
		t.Fatalf("CreateSubcategory failed: %v", err)
	}
	if again.ID != milk.ID {
		t.Errorf("Re-creating (Dairy, Milk) should return id %d, got %d", milk.ID, again.ID)
	}

	dairySubs, err := store.GetSubcategoriesByCategory(ctx, dairy.ID)
	if err != nil {
		t.Fatalf("GetSubcategoriesByCategory failed: %v", err)
	}
	if len(dairySubs) != 1 || dairySubs[0].Name != "Milk" {
		t.Errorf("Dairy subcategories = %+v, want single Milk", dairySubs)
	}

	all, err := store.GetSubcategories(ctx)
	if err != nil {
		t.Fatalf("GetSubcategories failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 subcategories in total, got %d", len(all))
	}
}

func TestSubcategories_MissingParent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.CreateSubcategory(context.Background(), "Milk", 42)
	if !errors.Is(err, ErrCategoryMissing) {
		t.Errorf("CreateSubcategory under missing category should return ErrCategoryMissing, got: %v", err)
	}
}
