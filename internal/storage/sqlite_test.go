package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/reeselc/centsible/internal/common"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store
}

func TestSQLiteStorage_SaveAndLookupPattern(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	if err := store.SavePattern(ctx, "STARBUCKS COFFEE CO 123", "Dining - Coffee"); err != nil {
		t.Fatalf("SavePattern failed: %v", err)
	}

	// A different trailing store number must hit the same pattern.
	entry, err := store.LookupPattern(ctx, "STARBUCKS COFFEE CO 999")
	if err != nil {
		t.Fatalf("LookupPattern failed: %v", err)
	}

	if entry.MerchantKey != "STARBUCKS COFFEE CO" {
		t.Errorf("expected key STARBUCKS COFFEE CO, got %q", entry.MerchantKey)
	}
	if entry.Category != "Dining - Coffee" {
		t.Errorf("expected Dining - Coffee, got %q", entry.Category)
	}
	if entry.Confidence != 1.0 {
		t.Errorf("learned patterns must carry confidence 1.0, got %v", entry.Confidence)
	}
	if entry.LastUsed.IsZero() {
		t.Errorf("expected last_used to be set")
	}
}

func TestSQLiteStorage_SavePatternLastWriteWins(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	if err := store.SavePattern(ctx, "STARBUCKS COFFEE CO", "Dining - Coffee"); err != nil {
		t.Fatalf("first SavePattern failed: %v", err)
	}
	// Re-saving the same key must replace, not error.
	if err := store.SavePattern(ctx, "STARBUCKS COFFEE CO", "Gifts"); err != nil {
		t.Fatalf("second SavePattern failed: %v", err)
	}

	entry, err := store.LookupPattern(ctx, "STARBUCKS COFFEE CO")
	if err != nil {
		t.Fatalf("LookupPattern failed: %v", err)
	}
	if entry.Category != "Gifts" {
		t.Errorf("expected last write to win, got %q", entry.Category)
	}

	patterns, err := store.ListPatterns(ctx)
	if err != nil {
		t.Fatalf("ListPatterns failed: %v", err)
	}
	if len(patterns) != 1 {
		t.Errorf("expected a single entry per merchant key, got %d", len(patterns))
	}
}

func TestSQLiteStorage_LookupPatternNotFound(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.LookupPattern(ctx, "NEVER SEEN BEFORE")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_LookupPatternEmptyDescription(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// With an entry present, an empty key must still not match: a bare
	// LIKE '%%' would match every row.
	if err := store.SavePattern(ctx, "WHOLE FOODS MARKET", "Groceries - Whole Foods"); err != nil {
		t.Fatalf("SavePattern failed: %v", err)
	}

	_, err := store.LookupPattern(ctx, "")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty description, got %v", err)
	}
}

func TestSQLiteStorage_LookupPatternContainsSemantics(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Stored key: "TST* MAMALEHS DELI". A shorter description whose key
	// appears inside the stored key still matches.
	if err := store.SavePattern(ctx, "TST* MAMALEHS DELI CAMBRIDGE", "Dining - Restaurants"); err != nil {
		t.Fatalf("SavePattern failed: %v", err)
	}

	entry, err := store.LookupPattern(ctx, "MAMALEHS DELI")
	if err != nil {
		t.Fatalf("LookupPattern failed: %v", err)
	}
	if entry.Category != "Dining - Restaurants" {
		t.Errorf("expected Dining - Restaurants, got %q", entry.Category)
	}
}

func TestSQLiteStorage_SavePatternValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	if err := store.SavePattern(ctx, "", "Gas"); !errors.Is(err, ErrEmptyString) {
		t.Errorf("expected ErrEmptyString for empty description, got %v", err)
	}
	if err := store.SavePattern(ctx, "SHELL OIL", ""); !errors.Is(err, ErrEmptyString) {
		t.Errorf("expected ErrEmptyString for empty category, got %v", err)
	}

	// Nothing may have been written.
	patterns, err := store.ListPatterns(ctx)
	if err != nil {
		t.Fatalf("ListPatterns failed: %v", err)
	}
	if len(patterns) != 0 {
		t.Errorf("expected empty store after rejected saves, got %d entries", len(patterns))
	}
}

func TestSQLiteStorage_ListPatternsOrdered(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, pair := range [][2]string{
		{"ZIPCAR BOSTON", "Travel"},
		{"ALDI 70123", "Groceries - Other"},
		{"MBTA CHARLIE", "Transit"},
	} {
		if err := store.SavePattern(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("SavePattern failed: %v", err)
		}
	}

	patterns, err := store.ListPatterns(ctx)
	if err != nil {
		t.Fatalf("ListPatterns failed: %v", err)
	}
	if len(patterns) != 3 {
		t.Fatalf("expected 3 patterns, got %d", len(patterns))
	}
	for i := 1; i < len(patterns); i++ {
		if patterns[i-1].MerchantKey > patterns[i].MerchantKey {
			t.Errorf("patterns not ordered by merchant key: %q > %q",
				patterns[i-1].MerchantKey, patterns[i].MerchantKey)
		}
	}
}

func TestSQLiteStorage_CategoriesSeeded(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(categories) != 19 {
		t.Errorf("expected 19 seeded categories, got %d", len(categories))
	}

	byName := make(map[string]string, len(categories))
	for _, cat := range categories {
		byName[cat.Name] = cat.Parent
	}

	if parent, ok := byName["Groceries - Whole Foods"]; !ok || parent != "Groceries" {
		t.Errorf("expected Groceries - Whole Foods under Groceries, got %q (present: %v)", parent, ok)
	}
	if parent, ok := byName["Gas"]; !ok || parent != "" {
		t.Errorf("expected Gas with no parent, got %q (present: %v)", parent, ok)
	}
}

func TestSQLiteStorage_MigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}
