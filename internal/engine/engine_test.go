package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reeselc/centsible/internal/common"
	"github.com/reeselc/centsible/internal/merchant"
	"github.com/reeselc/centsible/internal/model"
)

// mockStore implements service.PatternStore in memory, mirroring the
// SQLite store's contains-match lookup semantics.
type mockStore struct {
	entries   map[string]model.PatternEntry
	lookupErr error
	lookups   int
}

func newMockStore() *mockStore {
	return &mockStore{entries: make(map[string]model.PatternEntry)}
}

func (m *mockStore) LookupPattern(_ context.Context, description string) (*model.PatternEntry, error) {
	m.lookups++
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	key := merchant.Key(description)
	if key == "" {
		return nil, common.ErrNotFound
	}
	for storedKey, entry := range m.entries {
		if strings.Contains(storedKey, key) {
			found := entry
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *mockStore) SavePattern(_ context.Context, description, category string) error {
	m.entries[merchant.Key(description)] = model.PatternEntry{
		MerchantKey: merchant.Key(description),
		Category:    category,
		Confidence:  1.0,
		LastUsed:    time.Now(),
	}
	return nil
}

func (m *mockStore) ListPatterns(_ context.Context) ([]model.PatternEntry, error) {
	return nil, nil
}

func (m *mockStore) GetCategories(_ context.Context) ([]model.Category, error) {
	return nil, nil
}

func (m *mockStore) Migrate(_ context.Context) error { return nil }
func (m *mockStore) Close() error                    { return nil }

func TestCategorizeUsesRules(t *testing.T) {
	store := newMockStore()
	categorizer := New(store)

	txn, err := categorizer.Categorize(context.Background(), model.Transaction{
		Date:        "01/15",
		Description: "STARBUCKS 800-782-7282",
		Amount:      5.75,
	})
	if err != nil {
		t.Fatalf("Categorize failed: %v", err)
	}

	if !txn.Categorized() || *txn.Category != "Dining - Coffee" {
		t.Errorf("expected Dining - Coffee, got %v", txn.Category)
	}
	if txn.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", txn.Confidence)
	}
}

func TestCategorizeLearnedPatternOverridesRules(t *testing.T) {
	store := newMockStore()
	// STARBUCKS would rule-match Dining - Coffee at 0.9; the learned
	// pattern must win anyway.
	if err := store.SavePattern(context.Background(), "STARBUCKS COFFEE CO 123", "Gifts"); err != nil {
		t.Fatalf("SavePattern failed: %v", err)
	}

	categorizer := New(store)
	txn, err := categorizer.Categorize(context.Background(), model.Transaction{
		Date:        "02/01",
		Description: "STARBUCKS COFFEE CO 999",
		Amount:      25.00,
	})
	if err != nil {
		t.Fatalf("Categorize failed: %v", err)
	}

	if !txn.Categorized() || *txn.Category != "Gifts" {
		t.Errorf("expected learned category Gifts, got %v", txn.Category)
	}
	if txn.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", txn.Confidence)
	}
}

func TestCategorizeStoreFailurePropagates(t *testing.T) {
	store := newMockStore()
	store.lookupErr = errors.New("disk I/O error")

	categorizer := New(store)
	_, err := categorizer.Categorize(context.Background(), model.Transaction{
		Description: "WHOLE FOODS MARKET",
	})

	// A store failure must not silently degrade to rule classification.
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "disk I/O error") {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestCategorizeEmptyDescription(t *testing.T) {
	store := newMockStore()
	categorizer := New(store)

	txn, err := categorizer.Categorize(context.Background(), model.Transaction{
		Date:   "03/10",
		Amount: 10.00,
	})
	if err != nil {
		t.Fatalf("Categorize failed: %v", err)
	}

	if txn.Categorized() {
		t.Errorf("expected no category, got %v", *txn.Category)
	}
	if txn.Confidence != 0.0 {
		t.Errorf("expected confidence 0.0, got %v", txn.Confidence)
	}
	if store.lookups != 0 {
		t.Errorf("expected no store lookup for empty description, got %d", store.lookups)
	}
}

func TestCategorizeGenericAmazonForcedToZero(t *testing.T) {
	store := newMockStore()
	categorizer := New(store)

	txn, err := categorizer.Categorize(context.Background(), model.Transaction{
		Date:        "03/15",
		Description: "AMAZON.COM*M12AB34CD",
		Amount:      30.00,
	})
	if err != nil {
		t.Fatalf("Categorize failed: %v", err)
	}

	if txn.Categorized() {
		t.Errorf("expected no category, got %v", *txn.Category)
	}
	// The flag rule nominally carries 0.3, but without a category the
	// record gets no signal at all.
	if txn.Confidence != 0.0 {
		t.Errorf("expected confidence 0.0, got %v", txn.Confidence)
	}
}

func TestCategorizeAllPreservesOrder(t *testing.T) {
	store := newMockStore()
	categorizer := New(store)

	input := []model.Transaction{
		{Date: "01/01", Description: "WHOLE FOODS MARKET", Amount: 45.00},
		{Date: "01/02", Description: "UBER TRIP", Amount: 18.20},
		{Date: "01/03", Description: "UNKNOWN MERCHANT", Amount: 3.00},
	}

	var ticks int
	got, err := categorizer.CategorizeAll(context.Background(), input, func() { ticks++ })
	if err != nil {
		t.Fatalf("CategorizeAll failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if ticks != 3 {
		t.Errorf("expected 3 progress ticks, got %d", ticks)
	}
	if *got[0].Category != "Groceries - Whole Foods" || *got[1].Category != "Travel" {
		t.Errorf("unexpected categories: %v, %v", got[0].Category, got[1].Category)
	}
	if got[2].Categorized() {
		t.Errorf("expected third record uncategorized, got %v", *got[2].Category)
	}
}
