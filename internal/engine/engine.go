// Package engine orchestrates transaction categorization: learned
// patterns first, the built-in rule table second, confidence routing
// last.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reeselc/centsible/internal/common"
	"github.com/reeselc/centsible/internal/model"
	"github.com/reeselc/centsible/internal/rules"
	"github.com/reeselc/centsible/internal/service"
)

// Categorizer assigns categories and confidences to transaction records.
type Categorizer struct {
	store service.PatternStore
}

// New creates a Categorizer backed by the given pattern store.
func New(store service.PatternStore) *Categorizer {
	return &Categorizer{store: store}
}

// Categorize assigns a category and confidence to a single record.
// Learned patterns override the rule table regardless of the rule
// confidence that would otherwise apply. A store failure propagates; it
// is never treated as "no pattern found".
func (c *Categorizer) Categorize(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	if strings.TrimSpace(txn.Description) != "" {
		entry, err := c.store.LookupPattern(ctx, txn.Description)
		switch {
		case err == nil:
			category := entry.Category
			txn.Category = &category
			txn.Confidence = entry.Confidence
			return txn, nil
		case !errors.Is(err, common.ErrNotFound):
			return txn, fmt.Errorf("pattern lookup for %q: %w", txn.Description, err)
		}
	}

	result := rules.Classify(txn.Description)
	if result.Category == "" {
		// No category means no signal, even when a flag-only rule
		// nominally carried a nonzero confidence.
		txn.Category = nil
		txn.Confidence = 0.0
		return txn, nil
	}

	category := result.Category
	txn.Category = &category
	txn.Confidence = result.Confidence
	return txn, nil
}

// CategorizeAll categorizes records in order, invoking progress after
// each record when non-nil. The first store failure aborts the run.
func (c *Categorizer) CategorizeAll(ctx context.Context, txns []model.Transaction, progress func()) ([]model.Transaction, error) {
	categorized := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		result, err := c.Categorize(ctx, txn)
		if err != nil {
			return nil, err
		}
		categorized = append(categorized, result)
		if progress != nil {
			progress()
		}
	}
	return categorized, nil
}
