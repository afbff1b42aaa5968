// Package service defines the interfaces the categorization engine
// consumes from its collaborators.
package service

import (
	"context"
	"io"

	"github.com/reeselc/centsible/internal/model"
)

// PatternStore is the persistence contract for learned merchant patterns
// and category reference data.
type PatternStore interface {
	// LookupPattern returns the learned pattern matching the normalized
	// description, or common.ErrNotFound when no pattern applies. Any
	// other error means the store could not be consulted and must not be
	// treated as "no pattern".
	LookupPattern(ctx context.Context, description string) (*model.PatternEntry, error)

	// SavePattern records a confirmed (description, category) pair,
	// replacing any previous entry for the same merchant key. Saving the
	// same key twice is not an error; the last write wins.
	SavePattern(ctx context.Context, description, category string) error

	ListPatterns(ctx context.Context) ([]model.PatternEntry, error)
	GetCategories(ctx context.Context) ([]model.Category, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Extractor produces transaction records from raw statement text.
// Records come back with category and confidence unset.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) ([]model.Transaction, error)
}
