package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/reeselc/centsible/internal/common"
	"github.com/reeselc/centsible/internal/merchant"
	"github.com/reeselc/centsible/internal/model"
)

// LookupPattern finds the learned pattern whose merchant key matches the
// normalized description. Matching uses contains semantics rather than
// equality, so a key learned from a slightly longer description still
// applies. Returns common.ErrNotFound when no pattern matches.
func (s *SQLiteStorage) LookupPattern(ctx context.Context, description string) (*model.PatternEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	key := merchant.Key(description)
	if key == "" {
		// An empty key would LIKE-match every stored row.
		return nil, common.ErrNotFound
	}

	var entry model.PatternEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT merchant_key, category, confidence, last_used
		FROM patterns
		WHERE merchant_key LIKE ?
		LIMIT 1
	`, "%"+key+"%").Scan(
		&entry.MerchantKey,
		&entry.Category,
		&entry.Confidence,
		&entry.LastUsed,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up pattern: %w", err)
	}

	return &entry, nil
}

// SavePattern inserts or replaces the learned pattern for the
// description's merchant key. Learned entries always carry confidence
// 1.0; replacing an existing key is idempotent and the last write wins.
func (s *SQLiteStorage) SavePattern(ctx context.Context, description, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(description, "description"); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	key := merchant.Key(description)
	if key == "" {
		return fmt.Errorf("%w: description", ErrEmptyString)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO patterns (merchant_key, category, confidence, last_used)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(merchant_key) DO UPDATE SET
			category = excluded.category,
			confidence = excluded.confidence,
			last_used = excluded.last_used
	`, key, category, 1.0, time.Now())

	if err != nil {
		return fmt.Errorf("failed to save pattern: %w", err)
	}

	return nil
}

// ListPatterns retrieves all learned patterns ordered by merchant key.
func (s *SQLiteStorage) ListPatterns(ctx context.Context) ([]model.PatternEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT merchant_key, category, confidence, last_used
		FROM patterns
		ORDER BY merchant_key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.PatternEntry
	for rows.Next() {
		var entry model.PatternEntry
		if err := rows.Scan(
			&entry.MerchantKey,
			&entry.Category,
			&entry.Confidence,
			&entry.LastUsed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
