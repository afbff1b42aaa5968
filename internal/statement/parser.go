// Package statement extracts transaction records from plain statement
// text. It expects one transaction per line in the common credit card
// statement layout: MM/DD, description, dollar amount. Turning a source
// document (PDF, HTML) into text is the caller's problem.
package statement

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/reeselc/centsible/internal/model"
)

var (
	// lineRegex matches "MM/DD <rest of line>".
	lineRegex = regexp.MustCompile(`^(\d{2}/\d{2})\s+(.+)`)
	// amountRegex matches a trailing dollar amount, optionally prefixed
	// with $ and with thousands commas.
	amountRegex = regexp.MustCompile(`\$?([\d,]+\.\d{2})$`)
)

// skipMarkers flag lines that are not purchases: card payments and
// autopay confirmations.
var skipMarkers = []string{"PAYMENT", "THANK YOU", "AUTOPAY"}

// Parser implements statement text parsing.
type Parser struct{}

// NewParser creates a new statement parser.
func NewParser() *Parser {
	return &Parser{}
}

// Extract reads statement text and returns the transaction records it
// contains, with category and confidence unset. Lines that do not look
// like transactions are ignored; payment lines are skipped.
func (p *Parser) Extract(_ context.Context, r io.Reader) ([]model.Transaction, error) {
	scanner := bufio.NewScanner(r)

	var transactions []model.Transaction
	var skipped int

	for scanner.Scan() {
		line := scanner.Text()

		lineMatch := lineRegex.FindStringSubmatch(line)
		if lineMatch == nil {
			continue
		}
		date := lineMatch[1]
		rest := strings.TrimSpace(lineMatch[2])

		amountLoc := amountRegex.FindStringSubmatchIndex(rest)
		if amountLoc == nil {
			continue
		}

		amount, err := strconv.ParseFloat(strings.ReplaceAll(rest[amountLoc[2]:amountLoc[3]], ",", ""), 64)
		if err != nil {
			continue
		}

		description := strings.TrimSpace(rest[:amountLoc[0]])
		description = strings.TrimSpace(strings.TrimSuffix(description, "$"))
		if description == "" {
			continue
		}

		if isPaymentLine(description) {
			skipped++
			continue
		}

		transactions = append(transactions, model.Transaction{
			ID:          uuid.NewString(),
			Date:        date,
			Description: description,
			Amount:      amount,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}

	slog.Info("Parsed statement",
		"transactions", len(transactions),
		"payment_lines_skipped", skipped)

	return transactions, nil
}

// isPaymentLine reports whether a description is a payment or autopay
// line rather than a purchase.
func isPaymentLine(description string) bool {
	upper := strings.ToUpper(description)
	for _, marker := range skipMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
