package engine

import (
	"math"
	"testing"

	"github.com/reeselc/centsible/internal/model"
)

func categorized(date, description string, amount float64, category string, confidence float64) model.Transaction {
	txn := model.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Confidence:  confidence,
	}
	if category != "" {
		txn.Category = &category
	}
	return txn
}

func TestRouteThresholdIsInclusive(t *testing.T) {
	records := []model.Transaction{
		categorized("01/01", "AT BOUNDARY", 10.00, "Gas", 0.7),
		categorized("01/02", "JUST BELOW", 10.00, "Gas", 0.69999),
	}

	result := Route(records)

	if len(result.HighConfidence) != 1 || result.HighConfidence[0].Description != "AT BOUNDARY" {
		t.Errorf("expected exactly the 0.7 record in high confidence, got %d", len(result.HighConfidence))
	}
	if len(result.NeedsReview) != 1 || result.NeedsReview[0].Description != "JUST BELOW" {
		t.Errorf("expected the 0.69999 record in needs review, got %d", len(result.NeedsReview))
	}
}

func TestRouteSummaryExcludesNeedsReview(t *testing.T) {
	records := []model.Transaction{
		categorized("01/05", "WHOLE FOODS MARKET 10245", 45.00, "Groceries - Whole Foods", 0.9),
		categorized("01/12", "WHOLE FOODS MARKET 10245", 12.50, "Groceries - Whole Foods", 0.9),
		categorized("01/20", "AMAZON.COM*M12AB34CD", 30.00, "", 0.3),
	}

	result := Route(records)

	if len(result.Summary) != 1 {
		t.Fatalf("expected one summary category, got %d", len(result.Summary))
	}
	if total := result.Summary["Groceries - Whole Foods"]; math.Abs(total-57.50) > 1e-9 {
		t.Errorf("expected total 57.50, got %v", total)
	}
	if len(result.NeedsReview) != 1 || result.NeedsReview[0].Amount != 30.00 {
		t.Errorf("expected the Amazon record in needs review")
	}
}

func TestRouteEmptyInput(t *testing.T) {
	result := Route(nil)

	if len(result.HighConfidence) != 0 || len(result.NeedsReview) != 0 {
		t.Errorf("expected empty buckets")
	}
	if len(result.Summary) != 0 {
		t.Errorf("expected empty summary, got %v", result.Summary)
	}
	// Buckets must be present (not nil) so JSON output shows [] rather
	// than null.
	if result.HighConfidence == nil || result.NeedsReview == nil || result.Summary == nil {
		t.Errorf("expected initialized result fields")
	}
}

func TestRouteSummaryOmitsZeroCategories(t *testing.T) {
	records := []model.Transaction{
		categorized("02/01", "TARGET 00021", 80.00, "Groceries - Other", 0.6),
	}

	result := Route(records)

	if _, ok := result.Summary["Groceries - Other"]; ok {
		t.Errorf("low-confidence category must not appear in summary")
	}
	if len(result.NeedsReview) != 1 {
		t.Errorf("expected the record in needs review")
	}
}
