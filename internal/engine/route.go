package engine

import "github.com/reeselc/centsible/internal/model"

// reviewThreshold is the confidence below which a record goes to a human
// for review. The boundary is inclusive: exactly 0.7 is auto-accepted.
const reviewThreshold = 0.7

// Result partitions categorized records by confidence and totals the
// auto-accepted amounts per category.
type Result struct {
	Summary        map[string]float64  `json:"summary"`
	HighConfidence []model.Transaction `json:"high_confidence"`
	NeedsReview    []model.Transaction `json:"needs_review"`
}

// Route splits categorized records on the review threshold. The summary
// sums amounts per category over the high-confidence bucket only;
// categories with no high-confidence records are absent from the map.
func Route(records []model.Transaction) Result {
	result := Result{
		Summary:        make(map[string]float64),
		HighConfidence: make([]model.Transaction, 0, len(records)),
		NeedsReview:    make([]model.Transaction, 0),
	}

	for _, txn := range records {
		if txn.Confidence >= reviewThreshold {
			result.HighConfidence = append(result.HighConfidence, txn)
			if txn.Categorized() {
				result.Summary[*txn.Category] += txn.Amount
			}
		} else {
			result.NeedsReview = append(result.NeedsReview, txn)
		}
	}

	return result
}
