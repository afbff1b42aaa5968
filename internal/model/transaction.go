package model

// Transaction represents a single statement line item moving through the
// categorization pipeline. Records are transient units of work: the
// statement extractor creates them, the engine sets Category and
// Confidence exactly once, and nothing persists them afterwards.
type Transaction struct {
	ID          string  `json:"id,omitempty"`
	Date        string  `json:"date"` // MM/DD as printed on the statement
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    *string `json:"category,omitempty"` // nil means uncategorized, distinct from ""
	Confidence  float64 `json:"confidence"`
}

// Categorized reports whether the engine assigned a category.
func (t *Transaction) Categorized() bool {
	return t.Category != nil
}
