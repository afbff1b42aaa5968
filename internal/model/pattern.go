package model

import "time"

// PatternEntry is a human-confirmed mapping from a merchant key to a
// category. At most one entry exists per merchant key; learning the same
// key again fully overwrites the previous category (last write wins).
type PatternEntry struct {
	LastUsed    time.Time `json:"last_used"`
	MerchantKey string    `json:"merchant_key"`
	Category    string    `json:"category"`
	Confidence  float64   `json:"confidence"`
}
