package model

// Category is static reference data describing a spending category,
// exposed for presentation only. Classification never consults this list.
type Category struct {
	Name   string `json:"name"`
	Parent string `json:"parent_category,omitempty"` // empty for top-level categories
}
