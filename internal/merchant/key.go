// Package merchant derives stable lookup keys from raw transaction
// descriptions.
package merchant

import "strings"

// keyTokens caps how much of a description participates in its key.
// Store numbers, city suffixes and transaction IDs tend to appear after
// the first few tokens, so truncating collapses repeat purchases from
// the same merchant onto one learned pattern.
const keyTokens = 3

// Key normalizes a description into the form that indexes learned
// patterns: uppercased, split on whitespace, truncated to the first
// three tokens, rejoined with single spaces. A blank description yields
// an empty key.
func Key(description string) string {
	tokens := strings.Fields(strings.ToUpper(description))
	if len(tokens) > keyTokens {
		tokens = tokens[:keyTokens]
	}
	return strings.Join(tokens, " ")
}
