// Package rules implements the built-in keyword classifier. The rule
// table is fixed at compile time; learned patterns layered on top of it
// live in storage.
package rules

import "strings"

// Rule maps a set of keyword triggers to a category with a fixed
// confidence. Keywords are case-insensitive substring tests against the
// full description.
type Rule struct {
	Category   string // empty for flag-only rules that assign no category
	Keywords   []string
	Confidence float64
}

// Result is the outcome of classifying one description. A zero Result
// means no rule matched.
type Result struct {
	Category   string // empty when no rule names a category
	Confidence float64
}

// table is evaluated top to bottom and the first match wins, so order
// carries meaning: specific merchants come before generic catch-alls
// ("AMAZON PRIME" before "AMAZON"), and Travel precedes Transit so that
// UBER and LYFT always resolve to Travel.
var table = []Rule{
	{Category: "Groceries - Whole Foods", Keywords: []string{"WHOLE FOODS", "WFM", "WHOLEFDS"}, Confidence: 0.9},
	{Category: "Groceries - Trader Joe's", Keywords: []string{"TRADER JOE"}, Confidence: 0.9},
	// Big-box stores sell a lot more than groceries, hence the lower
	// confidence.
	{Category: "Groceries - Other", Keywords: []string{"PUBLIX", "WALMART", "TARGET", "WINN DIXIE", "ALDI"}, Confidence: 0.6},
	{Category: "Dining - Coffee", Keywords: []string{"STARBUCKS", "DUNKIN", "COFFEE", "TATTE", "MARIAGE"}, Confidence: 0.9},
	{Category: "Dining - Restaurants", Keywords: []string{"RESTAURANT", "CHICK-FIL-A", "CHIPOTLE", "PANERA", "BURGER", "PIZZA", "SUSHI", "GRILL", "CAFE", "SWEETGREEN"}, Confidence: 0.9},
	{Category: "Travel", Keywords: []string{"JETBLUE", "DELTA", "UNITED", "AIRLINE", "HOTEL", "AIRBNB", "UBER", "LYFT"}, Confidence: 0.9},
	{Category: "Shopping - Clothes", Keywords: []string{"MARSHALLS", "TJ MAXX", "TJMAXX", "NORDSTROM", "MACY"}, Confidence: 0.9},
	{Category: "Shopping - Beauty", Keywords: []string{"SEPHORA", "ULTA", "SALON", "BEAUTY"}, Confidence: 0.9},
	{Category: "Home Supplies", Keywords: []string{"HOME DEPOT", "LOWES", "IKEA", "WAYFAIR"}, Confidence: 0.9},
	{Category: "Kip Food", Keywords: []string{"CHEWY", "PETSMART", "PETCO", "ROVER"}, Confidence: 0.9},
	// UBER and LYFT are unreachable here because Travel sits earlier in
	// the table; they stay listed to match the published rules.
	{Category: "Transit", Keywords: []string{"MBTA", "TOLL", "PARKING", "METRO", "UBER", "LYFT"}, Confidence: 0.9},
	{Category: "Gas", Keywords: []string{"SHELL", "BP#", "EXXON", "CHEVRON", "MOBIL", " GAS "}, Confidence: 0.9},
	{Category: "Entertainment", Keywords: []string{"MOVIE", "CINEMA", "SPOTIFY", "NETFLIX", "MUSEUM"}, Confidence: 0.9},
	{Category: "Subscriptions - Prime", Keywords: []string{"AMAZON PRIME"}, Confidence: 0.9},
	{Category: "Subscriptions - Rent the Runway", Keywords: []string{"RENT THE RUNWAY"}, Confidence: 0.9},
	{Category: "Phone Plan", Keywords: []string{"VERIZON", "AT&T", "T-MOBILE"}, Confidence: 0.9},
	// Generic Amazon could be anything; flag it for review without
	// naming a category.
	{Keywords: []string{"AMAZON"}, Confidence: 0.3},
}

// Classify evaluates the description against the rule table and returns
// the first matching rule's category and confidence. Evaluation
// short-circuits: later rules are never consulted after a match.
func Classify(description string) Result {
	desc := strings.ToUpper(description)
	for _, rule := range table {
		for _, keyword := range rule.Keywords {
			if strings.Contains(desc, keyword) {
				return Result{Category: rule.Category, Confidence: rule.Confidence}
			}
		}
	}
	return Result{}
}
