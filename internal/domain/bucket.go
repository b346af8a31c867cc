package domain

import "strings"

// MiscBucket is the bucket for categories with no explicit mapping.
const MiscBucket = "Misc"

// BucketMap maps transaction categories (case-insensitive, exact match) to
// display buckets for the monthly-expenses breakdown. The mapping is owned
// by configuration; categories are never bucketed by substring inference.
type BucketMap map[string]string

// DefaultBucketMap returns the built-in category-to-bucket mapping.
func DefaultBucketMap() BucketMap {
	return BucketMap{
		"rent":        "Rent",
		"mortgage":    "Rent",
		"utilities":   "Bills",
		"electric":    "Bills",
		"water":       "Bills",
		"internet":    "Bills",
		"phone":       "Bills",
		"groceries":   "Groceries",
		"gas":         "Gas",
		"fuel":        "Gas",
		"debt":        "Debt",
		"loan":        "Debt",
		"credit card": "Debt",
		"savings":     "Savings",
	}
}

// Resolve returns the bucket for a category, or MiscBucket when the
// category has no mapping.
func (m BucketMap) Resolve(category string) string {
	if bucket, ok := m[strings.ToLower(strings.TrimSpace(category))]; ok {
		return bucket
	}
	return MiscBucket
}

// Merge overlays entries from another map, normalizing keys. Used to apply
// configured overrides on top of the defaults.
func (m BucketMap) Merge(overrides map[string]string) {
	for category, bucket := range overrides {
		m[strings.ToLower(strings.TrimSpace(category))] = bucket
	}
}
