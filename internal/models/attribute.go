// Package models provides the core data types shared across agentready.
// This package is at the bottom of the dependency graph and should not import
// any other internal packages to avoid circular dependencies.
package models

// Tier constants. Lower tiers carry more weight in the overall score.
const (
	TierEssential = 1
	TierCritical  = 2
	TierImportant = 3
	TierAdvanced  = 4
)

// Attribute is the immutable definition of one readiness checklist item.
// The ID is a stable key: weight overrides and exclusions in user configs
// reference it, so renaming an ID is a breaking change.
type Attribute struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Criteria      string  `json:"criteria"`
	Tier          int     `json:"tier"`
	DefaultWeight float64 `json:"default_weight"`
}

// TierName returns the human-readable label for an attribute tier.
func TierName(tier int) string {
	switch tier {
	case TierEssential:
		return "Essential"
	case TierCritical:
		return "Critical"
	case TierImportant:
		return "Important"
	case TierAdvanced:
		return "Advanced"
	default:
		return "Unknown"
	}
}
