package asset

import "strings"

// Condition is the normalized condition tier derived from a free-text remark.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionModerate  Condition = "moderate"
	ConditionUnknown   Condition = "unknown"
)

// ResolveCondition maps a remark onto a tier using a case-insensitive
// substring search in the order excellent, good, moderate/fair. The first hit
// wins, so "good but fair battery" is Good.
func ResolveCondition(remark string) Condition {
	r := strings.ToLower(remark)
	switch {
	case strings.Contains(r, "excellent"):
		return ConditionExcellent
	case strings.Contains(r, "good"):
		return ConditionGood
	case strings.Contains(r, "moderate"), strings.Contains(r, "fair"):
		return ConditionModerate
	default:
		return ConditionUnknown
	}
}

// Title is the display form used in reports ("Excellent", "Good", ...).
func (c Condition) Title() string {
	switch c {
	case ConditionExcellent:
		return "Excellent"
	case ConditionGood:
		return "Good"
	case ConditionModerate:
		return "Moderate"
	default:
		return "Unknown"
	}
}

// Resolved returns the asset's condition, resolving it from the remark when
// the loader left it unset.
func (a *Asset) Resolved() Condition {
	if a.Condition == "" {
		return ResolveCondition(a.ConditionRemark)
	}
	return a.Condition
}
