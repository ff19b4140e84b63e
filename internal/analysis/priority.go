package analysis

import (
	"strings"
	"time"
)

const (
	highPriorityDays   = 7
	mediumPriorityDays = 30
)

// CalculatePriority rates a record against the current time.
func CalculatePriority(r Record) Priority {
	return PriorityAt(time.Now(), r.DueDate, r.ExpiryDate)
}

// PriorityAt derives urgency from the due date, or the expiry date when no
// due date is set. Anything within a week is HIGH, which includes dates
// already in the past; within a month is MEDIUM; the rest, and records with
// no usable date, are LOW.
func PriorityAt(now time.Time, due, expiry *time.Time) Priority {
	target := due
	if target == nil || target.IsZero() {
		target = expiry
	}
	if target == nil || target.IsZero() {
		return PriorityLow
	}

	diffDays := target.Sub(now).Hours() / 24
	switch {
	case diffDays <= highPriorityDays:
		return PriorityHigh
	case diffDays <= mediumPriorityDays:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// NormalizePriority upper-cases p and falls back to MEDIUM when it is not a
// known priority.
func NormalizePriority(p string) Priority {
	v := Priority(strings.ToUpper(strings.TrimSpace(p)))
	if v.Valid() {
		return v
	}
	return PriorityMedium
}
