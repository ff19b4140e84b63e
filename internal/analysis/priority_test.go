package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriorityAtBoundaries(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	in := func(days int) *time.Time {
		d := now.AddDate(0, 0, days)
		return &d
	}

	cases := []struct {
		name string
		due  *time.Time
		want Priority
	}{
		{"seven days", in(7), PriorityHigh},
		{"eight days", in(8), PriorityMedium},
		{"thirty days", in(30), PriorityMedium},
		{"thirty one days", in(31), PriorityLow},
		{"past due", in(-3), PriorityHigh},
		{"today", in(0), PriorityHigh},
		{"no date", nil, PriorityLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PriorityAt(now, tc.due, nil))
		})
	}
}

func TestPriorityAtPrefersDueDate(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 60)
	expiry := now.AddDate(0, 0, 2)

	assert.Equal(t, PriorityLow, PriorityAt(now, &due, &expiry))
	assert.Equal(t, PriorityHigh, PriorityAt(now, nil, &expiry))

	zero := time.Time{}
	assert.Equal(t, PriorityHigh, PriorityAt(now, &zero, &expiry))
	assert.Equal(t, PriorityLow, PriorityAt(now, &zero, nil))
}

func TestCalculatePriority(t *testing.T) {
	due := time.Now().AddDate(0, 0, 20)
	assert.Equal(t, PriorityMedium, CalculatePriority(Record{DueDate: &due}))
	assert.Equal(t, PriorityLow, CalculatePriority(Record{}))
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, NormalizePriority("high"))
	assert.Equal(t, PriorityLow, NormalizePriority(" Low "))
	assert.Equal(t, PriorityMedium, NormalizePriority("urgent"))
	assert.Equal(t, PriorityMedium, NormalizePriority(""))
}
