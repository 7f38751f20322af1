package domain

import "fmt"

// IntervalTable is the ordered list of day offsets that defines the
// spaced-repetition cadence. Its length is the number of review stages a
// problem passes through before it is mastered. Fixed at deployment.
type IntervalTable []int

// DefaultIntervalTable is the cadence used when none is configured.
var DefaultIntervalTable = IntervalTable{1, 2, 4, 7, 15, 30}

// Stages returns the number of review stages before mastery.
func (t IntervalTable) Stages() int { return len(t) }

// Days returns the day offset for the given cycle index, clamped to the
// table bounds so a corrupted index can never panic the scheduler.
func (t IntervalTable) Days(cycleIndex int) int {
	if len(t) == 0 {
		return 1
	}
	if cycleIndex < 0 {
		cycleIndex = 0
	}
	if cycleIndex >= len(t) {
		cycleIndex = len(t) - 1
	}
	return t[cycleIndex]
}

// Validate checks the table is non-empty, strictly positive and
// strictly increasing.
func (t IntervalTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("interval table is empty")
	}
	for i, d := range t {
		if d <= 0 {
			return fmt.Errorf("interval table entry %d: %d is not positive", i, d)
		}
		if i > 0 && d <= t[i-1] {
			return fmt.Errorf("interval table entry %d: %d does not increase over %d", i, d, t[i-1])
		}
	}
	return nil
}
