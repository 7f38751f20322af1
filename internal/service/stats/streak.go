package stats

import "time"

// calculateStreak counts consecutive calendar days with at least one
// event, walking backwards from today. A streak that ends yesterday still
// counts: the user may simply not have acted yet today. freeze is the
// number of consecutive missed days bridged before the streak breaks;
// bridged days do not add to the count.
func calculateStreak(active map[time.Time]bool, today time.Time, freeze int) int {
	day := today
	if !active[day] {
		// Not yet acted today; the streak is measured up to yesterday.
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	gap := 0
	// A whole-history scan terminates: gap grows past freeze once the
	// walk leaves the span of recorded days.
	for {
		if active[day] {
			streak++
			gap = 0
		} else {
			gap++
			if gap > freeze {
				break
			}
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
