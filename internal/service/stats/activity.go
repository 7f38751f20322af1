package stats

import (
	"sort"
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// buildFeed flattens every learn and review event across all known
// problems into a single list sorted descending by date.
func buildFeed(problems []domain.TrackedProblem) []ActivityEntry {
	var feed []ActivityEntry
	for _, tp := range problems {
		for _, e := range tp.Record.LearnHistory {
			feed = append(feed, ActivityEntry{
				Kind:    domain.EventKindLearn,
				Date:    e.Date,
				Plan:    e.Plan,
				Problem: tp.Problem,
			})
		}
		for _, e := range tp.Record.ReviewHistory {
			feed = append(feed, ActivityEntry{
				Kind:    domain.EventKindReview,
				Date:    e.Date,
				Plan:    e.Plan,
				Problem: tp.Problem,
			})
		}
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	return feed
}

// buildHeatmap counts events per calendar day over the trailing window
// ending at now. Days without events are omitted; the renderer fills the
// empty cells. Ascending by date.
func buildHeatmap(feed []ActivityEntry, now time.Time, loc *time.Location) []DayCount {
	windowStart := dayOf(now.In(loc)).AddDate(0, 0, -(heatmapWindowDays - 1))

	counts := map[time.Time]int{}
	for _, e := range feed {
		day := dayOf(e.Date.In(loc))
		if day.Before(windowStart) {
			continue
		}
		counts[day]++
	}

	out := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DayCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// buildTotals computes the running counters.
func buildTotals(problems []domain.TrackedProblem, feed []ActivityEntry, loc *time.Location) Totals {
	t := Totals{ActiveDays: len(activeDaySet(feed, loc))}
	for _, e := range feed {
		if e.Kind == domain.EventKindLearn {
			t.TotalLearns++
		} else {
			t.TotalReviews++
		}
	}
	for _, tp := range problems {
		if tp.Record.Status == domain.StatusMastered {
			t.Mastered++
		}
	}
	return t
}

// activeDaySet returns the set of calendar days with at least one event.
func activeDaySet(feed []ActivityEntry, loc *time.Location) map[time.Time]bool {
	days := map[time.Time]bool{}
	for _, e := range feed {
		days[dayOf(e.Date.In(loc))] = true
	}
	return days
}

// dayOf truncates a time to midnight in its own location.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
