package schedule

import (
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// The four scheduling operations are pure functions. No DB, no context,
// no logger: the caller is responsible for persisting the result. Every
// operation normalizes its input, works on a copy, and returns a
// canonical record; on error the input is returned unchanged.

// RecordLearn marks the problem as learned at now, tagged with the active
// plan. Always permitted: calling it on a LEARNING or MASTERED record is
// treated as a corrective re-learn that resets the review cycle to 0
// while preserving both histories.
func RecordLearn(rec domain.ProgressRecord, plan string, now time.Time, table domain.IntervalTable) domain.ProgressRecord {
	out := domain.NormalizeRecord(rec)

	out.LearnHistory = append(out.LearnHistory, domain.Event{Date: now, Plan: plan})
	out.ReviewCycleIndex = 0
	out.Status = domain.StatusLearning
	out.NextReviewDate = nextReview(now, table.Days(0))

	return domain.NormalizeRecord(out)
}

// RecordReview appends a review at now and advances the review cycle.
// Reaching the last stage of the interval table masters the problem.
// Only valid while the record is LEARNING.
func RecordReview(rec domain.ProgressRecord, plan string, now time.Time, table domain.IntervalTable) (domain.ProgressRecord, error) {
	out := domain.NormalizeRecord(rec)

	if out.Status != domain.StatusLearning {
		return rec, domain.ErrInvalidState
	}

	out.ReviewHistory = append(out.ReviewHistory, domain.Event{Date: now, Plan: plan})

	if out.ReviewCycleIndex+1 >= table.Stages() {
		out.Status = domain.StatusMastered
		out.ReviewCycleIndex = table.Stages()
		out.NextReviewDate = nil
	} else {
		out.ReviewCycleIndex++
		out.NextReviewDate = nextReview(now, table.Days(out.ReviewCycleIndex))
	}

	return domain.NormalizeRecord(out), nil
}

// UndoEvent removes the event with the exact date from the named history.
//
// Undoing the sole learn event cascades: a review cannot logically have
// preceded its learn event, so the whole schedule resets to UNSTARTED and
// both histories are cleared. Solutions and cached display fields are
// untouched. Undoing a review decrements the cycle (floored at 0), puts
// the record back into LEARNING, and reschedules from the most recent
// remaining event.
func UndoEvent(rec domain.ProgressRecord, kind domain.EventKind, date time.Time, table domain.IntervalTable) (domain.ProgressRecord, error) {
	out := domain.NormalizeRecord(rec)

	switch kind {
	case domain.EventKindLearn:
		remaining, found := removeEvent(out.LearnHistory, date)
		if !found {
			return rec, domain.ErrEventNotFound
		}
		if len(remaining) == 0 {
			out.LearnHistory = []domain.Event{}
			out.ReviewHistory = []domain.Event{}
			out.ReviewCycleIndex = 0
			out.NextReviewDate = nil
			out.Status = domain.StatusUnstarted
			return domain.NormalizeRecord(out), nil
		}
		out.LearnHistory = remaining
		out = reschedule(out, table)
		return domain.NormalizeRecord(out), nil

	case domain.EventKindReview:
		remaining, found := removeEvent(out.ReviewHistory, date)
		if !found {
			return rec, domain.ErrEventNotFound
		}
		out.ReviewHistory = remaining
		if out.ReviewCycleIndex > 0 {
			out.ReviewCycleIndex--
		}
		out.Status = domain.StatusLearning
		out = reschedule(out, table)
		return domain.NormalizeRecord(out), nil

	default:
		return rec, domain.ErrEventNotFound
	}
}

// RetimeEvent replaces a history entry's timestamp and reschedules from
// the (possibly reordered) latest event. The review cycle index never
// changes: retiming moves the date the schedule counts from, not the
// position within the interval table.
func RetimeEvent(rec domain.ProgressRecord, kind domain.EventKind, oldDate, newDate time.Time, table domain.IntervalTable) (domain.ProgressRecord, error) {
	out := domain.NormalizeRecord(rec)

	history := out.LearnHistory
	if kind == domain.EventKindReview {
		history = out.ReviewHistory
	} else if kind != domain.EventKindLearn {
		return rec, domain.ErrEventNotFound
	}

	idx := -1
	for i, e := range history {
		if e.Date.Equal(oldDate) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return rec, domain.ErrEventNotFound
	}
	history[idx].Date = newDate

	out = reschedule(out, table)
	return domain.NormalizeRecord(out), nil
}

// reschedule recomputes NextReviewDate from the latest event across both
// histories and the current cycle index. MASTERED and UNSTARTED records
// carry no next review date.
func reschedule(rec domain.ProgressRecord, table domain.IntervalTable) domain.ProgressRecord {
	if rec.Status != domain.StatusLearning {
		rec.NextReviewDate = nil
		return rec
	}
	last, ok := rec.LastEventDate()
	if !ok {
		rec.NextReviewDate = nil
		return rec
	}
	rec.NextReviewDate = nextReview(last, table.Days(rec.ReviewCycleIndex))
	return rec
}

// removeEvent returns the history without the event dated exactly date.
// The second return is false when no event matches.
func removeEvent(history []domain.Event, date time.Time) ([]domain.Event, bool) {
	for i, e := range history {
		if e.Date.Equal(date) {
			out := make([]domain.Event, 0, len(history)-1)
			out = append(out, history[:i]...)
			out = append(out, history[i+1:]...)
			return out, true
		}
	}
	return history, false
}

// nextReview returns from + days as a pointer. AddDate handles DST
// correctly where a 24h multiple would not.
func nextReview(from time.Time, days int) *time.Time {
	d := from.AddDate(0, 0, days)
	return &d
}
