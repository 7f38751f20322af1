package domain

import (
	"time"
)

// Event is a single timestamped learn or review occurrence.
// Plan carries the slug of the catalog that was active at the time,
// or "" when the event was recorded outside any catalog.
// Events are compared and ordered purely by Date.
type Event struct {
	Date time.Time `json:"date"`
	Plan string    `json:"plan,omitempty"`
}

// CodeBlock is one code snippet attached to a solution.
type CodeBlock struct {
	Language string `json:"language"`
	Content  string `json:"content"`
}

// Solution is a user-authored solution entry. Orthogonal to scheduling;
// persisted alongside the record and preserved by progress resets.
type Solution struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Notes     string      `json:"notes"`
	Link      string      `json:"link"`
	Tags      []string    `json:"tags"`
	Codes     []CodeBlock `json:"codes"`
	CreatedAt time.Time   `json:"createdAt,omitzero"`
	UpdatedAt time.Time   `json:"updatedAt,omitzero"`
}

// ProgressRecord is the locally owned mutable state for one problem,
// keyed by the problem ID and independent of any catalog. The cached
// display fields (Title, Slug, Difficulty) let the record render outside
// its original catalog context.
type ProgressRecord struct {
	ID               string        `json:"id"`
	Status           Status        `json:"status"`
	ReviewCycleIndex int           `json:"reviewCycleIndex"`
	NextReviewDate   *time.Time    `json:"nextReviewDate,omitempty"`
	LearnHistory     []Event       `json:"learnHistory"`
	ReviewHistory    []Event       `json:"reviewHistory"`
	Solutions        []Solution    `json:"solutions"`
	Title            BilingualText `json:"title,omitzero"`
	Slug             string        `json:"slug,omitempty"`
	Difficulty       Difficulty    `json:"difficulty,omitempty"`
}

// LastEventDate returns the most recent event date across both histories.
// ok is false when the record has no events at all.
func (r ProgressRecord) LastEventDate() (time.Time, bool) {
	var last time.Time
	found := false
	for _, e := range r.LearnHistory {
		if !found || e.Date.After(last) {
			last = e.Date
			found = true
		}
	}
	for _, e := range r.ReviewHistory {
		if !found || e.Date.After(last) {
			last = e.Date
			found = true
		}
	}
	return last, found
}

// Clone returns a deep copy of the record. Scheduler operations work on
// copies so the caller's record is never mutated in place.
func (r ProgressRecord) Clone() ProgressRecord {
	out := r
	if r.LearnHistory != nil {
		out.LearnHistory = append([]Event{}, r.LearnHistory...)
	}
	if r.ReviewHistory != nil {
		out.ReviewHistory = append([]Event{}, r.ReviewHistory...)
	}
	if r.Solutions != nil {
		out.Solutions = make([]Solution, len(r.Solutions))
		for i, s := range r.Solutions {
			cp := s
			if s.Tags != nil {
				cp.Tags = append([]string{}, s.Tags...)
			}
			if s.Codes != nil {
				cp.Codes = append([]CodeBlock{}, s.Codes...)
			}
			out.Solutions[i] = cp
		}
	}
	if r.NextReviewDate != nil {
		d := *r.NextReviewDate
		out.NextReviewDate = &d
	}
	return out
}
