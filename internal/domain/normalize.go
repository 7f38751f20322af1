package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// solutionTitlePlaceholder is used when a stored solution has no title.
const solutionTitlePlaceholder = "Untitled solution"

// NewRecord returns an empty canonical record for the given problem ID.
func NewRecord(id string) ProgressRecord {
	return NormalizeRecord(ProgressRecord{ID: id})
}

// NormalizeRecord fills defaults and enforces the history-status
// consistency rules, returning a canonical copy. Total and idempotent:
// it never fails, and normalizing an already-canonical record is a no-op
// apart from missing solution IDs being generated.
//
// Rules:
//   - invalid or empty status defaults to UNSTARTED
//   - ReviewCycleIndex is floored at 0
//   - histories and solution lists are never nil and sorted by date
//   - a record with no learn event is UNSTARTED with empty review
//     history, cycle 0 and no next review date (a review cannot exist
//     without the learn event that preceded it)
//   - UNSTARTED and MASTERED records carry no next review date
func NormalizeRecord(rec ProgressRecord) ProgressRecord {
	out := rec.Clone()

	if !out.Status.IsValid() {
		out.Status = StatusUnstarted
	}
	if out.ReviewCycleIndex < 0 {
		out.ReviewCycleIndex = 0
	}
	if out.LearnHistory == nil {
		out.LearnHistory = []Event{}
	}
	if out.ReviewHistory == nil {
		out.ReviewHistory = []Event{}
	}
	sortEvents(out.LearnHistory)
	sortEvents(out.ReviewHistory)

	if out.Solutions == nil {
		out.Solutions = []Solution{}
	}
	for i := range out.Solutions {
		out.Solutions[i] = normalizeSolution(out.Solutions[i])
	}

	if len(out.LearnHistory) == 0 {
		out.Status = StatusUnstarted
		out.ReviewHistory = []Event{}
		out.ReviewCycleIndex = 0
		out.NextReviewDate = nil
	}
	if out.Status == StatusUnstarted || out.Status == StatusMastered {
		out.NextReviewDate = nil
	}

	return out
}

func normalizeSolution(s Solution) Solution {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Title == "" {
		s.Title = solutionTitlePlaceholder
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.Codes == nil {
		s.Codes = []CodeBlock{}
	}
	return s
}

// RecordFromRaw converts a loosely-shaped stored or imported document into
// a canonical record. Enum casings are coerced, missing fields default,
// and the legacy singular solutionText/solutionLink pair synthesizes
// exactly one solution when the solutions list is empty. Never fails.
func RecordFromRaw(id string, raw RawRecord) ProgressRecord {
	rec := ProgressRecord{ID: id}

	if raw.Status != nil {
		rec.Status = Status(strings.ToUpper(strings.TrimSpace(*raw.Status)))
	}
	if raw.ReviewCycleIndex != nil {
		rec.ReviewCycleIndex = *raw.ReviewCycleIndex
	}
	rec.NextReviewDate = raw.NextReviewDate
	rec.LearnHistory = raw.LearnHistory
	rec.ReviewHistory = raw.ReviewHistory
	if raw.Title != nil {
		rec.Title = *raw.Title
	}
	if raw.Slug != nil {
		rec.Slug = *raw.Slug
	}
	if raw.Difficulty != nil {
		rec.Difficulty = Difficulty(strings.ToUpper(strings.TrimSpace(*raw.Difficulty)))
		if !rec.Difficulty.IsValid() {
			rec.Difficulty = ""
		}
	}

	for _, rs := range raw.Solutions {
		rec.Solutions = append(rec.Solutions, solutionFromRaw(rs))
	}
	if len(rec.Solutions) == 0 {
		if legacy, ok := legacySolution(raw); ok {
			rec.Solutions = []Solution{legacy}
		}
	}

	return NormalizeRecord(rec)
}

func solutionFromRaw(rs RawSolution) Solution {
	var s Solution
	if rs.ID != nil {
		s.ID = *rs.ID
	}
	if rs.Title != nil {
		s.Title = *rs.Title
	}
	if rs.Notes != nil {
		s.Notes = *rs.Notes
	}
	if rs.Link != nil {
		s.Link = *rs.Link
	}
	s.Tags = rs.Tags
	s.Codes = rs.Codes
	if rs.CreatedAt != nil {
		s.CreatedAt = *rs.CreatedAt
	}
	if rs.UpdatedAt != nil {
		s.UpdatedAt = *rs.UpdatedAt
	}
	return s
}

// legacySolution synthesizes a solution from the pre-list singular fields.
func legacySolution(raw RawRecord) (Solution, bool) {
	text := ""
	link := ""
	if raw.SolutionText != nil {
		text = strings.TrimSpace(*raw.SolutionText)
	}
	if raw.SolutionLink != nil {
		link = strings.TrimSpace(*raw.SolutionLink)
	}
	if text == "" && link == "" {
		return Solution{}, false
	}
	return Solution{Notes: text, Link: link}, true
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
