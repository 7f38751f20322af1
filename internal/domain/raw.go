package domain

import "time"

// RawRecord is the loosely-shaped persisted document for one problem.
// Every field is optional: older clients stored partial records, renamed
// enum casings, and a singular solutionText/solutionLink pair instead of
// the solutions list. Unknown fields in the stored JSON are ignored.
type RawRecord struct {
	Status           *string       `json:"status,omitempty"`
	ReviewCycleIndex *int          `json:"reviewCycleIndex,omitempty"`
	NextReviewDate   *time.Time    `json:"nextReviewDate,omitempty"`
	LearnHistory     []Event       `json:"learnHistory,omitempty"`
	ReviewHistory    []Event       `json:"reviewHistory,omitempty"`
	Solutions        []RawSolution `json:"solutions,omitempty"`
	Title            *BilingualText `json:"title,omitempty"`
	Slug             *string       `json:"slug,omitempty"`
	Difficulty       *string       `json:"difficulty,omitempty"`

	// Legacy singular solution fields, superseded by Solutions.
	SolutionText *string `json:"solutionText,omitempty"`
	SolutionLink *string `json:"solutionLink,omitempty"`
}

// RawSolution is a solution entry as stored, with every field optional.
type RawSolution struct {
	ID        *string     `json:"id,omitempty"`
	Title     *string     `json:"title,omitempty"`
	Notes     *string     `json:"notes,omitempty"`
	Link      *string     `json:"link,omitempty"`
	Tags      []string    `json:"tags,omitempty"`
	Codes     []CodeBlock `json:"codes,omitempty"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

// Raw converts a canonical record back into its document form. Used by the
// export path so the written document round-trips through RecordFromRaw.
func (r ProgressRecord) Raw() RawRecord {
	status := string(r.Status)
	cycle := r.ReviewCycleIndex
	raw := RawRecord{
		Status:           &status,
		ReviewCycleIndex: &cycle,
		NextReviewDate:   r.NextReviewDate,
		LearnHistory:     r.LearnHistory,
		ReviewHistory:    r.ReviewHistory,
	}
	if !r.Title.IsZero() {
		t := r.Title
		raw.Title = &t
	}
	if r.Slug != "" {
		s := r.Slug
		raw.Slug = &s
	}
	if r.Difficulty != "" {
		d := string(r.Difficulty)
		raw.Difficulty = &d
	}
	for _, sol := range r.Solutions {
		raw.Solutions = append(raw.Solutions, rawSolution(sol))
	}
	return raw
}

func rawSolution(s Solution) RawSolution {
	id, title, notes, link := s.ID, s.Title, s.Notes, s.Link
	out := RawSolution{
		ID:    &id,
		Title: &title,
		Notes: &notes,
		Link:  &link,
		Tags:  s.Tags,
		Codes: s.Codes,
	}
	if !s.CreatedAt.IsZero() {
		c := s.CreatedAt
		out.CreatedAt = &c
	}
	if !s.UpdatedAt.IsZero() {
		u := s.UpdatedAt
		out.UpdatedAt = &u
	}
	return out
}
