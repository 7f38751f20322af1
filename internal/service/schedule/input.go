package schedule

import (
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// LearnInput is the input for Learn.
type LearnInput struct {
	ProblemID string
	Plan      string
	// Now is the event timestamp. Zero means the current time.
	Now time.Time
}

func (in LearnInput) Validate() error {
	if in.ProblemID == "" {
		return domain.NewValidationError("problem_id", "required")
	}
	return nil
}

// ReviewInput is the input for Review.
type ReviewInput struct {
	ProblemID string
	Plan      string
	Now       time.Time
}

func (in ReviewInput) Validate() error {
	if in.ProblemID == "" {
		return domain.NewValidationError("problem_id", "required")
	}
	return nil
}

// UndoInput is the input for Undo.
type UndoInput struct {
	ProblemID string
	Kind      domain.EventKind
	Date      time.Time
}

func (in UndoInput) Validate() error {
	if in.ProblemID == "" {
		return domain.NewValidationError("problem_id", "required")
	}
	if !in.Kind.IsValid() {
		return domain.NewValidationError("kind", "must be LEARN or REVIEW")
	}
	if in.Date.IsZero() {
		return domain.NewValidationError("date", "required")
	}
	return nil
}

// RetimeInput is the input for Retime.
type RetimeInput struct {
	ProblemID string
	Kind      domain.EventKind
	OldDate   time.Time
	NewDate   time.Time
}

func (in RetimeInput) Validate() error {
	var errs []domain.FieldError
	if in.ProblemID == "" {
		errs = append(errs, domain.FieldError{Field: "problem_id", Message: "required"})
	}
	if !in.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be LEARN or REVIEW"})
	}
	if in.OldDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "old_date", Message: "required"})
	}
	if in.NewDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "new_date", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SolutionInput is the input for UpsertSolution. An empty SolutionID
// creates a new entry.
type SolutionInput struct {
	ProblemID  string
	SolutionID string
	Title      string
	Notes      string
	Link       string
	Tags       []string
	Codes      []domain.CodeBlock
}

func (in SolutionInput) Validate() error {
	if in.ProblemID == "" {
		return domain.NewValidationError("problem_id", "required")
	}
	return nil
}
