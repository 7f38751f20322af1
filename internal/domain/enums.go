package domain

// Status represents the spaced-repetition learning state of a problem.
type Status string

const (
	StatusUnstarted Status = "UNSTARTED"
	StatusLearning  Status = "LEARNING"
	StatusMastered  Status = "MASTERED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusUnstarted, StatusLearning, StatusMastered:
		return true
	}
	return false
}

// Difficulty represents the difficulty grade of a catalog problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// EventKind identifies which history an event belongs to.
type EventKind string

const (
	EventKindLearn  EventKind = "LEARN"
	EventKindReview EventKind = "REVIEW"
)

func (k EventKind) String() string { return string(k) }

func (k EventKind) IsValid() bool {
	switch k {
	case EventKindLearn, EventKindReview:
		return true
	}
	return false
}
