package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// heatmapWindowDays is the trailing window rendered by activity heatmaps.
const heatmapWindowDays = 366

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type problemSource interface {
	AllKnownProblems(ctx context.Context) ([]domain.TrackedProblem, error)
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// ActivityEntry is one learn or review occurrence in the merged history.
type ActivityEntry struct {
	Kind    domain.EventKind      `json:"kind"`
	Date    time.Time             `json:"date"`
	Plan    string                `json:"plan,omitempty"`
	Problem domain.CatalogProblem `json:"problem"`
}

// DayCount is the number of events on one calendar day.
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Totals are the running counters over the merged history.
type Totals struct {
	TotalLearns  int `json:"totalLearns"`
	TotalReviews int `json:"totalReviews"`
	ActiveDays   int `json:"activeDays"`
	Mastered     int `json:"mastered"`
}

// Achievement is one predicate evaluated against the totals and streak.
type Achievement struct {
	ID       string `json:"id"`
	Achieved bool   `json:"achieved"`
}

// Overview bundles everything the dashboard renders in one pass.
type Overview struct {
	Feed         []ActivityEntry `json:"feed"`
	Heatmap      []DayCount      `json:"heatmap"`
	Totals       Totals          `json:"totals"`
	Streak       int             `json:"streak"`
	Achievements []Achievement   `json:"achievements"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service derives read-only statistics from the merged history across all
// known problems. Histories can be retroactively edited, so everything is
// recomputed on demand; nothing here is incrementally maintained and no
// method has side effects.
type Service struct {
	log    *slog.Logger
	source problemSource
	loc    *time.Location
	freeze int
}

// NewService creates a new stats service. freezeDays is the number of
// consecutive missed days the streak tolerates before breaking.
func NewService(logger *slog.Logger, source problemSource, loc *time.Location, freezeDays int) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if freezeDays < 0 {
		freezeDays = 0
	}
	return &Service{
		log:    logger.With("service", "stats"),
		source: source,
		loc:    loc,
		freeze: freezeDays,
	}
}

// Overview computes the full dashboard payload at now.
func (s *Service) Overview(ctx context.Context, now time.Time) (Overview, error) {
	problems, err := s.source.AllKnownProblems(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("load known problems: %w", err)
	}

	feed := buildFeed(problems)
	totals := buildTotals(problems, feed, s.loc)
	streak := calculateStreak(activeDaySet(feed, s.loc), dayOf(now.In(s.loc)), s.freeze)

	ov := Overview{
		Feed:         feed,
		Heatmap:      buildHeatmap(feed, now, s.loc),
		Totals:       totals,
		Streak:       streak,
		Achievements: evaluateAchievements(totals, streak),
	}

	s.log.DebugContext(ctx, "overview computed",
		slog.Int("events", len(feed)),
		slog.Int("streak", streak),
	)

	return ov, nil
}
