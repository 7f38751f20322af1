package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akulichev/coderecall-backend/internal/domain"
)

// Validate checks cross-field constraints and parses raw string fields
// into their typed forms.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("database.driver %q: must be postgres or sqlite", c.Database.Driver)
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive")
	}

	intervals, err := parseIntervals(c.Review.IntervalsRaw)
	if err != nil {
		return fmt.Errorf("review.intervals: %w", err)
	}
	c.Review.Intervals = intervals

	if c.Review.StreakFreezeDays < 0 {
		return fmt.Errorf("review.streak_freeze_days must not be negative")
	}
	if _, err := time.LoadLocation(c.Review.Timezone); err != nil {
		return fmt.Errorf("review.timezone %q: %w", c.Review.Timezone, err)
	}

	return nil
}

// parseIntervals parses a comma-separated day list like "1,2,4,7,15,30".
func parseIntervals(raw string) (domain.IntervalTable, error) {
	parts := strings.Split(raw, ",")
	table := make(domain.IntervalTable, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		days, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("entry %q is not an integer", part)
		}
		table = append(table, days)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Location returns the parsed review timezone. Validate must have been
// called; unparseable zones fall back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Review.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
