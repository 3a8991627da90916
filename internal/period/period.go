// Package period holds the time-tracking domain: the Period record, its JSON
// file store, the tracking operations and the log/report aggregation.
package period

import (
	"fmt"
	"time"
)

// Period is one tracked interval. A nil EndTime means the period is still running.
type Period struct {
	Project   string     `json:"project"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// IsOpen reports whether the period is still running.
func (p Period) IsOpen() bool {
	return p.EndTime == nil
}

// End returns the end time, or now for an open period.
func (p Period) End(now time.Time) time.Time {
	if p.EndTime == nil {
		return now
	}

	return *p.EndTime
}

// Duration returns the elapsed time, treating an open period as ending now.
func (p Period) Duration(now time.Time) time.Duration {
	return p.End(now).Sub(p.StartTime)
}

func (p Period) clone() Period {
	if p.EndTime != nil {
		end := *p.EndTime
		p.EndTime = &end
	}

	return p
}

// CurrentOpen returns the running period. Only the last element can be open.
func CurrentOpen(periods []Period) (Period, bool) {
	if len(periods) == 0 {
		return Period{}, false
	}

	last := periods[len(periods)-1]
	if !last.IsOpen() {
		return Period{}, false
	}

	return last, true
}

// Validate checks the sequence invariants: non-empty project, a start time,
// end not before start, and at most one open period which must be last.
func Validate(periods []Period) error {
	for i, p := range periods {
		if p.Project == "" {
			return fmt.Errorf("%w: period %d has an empty project", ErrInvariant, i)
		}

		if p.StartTime.IsZero() {
			return fmt.Errorf("%w: period %d has no start_time", ErrInvariant, i)
		}

		if p.EndTime == nil {
			if i != len(periods)-1 {
				return fmt.Errorf("%w: period %d (%s) is running but is not the last period", ErrInvariant, i, p.Project)
			}

			continue
		}

		if p.EndTime.Before(p.StartTime) {
			return fmt.Errorf("%w: period %d (%s): %w", ErrInvariant, i, p.Project, ErrEndBeforeStart)
		}
	}

	return nil
}

func clonePeriods(periods []Period) []Period {
	out := make([]Period, len(periods))
	for i, p := range periods {
		out[i] = p.clone()
	}

	return out
}
