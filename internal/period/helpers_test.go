package period_test

import (
	"time"

	"github.com/calvinalkan/doug/internal/period"
)

// day is a Tuesday.
func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 5, hour, minute, 0, 0, time.UTC)
}

func onDay(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, 0, 0, time.UTC)
}

func closed(project string, start, end time.Time) period.Period {
	return period.Period{Project: project, StartTime: start, EndTime: &end}
}

func running(project string, start time.Time) period.Period {
	return period.Period{Project: project, StartTime: start}
}

// memStore is an in-memory Store that can be told to fail.
type memStore struct {
	periods []period.Period
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load() ([]period.Period, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}

	return append([]period.Period(nil), m.periods...), nil
}

func (m *memStore) Save(periods []period.Period) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.saves++
	m.periods = append([]period.Period(nil), periods...)

	return nil
}
