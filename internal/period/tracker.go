package period

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/calvinalkan/doug/internal/clock"
	"github.com/calvinalkan/doug/internal/timefmt"
)

// Tracker runs the tracking operations against a loaded period sequence.
// Every successful mutation is saved before it returns. A failed save leaves
// the in-memory mutation in place and returns the store error.
type Tracker struct {
	store   Store
	clock   clock.Clock
	logger  *slog.Logger
	periods []Period
}

// OpenTracker loads the store once and returns a tracker over its periods.
func OpenTracker(store Store, clk clock.Clock, logger *slog.Logger) (*Tracker, error) {
	periods, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Tracker{
		store:   store,
		clock:   clk,
		logger:  logger,
		periods: periods,
	}, nil
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Periods returns a copy of the period sequence in insertion order.
func (t *Tracker) Periods() []Period {
	return clonePeriods(t.periods)
}

// CurrentOpen returns the running period, if any.
func (t *Tracker) CurrentOpen() (Period, bool) {
	return CurrentOpen(t.periods)
}

// Last returns the most recent period, running or not.
func (t *Tracker) Last() (Period, bool) {
	if len(t.periods) == 0 {
		return Period{}, false
	}

	return t.periods[len(t.periods)-1].clone(), true
}

// commit validates next, installs it and saves it.
func (t *Tracker) commit(op string, next []Period) error {
	validateErr := Validate(next)
	if validateErr != nil {
		return validateErr
	}

	t.periods = next

	saveErr := t.store.Save(next)
	if saveErr != nil {
		t.logger.Error("save failed", "op", op, "err", saveErr)

		return saveErr
	}

	return nil
}

func (t *Tracker) errIfRunning() error {
	if open, ok := t.CurrentOpen(); ok {
		return fmt.Errorf("%w: project %s is running (stop it first)", ErrAlreadyTracking, open.Project)
	}

	return nil
}

// Start begins tracking project.
func (t *Tracker) Start(project string) (Period, error) {
	if strings.TrimSpace(project) == "" {
		return Period{}, ErrProjectRequired
	}

	runningErr := t.errIfRunning()
	if runningErr != nil {
		return Period{}, runningErr
	}

	started := Period{Project: project, StartTime: t.Now().UTC()}

	err := t.commit("start", append(t.Periods(), started))
	if err != nil {
		return Period{}, err
	}

	t.logger.Info("started period", "project", project)

	return started, nil
}

// Stop ends the running period at the current time.
func (t *Tracker) Stop() (Period, error) {
	open, ok := t.CurrentOpen()
	if !ok {
		return Period{}, ErrNothingTracked
	}

	end := t.Now().UTC()
	open.EndTime = &end

	next := t.Periods()
	next[len(next)-1] = open

	err := t.commit("stop", next)
	if err != nil {
		return Period{}, err
	}

	t.logger.Info("stopped period", "project", open.Project)

	return open.clone(), nil
}

// Cancel removes the running period without keeping a record of it.
func (t *Tracker) Cancel() (Period, error) {
	open, ok := t.CurrentOpen()
	if !ok {
		return Period{}, ErrNothingTracked
	}

	next := t.Periods()

	err := t.commit("cancel", next[:len(next)-1])
	if err != nil {
		return Period{}, err
	}

	t.logger.Info("canceled period", "project", open.Project)

	return open, nil
}

// Restart starts a new period for the project of the last (stopped) period.
func (t *Tracker) Restart() (Period, error) {
	runningErr := t.errIfRunning()
	if runningErr != nil {
		return Period{}, runningErr
	}

	last, ok := t.Last()
	if !ok {
		return Period{}, ErrNoHistory
	}

	return t.Start(last.Project)
}

// Amend renames the running period. It returns the previous name.
func (t *Tracker) Amend(project string) (string, Period, error) {
	if strings.TrimSpace(project) == "" {
		return "", Period{}, ErrProjectRequired
	}

	open, ok := t.CurrentOpen()
	if !ok {
		return "", Period{}, ErrNothingTracked
	}

	oldName := open.Project
	open.Project = project

	next := t.Periods()
	next[len(next)-1] = open

	err := t.commit("amend", next)
	if err != nil {
		return "", Period{}, err
	}

	t.logger.Info("amended period", "from", oldName, "to", project)

	return oldName, open, nil
}

// Delete removes every period of project and returns how many were removed.
func (t *Tracker) Delete(project string) (int, error) {
	next := make([]Period, 0, len(t.periods))

	for _, p := range t.periods {
		if p.Project != project {
			next = append(next, p.clone())
		}
	}

	removed := len(t.periods) - len(next)
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", ErrProjectNotFound, project)
	}

	err := t.commit("delete", next)
	if err != nil {
		return 0, err
	}

	t.logger.Info("deleted project", "project", project, "periods", removed)

	return removed, nil
}

// Edit sets the start and/or end time of the last period from humanized
// dates. With neither given it does nothing and reports changed=false.
func (t *Tracker) Edit(start, end *string) (Period, bool, error) {
	if start == nil && end == nil {
		return Period{}, false, nil
	}

	now := t.Now()

	var newStart, newEnd time.Time

	if start != nil {
		parsed, err := timefmt.ParseHuman(*start, now)
		if err != nil {
			return Period{}, false, err
		}

		newStart = parsed.UTC()
	}

	if end != nil {
		parsed, err := timefmt.ParseHuman(*end, now)
		if err != nil {
			return Period{}, false, err
		}

		newEnd = parsed.UTC()
	}

	if len(t.periods) == 0 {
		return Period{}, false, ErrNoPeriod
	}

	next := t.Periods()
	last := &next[len(next)-1]

	if start != nil {
		last.StartTime = newStart
	}

	if end != nil {
		last.EndTime = &newEnd
	}

	if last.EndTime != nil && last.EndTime.Before(last.StartTime) {
		return Period{}, false, fmt.Errorf("%w: %s is before %s", ErrEndBeforeStart,
			timefmt.DateTime(*last.EndTime, now.Location()), timefmt.DateTime(last.StartTime, now.Location()))
	}

	edited := last.clone()

	err := t.commit("edit", next)
	if err != nil {
		return Period{}, false, err
	}

	t.logger.Info("edited period", "project", edited.Project, "start", edited.StartTime, "end", edited.EndTime)

	return edited, true, nil
}

// Status describes the running period. simpleName yields just the project
// name and simpleTime just the elapsed duration; with either flag set and
// nothing running, the result is empty instead of ErrNothingTracked.
func (t *Tracker) Status(simpleName, simpleTime bool) (string, error) {
	open, ok := t.CurrentOpen()
	if !ok {
		if simpleName || simpleTime {
			return "", nil
		}

		return "", ErrNothingTracked
	}

	now := t.Now()
	elapsed := timefmt.Duration(open.Duration(now))

	switch {
	case simpleName:
		return open.Project, nil
	case simpleTime:
		return elapsed, nil
	default:
		return fmt.Sprintf("Project %s started %s ago (%s)",
			open.Project, elapsed, timefmt.DateTime(open.StartTime, now.Location())), nil
	}
}
