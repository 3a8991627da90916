package period_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/doug/internal/period"
)

func TestClip(t *testing.T) {
	t.Parallel()

	window := period.Span{Start: at(12, 0), End: at(13, 0)}
	now := at(20, 0)

	for _, tt := range []struct {
		name     string
		p        period.Period
		want     time.Duration
		wantSpan period.Span
		wantOK   bool
	}{
		{
			name:     "period covers window",
			p:        closed("a", at(10, 0), at(14, 0)),
			want:     time.Hour,
			wantSpan: window,
			wantOK:   true,
		},
		{
			name:     "starts before window ends inside",
			p:        closed("a", at(11, 0), at(12, 30)),
			want:     30 * time.Minute,
			wantSpan: period.Span{Start: at(12, 0), End: at(12, 30)},
			wantOK:   true,
		},
		{
			name:     "starts inside ends after",
			p:        closed("a", at(12, 45), at(15, 0)),
			want:     15 * time.Minute,
			wantSpan: period.Span{Start: at(12, 45), End: at(13, 0)},
			wantOK:   true,
		},
		{
			name:     "inside window",
			p:        closed("a", at(12, 10), at(12, 20)),
			want:     10 * time.Minute,
			wantSpan: period.Span{Start: at(12, 10), End: at(12, 20)},
			wantOK:   true,
		},
		{
			name: "disjoint before",
			p:    closed("a", at(8, 0), at(9, 0)),
		},
		{
			name: "touching window start",
			p:    closed("a", at(11, 0), at(12, 0)),
		},
		{
			name: "running period disjoint",
			p:    running("a", at(14, 0)),
		},
		{
			name:     "running period overlapping",
			p:        running("a", at(8, 0)),
			want:     time.Hour,
			wantSpan: window,
			wantOK:   true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, span, ok := period.TestClip(tt.p, now, window, true)

			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("clip=(%v, %v), want=(%v, %v)", got, ok, tt.want, tt.wantOK)
			}

			if diff := cmp.Diff(tt.wantSpan, span); diff != "" {
				t.Errorf("span (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClipUnbounded(t *testing.T) {
	t.Parallel()

	got, span, ok := period.TestClip(running("a", at(8, 0)), at(9, 30), period.Span{}, false)

	if !ok || got != 90*time.Minute {
		t.Fatalf("clip=(%v, %v), want=(1h30m, true)", got, ok)
	}

	if diff := cmp.Diff(period.Span{Start: at(8, 0), End: at(9, 30)}, span); diff != "" {
		t.Errorf("span (-want +got):\n%s", diff)
	}
}

func TestNewWindowPrecedence(t *testing.T) {
	t.Parallel()

	from := onDay(1, 0, 0)
	to := onDay(3, 0, 0)

	for _, tt := range []struct {
		name                       string
		years, months, weeks, days int
		from, to                   *time.Time
		want                       period.Window
	}{
		{name: "none", want: period.Window{Kind: period.WindowAll}},
		{name: "all counts set", years: 1, months: 2, weeks: 3, days: 4, from: &from,
			want: period.Window{Kind: period.WindowTrailing, Count: 1, Unit: period.UnitYear}},
		{name: "months over weeks", months: 2, weeks: 3,
			want: period.Window{Kind: period.WindowTrailing, Count: 2, Unit: period.UnitMonth}},
		{name: "weeks over days", weeks: 3, days: 4,
			want: period.Window{Kind: period.WindowTrailing, Count: 3, Unit: period.UnitWeek}},
		{name: "days over range", days: 4, from: &from, to: &to,
			want: period.Window{Kind: period.WindowTrailing, Count: 4, Unit: period.UnitDay}},
		{name: "range", from: &from, to: &to,
			want: period.Window{Kind: period.WindowRange, From: &from, To: &to}},
		{name: "open range", to: &to,
			want: period.Window{Kind: period.WindowRange, To: &to}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := period.NewWindow(tt.years, tt.months, tt.weeks, tt.days, tt.from, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewWindow (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWindowBounds(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("EST", -5*3600)
	now := time.Date(2024, time.March, 5, 14, 0, 0, 0, loc)
	from := time.Date(2024, time.March, 1, 15, 0, 0, 0, loc)
	to := time.Date(2024, time.March, 3, 8, 0, 0, 0, loc)

	for _, tt := range []struct {
		name string
		w    period.Window
		want period.Span
	}{
		{
			name: "trailing months are 31 days",
			w:    period.NewWindow(0, 1, 0, 0, nil, nil),
			want: period.Span{Start: now.Add(-31 * 24 * time.Hour), End: now},
		},
		{
			name: "trailing years are 365 days",
			w:    period.NewWindow(2, 0, 0, 0, nil, nil),
			want: period.Span{Start: now.Add(-2 * 365 * 24 * time.Hour), End: now},
		},
		{
			name: "range covers whole local days",
			w:    period.NewWindow(0, 0, 0, 0, &from, &to),
			want: period.Span{
				Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, loc),
				End:   time.Date(2024, time.March, 4, 0, 0, 0, 0, loc),
			},
		},
		{
			name: "range without to ends after today",
			w:    period.NewWindow(0, 0, 0, 0, &from, nil),
			want: period.Span{
				Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, loc),
				End:   time.Date(2024, time.March, 6, 0, 0, 0, 0, loc),
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.w.Bounds(now)
			if !ok {
				t.Fatal("Bounds reported no limits")
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Bounds (-want +got):\n%s", diff)
			}
		})
	}

	if _, ok := period.NewWindow(0, 0, 0, 0, nil, nil).Bounds(now); ok {
		t.Error("WindowAll should have no bounds")
	}
}

func TestBuildReportWithoutWindow(t *testing.T) {
	t.Parallel()

	now := at(20, 0)
	periods := []period.Period{
		closed("beta", at(8, 0), at(8, 45)),
		closed("alpha", at(9, 0), at(10, 0)),
		closed("alpha", onDay(6, 11, 0), onDay(6, 12, 30)),
	}

	// The second alpha period lies after now on purpose: without a window
	// every period counts in full.
	got := period.BuildReport(periods, period.NewWindow(0, 0, 0, 0, nil, nil), now)

	want := period.Report{
		Range: period.Span{Start: at(8, 0), End: onDay(6, 12, 30)},
		Projects: []period.ProjectTotal{
			{Project: "alpha", Duration: 2*time.Hour + 30*time.Minute},
			{Project: "beta", Duration: 45 * time.Minute},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildReport (-want +got):\n%s", diff)
	}
}

func TestBuildReportTrailingWindowClipsAndOmits(t *testing.T) {
	t.Parallel()

	now := at(12, 0)
	periods := []period.Period{
		closed("old", onDay(1, 9, 0), onDay(1, 10, 0)),
		closed("overnight", onDay(4, 10, 0), at(2, 0)),
		running("current", at(11, 0)),
	}

	got := period.BuildReport(periods, period.NewWindow(0, 0, 0, 1, nil, nil), now)

	want := period.Report{
		Range: period.Span{Start: onDay(4, 12, 0), End: now},
		Projects: []period.ProjectTotal{
			{Project: "current", Duration: time.Hour},
			{Project: "overnight", Duration: 14 * time.Hour},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildReport (-want +got):\n%s", diff)
	}
}

func TestBuildReportRangeIncludesToDay(t *testing.T) {
	t.Parallel()

	now := onDay(10, 12, 0)
	from := onDay(2, 0, 0)
	to := onDay(3, 0, 0)
	periods := []period.Period{
		closed("before", onDay(1, 9, 0), onDay(1, 10, 0)),
		closed("first", onDay(2, 9, 0), onDay(2, 10, 0)),
		closed("last", onDay(3, 22, 0), onDay(4, 1, 0)),
		closed("after", onDay(4, 9, 0), onDay(4, 10, 0)),
	}

	got := period.BuildReport(periods, period.NewWindow(0, 0, 0, 0, &from, &to), now)

	want := period.Report{
		Range: period.Span{Start: onDay(2, 9, 0), End: onDay(4, 0, 0)},
		Projects: []period.ProjectTotal{
			{Project: "first", Duration: time.Hour},
			{Project: "last", Duration: 2 * time.Hour},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildReport (-want +got):\n%s", diff)
	}
}

func TestBuildReportEmptyFallsBackToWindow(t *testing.T) {
	t.Parallel()

	now := at(12, 0)

	got := period.BuildReport(nil, period.NewWindow(0, 0, 1, 0, nil, nil), now)

	want := period.Report{
		Range:    period.Span{Start: now.Add(-7 * 24 * time.Hour), End: now},
		Projects: []period.ProjectTotal{},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildReport (-want +got):\n%s", diff)
	}
}

func TestBuildLog(t *testing.T) {
	t.Parallel()

	now := onDay(6, 10, 0)
	periods := []period.Period{
		closed("alpha", at(13, 0), at(14, 0)),
		closed("beta", at(9, 0), at(9, 30)),
		closed("alpha", onDay(4, 9, 0), onDay(4, 9, 10)),
		running("gamma", onDay(6, 9, 0)),
	}

	got := period.BuildLog(periods, now)

	want := []period.LogDay{
		{
			Date:  onDay(4, 0, 0),
			Total: 10 * time.Minute,
			Entries: []period.LogEntry{
				{Project: "alpha", Start: onDay(4, 9, 0), End: onDay(4, 9, 10), Duration: 10 * time.Minute},
			},
		},
		{
			Date:  at(0, 0),
			Total: 90 * time.Minute,
			Entries: []period.LogEntry{
				{Project: "beta", Start: at(9, 0), End: at(9, 30), Duration: 30 * time.Minute},
				{Project: "alpha", Start: at(13, 0), End: at(14, 0), Duration: time.Hour},
			},
		},
		{
			Date:  onDay(6, 0, 0),
			Total: time.Hour,
			Entries: []period.LogEntry{
				{Project: "gamma", Start: onDay(6, 9, 0), End: now, Open: true, Duration: time.Hour},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildLog (-want +got):\n%s", diff)
	}
}

func TestBuildLogUsesLocalCalendarDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("JST", 9*3600)
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, loc)

	// 20:00 UTC on the 5th is 05:00 on the 6th in JST.
	periods := []period.Period{
		closed("late", at(20, 0), at(21, 0)),
		closed("early", at(1, 0), at(2, 0)),
	}

	got := period.BuildLog(periods, now)

	if len(got) != 2 {
		t.Fatalf("len(days)=%d, want=2", len(got))
	}

	if want := time.Date(2024, time.March, 6, 0, 0, 0, 0, loc); !got[1].Date.Equal(want) {
		t.Errorf("days[1].Date=%v, want=%v", got[1].Date, want)
	}

	if got[1].Entries[0].Project != "late" {
		t.Errorf("days[1] project=%q, want=late", got[1].Entries[0].Project)
	}
}
