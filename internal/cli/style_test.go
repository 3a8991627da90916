package cli

import (
	"bytes"
	"testing"
)

func TestNewStylesPlainWhenNotTerminal(t *testing.T) {
	t.Parallel()

	for _, env := range []map[string]string{
		{},
		{"NO_COLOR": "1"},
	} {
		st := newStyles(&bytes.Buffer{}, env)

		for name, decorate := range map[string]func(string) string{
			"date":     st.Date,
			"duration": st.Duration,
			"project":  st.Project,
		} {
			if decorate == nil {
				t.Fatalf("%s decorator is nil", name)
			}

			if got, want := decorate("Monday 4 March 2024"), "Monday 4 March 2024"; got != want {
				t.Errorf("%s(%q)=%q, want=%q", name, want, got, want)
			}
		}

		if got, want := highlight(st, "work"), "work"; got != want {
			t.Errorf("highlight=%q, want=%q", got, want)
		}
	}
}
