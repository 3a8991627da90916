package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/calvinalkan/doug/internal/period"
)

// newStyles returns decorators bound to out. Output is plain when out is not a
// terminal or NO_COLOR is set.
func newStyles(out io.Writer, env map[string]string) period.Styles {
	r := lipgloss.NewRenderer(out)

	if _, ok := env["NO_COLOR"]; ok {
		r.SetColorProfile(termenv.Ascii)
	}

	date := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A90E2"))
	duration := r.NewStyle().Foreground(lipgloss.Color("#04B575"))
	project := r.NewStyle().Foreground(lipgloss.Color("#F7DC6F"))

	return period.Styles{
		Date:     func(s string) string { return date.Render(s) },
		Duration: func(s string) string { return duration.Render(s) },
		Project:  func(s string) string { return project.Render(s) },
	}
}

// highlight renders s in the project color, for one-line messages.
func highlight(st period.Styles, s string) string {
	if st.Project == nil {
		return s
	}

	return st.Project(s)
}
