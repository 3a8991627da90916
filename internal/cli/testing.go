package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calvinalkan/doug/internal/clock"
	"github.com/calvinalkan/doug/internal/period"
)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp HOME, environment variables and a fake clock.
type CLI struct {
	t     *testing.T
	Home  string
	Env   map[string]string
	Clock *clock.Fake
}

// NewCLI creates a new test CLI with a temp HOME and a clock stopped at
// Tuesday 2024-03-05 09:00 UTC.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	home := t.TempDir()

	return &CLI{
		t:     t,
		Home:  home,
		Env:   map[string]string{"HOME": home},
		Clock: clock.NewFake(time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)),
	}
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "doug" - it is added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	return r.RunWithInput("", args...)
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
// stdin must be a string or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader
	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string or io.Reader, got %T", stdin))
	}

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"doug"}, args...)
	code := run(inReader, &outBuf, &errBuf, fullArgs, r.Env, nil, r.Clock)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Also fails if stdout is not empty. Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	if stdout != "" {
		r.t.Fatalf("command %v failed but stdout should be empty\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// SettingsDir returns the default settings folder, which also holds the data
// file unless the settings say otherwise.
func (r *CLI) SettingsDir() string {
	return filepath.Join(r.Home, ".doug")
}

// DataPath returns the path of the default data file.
func (r *CLI) DataPath() string {
	return filepath.Join(r.SettingsDir(), period.DataFileName)
}

// ReadData returns the content of the default data file.
func (r *CLI) ReadData() string {
	r.t.Helper()

	content, err := os.ReadFile(r.DataPath())
	if err != nil {
		r.t.Fatalf("failed to read data file: %v", err)
	}

	return string(content)
}

// WriteData replaces the default data file.
func (r *CLI) WriteData(content string) {
	r.t.Helper()

	err := os.MkdirAll(r.SettingsDir(), 0o750)
	if err != nil {
		r.t.Fatalf("failed to create settings dir: %v", err)
	}

	err = os.WriteFile(r.DataPath(), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write data file: %v", err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
