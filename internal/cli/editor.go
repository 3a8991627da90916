package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/calvinalkan/doug/internal/period"
)

// resolveEditor checks for an available editor using the env map.
// Priority: settings editor -> $EDITOR -> vi -> nano -> error.
// Configured editors may carry arguments, e.g. "code --wait".
func resolveEditor(cfg period.Config, env map[string]string) (string, error) {
	// 1. Check the settings file
	if cfg.Editor != "" && editorAvailable(cfg.Editor) {
		return cfg.Editor, nil
	}

	// 2. Check $EDITOR from env map
	if editor := env["EDITOR"]; editor != "" && editorAvailable(editor) {
		return editor, nil
	}

	// 3. Fall back to common editors
	for _, fallback := range []string{"vi", "nano"} {
		_, lookErr := exec.LookPath(fallback)
		if lookErr == nil {
			return fallback, nil
		}
	}

	return "", ErrNoEditorFound
}

func editorAvailable(editor string) bool {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return false
	}

	_, err := exec.LookPath(fields[0])

	return err == nil
}

func runEditor(ctx context.Context, editor, path string, stdin io.Reader, out, errOut io.Writer) error {
	fields := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = out
	cmd.Stderr = errOut

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return fmt.Errorf("editor %s exited with code %d", fields[0], exitErr.ExitCode())
		}

		return fmt.Errorf("failed to run editor: %w", runErr)
	}

	return nil
}
