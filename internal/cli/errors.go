package cli

import "errors"

var (
	ErrNoCommand      = errors.New("no command provided")
	ErrUnknownCommand = errors.New("unknown command")
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrNoEditorFound  = errors.New("no editor found (set editor in settings or $EDITOR)")
	ErrUnknownShell   = errors.New("unsupported shell (must be bash|zsh|fish)")
	ErrEmptyFlagValue = errors.New("flag value cannot be empty")
)
