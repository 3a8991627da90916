package period

import "errors"

// File names inside the data location.
const (
	DataFileName   = "periods.json"
	BackupFileName = "periods.json-backup"
)

// Error variables for period operations.
var (
	ErrStoreIO            = errors.New("period store i/o failed")
	ErrStoreParse         = errors.New("malformed period data")
	ErrInvariant          = errors.New("invalid period sequence")
	ErrAlreadyTracking    = errors.New("a project is already being tracked")
	ErrNothingTracked     = errors.New("no project started")
	ErrNoHistory          = errors.New("no previous project to restart")
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectRequired    = errors.New("project name is required")
	ErrNoPeriod           = errors.New("no period to edit")
	ErrEndBeforeStart     = errors.New("end time is before start time")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrConfigWrite        = errors.New("cannot write config file")
	ErrDataLocationEmpty  = errors.New("data_location cannot be empty")
	ErrNoHome             = errors.New("cannot locate settings directory: HOME is not set")
)
