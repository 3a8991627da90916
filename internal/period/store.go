package period

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/calvinalkan/doug/internal/fs"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Store loads and persists the whole period sequence.
type Store interface {
	Load() ([]Period, error)
	Save(periods []Period) error
}

// FileStore keeps periods as one JSON array in dir/periods.json and copies
// the previous content to dir/periods.json-backup before every overwrite.
type FileStore struct {
	fs     fs.FS
	dir    string
	logger *slog.Logger
}

// NewFileStore returns a store rooted at the data directory dir.
func NewFileStore(fsys fs.FS, dir string, logger *slog.Logger) *FileStore {
	return &FileStore{fs: fsys, dir: dir, logger: logger}
}

// Path returns the data file path.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, DataFileName)
}

// BackupPath returns the backup file path.
func (s *FileStore) BackupPath() string {
	return filepath.Join(s.dir, BackupFileName)
}

// Load reads the data file, creating it (and its directory) when missing.
// An empty file yields an empty sequence.
func (s *FileStore) Load() ([]Period, error) {
	mkdirErr := s.fs.MkdirAll(s.dir, dirPerms)
	if mkdirErr != nil {
		return nil, fmt.Errorf("%w: creating data directory %s: %w", ErrStoreIO, s.dir, mkdirErr)
	}

	path := s.Path()

	file, openErr := s.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, filePerms)
	if openErr != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrStoreIO, path, openErr)
	}

	defer func() { _ = file.Close() }()

	data, readErr := io.ReadAll(file)
	if readErr != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrStoreIO, path, readErr)
	}

	periods, parseErr := decodePeriods(data)
	if parseErr != nil {
		return nil, fmt.Errorf("%w in %s: %w", ErrStoreParse, path, parseErr)
	}

	s.logger.Debug("loaded periods", "path", path, "count", len(periods))

	return periods, nil
}

func decodePeriods(data []byte) ([]Period, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Period{}, nil
	}

	var periods []Period

	unmarshalErr := json.Unmarshal(data, &periods)
	if unmarshalErr != nil {
		return nil, unmarshalErr
	}

	if periods == nil {
		periods = []Period{}
	}

	validateErr := Validate(periods)
	if validateErr != nil {
		return nil, validateErr
	}

	return periods, nil
}

// Save backs up the current data file and atomically replaces it with periods.
func (s *FileStore) Save(periods []Period) error {
	validateErr := Validate(periods)
	if validateErr != nil {
		return validateErr
	}

	if periods == nil {
		periods = []Period{}
	}

	data, marshalErr := json.MarshalIndent(periods, "", "  ")
	if marshalErr != nil {
		return fmt.Errorf("%w: encoding periods: %w", ErrStoreIO, marshalErr)
	}

	data = append(data, '\n')

	mkdirErr := s.fs.MkdirAll(s.dir, dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("%w: creating data directory %s: %w", ErrStoreIO, s.dir, mkdirErr)
	}

	backupErr := s.backup()
	if backupErr != nil {
		return backupErr
	}

	path := s.Path()

	writeErr := s.fs.WriteFileAtomic(path, data, filePerms)
	if writeErr != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrStoreIO, path, writeErr)
	}

	s.logger.Debug("saved periods", "path", path, "count", len(periods))

	return nil
}

// backup copies the current data file content (empty if missing) to the backup path.
func (s *FileStore) backup() error {
	current, readErr := s.fs.ReadFile(s.Path())
	if readErr != nil && !os.IsNotExist(readErr) {
		return fmt.Errorf("%w: reading %s for backup: %w", ErrStoreIO, s.Path(), readErr)
	}

	writeErr := s.fs.WriteFileAtomic(s.BackupPath(), current, filePerms)
	if writeErr != nil {
		return fmt.Errorf("%w: creating backup %s: %w", ErrStoreIO, s.BackupPath(), writeErr)
	}

	s.logger.Debug("wrote backup", "path", s.BackupPath(), "bytes", len(current))

	return nil
}
