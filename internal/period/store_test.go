package period_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/doug/internal/fs"
	"github.com/calvinalkan/doug/internal/logging"
	"github.com/calvinalkan/doug/internal/period"
)

func newStore(t *testing.T) *period.FileStore {
	t.Helper()

	return period.NewFileStore(fs.NewReal(), filepath.Join(t.TempDir(), "data"), logging.Discard())
}

func TestLoadCreatesMissingFile(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	periods, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(periods) != 0 {
		t.Errorf("len(periods)=%d, want=0", len(periods))
	}

	if _, statErr := os.Stat(store.Path()); statErr != nil {
		t.Errorf("data file not created: %v", statErr)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		periods []period.Period
	}{
		{name: "empty", periods: []period.Period{}},
		{name: "closed only", periods: []period.Period{
			closed("alpha", at(9, 0), at(10, 30)),
			closed("beta", at(11, 0), at(11, 45)),
		}},
		{name: "running last", periods: []period.Period{
			closed("alpha", at(9, 0), at(10, 30)),
			running("gamma", at(12, 0)),
		}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t)

			if err := store.Save(tt.periods); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}

			if diff := cmp.Diff(tt.periods, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveWritesEmptyArray(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	if err := store.Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "[]\n"; got != want {
		t.Errorf("content=%q, want=%q", got, want)
	}
}

func TestSaveBacksUpPreviousContent(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	first := []period.Period{closed("alpha", at(9, 0), at(10, 0))}

	if err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	before, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save(append(first, running("beta", at(11, 0)))); err != nil {
		t.Fatalf("Save: %v", err)
	}

	backup, err := os.ReadFile(store.BackupPath())
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}

	if diff := cmp.Diff(string(before), string(backup)); diff != "" {
		t.Errorf("backup mismatch (-want +got):\n%s", diff)
	}

	if got, want := filepath.Base(store.BackupPath()), "periods.json-backup"; got != want {
		t.Errorf("backup name=%q, want=%q", got, want)
	}
}

func TestSaveFailsWhenBackupCannotBeWritten(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	original := []period.Period{closed("alpha", at(9, 0), at(10, 0))}

	if err := store.Save(original); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A directory in place of the backup file makes the copy fail.
	if err := os.Remove(store.BackupPath()); err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Join(store.BackupPath(), "occupied"), 0o750); err != nil {
		t.Fatal(err)
	}

	err := store.Save(nil)
	if !errors.Is(err, period.ErrStoreIO) {
		t.Fatalf("Save err=%v, want ErrStoreIO", err)
	}

	got, loadErr := store.Load()
	if loadErr != nil {
		t.Fatalf("Load: %v", loadErr)
	}

	if diff := cmp.Diff(original, got); diff != "" {
		t.Errorf("data file changed despite failed backup (-want +got):\n%s", diff)
	}
}

func TestSaveRejectsInvalidSequence(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	err := store.Save([]period.Period{
		running("alpha", at(9, 0)),
		closed("beta", at(10, 0), at(11, 0)),
	})
	if !errors.Is(err, period.ErrInvariant) {
		t.Fatalf("Save err=%v, want ErrInvariant", err)
	}

	if _, statErr := os.Stat(store.Path()); !os.IsNotExist(statErr) {
		t.Errorf("data file written for invalid sequence (stat err=%v)", statErr)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "not json", content: "{{{", wantErr: period.ErrStoreParse},
		{name: "object instead of array", content: `{"project":"a"}`, wantErr: period.ErrStoreParse},
		{name: "bad timestamp", content: `[{"project":"a","start_time":"yesterday","end_time":null}]`, wantErr: period.ErrStoreParse},
		{name: "empty project", content: `[{"project":"","start_time":"2024-03-05T09:00:00Z","end_time":null}]`, wantErr: period.ErrInvariant},
		{name: "end before start", content: `[{"project":"a","start_time":"2024-03-05T09:00:00Z","end_time":"2024-03-05T08:00:00Z"}]`, wantErr: period.ErrEndBeforeStart},
		{name: "running not last", content: `[
			{"project":"a","start_time":"2024-03-05T09:00:00Z","end_time":null},
			{"project":"b","start_time":"2024-03-05T10:00:00Z","end_time":"2024-03-05T11:00:00Z"}
		]`, wantErr: period.ErrInvariant},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t)

			if err := os.MkdirAll(filepath.Dir(store.Path()), 0o750); err != nil {
				t.Fatal(err)
			}

			if err := os.WriteFile(store.Path(), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			_, err := store.Load()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load err=%v, want %v", err, tt.wantErr)
			}

			if !errors.Is(err, period.ErrStoreParse) {
				t.Errorf("Load err=%v, want it to wrap ErrStoreParse", err)
			}
		})
	}
}

func TestLoadTreatsBlankFileAsEmpty(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o750); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(store.Path(), []byte(" \n\t"), 0o600); err != nil {
		t.Fatal(err)
	}

	periods, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(periods) != 0 {
		t.Errorf("len(periods)=%d, want=0", len(periods))
	}
}

func TestLoadFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	store := period.NewFileStore(fs.NewReal(), filepath.Join(blocker, "data"), logging.Discard())

	_, err := store.Load()
	if !errors.Is(err, period.ErrStoreIO) {
		t.Fatalf("Load err=%v, want ErrStoreIO", err)
	}
}
