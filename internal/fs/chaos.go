package fs

import (
	iofs "io/fs"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
)

// ChaosConfig controls fault injection probabilities.
// Each rate is a float64 from 0.0 (never) to 1.0 (always).
type ChaosConfig struct {
	OpenFailRate  float64 // Fail OpenFile
	ReadFailRate  float64 // Fail ReadFile and reads from opened files
	WriteFailRate float64 // Fail WriteFileAtomic, leaving the target untouched
	MkdirFailRate float64 // Fail MkdirAll
}

// DefaultChaosConfig returns a config with reasonable fault rates for testing.
func DefaultChaosConfig() ChaosConfig {
	return ChaosConfig{
		OpenFailRate:  0.05,
		ReadFailRate:  0.05,
		WriteFailRate: 0.1,
		MkdirFailRate: 0.02,
	}
}

// PathState tracks the fault state of a path for consistent error injection.
type PathState int

const (
	// PathNormal means no persistent fault - errors are transient.
	// This is the zero value, so untracked paths are normal.
	PathNormal PathState = iota
	// PathIOError is sticky - the path has a "bad sector" and always returns EIO.
	PathIOError
	// PathReadOnly is sticky for writes - filesystem is read-only, returns EROFS.
	PathReadOnly
)

// ChaosMode controls how Chaos behaves.
type ChaosMode uint8

const (
	// ChaosModePassthrough behaves like the underlying FS.
	// It ignores fault rates and also ignores any sticky path state.
	ChaosModePassthrough ChaosMode = iota

	// ChaosModeInject enables fault-rate injection and sticky path state.
	ChaosModeInject

	// ChaosModeStickyOnly applies only sticky path state. Fault rates are disabled.
	ChaosModeStickyOnly
)

// Chaos wraps an [FS] and injects failures for testing.
//
// Injected errors are *os.PathError values carrying a syscall.Errno, wrapped
// in [InjectedError], so errors.Is against the errno keeps working.
// Writes always go through the wrapped WriteFileAtomic or not at all: a
// failed write never leaves partial content behind.
//
// The zero value is not usable; call [NewChaos]. A new Chaos starts in
// [ChaosModePassthrough].
type Chaos struct {
	fs     FS
	rng    *rand.Rand
	config ChaosConfig
	mode   atomic.Uint32

	mu         sync.Mutex
	pathStates map[string]PathState

	openFails  atomic.Int64
	readFails  atomic.Int64
	writeFails atomic.Int64
	mkdirFails atomic.Int64
}

// NewChaos creates a new Chaos filesystem wrapping the given [FS].
// The seed controls random fault injection for reproducibility.
func NewChaos(fs FS, seed int64, config ChaosConfig) *Chaos {
	return &Chaos{
		fs:         fs,
		rng:        rand.New(rand.NewSource(seed)),
		config:     config,
		pathStates: make(map[string]PathState),
	}
}

// SetMode updates Chaos behavior. Switching modes never clears sticky path state.
func (c *Chaos) SetMode(m ChaosMode) { c.mode.Store(uint32(m)) }

// SetPathState marks path as persistently broken (or healthy again with
// [PathNormal]).
func (c *Chaos) SetPathState(path string, state PathState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state == PathNormal {
		delete(c.pathStates, path)
	} else {
		c.pathStates[path] = state
	}
}

// ChaosStats contains counts of injected faults.
type ChaosStats struct {
	OpenFails  int64
	ReadFails  int64
	WriteFails int64
	MkdirFails int64
}

// Stats returns the current fault injection counts.
func (c *Chaos) Stats() ChaosStats {
	return ChaosStats{
		OpenFails:  c.openFails.Load(),
		ReadFails:  c.readFails.Load(),
		WriteFails: c.writeFails.Load(),
		MkdirFails: c.mkdirFails.Load(),
	}
}

// TotalFaults returns the total number of injected faults.
func (c *Chaos) TotalFaults() int64 {
	s := c.Stats()

	return s.OpenFails + s.ReadFails + s.WriteFails + s.MkdirFails
}

// should returns true with the given probability when chaos is injecting.
func (c *Chaos) should(mode ChaosMode, rate float64) bool {
	if mode != ChaosModeInject {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rng.Float64() < rate
}

func (c *Chaos) getState(path string) PathState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pathStates[path]
}

// stickyErr returns the errno a broken path yields for op, or 0.
func (c *Chaos) stickyErr(path string, write bool) syscall.Errno {
	switch c.getState(path) {
	case PathIOError:
		return syscall.EIO
	case PathReadOnly:
		if write {
			return syscall.EROFS
		}
	case PathNormal:
	}

	return 0
}

// pathError creates an injected *os.PathError with the given operation, path, and errno.
func pathError(op, path string, errno syscall.Errno) error {
	return inject(&iofs.PathError{Op: op, Path: path, Err: errno})
}

func (c *Chaos) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	mode := ChaosMode(c.mode.Load())
	if mode == ChaosModePassthrough {
		f, err := c.fs.OpenFile(path, flag, perm)
		if err != nil {
			return nil, err
		}

		// Still wrapped: the mode may change while the file is open.
		return &chaosFile{File: f, chaos: c, path: path}, nil
	}

	write := flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0
	if errno := c.stickyErr(path, write); errno != 0 {
		c.openFails.Add(1)

		return nil, pathError("open", path, errno)
	}

	if c.should(mode, c.config.OpenFailRate) {
		c.openFails.Add(1)

		return nil, pathError("open", path, syscall.EACCES)
	}

	f, err := c.fs.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	return &chaosFile{File: f, chaos: c, path: path}, nil
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	mode := ChaosMode(c.mode.Load())
	if mode == ChaosModePassthrough {
		return c.fs.ReadFile(path)
	}

	if errno := c.stickyErr(path, false); errno != 0 {
		c.readFails.Add(1)

		return nil, pathError("read", path, errno)
	}

	if c.should(mode, c.config.ReadFailRate) {
		c.readFails.Add(1)

		return nil, pathError("read", path, syscall.EIO)
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	mode := ChaosMode(c.mode.Load())
	if mode == ChaosModePassthrough {
		return c.fs.WriteFileAtomic(path, data, perm)
	}

	if errno := c.stickyErr(path, true); errno != 0 {
		c.writeFails.Add(1)

		return pathError("write", path, errno)
	}

	if c.should(mode, c.config.WriteFailRate) {
		c.writeFails.Add(1)

		return pathError("write", path, syscall.ENOSPC)
	}

	return c.fs.WriteFileAtomic(path, data, perm)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	mode := ChaosMode(c.mode.Load())
	if mode == ChaosModePassthrough {
		return c.fs.MkdirAll(path, perm)
	}

	if errno := c.stickyErr(path, true); errno != 0 {
		c.mkdirFails.Add(1)

		return pathError("mkdir", path, errno)
	}

	if c.should(mode, c.config.MkdirFailRate) {
		c.mkdirFails.Add(1)

		return pathError("mkdir", path, syscall.EACCES)
	}

	return c.fs.MkdirAll(path, perm)
}

// chaosFile injects read faults into an open file.
type chaosFile struct {
	File

	chaos *Chaos
	path  string
}

func (cf *chaosFile) Read(p []byte) (int, error) {
	mode := ChaosMode(cf.chaos.mode.Load())
	if mode == ChaosModePassthrough {
		return cf.File.Read(p)
	}

	if errno := cf.chaos.stickyErr(cf.path, false); errno != 0 {
		cf.chaos.readFails.Add(1)

		return 0, pathError("read", cf.path, errno)
	}

	if cf.chaos.should(mode, cf.chaos.config.ReadFailRate) {
		cf.chaos.readFails.Add(1)

		return 0, pathError("read", cf.path, syscall.EIO)
	}

	return cf.File.Read(p)
}

// Compile-time interface check.
var _ FS = (*Chaos)(nil)
