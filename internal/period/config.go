package period

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/doug/internal/fs"
	"github.com/calvinalkan/doug/internal/logging"
)

// Config holds all configuration options.
type Config struct {
	// From the settings file (serialized)
	DataLocation string `json:"data_location"`
	Editor       string `json:"editor,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`

	// Resolved (computed, not serialized)
	SettingsDir  string `json:"-"` // Folder holding the default settings file
	SettingsPath string `json:"-"` // Settings file that was read or created
	DataDirAbs   string `json:"-"` // Absolute path to the data directory

	// Sources tracks where the config came from (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks how the settings file was obtained.
type ConfigSources struct {
	Explicit bool // Loaded from -c/--config
	Created  bool // Default settings file was missing or empty and has been written
}

// SettingsFileName is the settings file inside the settings folder.
const SettingsFileName = "settings.json"

// defaultDirName is the settings folder under $HOME.
const defaultDirName = ".doug"

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDir         string            // base for relative flag paths; os.Getwd() if empty
	SettingsDir     string            // --dir flag value
	ConfigPath      string            // -c/--config flag value
	DataDirOverride string            // --data-dir flag value; empty means no override
	Env             map[string]string // environment variables
}

// DefaultConfig returns the configuration used when the settings file is empty.
// Data lives next to the settings file.
func DefaultConfig(settingsDir string) Config {
	return Config{DataLocation: settingsDir}
}

// resolveSettingsDir picks the settings folder: --dir, then $DOUG_DIR, then $HOME/.doug.
func resolveSettingsDir(input LoadConfigInput) (string, error) {
	if input.SettingsDir != "" {
		return absFrom(input.WorkDir, input.SettingsDir), nil
	}

	if dir := input.Env["DOUG_DIR"]; dir != "" {
		return absFrom(input.WorkDir, dir), nil
	}

	if home := input.Env["HOME"]; home != "" {
		return filepath.Join(home, defaultDirName), nil
	}

	return "", ErrNoHome
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults (data next to the settings file)
// 2. Settings file ($HOME/.doug/settings.json, or the explicit -c file)
// 3. Environment ($DOUG_LOG_LEVEL)
// 4. CLI overrides (--data-dir).
//
// A missing or empty default settings file is created with the defaults.
// All paths in the returned Config are absolute.
func LoadConfig(input LoadConfigInput) (Config, error) {
	if input.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}

		input.WorkDir = wd
	}

	settingsDir, err := resolveSettingsDir(input)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig(settingsDir)
	cfg.SettingsDir = settingsDir

	if input.ConfigPath != "" {
		path := absFrom(input.WorkDir, input.ConfigPath)

		_, statErr := os.Stat(path)
		if statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}

		fileCfg, loaded, loadErr := loadConfigFile(path)
		if loadErr != nil {
			return Config{}, loadErr
		}

		if loaded {
			cfg = mergeConfig(cfg, fileCfg)
		}

		cfg.SettingsPath = path
		cfg.Sources.Explicit = true
	} else {
		path := filepath.Join(settingsDir, SettingsFileName)

		fileCfg, loaded, loadErr := loadConfigFile(path)
		if loadErr != nil {
			return Config{}, loadErr
		}

		if loaded {
			cfg = mergeConfig(cfg, fileCfg)
		} else {
			writeErr := SaveSettings(path, cfg)
			if writeErr != nil {
				return Config{}, writeErr
			}

			cfg.Sources.Created = true
		}

		cfg.SettingsPath = path
	}

	if level := input.Env["DOUG_LOG_LEVEL"]; level != "" {
		cfg.LogLevel = level
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	// Relative data_location is relative to the settings file, --data-dir to the cwd.
	cfg.DataDirAbs = absFrom(filepath.Dir(cfg.SettingsPath), cfg.DataLocation)

	if input.DataDirOverride != "" {
		cfg.DataDirAbs = absFrom(input.WorkDir, input.DataDirOverride)
	}

	return cfg, nil
}

// loadConfigFile loads a settings file. Missing or empty files report loaded=false.
func loadConfigFile(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// An explicit "data_location": "" is an error rather than "use the default".
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["data_location"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, ErrDataLocationEmpty
		}
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DataLocation != "" {
		base.DataLocation = overlay.DataLocation
	}

	if overlay.Editor != "" {
		base.Editor = overlay.Editor
	}

	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.DataLocation == "" {
		return ErrDataLocationEmpty
	}

	if cfg.LogLevel != "" {
		_, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfg.SettingsPath, err)
		}
	}

	return nil
}

// SaveSettings writes the serialized fields of cfg to path.
func SaveSettings(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigWrite, err)
	}

	mkdirErr := os.MkdirAll(filepath.Dir(path), dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigWrite, path, mkdirErr)
	}

	writeErr := fs.NewReal().WriteFileAtomic(path, append(data, '\n'), filePerms)
	if writeErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigWrite, path, writeErr)
	}

	return nil
}

// ClearSettings truncates the settings file. The next load recreates the defaults.
func ClearSettings(path string) error {
	writeErr := fs.NewReal().WriteFileAtomic(path, nil, filePerms)
	if writeErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigWrite, path, writeErr)
	}

	return nil
}

func absFrom(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(base, path)
}
