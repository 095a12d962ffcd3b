// ABOUTME: Locates the config file and the local data directory
// ABOUTME: Follows flag, env, then XDG priority with a home directory fallback

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables read by the client.
const (
	EnvConfig        = "HELPLINE_CONFIG"
	EnvAPIBase       = "HELPLINE_API_BASE"
	EnvAssistantBase = "HELPLINE_ASSISTANT_BASE"
	EnvDataDir       = "HELPLINE_DATA_DIR"
)

const appDir = "helpline"

// DefaultPath returns the config file location.
// Priority: HELPLINE_CONFIG env var > XDG_CONFIG_HOME/helpline/client.yaml > ~/.config/helpline/client.yaml
func DefaultPath() string {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "client.yaml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, appDir, "client.yaml")
}

// DataDir returns the directory for local state.
// Priority: HELPLINE_DATA_DIR > XDG_DATA_HOME/helpline > ~/.local/share/helpline
func DataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, appDir)
}

// DefaultStoragePath returns the SQLite state file inside DataDir.
func DefaultStoragePath() string {
	return filepath.Join(DataDir(), "state.db")
}

// Resolve loads the config from flagPath when set, otherwise from
// DefaultPath. A missing file at an explicit path is an error; a missing file
// at the default path yields the defaults. It returns the path it tried.
func Resolve(flagPath string) (*Config, string, error) {
	path := flagPath
	explicit := path != "" || os.Getenv(EnvConfig) != ""
	if path == "" {
		path = DefaultPath()
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
		return cfg, path, nil
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = Default()
		if err := cfg.Validate(); err != nil {
			return nil, path, fmt.Errorf("validating config: %w", err)
		}
		return cfg, path, nil
	default:
		return nil, path, err
	}
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
