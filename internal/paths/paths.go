// Package paths resolves where songscribbler keeps its config.yaml and its
// song database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user directory under the platform roots.
const appName = "songscribbler"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SONGSCRIBBLER_CONFIG_DIR"
	EnvDataDir   = "SONGSCRIBBLER_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/songscribbler (fallback ~/.config/songscribbler)
// macOS:   ~/Library/Application Support/songscribbler
// Windows: %APPDATA%/songscribbler
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the per-user directory holding the song database.
//
// Linux:   $XDG_DATA_HOME/songscribbler (fallback ~/.local/share/songscribbler)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// userDir applies the XDG lookup on Linux and os.UserConfigDir elsewhere.
func userDir(xdgVar, homeRel string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appName), nil
}

// ResolveConfigDir returns the configuration directory: flag, then
// SONGSCRIBBLER_CONFIG_DIR, then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstSet(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory: flag, then the data_dir value
// from config.yaml, then SONGSCRIBBLER_DATA_DIR, then DefaultDataDir.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if dir := firstSet(flag, configYAMLValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultDataDir()
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
