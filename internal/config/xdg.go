// Package config provides XDG Base Directory specification compliance
// utilities.
package config

import (
	"os"
	"path/filepath"
)

const appName = "lasso"

// GetConfigDir returns the XDG config directory for lasso
// ($XDG_CONFIG_HOME/lasso, default ~/.config/lasso). With ENV=dev the
// directory moves under .dev/ in the working tree instead.
func GetConfigDir() (string, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, ".dev", appName), nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// ResolveRulesScript expands a configured rule script path. Bare names
// resolve against the config directory so config.toml can just say
// "rules.js".
func ResolveRulesScript(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, path), nil
}

// EnsureDirectories creates the config directory if it doesn't exist.
func EnsureDirectories() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, dirPerm)
}
