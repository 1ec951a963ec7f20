package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "HEARTH_CONFIG"
	// EnvPublicKey overrides email.public_key so the key can stay out of the file
	EnvPublicKey = "HEARTH_EMAILJS_PUBLIC_KEY"
	// ConfigFileName is the default config file name
	ConfigFileName = "hearth.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "hearth"
)

// FindConfigPath searches for config file in priority order:
// 1. $HEARTH_CONFIG (explicit path)
// 2. ./hearth.yaml (working directory)
// 3. $XDG_CONFIG_HOME/hearth/config.yaml
// 4. ~/.config/hearth/config.yaml
//
// Returns empty string if no config file found
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
