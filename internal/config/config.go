// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"pyfreeze-cli/internal/platform"
)

const (
	// AppName is the application name.
	AppName = "pyfreeze"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// ConfigDir returns the pyfreeze configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// defaultSearchGlobs returns the conventional interpreter install locations
// for the current platform, pattern-matched by version-folder naming.
func defaultSearchGlobs() []string {
	if runtime.GOOS == platform.Windows {
		globs := []string{
			`C:\Python3*\python.exe`,
			`C:\Program Files\Python3*\python.exe`,
		}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			globs = append([]string{
				filepath.Join(localAppData, "Programs", "Python", "Python3*", "python.exe"),
			}, globs...)
		}
		return globs
	}

	globs := []string{
		"/usr/local/bin/python3*",
		"/opt/python3*/bin/python3*",
	}
	if home, err := os.UserHomeDir(); err == nil {
		globs = append(globs, filepath.Join(home, ".pyenv", "versions", "*", "bin", "python3*"))
	}
	return globs
}

// loadWithOptions reads configuration from the requested source and returns
// the config plus the path it was loaded from ("" when defaults were used).
func loadWithOptions(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	v.SetConfigType(ConfigFileExt)

	// Seed viper with defaults so a partial config file only overrides the
	// keys it sets.
	defaults := DefaultConfig()
	v.SetDefault("build.dist_dir", defaults.Build.DistDir)
	v.SetDefault("build.work_dir", defaults.Build.WorkDir)
	v.SetDefault("build.clean_intermediates", defaults.Build.CleanIntermediates)
	v.SetDefault("interpreter.commands", defaults.Interpreter.Commands)
	v.SetDefault("interpreter.launcher", defaults.Interpreter.Launcher)
	v.SetDefault("interpreter.search_globs", defaults.Interpreter.SearchGlobs)
	v.SetDefault("artifact.copy_to_desktop", defaults.Artifact.CopyToDesktop)
	v.SetDefault("artifact.destination_dir", defaults.Artifact.DestinationDir)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.pause_on_error", defaults.UI.PauseOnError)

	configPath := opts.ConfigFilePath
	if configPath == "" {
		dir := opts.ConfigDirPath
		if dir == "" {
			var err error
			dir, err = ConfigDir()
			if err != nil {
				return nil, "", err
			}
		}
		configPath = filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)

		// A missing default config file is not an error; defaults apply.
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return defaults, "", nil
			}
			return nil, "", fmt.Errorf("failed to stat config file %s: %w", configPath, err)
		}
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, "", fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return cfg, configPath, nil
}
