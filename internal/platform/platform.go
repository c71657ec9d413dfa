// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ExeSuffix returns the executable filename suffix for the current platform.
func ExeSuffix() string {
	if runtime.GOOS == Windows {
		return ".exe"
	}
	return ""
}

// DataSeparator returns the source/destination separator used by PyInstaller
// --add-data and --add-binary arguments. PyInstaller uses the OS path-list
// separator: ";" on Windows, ":" everywhere else.
func DataSeparator() string {
	if runtime.GOOS == Windows {
		return ";"
	}
	return ":"
}

// DesktopDir returns the current user's desktop directory.
//
// Windows uses %USERPROFILE%\Desktop; macOS and Linux use ~/Desktop. The
// directory is not required to exist; callers decide how to handle absence.
func DesktopDir() (string, error) {
	if runtime.GOOS == Windows {
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			return filepath.Join(profile, "Desktop"), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Desktop"), nil
}
