// SPDX-License-Identifier: MPL-2.0

package config

type (
	// BuildConfig controls build output locations and intermediate cleanup.
	BuildConfig struct {
		// DistDir is where the packager writes the final artifact.
		DistDir string `mapstructure:"dist_dir"`
		// WorkDir is the packager's intermediate build directory.
		WorkDir string `mapstructure:"work_dir"`
		// CleanIntermediates removes WorkDir and spec caches after a
		// successful build.
		CleanIntermediates bool `mapstructure:"clean_intermediates"`
	}

	// InterpreterConfig controls the interpreter probe chain.
	InterpreterConfig struct {
		// Commands are primary interpreter names probed on PATH, in order.
		Commands []string `mapstructure:"commands"`
		// Launcher is the secondary launcher command (the Windows "py"
		// launcher). Empty disables the launcher probe.
		Launcher string `mapstructure:"launcher"`
		// SearchGlobs are glob patterns for conventional install locations,
		// probed last. Defaults are platform-specific.
		SearchGlobs []string `mapstructure:"search_globs"`
	}

	// ArtifactConfig controls artifact finalization.
	ArtifactConfig struct {
		// CopyToDesktop copies the built artifact to the user's desktop
		// (or DestinationDir when set) after a successful build.
		CopyToDesktop bool `mapstructure:"copy_to_desktop"`
		// DestinationDir overrides the desktop as the copy destination.
		DestinationDir string `mapstructure:"destination_dir"`
	}

	// UIConfig holds terminal behavior preferences.
	UIConfig struct {
		// Verbose enables debug-level logging.
		Verbose bool `mapstructure:"verbose"`
		// PauseOnError waits for Enter before exiting after a fatal error,
		// so double-click launches keep the message readable.
		PauseOnError bool `mapstructure:"pause_on_error"`
	}

	// Config is the root tool configuration.
	Config struct {
		Build       BuildConfig       `mapstructure:"build"`
		Interpreter InterpreterConfig `mapstructure:"interpreter"`
		Artifact    ArtifactConfig    `mapstructure:"artifact"`
		UI          UIConfig          `mapstructure:"ui"`
	}
)

// DefaultConfig returns the built-in configuration used when no config file
// exists.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			DistDir:            "dist",
			WorkDir:            "build",
			CleanIntermediates: true,
		},
		Interpreter: InterpreterConfig{
			Commands:    []string{"python3", "python"},
			Launcher:    "py",
			SearchGlobs: defaultSearchGlobs(),
		},
		Artifact: ArtifactConfig{
			CopyToDesktop: true,
		},
		UI: UIConfig{},
	}
}
