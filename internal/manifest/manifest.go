// SPDX-License-Identifier: MPL-2.0

// Package manifest loads and validates the build manifest (pyfreeze.toml),
// the declarative description of what to bundle into an executable artifact.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"pyfreeze-cli/internal/platform"
)

// DefaultFileName is the manifest filename looked up in the project root.
const DefaultFileName = "pyfreeze.toml"

// ErrInvalidManifest is the sentinel error wrapped by all validation failures.
var ErrInvalidManifest = errors.New("invalid manifest")

type (
	// DataMapping maps a source path in the project tree to a destination
	// path inside the bundle.
	DataMapping struct {
		Src  string `toml:"src"`
		Dest string `toml:"dest"`
	}

	// Package is a supplementary pip dependency.
	Package struct {
		// Name is the distribution name as pip knows it.
		Name string `toml:"name"`
		// Version pins an exact version when set.
		Version string `toml:"version,omitempty"`
		// Optional packages may fail to install without aborting the build.
		Optional bool `toml:"optional,omitempty"`
	}

	// Manifest is the build manifest: everything the packager needs to turn
	// the source tree into a standalone executable.
	Manifest struct {
		// Name is the output artifact name (without platform suffix).
		Name string `toml:"name"`
		// Entry is the entry-point script, relative to the manifest.
		Entry string `toml:"entry"`

		// Data are required src→dest bundle mappings; a missing src fails
		// the package step before the tool runs.
		Data []DataMapping `toml:"data,omitempty"`
		// OptionalData are embedded only when the src exists (config and
		// credential files such as .env).
		OptionalData []DataMapping `toml:"optional_data,omitempty"`
		// Binaries are extra binary files merged into the bundle.
		Binaries []DataMapping `toml:"binaries,omitempty"`

		// HiddenImports are modules the static analyzer cannot discover.
		HiddenImports []string `toml:"hidden_imports,omitempty"`
		// CollectAll names libraries whose code, data and binaries must be
		// merged wholesale (collect-everything semantics).
		CollectAll []string `toml:"collect_all,omitempty"`
		// HooksDir is an optional extra packaging-hooks directory.
		HooksDir string `toml:"hooks_dir,omitempty"`

		// OneFile produces a single-file executable instead of a directory.
		OneFile bool `toml:"onefile,omitempty"`
		// Windowed suppresses the console window (GUI applications).
		Windowed bool `toml:"windowed,omitempty"`
		// Icon is an optional icon file for the executable.
		Icon string `toml:"icon,omitempty"`

		// Requirements is the pip requirements file path. Empty means
		// "requirements.txt if present".
		Requirements string `toml:"requirements,omitempty"`
		// Packages are supplementary dependency specs installed after the
		// requirements file.
		Packages []Package `toml:"packages,omitempty"`

		// PreBuild and PostBuild are shell hook scripts run through the
		// embedded POSIX shell around the package step.
		PreBuild  string `toml:"pre_build,omitempty"`
		PostBuild string `toml:"post_build,omitempty"`

		// Dir is the directory the manifest was loaded from. Not part of the
		// file; all relative paths resolve against it.
		Dir string `toml:"-"`
	}
)

// Spec returns the pip requirement specifier for the package
// ("name==version" when pinned, bare name otherwise).
func (p Package) Spec() string {
	if p.Version != "" {
		return p.Name + "==" + p.Version
	}
	return p.Name
}

// Load reads and validates a manifest file. Unknown keys are rejected so
// typos surface at load time instead of silently dropping bundle content.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m := &Manifest{}
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(m); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: unknown keys in %s:\n%s", ErrInvalidManifest, path, strict.String())
		}
		return nil, fmt.Errorf("%w: failed to parse %s: %s", ErrInvalidManifest, path, err)
	}

	m.Dir = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks structural invariants. Path existence is deliberately NOT
// checked here: the packager pre-flights existence at build time, so a
// manifest can be valid on a machine that has not checked out the data yet.
func (m *Manifest) Validate() error {
	var problems []string

	if strings.TrimSpace(m.Name) == "" {
		problems = append(problems, "name is required")
	} else if platform.IsWindowsReservedName(m.Name) {
		problems = append(problems, fmt.Sprintf("name %q is reserved on Windows", m.Name))
	}
	if strings.TrimSpace(m.Entry) == "" {
		problems = append(problems, "entry is required")
	}
	for i, d := range m.Data {
		if strings.TrimSpace(d.Src) == "" || strings.TrimSpace(d.Dest) == "" {
			problems = append(problems, fmt.Sprintf("data[%d] needs both src and dest", i))
		}
	}
	for i, d := range m.OptionalData {
		if strings.TrimSpace(d.Src) == "" || strings.TrimSpace(d.Dest) == "" {
			problems = append(problems, fmt.Sprintf("optional_data[%d] needs both src and dest", i))
		}
	}
	for i, b := range m.Binaries {
		if strings.TrimSpace(b.Src) == "" || strings.TrimSpace(b.Dest) == "" {
			problems = append(problems, fmt.Sprintf("binaries[%d] needs both src and dest", i))
		}
	}
	for i, p := range m.Packages {
		if strings.TrimSpace(p.Name) == "" {
			problems = append(problems, fmt.Sprintf("packages[%d] needs a name", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(problems, "; "))
	}
	return nil
}

// Starter returns a commented starter manifest for `pyfreeze init`.
func Starter(name string) string {
	if name == "" {
		name = "MyApp"
	}
	return fmt.Sprintf(`# pyfreeze build manifest
name = %q
entry = "gui.py"
onefile = true
windowed = true

# Application code bundled as opaque data.
[[data]]
src = "bot"
dest = "bot"

# Embedded only when present (config/credentials).
[[optional_data]]
src = ".env"
dest = "."

hidden_imports = []
collect_all = []

# Supplementary runtime dependencies installed before packaging.
[[packages]]
name = "selenium"

[[packages]]
name = "undetected_chromedriver"
`, name)
}
