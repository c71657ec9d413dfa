// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

// Known issue ids, one per fatal or noteworthy pipeline failure mode.
const (
	InterpreterNotFoundId Id = iota + 1
	RequiredDependencyInstallFailedId
	PackagingFailedId
	ManifestInvalidId
	ArtifactCopyFailedId
	ConfigLoadFailedId
)

// MarkdownMsg is markdown help text rendered to the terminal.
type MarkdownMsg string

// Issue is a catalog entry describing a known failure mode and how to fix it.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

// Id returns the catalog id.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the raw markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the issue help text with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// render is indirected for tests.
var render = glamour.Render

var (
	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# No Python interpreter found
pyfreeze probed the PATH, the launcher and the conventional install
directories without finding a usable Python 3.

## Things you can try
- Install Python 3 from https://www.python.org/downloads/
- Make sure the interpreter is on your PATH:
~~~
$ python3 --version
~~~
- Point pyfreeze at a specific interpreter in the tool config
  (interpreter.commands).
`,
	}

	requiredDependencyInstallFailedIssue = &Issue{
		id: RequiredDependencyInstallFailedId,
		mdMsg: `
# A required dependency failed to install
One of the packages the bundle needs at runtime could not be installed, so
packaging would produce a broken executable.

## Things you can try
- Re-run with --verbose to see pip's full output
- Check network access and any proxy configuration pip needs
- Try installing the package by hand:
~~~
$ python -m pip install <package>
~~~
`,
	}

	packagingFailedIssue = &Issue{
		id: PackagingFailedId,
		mdMsg: `
# PyInstaller failed
The packaging tool exited non-zero. Its diagnostic output is shown above,
unmodified.

## Things you can try
- Check the entry script runs under the located interpreter
- Add modules PyInstaller cannot discover to hidden_imports in the manifest
- Use collect_all for libraries that ship data files or native binaries
`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Build manifest is invalid
pyfreeze.toml could not be loaded or failed validation.

## Things you can try
- Run 'pyfreeze init' to generate a valid starter manifest
- Check that 'entry' and every data src path exist
`,
	}

	artifactCopyFailedIssue = &Issue{
		id: ArtifactCopyFailedId,
		mdMsg: `
# Artifact copy failed
The build succeeded, but the artifact could not be copied to its user-facing
destination. The executable is still available in the dist directory.
`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded
pyfreeze fell back to built-in defaults.

## Things you can try
- Check the config file syntax (TOML)
- Remove the file to regenerate defaults
`,
	}

	catalog = map[Id]*Issue{
		InterpreterNotFoundId:             interpreterNotFoundIssue,
		RequiredDependencyInstallFailedId: requiredDependencyInstallFailedIssue,
		PackagingFailedId:                 packagingFailedIssue,
		ManifestInvalidId:                 manifestInvalidIssue,
		ArtifactCopyFailedId:              artifactCopyFailedIssue,
		ConfigLoadFailedId:                configLoadFailedIssue,
	}
)

// Get returns the catalog entry for the id, or nil if unknown.
func Get(id Id) *Issue {
	return catalog[id]
}

// All returns every catalog entry in id order.
func All() []*Issue {
	ids := maps.Keys(catalog)
	slices.Sort(ids)

	issues := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		issues = append(issues, catalog[id])
	}
	return issues
}
