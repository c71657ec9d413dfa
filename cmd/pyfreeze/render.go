// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"pyfreeze-cli/internal/artifact"
	"pyfreeze-cli/internal/interpreter"
	"pyfreeze-cli/internal/issue"
	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/packager"
	"pyfreeze-cli/internal/pip"
)

// renderError writes a styled error message to stderr, followed by the
// matching issue catalog entry when the failure mode is a known one.
func renderError(a *App, err error) {
	fmt.Fprintln(a.Stderr, ErrorStyle.Render("Error: ")+formatError(err))

	if id, ok := issueFor(err); ok {
		renderIssue(a, id)
	}
}

// renderIssue writes the catalog entry's help text to stderr.
func renderIssue(a *App, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	if rendered, err := entry.Render("dark"); err == nil {
		fmt.Fprint(a.Stderr, rendered)
	}
}

// formatError prefers the ActionableError formatting (with hints) when the
// error carries one.
func formatError(err error) string {
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		return actionable.Format(verbose)
	}
	return err.Error()
}

// issueFor maps pipeline sentinel errors to their catalog entries.
func issueFor(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, interpreter.ErrInterpreterNotFound):
		return issue.InterpreterNotFoundId, true
	case errors.Is(err, pip.ErrRequiredDependencyInstall):
		return issue.RequiredDependencyInstallFailedId, true
	case errors.Is(err, packager.ErrPackagingFailed), errors.Is(err, packager.ErrPreflight):
		return issue.PackagingFailedId, true
	case errors.Is(err, manifest.ErrInvalidManifest):
		return issue.ManifestInvalidId, true
	case errors.Is(err, artifact.ErrArtifactMissing):
		return issue.PackagingFailedId, true
	default:
		return 0, false
	}
}
