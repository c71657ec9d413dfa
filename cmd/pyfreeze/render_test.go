// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"pyfreeze-cli/internal/artifact"
	"pyfreeze-cli/internal/interpreter"
	"pyfreeze-cli/internal/issue"
	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/packager"
	"pyfreeze-cli/internal/pip"
	"pyfreeze-cli/internal/pipeline"
)

func TestIssueFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		want   issue.Id
		wantOk bool
	}{
		{
			name:   "interpreter not found",
			err:    &pipeline.StepError{Step: "locate interpreter", Err: &interpreter.NotFoundError{}},
			want:   issue.InterpreterNotFoundId,
			wantOk: true,
		},
		{
			name:   "required dependency install",
			err:    fmt.Errorf("step: %w", &pip.RequiredInstallError{Spec: "selenium"}),
			want:   issue.RequiredDependencyInstallFailedId,
			wantOk: true,
		},
		{
			name:   "packaging tool failure",
			err:    &packager.ToolError{ExitCode: 1},
			wantOk: true,
			want:   issue.PackagingFailedId,
		},
		{
			name:   "invalid manifest",
			err:    fmt.Errorf("%w: name is required", manifest.ErrInvalidManifest),
			want:   issue.ManifestInvalidId,
			wantOk: true,
		},
		{
			name:   "missing artifact reported as packaging failure",
			err:    fmt.Errorf("finalize: %w", artifact.ErrArtifactMissing),
			want:   issue.PackagingFailedId,
			wantOk: true,
		},
		{
			name:   "unknown error has no catalog entry",
			err:    errors.New("boom"),
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := issueFor(tt.err)
			if ok != tt.wantOk {
				t.Fatalf("issueFor() ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("issueFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatError_UsesActionableFormat(t *testing.T) {
	t.Parallel()

	err := issue.NewErrorContext().
		WithOperation("load config").
		WithResource("/etc/pyfreeze.toml").
		WithSuggestion("check the file syntax").
		Wrap(errors.New("parse error")).
		Build()

	got := formatError(err)
	if got == err.Error() {
		t.Error("expected hint to be appended")
	}
	if want := "hint: check the file syntax"; !strings.Contains(got, want) {
		t.Errorf("formatted error missing %q:\n%s", want, got)
	}
}

func TestFormatError_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	if got := formatError(err); got != "boom" {
		t.Errorf("formatError() = %q", got)
	}
}
