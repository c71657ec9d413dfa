// SPDX-License-Identifier: MPL-2.0

package proc

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"
)

func shOrSkip(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available on PATH")
	}
	return sh
}

func TestRunCapture_CapturesStdoutAndStderr(t *testing.T) {
	t.Parallel()
	sh := shOrSkip(t)

	result := NewRunner().RunCapture(context.Background(), Spec{
		Path: sh,
		Args: []string{"-c", "echo out; echo err >&2"},
	})

	if !result.Succeeded() {
		t.Fatalf("expected success, got exit %s, err %v", result.ExitCode, result.Error)
	}
	if strings.TrimSpace(result.Output) != "out" {
		t.Errorf("unexpected stdout: %q", result.Output)
	}
	if strings.TrimSpace(result.ErrOutput) != "err" {
		t.Errorf("unexpected stderr: %q", result.ErrOutput)
	}
}

func TestRunCapture_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()
	sh := shOrSkip(t)

	result := NewRunner().RunCapture(context.Background(), Spec{
		Path: sh,
		Args: []string{"-c", "exit 3"},
	})

	if result.Error != nil {
		t.Fatalf("non-zero exit should not set Error, got %v", result.Error)
	}
	if result.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %s", result.ExitCode)
	}
}

func TestRun_StreamsToWriters(t *testing.T) {
	t.Parallel()
	sh := shOrSkip(t)

	var stdout bytes.Buffer
	result := NewRunner().Run(context.Background(), Spec{
		Path:   sh,
		Args:   []string{"-c", "echo streamed"},
		Stdout: &stdout,
	})

	if !result.Succeeded() {
		t.Fatalf("expected success, got exit %s, err %v", result.ExitCode, result.Error)
	}
	if strings.TrimSpace(stdout.String()) != "streamed" {
		t.Errorf("unexpected streamed output: %q", stdout.String())
	}
}

func TestRun_MissingProgramSetsError(t *testing.T) {
	t.Parallel()

	result := NewRunner().Run(context.Background(), Spec{
		Path: "pyfreeze-definitely-not-a-real-program",
	})

	if result.Error == nil {
		t.Fatal("expected an infrastructure error for a missing program")
	}
	if result.ExitCode.IsSuccess() {
		t.Error("missing program must not report success")
	}
}
