// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHook_ExecutesInDirWithEnv(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	var stdout bytes.Buffer
	err := RunHook(context.Background(), "pre_build",
		"echo \"$BUILD_NAME in $PWD\"; touch hook-ran",
		dir, []string{"BUILD_NAME=SurveyTool"}, &stdout, nil)
	if err != nil {
		t.Fatalf("hook failed: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "SurveyTool") {
		t.Errorf("extra env not visible to hook: %q", out)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("hook should run in the manifest dir: %q", out)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "hook-ran")); statErr != nil {
		t.Errorf("hook side effect missing: %v", statErr)
	}
}

func TestRunHook_NonZeroExit(t *testing.T) {
	t.Parallel()
	err := RunHook(context.Background(), "post_build", "exit 7", t.TempDir(), nil, nil, nil)
	if err == nil {
		t.Fatal("expected hook failure")
	}

	var hookErr *HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected *HookError, got %T", err)
	}
	if hookErr.ExitCode != 7 {
		t.Errorf("expected exit code 7, got %d", hookErr.ExitCode)
	}
	if hookErr.Hook != "post_build" {
		t.Errorf("hook name missing: %+v", hookErr)
	}
}

func TestRunHook_SyntaxError(t *testing.T) {
	t.Parallel()
	err := RunHook(context.Background(), "pre_build", "if then fi done", t.TempDir(), nil, nil, nil)
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !strings.Contains(err.Error(), "pre_build") {
		t.Errorf("error should name the hook: %v", err)
	}
}
