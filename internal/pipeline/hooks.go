// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// HookError reports a failed pre/post build hook.
type HookError struct {
	Hook     string
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s hook failed: %v", e.Hook, e.Err)
	}
	return fmt.Sprintf("%s hook exited %d", e.Hook, e.ExitCode)
}

// Unwrap returns the underlying error, if any.
func (e *HookError) Unwrap() error { return e.Err }

// RunHook executes a manifest hook script through the embedded POSIX shell
// interpreter, so hooks behave the same on every platform and need no system
// shell. The hook runs in dir with the process environment plus extraEnv.
func RunHook(ctx context.Context, name, script, dir string, extraEnv []string, stdout, stderr io.Writer) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return &HookError{Hook: name, Err: fmt.Errorf("syntax error: %w", err)}
	}

	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(append(os.Environ(), extraEnv...)...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return &HookError{Hook: name, Err: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &HookError{Hook: name, ExitCode: int(exitStatus)}
		}
		return &HookError{Hook: name, Err: err}
	}
	return nil
}
