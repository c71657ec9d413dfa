// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/platform"
	"pyfreeze-cli/internal/proc"
)

type recordingRunner struct {
	result *proc.Result
	specs  []proc.Spec
}

func (r *recordingRunner) Run(ctx context.Context, spec proc.Spec) *proc.Result {
	return r.RunCapture(ctx, spec)
}

func (r *recordingRunner) RunCapture(_ context.Context, spec proc.Spec) *proc.Result {
	r.specs = append(r.specs, spec)
	if r.result != nil {
		return r.result
	}
	return &proc.Result{}
}

// projectTree writes a minimal project (entry + bot/ data dir) and returns a
// manifest rooted there.
func projectTree(t *testing.T) *manifest.Manifest {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gui.py"), []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "bot"), 0o755); err != nil {
		t.Fatal(err)
	}

	return &manifest.Manifest{
		Name:          "SurveyTool",
		Entry:         "gui.py",
		Data:          []manifest.DataMapping{{Src: "bot", Dest: "bot"}},
		OptionalData:  []manifest.DataMapping{{Src: ".env", Dest: "."}},
		HiddenImports: []string{"undetected_chromedriver.patcher"},
		CollectAll:    []string{"undetected_chromedriver"},
		OneFile:       true,
		Windowed:      true,
		Dir:           dir,
	}
}

func TestBuildArgs_CoversManifest(t *testing.T) {
	t.Parallel()
	m := projectTree(t)
	args := strings.Join(BuildArgs(m, "dist", "build"), " ")

	for _, want := range []string{
		"--noconfirm",
		"--clean",
		"--name SurveyTool",
		"--onefile",
		"--windowed",
		"--add-data " + filepath.Join(m.Dir, "bot") + platform.DataSeparator() + "bot",
		"--hidden-import undetected_chromedriver.patcher",
		"--collect-all undetected_chromedriver",
		"--distpath dist",
		"--workpath build",
		filepath.Join(m.Dir, "gui.py"),
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q:\n%s", want, args)
		}
	}
}

func TestBuildArgs_OptionalDataOnlyWhenPresent(t *testing.T) {
	t.Parallel()
	m := projectTree(t)

	args := strings.Join(BuildArgs(m, "dist", "build"), " ")
	if strings.Contains(args, ".env") {
		t.Errorf("absent optional data must be skipped:\n%s", args)
	}

	if err := os.WriteFile(filepath.Join(m.Dir, ".env"), []byte("KEY=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	args = strings.Join(BuildArgs(m, "dist", "build"), " ")
	if !strings.Contains(args, ".env") {
		t.Errorf("present optional data must be embedded:\n%s", args)
	}
}

func TestPackage_MissingEntryFailsBeforeToolRuns(t *testing.T) {
	t.Parallel()
	m := projectTree(t)
	if err := os.Remove(filepath.Join(m.Dir, "gui.py")); err != nil {
		t.Fatal(err)
	}

	runner := &recordingRunner{}
	err := New("/usr/bin/python3", runner, nil).Package(context.Background(), m, "dist", "build")

	if err == nil {
		t.Fatal("missing entry must fail packaging")
	}
	if !errors.Is(err, ErrPreflight) {
		t.Errorf("error should wrap ErrPreflight, got %v", err)
	}
	if len(runner.specs) != 0 {
		t.Error("the packaging tool must not be invoked when preflight fails")
	}
}

func TestPackage_NonZeroExitSurfacesDiagnosticsVerbatim(t *testing.T) {
	t.Parallel()
	m := projectTree(t)
	runner := &recordingRunner{result: &proc.Result{
		ExitCode:  1,
		ErrOutput: "ModuleNotFoundError: No module named 'undetected_chromedriver'",
	}}

	err := New("/usr/bin/python3", runner, nil).Package(context.Background(), m, "dist", "build")
	if err == nil {
		t.Fatal("non-zero tool exit must fail packaging")
	}
	if !errors.Is(err, ErrPackagingFailed) {
		t.Errorf("error should wrap ErrPackagingFailed, got %v", err)
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error should be *ToolError, got %T", err)
	}
	if !strings.Contains(toolErr.Error(), "ModuleNotFoundError") {
		t.Errorf("tool diagnostics must pass through verbatim: %v", toolErr)
	}
}

func TestPackage_InvokesPyInstallerModule(t *testing.T) {
	t.Parallel()
	m := projectTree(t)
	runner := &recordingRunner{}

	if err := New("/usr/bin/python3", runner, nil).Package(context.Background(), m, "dist", "build"); err != nil {
		t.Fatalf("package failed: %v", err)
	}

	if len(runner.specs) != 1 {
		t.Fatalf("expected exactly one tool invocation, got %d", len(runner.specs))
	}
	spec := runner.specs[0]
	if spec.Path != "/usr/bin/python3" {
		t.Errorf("tool must run through the located interpreter, got %q", spec.Path)
	}
	if len(spec.Args) < 2 || spec.Args[0] != "-m" || spec.Args[1] != "PyInstaller" {
		t.Errorf("expected python -m PyInstaller, got %v", spec.Args[:2])
	}
	if spec.Dir != m.Dir {
		t.Errorf("tool must run from the manifest dir, got %q", spec.Dir)
	}
}
