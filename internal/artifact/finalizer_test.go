// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/platform"
)

// builtProject lays out a manifest dir with a dist artifact, a work dir and a
// generated spec file, as they look right after a successful package step.
func builtProject(t *testing.T, oneFile bool) (*manifest.Manifest, Options) {
	t.Helper()
	dir := t.TempDir()
	distDir := filepath.Join(dir, "dist")
	workDir := filepath.Join(dir, "build")

	m := &manifest.Manifest{Name: "SurveyTool", Entry: "gui.py", OneFile: oneFile, Dir: dir}

	if oneFile {
		if err := os.MkdirAll(distDir, 0o755); err != nil {
			t.Fatal(err)
		}
		exe := filepath.Join(distDir, m.Name+platform.ExeSuffix())
		if err := os.WriteFile(exe, []byte("binary"), 0o755); err != nil {
			t.Fatal(err)
		}
	} else {
		if err := os.MkdirAll(filepath.Join(distDir, m.Name), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(distDir, m.Name, "app"), []byte("binary"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, m.Name+".spec"), []byte("# spec"), 0o644); err != nil {
		t.Fatal(err)
	}

	return m, Options{DistDir: distDir, WorkDir: workDir, CleanIntermediates: true}
}

func TestFinalize_CleansIntermediatesAndCopies(t *testing.T) {
	t.Parallel()
	m, opts := builtProject(t, true)
	opts.CopyDir = filepath.Join(t.TempDir(), "Desktop")

	summary, err := NewFinalizer(nil).Finalize(m, opts)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if _, statErr := os.Stat(opts.WorkDir); !os.IsNotExist(statErr) {
		t.Error("work dir should be removed")
	}
	if _, statErr := os.Stat(filepath.Join(m.Dir, m.Name+".spec")); !os.IsNotExist(statErr) {
		t.Error("spec file should be removed")
	}
	if summary.CopiedTo == "" || summary.CopyErr != nil {
		t.Fatalf("copy should succeed: %+v", summary)
	}
	if _, statErr := os.Stat(summary.CopiedTo); statErr != nil {
		t.Errorf("copied artifact missing: %v", statErr)
	}
}

func TestFinalize_CopyOverwritesPreviousArtifact(t *testing.T) {
	t.Parallel()
	m, opts := builtProject(t, true)
	opts.CopyDir = t.TempDir()

	stale := filepath.Join(opts.CopyDir, m.Name+platform.ExeSuffix())
	if err := os.WriteFile(stale, []byte("stale build"), 0o755); err != nil {
		t.Fatal(err)
	}

	summary, err := NewFinalizer(nil).Finalize(m, opts)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	content, err := os.ReadFile(summary.CopiedTo)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "binary" {
		t.Errorf("previous copy not overwritten, got %q", content)
	}
}

func TestFinalize_CopyFailureIsNonFatal(t *testing.T) {
	if runtime.GOOS == platform.Windows {
		t.Skip("permission-based failure injection is unreliable on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	t.Parallel()

	m, opts := builtProject(t, true)
	readonly := filepath.Join(t.TempDir(), "ro")
	if err := os.MkdirAll(readonly, 0o555); err != nil {
		t.Fatal(err)
	}
	opts.CopyDir = readonly

	summary, err := NewFinalizer(nil).Finalize(m, opts)
	if err != nil {
		t.Fatalf("copy failure must not fail finalization: %v", err)
	}
	if summary.CopyErr == nil {
		t.Error("copy failure should be recorded in the summary")
	}
	if summary.ArtifactPath == "" {
		t.Error("primary artifact path should still be reported")
	}
}

func TestFinalize_MissingArtifactIsFatal(t *testing.T) {
	t.Parallel()
	m, opts := builtProject(t, true)
	if err := os.RemoveAll(opts.DistDir); err != nil {
		t.Fatal(err)
	}

	_, err := NewFinalizer(nil).Finalize(m, opts)
	if !errors.Is(err, ErrArtifactMissing) {
		t.Errorf("expected ErrArtifactMissing, got %v", err)
	}
}

func TestFinalize_OnedirCopiesTree(t *testing.T) {
	t.Parallel()
	m, opts := builtProject(t, false)
	opts.CopyDir = t.TempDir()

	summary, err := NewFinalizer(nil).Finalize(m, opts)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(summary.CopiedTo, "app")); statErr != nil {
		t.Errorf("directory artifact not copied recursively: %v", statErr)
	}
}

func TestCleanPaths_MissingPathsAreFine(t *testing.T) {
	t.Parallel()
	if err := CleanPaths(filepath.Join(t.TempDir(), "never-existed"), ""); err != nil {
		t.Errorf("missing paths should not error: %v", err)
	}
}
