// SPDX-License-Identifier: MPL-2.0

// Package artifact finalizes a successful build: cleans intermediates,
// locates the produced artifact and copies it to its user-facing destination.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/platform"
)

// ErrArtifactMissing indicates the packager reported success but the expected
// artifact is not in the dist directory.
var ErrArtifactMissing = errors.New("built artifact not found")

type (
	// Options controls finalization for one build.
	Options struct {
		// DistDir is where the packager wrote the artifact.
		DistDir string
		// WorkDir is the intermediate build directory to clean.
		WorkDir string
		// CleanIntermediates removes WorkDir and the generated spec file.
		CleanIntermediates bool
		// CopyDir is the user-facing copy destination. Empty disables the copy.
		CopyDir string
	}

	// Summary reports what finalization did. CopyErr is informational: copy
	// failure does not fail the build because the primary artifact already
	// exists in the dist directory.
	Summary struct {
		// ArtifactPath is the primary artifact in the dist directory.
		ArtifactPath string
		// CopiedTo is the user-facing copy location, empty when no copy happened.
		CopiedTo string
		// CopyErr is the non-fatal copy failure, if any.
		CopyErr error
	}

	// Finalizer performs post-build artifact handling.
	Finalizer struct {
		logger *log.Logger
	}
)

// NewFinalizer creates a Finalizer.
func NewFinalizer(logger *log.Logger) *Finalizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Finalizer{logger: logger}
}

// Locate returns the expected artifact path for the manifest inside distDir:
// a single file for onefile builds (platform exe suffix applied), a directory
// otherwise.
func Locate(distDir string, m *manifest.Manifest) (string, error) {
	var path string
	if m.OneFile {
		path = filepath.Join(distDir, m.Name+platform.ExeSuffix())
	} else {
		path = filepath.Join(distDir, m.Name)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}
	return path, nil
}

// Finalize runs after a successful package step. Intermediate-cleanup and
// copy problems are logged and recorded but never fail the build; a missing
// artifact does, because it means the build did not actually produce output.
func (f *Finalizer) Finalize(m *manifest.Manifest, opts Options) (*Summary, error) {
	if opts.CleanIntermediates {
		f.cleanIntermediates(m, opts.WorkDir)
	}

	artifactPath, err := Locate(opts.DistDir, m)
	if err != nil {
		return nil, err
	}
	summary := &Summary{ArtifactPath: artifactPath}

	if opts.CopyDir == "" {
		return summary, nil
	}

	dest := filepath.Join(opts.CopyDir, filepath.Base(artifactPath))
	if err := CopyPath(artifactPath, dest); err != nil {
		summary.CopyErr = err
		f.logger.Warn("artifact copy failed, executable remains in dist",
			"dest", dest, "error", err)
		return summary, nil
	}

	summary.CopiedTo = dest
	f.logger.Info("artifact copied", "dest", dest)
	return summary, nil
}

// cleanIntermediates removes the work directory and the generated spec file.
// Failures are warnings: stale intermediates do not invalidate the artifact.
func (f *Finalizer) cleanIntermediates(m *manifest.Manifest, workDir string) {
	specFile := filepath.Join(m.Dir, m.Name+".spec")
	for _, path := range []string{workDir, specFile} {
		if path == "" {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			f.logger.Warn("failed to clean intermediate", "path", path, "error", err)
			continue
		}
		f.logger.Debug("cleaned intermediate", "path", path)
	}
}

// CleanPaths removes every given path, collecting failures. Missing paths
// are fine (RemoveAll semantics).
func CleanPaths(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// CopyPath copies src (file or directory tree) to dest, overwriting any
// previous copy at dest.
func CopyPath(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to replace previous copy at %s: %w", dest, err)
	}

	if info.IsDir() {
		return copyDir(src, dest)
	}
	return copyFile(src, dest, info.Mode())
}

func copyDir(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dest string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create destination dir: %w", err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy to %s: %w", dest, err)
	}
	return out.Close()
}
