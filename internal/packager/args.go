// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"os"
	"path/filepath"

	"pyfreeze-cli/internal/manifest"
	"pyfreeze-cli/internal/platform"
)

// BuildArgs translates the manifest into the PyInstaller argument list.
//
// Prompts are always suppressed (--noconfirm) and prior build state discarded
// (--clean): the pipeline is non-interactive and artifacts are created fresh
// each build. Optional data mappings are included only when their src exists;
// absence is not an error.
func BuildArgs(m *manifest.Manifest, distDir, workDir string) []string {
	args := []string{"--noconfirm", "--clean", "--name", m.Name}

	if m.OneFile {
		args = append(args, "--onefile")
	} else {
		args = append(args, "--onedir")
	}
	if m.Windowed {
		args = append(args, "--windowed")
	}
	if m.Icon != "" {
		args = append(args, "--icon", resolve(m.Dir, m.Icon))
	}

	sep := platform.DataSeparator()
	for _, d := range m.Data {
		args = append(args, "--add-data", resolve(m.Dir, d.Src)+sep+d.Dest)
	}
	for _, d := range m.OptionalData {
		src := resolve(m.Dir, d.Src)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		args = append(args, "--add-data", src+sep+d.Dest)
	}
	for _, b := range m.Binaries {
		args = append(args, "--add-binary", resolve(m.Dir, b.Src)+sep+b.Dest)
	}

	for _, imp := range m.HiddenImports {
		args = append(args, "--hidden-import", imp)
	}
	for _, lib := range m.CollectAll {
		args = append(args, "--collect-all", lib)
	}
	if m.HooksDir != "" {
		args = append(args, "--additional-hooks-dir", resolve(m.Dir, m.HooksDir))
	}

	args = append(args,
		"--distpath", distDir,
		"--workpath", workDir,
		resolve(m.Dir, m.Entry),
	)
	return args
}

// resolve makes a manifest-relative path absolute against the manifest dir.
func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
