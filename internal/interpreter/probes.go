// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"pyfreeze-cli/internal/proc"
)

// Indirected for tests.
var (
	lookPath  = exec.LookPath
	globPaths = filepath.Glob
)

// pathProbe checks primary command names on the execution search path.
type pathProbe struct {
	names []string
}

func (p *pathProbe) Name() string { return "PATH (" + strings.Join(p.names, ", ") + ")" }

func (p *pathProbe) Find(_ context.Context) (string, bool) {
	for _, name := range p.names {
		if path, err := lookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// launcherProbe resolves the interpreter through the secondary launcher
// command (the Windows "py" launcher). The launcher itself is not the
// interpreter; it is asked for the real path via sys.executable so the rest
// of the pipeline always runs "python" directly.
type launcherProbe struct {
	launcher string
	runner   proc.Runner
}

func (p *launcherProbe) Name() string { return "launcher (" + p.launcher + ")" }

func (p *launcherProbe) Find(ctx context.Context) (string, bool) {
	launcherPath, err := lookPath(p.launcher)
	if err != nil {
		return "", false
	}

	result := p.runner.RunCapture(ctx, proc.Spec{
		Path: launcherPath,
		Args: []string{"-3", "-c", "import sys; print(sys.executable)"},
	})
	if !result.Succeeded() {
		return "", false
	}

	path := strings.TrimSpace(result.Output)
	if path == "" {
		return "", false
	}
	return path, true
}

// dirProbe pattern-matches conventional installation directories by
// version-folder naming. Within one pattern the newest versioned folder wins,
// comparing embedded version numbers numerically (Python312 > Python39).
type dirProbe struct {
	globs []string
}

func (p *dirProbe) Name() string { return "install dirs" }

func (p *dirProbe) Find(_ context.Context) (string, bool) {
	for _, pattern := range p.globs {
		matches, err := globPaths(pattern)
		if err != nil || len(matches) == 0 {
			continue
		}
		best := matches[0]
		for _, candidate := range matches[1:] {
			if versionLess(best, candidate) {
				best = candidate
			}
		}
		return best, true
	}
	return "", false
}

// versionLess orders candidate paths by comparing digit runs numerically and
// everything else bytewise, so "Python39" ranks below "Python312" and
// "python3.9" below "python3.12".
func versionLess(a, b string) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		if isDigit(a[ai]) && isDigit(b[bi]) {
			aj, bj := ai, bi
			for aj < len(a) && isDigit(a[aj]) {
				aj++
			}
			for bj < len(b) && isDigit(b[bj]) {
				bj++
			}
			an := strings.TrimLeft(a[ai:aj], "0")
			bn := strings.TrimLeft(b[bi:bj], "0")
			if len(an) != len(bn) {
				return len(an) < len(bn)
			}
			if an != bn {
				return an < bn
			}
			ai, bi = aj, bj
			continue
		}
		if a[ai] != b[bi] {
			return a[ai] < b[bi]
		}
		ai++
		bi++
	}
	return len(a)-ai < len(b)-bi
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
