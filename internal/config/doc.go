// SPDX-License-Identifier: MPL-2.0

// Package config loads the pyfreeze tool configuration.
//
// The tool config is distinct from the build manifest: the manifest describes
// WHAT to bundle (per project, checked into the source tree), while the tool
// config describes HOW this machine runs the pipeline (interpreter probe
// candidates, artifact destination, UI preferences).
package config
