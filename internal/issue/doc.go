// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context and a rendered catalog of
// known failure modes with remediation steps.
package issue
