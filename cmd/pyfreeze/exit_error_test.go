// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	wrapped := errors.New("packaging failed")
	err := &ExitError{Code: 2, Err: wrapped}
	if err.Error() != "packaging failed" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, wrapped) {
		t.Error("ExitError must unwrap to its cause")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("unexpected bare message: %q", bare.Error())
	}
}
