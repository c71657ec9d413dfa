// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet_KnownId(t *testing.T) {
	t.Parallel()
	entry := Get(InterpreterNotFoundId)
	if entry == nil {
		t.Fatal("expected catalog entry for InterpreterNotFoundId")
	}
	if entry.Id() != InterpreterNotFoundId {
		t.Errorf("wrong id: %d", entry.Id())
	}
	if !strings.Contains(string(entry.MarkdownMsg()), "Python") {
		t.Error("interpreter issue text should mention Python")
	}
}

func TestGet_UnknownId(t *testing.T) {
	t.Parallel()
	if Get(Id(9999)) != nil {
		t.Error("unknown id should return nil")
	}
}

func TestAll_SortedAndComplete(t *testing.T) {
	t.Parallel()
	issues := All()
	if len(issues) != len(catalog) {
		t.Fatalf("expected %d issues, got %d", len(catalog), len(issues))
	}
	for i := 1; i < len(issues); i++ {
		if issues[i-1].Id() >= issues[i].Id() {
			t.Errorf("issues not sorted by id: %d before %d", issues[i-1].Id(), issues[i].Id())
		}
	}
}

func TestRender_UsesRenderer(t *testing.T) {
	prev := render
	t.Cleanup(func() { render = prev })

	render = func(in, _ string) (string, error) { return "rendered:" + in, nil }

	out, err := Get(PackagingFailedId).Render("dark")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasPrefix(out, "rendered:") {
		t.Errorf("custom renderer not used: %q", out)
	}
}
