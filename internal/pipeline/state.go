// SPDX-License-Identifier: MPL-2.0

package pipeline

import "fmt"

// StepState is the lifecycle state of a pipeline step.
type StepState int

// Step lifecycle states.
const (
	StatePending StepState = iota
	StateRunning
	StateDone
	StateFailed
	StateSkipped
)

// String returns the lowercase state name.
func (s StepState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	case StateSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsTerminal reports whether the state is terminal (finished).
func IsTerminal(s StepState) bool {
	switch s {
	case StateDone, StateFailed, StateSkipped:
		return true
	default:
		return false
	}
}

// transition validates and applies a state change for one step. The pipeline
// is single-threaded, so an invalid transition is a programming error and the
// validation makes it observable instead of silently corrupting state.
func (p *Pipeline) transition(i int, from, to StepState) error {
	cur := p.states[i]
	if cur != from {
		return fmt.Errorf("invalid transition for %q: expected %s, got %s", p.steps[i].Name, from, cur)
	}
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed transition for %q: %s -> %s", p.steps[i].Name, from, to)
	}
	p.states[i] = to
	return nil
}

func isAllowedTransition(from, to StepState) bool {
	switch from {
	case StatePending:
		return to == StateRunning || to == StateSkipped
	case StateRunning:
		return to == StateDone || to == StateFailed
	default:
		return false
	}
}
