// SPDX-License-Identifier: MPL-2.0

// Package pipeline sequences the build steps.
//
// Steps run strictly in order, each blocking until the external tool it
// launches exits. The first fatal failure marks the remaining steps skipped
// and aborts; there is no retry of any step.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

type (
	// Step is one named stage of the build pipeline.
	Step struct {
		// Name identifies the step in logs and errors.
		Name string
		// Run executes the step. A returned error is fatal to the pipeline.
		Run func(ctx context.Context) error
	}

	// StepError wraps a step failure with the step that caused it.
	StepError struct {
		Step string
		Err  error
	}

	// Pipeline executes steps sequentially with validated state transitions.
	Pipeline struct {
		steps  []Step
		states []StepState
		logger *log.Logger
	}
)

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying step error for errors.Is/As chains.
func (e *StepError) Unwrap() error { return e.Err }

// New creates a Pipeline over the given steps, all pending.
func New(logger *log.Logger, steps ...Step) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		steps:  steps,
		states: make([]StepState, len(steps)),
		logger: logger,
	}
}

// Run executes every step in order. On a step failure the remaining steps
// are marked skipped and a StepError is returned immediately.
func (p *Pipeline) Run(ctx context.Context) error {
	for i, step := range p.steps {
		if err := p.transition(i, StatePending, StateRunning); err != nil {
			return err
		}

		p.logger.Info("step started", "step", step.Name)
		start := time.Now()

		if err := step.Run(ctx); err != nil {
			if terr := p.transition(i, StateRunning, StateFailed); terr != nil {
				return terr
			}
			p.skipRemaining(i + 1)
			p.logger.Error("step failed", "step", step.Name, "error", err)
			return &StepError{Step: step.Name, Err: err}
		}

		if err := p.transition(i, StateRunning, StateDone); err != nil {
			return err
		}
		p.logger.Info("step finished", "step", step.Name, "took", time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// State returns the current state of the named step.
func (p *Pipeline) State(name string) (StepState, bool) {
	for i, step := range p.steps {
		if step.Name == name {
			return p.states[i], true
		}
	}
	return StatePending, false
}

func (p *Pipeline) skipRemaining(from int) {
	for i := from; i < len(p.steps); i++ {
		// Pending → Skipped is always valid here; ignore the impossible error.
		_ = p.transition(i, StatePending, StateSkipped)
	}
}
