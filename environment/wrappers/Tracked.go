// Package wrappers implements wrappers around environments
package wrappers

import (
	"github.com/samuelfneumann/aiplayground/environment"
	"github.com/samuelfneumann/aiplayground/experiment/tracker"
	ts "github.com/samuelfneumann/aiplayground/timestep"
)

// Tracked wraps an Environment so that every TimeStep it produces is
// sent to a set of registered Trackers. Episodes are cut off after a
// fixed number of steps, in which case the cut off TimeStep is marked
// as the last of its episode with end type Timeout.
type Tracked struct {
	environment.Environment
	ender    environment.Ender
	trackers []tracker.Tracker

	currentStep ts.TimeStep
}

// NewTracked returns a new Tracked environment wrapping env. Episodes
// are cut off after cutoff steps; a cutoff of zero never cuts off.
func NewTracked(env environment.Environment, cutoff int,
	t ...tracker.Tracker) *Tracked {
	return &Tracked{
		Environment: env,
		ender:       environment.NewStepLimit(cutoff),
		trackers:    t,
		currentStep: env.CurrentTimeStep(),
	}
}

// Register registers a Tracker so that it receives all future
// TimeSteps
func (t *Tracked) Register(tr tracker.Tracker) {
	t.trackers = append(t.trackers, tr)
}

// Reset resets the wrapped environment
func (t *Tracked) Reset() ts.TimeStep {
	step := t.Environment.Reset()
	t.track(step)
	return step
}

// Step takes one environmental step given some action
func (t *Tracked) Step(action environment.Action) (ts.TimeStep, bool) {
	step, last := t.Environment.Step(action)
	if !last {
		last = t.ender.End(&step)
	}
	t.track(step)
	return step, last
}

// CurrentTimeStep returns the most recent TimeStep, including any
// cut off marking
func (t *Tracked) CurrentTimeStep() ts.TimeStep {
	return t.currentStep
}

func (t *Tracked) track(step ts.TimeStep) {
	t.currentStep = step
	for _, tr := range t.trackers {
		tr.Track(step)
	}
}
