// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/samuelfneumann/aiplayground/timestep"
)

// State is a single cell of a discrete environment
type State = timestep.State

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() State
}

// Ender determines when an episode should end, marking the argument
// TimeStep as the last in its episode if so
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	// GetReward returns the reward for arriving at state next
	GetReward(next State) float64

	// AtGoal returns whether state is terminal for the task
	AtGoal(state State) bool
}

// Environment implements a simulated environment, which includes a Task to
// complete
type Environment interface {
	Reset() timestep.TimeStep // Resets between episodes
	Step(action Action) (timestep.TimeStep, bool)
	CurrentTimeStep() timestep.TimeStep
	ActionSpec() Spec
	ObservationSpec() Spec
	DiscountSpec() Spec
}
