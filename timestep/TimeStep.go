// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes how an episode ended
type EndType int

const (
	Nil EndType = iota
	TerminalStateReached
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Nil"
	}
}

// State is a single (x, y) cell of a grid. States are compared by value
// and are used directly as keys of action-value tables.
type State struct {
	X, Y int
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d)", s.X, s.Y)
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation State
	Number      int
	endType     EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o State, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, Observation: o,
		Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd records how the episode ended. It only has an effect on Last
// timesteps.
func (t *TimeStep) SetEnd(e EndType) {
	if t.Last() {
		t.endType = e
	}
}

// EndType returns how the episode ended, or Nil if the TimeStep is not
// the last in its episode
func (t *TimeStep) EndType() EndType {
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Observation: %v  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Observation,
		t.Number)
}
