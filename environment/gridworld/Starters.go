package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/aiplayground/environment"
)

// SingleStart always starts episodes in the same cell
type SingleStart struct {
	state environment.State
}

// NewSingleStart returns a Starter for cell (x, y) of a size x size grid
func NewSingleStart(x, y, size int) (environment.Starter, error) {
	if x < 0 || x >= size {
		return &SingleStart{}, fmt.Errorf("x = %d outside [0, %d)", x, size)
	} else if y < 0 || y >= size {
		return &SingleStart{}, fmt.Errorf("y = %d outside [0, %d)", y, size)
	}

	return &SingleStart{environment.State{X: x, Y: y}}, nil
}

// Start returns the starting state
func (s *SingleStart) Start() environment.State {
	return s.state
}
