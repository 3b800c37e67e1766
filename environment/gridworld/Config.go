package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/aiplayground/environment"
)

const (
	// DefaultSize is the default side length of the grid
	DefaultSize int = 5

	// DefaultDiscount is the discount reported in each TimeStep
	DefaultDiscount float64 = 0.9

	ObstacleReward float64 = -5.0
	TargetReward   float64 = 50.0
	TimeStepReward float64 = -1.0
)

// DefaultObstacles returns the obstacle layout used when none is
// configured
func DefaultObstacles() []environment.State {
	return []environment.State{{X: 2, Y: 2}}
}

// Config describes a GridWorld. The zero value is not usable directly,
// construct one with NewConfig or fill in each field.
type Config struct {
	Size      int
	Target    environment.State
	Obstacles []environment.State
	Discount  float64
}

// NewConfig returns the default configuration for a grid with side
// length size: the target in the far corner and a single obstacle
func NewConfig(size int) Config {
	return Config{
		Size:      size,
		Target:    environment.State{X: size - 1, Y: size - 1},
		Obstacles: DefaultObstacles(),
		Discount:  DefaultDiscount,
	}
}

// Validate returns an error describing why the Config cannot be used
// to build a GridWorld, if any
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if !c.inBounds(c.Target) {
		return fmt.Errorf("target %v outside of %dx%d grid", c.Target,
			c.Size, c.Size)
	}
	for i, o := range c.Obstacles {
		if !c.inBounds(o) {
			return fmt.Errorf("obstacle[%d] = %v outside of %dx%d grid", i,
				o, c.Size, c.Size)
		}
	}
	return nil
}

func (c Config) inBounds(s environment.State) bool {
	return s.X >= 0 && s.X < c.Size && s.Y >= 0 && s.Y < c.Size
}
