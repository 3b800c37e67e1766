package config

import (
	"fmt"

	"github.com/samuelfneumann/aiplayground/agent/tabular/qlearning"
	"github.com/samuelfneumann/aiplayground/environment/gridworld"
)

// Sanitize replaces every unusable value of c with its default and
// returns a description of each replacement. Sanitizing an already
// sanitized Config changes nothing.
func (c *Config) Sanitize() []string {
	var corrections []string
	correct := func(format string, args ...interface{}) {
		corrections = append(corrections, fmt.Sprintf(format, args...))
	}

	if c.Size <= 0 {
		correct("size %d is not positive, using %d", c.Size,
			gridworld.DefaultSize)
		c.Size = gridworld.DefaultSize
	}

	if !c.validCell(c.TargetPos) {
		target := []int{c.Size - 1, c.Size - 1}
		if c.TargetPos != nil {
			correct("target_pos %v is not a cell of the grid, using %v",
				c.TargetPos, target)
		}
		c.TargetPos = target
	}

	obstacles := make([][]int, 0, len(c.Obstacles))
	for _, o := range c.Obstacles {
		if !c.validCell(o) {
			correct("obstacle %v is not a cell of the grid, dropping it", o)
			continue
		}
		obstacles = append(obstacles, o)
	}
	c.Obstacles = obstacles

	c.Alpha = unitInterval("alpha", c.Alpha, qlearning.DefaultAlpha, correct)
	c.Gamma = unitInterval("gamma", c.Gamma, qlearning.DefaultGamma, correct)
	c.Epsilon = unitInterval("epsilon", c.Epsilon, qlearning.DefaultEpsilon,
		correct)

	if c.MaxSteps <= 0 {
		correct("max_steps %d is not positive, using %d", c.MaxSteps,
			DefaultMaxSteps)
		c.MaxSteps = DefaultMaxSteps
	}

	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = DefaultAddr
	}
	if c.Dashboard.ShutdownTimeout <= 0 {
		c.Dashboard.ShutdownTimeout = DefaultShutdownTimeout
	}

	return corrections
}

func (c *Config) validCell(cell []int) bool {
	return len(cell) == 2 && cell[0] >= 0 && cell[0] < c.Size &&
		cell[1] >= 0 && cell[1] < c.Size
}

func unitInterval(name string, value, def float64,
	correct func(string, ...interface{})) float64 {
	if value < 0 || value > 1 {
		correct("%s %v is outside [0, 1], using %v", name, value, def)
		return def
	}
	return value
}
