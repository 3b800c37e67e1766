package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/aiplayground/agent"
	"github.com/samuelfneumann/aiplayground/environment"
)

const (
	DefaultAlpha   float64 = 0.1
	DefaultGamma   float64 = 0.9
	DefaultEpsilon float64 = 0.2
)

// Config represents a configuration for the QLearning agent
type Config struct {
	Alpha   float64 // learning rate, also the trust bonus rate
	Gamma   float64 // discount
	Epsilon float64 // probability of a uniformly random action
}

// DefaultConfig returns a Config with the default hyperparameters
func DefaultConfig() Config {
	return Config{
		Alpha:   DefaultAlpha,
		Gamma:   DefaultGamma,
		Epsilon: DefaultEpsilon,
	}
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	q, err := New(env, c, seed)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0, 1], got %v", c.Alpha)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma must be in [0, 1], got %v", c.Gamma)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	return nil
}
