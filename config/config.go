// Package config loads the playground configuration from files and
// environment variables
package config

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/aiplayground/agent/tabular/qlearning"
	"github.com/samuelfneumann/aiplayground/environment"
	"github.com/samuelfneumann/aiplayground/environment/gridworld"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables read by Load, for example
// PLAYGROUND_ALPHA or PLAYGROUND_LOGGING_LEVEL
const EnvPrefix = "PLAYGROUND"

// Config is the root configuration struct containing all settings
type Config struct {
	Size      int     `mapstructure:"size"`
	TargetPos []int   `mapstructure:"target_pos"`
	Obstacles [][]int `mapstructure:"obstacles"`

	Alpha   float64 `mapstructure:"alpha"`
	Gamma   float64 `mapstructure:"gamma"`
	Epsilon float64 `mapstructure:"epsilon"`

	Seed     uint64 `mapstructure:"seed"`
	MaxSteps int    `mapstructure:"max_steps"`

	Logging   LoggingConfig   `mapstructure:"logging"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`

	corrections []string
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
	Output string `mapstructure:"output"` // stdout, stderr, or a file path
}

// DashboardConfig contains settings of the HTTP dashboard
type DashboardConfig struct {
	Addr            string `mapstructure:"addr"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // in seconds
}

// Load loads configuration from configPath and environment variables.
// If configPath is empty, a file named config.{yaml,json,...} is looked
// up in ./config and the working directory; a missing file is not an
// error. Values that are present but unusable are replaced by their
// defaults, see Corrections.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.corrections = config.Sanitize()
	return &config, nil
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	config := &Config{
		Size:      gridworld.DefaultSize,
		Obstacles: [][]int{{2, 2}},
		Alpha:     qlearning.DefaultAlpha,
		Gamma:     qlearning.DefaultGamma,
		Epsilon:   qlearning.DefaultEpsilon,
		Seed:      DefaultSeed,
		MaxSteps:  DefaultMaxSteps,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Dashboard: DashboardConfig{
			Addr:            DefaultAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
	}
	config.Sanitize()
	return config
}

// Corrections returns a description of every value Load replaced with
// a default
func (c *Config) Corrections() []string {
	return c.corrections
}

// GridConfig returns the gridworld configuration described by c. The
// Config should have been sanitized.
func (c *Config) GridConfig() gridworld.Config {
	obstacles := make([]environment.State, len(c.Obstacles))
	for i, o := range c.Obstacles {
		obstacles[i] = environment.State{X: o[0], Y: o[1]}
	}

	return gridworld.Config{
		Size:      c.Size,
		Target:    environment.State{X: c.TargetPos[0], Y: c.TargetPos[1]},
		Obstacles: obstacles,
		Discount:  c.Gamma,
	}
}

// AgentConfig returns the Q-learning configuration described by c
func (c *Config) AgentConfig() qlearning.Config {
	return qlearning.Config{
		Alpha:   c.Alpha,
		Gamma:   c.Gamma,
		Epsilon: c.Epsilon,
	}
}
