package config

import (
	"github.com/samuelfneumann/aiplayground/agent/tabular/qlearning"
	"github.com/samuelfneumann/aiplayground/environment/gridworld"
	"github.com/spf13/viper"
)

const (
	DefaultSeed            uint64 = 1
	DefaultMaxSteps        int    = 100
	DefaultAddr            string = "localhost:8501"
	DefaultShutdownTimeout int    = 5
)

// setDefaults configures default values for all configuration parameters.
// target_pos has no default here since it depends on size, see Sanitize.
func setDefaults(v *viper.Viper) {
	// Environment defaults
	v.SetDefault("size", gridworld.DefaultSize)
	v.SetDefault("obstacles", [][]int{{2, 2}})

	// Agent defaults
	v.SetDefault("alpha", qlearning.DefaultAlpha)
	v.SetDefault("gamma", qlearning.DefaultGamma)
	v.SetDefault("epsilon", qlearning.DefaultEpsilon)

	// Training defaults
	v.SetDefault("seed", DefaultSeed)
	v.SetDefault("max_steps", DefaultMaxSteps)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")

	// Dashboard defaults
	v.SetDefault("dashboard.addr", DefaultAddr)
	v.SetDefault("dashboard.shutdown_timeout", DefaultShutdownTimeout)
}
