package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/samuelfneumann/aiplayground/environment"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("could not write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.Size != 5 {
		t.Errorf("size: want 5, have %d", config.Size)
	}
	if !reflect.DeepEqual(config.TargetPos, []int{4, 4}) {
		t.Errorf("target_pos: want [4 4], have %v", config.TargetPos)
	}
	if !reflect.DeepEqual(config.Obstacles, [][]int{{2, 2}}) {
		t.Errorf("obstacles: want [[2 2]], have %v", config.Obstacles)
	}
	if config.Alpha != 0.1 || config.Gamma != 0.9 || config.Epsilon != 0.2 {
		t.Errorf("hyperparameters: want 0.1/0.9/0.2, have %v/%v/%v",
			config.Alpha, config.Gamma, config.Epsilon)
	}
	if len(config.Corrections()) != 0 {
		t.Errorf("defaults should need no corrections, have %v",
			config.Corrections())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
size: 7
target_pos: [6, 0]
obstacles:
  - [1, 1]
  - [3, 4]
alpha: 0.5
gamma: 0.95
epsilon: 0
max_steps: 40
logging:
  level: debug
  format: json
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	grid := config.GridConfig()
	if grid.Size != 7 || grid.Target != (environment.State{X: 6, Y: 0}) {
		t.Errorf("grid: have size %d target %v", grid.Size, grid.Target)
	}
	want := []environment.State{{X: 1, Y: 1}, {X: 3, Y: 4}}
	if !reflect.DeepEqual(grid.Obstacles, want) {
		t.Errorf("obstacles: want %v, have %v", want, grid.Obstacles)
	}
	if err := grid.Validate(); err != nil {
		t.Errorf("grid config should be valid: %v", err)
	}

	agent := config.AgentConfig()
	if agent.Alpha != 0.5 || agent.Gamma != 0.95 || agent.Epsilon != 0 {
		t.Errorf("agent config: have %+v", agent)
	}
	if config.MaxSteps != 40 {
		t.Errorf("max_steps: want 40, have %d", config.MaxSteps)
	}
	if config.Logging.Level != "debug" || config.Logging.Format != "json" {
		t.Errorf("logging: have %+v", config.Logging)
	}
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	path := writeConfig(t, `
size: -3
target_pos: [9]
obstacles:
  - [2, 2]
  - [1, 2, 3]
  - [-1, 0]
alpha: 3
epsilon: -1
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.Size != 5 {
		t.Errorf("size: want 5, have %d", config.Size)
	}
	if !reflect.DeepEqual(config.TargetPos, []int{4, 4}) {
		t.Errorf("target_pos: want [4 4], have %v", config.TargetPos)
	}
	if !reflect.DeepEqual(config.Obstacles, [][]int{{2, 2}}) {
		t.Errorf("obstacles: want [[2 2]], have %v", config.Obstacles)
	}
	if config.Alpha != 0.1 || config.Epsilon != 0.2 {
		t.Errorf("alpha/epsilon: want 0.1/0.2, have %v/%v", config.Alpha,
			config.Epsilon)
	}
	if n := len(config.Corrections()); n != 6 {
		t.Errorf("want 6 corrections, have %d: %v", n, config.Corrections())
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("PLAYGROUND_ALPHA", "0.3")
	t.Setenv("PLAYGROUND_LOGGING_LEVEL", "warn")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config.Alpha != 0.3 {
		t.Errorf("alpha: want 0.3, have %v", config.Alpha)
	}
	if config.Logging.Level != "warn" {
		t.Errorf("logging.level: want warn, have %v", config.Logging.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("an explicit config file that does not exist should error")
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	config := Default()
	if corrections := config.Sanitize(); len(corrections) != 0 {
		t.Errorf("sanitizing defaults again changed %v", corrections)
	}
}
