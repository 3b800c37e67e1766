package gridworld

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samuelfneumann/aiplayground/environment"
	"github.com/samuelfneumann/aiplayground/timestep"
)

func newDefault(t *testing.T) *GridWorld {
	t.Helper()
	g, _, err := New(NewConfig(DefaultSize))
	if err != nil {
		t.Fatalf("could not create gridworld: %v", err)
	}
	return g
}

func TestReset(t *testing.T) {
	g := newDefault(t)
	g.Step(environment.Right)
	g.Step(environment.Down)

	step := g.Reset()
	if !step.First() {
		t.Errorf("reset step type: want First, have %v", step.StepType)
	}
	if step.Observation != (environment.State{}) {
		t.Errorf("reset observation: want (0, 0), have %v", step.Observation)
	}
	if g.Position() != (environment.State{}) {
		t.Errorf("reset position: want (0, 0), have %v", g.Position())
	}
}

func TestStepRightThenDown(t *testing.T) {
	g := newDefault(t)

	step, done := g.Step(environment.Right)
	if step.Observation != (environment.State{X: 1, Y: 0}) || done ||
		step.Reward != TimeStepReward {
		t.Errorf("right: want (1, 0) r=-1 done=false, have %v r=%v done=%v",
			step.Observation, step.Reward, done)
	}

	step, done = g.Step(environment.Down)
	if step.Observation != (environment.State{X: 1, Y: 1}) || done ||
		step.Reward != TimeStepReward {
		t.Errorf("down: want (1, 1) r=-1 done=false, have %v r=%v done=%v",
			step.Observation, step.Reward, done)
	}
	if step.Number != 2 {
		t.Errorf("step number: want 2, have %d", step.Number)
	}
}

func TestStepOntoTarget(t *testing.T) {
	g := newDefault(t)
	g.position = environment.State{X: 3, Y: 4}

	step, done := g.Step(environment.Right)
	if step.Observation != (environment.State{X: 4, Y: 4}) {
		t.Errorf("want position (4, 4), have %v", step.Observation)
	}
	if step.Reward != TargetReward || !done || !step.Last() {
		t.Errorf("want reward 50 and terminal, have reward %v done %v",
			step.Reward, done)
	}
	if step.EndType() != timestep.TerminalStateReached {
		t.Errorf("end type: want %v, have %v",
			timestep.TerminalStateReached, step.EndType())
	}
}

func TestStepOntoObstacle(t *testing.T) {
	g := newDefault(t)
	g.position = environment.State{X: 2, Y: 1}

	step, done := g.Step(environment.Down)
	if step.Observation != (environment.State{X: 2, Y: 2}) {
		t.Errorf("want position (2, 2), have %v", step.Observation)
	}
	if step.Reward != ObstacleReward || done {
		t.Errorf("want reward -5 and not terminal, have reward %v done %v",
			step.Reward, done)
	}
}

func TestObstacleOnTargetIsNotTerminal(t *testing.T) {
	cfg := NewConfig(3)
	cfg.Obstacles = []environment.State{cfg.Target}
	g, _, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g.position = environment.State{X: 1, Y: 2}

	step, done := g.Step(environment.Right)
	if step.Reward != ObstacleReward || done {
		t.Errorf("want obstacle reward and not terminal, have %v %v",
			step.Reward, done)
	}
}

func TestStepStaysInBounds(t *testing.T) {
	for _, size := range []int{1, 2, 5} {
		cfg := NewConfig(size)
		cfg.Obstacles = nil
		g, _, err := New(cfg)
		if err != nil {
			t.Fatal(err)
		}

		for x := 0; x < size; x++ {
			for y := 0; y < size; y++ {
				for _, a := range environment.Actions {
					g.position = environment.State{X: x, Y: y}
					step, _ := g.Step(a)
					obs := step.Observation
					if obs.X < 0 || obs.X >= size || obs.Y < 0 || obs.Y >= size {
						t.Errorf("size %d: %v from (%d, %d) left the grid: %v",
							size, a, x, y, obs)
					}
				}
			}
		}
	}
}

func TestInvalidActionIsNoOp(t *testing.T) {
	g := newDefault(t)
	g.position = environment.State{X: 1, Y: 1}

	step, done := g.Step(environment.Action(9))
	if step.Observation != (environment.State{X: 1, Y: 1}) || done {
		t.Errorf("invalid action moved the agent to %v", step.Observation)
	}
	if step.Reward != TimeStepReward {
		t.Errorf("invalid action reward: want -1, have %v", step.Reward)
	}
}

func TestClampAtEdges(t *testing.T) {
	g := newDefault(t)

	step, _ := g.Step(environment.Up)
	if step.Observation != (environment.State{}) {
		t.Errorf("up from origin: want (0, 0), have %v", step.Observation)
	}
	step, _ = g.Step(environment.Left)
	if step.Observation != (environment.State{}) {
		t.Errorf("left from origin: want (0, 0), have %v", step.Observation)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"default", NewConfig(5), true},
		{"zero size", Config{Size: 0}, false},
		{"target outside", Config{Size: 3, Target: environment.State{X: 3, Y: 0}}, false},
		{"obstacle outside", Config{
			Size:      3,
			Target:    environment.State{X: 2, Y: 2},
			Obstacles: []environment.State{{X: -1, Y: 0}},
		}, false},
	}

	for _, test := range tests {
		err := test.cfg.Validate()
		if (err == nil) != test.valid {
			t.Errorf("%s: want valid=%v, have err=%v", test.name, test.valid,
				err)
		}
	}
}

func TestSpecs(t *testing.T) {
	g := newDefault(t)
	if n := g.ActionSpec().NumActions(); n != environment.NumActions {
		t.Errorf("actions: want %d, have %d", environment.NumActions, n)
	}
	if upper := g.ObservationSpec().UpperBound.AtVec(0); upper != 4 {
		t.Errorf("observation upper bound: want 4, have %v", upper)
	}
}

func TestRender(t *testing.T) {
	g := newDefault(t)

	var buf bytes.Buffer
	if err := g.Render(&buf, false); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != DefaultSize {
		t.Fatalf("want %d lines, have %d:\n%s", DefaultSize, len(lines),
			buf.String())
	}
	if got := strings.Fields(lines[0])[0]; got != "A" {
		t.Errorf("agent cell: want A, have %q", got)
	}
	if got := strings.Fields(lines[2])[2]; got != "X" {
		t.Errorf("obstacle cell: want X, have %q", got)
	}
	if got := strings.Fields(lines[4])[4]; got != "T" {
		t.Errorf("target cell: want T, have %q", got)
	}
}

func TestGoalRewardRange(t *testing.T) {
	g := newDefault(t)
	if g.Min() != ObstacleReward || g.Max() != TargetReward {
		t.Errorf("reward range: want [%v, %v], have [%v, %v]",
			ObstacleReward, TargetReward, g.Min(), g.Max())
	}
	if obstacles := g.Obstacles(); len(obstacles) != 1 ||
		obstacles[0] != (environment.State{X: 2, Y: 2}) {
		t.Errorf("obstacles: want [(2, 2)], have %v", obstacles)
	}
}
