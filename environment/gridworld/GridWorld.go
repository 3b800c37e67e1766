// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/aiplayground/environment"
	"github.com/samuelfneumann/aiplayground/timestep"
	"github.com/samuelfneumann/aiplayground/utils/intutils"
	"gonum.org/v1/gonum/mat"
)

// GridWorld represents a square gridworld environment
//
// Only the grid dimensions and current agent position are tracked. Moves
// are clamped to the grid, so the agent never leaves [0, size) in
// either coordinate.
type GridWorld struct {
	*Goal
	environment.Starter
	size        int
	position    environment.State
	discount    float64
	currentStep timestep.TimeStep
}

// New creates a new gridworld described by cfg and returns it along
// with the first timestep of its first episode
func New(cfg Config) (*GridWorld, timestep.TimeStep, error) {
	if err := cfg.Validate(); err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	starter, err := NewSingleStart(0, 0, cfg.Size)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: could not create "+
			"starter: %w", err)
	}

	goal := NewGoal(cfg.Target, cfg.Obstacles, TimeStepReward,
		ObstacleReward, TargetReward)

	g := &GridWorld{
		Goal:     goal,
		Starter:  starter,
		size:     cfg.Size,
		discount: cfg.Discount,
	}

	return g, g.Reset(), nil
}

// Reset moves the agent back to the start state and returns the first
// timestep of the new episode
func (g *GridWorld) Reset() timestep.TimeStep {
	g.position = g.Start()

	startStep := timestep.New(timestep.First, 0, g.discount, g.position, 0)
	g.currentStep = startStep
	return startStep
}

// Step moves the agent one cell in the direction of action, clamped to
// the grid bounds. Actions outside of the four directions leave the
// agent where it is. The returned boolean reports whether the target
// was reached.
func (g *GridWorld) Step(action environment.Action) (timestep.TimeStep, bool) {
	next := g.nextPosition(action)
	g.position = next

	reward := g.GetReward(next)
	number := g.currentStep.Number + 1
	stepType := timestep.Mid

	// Obstacles are checked before the target
	last := !g.IsObstacle(next) && g.AtGoal(next)
	if last {
		stepType = timestep.Last
	}

	step := timestep.New(stepType, reward, g.discount, next, number)
	step.SetEnd(timestep.TerminalStateReached)
	g.currentStep = step

	return step, last
}

func (g *GridWorld) nextPosition(action environment.Action) environment.State {
	dx, dy := action.Delta()
	return environment.State{
		X: intutils.Clip(g.position.X+dx, 0, g.size-1),
		Y: intutils.Clip(g.position.Y+dy, 0, g.size-1),
	}
}

// CurrentTimeStep returns the most recent timestep of the environment
func (g *GridWorld) CurrentTimeStep() timestep.TimeStep {
	return g.currentStep
}

// Position returns the current agent position
func (g *GridWorld) Position() environment.State {
	return g.position
}

// Size returns the side length of the grid
func (g *GridWorld) Size() int {
	return g.size
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0})
	upperBound := mat.NewVecDense(1, []float64{environment.NumActions - 1})

	return environment.NewSpec(shape, environment.ActionSpec, lowerBound,
		upperBound, environment.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment, observations being (x, y) cells
func (g *GridWorld) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(2, nil)
	lowerBound := mat.NewVecDense(2, []float64{0, 0})
	upperBound := mat.NewVecDense(2, []float64{
		float64(g.size - 1),
		float64(g.size - 1),
	})

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// DiscountSpec returns the discount specification of the environment
func (g *GridWorld) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{g.discount})

	return environment.NewSpec(shape, environment.Discount, bound, bound,
		environment.Continuous)
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |  Goal: %v  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, g.position, g.Goal, g.size, g.size)
}

// Render writes the grid to w, one row per line with y increasing
// downward. The agent is drawn as A, the target as T, and obstacles as
// X. If colors is true the cells are colored with ANSI escape codes.
func (g *GridWorld) Render(w io.Writer, colors bool) error {
	au := aurora.NewAurora(colors)

	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			cell := environment.State{X: x, Y: y}

			var glyph aurora.Value
			switch {
			case cell == g.position:
				glyph = au.Bold(au.Green("A"))
			case g.IsObstacle(cell):
				glyph = au.Red("X")
			case g.AtGoal(cell):
				glyph = au.Yellow("T")
			default:
				glyph = au.Blue(".")
			}

			if _, err := fmt.Fprintf(w, " %v", glyph); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
