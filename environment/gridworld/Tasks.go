package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/aiplayground/environment"
	"github.com/samuelfneumann/aiplayground/utils/matutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Goal represents the task of reaching a target cell in a GridWorld
// while avoiding obstacle cells. Landing on an obstacle is penalized but
// does not end the episode.
type Goal struct {
	target    environment.State
	obstacles *mat.Dense // one (x, y) row per obstacle, nil if none

	timeStepReward float64
	obstacleReward float64
	goalReward     float64
}

// NewGoal creates and returns a new Goal task
func NewGoal(target environment.State, obstacles []environment.State,
	tr, or, gr float64) *Goal {
	var coords *mat.Dense
	if len(obstacles) > 0 {
		data := make([]float64, 0, 2*len(obstacles))
		for _, o := range obstacles {
			data = append(data, float64(o.X), float64(o.Y))
		}
		coords = mat.NewDense(len(obstacles), 2, data)
	}

	return &Goal{
		target:         target,
		obstacles:      coords,
		timeStepReward: tr,
		obstacleReward: or,
		goalReward:     gr,
	}
}

// GetReward returns the reward for arriving at state next. Obstacles
// take precedence over the target.
func (g *Goal) GetReward(next environment.State) float64 {
	if g.IsObstacle(next) {
		return g.obstacleReward
	}
	if g.AtGoal(next) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether state is the target
func (g *Goal) AtGoal(state environment.State) bool {
	return state == g.target
}

// IsObstacle returns whether state is an obstacle cell
func (g *Goal) IsObstacle(state environment.State) bool {
	if g.obstacles == nil {
		return false
	}

	numObstacles, _ := g.obstacles.Dims()
	for i := 0; i < numObstacles; i++ {
		row := g.obstacles.RawRowView(i)
		if int(row[0]) == state.X && int(row[1]) == state.Y {
			return true
		}
	}
	return false
}

// Target returns the target cell
func (g *Goal) Target() environment.State {
	return g.target
}

// Obstacles returns a copy of the obstacle cells
func (g *Goal) Obstacles() []environment.State {
	if g.obstacles == nil {
		return nil
	}

	numObstacles, _ := g.obstacles.Dims()
	obstacles := make([]environment.State, numObstacles)
	for i := range obstacles {
		row := g.obstacles.RawRowView(i)
		obstacles[i] = environment.State{X: int(row[0]), Y: int(row[1])}
	}
	return obstacles
}

// String returns the Goal as a string
func (g *Goal) String() string {
	if g.obstacles == nil {
		return fmt.Sprintf("target %v, no obstacles", g.target)
	}
	return fmt.Sprintf("target %v, obstacles %v", g.target,
		matutils.Format(g.obstacles))
}

// Min returns the minimum reward attainable in the Task
func (g *Goal) Min() float64 {
	rewards := []float64{g.timeStepReward, g.obstacleReward, g.goalReward}
	return floats.Min(rewards)
}

// Max returns the maximum reward attainable in the Task
func (g *Goal) Max() float64 {
	rewards := []float64{g.timeStepReward, g.obstacleReward, g.goalReward}
	return floats.Max(rewards)
}
