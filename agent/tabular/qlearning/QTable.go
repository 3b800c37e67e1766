package qlearning

import (
	"sort"

	"github.com/samuelfneumann/aiplayground/environment"
	"gonum.org/v1/gonum/floats"
)

// QTable maps states to one estimated return per action. Rows are
// created, filled with zeros, the first time a state is looked up and
// are never removed.
type QTable struct {
	rows map[environment.State]*[environment.NumActions]float64
}

// NewQTable returns an empty QTable
func NewQTable() *QTable {
	return &QTable{
		rows: make(map[environment.State]*[environment.NumActions]float64),
	}
}

// Values returns the action values of state, indexed by action. The
// returned slice aliases the table, so writes to it update the table.
func (q *QTable) Values(state environment.State) []float64 {
	row, ok := q.rows[state]
	if !ok {
		row = new([environment.NumActions]float64)
		q.rows[state] = row
	}
	return row[:]
}

// At returns the value of taking action in state
func (q *QTable) At(state environment.State, action environment.Action) float64 {
	return q.Values(state)[action]
}

// Set sets the value of taking action in state
func (q *QTable) Set(state environment.State, action environment.Action,
	value float64) {
	q.Values(state)[action] = value
}

// MaxValue returns the largest action value of state
func (q *QTable) MaxValue(state environment.State) float64 {
	return floats.Max(q.Values(state))
}

// Greedy returns the action with the largest value in state, preferring
// the lowest index on ties
func (q *QTable) Greedy(state environment.State) environment.Action {
	return environment.Action(floats.MaxIdx(q.Values(state)))
}

// Spread returns the difference between the largest and smallest action
// values of state
func (q *QTable) Spread(state environment.State) float64 {
	values := q.Values(state)
	return floats.Max(values) - floats.Min(values)
}

// Len returns the number of states in the table
func (q *QTable) Len() int {
	return len(q.rows)
}

// States returns every state in the table ordered by row (y) then
// column (x)
func (q *QTable) States() []environment.State {
	states := make([]environment.State, 0, len(q.rows))
	for s := range q.rows {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Y != states[j].Y {
			return states[i].Y < states[j].Y
		}
		return states[i].X < states[j].X
	})
	return states
}
