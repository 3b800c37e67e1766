// Package qlearning implements tabular Q-learning with an agent that
// asks for advice when it cannot tell its actions apart.
//
// Action values are stored in a QTable keyed directly on grid states.
// Whenever every action value of the current state lies within
// ConfidenceThreshold of the others, the agent does not act on its own:
// SelectAction returns an advice request instead of an action. During
// training, advice from a human is followed and rewarded with a trust
// bonus, pulling the advised action's value toward TrustTarget
// independently of the reward the environment later returns.
package qlearning

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/aiplayground/agent"
	"github.com/samuelfneumann/aiplayground/environment"
	"gonum.org/v1/gonum/stat"
)

const (
	// ConfidenceThreshold is the spread of action values below which the
	// agent asks for advice
	ConfidenceThreshold float64 = 0.2

	// TrustTarget is the value that advised actions are pulled toward
	TrustTarget float64 = 10.0

	// StatsWindow is the number of most recent episodes averaged by
	// Stats
	StatsWindow int = 50
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	env    environment.Environment
	table  *QTable
	config Config
	rng    *rand.Rand

	episodes int
	rewards  []float64

	question      string
	lastAction    environment.Action
	hasLastAction bool
}

// New creates a new QLearning agent learning in env
func New(env environment.Environment, c Config, seed uint64) (*QLearning,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %w", err)
	}

	if n := env.ActionSpec().NumActions(); n != environment.NumActions {
		return nil, fmt.Errorf("new: environment has %d actions, "+
			"want %d", n, environment.NumActions)
	}

	return &QLearning{
		env:    env,
		table:  NewQTable(),
		config: c,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// SelectAction selects an action in state. If the action values of
// state are too close together, no action is chosen and the returned
// Decision carries a question for a human instead. Otherwise an action
// is chosen ε-greedily, breaking ties by the lowest action index.
func (q *QLearning) SelectAction(state environment.State) agent.Decision {
	if q.table.Spread(state) < ConfidenceThreshold {
		q.question = fmt.Sprintf("I'm at %v. My options are: up, down, "+
			"left, right. What should I do?", state)
		q.hasLastAction = false
		return agent.RequestAdvice(q.question)
	}

	var action environment.Action
	if q.rng.Float64() < q.config.Epsilon {
		action = q.randomAction()
	} else {
		action = q.table.Greedy(state)
	}

	q.question = ""
	q.setLastAction(action)
	return agent.Choose(action)
}

// TrainEpisode runs one episode of at most maxSteps transitions from
// the environment's start state and returns its total reward.
//
// When the agent asks for advice and advice is non-empty, the advised
// action is taken and given a trust bonus; advice that is not a
// direction is replaced by a uniformly random action, which still
// receives the bonus. Without advice a uniformly random action is taken
// and no bonus is given. Each transition is then learned from with the
// one-step Q-learning update.
func (q *QLearning) TrainEpisode(maxSteps int, advice string) float64 {
	step := q.env.Reset()
	state := step.Observation
	var total float64

	for i := 0; i < maxSteps; i++ {
		action, ok := q.SelectAction(state).Chosen()
		if !ok {
			action = q.followAdvice(state, advice)
		}

		next, done := q.env.Step(action)
		q.update(state, action, next.Reward, next.Observation)

		state = next.Observation
		total += next.Reward
		if done {
			break
		}
	}

	q.episodes++
	q.rewards = append(q.rewards, total)
	return total
}

// followAdvice returns the action to take in state after the agent
// asked for advice
func (q *QLearning) followAdvice(state environment.State,
	advice string) environment.Action {
	if advice == "" {
		action := q.randomAction()
		q.setLastAction(action)
		return action
	}

	action, ok := agent.ParseAdvice(advice)
	if !ok {
		action = q.randomAction()
	}
	q.trust(state, action)
	q.setLastAction(action)
	return action
}

// update performs the one-step Q-learning update
//
//	Q(s, a) += α (r + γ max_a' Q(s', a') - Q(s, a))
func (q *QLearning) update(state environment.State, action environment.Action,
	reward float64, next environment.State) {
	target := reward + q.config.Gamma*q.table.MaxValue(next)
	values := q.table.Values(state)
	values[action] += q.config.Alpha * (target - values[action])
}

// trust pulls the value of action in state toward TrustTarget
func (q *QLearning) trust(state environment.State, action environment.Action) {
	values := q.table.Values(state)
	values[action] += q.config.Alpha * (TrustTarget - values[action])
}

// IncorporateFeedback applies the trust bonus to the advised action in
// state. Advice that is not a direction is ignored.
func (q *QLearning) IncorporateFeedback(state environment.State,
	advice string) {
	action, ok := agent.ParseAdvice(advice)
	if !ok {
		return
	}
	q.trust(state, action)
	q.setLastAction(action)
}

// Stats returns the number of episodes trained, the most recent
// episode's reward, and the mean reward of the last StatsWindow
// episodes
func (q *QLearning) Stats() agent.Stats {
	stats := agent.Stats{Episodes: q.episodes}
	if len(q.rewards) == 0 {
		return stats
	}

	stats.LastReward = q.rewards[len(q.rewards)-1]
	window := q.rewards
	if len(window) > StatsWindow {
		window = window[len(window)-StatsWindow:]
	}
	stats.AverageReward = stat.Mean(window, nil)
	return stats
}

// Message returns the pending question, or the empty string if the
// agent chose its last action on its own
func (q *QLearning) Message() string {
	return q.question
}

// Rewards returns a copy of the per-episode reward history
func (q *QLearning) Rewards() []float64 {
	rewards := make([]float64, len(q.rewards))
	copy(rewards, q.rewards)
	return rewards
}

// QTable returns the agent's action values
func (q *QLearning) QTable() *QTable {
	return q.table
}

// LastAction returns the most recently selected or advised action, and
// false if the agent's last selection was a request for advice
func (q *QLearning) LastAction() (environment.Action, bool) {
	return q.lastAction, q.hasLastAction
}

// Config returns the agent's hyperparameters
func (q *QLearning) Config() Config {
	return q.config
}

func (q *QLearning) randomAction() environment.Action {
	return environment.Action(q.rng.Intn(environment.NumActions))
}

func (q *QLearning) setLastAction(a environment.Action) {
	q.lastAction = a
	q.hasLastAction = true
}
