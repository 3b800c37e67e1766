// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/aiplayground/environment"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which updates action values, and a
// Policy which chooses actions in each state. The Policy and Learner
// share the same action values, so any change the Learner makes is
// reflected in the actions the Policy chooses.
type Agent interface {
	Learner
	Policy

	// Stats summarizes the training performed so far
	Stats() Stats

	// Message returns the agent's pending request for advice, or the
	// empty string if there is none
	Message() string
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// TrainEpisode runs a single episode of at most maxSteps
	// transitions, following advice whenever the Policy asks for it,
	// and returns the episode's total reward
	TrainEpisode(maxSteps int, advice string) float64

	// IncorporateFeedback nudges the value of the advised action in
	// state toward the trust target. Unrecognized advice is ignored.
	IncorporateFeedback(state environment.State, advice string)
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. A Policy may decline to
// choose and instead ask for advice, see Decision.
type Policy interface {
	SelectAction(state environment.State) Decision
}

// Stats summarizes the training progress of an Agent
type Stats struct {
	Episodes      int     `json:"episodes"`
	LastReward    float64 `json:"last_reward"`
	AverageReward float64 `json:"avg_reward"`
}
