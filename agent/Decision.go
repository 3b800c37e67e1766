package agent

import (
	"fmt"

	"github.com/samuelfneumann/aiplayground/environment"
)

// DecisionKind tags the variant held by a Decision
type DecisionKind int

const (
	// Chosen means the policy selected an action
	Chosen DecisionKind = iota

	// AdviceRequested means the policy was not confident enough to
	// choose and asked for outside advice instead
	AdviceRequested
)

func (k DecisionKind) String() string {
	if k == AdviceRequested {
		return "AdviceRequested"
	}
	return "Chosen"
}

// Decision is the result of action selection: either an action, or a
// question asking a human what to do. Only the field matching Kind is
// meaningful.
type Decision struct {
	Kind     DecisionKind
	Action   environment.Action
	Question string
}

// Choose returns a Decision holding action a
func Choose(a environment.Action) Decision {
	return Decision{Kind: Chosen, Action: a}
}

// RequestAdvice returns a Decision asking question
func RequestAdvice(question string) Decision {
	return Decision{Kind: AdviceRequested, Question: question}
}

// Chosen returns the selected action and true, or false if the Decision
// is a request for advice
func (d Decision) Chosen() (environment.Action, bool) {
	if d.Kind != Chosen {
		return 0, false
	}
	return d.Action, true
}

func (d Decision) String() string {
	if d.Kind == AdviceRequested {
		return fmt.Sprintf("Decision | AdviceRequested: %q", d.Question)
	}
	return fmt.Sprintf("Decision | Chosen: %v", d.Action)
}
