// Package experiment runs training experiments of advice-seeking
// agents on environments
package experiment

import (
	"fmt"

	"github.com/samuelfneumann/aiplayground/agent"
	"github.com/samuelfneumann/aiplayground/environment/wrappers"
	"github.com/samuelfneumann/aiplayground/experiment/tracker"
	"github.com/samuelfneumann/aiplayground/utils/progressbar"
	"github.com/sirupsen/logrus"
)

// AdviceSource provides the advice given to an agent at the start of
// each training episode. The empty string means no advice.
type AdviceSource interface {
	Advice() string
}

// FixedAdvice is an AdviceSource which always gives the same advice
type FixedAdvice string

// Advice implements the AdviceSource interface
func (f FixedAdvice) Advice() string {
	return string(f)
}

// Online is an Experiment that trains an agent online for a fixed
// number of episodes. The agent must act in the same Tracked
// environment that the experiment registers its Trackers with, and the
// environment's cutoff should equal the experiment's maxSteps so that
// every episode is tracked to its end.
type Online struct {
	env      *wrappers.Tracked
	agent    agent.Agent
	episodes int
	maxSteps int
	advice   AdviceSource
	trackers []tracker.Tracker

	currentEpisode int
	bar            *progressbar.ManualProgressBar
	log            logrus.FieldLogger
}

// NewOnline creates and returns a new online experiment which trains a
// for episodes episodes of at most maxSteps steps each. A nil advice
// source gives no advice.
func NewOnline(env *wrappers.Tracked, a agent.Agent, episodes, maxSteps int,
	advice AdviceSource, t ...tracker.Tracker) *Online {
	if advice == nil {
		advice = FixedAdvice("")
	}

	o := &Online{
		env:      env,
		agent:    a,
		episodes: episodes,
		maxSteps: maxSteps,
		advice:   advice,
		log:      logrus.StandardLogger(),
	}
	for _, tr := range t {
		o.Register(tr)
	}
	return o
}

// Register registers a tracker.Tracker with the experiment so that
// data generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
	o.env.Register(t)
}

// SetProgressBar sets a progress bar which is advanced after each
// episode
func (o *Online) SetProgressBar(bar *progressbar.ManualProgressBar) {
	o.bar = bar
}

// SetLogger sets the logger which receives one debug entry per episode
func (o *Online) SetLogger(log logrus.FieldLogger) {
	o.log = log
}

// RunEpisode trains the agent for a single episode and returns its
// total reward
func (o *Online) RunEpisode() float64 {
	advice := o.advice.Advice()
	reward := o.agent.TrainEpisode(o.maxSteps, advice)
	o.currentEpisode++

	o.log.WithFields(logrus.Fields{
		"episode":  o.currentEpisode,
		"reward":   reward,
		"advice":   advice,
		"question": o.agent.Message(),
	}).Debug("episode finished")

	if o.bar != nil {
		o.bar.Increment()
		o.bar.Display()
	}
	return reward
}

// Run runs all remaining episodes of the experiment and returns their
// rewards
func (o *Online) Run() []float64 {
	var rewards []float64
	for o.currentEpisode < o.episodes {
		rewards = append(rewards, o.RunEpisode())
	}

	if o.bar != nil {
		o.bar.Close()
	}
	return rewards
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}
