// Package trackers implements Trackers of episodic data
package trackers

import (
	"fmt"

	"github.com/samuelfneumann/aiplayground/experiment/tracker"
	ts "github.com/samuelfneumann/aiplayground/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
//
// Note: An episode must finish for this Tracker to save its data.
// A First TimeStep discards the return of an unfinished episode.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which saves to
// filename
func NewReturn(filename string) *Return {
	return &Return{lastTimeStep: -1, filename: filename}
}

// Track tracks the rewards seen on a timestep. By calling this method
// on every timestep, the Tracker will store all rewards seen in the
// episode, and save the cumulative reward for that episode as the
// episodic return.
//
// Track panics if it is called for non-sequential timesteps within an
// episode
func (r *Return) Track(step ts.TimeStep) {
	if step.First() {
		r.currentReturn = 0
		r.lastTimeStep = -1
	}

	// Ensure that Track is called on sequential timesteps
	if r.lastTimeStep+1 != step.Number {
		msg := fmt.Sprintf("last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number)
		panic(msg)
	}

	r.currentReturn += step.Reward
	r.lastTimeStep = step.Number

	// Episode has ended, save the return and begin tracking the
	// return for a new episode
	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Data returns a copy of the episodic returns tracked so far
func (r *Return) Data() []float64 {
	data := make([]float64, len(r.episodeReturns))
	copy(data, r.episodeReturns)
	return data
}

// Save saves the data tracked by the Return Tracker to disk. Nothing is
// written if the Tracker has no filename.
func (r *Return) Save() error {
	if r.filename == "" {
		return nil
	}
	return tracker.SaveData(r.filename, r.episodeReturns)
}
