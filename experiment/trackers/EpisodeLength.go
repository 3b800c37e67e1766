package trackers

import (
	"github.com/samuelfneumann/aiplayground/experiment/tracker"
	"github.com/samuelfneumann/aiplayground/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment, along with whether each episode reached a terminal state.
type EpisodeLength struct {
	episodeLengths []int
	successes      int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode.
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
		if t.EndType() == timestep.TerminalStateReached {
			e.successes++
		}
	}
}

// Data returns a copy of the episode lengths tracked so far
func (e *EpisodeLength) Data() []int {
	data := make([]int, len(e.episodeLengths))
	copy(data, e.episodeLengths)
	return data
}

// SuccessRate returns the fraction of tracked episodes which reached a
// terminal state rather than timing out
func (e *EpisodeLength) SuccessRate() float64 {
	if len(e.episodeLengths) == 0 {
		return 0
	}
	return float64(e.successes) / float64(len(e.episodeLengths))
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
// Nothing is written if the Tracker has no filename.
func (e *EpisodeLength) Save() error {
	if e.filename == "" {
		return nil
	}
	return tracker.SaveData(e.filename, e.episodeLengths)
}
