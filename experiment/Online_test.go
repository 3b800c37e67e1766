package experiment

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/aiplayground/agent/tabular/qlearning"
	"github.com/samuelfneumann/aiplayground/environment/gridworld"
	"github.com/samuelfneumann/aiplayground/environment/wrappers"
	"github.com/samuelfneumann/aiplayground/experiment/tracker"
	"github.com/samuelfneumann/aiplayground/experiment/trackers"
	"github.com/samuelfneumann/aiplayground/utils/progressbar"
	"gonum.org/v1/gonum/floats"
)

const maxSteps = 30

func newExperiment(t *testing.T, episodes int,
	advice AdviceSource) (*Online, *qlearning.QLearning) {
	t.Helper()

	env, _, err := gridworld.New(gridworld.NewConfig(gridworld.DefaultSize))
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	tracked := wrappers.NewTracked(env, maxSteps)

	q, err := qlearning.New(tracked, qlearning.DefaultConfig(), 42)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	return NewOnline(tracked, q, episodes, maxSteps, advice), q
}

func TestOnlineRun(t *testing.T) {
	o, q := newExperiment(t, 8, FixedAdvice("down"))
	ret := trackers.NewReturn("")
	lengths := trackers.NewEpisodeLength("")
	o.Register(ret)
	o.Register(lengths)

	rewards := o.Run()
	if len(rewards) != 8 {
		t.Fatalf("want 8 episode rewards, have %d", len(rewards))
	}
	if !floats.Equal(rewards, q.Rewards()) {
		t.Errorf("experiment rewards %v differ from agent history %v",
			rewards, q.Rewards())
	}
	if !floats.Equal(rewards, ret.Data()) {
		t.Errorf("tracked returns %v differ from episode rewards %v",
			ret.Data(), rewards)
	}
	for i, n := range lengths.Data() {
		if n < 1 || n > maxSteps {
			t.Errorf("episode %d: length %d outside [1, %d]", i, n, maxSteps)
		}
	}
	if q.Stats().Episodes != 8 {
		t.Errorf("agent should have trained 8 episodes, have %d",
			q.Stats().Episodes)
	}

	if more := o.Run(); len(more) != 0 {
		t.Errorf("a finished experiment should run no more episodes, ran %d",
			len(more))
	}
}

func TestOnlineNilAdvice(t *testing.T) {
	o, q := newExperiment(t, 3, nil)
	o.Run()
	if q.Stats().Episodes != 3 {
		t.Errorf("want 3 episodes, have %d", q.Stats().Episodes)
	}
}

func TestOnlineProgressBar(t *testing.T) {
	var out bytes.Buffer
	o, _ := newExperiment(t, 4, FixedAdvice("right"))
	bar := progressbar.NewManualProgressBar(&out, 20, 4)
	o.SetProgressBar(bar)

	o.Run()
	if bar.Progress() != 1 {
		t.Errorf("progress: want 1, have %v", bar.Progress())
	}
	if out.Len() == 0 {
		t.Error("progress bar should have been drawn")
	}
}

func TestOnlineSave(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	o, _ := newExperiment(t, 5, FixedAdvice("right"))
	o.Register(trackers.NewReturn(filename))

	rewards := o.Run()
	if err := o.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := tracker.LoadData(filename)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if !floats.Equal(data, rewards) {
		t.Errorf("saved returns %v differ from episode rewards %v", data,
			rewards)
	}
}
