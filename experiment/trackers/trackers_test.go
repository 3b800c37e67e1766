package trackers

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/aiplayground/environment"
	"github.com/samuelfneumann/aiplayground/experiment/tracker"
	ts "github.com/samuelfneumann/aiplayground/timestep"
)

func episode(rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 0.9, environment.State{}, 0)}
	for i, r := range rewards {
		t := ts.Mid
		if i == len(rewards)-1 {
			t = ts.Last
		}
		steps = append(steps, ts.New(t, r, 0.9, environment.State{}, i+1))
	}
	return steps
}

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "return.bin")
	r := NewReturn(filename)

	for _, step := range episode(-1, -1, 50) {
		r.Track(step)
	}
	for _, step := range episode(-5, -1) {
		r.Track(step)
	}

	want := []float64{48, -6}
	data := r.Data()
	if len(data) != len(want) || data[0] != want[0] || data[1] != want[1] {
		t.Fatalf("returns: want %v, have %v", want, data)
	}

	if err := r.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := tracker.LoadData(filename)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if len(loaded) != 2 || loaded[0] != 48 || loaded[1] != -6 {
		t.Errorf("loaded returns: want %v, have %v", want, loaded)
	}
}

func TestReturnNonSequentialPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("tracking non-sequential timesteps should panic")
		}
	}()

	r := NewReturn("")
	r.Track(ts.New(ts.First, 0, 0.9, environment.State{}, 0))
	r.Track(ts.New(ts.Mid, -1, 0.9, environment.State{}, 2))
}

func TestEpisodeLength(t *testing.T) {
	e := NewEpisodeLength("")

	steps := episode(-1, 50)
	steps[len(steps)-1].SetEnd(ts.TerminalStateReached)
	for _, step := range steps {
		e.Track(step)
	}
	steps = episode(-1, -1, -1)
	steps[len(steps)-1].SetEnd(ts.Timeout)
	for _, step := range steps {
		e.Track(step)
	}

	if data := e.Data(); len(data) != 2 || data[0] != 2 || data[1] != 3 {
		t.Errorf("lengths: want [2 3], have %v", data)
	}
	if e.SuccessRate() != 0.5 {
		t.Errorf("success rate: want 0.5, have %v", e.SuccessRate())
	}
	if err := e.Save(); err != nil {
		t.Errorf("saving without a filename should do nothing, got %v", err)
	}
}
