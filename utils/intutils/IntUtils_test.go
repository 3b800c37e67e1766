package intutils

import "testing"

func TestMinMax(t *testing.T) {
	if min := Min(3, -1, 7); min != -1 {
		t.Errorf("Min: want -1, have %d", min)
	}
	if max := Max(3, -1, 7); max != 7 {
		t.Errorf("Max: want 7, have %d", max)
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		value, want int
	}{
		{-1, 0},
		{0, 0},
		{2, 2},
		{4, 4},
		{5, 4},
	}

	for _, test := range tests {
		if have := Clip(test.value, 0, 4); have != test.want {
			t.Errorf("Clip(%d, 0, 4): want %d, have %d", test.value,
				test.want, have)
		}
	}
}
