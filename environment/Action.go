package environment

import "fmt"

// Action is a discrete move in a grid environment
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the number of valid actions
const NumActions = 4

// Actions lists every valid action in index order
var Actions = [NumActions]Action{Up, Down, Left, Right}

// Valid returns whether a is one of Up, Down, Left, or Right
func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Delta returns the unit displacement of the action. Invalid actions do
// not move.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}
