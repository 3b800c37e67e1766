package agent

import (
	"strings"

	"github.com/samuelfneumann/aiplayground/environment"
)

// ParseAdvice maps a free-text advice word onto an action. Matching is
// case-insensitive and ignores surrounding whitespace. The boolean is
// false if the word is not one of up, down, left, or right.
func ParseAdvice(word string) (environment.Action, bool) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "up":
		return environment.Up, true
	case "down":
		return environment.Down, true
	case "left":
		return environment.Left, true
	case "right":
		return environment.Right, true
	}
	return 0, false
}
