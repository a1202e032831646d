package render

import (
	"fmt"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/linear"
)

// Move is a cursor command over a page.
type Move int

const (
	MoveUp Move = iota
	MoveDown
	MoveSkipUp
	MoveSkipDown
	MoveLeft
	MoveRight
	MoveRightReverse
)

var moveNames = map[Move]string{
	MoveUp:           "up",
	MoveDown:         "down",
	MoveSkipUp:       "skipup",
	MoveSkipDown:     "skipdown",
	MoveLeft:         "left",
	MoveRight:        "right",
	MoveRightReverse: "rright",
}

func (m Move) String() string {
	if name, ok := moveNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Move(%d)", int(m))
}

// ParseMove resolves a move by name.
func ParseMove(name string) (Move, bool) {
	for m, n := range moveNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

// Navigate returns the line the cursor lands on after applying m at
// current. Moves that have no target leave the index unchanged.
func Navigate(lines []Line, current int, m Move) int {
	if len(lines) == 0 {
		return current
	}
	valid := current >= 0 && current < len(lines) && !lines[current].IsSpacer()

	switch m {
	case MoveUp:
		if current > 0 {
			return found(adjacent(lines, min(current, len(lines)), -1), current)
		}
	case MoveDown:
		if current < len(lines)-1 {
			return found(adjacent(lines, max(current, -1), 1), current)
		}
	case MoveSkipUp, MoveSkipDown:
		if !valid {
			return current
		}
		step := -1
		if m == MoveSkipDown {
			step = 1
		}
		return search(lines, current, step, lines[current].Depth, true)
	case MoveLeft:
		if !valid {
			return current
		}
		l := lines[current]
		step := 1
		switch l.Node.Role {
		case linear.Parent, linear.Source:
		case linear.Child, linear.Destination:
			step = -1
		default:
			return current
		}
		return found(search(lines, current, step, l.Depth-1, false), current)
	case MoveRight, MoveRightReverse:
		if !valid {
			return current
		}
		step := 1
		if m == MoveRightReverse {
			step = -1
		}
		return found(search(lines, current, step, lines[current].Depth+1, false), current)
	}
	return current
}

// adjacent returns the next content line from start in direction step, -1
// when only spacers lie that way.
func adjacent(lines []Line, start, step int) int {
	for i := start + step; i >= 0 && i < len(lines); i += step {
		if !lines[i].IsSpacer() {
			return i
		}
	}
	return -1
}

// search walks from start in direction step across lines at depth or
// deeper and spacers, returning the first content line at exactly depth.
// When nothing matches it returns the end of the walk clamped to the page
// if settle is set, -1 otherwise.
func search(lines []Line, start, step, depth int, settle bool) int {
	i := start + step
	for i >= 0 && i < len(lines) && (lines[i].IsSpacer() || lines[i].Depth >= depth) {
		if !lines[i].IsSpacer() && lines[i].Depth == depth {
			return i
		}
		i += step
	}
	if !settle {
		return -1
	}
	switch {
	case i >= len(lines):
		return len(lines) - 1
	case i < 0:
		return 0
	}
	return i
}

func found(i, fallback int) int {
	if i < 0 {
		return fallback
	}
	return i
}
