package geom

import (
	"fmt"
	"strconv"
)

// Op identifies a pen command.
type Op uint8

const (
	PenUp Op = iota
	PenDown
	MoveTo
)

func (o Op) String() string {
	switch o {
	case PenUp:
		return "penup"
	case PenDown:
		return "pendown"
	case MoveTo:
		return "goto"
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Command is one pen instruction. X and Y are canvas coordinates and are
// only meaningful for MoveTo.
type Command struct {
	Op Op
	X  float64
	Y  float64
}

func (c Command) String() string {
	if c.Op == MoveTo {
		return fmt.Sprintf("goto(%g, %g)", c.X, c.Y)
	}
	return c.Op.String()
}
