package geom

import "iter"

type linearizeOptions struct {
	close bool
}

// LinearizeOption configures Linearize.
type LinearizeOption func(*linearizeOptions)

// WithClose makes every stroke return to its first point after the last one.
func WithClose(enabled bool) LinearizeOption {
	return func(o *linearizeOptions) { o.close = enabled }
}

// Linearize turns each drawable contour into PenUp, MoveTo(first), PenDown,
// then one MoveTo per point, the first point included. Contours with fewer
// than two points produce nothing. Commands are generated on demand, one
// contour at a time.
func Linearize(cs ContourSet, t Transform, opts ...LinearizeOption) iter.Seq[Command] {
	var o linearizeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(yield func(Command) bool) {
		for _, c := range cs {
			if len(c) < 2 {
				continue
			}
			x, y := t.Apply(c[0])
			if !yield(Command{Op: PenUp}) {
				return
			}
			if !yield(Command{Op: MoveTo, X: x, Y: y}) {
				return
			}
			if !yield(Command{Op: PenDown}) {
				return
			}
			for _, p := range c {
				x, y := t.Apply(p)
				if !yield(Command{Op: MoveTo, X: x, Y: y}) {
					return
				}
			}
			if o.close {
				if !yield(Command{Op: MoveTo, X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Command]) []Command {
	var out []Command
	for c := range seq {
		out = append(out, c)
	}
	return out
}
