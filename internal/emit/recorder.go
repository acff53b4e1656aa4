package emit

import (
	"iter"

	"rastertrace/internal/geom"
)

// Recorder keeps the last emitted stream in memory.
type Recorder struct {
	Meta     Meta
	Commands []geom.Command
}

func (r *Recorder) Emit(meta Meta, cmds iter.Seq[geom.Command]) error {
	r.Meta = meta
	r.Commands = geom.Collect(cmds)
	return nil
}

// Strokes counts the PenDown commands recorded.
func (r *Recorder) Strokes() int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == geom.PenDown {
			n++
		}
	}
	return n
}
