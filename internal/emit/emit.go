// Package emit writes a pen command stream to its destinations: a Python
// turtle script, a PDF page, a PNG preview or memory.
package emit

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"rastertrace/internal/geom"
)

// ErrEmission wraps every failure to write an artifact.
var ErrEmission = errors.New("emission failed")

// Meta carries the setup details some sinks need before the first command.
type Meta struct {
	Title string
	// Span is the canvas extent the commands were scaled to. Coordinates lie
	// within [-Span/2, Span/2] on both axes.
	Span float64
}

// Sink consumes a command stream in order.
type Sink interface {
	Emit(meta Meta, cmds iter.Seq[geom.Command]) error
}

// UnsupportedOutputError reports an output extension no sink handles.
type UnsupportedOutputError struct {
	Ext string
}

func (e *UnsupportedOutputError) Error() string {
	return fmt.Sprintf("unsupported output extension: %q", e.Ext)
}

// ForPath picks the file sink for path by its extension.
func ForPath(path string) (Sink, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".py":
		return Turtle{Path: path}, nil
	case ".pdf":
		return PDF{Path: path}, nil
	case ".png":
		return PNG{Path: path}, nil
	default:
		return nil, &UnsupportedOutputError{Ext: ext}
	}
}

// Pen is a vector surface driven by Replay.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke() error
}

// Replay drives p with cmds. A MoveTo while the pen is down draws a segment
// from the current position, which starts at the origin; lifting the pen
// strokes the pending path.
func Replay(cmds iter.Seq[geom.Command], p Pen) error {
	var x, y float64
	down, open := false, false
	for c := range cmds {
		switch c.Op {
		case geom.PenUp:
			if open {
				if err := p.Stroke(); err != nil {
					return err
				}
				open = false
			}
			down = false
		case geom.PenDown:
			down = true
		case geom.MoveTo:
			switch {
			case down && open:
				p.LineTo(c.X, c.Y)
			case down && (c.X != x || c.Y != y):
				p.MoveTo(x, y)
				p.LineTo(c.X, c.Y)
				open = true
			default:
				p.MoveTo(c.X, c.Y)
				open = down
			}
			x, y = c.X, c.Y
		}
	}
	if open {
		return p.Stroke()
	}
	return nil
}
