package emit

import (
	"iter"
	"math"

	"github.com/gogpu/gg"

	"rastertrace/internal/geom"
)

// PNG rasterizes the commands as black strokes on white.
type PNG struct {
	Path      string
	LineWidth float64
}

func (s PNG) Emit(meta Meta, cmds iter.Seq[geom.Command]) error {
	return writeAtomic(s.Path, func(tmp string) error {
		dc, err := Render(meta, cmds, s.LineWidth)
		if err != nil {
			return err
		}
		defer dc.Close()
		return dc.SavePNG(tmp)
	})
}

// Render draws the commands into a fresh square context sized to the
// canvas. The caller owns the returned context.
func Render(meta Meta, cmds iter.Seq[geom.Command], width float64) (*gg.Context, error) {
	side := int(math.Ceil(canvasSide(meta)))
	dc := gg.NewContext(side, side)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, float64(side), float64(side))
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, err
	}
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(lineWidth(width))
	half := float64(side) / 2
	if err := Replay(cmds, ggPen{dc: dc, cx: half, cy: half}); err != nil {
		dc.Close()
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

// ggPen maps canvas coordinates, origin centred with y up, onto gg's
// top-left pixel grid.
type ggPen struct {
	dc     *gg.Context
	cx, cy float64
}

func (p ggPen) MoveTo(x, y float64) { p.dc.MoveTo(p.cx+x, p.cy-y) }
func (p ggPen) LineTo(x, y float64) { p.dc.LineTo(p.cx+x, p.cy-y) }
func (p ggPen) Stroke() error       { return p.dc.Stroke() }
