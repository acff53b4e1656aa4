package emit

import (
	"iter"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"rastertrace/internal/geom"
)

// pageMargin is the blank border, in points, around the canvas on PDF and
// PNG output.
const pageMargin = 18

// PDF draws the commands on a single page sized to the canvas. One canvas
// unit is one point.
type PDF struct {
	Path      string
	LineWidth float64
}

func (s PDF) Emit(meta Meta, cmds iter.Seq[geom.Command]) error {
	side := canvasSide(meta)
	return writeAtomic(s.Path, func(tmp string) error {
		paper := &pdf.Rectangle{URx: side, URy: side}
		page, err := document.CreateSinglePage(tmp, paper, pdf.V1_7, nil)
		if err != nil {
			return err
		}
		// canvas origin at the page centre, y up like the page itself
		page.Transform(matrix.Matrix{1, 0, 0, 1, side / 2, side / 2})
		page.SetStrokeColor(color.DeviceGray(0))
		page.SetLineWidth(lineWidth(s.LineWidth))
		if err := Replay(cmds, pdfPen{page}); err != nil {
			page.Close()
			return err
		}
		return page.Close()
	})
}

type pdfPath interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
}

type pdfPen struct{ pdfPath }

func (p pdfPen) Stroke() error {
	p.pdfPath.Stroke()
	return nil
}

func canvasSide(meta Meta) float64 {
	span := meta.Span
	if span <= 0 {
		span = geom.DefaultTargetSpan
	}
	return span + 2*pageMargin
}

func lineWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}
