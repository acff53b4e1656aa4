package geom

// DefaultTargetSpan is the canvas extent, in canvas units, that the longer
// side of the drawing is scaled to.
const DefaultTargetSpan = 500

// Transform maps pixel space onto a canvas centred at the origin.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// BuildTransform scales the longer side of bb to targetSpan and moves the
// centre of bb to the origin. Spans below one pixel are treated as one, so a
// single-point box still yields a finite scale.
func BuildTransform(bb BBox, targetSpan float64) Transform {
	span := max(bb.Width(), bb.Height(), 1)
	scale := targetSpan / span
	return Transform{
		Scale:   scale,
		OffsetX: -((bb.MinX + bb.MaxX) / 2) * scale,
		OffsetY: -((bb.MinY + bb.MaxY) / 2) * scale,
	}
}

// Apply maps a pixel-space point to canvas coordinates. The canvas y axis
// points up, hence the negation.
func (t Transform) Apply(p Point) (x, y float64) {
	return p.X*t.Scale + t.OffsetX, -(p.Y*t.Scale + t.OffsetY)
}
