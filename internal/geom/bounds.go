package geom

import "errors"

// ErrNoGeometry is returned when a contour set holds no points at all.
var ErrNoGeometry = errors.New("geom: no geometry")

// ComputeBounds returns the box covering every point of every contour.
// Contours too short to draw still count: a lone point yields a zero-size box.
func ComputeBounds(cs ContourSet) (BBox, error) {
	var bb BBox
	n := 0
	for _, c := range cs {
		for _, p := range c {
			bb.extend(p, n == 0)
			n++
		}
	}
	if n == 0 {
		return BBox{}, ErrNoGeometry
	}
	return bb, nil
}

// PointCount returns the number of points across all contours.
func PointCount(cs ContourSet) int {
	n := 0
	for _, c := range cs {
		n += len(c)
	}
	return n
}

// StrokeCount returns how many contours are long enough to draw.
func StrokeCount(cs ContourSet) int {
	n := 0
	for _, c := range cs {
		if len(c) >= 2 {
			n++
		}
	}
	return n
}
