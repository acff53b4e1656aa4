package trace

import (
	"image"

	"rastertrace/internal/geom"
)

// Extract runs edge detection on img and traces one contour per connected
// edge region. Contours come out in row-major order of their top-left pixel.
func Extract(img image.Image, opts Options) geom.ContourSet {
	return Contours(EdgeMap(img, opts), opts.MinPoints)
}

// Contours traces the outer boundary of every 8-connected region of
// non-zero pixels in edges. Straight runs are reduced to their end points.
// Contours with fewer than minPoints points are dropped.
func Contours(edges *image.Gray, minPoints int) geom.ContourSet {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	labels := make([]int32, w*h)
	set := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && edges.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0
	}

	var cs geom.ContourSet
	var label int32
	var stack []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if labels[y*w+x] != 0 || !set(x, y) {
				continue
			}
			label++
			size := 0
			stack = append(stack[:0], image.Pt(x, y))
			labels[y*w+x] = label
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++
				for _, d := range ring {
					q := p.Add(d)
					if set(q.X, q.Y) && labels[q.Y*w+q.X] == 0 {
						labels[q.Y*w+q.X] = label
						stack = append(stack, q)
					}
				}
			}
			inRegion := func(p image.Point) bool {
				return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h && labels[p.Y*w+p.X] == label
			}
			c := traceBoundary(image.Pt(x, y), inRegion, 8*size+8)
			if len(c) < minPoints {
				continue
			}
			cs = append(cs, c)
		}
	}
	return cs
}

// ring lists the 8 neighbours clockwise (y grows down), starting east.
var ring = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

func ringIndex(d image.Point) int {
	for i, r := range ring {
		if r == d {
			return i
		}
	}
	return 0
}

// traceBoundary walks the boundary of the region containing start using
// Moore-neighbour tracing. start must be the region's top-left pixel so
// that its west neighbour is background. Tracing stops when the first step
// out of start repeats.
func traceBoundary(start image.Point, in func(image.Point) bool, maxSteps int) geom.Contour {
	pts := geom.Contour{pt(start)}
	cur, back := start, start.Add(image.Pt(-1, 0))
	var first image.Point
	moved := false
	for range maxSteps {
		next, nextBack, ok := nextBoundary(cur, back, in)
		if !ok {
			break
		}
		if cur == start && moved && next == first {
			break
		}
		if !moved {
			first, moved = next, true
		}
		cur, back = next, nextBack
		pts = addPoint(pts, pt(cur))
	}
	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

// nextBoundary scans the neighbours of cur clockwise starting after back
// and returns the first region pixel together with the background pixel
// examined just before it.
func nextBoundary(cur, back image.Point, in func(image.Point) bool) (image.Point, image.Point, bool) {
	start := ringIndex(back.Sub(cur))
	prev := back
	for k := 1; k <= 8; k++ {
		q := cur.Add(ring[(start+k)%8])
		if in(q) {
			return q, prev, true
		}
		prev = q
	}
	return image.Point{}, image.Point{}, false
}

// addPoint appends p, first dropping the previous point when it sits in
// the middle of a straight run heading the same way.
func addPoint(pts geom.Contour, p geom.Point) geom.Contour {
	if n := len(pts); n >= 2 {
		a, b := pts[n-2], pts[n-1]
		v1x, v1y := b.X-a.X, b.Y-a.Y
		v2x, v2y := p.X-b.X, p.Y-b.Y
		if v1x*v2y-v1y*v2x == 0 && v1x*v2x+v1y*v2y > 0 {
			pts = pts[:n-1]
		}
	}
	return append(pts, p)
}

func pt(p image.Point) geom.Point {
	return geom.Point{X: float64(p.X), Y: float64(p.Y)}
}
