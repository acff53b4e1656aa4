package trace

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/anthonynsimon/bild/transform"
)

// Options tune edge detection and contour filtering.
type Options struct {
	// Blur is the gaussian radius applied before edge detection; 0 disables it.
	Blur float64
	// Threshold is the minimum sobel magnitude (0-255) counted as an edge.
	Threshold uint8
	// MinPoints drops traced contours with fewer points.
	MinPoints int
	// MaxDim downscales images whose longer side exceeds it; 0 disables it.
	MaxDim int
}

// DefaultOptions mirror a 5x5 gaussian followed by a mid-strength edge cut.
// Every traced contour is kept; single points still widen the bounds.
func DefaultOptions() Options {
	return Options{Blur: 1, Threshold: 64}
}

// EdgeMap returns a binary image where edge pixels are 255 and the rest 0.
// The image is edge-padded while filtering so the frame of the picture is
// not itself reported as an edge.
func EdgeMap(img image.Image, opts Options) *image.Gray {
	img = downscale(img, opts.MaxDim)
	gray := effect.Grayscale(img)
	pad := int(math.Ceil(2*opts.Blur+1)) + 2
	padded := padEdges(gray, pad)

	var src image.Image = padded
	if opts.Blur > 0 {
		src = blur.Gaussian(padded, opts.Blur)
	}
	// bild's sobel clamps negative responses, so falling edges come from the
	// inverted image.
	grad := blend.Lighten(effect.Sobel(src), effect.Sobel(effect.Invert(src)))
	edges := segment.Threshold(grad, max(opts.Threshold, 1))

	b := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	eb := edges.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetGray(x, y, edges.GrayAt(eb.Min.X+x+pad, eb.Min.Y+y+pad))
		}
	}
	return out
}

func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	scale := float64(maxDim) / float64(max(w, h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	return transform.Resize(img, nw, nh, transform.Linear)
}

// padEdges returns the red channel of g surrounded by n pixels replicating
// its outermost rows and columns. The result's origin is (0, 0).
func padEdges(g *image.RGBA, n int) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w+2*n, h+2*n))
	for y := 0; y < h+2*n; y++ {
		sy := b.Min.Y + min(max(y-n, 0), h-1)
		for x := 0; x < w+2*n; x++ {
			sx := b.Min.X + min(max(x-n, 0), w-1)
			out.SetGray(x, y, color.Gray{Y: g.RGBAAt(sx, sy).R})
		}
	}
	return out
}
