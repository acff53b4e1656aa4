package trace

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
)

// PlaceholderSize is the edge length of the generated demo image.
const PlaceholderSize = 300

// Placeholder draws the demo picture used when no input image exists: a red
// disc with a black rim, a green stem and two black leaf lines on white.
func Placeholder() (image.Image, error) {
	dc := gg.NewContext(PlaceholderSize, PlaceholderSize)
	defer dc.Close()
	if err := drawPlaceholder(dc); err != nil {
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func drawPlaceholder(dc *gg.Context) error {
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, PlaceholderSize, PlaceholderSize)
	if err := dc.Fill(); err != nil {
		return err
	}

	dc.SetRGB(1, 0, 0)
	dc.DrawEllipse(150, 150, 100, 100)
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(5)
	dc.DrawEllipse(150, 150, 100, 100)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetRGB(0, 128.0/255, 0)
	dc.MoveTo(150, 250)
	dc.LineTo(140, 300)
	dc.LineTo(160, 300)
	dc.ClosePath()
	if err := dc.Fill(); err != nil {
		return err
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(3)
	for _, x := range []float64{100, 200} {
		dc.DrawLine(150, 200, x, 150)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// WritePlaceholder renders Placeholder as a PNG at path, creating parent
// directories as needed.
func WritePlaceholder(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("placeholder: %w", err)
		}
	}
	dc := gg.NewContext(PlaceholderSize, PlaceholderSize)
	defer dc.Close()
	if err := drawPlaceholder(dc); err != nil {
		return fmt.Errorf("placeholder: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("placeholder: %w", err)
	}
	return nil
}
