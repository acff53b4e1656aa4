// Package pipeline runs a conversion end to end: load contours, fit them to
// the canvas, and emit the pen commands.
package pipeline

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rastertrace/internal/config"
	"rastertrace/internal/emit"
	"rastertrace/internal/geom"
	"rastertrace/internal/trace"
)

// Result summarises a run.
type Result struct {
	Output    string
	Contours  int
	Strokes   int
	Points    int
	Commands  int
	BBox      geom.BBox
	Transform geom.Transform
}

// Run converts the configured input and writes the sink chosen by the
// output extension. When the input has no points at all it returns
// geom.ErrNoGeometry and writes nothing.
func Run(cfg config.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	sink, err := emit.ForPath(cfg.Output)
	if err != nil {
		return Result{}, err
	}
	res, err := RunTo(cfg, sink)
	if err != nil {
		return res, err
	}
	res.Output = cfg.Output
	Logger().Info("generated", "output", cfg.Output, "strokes", res.Strokes, "commands", res.Commands)
	return res, nil
}

// RunTo is Run with an explicit sink.
func RunTo(cfg config.Config, sink emit.Sink) (Result, error) {
	cs, err := LoadContours(cfg)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Contours: len(cs),
		Strokes:  geom.StrokeCount(cs),
		Points:   geom.PointCount(cs),
	}
	bb, err := geom.ComputeBounds(cs)
	if err != nil {
		return res, err
	}
	res.BBox = bb
	res.Transform = geom.BuildTransform(bb, cfg.TargetSpan)
	Logger().Debug("fitted", "bbox", bb, "scale", res.Transform.Scale)

	start := time.Now()
	cmds := count(geom.Linearize(cs, res.Transform, geom.WithClose(cfg.Close)), &res.Commands)
	if err := sink.Emit(Meta(cfg), cmds); err != nil {
		return res, err
	}
	Logger().Debug("emitted", "commands", res.Commands, "elapsed", time.Since(start))
	return res, nil
}

// Meta derives the sink setup from cfg. The title falls back to the input
// file name.
func Meta(cfg config.Config) emit.Meta {
	title := cfg.Title
	if title == "" {
		src := cfg.ImagePath
		if cfg.Contours != "" {
			src = cfg.Contours
		}
		title = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}
	return emit.Meta{Title: title, Span: cfg.TargetSpan}
}

// LoadContours reads the contour set for cfg, either from a contour file
// or by tracing the input image. A missing image is synthesised first when
// cfg.Placeholder is set.
func LoadContours(cfg config.Config) (geom.ContourSet, error) {
	if cfg.Contours != "" {
		cs, err := geom.LoadContours(cfg.Contours)
		if err != nil {
			return nil, err
		}
		Logger().Debug("loaded contours", "path", cfg.Contours, "contours", len(cs))
		return cs, nil
	}
	if cfg.Placeholder {
		if err := ensurePlaceholder(cfg.ImagePath); err != nil {
			return nil, err
		}
	}
	start := time.Now()
	img, format, err := trace.Open(cfg.ImagePath)
	if err != nil {
		return nil, err
	}
	cs := trace.Extract(img, TraceOptions(cfg))
	Logger().Debug("traced", "path", cfg.ImagePath, "format", format,
		"size", img.Bounds().Size(), "contours", len(cs), "elapsed", time.Since(start))
	return cs, nil
}

// TraceOptions maps the edge detection settings of cfg.
func TraceOptions(cfg config.Config) trace.Options {
	return trace.Options{
		Blur:      cfg.Blur,
		Threshold: uint8(min(max(cfg.Threshold, 0), 255)),
		MinPoints: cfg.MinPoints,
		MaxDim:    cfg.MaxDim,
	}
}

func ensurePlaceholder(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", trace.ErrImageLoad, err)
	}
	if err := trace.WritePlaceholder(path); err != nil {
		return err
	}
	Logger().Info("wrote placeholder image", "path", path)
	return nil
}

func count(seq iter.Seq[geom.Command], n *int) iter.Seq[geom.Command] {
	return func(yield func(geom.Command) bool) {
		for c := range seq {
			*n++
			if !yield(c) {
				return
			}
		}
	}
}
