// Package config holds the settings of one conversion run and reads them
// from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultImage is the input used when none is given.
const DefaultImage = "rosaf.png"

// Config describes a conversion run. Zero values are not meaningful; start
// from Default.
type Config struct {
	ImagePath   string  `toml:"image" yaml:"image"`
	Contours    string  `toml:"contours" yaml:"contours"`
	Output      string  `toml:"output" yaml:"output"`
	TargetSpan  float64 `toml:"span" yaml:"span"`
	Close       bool    `toml:"close" yaml:"close"`
	Title       string  `toml:"title" yaml:"title"`
	Blur        float64 `toml:"blur" yaml:"blur"`
	Threshold   int     `toml:"threshold" yaml:"threshold"`
	MinPoints   int     `toml:"min_points" yaml:"min_points"`
	MaxDim      int     `toml:"max_dim" yaml:"max_dim"`
	Placeholder bool    `toml:"placeholder" yaml:"placeholder"`
}

func Default() Config {
	return Config{
		ImagePath:  DefaultImage,
		Output:     "draw.py",
		TargetSpan: 500,
		Blur:       1,
		Threshold:  64,
		MinPoints:  0,
	}
}

// decoder is the common shape of the TOML and YAML decoders.
type decoder interface {
	Decode(v any) error
}

type decoderFunc func(r io.Reader) decoder

var decoders = map[string]decoderFunc{
	".toml": func(r io.Reader) decoder {
		return toml.NewDecoder(r).DisallowUnknownFields()
	},
	".yaml": newYAMLDecoder,
	".yml":  newYAMLDecoder,
}

func newYAMLDecoder(r io.Reader) decoder {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return d
}

// Load reads the file at path over Default. The format follows the
// extension: .toml, .yaml or .yml. Keys absent from the file keep their
// default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	newDec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return cfg, fmt.Errorf("config: unsupported format %q", filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	if err := newDec(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot drive a run.
func (c Config) Validate() error {
	switch {
	case c.ImagePath == "" && c.Contours == "":
		return errors.New("config: no input image")
	case c.Output == "":
		return errors.New("config: empty output path")
	case !(c.TargetSpan > 0) || math.IsInf(c.TargetSpan, 1):
		return fmt.Errorf("config: span must be positive and finite, got %g", c.TargetSpan)
	case !(c.Blur >= 0) || math.IsInf(c.Blur, 1):
		return fmt.Errorf("config: blur must not be negative, got %g", c.Blur)
	case c.Threshold < 0 || c.Threshold > 255:
		return fmt.Errorf("config: threshold out of range 0-255: %d", c.Threshold)
	case c.MinPoints < 0:
		return fmt.Errorf("config: min_points must not be negative, got %d", c.MinPoints)
	case c.MaxDim < 0:
		return fmt.Errorf("config: max_dim must not be negative, got %d", c.MaxDim)
	}
	return nil
}
