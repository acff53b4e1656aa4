package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rastertrace/internal/config"
	"rastertrace/internal/geom"
	"rastertrace/internal/pipeline"
	"rastertrace/internal/trace"
	"rastertrace/internal/tui"
)

// bindConfigFlags registers the conversion flags on fs, writing into c.
func bindConfigFlags(fs *pflag.FlagSet, c *config.Config) {
	fs.StringVarP(&c.Output, "output", "o", c.Output, "output file: .py turtle script, .pdf or .png")
	fs.Float64Var(&c.TargetSpan, "span", c.TargetSpan, "canvas extent the drawing is scaled to")
	fs.BoolVar(&c.Close, "close", c.Close, "return to the first point at the end of every stroke")
	fs.StringVar(&c.Title, "title", c.Title, "window title (default: input file name)")
	fs.Float64Var(&c.Blur, "blur", c.Blur, "gaussian blur radius before edge detection, 0 disables")
	fs.IntVar(&c.Threshold, "threshold", c.Threshold, "edge strength threshold 0-255")
	fs.IntVar(&c.MinPoints, "min-points", c.MinPoints, "drop traced contours with fewer points")
	fs.IntVar(&c.MaxDim, "max-dim", c.MaxDim, "downscale images larger than this, 0 disables")
	fs.StringVar(&c.Contours, "contours", c.Contours, "read contours from a .wkt, .geojson, .json or .csv file")
	fs.BoolVar(&c.Placeholder, "placeholder", c.Placeholder, "draw a demo image when the input does not exist")
}

// resolveConfig layers the config file, then changed flags, then the
// positional image argument.
func resolveConfig(fs *pflag.FlagSet, flags config.Config, file string, args []string) (config.Config, error) {
	cfg := config.Default()
	if file != "" {
		var err error
		if cfg, err = config.Load(file); err != nil {
			return cfg, err
		}
	}
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = flags.Output
		case "span":
			cfg.TargetSpan = flags.TargetSpan
		case "close":
			cfg.Close = flags.Close
		case "title":
			cfg.Title = flags.Title
		case "blur":
			cfg.Blur = flags.Blur
		case "threshold":
			cfg.Threshold = flags.Threshold
		case "min-points":
			cfg.MinPoints = flags.MinPoints
		case "max-dim":
			cfg.MaxDim = flags.MaxDim
		case "contours":
			cfg.Contours = flags.Contours
		case "placeholder":
			cfg.Placeholder = flags.Placeholder
		}
	})
	if len(args) > 0 {
		cfg.ImagePath = args[0]
	}
	return cfg, cfg.Validate()
}

func newConvertCmd() *cobra.Command {
	flags := config.Default()
	var file string
	cmd := &cobra.Command{
		Use:   "convert [image]",
		Short: "Trace an image and write the drawing script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), flags, file, args)
			if err != nil {
				return err
			}
			res, err := pipeline.Run(cfg)
			if errors.Is(err, geom.ErrNoGeometry) {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to draw")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated %s: %d strokes, %d commands\n", res.Output, res.Strokes, res.Commands)
			return nil
		},
	}
	bindConfigFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&file, "config", "", "TOML or YAML settings file")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	flags := config.Default()
	var file string
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview the pen strokes in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), flags, file, nil)
			if err != nil {
				return err
			}
			var m tui.Model
			switch {
			case len(args) > 0:
				m = tui.NewWithPath(cfg, args[0])
			case cfg.Contours != "":
				m = tui.NewWithPath(cfg, cfg.Contours)
			default:
				m = tui.New(cfg)
			}
			defer m.Close()
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
	bindConfigFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&file, "config", "", "TOML or YAML settings file")
	return cmd
}

func newPlaceholderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "placeholder [path]",
		Short: "Write the demo image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultImage
			if len(args) > 0 {
				path = args[0]
			}
			if err := trace.WritePlaceholder(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", path, trace.PlaceholderSize, trace.PlaceholderSize)
			return nil
		},
	}
}
