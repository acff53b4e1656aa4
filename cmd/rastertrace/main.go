package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rastertrace/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "rastertrace",
		Short:         "Turn raster images into pen-stroke drawing scripts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Name() == "preview" {
				// stderr belongs to the terminal UI
				return
			}
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			pipeline.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log stage timings and counts")
	root.AddCommand(newConvertCmd(), newPreviewCmd(), newPlaceholderCmd())
	return root
}
