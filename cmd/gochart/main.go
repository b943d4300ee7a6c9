// Command gochart views tabular data as charts in the terminal and renders
// chart files to YAML frame dumps.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"gochart/internal/config"
	"gochart/internal/coord"
	"gochart/internal/tui"
)

type options struct {
	logFile string
	debug   bool
	coord   string
	width   float64
	height  float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	view := func(cmd *cobra.Command, args []string) error {
		typ, err := coord.ParseType(opts.coord)
		if err != nil {
			return err
		}
		log, err := newLogger(opts.logFile, opts.debug)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck
		var m tui.Model
		if len(args) > 0 {
			m = tui.NewWithPath(args[0], log)
		} else {
			m = tui.New(log)
		}
		if opts.coord != "" {
			m = m.WithCoord(typ)
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
		return err
	}
	root := &cobra.Command{
		Use:   "gochart [file]",
		Short: "Terminal chart viewer",
		Long: `gochart charts CSV, TSV, JSON and GeoJSON records in the terminal.
A .yaml or .toml chart file fixes the bindings, scales, coordinate,
axes, legend and tooltip.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         view,
	}
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file (default: no logging)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log at debug level")
	root.PersistentFlags().StringVar(&opts.coord, "coord", "", "Override the coordinate: rect, polar, theta or helix")

	root.AddCommand(&cobra.Command{
		Use:   "view [file]",
		Short: "Open the viewer, optionally on a data or chart file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  view,
	})

	frame := &cobra.Command{
		Use:   "frame <chart.yaml|chart.toml>",
		Short: "Render a chart file and print the frame as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.logFile, opts.debug)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			return renderFrame(cmd, args[0], opts, log)
		},
	}
	frame.Flags().Float64Var(&opts.width, "width", 0, "Override the chart width")
	frame.Flags().Float64Var(&opts.height, "height", 0, "Override the chart height")
	root.AddCommand(frame)
	return root
}

func renderFrame(cmd *cobra.Command, path string, opts options, log *zap.Logger) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		f.Width = opts.width
	}
	if opts.height > 0 {
		f.Height = opts.height
	}
	if opts.coord != "" {
		f.Coord.Type = opts.coord
	}
	c, err := config.Build(f, log)
	if err != nil {
		return err
	}
	fr, err := c.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(fr); err != nil {
		return err
	}
	return enc.Close()
}

// newLogger writes development-style logs to path. The terminal belongs to
// the UI, so there is no logging without a file.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	return cfg.Build()
}
