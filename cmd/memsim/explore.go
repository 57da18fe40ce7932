package main

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/memlab/memsim/internal/logger"
	"github.com/memlab/memsim/internal/replay"
	"github.com/memlab/memsim/internal/trace"
)

var exploreDebug bool

func init() {
	cmd := newExploreCmd()
	cmd.Flags().BoolVar(&exploreDebug, "debug", false, "Write debug logs to ~/.memsim/logs")
	rootCmd.AddCommand(cmd)
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore <trace>",
		Short: "Step through a trace interactively",
		Long: `The explore command replays a trace and opens an interactive viewer
for stepping forward and backward through the requests, showing each
request's outcome, the memory map after it, and running statistics.

Keys: left/right step, g/G first/last, up/down scroll, ? help, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(args[0])
		},
	}
}

func runExplore(path string) error {
	if err := logger.Init(logger.Options{Enabled: exploreDebug, Level: slog.LevelDebug}); err != nil {
		return errors.Wrap(err, "init logging")
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open trace")
	}
	defer f.Close()

	tr, err := trace.Parse(f)
	if err != nil {
		return err
	}
	res, err := replay.Run(tr)
	if err != nil {
		return err
	}
	logger.Info("starting explorer", "path", path, "capacity", res.Capacity, "steps", len(res.Steps))

	m := newExplorerModel(filepath.Base(path), res)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("explorer failed", "error", err)
		return errors.Wrap(err, "run explorer")
	}
	return nil
}
