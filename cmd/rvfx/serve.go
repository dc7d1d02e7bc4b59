package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mattjoyce/rvfx-bridge/internal/command"
	"github.com/mattjoyce/rvfx-bridge/internal/config"
	"github.com/mattjoyce/rvfx-bridge/internal/dispatch"
	"github.com/mattjoyce/rvfx-bridge/internal/events"
	"github.com/mattjoyce/rvfx-bridge/internal/host"
	"github.com/mattjoyce/rvfx-bridge/internal/host/sim"
	"github.com/mattjoyce/rvfx-bridge/internal/journal"
	"github.com/mattjoyce/rvfx-bridge/internal/lock"
	"github.com/mattjoyce/rvfx-bridge/internal/log"
	"github.com/mattjoyce/rvfx-bridge/internal/tui"
)

func newServeCmd(a *app) *cobra.Command {
	var monitor bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bridge over a simulated project",
		Long: `Polls the communication directory and answers each command against an
in-memory project seeded from the sim section of the config. Renders
write silent WAV files of the rendered length.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, monitor)
		},
	}
	cmd.Flags().BoolVar(&monitor, "monitor", false, "show a live terminal view of handled commands")
	return cmd
}

func (a *app) serve(ctx context.Context, monitor bool) error {
	cfg := a.cfg
	if monitor && cfg.Service.LogFile == "" {
		// The monitor owns the terminal.
		log.Configure(log.Options{Level: cfg.Service.LogLevel, Output: io.Discard})
	}
	logger := log.WithComponent("main")

	ch, err := a.channel()
	if err != nil {
		return err
	}
	logger.Info("rvfx starting", "version", version, "config", cfg.Source, "dir", ch.Dir())

	if cfg.Bridge.Lock {
		l, err := lock.Acquire(lock.PathFor(ch.Dir()))
		if err != nil {
			return fmt.Errorf("cannot serve %s: %w", ch.Dir(), err)
		}
		defer l.Release()
		logger.Info("acquired bridge lock", "path", l.Path())
	}

	hub := events.NewHub(256)
	opts := []dispatch.Option{dispatch.WithHub(hub)}

	if cfg.Journal.Enabled {
		store, err := journal.Open(ctx, cfg.Journal.Path)
		if err != nil {
			// The journal is diagnostic; serve without it.
			logger.Warn("journal disabled", "path", cfg.Journal.Path, "error", err)
		} else {
			defer store.Close()
			if n, err := store.Prune(ctx, cfg.Journal.Retention); err != nil {
				logger.Warn("journal prune failed", "error", err)
			} else if n > 0 {
				logger.Info("journal pruned", "removed", n)
			}
			opts = append(opts, dispatch.WithRecorder(store))
		}
	}

	project := buildProject(cfg.Sim)
	d := dispatch.New(ch, command.New(project), opts...)
	defer d.Close()

	if !monitor {
		return ignoreCanceled(d.Run(ctx, cfg.Service.TickInterval))
	}

	model := tui.NewMonitor(hub, ch.Dir())
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(runCtx, cfg.Service.TickInterval) }()

	prog := tea.NewProgram(model, tea.WithContext(ctx))
	_, uiErr := prog.Run()
	cancel()
	runErr := ignoreCanceled(<-errCh)
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return uiErr
	}
	return runErr
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// buildProject seeds the simulated project from config.
func buildProject(sc config.SimConfig) *sim.Project {
	tracks := make([]sim.TrackSpec, 0, len(sc.Tracks))
	for _, t := range sc.Tracks {
		items := make([]host.Item, 0, len(t.Items))
		for _, it := range t.Items {
			items = append(items, host.Item{Position: it.Position, Length: it.Length})
		}
		tracks = append(tracks, sim.TrackSpec{Name: t.Name, Muted: t.Muted, Items: items})
	}
	return sim.New(sc.ItemLength, tracks...)
}
