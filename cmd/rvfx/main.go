// Command rvfx serves and drives the file-based video FX bridge.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/rvfx-bridge/internal/channel"
	"github.com/mattjoyce/rvfx-bridge/internal/client"
	"github.com/mattjoyce/rvfx-bridge/internal/config"
	"github.com/mattjoyce/rvfx-bridge/internal/log"
)

var version = "0.1.0"

// app carries what the persistent flags and config resolve to.
type app struct {
	configPath string
	logLevel   string
	commDir    string
	timeout    time.Duration

	cfg *config.Config
}

func main() {
	if err := run(context.Background(), newRootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes root and releases the log file before returning.
func run(ctx context.Context, root *cobra.Command) error {
	defer func() { _ = log.Close() }()
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rvfx",
		Short: "File-based command bridge for video FX audio tracks",
		Long: `rvfx exchanges commands with a host project through two files in
<temp>/reaper-video-fx: command.json and response.json.

"rvfx serve" runs the bridge over a simulated project. The other commands
act as the external client.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $"+config.EnvConfig+" or ~/.config/rvfx/config.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "override service.log_level")
	pf.StringVar(&a.commDir, "comm-dir", "", "parent of the reaper-video-fx directory (default $TEMP or the OS temp dir)")
	pf.DurationVar(&a.timeout, "timeout", 0, "override client.timeout")

	root.AddCommand(
		newServeCmd(a),
		newSendCmd(a),
		newPingCmd(a),
		newTracksCmd(a),
		newLoadCmd(a),
		newClearCmd(a),
		newRenderCmd(a),
		newHistoryCmd(a),
		newDoctorCmd(a),
		newDirCmd(a),
		newVersionCmd(),
	)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\nSee '%s --help'", err, cmd.CommandPath())
	})
	return root
}

func (a *app) load() error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if a.commDir != "" {
		cfg.Bridge.CommDir = a.commDir
	}
	if a.timeout > 0 {
		cfg.Client.Timeout = a.timeout
	}
	if a.logLevel != "" {
		cfg.Service.LogLevel = a.logLevel
	}
	a.cfg = cfg

	log.Configure(log.Options{
		Level:  cfg.Service.LogLevel,
		Format: cfg.Service.LogFormat,
		File:   cfg.Service.LogFile,
	})
	return nil
}

func (a *app) channel() (*channel.Channel, error) {
	return channel.Open(a.cfg.Bridge.CommDir)
}

func (a *app) client() (*client.Client, error) {
	ch, err := a.channel()
	if err != nil {
		return nil, err
	}
	return client.New(ch, client.Options{
		Timeout:      a.cfg.Client.Timeout,
		PollInterval: a.cfg.Client.PollInterval,
	}), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "rvfx version %s\n", version)
			return nil
		},
	}
}

func newDirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the communication directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ch, err := a.channel()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ch.Dir())
			return nil
		},
	}
}
