package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/mattjoyce/rvfx-bridge/internal/protocol"
)

// suggestCommand returns the known command closest to name, if any is near
// enough to be a plausible typo.
func suggestCommand(name string) (string, bool) {
	name = strings.ToUpper(name)
	best, bestDist := "", -1
	for _, c := range protocol.Commands() {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > len(best)/2 {
		return "", false
	}
	return best, true
}

func newSendCmd(a *app) *cobra.Command {
	var (
		track  int
		audio  string
		output string
		raw    bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "send <COMMAND>",
		Short: "Send one command and print the response",
		Example: `  rvfx send PING
  rvfx send LOAD_AUDIO --track 1 --audio /tmp/voice.wav
  rvfx send RENDER_TRACK --track 1 --output /tmp/voice-fx.wav --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToUpper(args[0])
			if !force && !isKnownCommand(name) {
				if s, ok := suggestCommand(name); ok {
					return fmt.Errorf("unknown command %q (did you mean %s?)", args[0], s)
				}
				return fmt.Errorf("unknown command %q (known: %s)", args[0], strings.Join(protocol.Commands(), ", "))
			}

			req := protocol.Request{Command: name, TrackIndex: track, AudioPath: audio, OutputPath: output}
			if cmd.Flags().Changed("track") {
				req.HasTrackIndex = true
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			resp, err := c.Send(cmd.Context(), req)
			if err != nil {
				return err
			}
			if raw {
				if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
					return err
				}
			} else {
				printResponse(cmd.OutOrStdout(), resp)
			}
			if !resp.Success {
				return fmt.Errorf("%s failed: %s", name, resp.Message)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&track, "track", -1, "track index (0-based)")
	f.StringVar(&audio, "audio", "", "audio file path for LOAD_AUDIO")
	f.StringVar(&output, "output", "", "output file path for RENDER_TRACK")
	f.BoolVar(&raw, "json", false, "print the response as JSON")
	f.BoolVar(&force, "force", false, "send even if the command name is not recognised")
	return cmd
}

func isKnownCommand(name string) bool {
	for _, c := range protocol.Commands() {
		if c == name {
			return true
		}
	}
	return false
}

func printJSON(w io.Writer, resp *protocol.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func printResponse(w io.Writer, resp *protocol.Response) {
	status := "ok"
	if !resp.Success {
		status = "failed"
	}
	if resp.Message != "" {
		fmt.Fprintf(w, "%s: %s\n", status, resp.Message)
	} else {
		fmt.Fprintln(w, status)
	}
	for _, t := range resp.Tracks {
		fmt.Fprintf(w, "  %3d  %s\n", t.Index, t.Name)
	}
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that a bridge is answering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "pong")
			return nil
		},
	}
}

func newTracksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List the project's tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			tracks, err := c.Tracks(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tracks {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", t.Index, t.Name)
			}
			return nil
		},
	}
}

func parseTrack(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid track index %q", s)
	}
	return n, nil
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <track> <audio-file>",
		Short: "Insert an audio file at time zero on a track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := parseTrack(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.LoadAudio(cmd.Context(), track, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %s on track %d\n", args[1], track)
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <track>",
		Short: "Remove every item from a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := parseTrack(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.ClearTrack(cmd.Context(), track); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared track %d\n", track)
			return nil
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render <track> <output-file>",
		Short: "Render one track alone to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := parseTrack(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			out, err := c.RenderTrack(cmd.Context(), track, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
