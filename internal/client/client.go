// Package client sends commands to a running bridge through the file channel
// and waits for the answer.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mattjoyce/rvfx-bridge/internal/channel"
	"github.com/mattjoyce/rvfx-bridge/internal/log"
	"github.com/mattjoyce/rvfx-bridge/internal/protocol"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// ErrTimeout is returned when no response arrives in time.
var ErrTimeout = errors.New("bridge did not respond (timeout)")

// BridgeError is a response with success=false.
type BridgeError struct {
	Command string
	Message string
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Command, e.Message)
}

// Options tunes a Client. Zero values select the defaults.
type Options struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// Client talks to one bridge directory. Only one request may be in flight
// per directory; the protocol has a single slot.
type Client struct {
	ch      *channel.Channel
	timeout time.Duration
	poll    time.Duration
	logger  *slog.Logger
}

func New(ch *channel.Channel, opts Options) *Client {
	c := &Client{
		ch:      ch,
		timeout: opts.Timeout,
		poll:    opts.PollInterval,
		logger:  log.WithComponent("client"),
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.poll <= 0 {
		c.poll = DefaultPollInterval
	}
	return c
}

// Send clears both slots, writes req, and waits for the response. The
// response file is removed once read. A success=false response is returned
// without error; see Call.
func (c *Client) Send(ctx context.Context, req protocol.Request) (*protocol.Response, error) {
	var buf bytes.Buffer
	if err := protocol.EncodeRequest(&buf, &req); err != nil {
		return nil, err
	}

	if err := c.ch.EnsureDir(); err != nil {
		return nil, err
	}
	c.ch.Reset()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.logger.Debug("fsnotify unavailable, polling only", "error", err)
		watcher = nil
	} else {
		defer watcher.Close()
		if err := watcher.Add(c.ch.Dir()); err != nil {
			c.logger.Debug("watch failed, polling only", "dir", c.ch.Dir(), "error", err)
		}
	}

	if err := c.ch.WriteCommand(buf.String()); err != nil {
		return nil, fmt.Errorf("write command: %w", err)
	}
	c.logger.Debug("command sent", "command", req.Command)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.wait(ctx, watcher)
}

// Call is Send that turns a failure response into a *BridgeError.
func (c *Client) Call(ctx context.Context, req protocol.Request) (*protocol.Response, error) {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return resp, &BridgeError{Command: req.Command, Message: resp.Message}
	}
	return resp, nil
}

// wait returns once a response has been read and the bridge has removed the
// command. Returning earlier would let the next Send's command be deleted by
// the tail of this cycle.
func (c *Client) wait(ctx context.Context, watcher *fsnotify.Watcher) (*protocol.Response, error) {
	var (
		events  <-chan fsnotify.Event
		errs    <-chan error
		pending *protocol.Response
		lastErr error
	)
	if watcher != nil {
		events, errs = watcher.Events, watcher.Errors
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if pending != nil {
				c.logger.Warn("response read but command never removed", "dir", c.ch.Dir())
				return pending, nil
			}
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				if lastErr != nil {
					return nil, fmt.Errorf("%w: last response unreadable: %v", ErrTimeout, lastErr)
				}
				return nil, ErrTimeout
			}
			return nil, ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !relevant(ev) {
				continue
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			c.logger.Debug("watch error", "error", err)
			continue

		case <-ticker.C:
		}

		if pending == nil {
			resp, err := c.tryRead()
			if err != nil {
				lastErr = err
				continue
			}
			pending = resp
		}
		if pending != nil && !c.ch.HasCommand() {
			return pending, nil
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	switch filepath.Base(ev.Name) {
	case channel.ResponseFile:
		return ev.Has(fsnotify.Create | fsnotify.Write)
	case channel.CommandFile:
		return ev.Has(fsnotify.Remove | fsnotify.Rename)
	}
	return false
}

// tryRead returns (nil, nil) when no response is present yet. A response
// that does not parse is left in place and retried.
func (c *Client) tryRead() (*protocol.Response, error) {
	doc, ok := c.ch.ReadResponse()
	if !ok {
		return nil, nil
	}
	resp, err := protocol.DecodeResponse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}
	c.ch.DeleteResponse()
	return resp, nil
}

// Ping checks the bridge is alive.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Call(ctx, protocol.Request{Command: protocol.CommandPing})
	return err
}

// Tracks lists the project's tracks.
func (c *Client) Tracks(ctx context.Context) ([]protocol.Track, error) {
	resp, err := c.Call(ctx, protocol.Request{Command: protocol.CommandGetTracks})
	if err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// LoadAudio inserts audioPath at time zero on the track.
func (c *Client) LoadAudio(ctx context.Context, track int, audioPath string) error {
	_, err := c.Call(ctx, protocol.Request{
		Command: protocol.CommandLoadAudio, TrackIndex: track, HasTrackIndex: true, AudioPath: audioPath,
	})
	return err
}

// ClearTrack removes every item from the track.
func (c *Client) ClearTrack(ctx context.Context, track int) error {
	_, err := c.Call(ctx, protocol.Request{
		Command: protocol.CommandClearTrack, TrackIndex: track, HasTrackIndex: true,
	})
	return err
}

// RenderTrack renders the track alone to outputPath and returns the path the
// bridge reported.
func (c *Client) RenderTrack(ctx context.Context, track int, outputPath string) (string, error) {
	resp, err := c.Call(ctx, protocol.Request{
		Command: protocol.CommandRenderTrack, TrackIndex: track, HasTrackIndex: true, OutputPath: outputPath,
	})
	if err != nil {
		return "", err
	}
	return resp.OutputPath, nil
}
