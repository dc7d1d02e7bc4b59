package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mattjoyce/rvfx-bridge/internal/channel"
	"github.com/mattjoyce/rvfx-bridge/internal/command"
	"github.com/mattjoyce/rvfx-bridge/internal/events"
	"github.com/mattjoyce/rvfx-bridge/internal/journal"
	"github.com/mattjoyce/rvfx-bridge/internal/log"
	"github.com/mattjoyce/rvfx-bridge/internal/protocol"
)

// DefaultInterval is the tick period used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Outcome is the result of a single Tick.
type Outcome int

const (
	// Idle means no command was waiting.
	Idle Outcome = iota
	// Busy means a cycle was already in flight; the tick did nothing.
	Busy
	// Handled means a command was consumed and answered.
	Handled
)

func (o Outcome) String() string {
	switch o {
	case Busy:
		return "busy"
	case Handled:
		return "handled"
	default:
		return "idle"
	}
}

// Recorder persists processed cycles. *journal.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRecorder journals every handled cycle.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithHub publishes every handled cycle.
func WithHub(h *events.Hub) Option {
	return func(d *Dispatcher) { d.hub = h }
}

// Dispatcher reads commands from a channel and answers them through handlers.
type Dispatcher struct {
	channel  *channel.Channel
	handlers *command.Handlers
	recorder Recorder
	hub      *events.Hub
	logger   *slog.Logger

	processing atomic.Bool
}

// New creates a Dispatcher.
func New(ch *channel.Channel, h *command.Handlers, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		channel:  ch,
		handlers: h,
		logger:   log.WithComponent("dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Processing reports whether a cycle is in flight.
func (d *Dispatcher) Processing() bool { return d.processing.Load() }

// Run ticks immediately and then every interval until ctx is done. Ticks are
// serial, so Run never overlaps itself.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	d.logger.Info("bridge serving", "dir", d.channel.Dir(), "interval", interval.String())
	d.hub.PublishState("serving")
	defer func() {
		d.hub.PublishState("stopped")
		d.logger.Info("bridge stopped")
	}()

	d.Tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick(ctx)
		}
	}
}

// Close detaches observers and clears the guard. The dispatcher must not be
// ticking when Close is called.
func (d *Dispatcher) Close() {
	d.processing.Store(false)
	d.hub = nil
	d.recorder = nil
}

// Tick runs at most one command cycle.
func (d *Dispatcher) Tick(ctx context.Context) Outcome {
	if !d.processing.CompareAndSwap(false, true) {
		return Busy
	}
	defer d.processing.Store(false)

	if err := d.channel.EnsureDir(); err != nil {
		d.logger.Warn("communication directory unavailable", "error", err)
		return Idle
	}
	doc, ok := d.channel.ReadCommand()
	if !ok {
		return Idle
	}

	d.cycle(ctx, doc)
	return Handled
}

func (d *Dispatcher) cycle(ctx context.Context, doc string) {
	started := time.Now()
	id := journal.NewID()
	req := protocol.ParseRequest(doc)
	logger := log.WithCommand(req.Command, id)
	logger.Debug("command received", "track", req.TrackIndex)

	res := d.execute(req)

	var writeErr string
	if err := d.channel.WriteResponse(res.Document); err != nil {
		writeErr = err.Error()
		logger.Warn("response write failed", "error", err)
	}
	d.channel.DeleteCommand()

	elapsed := time.Since(started)
	message := responseMessage(res)
	if res.Success() {
		logger.Info("command handled", "duration", elapsed.String())
	} else {
		logger.Info("command failed", "kind", command.Kind(res.Err), "message", message, "duration", elapsed.String())
	}

	d.hub.PublishCycle(events.Cycle{
		ID:         id,
		Command:    req.Command,
		TrackIndex: req.TrackIndex,
		Success:    res.Success(),
		Kind:       command.Kind(res.Err),
		Message:    message,
		Duration:   elapsed,
		WriteError: writeErr,
	})

	if d.recorder == nil {
		return
	}
	err := d.recorder.Record(ctx, journal.Entry{
		ID:          id,
		Command:     req.Command,
		TrackIndex:  req.TrackIndex,
		Success:     res.Success(),
		Kind:        command.Kind(res.Err),
		Message:     message,
		Digest:      journal.Digest(doc),
		Response:    res.Document,
		WriteError:  writeErr,
		StartedAt:   started,
		CompletedAt: started.Add(elapsed),
	})
	if err != nil {
		logger.Warn("journal record failed", "error", err)
	}
}

// execute routes req and converts a handler panic into an error response.
func (d *Dispatcher) execute(req protocol.Request) (res command.Result) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panicked", "command", req.Command, "panic", fmt.Sprint(r))
			res = command.Failure(fmt.Errorf("%w: %v", command.ErrInternal, r))
		}
	}()
	return d.route(req)
}

func (d *Dispatcher) route(req protocol.Request) command.Result {
	switch req.Command {
	case protocol.CommandPing:
		return d.handlers.Ping()

	case protocol.CommandGetTracks:
		return d.handlers.ListTracks()

	case protocol.CommandLoadAudio:
		if err := requireTrack(req); err != nil {
			return command.Failure(err)
		}
		if req.AudioPath == "" {
			return command.Failure(missing("audioPath"))
		}
		return d.handlers.LoadAudio(req.TrackIndex, req.AudioPath)

	case protocol.CommandClearTrack:
		if err := requireTrack(req); err != nil {
			return command.Failure(err)
		}
		return d.handlers.ClearTrack(req.TrackIndex)

	case protocol.CommandRenderTrack:
		if err := requireTrack(req); err != nil {
			return command.Failure(err)
		}
		if req.OutputPath == "" {
			return command.Failure(missing("outputPath"))
		}
		return d.handlers.RenderTrack(req.TrackIndex, req.OutputPath)

	default:
		return command.Failure(fmt.Errorf("%w: %s", command.ErrUnknownCommand, req.Command))
	}
}

func requireTrack(req protocol.Request) error {
	if !req.HasTrackIndex || req.TrackIndex < 0 {
		return missing("trackIndex")
	}
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", command.ErrMissingParameter, field)
}

func responseMessage(res command.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	if msg, ok := protocol.DecodeString(res.Document, "message"); ok {
		return protocol.Unescape(msg)
	}
	return ""
}
