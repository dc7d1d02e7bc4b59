// Package command implements the bridge's operations against the host
// project: listing tracks, loading audio, clearing a track and rendering a
// single track to a file.
//
// Every handler returns a Result carrying the response document; handlers
// never return Go errors past the cycle. Host actions that report nothing
// (media insertion, rendering) are judged by their observable side effects.
package command

import (
	"fmt"
	"log/slog"

	"github.com/mattjoyce/rvfx-bridge/internal/host"
	"github.com/mattjoyce/rvfx-bridge/internal/log"
	"github.com/mattjoyce/rvfx-bridge/internal/protocol"
)

// Result is the outcome of one handler call.
type Result struct {
	Document string
	// Err is nil on success; otherwise it wraps one of the taxonomy errors.
	Err error
}

// Success reports whether the handler succeeded.
func (r Result) Success() bool { return r.Err == nil }

// Failure builds an error result whose message is err's text.
func Failure(err error) Result {
	return Result{Document: protocol.MakeError(err.Error()), Err: err}
}

// OK builds a success result with a plain message.
func OK(msg string) Result {
	return Result{Document: protocol.MakeOk(msg)}
}

// Handlers executes commands against one host project.
type Handlers struct {
	project host.Project
	logger  *slog.Logger
}

// New creates Handlers bound to project.
func New(project host.Project) *Handlers {
	return &Handlers{
		project: project,
		logger:  log.WithComponent("command"),
	}
}

// Ping answers "pong".
func (h *Handlers) Ping() Result {
	return OK("pong")
}

// ListTracks lists every track in index order. Unnamed tracks are reported
// as "Track N", 1-based.
func (h *Handlers) ListTracks() Result {
	n := h.project.TrackCount()
	tracks := make([]protocol.Track, 0, n)
	for i := 0; i < n; i++ {
		name, ok := "", false
		if h.project.HasTrack(i) {
			name, ok = h.project.TrackName(i)
		}
		if !ok || name == "" {
			name = fmt.Sprintf("Track %d", i+1)
		}
		tracks = append(tracks, protocol.Track{Index: i, Name: name})
	}
	return Result{Document: protocol.MakeTracks(tracks)}
}

// LoadAudio inserts audioPath at time zero on the track. Success is judged
// solely by the track's item count growing.
func (h *Handlers) LoadAudio(trackIndex int, audioPath string) Result {
	if !h.project.HasTrack(trackIndex) {
		return Failure(ErrTrackNotFound)
	}

	h.project.SelectOnlyTrack(trackIndex)
	h.project.SetEditCursor(0)

	before := h.project.ItemCount(trackIndex)
	h.project.InsertMedia(audioPath)
	after := h.project.ItemCount(trackIndex)

	h.logger.Debug("media inserted", "track", trackIndex, "path", audioPath, "before", before, "after", after)
	if after > before {
		return OK("audio loaded")
	}
	return Failure(ErrLoadFailed)
}

// ClearTrack removes every item from the track. An empty track is a
// trivial success.
func (h *Handlers) ClearTrack(trackIndex int) Result {
	if !h.project.HasTrack(trackIndex) {
		return Failure(ErrTrackNotFound)
	}

	removed := 0
	for h.project.ItemCount(trackIndex) > 0 {
		if !h.project.DeleteItem(trackIndex, 0) {
			h.logger.Warn("host refused to delete item", "track", trackIndex, "removed", removed)
			break
		}
		removed++
	}
	h.logger.Debug("track cleared", "track", trackIndex, "removed", removed)
	return OK("track cleared")
}
