package command

import (
	"path/filepath"
	"strings"

	"github.com/mattjoyce/rvfx-bridge/internal/host"
	"github.com/mattjoyce/rvfx-bridge/internal/protocol"
)

// BaselineRenderSettings is the render settings value applied for every
// track render.
const BaselineRenderSettings = 0

// MuteSnapshot holds every track's mute flag, by track index.
type MuteSnapshot []bool

// CaptureMutes snapshots the mute flag of every track.
func CaptureMutes(p host.Project) MuteSnapshot {
	n := p.TrackCount()
	snap := make(MuteSnapshot, n)
	for i := 0; i < n; i++ {
		if p.HasTrack(i) {
			snap[i] = p.TrackMute(i)
		}
	}
	return snap
}

// Restore writes the snapshot back.
func (s MuteSnapshot) Restore(p host.Project) {
	for i, muted := range s {
		if p.HasTrack(i) {
			p.SetTrackMute(i, muted)
		}
	}
}

// RenderDestination holds the project's render directory and file pattern.
type RenderDestination struct {
	File    string
	Pattern string
}

// CaptureRenderDestination snapshots the render destination strings.
func CaptureRenderDestination(p host.Project) RenderDestination {
	return RenderDestination{File: p.RenderFile(), Pattern: p.RenderPattern()}
}

// Apply sets d as the project's render destination.
func (d RenderDestination) Apply(p host.Project) {
	p.SetRenderFile(d.File)
	p.SetRenderPattern(d.Pattern)
}

// SplitOutputPath splits path into its directory and its file name without
// extension. A bare file name has an empty directory.
func SplitOutputPath(path string) (dir, stem string) {
	base := filepath.Base(path)
	if base != path {
		dir = filepath.Dir(path)
	}
	stem = strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return dir, stem
}

// TrackExtent returns the latest item end on the track, or 0 without items.
func TrackExtent(p host.Project, trackIndex int) float64 {
	var extent float64
	n := p.ItemCount(trackIndex)
	for i := 0; i < n; i++ {
		it, ok := p.Item(trackIndex, i)
		if !ok {
			continue
		}
		if end := it.End(); end > extent {
			extent = end
		}
	}
	return extent
}

// renderState tracks which project settings a render has overridden so the
// deferred restore undoes exactly those, in order: destination, mutes, loop.
type renderState struct {
	mutes   MuteSnapshot
	dest    *RenderDestination
	loopSet bool
}

func (s *renderState) restore(p host.Project) {
	if s.dest != nil {
		s.dest.Apply(p)
	}
	if s.mutes != nil {
		s.mutes.Restore(p)
	}
	if s.loopSet {
		p.SetLoopRange(0, 0)
	}
}

// RenderTrack renders one track, soloed by muting all others, over the time
// range covered by its items, to outputPath. The host gives no completion
// signal, so success is reported once the render action has been issued.
// Mute flags and the render destination are restored on every exit path.
func (h *Handlers) RenderTrack(trackIndex int, outputPath string) Result {
	p := h.project
	if !p.HasTrack(trackIndex) {
		return Failure(ErrTrackNotFound)
	}

	var st renderState
	defer st.restore(p)

	st.mutes = CaptureMutes(p)
	for i := range st.mutes {
		if p.HasTrack(i) {
			p.SetTrackMute(i, i != trackIndex)
		}
	}

	extent := TrackExtent(p, trackIndex)
	if extent <= 0 {
		return Failure(ErrNoAudio)
	}

	p.SetLoopRange(0, extent)
	st.loopSet = true

	orig := CaptureRenderDestination(p)
	st.dest = &orig

	dir, stem := SplitOutputPath(outputPath)
	RenderDestination{File: dir, Pattern: stem}.Apply(p)
	p.SetRenderBounds(host.BoundsTimeSelection)
	p.SetRenderSettings(BaselineRenderSettings)

	h.logger.Info("rendering track", "track", trackIndex, "extent", extent, "dir", dir, "pattern", stem)
	p.RenderLastSettings()

	return Result{Document: protocol.MakeRendered(outputPath)}
}
