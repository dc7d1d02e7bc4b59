// Package sim is an in-memory host project. It backs `rvfx serve` when no
// real host is attached and is the fake used by handler and dispatcher tests.
package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattjoyce/rvfx-bridge/internal/host"
	"github.com/mattjoyce/rvfx-bridge/internal/log"
)

// DefaultItemLength is used for inserted media whose duration cannot be read.
const DefaultItemLength = 10.0

// TrackSpec seeds one track.
type TrackSpec struct {
	Name  string
	Muted bool
	Items []host.Item
}

// Render records one invocation of the render action.
type Render struct {
	Path     string
	Start    float64
	End      float64
	Bounds   host.RenderBounds
	Settings int
	Muted    []bool
	Err      error
}

type track struct {
	name  string
	muted bool
	items []host.Item
}

// Project implements host.Project in memory.
type Project struct {
	tracks     []*track
	selected   int
	cursor     float64
	loopStart  float64
	loopEnd    float64
	renderFile string
	renderPat  string
	bounds     host.RenderBounds
	settings   int
	itemLength float64
	renders    []Render

	// OnRender, when set, replaces the file-writing render action.
	OnRender func(p *Project)
}

var _ host.Project = (*Project)(nil)

// New returns a project with the given tracks.
func New(itemLength float64, tracks ...TrackSpec) *Project {
	if itemLength <= 0 {
		itemLength = DefaultItemLength
	}
	p := &Project{
		selected:   -1,
		itemLength: itemLength,
		renderPat:  "$project",
		bounds:     host.BoundsEntireProject,
	}
	for _, t := range tracks {
		p.AddTrack(t)
	}
	return p
}

// AddTrack appends a track and returns its index.
func (p *Project) AddTrack(spec TrackSpec) int {
	items := make([]host.Item, len(spec.Items))
	copy(items, spec.Items)
	p.tracks = append(p.tracks, &track{name: spec.Name, muted: spec.Muted, items: items})
	return len(p.tracks) - 1
}

func (p *Project) track(index int) *track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return p.tracks[index]
}

func (p *Project) TrackCount() int { return len(p.tracks) }

func (p *Project) HasTrack(index int) bool { return p.track(index) != nil }

func (p *Project) TrackName(index int) (string, bool) {
	t := p.track(index)
	if t == nil {
		return "", false
	}
	return t.name, true
}

func (p *Project) SelectOnlyTrack(index int) {
	if p.track(index) != nil {
		p.selected = index
	}
}

func (p *Project) SetEditCursor(seconds float64) { p.cursor = seconds }

func (p *Project) ItemCount(track int) int {
	t := p.track(track)
	if t == nil {
		return 0
	}
	return len(t.items)
}

func (p *Project) Item(track, item int) (host.Item, bool) {
	t := p.track(track)
	if t == nil || item < 0 || item >= len(t.items) {
		return host.Item{}, false
	}
	return t.items[item], true
}

func (p *Project) DeleteItem(track, item int) bool {
	t := p.track(track)
	if t == nil || item < 0 || item >= len(t.items) {
		return false
	}
	t.items = append(t.items[:item], t.items[item+1:]...)
	return true
}

// InsertMedia places an item at the edit cursor on the selected track when
// path names a readable regular file. Like the real host it reports nothing.
func (p *Project) InsertMedia(path string) {
	t := p.track(p.selected)
	if t == nil {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		log.WithComponent("sim").Debug("media not inserted", "path", path, "error", err)
		return
	}
	length := p.itemLength
	if d, ok := wavDuration(path); ok && d > 0 {
		length = d
	}
	t.items = append(t.items, host.Item{Position: p.cursor, Length: length})
}

func (p *Project) TrackMute(track int) bool {
	t := p.track(track)
	return t != nil && t.muted
}

func (p *Project) SetTrackMute(track int, muted bool) {
	if t := p.track(track); t != nil {
		t.muted = muted
	}
}

func (p *Project) SetLoopRange(start, end float64) {
	p.loopStart, p.loopEnd = start, end
}

func (p *Project) RenderFile() string { return p.renderFile }
func (p *Project) RenderPattern() string { return p.renderPat }
func (p *Project) SetRenderFile(dir string) { p.renderFile = dir }
func (p *Project) SetRenderPattern(pat string) { p.renderPat = pat }
func (p *Project) SetRenderBounds(b host.RenderBounds) { p.bounds = b }
func (p *Project) SetRenderSettings(settings int) { p.settings = settings }

// RenderLastSettings writes a silent WAV covering the render bounds to
// <render file>/<render pattern>.wav. Errors are recorded, never returned.
func (p *Project) RenderLastSettings() {
	if p.OnRender != nil {
		p.OnRender(p)
		return
	}

	start, end := p.loopStart, p.loopEnd
	if p.bounds != host.BoundsTimeSelection {
		start, end = 0, p.projectEnd()
	}
	r := Render{
		Path:     filepath.Join(p.renderFile, p.renderPat+".wav"),
		Start:    start,
		End:      end,
		Bounds:   p.bounds,
		Settings: p.settings,
		Muted:    p.Mutes(),
	}
	if err := writeSilentWAV(r.Path, end-start); err != nil {
		r.Err = fmt.Errorf("render %s: %w", r.Path, err)
		log.WithComponent("sim").Warn("render failed", "path", r.Path, "error", err)
	}
	p.renders = append(p.renders, r)
}

func (p *Project) projectEnd() float64 {
	var end float64
	for _, t := range p.tracks {
		for _, it := range t.items {
			if it.End() > end {
				end = it.End()
			}
		}
	}
	return end
}

// Mutes returns every track's mute flag in index order.
func (p *Project) Mutes() []bool {
	out := make([]bool, len(p.tracks))
	for i, t := range p.tracks {
		out[i] = t.muted
	}
	return out
}

// LoopRange returns the current loop/time selection.
func (p *Project) LoopRange() (float64, float64) { return p.loopStart, p.loopEnd }

// Renders returns the render actions performed so far.
func (p *Project) Renders() []Render { return append([]Render(nil), p.renders...) }

// Selected returns the selected track index, or -1.
func (p *Project) Selected() int { return p.selected }

// Cursor returns the edit cursor position.
func (p *Project) Cursor() float64 { return p.cursor }

// Bounds returns the render bounds mode and render settings.
func (p *Project) Bounds() (host.RenderBounds, int) { return p.bounds, p.settings }
