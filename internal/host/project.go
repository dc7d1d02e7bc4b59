// Package host defines the capability surface the bridge needs from the host
// application's project: tracks, media items, mute flags, the loop range and
// the render destination.
//
// All calls happen on the host's callback thread; implementations need no
// locking of their own on behalf of the bridge.
package host

//go:generate mockgen -destination=mocks/mock_project.go -package=mocks github.com/mattjoyce/rvfx-bridge/internal/host Project

// RenderBounds selects which part of the project a render covers.
type RenderBounds int

const (
	BoundsEntireProject RenderBounds = 1
	BoundsTimeSelection RenderBounds = 2
)

// Item is a media item placed on a track, in seconds.
type Item struct {
	Position float64
	Length   float64
}

// End returns Position + Length.
func (i Item) End() float64 { return i.Position + i.Length }

// Project is the host project as seen by the command handlers. Track and item
// indexes are zero-based.
type Project interface {
	TrackCount() int
	// HasTrack reports whether index resolves to a track.
	HasTrack(index int) bool
	// TrackName returns the track's name; ok is false when the host has none.
	TrackName(index int) (name string, ok bool)
	SelectOnlyTrack(index int)
	SetEditCursor(seconds float64)

	ItemCount(track int) int
	Item(track, item int) (Item, bool)
	DeleteItem(track, item int) bool
	// InsertMedia inserts the file at the edit cursor on the selected track.
	// The host reports nothing back.
	InsertMedia(path string)

	TrackMute(track int) bool
	SetTrackMute(track int, muted bool)

	SetLoopRange(start, end float64)

	RenderFile() string
	RenderPattern() string
	SetRenderFile(dir string)
	SetRenderPattern(pattern string)
	SetRenderBounds(mode RenderBounds)
	SetRenderSettings(settings int)
	// RenderLastSettings triggers the render action. It is fire-and-forget.
	RenderLastSettings()
}
