package protocol

// Command names accepted in the command file.
const (
	CommandPing        = "PING"
	CommandGetTracks   = "GET_TRACKS"
	CommandLoadAudio   = "LOAD_AUDIO"
	CommandClearTrack  = "CLEAR_TRACK"
	CommandRenderTrack = "RENDER_TRACK"
)

// Commands returns every command name the bridge routes, in documentation order.
func Commands() []string {
	return []string{
		CommandPing,
		CommandGetTracks,
		CommandLoadAudio,
		CommandClearTrack,
		CommandRenderTrack,
	}
}

// Request is the flat command document written by the external process.
type Request struct {
	Command    string `json:"command"`
	TrackIndex int    `json:"trackIndex,omitempty"`
	AudioPath  string `json:"audioPath,omitempty"`
	OutputPath string `json:"outputPath,omitempty"`

	// HasTrackIndex is false when the document carried no parseable trackIndex.
	HasTrackIndex bool `json:"-"`
}

// Response is the document written back after every handled cycle.
type Response struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message,omitempty"`
	Tracks     []Track `json:"tracks,omitempty"`
	OutputPath string  `json:"outputPath,omitempty"`
}

// Track is one entry of a GET_TRACKS listing.
type Track struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// NeedsTrackIndex reports whether command takes a trackIndex field.
func NeedsTrackIndex(command string) bool {
	switch command {
	case CommandLoadAudio, CommandClearTrack, CommandRenderTrack:
		return true
	}
	return false
}
