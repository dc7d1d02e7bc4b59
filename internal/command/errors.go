package command

import "errors"

// Error taxonomy. The error text is what the response message carries.
var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrTrackNotFound    = errors.New("track not found")
	ErrNoAudio          = errors.New("no audio on track")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrLoadFailed       = errors.New("audio could not be loaded")
	ErrInternal         = errors.New("internal error")
)

// Kind classifies err for the journal. Nil is "ok".
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingParameter):
		return "parameter"
	case errors.Is(err, ErrTrackNotFound):
		return "not_found"
	case errors.Is(err, ErrNoAudio):
		return "no_content"
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, ErrLoadFailed):
		return "host"
	default:
		return "internal"
	}
}
