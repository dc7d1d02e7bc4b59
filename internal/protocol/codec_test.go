package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		key    string
		want   string
		wantOK bool
	}{
		{name: "simple", doc: `{"command":"PING"}`, key: "command", want: "PING", wantOK: true},
		{name: "spaces around colon", doc: `{"command" :  "GET_TRACKS"}`, key: "command", want: "GET_TRACKS", wantOK: true},
		{name: "escaped value stays raw", doc: `{"audioPath":"C:\\a\\b.wav"}`, key: "audioPath", want: `C:\\a\\b.wav`, wantOK: true},
		{name: "empty value", doc: `{"outputPath":""}`, key: "outputPath", want: "", wantOK: true},
		{name: "missing key", doc: `{"command":"PING"}`, key: "audioPath", wantOK: false},
		{name: "missing colon", doc: `{"command"}`, key: "command", wantOK: false},
		{name: "missing opening quote", doc: `{"command":5}`, key: "command", wantOK: false},
		{name: "unterminated value", doc: `{"command":"PING`, key: "command", wantOK: false},
		{name: "first occurrence wins", doc: `{"command":"A","command":"B"}`, key: "command", want: "A", wantOK: true},
		{name: "empty document", doc: ``, key: "command", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeString(tt.doc, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		want   int
		wantOK bool
	}{
		{name: "plain", doc: `{"trackIndex":3}`, want: 3, wantOK: true},
		{name: "negative", doc: `{"trackIndex": -1}`, want: -1, wantOK: true},
		{name: "leading whitespace", doc: `{"trackIndex":    5}`, want: 5, wantOK: true},
		{name: "newline and tab", doc: "{\"trackIndex\":\n\t7}", want: 7, wantOK: true},
		{name: "string value", doc: `{"trackIndex": "abc"}`, wantOK: false},
		{name: "quoted digits", doc: `{"trackIndex":"4"}`, wantOK: false},
		{name: "bare minus", doc: `{"trackIndex":-}`, wantOK: false},
		{name: "double minus", doc: `{"trackIndex":--5}`, wantOK: false},
		{name: "trailing garbage after number", doc: `{"trackIndex":5-3}`, want: 5, wantOK: true},
		{name: "overflow", doc: `{"trackIndex":99999999999}`, wantOK: false},
		{name: "max int32", doc: `{"trackIndex":2147483647}`, want: 2147483647, wantOK: true},
		{name: "missing key", doc: `{"command":"CLEAR_TRACK"}`, wantOK: false},
		{name: "missing value", doc: `{"trackIndex":`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeInt(tt.doc, "trackIndex")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\\b\"c\nd\re\tf`, Escape("a\\b\"c\nd\re\tf"))
	// Other control bytes and non-ASCII pass through untouched.
	assert.Equal(t, "\x01ş/é", Escape("\x01ş/é"))
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`C:\\Music\\a.wav`, `C:\Music\a.wav`},
		{`say \"hi\"`, `say "hi"`},
		{`a\/b`, `a/b`},
		{`line\nnext\ttab\rcr`, "line\nnext\ttab\rcr"},
		{`keep \x as is`, `keep \x as is`},
		{`trailing\`, `trailing\`},
		{`ünicode`, `ünicode`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Unescape(tt.in), "Unescape(%q)", tt.in)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`C:\Users\me\Desktop\take "1".wav`,
		"/tmp/out.wav",
		"multi\nline\r\nwith\ttabs",
		`\\server\share\\`,
		"Şarkı – ilk kayıt",
		`ends with backslash\`,
	}
	for _, in := range inputs {
		assert.Equal(t, in, Unescape(Escape(in)), "round trip of %q", in)
	}
}

func TestMakeDocuments(t *testing.T) {
	assert.Equal(t, `{"success":true,"message":"pong"}`, MakeOk("pong"))
	assert.Equal(t, `{"success":false,"message":"bad \"x\""}`, MakeError(`bad "x"`))
	assert.Equal(t, `{"success":true,"tracks":[]}`, MakeTracks(nil))
	assert.Equal(t,
		`{"success":true,"tracks":[{"index":0,"name":"Vox"},{"index":1,"name":"Track \"2\""}]}`,
		MakeTracks([]Track{{Index: 0, Name: "Vox"}, {Index: 1, Name: `Track "2"`}}),
	)
	assert.Equal(t,
		`{"success":true,"message":"C:\\out\\a.wav","outputPath":"C:\\out\\a.wav"}`,
		MakeRendered(`C:\out\a.wav`),
	)
}

func TestParseRequest(t *testing.T) {
	req := ParseRequest(`{"command":"LOAD_AUDIO","trackIndex":2,"audioPath":"C:\\in\\a.wav"}`)
	assert.Equal(t, CommandLoadAudio, req.Command)
	assert.True(t, req.HasTrackIndex)
	assert.Equal(t, 2, req.TrackIndex)
	assert.Equal(t, `C:\in\a.wav`, req.AudioPath)
	assert.Empty(t, req.OutputPath)

	empty := ParseRequest(`{}`)
	assert.Empty(t, empty.Command)
	assert.False(t, empty.HasTrackIndex)
	assert.Equal(t, -1, empty.TrackIndex)
}

func TestEncodeRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		want    string
		wantErr bool
	}{
		{
			name: "ping has no fields",
			req:  &Request{Command: CommandPing},
			want: `{"command":"PING"}`,
		},
		{
			name: "clear track zero index is kept",
			req:  &Request{Command: CommandClearTrack, TrackIndex: 0},
			want: `{"command":"CLEAR_TRACK","trackIndex":0}`,
		},
		{
			name: "render escapes the path",
			req:  &Request{Command: CommandRenderTrack, TrackIndex: 1, OutputPath: `C:\out\mix.wav`},
			want: `{"command":"RENDER_TRACK","trackIndex":1,"outputPath":"C:\\out\\mix.wav"}`,
		},
		{
			name:    "missing command",
			req:     &Request{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := EncodeRequest(&buf, tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())

			// The bridge side must read back what the client wrote.
			back := ParseRequest(buf.String())
			assert.Equal(t, tt.req.Command, back.Command)
			assert.Equal(t, tt.req.OutputPath, back.OutputPath)
			assert.Equal(t, tt.req.AudioPath, back.AudioPath)
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		checkFn func(t *testing.T, resp *Response)
	}{
		{
			name:  "ok response",
			input: MakeOk("pong"),
			checkFn: func(t *testing.T, resp *Response) {
				assert.True(t, resp.Success)
				assert.Equal(t, "pong", resp.Message)
			},
		},
		{
			name:  "tracks response",
			input: MakeTracks([]Track{{Index: 0, Name: "Drums"}, {Index: 1, Name: "Track 2"}}),
			checkFn: func(t *testing.T, resp *Response) {
				require.Len(t, resp.Tracks, 2)
				assert.Equal(t, "Drums", resp.Tracks[0].Name)
				assert.Equal(t, 1, resp.Tracks[1].Index)
			},
		},
		{
			name:  "render response",
			input: MakeRendered("/tmp/out.wav"),
			checkFn: func(t *testing.T, resp *Response) {
				assert.Equal(t, "/tmp/out.wav", resp.OutputPath)
			},
		},
		{
			name:  "control byte in track name",
			input: MakeTracks([]Track{{Index: 0, Name: "Vox\x07bell"}, {Index: 1, Name: "Drums"}}),
			checkFn: func(t *testing.T, resp *Response) {
				assert.True(t, resp.Success)
				assert.Equal(t, []Track{{Index: 0, Name: "Vox\x07bell"}, {Index: 1, Name: "Drums"}}, resp.Tracks)
			},
		},
		{
			name:  "control byte in message",
			input: "{\"success\":false,\"message\":\"bad\x01name\"}",
			checkFn: func(t *testing.T, resp *Response) {
				assert.False(t, resp.Success)
				assert.Equal(t, "bad\x01name", resp.Message)
			},
		},
		{name: "missing success", input: `{"message":"x"}`, wantErr: true},
		{name: "not json", input: `not json`, wantErr: true},
		{name: "empty", input: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.checkFn != nil {
				tt.checkFn(t, resp)
			}
		})
	}
}

func TestQuoteControlBytes(t *testing.T) {
	assert.Equal(t, `{"a":"x\u0007y"}`, string(quoteControlBytes([]byte("{\"a\":\"x\x07y\"}"))))
	assert.Equal(t, `{"a":"q\"\u0001"}`, string(quoteControlBytes([]byte("{\"a\":\"q\\\"\x01\"}"))))
	assert.Equal(t, "{\n\"a\":1}", string(quoteControlBytes([]byte("{\n\"a\":1}"))), "whitespace between tokens is kept")
}

func TestDecodeResponseLenientKeepsRawBytes(t *testing.T) {
	_, raw, err := DecodeResponseLenient(strings.NewReader("garbage"))
	assert.Error(t, err)
	assert.Equal(t, "garbage", string(raw))
}
