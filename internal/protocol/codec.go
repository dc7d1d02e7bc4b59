package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DecodeString returns the raw text between the quotes that follow the first
// "key" token and its colon. The value is not unescaped. Any missing anchor
// yields ("", false).
func DecodeString(doc, key string) (string, bool) {
	pos, ok := valueStart(doc, key)
	if !ok {
		return "", false
	}
	open := strings.IndexByte(doc[pos:], '"')
	if open < 0 {
		return "", false
	}
	start := pos + open + 1
	end := strings.IndexByte(doc[start:], '"')
	if end < 0 {
		return "", false
	}
	return doc[start : start+end], true
}

// DecodeInt returns the integer that follows the first "key" token and its
// colon. Leading whitespace is skipped. The value must fit in 32 bits.
func DecodeInt(doc, key string) (int, bool) {
	pos, ok := valueStart(doc, key)
	if !ok {
		return 0, false
	}
	for pos < len(doc) && isSpace(doc[pos]) {
		pos++
	}
	end := pos
	for end < len(doc) && (doc[end] == '-' || isDigit(doc[end])) {
		end++
	}
	if end == pos {
		return 0, false
	}

	// The scan above accepts any run of '-' and digits; only its leading
	// signed-number prefix is meaningful.
	run := doc[pos:end]
	n := 0
	if run[0] == '-' {
		n = 1
	}
	for n < len(run) && isDigit(run[n]) {
		n++
	}
	v, err := strconv.ParseInt(run[:n], 10, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func valueStart(doc, key string) (int, bool) {
	needle := `"` + key + `"`
	pos := strings.Index(doc, needle)
	if pos < 0 {
		return 0, false
	}
	pos += len(needle)
	colon := strings.IndexByte(doc[pos:], ':')
	if colon < 0 {
		return 0, false
	}
	return pos + colon + 1, true
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Escape replaces backslash, double quote, newline, carriage return and tab
// with their two-character escapes. Every other byte is copied unchanged.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Unescape reverses Escape and also accepts \/. Unknown sequences are kept
// as written, backslash included (\x stays \x), because the host plugin's
// unescaper does the same. Dropping the backslash would change paths that
// both sides already agree on.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '/':
			b.WriteByte('/')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}

// MakeError builds {"success":false,"message":"<msg>"}.
func MakeError(msg string) string {
	return `{"success":false,"message":"` + Escape(msg) + `"}`
}

// MakeOk builds {"success":true,"message":"<msg>"}.
func MakeOk(msg string) string {
	return `{"success":true,"message":"` + Escape(msg) + `"}`
}

// MakeTracks builds the GET_TRACKS response. It carries no message field.
func MakeTracks(tracks []Track) string {
	var b strings.Builder
	b.WriteString(`{"success":true,"tracks":[`)
	for i, t := range tracks {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"index":`)
		b.WriteString(strconv.Itoa(t.Index))
		b.WriteString(`,"name":"`)
		b.WriteString(Escape(t.Name))
		b.WriteString(`"}`)
	}
	b.WriteString(`]}`)
	return b.String()
}

// MakeRendered builds the RENDER_TRACK success response, echoing the output
// path as both message and outputPath.
func MakeRendered(outputPath string) string {
	esc := Escape(outputPath)
	return `{"success":true,"message":"` + esc + `","outputPath":"` + esc + `"}`
}

// ParseRequest extracts the known command fields from a command document.
// Path fields are unescaped; a missing trackIndex is reported as -1.
func ParseRequest(doc string) Request {
	req := Request{TrackIndex: -1}
	req.Command, _ = DecodeString(doc, "command")
	if idx, ok := DecodeInt(doc, "trackIndex"); ok {
		req.TrackIndex = idx
		req.HasTrackIndex = true
	}
	if s, ok := DecodeString(doc, "audioPath"); ok {
		req.AudioPath = Unescape(s)
	}
	if s, ok := DecodeString(doc, "outputPath"); ok {
		req.OutputPath = Unescape(s)
	}
	return req
}

// EncodeRequest writes req as a flat command document. Only the fields the
// command uses are emitted.
func EncodeRequest(w io.Writer, req *Request) error {
	if req == nil || req.Command == "" {
		return fmt.Errorf("request has no command")
	}

	var b strings.Builder
	b.WriteString(`{"command":"`)
	b.WriteString(Escape(req.Command))
	b.WriteByte('"')
	if NeedsTrackIndex(req.Command) {
		b.WriteString(`,"trackIndex":`)
		b.WriteString(strconv.Itoa(req.TrackIndex))
	}
	if req.AudioPath != "" {
		b.WriteString(`,"audioPath":"`)
		b.WriteString(Escape(req.AudioPath))
		b.WriteByte('"')
	}
	if req.OutputPath != "" {
		b.WriteString(`,"outputPath":"`)
		b.WriteString(Escape(req.OutputPath))
		b.WriteByte('"')
	}
	b.WriteByte('}')

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return nil
}

// DecodeResponse reads a response document from r.
func DecodeResponse(r io.Reader) (*Response, error) {
	resp, _, err := DecodeResponseLenient(r)
	return resp, err
}

// DecodeResponseLenient is like DecodeResponse but also returns the raw bytes.
// The bridge escapes only \ " \n \r \t, so other control bytes inside
// string values are quoted before decoding. Documents that still are not
// strict JSON fall back to the field scanner.
func DecodeResponseLenient(r io.Reader) (*Response, []byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, data, fmt.Errorf("response is empty")
	}

	var resp Response
	if jerr := json.Unmarshal(quoteControlBytes(trimmed), &resp); jerr == nil {
		if !bytes.Contains(trimmed, []byte(`"success"`)) {
			return nil, data, fmt.Errorf("response missing required field: success")
		}
		return &resp, data, nil
	} else if !bytes.HasPrefix(trimmed, []byte(`{"success":`)) {
		return nil, data, fmt.Errorf("response is not valid JSON: %w", jerr)
	}

	return scanResponse(string(trimmed)), data, nil
}

// quoteControlBytes rewrites raw bytes below 0x20 inside string literals as
// \u00XX escapes. Bytes outside strings are left for the decoder to judge.
func quoteControlBytes(doc []byte) []byte {
	var out []byte
	inString, escaped := false, false
	for i, c := range doc {
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString && c < 0x20:
			if out == nil {
				out = make([]byte, 0, len(doc)+16)
				out = append(out, doc[:i]...)
			}
			out = fmt.Appendf(out, `\u%04x`, c)
			continue
		}
		if out != nil {
			out = append(out, c)
		}
	}
	if out == nil {
		return doc
	}
	return out
}

func scanResponse(doc string) *Response {
	resp := &Response{Success: strings.HasPrefix(doc, `{"success":true`)}
	if s, ok := DecodeString(doc, "message"); ok {
		resp.Message = Unescape(s)
	}
	if s, ok := DecodeString(doc, "outputPath"); ok {
		resp.OutputPath = Unescape(s)
	}
	return resp
}
