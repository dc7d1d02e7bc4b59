package sim

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
)

const (
	wavSampleRate    = 8000
	wavBitsPerSample = 16
	wavChannels      = 1
)

// writeSilentWAV writes a mono 16-bit PCM file of the given duration.
func writeSilentWAV(path string, seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	blockAlign := wavChannels * wavBitsPerSample / 8
	frames := int(math.Round(seconds * wavSampleRate))
	dataSize := uint32(frames * blockAlign)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + dataSize),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(wavChannels),
		uint32(wavSampleRate),
		uint32(wavSampleRate * blockAlign),
		uint16(blockAlign),
		uint16(wavBitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			_ = f.Close()
			return err
		}
	}
	if _, err := w.Write(make([]byte, dataSize)); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// wavDuration reads the duration of a PCM WAV file from its fmt and data
// chunks.
func wavDuration(path string) (float64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return 0, false
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0, false
	}

	var byteRate uint32
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(f, hdr[:]); err != nil {
			return 0, false
		}
		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])

		switch id {
		case "fmt ":
			buf := make([]byte, size)
			if _, err := io.ReadFull(f, buf); err != nil || size < 16 {
				return 0, false
			}
			byteRate = binary.LittleEndian.Uint32(buf[8:12])
		case "data":
			if byteRate == 0 {
				return 0, false
			}
			return float64(size) / float64(byteRate), true
		default:
			if _, err := f.Seek(int64(size+size%2), io.SeekCurrent); err != nil {
				return 0, false
			}
		}
	}
}
