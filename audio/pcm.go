package audio

import (
	"io"
	"math"

	"github.com/gopxl/beep"
)

const bytesPerFrame = 4

// PCMReader encodes an endless streamer as signed 16-bit little-endian
// stereo, the format ebiten's audio players consume.
type PCMReader struct {
	streamer beep.Streamer
	buf      [][2]float64
}

func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{streamer: s}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]
	n, ok := r.streamer.Stream(buf)
	if !ok && n == 0 {
		if err := r.streamer.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	for i, s := range buf[:n] {
		for ch, v := range s {
			sample := int16(math.Round(max(-1, min(1, v)) * math.MaxInt16))
			base := i*bytesPerFrame + ch*2
			p[base] = byte(sample)
			p[base+1] = byte(sample >> 8)
		}
	}
	return n * bytesPerFrame, nil
}

// Seek accepts the zero-offset probes players issue; the stream has no
// position to move to.
func (r *PCMReader) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 {
		switch whence {
		case io.SeekStart, io.SeekCurrent, io.SeekEnd:
			return 0, nil
		}
	}
	return 0, io.ErrUnexpectedEOF
}
