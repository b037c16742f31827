package sfxr

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	intfx "github.com/cbegin/sfxr-go/internal/effects"
	"github.com/cbegin/sfxr-go/internal/synth"
)

// RenderInterleaved generates p and returns interleaved stereo float32
// samples. A sample-limit error is returned together with the truncated
// samples.
func RenderInterleaved(p Params, opts ...Option) ([]float32, error) {
	buf, err := Generate(p, opts...)
	if buf == nil {
		return nil, err
	}
	return buf.Interleaved(), err
}

// ApplyEffects runs buf through the chain described by directives (see
// effects.Parse) and returns a new buffer extended by the chain's tail.
func ApplyEffects(buf Buffer, directives string, sampleRate int) (Buffer, error) {
	chain, err := intfx.Parse(directives, sampleRate)
	if err != nil {
		return nil, err
	}
	if chain.Len() == 0 {
		return buf, nil
	}
	mono := buf.Mono()
	mono = append(mono, make([]float64, chain.TailSamples())...)
	chain.ProcessBlock(mono)
	return synth.FromMono(mono), nil
}

func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	out := make([]byte, 44+dataSize)
	putWAVHeader(out, 3, sampleRate, channels, 32, dataSize)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}

func putWAVHeader(out []byte, format uint16, sampleRate, channels, bits, dataSize int) {
	blockAlign := channels * bits / 8
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], format)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], uint16(bits))
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
}

// EncodeWAVPCM16 writes buf as a 16-bit stereo PCM WAV file.
func EncodeWAVPCM16(buf Buffer, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	w := &memWriteSeeker{}
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(w, Streamer(buf), format); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// Streamer exposes a finished buffer to beep pipelines.
func Streamer(buf Buffer) beep.StreamSeeker {
	return &bufferStreamer{buf: buf}
}

type bufferStreamer struct {
	buf Buffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n := 0
	for n < len(samples) && s.pos < len(s.buf) {
		samples[n] = s.buf[s.pos]
		n++
		s.pos++
	}
	return n, true
}

func (s *bufferStreamer) Err() error    { return nil }
func (s *bufferStreamer) Len() int      { return len(s.buf) }
func (s *bufferStreamer) Position() int { return s.pos }

func (s *bufferStreamer) Seek(p int) error {
	if p < 0 || p > len(s.buf) {
		return errors.New("seek position out of range")
	}
	s.pos = p
	return nil
}

// memWriteSeeker lets wav.Encode patch its header in memory so output can
// go to a pipe.
type memWriteSeeker struct {
	buf []byte
	pos int
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	n := copy(m.buf[m.pos:], p)
	m.pos += n
	return n, nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(m.pos)
	case io.SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, errors.New("invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("negative seek position")
	}
	m.pos = int(next)
	return next, nil
}
