// Package audio plays finished sample buffers through ebiten's audio
// context or directly through oto.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal when playback has ended.
// When Finished returns true, the stream will return io.EOF on the next Read.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

// Output is a started-or-paused playback handle.
type Output interface {
	Play()
	Pause()
	IsPlaying() bool
	Stop() error
}

// StreamReader turns a SampleSource into interleaved stereo float32LE bytes.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fs, ok := r.source.(FinishingSource); ok && fs.Finished() {
		return 0, io.EOF
	}
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i, s := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * 8, nil
}

func (r *StreamReader) Close() error { return nil }

// BufferSource replays a fixed interleaved stereo buffer once, followed by
// a short stretch of silence so the device drains the last real samples
// before OnDone fires.
type BufferSource struct {
	samples  []float32
	pos      int
	volume   atomic.Uint64
	finished atomic.Bool
	once     sync.Once
	onDone   func()
}

// NewBufferSource wraps interleaved samples. padFrames of silence are
// appended; onDone may be nil.
func NewBufferSource(samples []float32, padFrames int, onDone func()) *BufferSource {
	if padFrames < 0 {
		padFrames = 0
	}
	padded := make([]float32, len(samples)+padFrames*2)
	copy(padded, samples)
	s := &BufferSource{samples: padded, onDone: onDone}
	s.SetVolume(1)
	return s
}

// SetVolume sets the gain applied while reading. Safe to call from any
// goroutine.
func (s *BufferSource) SetVolume(v float64) {
	s.volume.Store(math.Float64bits(v))
}

func (s *BufferSource) Volume() float64 {
	return math.Float64frombits(s.volume.Load())
}

func (s *BufferSource) Process(dst []float32) {
	gain := float32(s.Volume())
	n := copy(dst, s.samples[s.pos:])
	for i := 0; i < n; i++ {
		dst[i] *= gain
	}
	clear(dst[n:])
	s.pos += n
	if s.pos >= len(s.samples) {
		s.finished.Store(true)
		s.once.Do(func() {
			if s.onDone != nil {
				s.onDone()
			}
		})
	}
}

func (s *BufferSource) Finished() bool {
	return s.finished.Load()
}

type ebitenOutput struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// NewEbiten opens source on the process-wide ebiten audio context. The
// context's rate is fixed by the first call.
func NewEbiten(sampleRate int, source SampleSource) (Output, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &ebitenOutput{
		player: pl,
		reader: reader,
	}, nil
}

func (o *ebitenOutput) Play()           { o.player.Play() }
func (o *ebitenOutput) Pause()          { o.player.Pause() }
func (o *ebitenOutput) IsPlaying() bool { return o.player.IsPlaying() }

func (o *ebitenOutput) Stop() error {
	o.player.Pause()
	if err := o.player.Close(); err != nil {
		return err
	}
	return o.reader.Close()
}
