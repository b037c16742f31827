package sfxr

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	intaudio "github.com/cbegin/sfxr-go/internal/audio"
)

// Backend selects the audio output used by Player.
type Backend string

const (
	BackendEbiten Backend = "ebiten"
	BackendOto    Backend = "oto"
)

// ParseBackend maps a backend name to its constant.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendEbiten, BackendOto:
		return b, nil
	}
	return "", fmt.Errorf("unknown backend %q (expected ebiten|oto)", name)
}

type PlayerOption func(*playerConfig)

type playerConfig struct {
	backend Backend
	padMs   int
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{backend: BackendEbiten, padMs: 100}
}

func WithBackend(b Backend) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.backend = b
	}
}

// WithTailPadding sets how much silence follows each sound before Wait
// returns. 100 ms by default.
func WithTailPadding(ms int) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.padMs = ms
	}
}

// Player plays finished buffers. The audio device is opened on the first
// Play, so constructing a Player never touches hardware.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	backend    Backend
	padFrames  int
	audio      intaudio.Output
	source     *intaudio.BufferSource
	volume     float64

	// doneMu guards done. The audio thread takes it from the source's
	// completion callback, so it is never held across backend calls.
	doneMu sync.Mutex
	done   chan struct{}
}

func NewPlayer(sampleRate int, opts ...PlayerOption) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, err := ParseBackend(string(cfg.backend)); err != nil {
		return nil, err
	}
	if cfg.padMs < 0 {
		cfg.padMs = 0
	}
	return &Player{
		sampleRate: sampleRate,
		backend:    cfg.backend,
		padFrames:  sampleRate * cfg.padMs / 1000,
		volume:     1,
	}, nil
}

func (p *Player) Backend() Backend { return p.backend }

func (p *Player) SampleRate() int { return p.sampleRate }

// Play starts buf from the beginning, replacing whatever was playing. buf
// should have been generated at the player's sample rate.
func (p *Player) Play(buf Buffer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	done := make(chan struct{})
	p.swapDone(done)

	source := intaudio.NewBufferSource(buf.Interleaved(), p.padFrames, func() {
		p.signalDone(done)
	})
	source.SetVolume(p.volume)

	var (
		out intaudio.Output
		err error
	)
	switch p.backend {
	case BackendOto:
		out, err = intaudio.NewOto(p.sampleRate, source)
	default:
		out, err = intaudio.NewEbiten(p.sampleRate, source)
	}
	if err != nil {
		p.signalDone(done)
		return err
	}
	if p.audio != nil {
		_ = p.audio.Stop()
	}
	p.audio = out
	p.source = source
	p.audio.Play()
	return nil
}

// swapDone installs next as the current playback and releases any Wait on
// the previous one.
func (p *Player) swapDone(next chan struct{}) {
	p.doneMu.Lock()
	prev := p.done
	p.done = next
	p.doneMu.Unlock()
	if prev != nil {
		close(prev)
	}
}

// signalDone closes done if it is still the current playback.
func (p *Player) signalDone(done chan struct{}) {
	p.doneMu.Lock()
	if p.done != done {
		p.doneMu.Unlock()
		return
	}
	p.done = nil
	p.doneMu.Unlock()
	close(done)
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	p.source = nil
	p.mu.Unlock()
	p.swapDone(nil)
	return err
}

// Wait blocks until the current sound has been handed to the device,
// including its tail padding. It returns immediately if nothing is playing
// or playback was stopped.
func (p *Player) Wait() {
	p.doneMu.Lock()
	done := p.done
	p.doneMu.Unlock()
	if done != nil {
		<-done
	}
}

// SetMasterVolume sets runtime volume scalar. 1.0 is default.
func (p *Player) SetMasterVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
	if p.source != nil {
		p.source.SetVolume(volume)
	}
}

func (p *Player) MasterVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}
