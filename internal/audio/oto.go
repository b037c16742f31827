package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

type otoOutput struct {
	mu     sync.Mutex
	player *oto.Player
	reader *StreamReader
}

var (
	otoOnce       sync.Once
	otoContext    *oto.Context
	otoContextErr error
	otoSampleRate int
)

func sharedOtoContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		otoSampleRate = sampleRate
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoContextErr = err
			return
		}
		<-ready
		otoContext = ctx
	})
	if otoContextErr != nil {
		return nil, otoContextErr
	}
	if otoSampleRate != sampleRate {
		return nil, fmt.Errorf("oto context already initialized at %d Hz (requested %d Hz)", otoSampleRate, sampleRate)
	}
	return otoContext, nil
}

// NewOto opens source directly on an oto context. Oto allows one context
// per process, so this cannot be mixed with NewEbiten.
func NewOto(sampleRate int, source SampleSource) (Output, error) {
	ctx, err := sharedOtoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	return &otoOutput{
		player: ctx.NewPlayer(reader),
		reader: reader,
	}, nil
}

func (o *otoOutput) Play() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.player.Play()
}

func (o *otoOutput) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.player.Pause()
}

func (o *otoOutput) IsPlaying() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.player.IsPlaying()
}

func (o *otoOutput) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.player.Pause()
	if err := o.player.Close(); err != nil {
		return err
	}
	return o.reader.Close()
}
