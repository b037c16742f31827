// Package sfxr synthesizes retro sound effects from a small set of slider
// parameters, in the manner of the classic sfxr tool.
package sfxr

import (
	"fmt"

	"github.com/cbegin/sfxr-go/internal/preset"
	"github.com/cbegin/sfxr-go/internal/rng"
	"github.com/cbegin/sfxr-go/internal/synth"
)

type (
	Params    = synth.Params
	WaveShape = synth.WaveShape
	Frame     = synth.Frame
	Buffer    = synth.Buffer
)

const (
	WaveSquare   = synth.WaveSquare
	WaveSawtooth = synth.WaveSawtooth
	WaveSine     = synth.WaveSine
	WaveNoise    = synth.WaveNoise
)

// HostRate is the internal tick rate sounds are synthesized at before
// being averaged down to Params.SampleRate.
const HostRate = synth.HostRate

// DefaultMaxSamples bounds a run to one minute of host ticks. Slider values
// in their documented ranges finish well inside it.
const DefaultMaxSamples = 60 * HostRate

var (
	// ErrInvalidParameter reports a non-positive sample rate.
	ErrInvalidParameter = synth.ErrInvalidParameter
	// ErrSampleLimit is returned with the truncated buffer when the sample
	// limit ends a sound early.
	ErrSampleLimit = synth.ErrSampleLimit
)

// RandomSource supplies uniform floats in [0, 1). *math/rand.Rand
// satisfies it.
type RandomSource = rng.Source

// NewSeededSource returns a reproducible RandomSource.
func NewSeededSource(seed int64) RandomSource {
	return rng.NewSeeded(seed)
}

type Option func(*config)

type config struct {
	random     rng.Source
	hostRate   float64
	maxSamples int
}

func defaultConfig() config {
	return config{
		random:     rng.Default,
		hostRate:   HostRate,
		maxSamples: DefaultMaxSamples,
	}
}

// WithRandom sets the source the noise waveform draws from.
func WithRandom(src RandomSource) Option {
	return func(cfg *config) {
		if src != nil {
			cfg.random = src
		}
	}
}

// WithSeed is WithRandom with a freshly seeded source.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.random = rng.NewSeeded(seed)
	}
}

// WithMaxSamples caps a run at n host ticks. Zero removes the cap, which
// lets a pathological parameter set run forever.
func WithMaxSamples(n int) Option {
	return func(cfg *config) {
		cfg.maxSamples = n
	}
}

// WithHostRate overrides the internal tick rate used to derive the
// downsampling factor.
func WithHostRate(rate float64) Option {
	return func(cfg *config) {
		cfg.hostRate = rate
	}
}

// Generate synthesizes p to completion and returns every frame.
func Generate(p Params, opts ...Option) (Buffer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hostRate <= 0 {
		return nil, fmt.Errorf("%w: host rate must be positive, got %v", ErrInvalidParameter, cfg.hostRate)
	}
	return synth.Generate(p, synth.Config{
		Random:     cfg.random,
		HostRate:   cfg.hostRate,
		MaxSamples: cfg.maxSamples,
	})
}

// DefaultParams returns the neutral starting sound: a short square blip
// with the filters open.
func DefaultParams() Params {
	return preset.Default()
}

// Preset builds one of the named generator sounds (pickup, laser,
// explosion, powerup, hit, jump, blip, random, tone) using src for its
// random choices. A nil src uses the process-wide source.
func Preset(name string, src RandomSource) (Params, error) {
	if src == nil {
		src = rng.Default
	}
	return preset.Generate(name, src)
}

// PresetNames lists the names Preset accepts.
func PresetNames() []string {
	return preset.Names()
}

// Mutate returns a slightly perturbed copy of p.
func Mutate(p Params, src RandomSource) Params {
	if src == nil {
		src = rng.Default
	}
	return preset.Mutate(p, src)
}

// ParseSettings reads a jsfxr-style comma-separated parameter list.
func ParseSettings(s string) (Params, error) {
	return preset.ParseSettings(s)
}

// FormatSettings writes p as a jsfxr-style parameter list.
func FormatSettings(p Params) string {
	return preset.FormatSettings(p)
}

// LoadLuaPreset runs a Lua preset script and returns the table it yields.
func LoadLuaPreset(path string) (Params, error) {
	return preset.LoadLua(path)
}
