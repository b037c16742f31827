package synth

// HostRate is the rate the state machine ticks at before downsampling.
const HostRate = 44100

// WaveShape selects the oscillator waveform.
type WaveShape int

const (
	WaveSquare WaveShape = iota
	WaveSawtooth
	WaveSine
	WaveNoise
)

func (w WaveShape) String() string {
	switch w {
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveSine:
		return "sine"
	case WaveNoise:
		return "noise"
	default:
		return "unsupported"
	}
}

// Valid reports whether w is one of the four known shapes. Unsupported
// shapes render silence.
func (w WaveShape) Valid() bool {
	return w >= WaveSquare && w <= WaveNoise
}

// Params is the caller-facing slider set. Values are used as given; only
// SampleRate is checked by Generate.
type Params struct {
	Wave WaveShape

	EnvAttack  float64 // 0..1
	EnvSustain float64 // 0..1
	EnvPunch   float64 // 0..1
	EnvDecay   float64 // 0..1

	BaseFreq  float64 // 0..1
	FreqLimit float64 // 0..1, >0 ends the sound when the pitch falls below it
	FreqRamp  float64 // -1..1
	FreqDRamp float64 // -1..1

	VibStrength float64 // 0..1
	VibSpeed    float64 // 0..1

	ArpMod   float64 // -1..1
	ArpSpeed float64 // 0..1

	Duty     float64 // 0..1
	DutyRamp float64 // -1..1

	RepeatSpeed float64 // 0..1

	PhaOffset float64 // -1..1
	PhaRamp   float64 // -1..1

	LPFFreq      float64 // 0..1, 1 disables the low-pass
	LPFRamp      float64 // -1..1
	LPFResonance float64 // 0..1
	HPFFreq      float64 // 0..1
	HPFRamp      float64 // -1..1

	SoundVol   float64
	SampleRate float64 // target output rate in Hz
}

// Frame is one stereo output sample. Both channels always carry the same
// value.
type Frame [2]float64

// Buffer is the finished output of one generation run.
type Buffer []Frame

// Mono returns the left channel.
func (b Buffer) Mono() []float64 {
	out := make([]float64, len(b))
	for i, f := range b {
		out[i] = f[0]
	}
	return out
}

// Interleaved returns the buffer as interleaved stereo float32, the layout
// the audio backends and the WAV encoder consume.
func (b Buffer) Interleaved() []float32 {
	out := make([]float32, len(b)*2)
	for i, f := range b {
		out[i*2] = float32(f[0])
		out[i*2+1] = float32(f[1])
	}
	return out
}

// FromMono duplicates mono samples into a stereo buffer.
func FromMono(samples []float64) Buffer {
	out := make(Buffer, len(samples))
	for i, s := range samples {
		out[i] = Frame{s, s}
	}
	return out
}
