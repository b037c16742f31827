package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cbegin/sfxr-go/internal/rng"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// Oversampling is both the sub-sample factor and the shortest allowed
	// oscillator period.
	Oversampling = 8

	flangerSize = 1024
	noiseSize   = 32
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrSampleLimit      = errors.New("sample limit reached")
)

// Status is the outcome of one Step.
type Status int

const (
	// StatusSkip means the tick advanced state but emitted nothing.
	StatusSkip Status = iota
	StatusEmit
	StatusDone
)

// Config carries the host-side knobs of a run.
type Config struct {
	// Random feeds the noise table. Nil uses rng.Default.
	Random rng.Source
	// HostRate is the internal tick rate. Zero uses HostRate.
	HostRate float64
	// MaxSamples caps the number of host ticks. Zero means no cap.
	MaxSamples int
}

// Generator is the per-sample state machine for one sound.
type Generator struct {
	params  Params
	st      State
	rand    rng.Source
	divisor int
	tick    int
	done    bool

	phase      float64
	noise      [noiseSize]float64
	flanger    [flangerSize]float64
	flangerPos int

	fltp   float64
	fltdp  float64
	fltphp float64

	acc      float64
	accCount int
}

// NewGenerator fully initializes a generator. It does not validate p; use
// Generate for the checked path.
func NewGenerator(p Params, cfg Config) *Generator {
	src := cfg.Random
	if src == nil {
		src = rng.Default
	}
	host := cfg.HostRate
	if host == 0 {
		host = HostRate
	}
	g := &Generator{
		params:  p,
		st:      FullInit(p),
		rand:    src,
		divisor: downsampleDivisor(host, p.SampleRate),
	}
	if p.Wave == WaveNoise {
		g.refreshNoise()
	}
	return g
}

func downsampleDivisor(host, target float64) int {
	d := math.Floor(host / target)
	if !(d >= 1) {
		return 1
	}
	if d > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(d)
}

// State returns a copy of the current run state.
func (g *Generator) State() State { return g.st }

// Ticks returns how many host ticks have run.
func (g *Generator) Ticks() int { return g.tick }

// Done reports whether the sound has ended.
func (g *Generator) Done() bool { return g.done }

// Step advances the machine by one host tick.
func (g *Generator) Step() (Frame, Status) {
	if g.done {
		return Frame{}, StatusDone
	}
	g.tick++
	s := &g.st

	if s.RepeatTimer != 0 {
		s.RepeatElapsed++
		if s.RepeatElapsed >= s.RepeatTimer {
			s.RepeatElapsed = 0
			RepeatInit(g.params, s)
		}
	}

	if s.ArpTimer != 0 && g.tick >= s.ArpTimer {
		s.ArpTimer = 0
		s.Period *= s.ArpMul
	}

	s.PeriodMul += s.PeriodMulD
	s.Period *= s.PeriodMul
	if s.Period > s.MaxPeriod {
		s.Period = s.MaxPeriod
		if s.CutoffEnabled {
			return g.finish()
		}
	}

	period := s.Period
	if s.VibAmp > 0 {
		s.VibPhase += s.VibSpeed
		period = s.Period * (1 + math.Sin(s.VibPhase)*s.VibAmp)
	}
	iperiod := math.Floor(period)
	if !(iperiod >= Oversampling) {
		iperiod = Oversampling
	}

	s.DutyCycle = clamp(s.DutyCycle+s.DutySlide, 0, 0.5)

	s.EnvElapsed++
	if s.EnvElapsed > s.EnvLength[s.EnvStage] {
		s.EnvElapsed = 0
		s.EnvStage++
		if s.EnvStage > 2 {
			return g.finish()
		}
	}
	length := s.EnvLength[s.EnvStage]
	if length == 0 {
		return Frame{}, StatusSkip
	}
	env := envelopeValue(s.EnvStage, float64(s.EnvElapsed)/float64(length), s.EnvPunch)

	s.FlangerOffset += s.FlangerSlide
	delay := flangerDelay(s.FlangerOffset)

	if s.HPFRamp != 0 {
		s.HPF = clamp(s.HPF*s.HPFRamp, 0.00001, 0.1)
	}

	var sub float64
	for i := 0; i < Oversampling-1; i++ {
		g.phase++
		if g.phase >= iperiod {
			g.phase = math.Mod(g.phase, iperiod)
			if g.params.Wave == WaveNoise {
				g.refreshNoise()
			}
		}
		sample := g.oscillate(g.phase / iperiod)

		prev := g.fltp
		s.LPFCutoff = clamp(s.LPFCutoff*s.LPFRamp, 0, 0.1)
		if s.LPFEnabled {
			g.fltdp += (sample - g.fltp) * s.LPFCutoff
			g.fltdp -= g.fltdp * s.LPFDamping
		} else {
			g.fltp = sample
			g.fltdp = 0
		}
		g.fltp += g.fltdp

		g.fltphp += g.fltp - prev
		g.fltphp -= g.fltphp * s.HPF
		sample = g.fltphp

		g.flanger[g.flangerPos] = sample
		sample += g.flanger[(g.flangerPos-delay+flangerSize)%flangerSize]
		g.flangerPos = (g.flangerPos + 1) % flangerSize

		sub += sample * env
	}

	g.acc += sub
	g.accCount++
	if g.accCount < g.divisor {
		return Frame{}, StatusSkip
	}
	avg := g.acc / float64(g.accCount)
	g.acc = 0
	g.accCount = 0
	v := avg / Oversampling * s.Gain
	return Frame{v, v}, StatusEmit
}

func (g *Generator) finish() (Frame, Status) {
	g.done = true
	return Frame{}, StatusDone
}

func (g *Generator) oscillate(fp float64) float64 {
	switch g.params.Wave {
	case WaveSquare:
		if fp < g.st.DutyCycle {
			return 0.5
		}
		return -0.5
	case WaveSawtooth:
		duty := g.st.DutyCycle
		if fp < duty {
			return -1 + 2*fp/duty
		}
		return 1 - 2*(fp-duty)/(1-duty)
	case WaveSine:
		return math.Sin(fp * 2 * math.Pi)
	case WaveNoise:
		idx := int(fp * noiseSize)
		if idx < 0 || idx >= noiseSize {
			idx = noiseSize - 1
		}
		return g.noise[idx]
	default:
		return 0
	}
}

func (g *Generator) refreshNoise() {
	for i := range g.noise {
		g.noise[i] = rng.Signed(g.rand)
	}
}

// flangerDelay is the tap distance for offset, limited to the line length.
func flangerDelay(offset float64) int {
	d := math.Abs(math.Floor(offset))
	if !(d <= flangerSize-1) {
		return flangerSize - 1
	}
	return int(d)
}

func envelopeValue(stage int, f, punch float64) float64 {
	switch stage {
	case 0:
		return f
	case 1:
		return 1 + (1-f)*2*punch
	default:
		return 1 - f
	}
}

// Generate runs p to completion. When cfg.MaxSamples stops the run early
// the truncated buffer is returned with ErrSampleLimit and its last 10 ms
// are faded out.
func Generate(p Params, cfg Config) (Buffer, error) {
	if !(p.SampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidParameter, p.SampleRate)
	}
	if cfg.HostRate < 0 || math.IsNaN(cfg.HostRate) {
		return nil, fmt.Errorf("%w: host rate must be positive, got %v", ErrInvalidParameter, cfg.HostRate)
	}
	g := NewGenerator(p, cfg)
	var out []float64
	for {
		f, st := g.Step()
		if cfg.MaxSamples > 0 && g.Ticks() > cfg.MaxSamples && st != StatusDone {
			// The tick past the cap only tells us whether the sound was
			// already over; its output is dropped.
			declick(out, int(p.SampleRate/100))
			return FromMono(out), fmt.Errorf("%w after %d ticks", ErrSampleLimit, cfg.MaxSamples)
		}
		switch st {
		case StatusDone:
			return FromMono(out), nil
		case StatusEmit:
			out = append(out, f[0])
		}
	}
}

// declick ramps the last n samples linearly down to zero.
func declick(samples []float64, n int) {
	if n > len(samples) {
		n = len(samples)
	}
	if n <= 0 {
		return
	}
	ramp := make([]float64, n)
	for i := range ramp {
		ramp[i] = float64(n-1-i) / float64(n)
	}
	vecmath.MulBlockInPlace(samples[len(samples)-n:], ramp)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
