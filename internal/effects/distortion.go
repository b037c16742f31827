package effects

import "math"

// Distortion is tanh waveshaping with pre/post gain and an optional
// one-pole low-pass to tame the added harmonics.
type Distortion struct {
	preGain  float64
	postGain float64
	lpfAlpha float64
	lpf      float64
}

// NewDistortion creates a distortion effect.
// preGain: drive into the shaper
// postGain: output level
// lpfCutoff: low-pass cutoff in Hz (0 = off)
func NewDistortion(sampleRate int, preGain, postGain, lpfCutoff float64) *Distortion {
	d := &Distortion{preGain: preGain, postGain: postGain}
	if lpfCutoff > 0 && lpfCutoff < float64(sampleRate)/2 {
		rc := 1.0 / (2.0 * math.Pi * lpfCutoff)
		dt := 1.0 / float64(sampleRate)
		d.lpfAlpha = dt / (rc + dt)
	}
	return d
}

func (d *Distortion) Process(x float64) float64 {
	x = math.Tanh(x*d.preGain) * d.postGain
	if d.lpfAlpha > 0 {
		d.lpf += d.lpfAlpha * (x - d.lpf)
		x = d.lpf
	}
	return x
}

func (d *Distortion) Reset() {
	d.lpf = 0
}

// Bitcrush quantizes amplitude to 2^bits levels and holds every sample for
// hold ticks, the usual lo-fi treatment for chip sounds.
type Bitcrush struct {
	levels float64
	hold   int
	count  int
	held   float64
}

func NewBitcrush(bits float64, hold int) *Bitcrush {
	if bits < 1 {
		bits = 1
	}
	if hold < 1 {
		hold = 1
	}
	return &Bitcrush{levels: math.Exp2(bits - 1), hold: hold}
}

func (b *Bitcrush) Process(x float64) float64 {
	if b.count == 0 {
		b.held = math.Round(x*b.levels) / b.levels
	}
	b.count++
	if b.count >= b.hold {
		b.count = 0
	}
	return b.held
}

func (b *Bitcrush) Reset() {
	b.count = 0
	b.held = 0
}
