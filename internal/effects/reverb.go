package effects

// Reverb is a small Schroeder reverb: four parallel combs into two
// allpasses.
type Reverb struct {
	combs   [4]combFilter
	allpass [2]allpassFilter
	wet     float64
}

type combFilter struct {
	buf []float64
	pos int
	fb  float64
}

type allpassFilter struct {
	buf []float64
	pos int
	fb  float64
}

// NewReverb creates a reverb.
// roomSize: 0..1 scales the comb lengths
// feedback: 0..0.95 sets the decay
// wet: wet/dry mix 0..1
func NewReverb(sampleRate int, roomSize, feedback, wet float64) *Reverb {
	base := int(float64(sampleRate) * roomSize * 0.05)
	if base < 10 {
		base = 10
	}
	fb := clamp(feedback, 0, 0.95)
	r := &Reverb{wet: clamp(wet, 0, 1)}
	// Mutually detuned comb lengths keep the modes from stacking.
	combLens := [4]int{base, base * 1117 / 1000, base * 1271 / 1000, base * 1437 / 1000}
	for i := range r.combs {
		r.combs[i] = combFilter{buf: make([]float64, combLens[i]), fb: fb}
	}
	apLens := [2]int{base * 347 / 1000, base * 213 / 1000}
	for i := range r.allpass {
		r.allpass[i] = allpassFilter{buf: make([]float64, max(apLens[i], 1)), fb: 0.5}
	}
	return r
}

func (r *Reverb) Process(x float64) float64 {
	var out float64
	for i := range r.combs {
		out += r.combs[i].process(x)
	}
	out *= 0.25
	for i := range r.allpass {
		out = r.allpass[i].process(out)
	}
	return x*(1-r.wet) + out*r.wet
}

func (r *Reverb) Reset() {
	for i := range r.combs {
		clear(r.combs[i].buf)
		r.combs[i].pos = 0
	}
	for i := range r.allpass {
		clear(r.allpass[i].buf)
		r.allpass[i].pos = 0
	}
}

// TailSamples is the length of the longest comb times the number of
// passes it takes to fall about 60 dB.
func (r *Reverb) TailSamples() int {
	longest := len(r.combs[len(r.combs)-1].buf)
	fb := r.combs[0].fb
	passes := 1
	for level := 1.0; level*fb > 0.001 && passes < 256; passes++ {
		level *= fb
	}
	return longest * passes
}

func (c *combFilter) process(in float64) float64 {
	out := c.buf[c.pos]
	c.buf[c.pos] = in + out*c.fb
	c.pos++
	if c.pos >= len(c.buf) {
		c.pos = 0
	}
	return out
}

func (a *allpassFilter) process(in float64) float64 {
	bufOut := a.buf[a.pos]
	out := -in + bufOut
	a.buf[a.pos] = in + bufOut*a.fb
	a.pos++
	if a.pos >= len(a.buf) {
		a.pos = 0
	}
	return out
}
