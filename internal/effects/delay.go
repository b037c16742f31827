package effects

// Echo is a single-tap feedback delay.
type Echo struct {
	buf      []float64
	pos      int
	feedback float64
	wet      float64
}

// NewEcho creates an echo.
// delayMs: delay time in milliseconds
// feedback: feedback amount 0..0.95
// wet: wet/dry mix 0..1
func NewEcho(sampleRate int, delayMs, feedback, wet float64) *Echo {
	samples := int(delayMs * float64(sampleRate) / 1000.0)
	if samples < 1 {
		samples = 1
	}
	return &Echo{
		buf:      make([]float64, samples),
		feedback: clamp(feedback, 0, 0.95),
		wet:      clamp(wet, 0, 1),
	}
}

func (e *Echo) Process(x float64) float64 {
	del := e.buf[e.pos]
	e.buf[e.pos] = x + del*e.feedback
	e.pos++
	if e.pos >= len(e.buf) {
		e.pos = 0
	}
	return x*(1-e.wet) + del*e.wet
}

func (e *Echo) Reset() {
	clear(e.buf)
	e.pos = 0
}

// TailSamples estimates how long the echo rings after the input stops,
// counting repeats down to about -60 dB.
func (e *Echo) TailSamples() int {
	n := len(e.buf)
	level := 1.0
	repeats := 1
	for level*e.feedback > 0.001 && repeats < 64 {
		level *= e.feedback
		repeats++
	}
	return n * repeats
}
