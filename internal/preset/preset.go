// Package preset builds parameter sets: the classic generator buttons,
// random mutation, jsfxr settings strings and Lua preset scripts.
package preset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cbegin/sfxr-go/internal/rng"
	"github.com/cbegin/sfxr-go/internal/synth"
)

// Default is the neutral starting sound every generator builds on.
func Default() synth.Params {
	return synth.Params{
		Wave:       synth.WaveSquare,
		BaseFreq:   0.3,
		EnvSustain: 0.3,
		EnvDecay:   0.4,
		LPFFreq:    1,
		SoundVol:   0.5,
		SampleRate: synth.HostRate,
	}
}

type generatorFunc func(src rng.Source) synth.Params

var generators = map[string]generatorFunc{
	"pickup":    Pickup,
	"laser":     Laser,
	"explosion": Explosion,
	"powerup":   Powerup,
	"hit":       Hit,
	"jump":      Jump,
	"blip":      Blip,
	"random":    Random,
	"tone":      func(rng.Source) synth.Params { return Tone() },
}

var aliases = map[string]string{
	"coin":   "pickup",
	"shoot":  "laser",
	"hurt":   "hit",
	"select": "blip",
}

// Names returns the canonical generator names, sorted.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate runs the named generator.
func Generate(name string, src rng.Source) (synth.Params, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	gen, ok := generators[key]
	if !ok {
		return synth.Params{}, fmt.Errorf("unknown preset %q (expected one of %s)", name, strings.Join(Names(), "|"))
	}
	return gen(src), nil
}

// frnd draws a float in [0, r).
func frnd(src rng.Source, r float64) float64 {
	return src.Float64() * r
}

// rnd draws an integer in [0, n].
func rnd(src rng.Source, n int) int {
	return rng.Intn(src, n+1)
}

func Pickup(src rng.Source) synth.Params {
	p := Default()
	p.BaseFreq = 0.4 + frnd(src, 0.5)
	p.EnvAttack = 0
	p.EnvSustain = frnd(src, 0.1)
	p.EnvDecay = 0.1 + frnd(src, 0.4)
	p.EnvPunch = 0.3 + frnd(src, 0.3)
	if rnd(src, 1) == 1 {
		p.ArpSpeed = 0.5 + frnd(src, 0.2)
		p.ArpMod = 0.2 + frnd(src, 0.4)
	}
	return p
}

func Laser(src rng.Source) synth.Params {
	p := Default()
	p.Wave = synth.WaveShape(rnd(src, 2))
	if p.Wave == synth.WaveSine && rnd(src, 1) == 1 {
		p.Wave = synth.WaveShape(rnd(src, 1))
	}
	p.BaseFreq = 0.5 + frnd(src, 0.5)
	p.FreqLimit = math.Max(p.BaseFreq-0.2-frnd(src, 0.6), 0.2)
	p.FreqRamp = -0.15 - frnd(src, 0.2)
	if rnd(src, 2) == 0 {
		p.BaseFreq = 0.3 + frnd(src, 0.6)
		p.FreqLimit = frnd(src, 0.1)
		p.FreqRamp = -0.35 - frnd(src, 0.3)
	}
	if rnd(src, 1) == 1 {
		p.Duty = frnd(src, 0.5)
		p.DutyRamp = frnd(src, 0.2)
	} else {
		p.Duty = 0.4 + frnd(src, 0.5)
		p.DutyRamp = -frnd(src, 0.7)
	}
	p.EnvAttack = 0
	p.EnvSustain = 0.1 + frnd(src, 0.2)
	p.EnvDecay = frnd(src, 0.4)
	if rnd(src, 1) == 1 {
		p.EnvPunch = frnd(src, 0.3)
	}
	if rnd(src, 2) == 0 {
		p.PhaOffset = frnd(src, 0.2)
		p.PhaRamp = -frnd(src, 0.2)
	}
	if rnd(src, 1) == 1 {
		p.HPFFreq = frnd(src, 0.3)
	}
	return p
}

func Explosion(src rng.Source) synth.Params {
	p := Default()
	p.Wave = synth.WaveNoise
	if rnd(src, 1) == 1 {
		p.BaseFreq = 0.1 + frnd(src, 0.4)
		p.FreqRamp = -0.1 + frnd(src, 0.4)
	} else {
		p.BaseFreq = 0.2 + frnd(src, 0.7)
		p.FreqRamp = -0.2 - frnd(src, 0.2)
	}
	p.BaseFreq *= p.BaseFreq
	if rnd(src, 4) == 0 {
		p.FreqRamp = 0
	}
	if rnd(src, 2) == 0 {
		p.RepeatSpeed = 0.3 + frnd(src, 0.5)
	}
	p.EnvAttack = 0
	p.EnvSustain = 0.1 + frnd(src, 0.3)
	p.EnvDecay = frnd(src, 0.5)
	if rnd(src, 1) == 0 {
		p.PhaOffset = -0.3 + frnd(src, 0.9)
		p.PhaRamp = -frnd(src, 0.3)
	}
	p.EnvPunch = 0.2 + frnd(src, 0.6)
	if rnd(src, 1) == 1 {
		p.VibStrength = frnd(src, 0.7)
		p.VibSpeed = frnd(src, 0.6)
	}
	if rnd(src, 2) == 0 {
		p.ArpSpeed = 0.6 + frnd(src, 0.3)
		p.ArpMod = 0.8 - frnd(src, 1.6)
	}
	return p
}

func Powerup(src rng.Source) synth.Params {
	p := Default()
	if rnd(src, 1) == 1 {
		p.Wave = synth.WaveSawtooth
	} else {
		p.Duty = frnd(src, 0.6)
	}
	p.BaseFreq = 0.2 + frnd(src, 0.3)
	if rnd(src, 1) == 1 {
		p.FreqRamp = 0.1 + frnd(src, 0.4)
		p.RepeatSpeed = 0.4 + frnd(src, 0.4)
	} else {
		p.FreqRamp = 0.05 + frnd(src, 0.2)
		if rnd(src, 1) == 1 {
			p.VibStrength = frnd(src, 0.7)
			p.VibSpeed = frnd(src, 0.6)
		}
	}
	p.EnvAttack = 0
	p.EnvSustain = frnd(src, 0.4)
	p.EnvDecay = 0.1 + frnd(src, 0.4)
	return p
}

func Hit(src rng.Source) synth.Params {
	p := Default()
	p.Wave = synth.WaveShape(rnd(src, 2))
	if p.Wave == synth.WaveSine {
		p.Wave = synth.WaveNoise
	}
	if p.Wave == synth.WaveSquare {
		p.Duty = frnd(src, 0.6)
	}
	p.BaseFreq = 0.2 + frnd(src, 0.6)
	p.FreqRamp = -0.3 - frnd(src, 0.4)
	p.EnvAttack = 0
	p.EnvSustain = frnd(src, 0.1)
	p.EnvDecay = 0.1 + frnd(src, 0.2)
	if rnd(src, 1) == 1 {
		p.HPFFreq = frnd(src, 0.3)
	}
	return p
}

func Jump(src rng.Source) synth.Params {
	p := Default()
	p.Wave = synth.WaveSquare
	p.Duty = frnd(src, 0.6)
	p.BaseFreq = 0.3 + frnd(src, 0.3)
	p.FreqRamp = 0.1 + frnd(src, 0.2)
	p.EnvAttack = 0
	p.EnvSustain = 0.1 + frnd(src, 0.3)
	p.EnvDecay = 0.1 + frnd(src, 0.2)
	if rnd(src, 1) == 1 {
		p.HPFFreq = frnd(src, 0.3)
	}
	if rnd(src, 1) == 1 {
		p.LPFFreq = 1 - frnd(src, 0.6)
	}
	return p
}

func Blip(src rng.Source) synth.Params {
	p := Default()
	p.Wave = synth.WaveShape(rnd(src, 1))
	if p.Wave == synth.WaveSquare {
		p.Duty = frnd(src, 0.6)
	}
	p.BaseFreq = 0.2 + frnd(src, 0.4)
	p.EnvAttack = 0
	p.EnvSustain = 0.1 + frnd(src, 0.1)
	p.EnvDecay = frnd(src, 0.2)
	p.HPFFreq = 0.1
	return p
}

// Tone is a plain one-second sine of about 385 Hz (period 801 sub-samples,
// seven per tick), handy for checking levels.
func Tone() synth.Params {
	p := Default()
	p.Wave = synth.WaveSine
	p.BaseFreq = 0.35173364
	p.EnvAttack = 0
	p.EnvSustain = 0.6641
	p.EnvDecay = 0
	return p
}

// Random draws every slider.
func Random(src rng.Source) synth.Params {
	signed := func() float64 { return frnd(src, 2) - 1 }
	p := Default()
	p.Wave = synth.WaveShape(rnd(src, 3))
	p.BaseFreq = math.Pow(signed(), 2)
	if rnd(src, 1) == 1 {
		p.BaseFreq = math.Pow(signed(), 3) + 0.5
	}
	p.FreqLimit = 0
	p.FreqRamp = math.Pow(signed(), 5)
	if p.BaseFreq > 0.7 && p.FreqRamp > 0.2 {
		p.FreqRamp = -p.FreqRamp
	}
	if p.BaseFreq < 0.2 && p.FreqRamp < -0.05 {
		p.FreqRamp = -p.FreqRamp
	}
	p.FreqDRamp = math.Pow(signed(), 3)
	p.Duty = signed()
	p.DutyRamp = math.Pow(signed(), 3)
	p.VibStrength = math.Pow(signed(), 3)
	p.VibSpeed = signed()
	p.EnvAttack = math.Pow(signed(), 3)
	p.EnvSustain = math.Pow(signed(), 2)
	p.EnvDecay = signed()
	p.EnvPunch = math.Pow(frnd(src, 0.8), 2)
	if p.EnvAttack+p.EnvSustain+p.EnvDecay < 0.2 {
		p.EnvSustain += 0.2 + frnd(src, 0.3)
		p.EnvDecay += 0.2 + frnd(src, 0.3)
	}
	p.LPFResonance = signed()
	p.LPFFreq = 1 - math.Pow(frnd(src, 1), 3)
	p.LPFRamp = math.Pow(signed(), 3)
	if p.LPFFreq < 0.1 && p.LPFRamp < -0.05 {
		p.LPFRamp = -p.LPFRamp
	}
	p.HPFFreq = math.Pow(frnd(src, 1), 5)
	p.HPFRamp = math.Pow(signed(), 5)
	p.PhaOffset = math.Pow(signed(), 3)
	p.PhaRamp = math.Pow(signed(), 3)
	p.RepeatSpeed = signed()
	p.ArpSpeed = signed()
	p.ArpMod = signed()
	return p
}

// Mutate nudges each slider by up to ±0.05 with even odds, keeping it in
// its slider range.
func Mutate(p synth.Params, src rng.Source) synth.Params {
	nudge := func(v *float64, lo, hi float64) {
		if rnd(src, 1) == 1 {
			*v = clamp(*v+frnd(src, 0.1)-0.05, lo, hi)
		}
	}
	unit := func(v *float64) { nudge(v, 0, 1) }
	signed := func(v *float64) { nudge(v, -1, 1) }

	unit(&p.BaseFreq)
	signed(&p.FreqRamp)
	signed(&p.FreqDRamp)
	unit(&p.Duty)
	signed(&p.DutyRamp)
	unit(&p.VibStrength)
	unit(&p.VibSpeed)
	unit(&p.EnvAttack)
	unit(&p.EnvSustain)
	unit(&p.EnvDecay)
	unit(&p.EnvPunch)
	unit(&p.LPFResonance)
	unit(&p.LPFFreq)
	signed(&p.LPFRamp)
	unit(&p.HPFFreq)
	signed(&p.HPFRamp)
	signed(&p.PhaOffset)
	signed(&p.PhaRamp)
	unit(&p.RepeatSpeed)
	unit(&p.ArpSpeed)
	signed(&p.ArpMod)
	return p
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
