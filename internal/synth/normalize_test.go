package synth

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Abs(b))
}

func TestFullInitMappings(t *testing.T) {
	p := Params{
		Wave:         WaveSawtooth,
		EnvAttack:    0.1,
		EnvSustain:   0.2,
		EnvPunch:     0.4,
		EnvDecay:     0.3,
		BaseFreq:     0.3,
		FreqLimit:    0.1,
		FreqRamp:     0.5,
		FreqDRamp:    -0.5,
		VibStrength:  0.6,
		VibSpeed:     0.5,
		ArpMod:       0.5,
		ArpSpeed:     0.5,
		Duty:         0.4,
		DutyRamp:     0.2,
		RepeatSpeed:  0.5,
		PhaOffset:    -0.5,
		PhaRamp:      0.5,
		LPFFreq:      0.5,
		LPFRamp:      0.5,
		LPFResonance: 0.5,
		HPFFreq:      0.5,
		HPFRamp:      -0.5,
		SoundVol:     0.5,
		SampleRate:   44100,
	}
	s := FullInit(p)

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"period", s.Period, 100 / (0.09 + 0.001)},
		{"max period", s.MaxPeriod, 100 / (0.01 + 0.001)},
		{"period mul", s.PeriodMul, 1 - 0.125*0.01},
		{"period mul slide", s.PeriodMulD, 0.125 * 0.000001},
		{"duty", s.DutyCycle, 0.3},
		{"duty slide", s.DutySlide, -0.2 * 0.00005},
		{"arp mul", s.ArpMul, 1 - 0.25*0.9},
		{"arp timer", float64(s.ArpTimer), 5032},
		{"repeat timer", float64(s.RepeatTimer), 5032},
		{"lpf cutoff", s.LPFCutoff, 0.125 * 0.1},
		{"lpf ramp", s.LPFRamp, 1 + 0.5*0.0001},
		{"lpf damping", s.LPFDamping, 5 / (1 + 0.25*20) * (0.01 + 0.0125)},
		{"hpf", s.HPF, 0.25 * 0.1},
		{"hpf ramp", s.HPFRamp, 1 - 0.5*0.0003},
		{"vib speed", s.VibSpeed, 0.25 * 0.01},
		{"vib amp", s.VibAmp, 0.3},
		{"attack length", float64(s.EnvLength[0]), math.Floor(0.1 * 0.1 * 100000)},
		{"sustain length", float64(s.EnvLength[1]), math.Floor(0.2 * 0.2 * 100000)},
		{"decay length", float64(s.EnvLength[2]), math.Floor(0.3 * 0.3 * 100000)},
		{"punch", s.EnvPunch, 0.4},
		{"flanger offset", s.FlangerOffset, -0.25 * 1020},
		{"flanger slide", s.FlangerSlide, 0.25},
		{"gain", s.Gain, math.Exp(0.5) - 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !approx(tc.got, tc.want) {
				t.Fatalf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
	if !s.CutoffEnabled {
		t.Fatalf("cutoff should be enabled for freq limit > 0")
	}
	if !s.LPFEnabled {
		t.Fatalf("low-pass should be enabled for lpf freq != 1")
	}
	if s.EnvStage != 0 || s.EnvElapsed != 0 || s.RepeatElapsed != 0 || s.VibPhase != 0 {
		t.Fatalf("counters should start at zero: %+v", s)
	}
}

func TestFullInitNeutralValues(t *testing.T) {
	s := FullInit(Params{LPFFreq: 1, SampleRate: 44100})
	if s.CutoffEnabled {
		t.Fatalf("zero freq limit must not enable cutoff")
	}
	if s.LPFEnabled {
		t.Fatalf("lpf freq 1 must disable the low-pass")
	}
	if s.RepeatTimer != 0 {
		t.Fatalf("repeat speed 0 should disable repeat, got timer %d", s.RepeatTimer)
	}
	if s.Gain != 0 {
		t.Fatalf("sound vol 0 should give gain 0, got %v", s.Gain)
	}
	// 5/(1+0) * (0.01+0.1)
	if !approx(s.LPFDamping, 0.55) {
		t.Fatalf("damping = %v, want 0.55", s.LPFDamping)
	}
}

func TestLowPassDampingClamp(t *testing.T) {
	// cutoff 0.8 gives a raw damping of 4.05
	s := FullInit(Params{LPFFreq: 2, SampleRate: 44100})
	if !approx(s.LPFCutoff, 0.8) {
		t.Fatalf("cutoff = %v, want 0.8", s.LPFCutoff)
	}
	if s.LPFDamping != 0.8 {
		t.Fatalf("damping should clamp to 0.8, got %v", s.LPFDamping)
	}
}

func TestArpeggioTimerDisabledAtFullSpeed(t *testing.T) {
	s := FullInit(Params{ArpSpeed: 1, SampleRate: 44100})
	if s.ArpTimer != 0 {
		t.Fatalf("arp speed 1 should disable the arpeggio, got %d", s.ArpTimer)
	}
	s = FullInit(Params{ArpSpeed: 0, SampleRate: 44100})
	if s.ArpTimer != 20032 {
		t.Fatalf("arp speed 0 timer = %d, want 20032", s.ArpTimer)
	}
}

func TestArpeggioNegativeModRaisesPeriod(t *testing.T) {
	s := FullInit(Params{ArpMod: -0.5, SampleRate: 44100})
	if !approx(s.ArpMul, 1+0.25*10) {
		t.Fatalf("arp mul = %v, want %v", s.ArpMul, 1+0.25*10)
	}
}

func TestRepeatInitTouchesOnlyPitchGroup(t *testing.T) {
	p := Params{
		BaseFreq:     0.4,
		FreqLimit:    0.2,
		FreqRamp:     0.3,
		FreqDRamp:    0.2,
		ArpMod:       0.3,
		ArpSpeed:     0.7,
		Duty:         0.2,
		DutyRamp:     0.1,
		RepeatSpeed:  0.6,
		EnvSustain:   0.5,
		LPFFreq:      0.7,
		HPFFreq:      0.2,
		PhaOffset:    0.3,
		VibStrength:  0.2,
		VibSpeed:     0.4,
		SoundVol:     0.5,
		SampleRate:   44100,
		LPFResonance: 0.3,
	}
	fresh := FullInit(p)

	drifted := fresh
	drifted.Period *= 3
	drifted.MaxPeriod = 1
	drifted.CutoffEnabled = false
	drifted.PeriodMul = 2
	drifted.PeriodMulD = 1
	drifted.DutyCycle = 0
	drifted.DutySlide = 1
	drifted.ArpMul = 9
	drifted.ArpTimer = 0
	drifted.RepeatTimer = 77
	drifted.RepeatElapsed = 12
	drifted.VibPhase = 1.5
	drifted.EnvStage = 1
	drifted.EnvElapsed = 99
	drifted.FlangerOffset = 42
	drifted.LPFCutoff = 0.05
	drifted.HPF = 0.07
	drifted.Gain = 3

	got := drifted
	RepeatInit(p, &got)

	// Pitch group comes back to the values derived from p.
	want := drifted
	want.Period = fresh.Period
	want.MaxPeriod = fresh.MaxPeriod
	want.CutoffEnabled = fresh.CutoffEnabled
	want.PeriodMul = fresh.PeriodMul
	want.PeriodMulD = fresh.PeriodMulD
	want.DutyCycle = fresh.DutyCycle
	want.DutySlide = fresh.DutySlide
	want.ArpMul = fresh.ArpMul
	want.ArpTimer = fresh.ArpTimer

	if got != want {
		t.Fatalf("repeat init state mismatch\nwant: %+v\ngot:  %+v", want, got)
	}
}
