package synth

import "math"

// State holds the coefficients derived from Params plus everything that
// drifts while a sound plays.
type State struct {
	// Pitch. RepeatInit recomputes this group.
	Period        float64
	MaxPeriod     float64
	CutoffEnabled bool
	PeriodMul     float64
	PeriodMulD    float64
	DutyCycle     float64
	DutySlide     float64
	ArpMul        float64
	ArpTimer      int

	// Repeat.
	RepeatTimer   int
	RepeatElapsed int

	// Vibrato.
	VibPhase float64
	VibSpeed float64
	VibAmp   float64

	// Envelope.
	EnvStage   int
	EnvElapsed int
	EnvLength  [3]int
	EnvPunch   float64

	// Flanger.
	FlangerOffset float64
	FlangerSlide  float64

	// Filters.
	LPFCutoff  float64
	LPFRamp    float64
	LPFDamping float64
	LPFEnabled bool
	HPF        float64
	HPFRamp    float64

	Gain float64
}

// FullInit derives the complete run state from p.
func FullInit(p Params) State {
	var s State
	RepeatInit(p, &s)

	s.LPFCutoff = p.LPFFreq * p.LPFFreq * p.LPFFreq * 0.1
	s.LPFEnabled = p.LPFFreq != 1
	s.LPFRamp = 1 + p.LPFRamp*0.0001
	s.LPFDamping = 5 / (1 + p.LPFResonance*p.LPFResonance*20) * (0.01 + s.LPFCutoff)
	if s.LPFDamping > 0.8 {
		s.LPFDamping = 0.8
	}
	s.HPF = p.HPFFreq * p.HPFFreq * 0.1
	s.HPFRamp = 1 + p.HPFRamp*0.0003

	s.VibSpeed = p.VibSpeed * p.VibSpeed * 0.01
	s.VibAmp = p.VibStrength * 0.5

	s.EnvLength = [3]int{
		stageLength(p.EnvAttack),
		stageLength(p.EnvSustain),
		stageLength(p.EnvDecay),
	}
	s.EnvPunch = p.EnvPunch

	s.FlangerOffset = math.Copysign(p.PhaOffset*p.PhaOffset*1020, p.PhaOffset)
	s.FlangerSlide = math.Copysign(p.PhaRamp*p.PhaRamp, p.PhaRamp)

	if p.RepeatSpeed != 0 {
		s.RepeatTimer = timerLength(p.RepeatSpeed)
	}

	s.Gain = math.Exp(p.SoundVol) - 1
	return s
}

// RepeatInit resets the pitch group of s from p. Filters,
// envelope, flanger, vibrato and the repeat timer are left alone.
func RepeatInit(p Params, s *State) {
	s.Period = 100 / (p.BaseFreq*p.BaseFreq + 0.001)
	s.MaxPeriod = 100 / (p.FreqLimit*p.FreqLimit + 0.001)
	s.CutoffEnabled = p.FreqLimit > 0
	s.PeriodMul = 1 - p.FreqRamp*p.FreqRamp*p.FreqRamp*0.01
	s.PeriodMulD = -p.FreqDRamp * p.FreqDRamp * p.FreqDRamp * 0.000001

	s.DutyCycle = 0.5 - p.Duty*0.5
	s.DutySlide = -p.DutyRamp * 0.00005

	if p.ArpMod >= 0 {
		s.ArpMul = 1 - p.ArpMod*p.ArpMod*0.9
	} else {
		s.ArpMul = 1 + p.ArpMod*p.ArpMod*10
	}
	s.ArpTimer = 0
	if p.ArpSpeed != 1 {
		s.ArpTimer = timerLength(p.ArpSpeed)
	}
}

func stageLength(v float64) int {
	return int(math.Floor(v * v * 100000))
}

func timerLength(speed float64) int {
	return int(math.Floor((1-speed)*(1-speed)*20000 + 32))
}
