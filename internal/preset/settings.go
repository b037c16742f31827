package preset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cbegin/sfxr-go/internal/synth"
)

type field struct {
	name string
	ptr  func(p *synth.Params) *float64
}

// sliders lists the continuous parameters in settings-string order; the
// wave selector precedes them.
var sliders = []field{
	{"attack", func(p *synth.Params) *float64 { return &p.EnvAttack }},
	{"sustain", func(p *synth.Params) *float64 { return &p.EnvSustain }},
	{"punch", func(p *synth.Params) *float64 { return &p.EnvPunch }},
	{"decay", func(p *synth.Params) *float64 { return &p.EnvDecay }},
	{"base_freq", func(p *synth.Params) *float64 { return &p.BaseFreq }},
	{"freq_limit", func(p *synth.Params) *float64 { return &p.FreqLimit }},
	{"freq_ramp", func(p *synth.Params) *float64 { return &p.FreqRamp }},
	{"freq_dramp", func(p *synth.Params) *float64 { return &p.FreqDRamp }},
	{"vib_strength", func(p *synth.Params) *float64 { return &p.VibStrength }},
	{"vib_speed", func(p *synth.Params) *float64 { return &p.VibSpeed }},
	{"arp_mod", func(p *synth.Params) *float64 { return &p.ArpMod }},
	{"arp_speed", func(p *synth.Params) *float64 { return &p.ArpSpeed }},
	{"duty", func(p *synth.Params) *float64 { return &p.Duty }},
	{"duty_ramp", func(p *synth.Params) *float64 { return &p.DutyRamp }},
	{"repeat_speed", func(p *synth.Params) *float64 { return &p.RepeatSpeed }},
	{"pha_offset", func(p *synth.Params) *float64 { return &p.PhaOffset }},
	{"pha_ramp", func(p *synth.Params) *float64 { return &p.PhaRamp }},
	{"lpf_freq", func(p *synth.Params) *float64 { return &p.LPFFreq }},
	{"lpf_ramp", func(p *synth.Params) *float64 { return &p.LPFRamp }},
	{"lpf_resonance", func(p *synth.Params) *float64 { return &p.LPFResonance }},
	{"hpf_freq", func(p *synth.Params) *float64 { return &p.HPFFreq }},
	{"hpf_ramp", func(p *synth.Params) *float64 { return &p.HPFRamp }},
	{"sound_vol", func(p *synth.Params) *float64 { return &p.SoundVol }},
}

// ParseSettings reads the 24-field comma list: wave selector, then the
// sliders in order. Missing or empty fields read as zero. The sample rate
// is not part of the list and is set to the host rate.
func ParseSettings(s string) (synth.Params, error) {
	values := strings.Split(strings.TrimSpace(s), ",")
	if len(values) > len(sliders)+1 {
		return synth.Params{}, fmt.Errorf("settings: %d fields, want at most %d", len(values), len(sliders)+1)
	}
	p := synth.Params{SampleRate: synth.HostRate}

	wave, err := parseField(values, 0)
	if err != nil {
		return synth.Params{}, fmt.Errorf("settings: wave: %w", err)
	}
	if wave != float64(int(wave)) {
		return synth.Params{}, fmt.Errorf("settings: wave %v is not an integer", wave)
	}
	p.Wave = synth.WaveShape(int(wave))

	for i, f := range sliders {
		v, err := parseField(values, i+1)
		if err != nil {
			return synth.Params{}, fmt.Errorf("settings: %s: %w", f.name, err)
		}
		*f.ptr(&p) = v
	}
	return p, nil
}

func parseField(values []string, idx int) (float64, error) {
	if idx >= len(values) {
		return 0, nil
	}
	raw := strings.TrimSpace(values[idx])
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// FormatSettings is the inverse of ParseSettings. Zero sliders are written
// as empty fields to keep strings short.
func FormatSettings(p synth.Params) string {
	parts := make([]string, 0, len(sliders)+1)
	parts = append(parts, strconv.Itoa(int(p.Wave)))
	for _, f := range sliders {
		v := *f.ptr(&p)
		if v == 0 {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return strings.Join(parts, ",")
}
