package preset

import (
	"strings"
	"testing"

	"github.com/cbegin/sfxr-go/internal/rng"
	"github.com/cbegin/sfxr-go/internal/synth"
)

func TestParseSettingsPositions(t *testing.T) {
	p, err := ParseSettings("3,,0.3,0.5,0.25,0.1")
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	if p.Wave != synth.WaveNoise {
		t.Fatalf("Wave: got %v, want noise", p.Wave)
	}
	if p.EnvAttack != 0 || p.EnvSustain != 0.3 || p.EnvPunch != 0.5 || p.EnvDecay != 0.25 || p.BaseFreq != 0.1 {
		t.Fatalf("envelope fields parsed wrong: %+v", p)
	}
	if p.SoundVol != 0 {
		t.Fatalf("missing trailing field should read as zero, got %v", p.SoundVol)
	}
	if p.SampleRate != synth.HostRate {
		t.Fatalf("SampleRate: got %v, want %v", p.SampleRate, synth.HostRate)
	}
}

func TestParseSettingsFullString(t *testing.T) {
	fields := make([]string, 24)
	fields[0] = "1"
	fields[23] = "0.7"
	p, err := ParseSettings(strings.Join(fields, ","))
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	if p.Wave != synth.WaveSawtooth || p.SoundVol != 0.7 {
		t.Fatalf("got wave %v vol %v, want sawtooth 0.7", p.Wave, p.SoundVol)
	}
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too many fields", strings.Repeat(",", 24)},
		{"bad float", "0,abc"},
		{"fractional wave", "1.5"},
		{"bad wave", "square"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSettings(tt.in); err == nil {
				t.Fatalf("ParseSettings(%q): expected error", tt.in)
			}
		})
	}
}

func TestFormatSettingsRoundTrip(t *testing.T) {
	for _, name := range Names() {
		p, _ := Generate(name, rng.NewSeeded(11))
		got, err := ParseSettings(FormatSettings(p))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != p {
			t.Fatalf("%s: round trip mismatch\n got %+v\nwant %+v", name, got, p)
		}
	}
}

func TestFormatSettingsDefault(t *testing.T) {
	got := FormatSettings(Default())
	want := "0,,0.3,,0.4,0.3,,,,,,,,,,,,,1,,,,,0.5"
	if got != want {
		t.Fatalf("FormatSettings(Default()):\n got %q\nwant %q", got, want)
	}
}
