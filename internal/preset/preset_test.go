package preset

import (
	"math"
	"testing"

	"github.com/cbegin/sfxr-go/internal/rng"
	"github.com/cbegin/sfxr-go/internal/synth"
)

func TestNamesSorted(t *testing.T) {
	names := Names()
	want := []string{"blip", "explosion", "hit", "jump", "laser", "pickup", "powerup", "random", "tone"}
	if len(names) != len(want) {
		t.Fatalf("Names: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names[%d]: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestGenerateAliases(t *testing.T) {
	for alias, canonical := range aliases {
		a, err := Generate(alias, rng.NewSeeded(5))
		if err != nil {
			t.Fatalf("Generate(%q): %v", alias, err)
		}
		b, err := Generate(canonical, rng.NewSeeded(5))
		if err != nil {
			t.Fatalf("Generate(%q): %v", canonical, err)
		}
		if a != b {
			t.Fatalf("%q and %q differ for the same seed", alias, canonical)
		}
	}
}

func TestGenerateIsCaseInsensitive(t *testing.T) {
	if _, err := Generate("  LASER ", rng.NewSeeded(1)); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerateUnknown(t *testing.T) {
	if _, err := Generate("kazoo", rng.NewSeeded(1)); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	for _, name := range Names() {
		a, _ := Generate(name, rng.NewSeeded(42))
		b, _ := Generate(name, rng.NewSeeded(42))
		if a != b {
			t.Fatalf("%s: same seed produced different params", name)
		}
	}
}

func TestGeneratorsProduceValidParams(t *testing.T) {
	for _, name := range Names() {
		for seed := int64(1); seed <= 20; seed++ {
			p, err := Generate(name, rng.NewSeeded(seed))
			if err != nil {
				t.Fatalf("%s/%d: %v", name, seed, err)
			}
			if !p.Wave.Valid() {
				t.Fatalf("%s/%d: invalid wave %d", name, seed, p.Wave)
			}
			if p.SampleRate != synth.HostRate {
				t.Fatalf("%s/%d: sample rate %v, want %v", name, seed, p.SampleRate, synth.HostRate)
			}
			st := synth.FullInit(p)
			if st.EnvLength[0]+st.EnvLength[1]+st.EnvLength[2] <= 0 {
				t.Fatalf("%s/%d: empty envelope %v", name, seed, st.EnvLength)
			}
		}
	}
}

func TestPresetsRenderToCompletion(t *testing.T) {
	for _, name := range Names() {
		for seed := int64(1); seed <= 3; seed++ {
			p, _ := Generate(name, rng.NewSeeded(seed))
			buf, err := synth.Generate(p, synth.Config{
				Random:     rng.NewSeeded(seed),
				MaxSamples: 60 * synth.HostRate,
			})
			if err != nil {
				t.Fatalf("%s/%d: %v", name, seed, err)
			}
			if len(buf) == 0 {
				t.Fatalf("%s/%d: empty buffer", name, seed)
			}
			if name == "random" {
				continue
			}
			for i, f := range buf {
				if math.IsNaN(f[0]) || math.IsInf(f[0], 0) {
					t.Fatalf("%s/%d: non-finite sample %v at %d", name, seed, f[0], i)
				}
			}
		}
	}
}

func TestToneIsOneSecondish(t *testing.T) {
	buf, err := synth.Generate(Tone(), synth.Config{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// sustain 0.6641 gives a 44102-tick stage plus its elapsed=0 tick;
	// attack and decay are empty and emit nothing.
	if got, want := len(buf), 44102+1; got != want {
		t.Fatalf("len: got %d, want %d", got, want)
	}
}

func TestTonePitch(t *testing.T) {
	buf, err := synth.Generate(Tone(), synth.Config{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	rising := 0
	for i := 1; i < len(buf); i++ {
		if buf[i-1][0] < 0 && buf[i][0] >= 0 {
			rising++
		}
	}
	// 44100*7/801 cycles in just over a second
	if rising < 380 || rising > 390 {
		t.Fatalf("rising zero crossings: got %d, want about 385", rising)
	}
}

func TestMutateSkipsOnLowDraws(t *testing.T) {
	p := Default()
	got := Mutate(p, rng.NewSequence(0.1))
	if got != p {
		t.Fatalf("Mutate with low draws changed params:\n got %+v\nwant %+v", got, p)
	}
}

func TestMutateNudgesOnHighDraws(t *testing.T) {
	p := Default()
	got := Mutate(p, rng.NewSequence(0.9))
	// each nudge adds 0.9*0.1-0.05 = 0.04
	if math.Abs(got.BaseFreq-0.34) > 1e-12 {
		t.Fatalf("BaseFreq: got %v, want 0.34", got.BaseFreq)
	}
	if got.LPFFreq != 1 {
		t.Fatalf("LPFFreq: got %v, want clamp at 1", got.LPFFreq)
	}
	if got.SoundVol != p.SoundVol || got.Wave != p.Wave || got.SampleRate != p.SampleRate {
		t.Fatal("Mutate touched volume, wave or sample rate")
	}
}

func TestMutateStaysInRange(t *testing.T) {
	src := rng.NewSeeded(3)
	p := Default()
	for i := 0; i < 500; i++ {
		p = Mutate(p, src)
		if p.BaseFreq < 0 || p.BaseFreq > 1 {
			t.Fatalf("iteration %d: BaseFreq %v out of range", i, p.BaseFreq)
		}
		if p.FreqRamp < -1 || p.FreqRamp > 1 {
			t.Fatalf("iteration %d: FreqRamp %v out of range", i, p.FreqRamp)
		}
		if p.EnvDecay < 0 || p.EnvDecay > 1 {
			t.Fatalf("iteration %d: EnvDecay %v out of range", i, p.EnvDecay)
		}
	}
}
