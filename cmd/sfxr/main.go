package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/cbegin/sfxr-go"
)

func main() {
	var (
		presetName  = flag.String("preset", "pickup", "generator: "+strings.Join(sfxr.PresetNames(), "|"))
		settings    = flag.String("settings", "", "jsfxr settings string (overrides -preset)")
		luaPath     = flag.String("lua", "", "Lua preset file (overrides -preset and -settings)")
		seed        = flag.Int64("seed", -1, "random seed for presets and noise (-1 = unseeded)")
		mutate      = flag.Bool("mutate", false, "nudge every slider slightly before rendering")
		sampleRate  = flag.Int("rate", sfxr.HostRate, "output sample rate")
		maxSeconds  = flag.Float64("max-seconds", 60, "stop sounds that run longer than this")
		fx          = flag.String("fx", "", `post effects, e.g. "reverb 0.5,0.7,0.25; echo 120,0.4,0.3"`)
		outPath     = flag.String("out", "", "output WAV path (- for stdout)")
		format      = flag.String("format", "f32", "WAV sample format: f32|pcm16")
		play        = flag.Bool("play", false, "play the sound")
		backendName = flag.String("backend", "ebiten", "audio backend: ebiten|oto")
		volume      = flag.Float64("volume", 1.0, "playback volume scalar")
		printParams = flag.Bool("print", false, "print the settings string to stderr")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("sfxr: ")

	rateSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "rate" {
			rateSet = true
		}
	})

	var src sfxr.RandomSource
	if *seed >= 0 {
		src = sfxr.NewSeededSource(*seed)
	}

	p, label, err := resolveParams(*luaPath, *settings, *presetName, src)
	if err != nil {
		log.Fatal(err)
	}
	if *mutate {
		p = sfxr.Mutate(p, src)
	}
	if rateSet {
		p.SampleRate = float64(*sampleRate)
	}
	if *printParams {
		fmt.Fprintln(os.Stderr, sfxr.FormatSettings(p))
	}

	writeStdout := *outPath == "-" || (*outPath == "" && !*play)
	if writeStdout && term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("refusing to write WAV data to a terminal; use -out or redirect stdout")
	}
	wavFormat, err := parseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}

	buf, err := sfxr.Generate(p,
		sfxr.WithRandom(src),
		sfxr.WithMaxSamples(int(*maxSeconds*sfxr.HostRate)),
	)
	if errors.Is(err, sfxr.ErrSampleLimit) {
		log.Printf("warning: %v", err)
	} else if err != nil {
		log.Fatal(err)
	}

	rate := int(p.SampleRate)
	if strings.TrimSpace(*fx) != "" {
		buf, err = sfxr.ApplyEffects(buf, *fx, rate)
		if err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("%s: %d frames (%.3fs) at %d Hz", label, len(buf), float64(len(buf))/float64(rate), rate)

	if writeStdout || *outPath != "" {
		data, err := encode(buf, rate, wavFormat)
		if err != nil {
			log.Fatal(err)
		}
		if writeStdout {
			_, err = os.Stdout.Write(data)
		} else {
			err = os.WriteFile(*outPath, data, 0o644)
		}
		if err != nil {
			log.Fatal(err)
		}
	}

	if *play {
		backend, err := sfxr.ParseBackend(*backendName)
		if err != nil {
			log.Fatal(err)
		}
		pl, err := sfxr.NewPlayer(rate, sfxr.WithBackend(backend))
		if err != nil {
			log.Fatal(err)
		}
		pl.SetMasterVolume(*volume)
		if err := pl.Play(buf); err != nil {
			log.Fatal(err)
		}
		pl.Wait()
		if err := pl.Stop(); err != nil {
			log.Fatal(err)
		}
	}
}

func resolveParams(luaPath, settings, presetName string, src sfxr.RandomSource) (sfxr.Params, string, error) {
	if strings.TrimSpace(luaPath) != "" {
		p, err := sfxr.LoadLuaPreset(luaPath)
		return p, luaPath, err
	}
	if strings.TrimSpace(settings) != "" {
		p, err := sfxr.ParseSettings(settings)
		return p, "settings", err
	}
	p, err := sfxr.Preset(presetName, src)
	return p, presetName, err
}

type wavFormat int

const (
	formatF32 wavFormat = iota
	formatPCM16
)

func parseFormat(name string) (wavFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "f32", "float32":
		return formatF32, nil
	case "pcm16", "s16":
		return formatPCM16, nil
	default:
		return 0, fmt.Errorf("invalid -format %q (expected f32|pcm16)", name)
	}
}

func encode(buf sfxr.Buffer, rate int, format wavFormat) ([]byte, error) {
	if format == formatPCM16 {
		return sfxr.EncodeWAVPCM16(buf, rate)
	}
	return sfxr.EncodeWAVFloat32LE(buf.Interleaved(), rate, 2), nil
}
