package effects

import (
	"fmt"
	"strconv"
	"strings"
)

// Tailer is implemented by effects that keep sounding after their input
// goes quiet.
type Tailer interface {
	TailSamples() int
}

// TailSamples sums the tails of every effect in the chain.
func (c *Chain) TailSamples() int {
	var n int
	for _, e := range c.effects {
		if t, ok := e.(Tailer); ok {
			n += t.TailSamples()
		}
	}
	return n
}

// Parse builds a chain from directives of the form
//
//	reverb 0.5,0.7,0.25; echo 120,0.4,0.3
//
// Missing parameters take their defaults. An empty string yields an empty
// chain.
func Parse(directives string, sampleRate int) (*Chain, error) {
	chain := NewChain()
	for _, raw := range strings.Split(directives, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.SplitN(raw, " ", 2)
		effectType := strings.ToLower(strings.TrimSpace(parts[0]))
		var params []float64
		if len(parts) > 1 {
			for _, p := range strings.Split(parts[1], ",") {
				p = strings.TrimSpace(p)
				if p == "" {
					continue
				}
				v, err := strconv.ParseFloat(p, 64)
				if err != nil {
					return nil, fmt.Errorf("effect %q: bad parameter %q: %w", effectType, p, err)
				}
				params = append(params, v)
			}
		}
		eff, err := create(effectType, params, sampleRate)
		if err != nil {
			return nil, err
		}
		chain.Add(eff)
	}
	return chain, nil
}

func create(effectType string, params []float64, sampleRate int) (Effector, error) {
	getParam := func(idx int, def float64) float64 {
		if idx < len(params) {
			return params[idx]
		}
		return def
	}
	switch effectType {
	case "echo", "delay":
		return NewEcho(sampleRate,
			getParam(0, 250), // delay ms
			getParam(1, 0.4), // feedback
			getParam(2, 0.3), // wet
		), nil
	case "reverb":
		return NewReverb(sampleRate,
			getParam(0, 0.5),  // room size
			getParam(1, 0.7),  // feedback
			getParam(2, 0.25), // wet
		), nil
	case "dist", "distortion":
		return NewDistortion(sampleRate,
			getParam(0, 4),    // pre gain
			getParam(1, 0.5),  // post gain
			getParam(2, 8000), // lpf cutoff
		), nil
	case "crush", "bitcrush":
		return NewBitcrush(
			getParam(0, 6),      // bits
			int(getParam(1, 4)), // sample hold
		), nil
	}
	return nil, fmt.Errorf("unknown effect %q", effectType)
}
