package preset

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/cbegin/sfxr-go/internal/synth"
)

// LoadLua runs the script at path. The script must return a table keyed by
// slider name; see LoadLuaString.
func LoadLua(path string) (synth.Params, error) {
	return runLua(func(L *lua.LState) error { return L.DoFile(path) })
}

// LoadLuaString runs a preset script such as
//
//	return { wave = "square", base_freq = 0.4, decay = 0.3, punch = 0.5 }
//
// Keys are the snake_case slider names plus "wave" and "sample_rate".
// Anything the table leaves out keeps its Default value.
func LoadLuaString(src string) (synth.Params, error) {
	return runLua(func(L *lua.LState) error { return L.DoString(src) })
}

func runLua(run func(L *lua.LState) error) (synth.Params, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return synth.Params{}, fmt.Errorf("lua: open %s: %w", lib.name, err)
		}
	}
	// The base library can still reach the filesystem and compile chunks.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	if err := run(L); err != nil {
		return synth.Params{}, fmt.Errorf("lua: %w", err)
	}
	if L.GetTop() == 0 {
		return synth.Params{}, errors.New("lua: preset script returned nothing")
	}
	tbl, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return synth.Params{}, fmt.Errorf("lua: preset script returned %s, want table", L.Get(-1).Type())
	}
	return paramsFromTable(tbl)
}

func paramsFromTable(tbl *lua.LTable) (synth.Params, error) {
	p := Default()
	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	tbl.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			fail(fmt.Errorf("lua: non-string key %s", k.String()))
			return
		}
		name := strings.ToLower(string(key))
		switch name {
		case "wave":
			w, err := waveFromLua(v)
			if err != nil {
				fail(err)
				return
			}
			p.Wave = w
			return
		case "sample_rate":
			n, ok := v.(lua.LNumber)
			if !ok {
				fail(fmt.Errorf("lua: sample_rate must be a number, got %s", v.Type()))
				return
			}
			p.SampleRate = float64(n)
			return
		}
		for _, f := range sliders {
			if f.name != name {
				continue
			}
			n, ok := v.(lua.LNumber)
			if !ok {
				fail(fmt.Errorf("lua: %s must be a number, got %s", name, v.Type()))
				return
			}
			*f.ptr(&p) = float64(n)
			return
		}
		fail(fmt.Errorf("lua: unknown key %q", name))
	})
	if firstErr != nil {
		return synth.Params{}, firstErr
	}
	return p, nil
}

func waveFromLua(v lua.LValue) (synth.WaveShape, error) {
	switch tv := v.(type) {
	case lua.LNumber:
		return synth.WaveShape(int(tv)), nil
	case lua.LString:
		return ParseWave(string(tv))
	}
	return 0, fmt.Errorf("lua: wave must be a number or name, got %s", v.Type())
}

// ParseWave maps a wave name to its shape.
func ParseWave(name string) (synth.WaveShape, error) {
	for w := synth.WaveSquare; w <= synth.WaveNoise; w++ {
		if strings.EqualFold(strings.TrimSpace(name), w.String()) {
			return w, nil
		}
	}
	if strings.EqualFold(strings.TrimSpace(name), "saw") {
		return synth.WaveSawtooth, nil
	}
	return 0, fmt.Errorf("unknown wave %q (expected square|sawtooth|sine|noise)", name)
}
