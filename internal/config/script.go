package config

import (
	"errors"
	"fmt"
	"math"

	chip8 "github.com/chip8redo/chip-go"
	lua "github.com/yuin/gopher-lua"
)

// LoadScript runs the Lua settings script at path and applies the globals it
// defines to opts. Globals that are not set keep their current value.
//
//	ips = 700
//	scale = 12
//	frontend = "ebiten"
//	foreground = "#33ff66"
//	background = "#101010"
//	mute = true
//	keys = { x = 0x0, ["1"] = 0x1, space = "f" }
func LoadScript(path string, opts *Options) error {
	state := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer state.Close()

	// only the base library, settings scripts have no business with io or os
	if err := state.CallByParam(lua.P{
		Fn:      state.NewFunction(lua.OpenBase),
		NRet:    0,
		Protect: true,
	}, lua.LString(lua.BaseLibName)); err != nil {
		return fmt.Errorf("opening lua base library: %w", err)
	}

	if err := state.DoFile(path); err != nil {
		return fmt.Errorf("running settings script '%s': %w", path, err)
	}

	var errs []error
	for name, target := range map[string]*int{"ips": &opts.IPS, "scale": &opts.Scale} {
		value, ok, err := number(state, name)
		if err != nil {
			errs = append(errs, err)
		} else if ok {
			*target = value
		}
	}
	if value, ok := state.GetGlobal("frontend").(lua.LString); ok {
		opts.Frontend = Frontend(value)
	}
	if value, ok := state.GetGlobal("mute").(lua.LBool); ok {
		opts.Mute = bool(value)
	}

	for name, color := range map[string]*Color{"foreground": &opts.Foreground, "background": &opts.Background} {
		value, ok := state.GetGlobal(name).(lua.LString)
		if !ok {
			continue
		}
		if err := color.Set(string(value)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if table, ok := state.GetGlobal("keys").(*lua.LTable); ok {
		if opts.Keys == nil {
			opts.Keys = KeyBindings{}
		}
		bound := map[chip8.Key]string{}
		table.ForEach(func(name, value lua.LValue) {
			key, err := scriptKey(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("keys[%s]: %w", name.String(), err))
				return
			}

			// table order is random, a key bound twice would depend on it
			if other, ok := bound[key]; ok {
				first, second := min(other, name.String()), max(other, name.String())
				errs = append(errs, fmt.Errorf("keys[%s] and keys[%s]: key %s bound more than once", first, second, key))
				return
			}
			bound[key] = name.String()
			opts.Keys.Bind(name.String(), key)
		})
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("settings script '%s': %w", path, err)
	}
	return nil
}

// number returns the integer global name, ok is false when it is not set.
func number(state *lua.LState, name string) (int, bool, error) {
	value, ok := state.GetGlobal(name).(lua.LNumber)
	if !ok {
		return 0, false, nil
	}

	f := float64(value)
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false, fmt.Errorf("%s: %v is not a whole number", name, value)
	}
	return int(f), true, nil
}

// scriptKey accepts numbers (0xA) and hex digit strings ("a").
func scriptKey(value lua.LValue) (chip8.Key, error) {
	switch value := value.(type) {
	case lua.LNumber:
		if value < 0 || value >= chip8.KeyCount || value != lua.LNumber(int(value)) {
			return 0, fmt.Errorf("key %v out of range", value)
		}
		return chip8.Key(value), nil

	case lua.LString:
		return chip8.ParseKey(string(value))

	default:
		return 0, fmt.Errorf("unsupported key value type %s", value.Type())
	}
}
