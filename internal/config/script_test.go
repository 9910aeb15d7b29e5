package config

import (
	"os"
	"path/filepath"
	"testing"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/retroenv/retrogolib/assert"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.lua")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadScript(t *testing.T) {
	path := writeScript(t, `
ips = 700
scale = 12
frontend = "terminal"
foreground = "#33ff66"
mute = true
keys = { p = 0x4, ["0"] = "f" }
`)

	opts := Defaults()
	assert.NoError(t, LoadScript(path, &opts))

	assert.Equal(t, 700, opts.IPS)
	assert.Equal(t, 12, opts.Scale)
	assert.Equal(t, FrontendTerminal, opts.Frontend)
	assert.Equal(t, Color{R: 0x33, G: 0xff, B: 0x66}, opts.Foreground)
	assert.Equal(t, Color{}, opts.Background)
	assert.True(t, opts.Mute)

	key, ok := opts.Keys.Lookup("p")
	assert.True(t, ok)
	assert.Equal(t, chip8.Key4, key)
	key, ok = opts.Keys.Lookup("0")
	assert.True(t, ok)
	assert.Equal(t, chip8.KeyF, key)
	_, ok = opts.Keys.Lookup("q")
	assert.False(t, ok)
}

func TestLoadScript_KeepsUnsetValues(t *testing.T) {
	path := writeScript(t, `scale = 3`)

	opts := Defaults()
	assert.NoError(t, LoadScript(path, &opts))
	assert.Equal(t, 3, opts.Scale)
	assert.Equal(t, DefaultIPS, opts.IPS)
	assert.Equal(t, FrontendSDL, opts.Frontend)
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		errContain string
	}{
		{"syntax", `ips = `, "running settings script"},
		{"bad color", `background = "red"`, "background"},
		{"key out of range", `keys = { p = 16 }`, "keys[p]"},
		{"key type", `keys = { p = true }`, "unsupported key value type"},
		{"no os library", `os.exit(1)`, "running settings script"},
		{"fractional ips", `ips = 700.9`, "ips: 700.9 is not a whole number"},
		{"huge scale", `scale = 1e20`, "scale: "},
		{"key bound twice", `keys = { p = 5, o = "5" }`, "keys[o] and keys[p]: key 5 bound more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Defaults()
			err := LoadScript(writeScript(t, tt.script), &opts)
			assert.ErrorContains(t, err, tt.errContain)
		})
	}
}

func TestLoadScript_MissingFile(t *testing.T) {
	opts := Defaults()
	assert.Error(t, LoadScript(filepath.Join(t.TempDir(), "missing.lua"), &opts))
}

func TestCreateLogger(t *testing.T) {
	opts := Defaults()
	assert.NotNil(t, CreateLogger(opts))

	opts.Debug = true
	assert.NotNil(t, CreateLogger(opts))
}
