package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/config"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts config.Options)
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			check: func(t *testing.T, opts config.Options) {
				t.Helper()
				assert.Equal(t, "pong.ch8", opts.ROM)
				assert.Equal(t, config.FrontendSDL, opts.Frontend)
				assert.Equal(t, config.DefaultIPS, opts.IPS)
			},
		},
		{
			name: "sdl without rom",
			args: nil,
			check: func(t *testing.T, opts config.Options) {
				t.Helper()
				assert.Equal(t, "", opts.ROM)
			},
		},
		{
			name: "all options",
			args: []string{"-frontend", "Terminal", "-ips", "900", "-scale", "4", "-fg", "#00ff00", "-bg", "#000011", "-mute", "-debug", "pong.ch8"},
			check: func(t *testing.T, opts config.Options) {
				t.Helper()
				assert.Equal(t, config.FrontendTerminal, opts.Frontend)
				assert.Equal(t, 900, opts.IPS)
				assert.Equal(t, 4, opts.Scale)
				assert.Equal(t, config.Color{G: 0xff}, opts.Foreground)
				assert.Equal(t, config.Color{B: 0x11}, opts.Background)
				assert.True(t, opts.Mute)
				assert.True(t, opts.Debug)
			},
		},
		{
			name: "key bindings",
			args: []string{"-keys", "p=4,o=5", "pong.ch8"},
			check: func(t *testing.T, opts config.Options) {
				t.Helper()
				key, ok := opts.Keys.Lookup("o")
				assert.True(t, ok)
				assert.Equal(t, chip8.Key5, key)
				_, ok = opts.Keys.Lookup("w")
				assert.False(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope", "pong.ch8"}},
		{"flag after rom", []string{"pong.ch8", "-ips", "10"}},
		{"two roms", []string{"a.ch8", "b.ch8"}},
		{"invalid ips", []string{"-ips", "0", "pong.ch8"}},
		{"invalid color", []string{"-fg", "green", "pong.ch8"}},
		{"terminal without rom", []string{"-frontend", "terminal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_Version(t *testing.T) {
	_, err := ParseFlags([]string{"-version"})
	assert.True(t, errors.Is(err, ErrVersion))
}

func TestParseFlags_ScriptWithOverrides(t *testing.T) {
	script := filepath.Join(t.TempDir(), "settings.lua")
	assert.NoError(t, os.WriteFile(script, []byte(`ips = 42
scale = 7`), 0o600))

	opts, err := ParseFlags([]string{"-config", script, "-scale", "3", "pong.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, 42, opts.IPS)
	assert.Equal(t, 3, opts.Scale)
	assert.Equal(t, script, opts.Script)
}

func TestParseFlags_ScriptError(t *testing.T) {
	_, err := ParseFlags([]string{"-config", filepath.Join(t.TempDir(), "missing.lua"), "pong.ch8"})
	assert.ErrorContains(t, err, "running settings script")
}

func TestUsageError_ShowUsage(t *testing.T) {
	var buf bytes.Buffer
	(&UsageError{}).ShowUsage(&buf)

	assert.Contains(t, buf.String(), "usage: chip8")
	assert.Contains(t, buf.String(), "-frontend")
	assert.Contains(t, buf.String(), "-ips")
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, config.Defaults(), "1.0.0", "0123456789abcdef", "2026-10-01")
	PrintBanner(logger, config.Options{Quiet: true}, "1.0.0", "", "")
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "1.2.3", "", "")
	assert.Contains(t, buf.String(), "chip-go version: ")
}
