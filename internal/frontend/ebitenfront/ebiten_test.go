package ebitenfront

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/config"
	"github.com/retroenv/retrogolib/assert"
)

var (
	green = config.Color{G: 0xff}
	navy  = config.Color{B: 0x80}
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"A", "a"},
		{"Digit4", "4"},
		{"Space", "space"},
		{"Escape", "escape"},
		{"F12", "f12"},
		{"BracketLeft", "["},
		{"BracketRight", "]"},
		{"Enter", "return"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyName(tt.name))
		})
	}
}

func TestKeypadState(t *testing.T) {
	bindings := config.DefaultKeyBindings()
	assert.NoError(t, bindings.Set("space=5,p=6"))

	keypad := keypadState([]string{"space", "p", "1", "f12"}, bindings)

	assert.False(t, keypad[chip8.Key5])
	assert.True(t, keypad[chip8.Key6])
	assert.True(t, keypad[chip8.Key1])

	var pressed int
	for _, down := range keypad {
		if down {
			pressed++
		}
	}
	assert.Equal(t, 2, pressed)
}

func TestFillPixels(t *testing.T) {
	var display [chip8.DisplayHeight][chip8.DisplayWidth]uint8
	display[0][1] = 1

	pixels := make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4)
	fillPixels(pixels, &display, green, navy)

	assert.Equal(t, []byte{0, 0, 0x80, 0xff}, pixels[0:4])
	assert.Equal(t, []byte{0, 0xff, 0, 0xff}, pixels[4:8])
}

func TestScreenshot(t *testing.T) {
	var display [chip8.DisplayHeight][chip8.DisplayWidth]uint8
	display[31][63] = 1

	data, err := screenshot(&display, green, navy, 2)
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{0, 0, 0x80, 0xff}), color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{0, 0xff, 0, 0xff}), color.RGBAModel.Convert(img.At(127, 63)))
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{0, 0xff, 0, 0xff}), color.RGBAModel.Convert(img.At(126, 62)))
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{0, 0, 0x80, 0xff}), color.RGBAModel.Convert(img.At(125, 63)))
}
