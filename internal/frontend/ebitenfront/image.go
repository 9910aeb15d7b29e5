package ebitenfront

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/config"
)

// fillPixels writes the display as RGBA into pixels.
func fillPixels(pixels []byte, display *[chip8.DisplayHeight][chip8.DisplayWidth]uint8, on, off config.Color) {
	for y, row := range display {
		for x, value := range row {
			c := off
			if value != 0 {
				c = on
			}

			offset := (y*chip8.DisplayWidth + x) * 4
			pixels[offset] = c.R
			pixels[offset+1] = c.G
			pixels[offset+2] = c.B
			pixels[offset+3] = 0xff
		}
	}
}

// screenshot encodes the display scaled by scale as PNG.
func screenshot(display *[chip8.DisplayHeight][chip8.DisplayWidth]uint8, on, off config.Color, scale int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, chip8.DisplayWidth*scale, chip8.DisplayHeight*scale))
	onColor := color.RGBA{on.R, on.G, on.B, 0xff}
	offColor := color.RGBA{off.R, off.G, off.B, 0xff}

	for y := range img.Rect.Dy() {
		for x := range img.Rect.Dx() {
			c := offColor
			if display[y/scale][x/scale] != 0 {
				c = onColor
			}
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
