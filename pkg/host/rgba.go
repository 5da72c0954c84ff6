package host

import (
	"image/color"

	"github.com/mnafees/chip8/internal"
)

// Default colours, matching the SDL frontend
var (
	ScreenColor = color.RGBA{R: 0x1A, G: 0x23, B: 0x7E, A: 0xFF}
	SpriteColor = color.RGBA{R: 0x9F, G: 0xA8, B: 0xDA, A: 0xFF}
)

// FillRGBA converts a framebuffer into 8-bit RGBA pixels. dst must hold
// internal.DisplaySize*4 bytes.
func FillRGBA(dst []byte, display *[internal.DisplaySize]byte, on, off color.RGBA) {
	for i, px := range display {
		c := off
		if px != 0 {
			c = on
		}
		dst[i*4+0] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = c.A
	}
}
