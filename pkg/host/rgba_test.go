package host

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnafees/chip8/internal"
)

func TestFillRGBA(t *testing.T) {
	assert := assert.New(t)

	var display [internal.DisplaySize]byte
	display[1] = 1
	display[internal.DisplaySize-1] = 1

	on := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	off := color.RGBA{R: 5, G: 6, B: 7, A: 8}
	dst := make([]byte, internal.DisplaySize*4)
	FillRGBA(dst, &display, on, off)

	assert.Equal([]byte{5, 6, 7, 8}, dst[0:4])
	assert.Equal([]byte{1, 2, 3, 4}, dst[4:8])
	assert.Equal([]byte{5, 6, 7, 8}, dst[8:12])
	assert.Equal([]byte{1, 2, 3, 4}, dst[len(dst)-4:])
}
