package sdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/mnafees/chip8/pkg/keypad"
)

func TestKeymapMatchesKeypad(t *testing.T) {
	assert := assert.New(t)

	table := map[sdl.Scancode]rune{
		sdl.SCANCODE_1: '1', sdl.SCANCODE_2: '2', sdl.SCANCODE_3: '3', sdl.SCANCODE_4: '4',
		sdl.SCANCODE_Q: 'q', sdl.SCANCODE_W: 'w', sdl.SCANCODE_E: 'e', sdl.SCANCODE_R: 'r',
		sdl.SCANCODE_A: 'a', sdl.SCANCODE_S: 's', sdl.SCANCODE_D: 'd', sdl.SCANCODE_F: 'f',
		sdl.SCANCODE_Z: 'z', sdl.SCANCODE_X: 'x', sdl.SCANCODE_C: 'c', sdl.SCANCODE_V: 'v',
	}

	for scancode, r := range table {
		got, ok := keymap(scancode)
		assert.True(ok, string(r))
		want, _ := keypad.Lookup(r)
		assert.Equal(want, got, string(r))
	}

	_, ok := keymap(sdl.SCANCODE_5)
	assert.False(ok)
}

func TestRGB(t *testing.T) {
	assert.Equal(t, uint32(0x1A237E), rgb(0x1A, 0x23, 0x7E))
}
