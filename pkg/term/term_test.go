package term

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnafees/chip8/internal"
)

func TestRender(t *testing.T) {
	assert := assert.New(t)

	var display [internal.DisplaySize]byte
	display[0] = 1                      // (0, 0) top
	display[internal.ScreenWidth+1] = 1 // (1, 1) bottom
	display[2] = 1                      // (2, 0) top
	display[internal.ScreenWidth+2] = 1 // (2, 1) bottom
	display[internal.DisplaySize-1] = 1 // (63, 31) bottom

	var out bytes.Buffer
	assert.NoError(Render(&out, &display))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\r\n"), "\r\n")
	require.Len(t, lines, internal.ScreenHeight/2)

	first := []rune(lines[0])
	require.Len(t, first, internal.ScreenWidth)
	assert.Equal("▀▄█ ", string(first[:4]))

	last := []rune(lines[len(lines)-1])
	assert.Equal('▄', last[internal.ScreenWidth-1])
	assert.Equal(strings.Repeat(" ", internal.ScreenWidth), lines[1])
}

func newPipeTerminal(t *testing.T) (*Terminal, *os.File, *bytes.Buffer) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	var out bytes.Buffer
	tm := New(r, &out, 2)
	return tm, w, &out
}

func TestTerminalInput(t *testing.T) {
	assert := assert.New(t)

	tm := New(nil, &bytes.Buffer{}, 2)
	vm := internal.NewMachine()

	tm.events <- 'w'
	tm.events <- 'Z'
	tm.events <- '9'
	assert.True(tm.Input(vm))
	assert.True(vm.Key(0x5))
	assert.True(vm.Key(0xA))

	assert.True(tm.Input(vm))
	assert.True(vm.Key(0x5))

	assert.True(tm.Input(vm))
	assert.False(vm.Key(0x5), "released after the hold")

	tm.events <- keyEscape
	assert.False(tm.Input(vm))
}

func TestTerminalStartStop(t *testing.T) {
	assert := assert.New(t)

	tm, w, out := newPipeTerminal(t)
	require.NoError(t, tm.Start())
	assert.Contains(out.String(), clearScreen)

	_, err := w.Write([]byte{keyCtrlC})
	require.NoError(t, err)

	vm := internal.NewMachine()
	assert.Eventually(func() bool {
		return !tm.Input(vm)
	}, time.Second, time.Millisecond)

	tm.Stop()
	assert.Contains(out.String(), showCursor)
}

func TestTerminalOutput(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	tm := New(nil, &out, 1)

	vm := internal.NewMachine()
	assert.NoError(tm.Output(vm))
	assert.Empty(out.String(), "nothing to draw")

	// CLS
	assert.NoError(vm.Load([]byte{0x00, 0xE0}))
	assert.NoError(vm.Step())
	assert.NoError(tm.Output(vm))
	assert.True(strings.HasPrefix(out.String(), cursorHome))
	assert.False(vm.IsDrawFlagSet())
}
