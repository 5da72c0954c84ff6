// Package term is a CHIP-8 frontend for raw mode terminals.
package term

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/mnafees/chip8/internal"
	"github.com/mnafees/chip8/pkg/keypad"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B

	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Terminal reads keys from a raw mode terminal and draws the framebuffer
// with ANSI escapes.
type Terminal struct {
	in    *os.File
	out   io.Writer
	fd    int
	state *term.State

	events chan byte
	latch  *keypad.Latch
	frame  bytes.Buffer
}

// New returns a terminal frontend. Each key press is held down for hold
// cycles since terminals never report key releases.
func New(in *os.File, out io.Writer, hold int) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		fd:     int(in.Fd()),
		events: make(chan byte, 64),
		latch:  keypad.NewLatch(hold),
	}
}

// Start switches the terminal to raw mode and starts reading keys.
func (t *Terminal) Start() error {
	if term.IsTerminal(t.fd) {
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return err
		}
		t.state = state
	}

	io.WriteString(t.out, clearScreen+hideCursor)

	// The reader blocks on the terminal for the life of the process.
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := t.in.Read(buf)
			for _, b := range buf[:n] {
				t.events <- b
			}
			if err != nil {
				close(t.events)
				return
			}
		}
	}()
	return nil
}

// Stop restores the terminal.
func (t *Terminal) Stop() {
	io.WriteString(t.out, showCursor+"\r\n")
	if t.state != nil {
		_ = term.Restore(t.fd, t.state)
		t.state = nil
	}
}

// Input drains pending key presses into the machine.
func (t *Terminal) Input(vm *internal.Machine) bool {
	for {
		select {
		case b, ok := <-t.events:
			if !ok || b == keyCtrlC || b == keyEscape {
				return false
			}
			if key, ok := keypad.Lookup(rune(b)); ok {
				t.latch.Press(key)
			}
		default:
			t.latch.Apply(vm)
			return true
		}
	}
}

// Output redraws the screen when the display changed.
func (t *Terminal) Output(vm *internal.Machine) error {
	if !vm.IsDrawFlagSet() {
		return nil
	}
	vm.UnsetDrawFlag()

	display := vm.Display()
	t.frame.Reset()
	t.frame.WriteString(cursorHome)
	if err := Render(&t.frame, &display); err != nil {
		return err
	}
	_, err := t.out.Write(t.frame.Bytes())
	return err
}
