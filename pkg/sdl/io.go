package sdl

import (
	"fmt"

	"github.com/mnafees/chip8/internal"
	"github.com/mnafees/chip8/pkg/host"
	"github.com/veandco/go-sdl2/sdl"
)

// IO is the SDL window and keyboard frontend for the machine
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	scale   int32

	runner *host.Runner
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(runner *host.Runner, scale int) *IO {
	return &IO{
		runner: runner,
		scale:  int32(scale),
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.scale, internal.ScreenHeight*io.scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	io.surface.FillRect(nil, rgb(host.ScreenColor.R, host.ScreenColor.G, host.ScreenColor.B))
	return io.window.UpdateSurface()
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		io.window.Destroy()
	}
	sdl.Quit()
}

// Input drains the SDL event queue into the machine keys. It returns false
// once the window was closed or Escape was pressed.
func (io *IO) Input(vm *internal.Machine) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			scancode := t.Keysym.Scancode
			if scancode == sdl.SCANCODE_ESCAPE {
				return false
			}
			if t.GetType() == sdl.KEYDOWN && scancode == sdl.SCANCODE_F5 && t.Repeat == 0 {
				if err := io.runner.Restart(); err != nil {
					return false
				}
				continue
			}
			code, ok := keymap(scancode)
			if !ok {
				continue
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				vm.SetKey(code, true)
			case sdl.KEYUP:
				vm.SetKey(code, false)
			}
		case *sdl.QuitEvent:
			return false
		}
	}
	return true
}

// Output redraws the window when the display changed
func (io *IO) Output(vm *internal.Machine) error {
	if !vm.IsDrawFlagSet() {
		return nil
	}
	io.draw(vm)
	vm.UnsetDrawFlag()
	return io.window.UpdateSurface()
}

// Draws the current framebuffer on screen
func (io *IO) draw(vm *internal.Machine) {
	screenColor := rgb(host.ScreenColor.R, host.ScreenColor.G, host.ScreenColor.B)
	spriteColor := rgb(host.SpriteColor.R, host.SpriteColor.G, host.SpriteColor.B)

	io.surface.FillRect(nil, screenColor)
	for h := int32(0); h < internal.ScreenHeight; h++ {
		for w := int32(0); w < internal.ScreenWidth; w++ {
			if vm.Pixel(int(w), int(h)) == 1 {
				rect := &sdl.Rect{X: w * io.scale, Y: h * io.scale, W: io.scale, H: io.scale}
				io.surface.FillRect(rect, spriteColor)
			}
		}
	}
}

func rgb(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8, by
// position, see the keypad package for the layout
func keymap(code sdl.Scancode) (uint8, bool) {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1, true
	case sdl.SCANCODE_2:
		return 0x2, true
	case sdl.SCANCODE_3:
		return 0x3, true
	case sdl.SCANCODE_4:
		return 0xC, true
	case sdl.SCANCODE_Q:
		return 0x4, true
	case sdl.SCANCODE_W:
		return 0x5, true
	case sdl.SCANCODE_E:
		return 0x6, true
	case sdl.SCANCODE_R:
		return 0xD, true
	case sdl.SCANCODE_A:
		return 0x7, true
	case sdl.SCANCODE_S:
		return 0x8, true
	case sdl.SCANCODE_D:
		return 0x9, true
	case sdl.SCANCODE_F:
		return 0xE, true
	case sdl.SCANCODE_Z:
		return 0xA, true
	case sdl.SCANCODE_X:
		return 0x0, true
	case sdl.SCANCODE_C:
		return 0xB, true
	case sdl.SCANCODE_V:
		return 0xF, true
	default:
		return 0, false
	}
}
