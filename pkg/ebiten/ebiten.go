// Package ebiten is a CHIP-8 frontend built on Ebitengine.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mnafees/chip8/internal"
	"github.com/mnafees/chip8/pkg/host"
)

// Same layout as the keypad package, by physical key
var keymap = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// Game drives a host.Runner from the Ebitengine update loop, which ticks at
// the runner's rate.
type Game struct {
	runner *host.Runner
	pixels []byte
}

// NewGame returns a game for runner.
func NewGame(runner *host.Runner) *Game {
	g := &Game{
		runner: runner,
		pixels: make([]byte, internal.DisplaySize*4),
	}
	display := runner.Machine().Display()
	host.FillRGBA(g.pixels, &display, host.SpriteColor, host.ScreenColor)
	return g
}

// Input implements host.Frontend.
func (g *Game) Input(vm *internal.Machine) bool {
	for key, code := range keymap {
		vm.SetKey(code, ebiten.IsKeyPressed(key))
	}
	return true
}

// Output implements host.Frontend.
func (g *Game) Output(vm *internal.Machine) error {
	if vm.IsDrawFlagSet() {
		display := vm.Display()
		host.FillRGBA(g.pixels, &display, host.SpriteColor, host.ScreenColor)
		vm.UnsetDrawFlag()
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := g.runner.Restart(); err != nil {
			return err
		}
	}
	return g.runner.Cycle(g)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pixels)
}

// Layout implements ebiten.Game. The screen is the CHIP-8 framebuffer and
// Ebitengine scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return internal.ScreenWidth, internal.ScreenHeight
}

// Run opens the window and blocks until it is closed or the machine faults.
func Run(g *Game, title string, scale int) error {
	ebiten.SetWindowSize(internal.ScreenWidth*scale, internal.ScreenHeight*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(g.runner.Hz())
	return ebiten.RunGame(g)
}
