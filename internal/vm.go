package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"math/rand/v2"
)

// CHIP-8 machine constants
const (
	TotalMemory    = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = TotalMemory - ProgramStart

	ScreenWidth  = 64
	ScreenHeight = 32
	DisplaySize  = ScreenWidth * ScreenHeight

	NumKeys    = 16
	StackDepth = 16

	fontsetAddr  = 0x000
	glyphSize    = 5
	flagRegister = 0xF
)

// Machine is an emulated CHIP-8 machine. It is not safe for concurrent use;
// the host steps it and updates its keys from a single goroutine.
type Machine struct {
	opcode     uint16             // 16-bit opcode of the current instruction
	regV       [16]uint8          // 16 general purpose 8-bit registers, VF doubles as the flags register
	regI       uint16             // 16-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	sp         uint8              // Stack pointer, the next free slot
	stack      [StackDepth]uint16 // Return addresses
	memory     [TotalMemory]uint8 // 4 KB global memory

	// 64 px x 32 px display, one byte per pixel, row-major
	pixels   [DisplaySize]uint8
	drawFlag bool

	keys [NumKeys]bool

	rng *rand.Rand
}

var fontset = [...]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// NewMachine creates a new CHIP-8 machine with the font loaded and the
// program counter at the program start.
func NewMachine() *Machine {
	vm := &Machine{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	vm.Reset()
	return vm
}

// Reset returns the machine to its power-on state. Program memory is cleared,
// so the host has to Load the program again.
func (vm *Machine) Reset() {
	rng := vm.rng
	*vm = Machine{
		pc:   ProgramStart,
		regI: ProgramStart,
		rng:  rng,
	}
	copy(vm.memory[fontsetAddr:], fontset[:])
}

// SetRandSource replaces the source used by the RND instruction.
func (vm *Machine) SetRandSource(src rand.Source) {
	vm.rng = rand.New(src)
}

// Load copies a program image into memory at the program start. Nothing else
// is touched. An image larger than MaxProgramSize is rejected as a whole.
func (vm *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return &ProgramSizeError{Size: len(program)}
	}
	copy(vm.memory[ProgramStart:], program)
	return nil
}

// Display returns a copy of the framebuffer. Each cell is 0 or 1 and the
// pixel at (x, y) lives at y*ScreenWidth + x.
func (vm *Machine) Display() [DisplaySize]byte {
	return vm.pixels
}

// Pixel returns the pixel at (x, y), or 0 outside the screen.
func (vm *Machine) Pixel(x, y int) byte {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return 0
	}
	return vm.pixels[y*ScreenWidth+x]
}

// SoundActive reports whether the buzzer should be sounding.
func (vm *Machine) SoundActive() bool {
	return vm.soundTimer > 0
}

// IsDrawFlagSet returns whether the display changed since the flag was last unset
func (vm *Machine) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *Machine) UnsetDrawFlag() {
	vm.drawFlag = false
}

// DelayTimer returns the value of DT
func (vm *Machine) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *Machine) SoundTimer() uint8 {
	return vm.soundTimer
}

// PC returns the program counter
func (vm *Machine) PC() uint16 {
	return vm.pc
}

// Opcode returns the last opcode Step executed
func (vm *Machine) Opcode() uint16 {
	return vm.opcode
}

// SetKey records the state of a hex keypad key. Keys above 0xF are ignored.
func (vm *Machine) SetKey(key uint8, pressed bool) {
	if key < NumKeys {
		vm.keys[key] = pressed
	}
}

// Key reports whether a hex keypad key is held down.
func (vm *Machine) Key(key uint8) bool {
	return key < NumKeys && vm.keys[key]
}

// ReleaseKeys marks every key as released.
func (vm *Machine) ReleaseKeys() {
	vm.keys = [NumKeys]bool{}
}

func (vm *Machine) tickTimers() {
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
}
