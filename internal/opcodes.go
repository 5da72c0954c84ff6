package internal

// advance says how Step moves the program counter once an instruction ran.
type advance uint8

const (
	advanceNext advance = iota // sequential, pc += 2
	advanceSkip                // satisfied skip, pc += 4
	advanceNone                // control transfer, pc already set
)

// instruction is a fetched opcode split into its operand fields.
type instruction struct {
	opcode uint16
	x      uint8  // the lower 4 bits of the high byte of the instruction
	y      uint8  // the upper 4 bits of the low byte of the instruction
	n      uint8  // the lowest 4 bits of the instruction
	kk     uint8  // the lowest 8 bits of the instruction
	nnn    uint16 // the lowest 12 bits of the instruction
}

func decode(opcode uint16) instruction {
	return instruction{
		opcode: opcode,
		x:      uint8((opcode >> 8) & 0x000F),
		y:      uint8((opcode >> 4) & 0x000F),
		n:      uint8(opcode & 0x000F),
		kk:     uint8(opcode & 0x00FF),
		nnn:    opcode & 0x0FFF,
	}
}

// An opFunc executes one instruction. It must not modify the machine when it
// returns a fault, so that a faulting Step leaves no trace.
type opFunc func(vm *Machine, in instruction) (advance, error)

// Indexed by the top 4 bits of the instruction
var families = [16]opFunc{
	0x0: opSystem,
	0x1: opJump,
	0x2: opCall,
	0x3: opSkipEqualImm,
	0x4: opSkipNotEqualImm,
	0x5: opSkipEqualReg,
	0x6: opLoadImm,
	0x7: opAddImm,
	0x8: opALU,
	0x9: opSkipNotEqualReg,
	0xA: opLoadIndex,
	0xB: opJumpOffset,
	0xC: opRandom,
	0xD: opDraw,
	0xE: opKey,
	0xF: opMisc,
}

// 8xyN, indexed by N
var aluOps = [16]opFunc{
	0x0: opMove,
	0x1: opOr,
	0x2: opAnd,
	0x3: opXor,
	0x4: opAdd,
	0x5: opSub,
	0x6: opShiftRight,
	0x7: opSubN,
	0xE: opShiftLeft,
}

// FxKK, indexed by KK
var miscOps = map[uint8]opFunc{
	0x07: opGetDelay,
	0x0A: opWaitKey,
	0x15: opSetDelay,
	0x18: opSetSound,
	0x1E: opAddIndex,
	0x29: opFontGlyph,
	0x33: opStoreBCD,
	0x55: opStoreRegs,
	0x65: opLoadRegs,
}

// Step runs one fetch-decode-execute cycle and then ticks both timers.
//
// An unrecognized opcode is skipped like any sequential instruction and
// reported as an *ExecError wrapping ErrUnknownOpcode. Any other error is a
// fault: the machine state is left untouched and IsFatal reports true.
func (vm *Machine) Step() error {
	pc := vm.pc
	if int(pc)+1 >= TotalMemory {
		return &ExecError{PC: pc, Err: ErrAddressOutOfRange}
	}

	opcode := uint16(vm.memory[pc])<<8 | uint16(vm.memory[pc+1])
	in := decode(opcode)

	adv, err := families[opcode>>12](vm, in)
	if err != nil {
		err = &ExecError{PC: pc, Opcode: opcode, Err: err}
		if IsFatal(err) {
			return err
		}
	}
	vm.opcode = opcode

	switch adv {
	case advanceNext:
		vm.pc += 2
	case advanceSkip:
		vm.pc += 4
	}

	vm.tickTimers()
	return err
}

func opSystem(vm *Machine, in instruction) (advance, error) {
	switch in.nnn {
	case 0x0E0: // CLS
		vm.pixels = [DisplaySize]uint8{}
		vm.drawFlag = true
		return advanceNext, nil
	case 0x0EE: // RET
		if vm.sp == 0 {
			return advanceNone, ErrStackUnderflow
		}
		vm.sp--
		vm.pc = vm.stack[vm.sp]
		// Resume after the CALL that pushed the return address
		return advanceNext, nil
	}
	return advanceNext, ErrUnknownOpcode
}

// JP nnn
func opJump(vm *Machine, in instruction) (advance, error) {
	vm.pc = in.nnn
	return advanceNone, nil
}

// CALL nnn
func opCall(vm *Machine, in instruction) (advance, error) {
	if int(vm.sp) >= StackDepth {
		return advanceNone, ErrStackOverflow
	}
	vm.stack[vm.sp] = vm.pc
	vm.sp++
	vm.pc = in.nnn
	return advanceNone, nil
}

func skipIf(cond bool) (advance, error) {
	if cond {
		return advanceSkip, nil
	}
	return advanceNext, nil
}

// SE Vx, kk
func opSkipEqualImm(vm *Machine, in instruction) (advance, error) {
	return skipIf(vm.regV[in.x] == in.kk)
}

// SNE Vx, kk
func opSkipNotEqualImm(vm *Machine, in instruction) (advance, error) {
	return skipIf(vm.regV[in.x] != in.kk)
}

// SE Vx, Vy
func opSkipEqualReg(vm *Machine, in instruction) (advance, error) {
	if in.n != 0 {
		return advanceNext, ErrUnknownOpcode
	}
	return skipIf(vm.regV[in.x] == vm.regV[in.y])
}

// SNE Vx, Vy
func opSkipNotEqualReg(vm *Machine, in instruction) (advance, error) {
	if in.n != 0 {
		return advanceNext, ErrUnknownOpcode
	}
	return skipIf(vm.regV[in.x] != vm.regV[in.y])
}

// LD Vx, kk
func opLoadImm(vm *Machine, in instruction) (advance, error) {
	vm.regV[in.x] = in.kk
	return advanceNext, nil
}

// ADD Vx, kk
func opAddImm(vm *Machine, in instruction) (advance, error) {
	vm.regV[in.x] += in.kk
	return advanceNext, nil
}

func opALU(vm *Machine, in instruction) (advance, error) {
	op := aluOps[in.n]
	if op == nil {
		return advanceNext, ErrUnknownOpcode
	}
	return op(vm, in)
}

// LD Vx, Vy
func opMove(vm *Machine, in instruction) (advance, error) {
	vm.regV[in.x] = vm.regV[in.y]
	return advanceNext, nil
}

// OR Vx, Vy
func opOr(vm *Machine, in instruction) (advance, error) {
	vm.regV[in.x] |= vm.regV[in.y]
	return advanceNext, nil
}

// AND Vx, Vy
func opAnd(vm *Machine, in instruction) (advance, error) {
	vm.regV[in.x] &= vm.regV[in.y]
	return advanceNext, nil
}

// XOR Vx, Vy
func opXor(vm *Machine, in instruction) (advance, error) {
	vm.regV[in.x] ^= vm.regV[in.y]
	return advanceNext, nil
}

// ADD Vx, Vy
func opAdd(vm *Machine, in instruction) (advance, error) {
	sum := uint16(vm.regV[in.x]) + uint16(vm.regV[in.y])
	vm.regV[in.x] = uint8(sum)
	vm.regV[flagRegister] = uint8(sum >> 8)
	return advanceNext, nil
}

// SUB Vx, Vy
func opSub(vm *Machine, in instruction) (advance, error) {
	vx, vy := vm.regV[in.x], vm.regV[in.y]
	vm.regV[in.x] = vx - vy
	vm.regV[flagRegister] = boolToFlag(vx > vy)
	return advanceNext, nil
}

// SHR Vx {, Vy}
func opShiftRight(vm *Machine, in instruction) (advance, error) {
	vm.regV[flagRegister] = vm.regV[in.x] & 0x01
	vm.regV[in.x] /= 2
	return advanceNext, nil
}

// SUBN Vx, Vy
func opSubN(vm *Machine, in instruction) (advance, error) {
	vx, vy := vm.regV[in.x], vm.regV[in.y]
	vm.regV[in.x] = vy - vx
	vm.regV[flagRegister] = boolToFlag(vy > vx)
	return advanceNext, nil
}

// SHL Vx {, Vy}
func opShiftLeft(vm *Machine, in instruction) (advance, error) {
	vm.regV[flagRegister] = vm.regV[in.x] >> 7
	vm.regV[in.x] *= 2
	return advanceNext, nil
}

// LD I, nnn
func opLoadIndex(vm *Machine, in instruction) (advance, error) {
	vm.regI = in.nnn
	return advanceNext, nil
}

// JP V0, nnn
func opJumpOffset(vm *Machine, in instruction) (advance, error) {
	vm.pc = in.nnn + uint16(vm.regV[0])
	return advanceNone, nil
}

// RND Vx, kk
func opRandom(vm *Machine, in instruction) (advance, error) {
	vm.regV[in.x] = uint8(vm.rng.Uint32()) & in.kk
	return advanceNext, nil
}

// DRW Vx, Vy, n
//
// Sprites are neither wrapped nor clipped: a set bit past the right edge
// lands on the next row, and one past the end of the framebuffer faults.
func opDraw(vm *Machine, in instruction) (advance, error) {
	x, y := int(vm.regV[in.x]), int(vm.regV[in.y])
	rows := int(in.n)

	var sprite []uint8
	if rows > 0 {
		if int(vm.regI)+rows > TotalMemory {
			return advanceNone, ErrAddressOutOfRange
		}
		sprite = vm.memory[vm.regI : int(vm.regI)+rows]
	}

	for row, line := range sprite {
		for col := 0; col < 8; col++ {
			if line&(0x80>>col) != 0 && (y+row)*ScreenWidth+x+col >= DisplaySize {
				return advanceNone, ErrPixelOutOfRange
			}
		}
	}

	vm.regV[flagRegister] = 0
	for row, line := range sprite {
		for col := 0; col < 8; col++ {
			if line&(0x80>>col) == 0 {
				continue
			}
			px := &vm.pixels[(y+row)*ScreenWidth+x+col]
			if *px == 1 {
				vm.regV[flagRegister] = 1
			}
			*px ^= 1
		}
	}
	vm.drawFlag = true
	return advanceNext, nil
}

func opKey(vm *Machine, in instruction) (advance, error) {
	key := vm.regV[in.x]
	switch in.kk {
	case 0x9E, 0xA1:
		if key >= NumKeys {
			return advanceNone, ErrKeyOutOfRange
		}
	default:
		return advanceNext, ErrUnknownOpcode
	}

	if in.kk == 0x9E { // SKP Vx
		return skipIf(vm.keys[key])
	}
	// SKNP Vx
	return skipIf(!vm.keys[key])
}

func opMisc(vm *Machine, in instruction) (advance, error) {
	op, ok := miscOps[in.kk]
	if !ok {
		return advanceNext, ErrUnknownOpcode
	}
	return op(vm, in)
}

// LD Vx, DT
func opGetDelay(vm *Machine, in instruction) (advance, error) {
	vm.regV[in.x] = vm.delayTimer
	return advanceNext, nil
}

// LD Vx, K
//
// Polls rather than blocks: with no key down the program counter stays put
// and the host runs the same instruction again on its next Step.
func opWaitKey(vm *Machine, in instruction) (advance, error) {
	for key, pressed := range vm.keys {
		if pressed {
			vm.regV[in.x] = uint8(key)
			return advanceNext, nil
		}
	}
	return advanceNone, nil
}

// LD DT, Vx
func opSetDelay(vm *Machine, in instruction) (advance, error) {
	vm.delayTimer = vm.regV[in.x]
	return advanceNext, nil
}

// LD ST, Vx
func opSetSound(vm *Machine, in instruction) (advance, error) {
	vm.soundTimer = vm.regV[in.x]
	return advanceNext, nil
}

// ADD I, Vx
func opAddIndex(vm *Machine, in instruction) (advance, error) {
	vm.regI += uint16(vm.regV[in.x])
	return advanceNext, nil
}

// LD F, Vx
func opFontGlyph(vm *Machine, in instruction) (advance, error) {
	vm.regI = fontsetAddr + uint16(vm.regV[in.x])*glyphSize
	return advanceNext, nil
}

// LD B, Vx
func opStoreBCD(vm *Machine, in instruction) (advance, error) {
	if int(vm.regI)+3 > TotalMemory {
		return advanceNone, ErrAddressOutOfRange
	}
	vx := vm.regV[in.x]
	vm.memory[vm.regI] = vx / 100
	vm.memory[vm.regI+1] = (vx / 10) % 10
	vm.memory[vm.regI+2] = vx % 10
	return advanceNext, nil
}

// LD [I], Vx
func opStoreRegs(vm *Machine, in instruction) (advance, error) {
	count := int(in.x) + 1
	if int(vm.regI)+count > TotalMemory {
		return advanceNone, ErrAddressOutOfRange
	}
	copy(vm.memory[vm.regI:], vm.regV[:count])
	return advanceNext, nil
}

// LD Vx, [I]
func opLoadRegs(vm *Machine, in instruction) (advance, error) {
	count := int(in.x) + 1
	if int(vm.regI)+count > TotalMemory {
		return advanceNone, ErrAddressOutOfRange
	}
	copy(vm.regV[:count], vm.memory[vm.regI:])
	return advanceNext, nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
