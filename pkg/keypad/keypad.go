// Package keypad maps host keyboards onto the CHIP-8 hex keypad.
package keypad

import (
	"unicode"
)

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
var qwerty = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Lookup returns the keypad key for a typed character, ignoring case.
func Lookup(r rune) (key uint8, ok bool) {
	key, ok = qwerty[unicode.ToLower(r)]
	return
}

// KeySetter receives keypad state, usually a *internal.Machine.
type KeySetter interface {
	SetKey(key uint8, pressed bool)
}

// Latch keeps a key down for a number of cycles after it was seen. Terminals
// only report key presses, never releases.
type Latch struct {
	hold int
	left [16]int
}

// NewLatch returns a latch holding each press for hold cycles.
func NewLatch(hold int) *Latch {
	if hold < 1 {
		hold = 1
	}
	return &Latch{hold: hold}
}

// Press marks key as down for the next hold cycles.
func (l *Latch) Press(key uint8) {
	if int(key) < len(l.left) {
		l.left[key] = l.hold
	}
}

// Apply writes the latched state to ks and counts every held key down by one.
func (l *Latch) Apply(ks KeySetter) {
	for key := range l.left {
		ks.SetKey(uint8(key), l.left[key] > 0)
		if l.left[key] > 0 {
			l.left[key]--
		}
	}
}
