package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnafees/chip8/internal"
)

func TestBoot(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "prog.ch8")
	require.NoError(t, os.WriteFile(path, []byte{0x60, 0x2A}, 0o644))

	vm, program, err := Boot(path)
	require.NoError(t, err)
	assert.Equal([]byte{0x60, 0x2A}, program)
	assert.Equal(uint16(internal.ProgramStart), vm.PC())
	assert.NoError(vm.Step())
	assert.Equal(uint16(internal.ProgramStart+2), vm.PC())
}

func TestBootMissing(t *testing.T) {
	_, _, err := Boot(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBootTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.ch8")
	require.NoError(t, os.WriteFile(path, make([]byte, internal.MaxProgramSize+1), 0o644))

	_, _, err := Boot(path)
	assert.ErrorIs(t, err, internal.ErrProgramTooLarge)
}
