package host

import (
	"fmt"
	"os"

	"github.com/mnafees/chip8/internal"
)

// ReadProgram reads a whole program image from disk.
func ReadProgram(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return data, nil
}

// Boot reads the program at path into a new machine. The image is returned
// as well so frontends can reload it after a reset.
func Boot(path string) (*internal.Machine, []byte, error) {
	program, err := ReadProgram(path)
	if err != nil {
		return nil, nil, err
	}
	vm := internal.NewMachine()
	if err := vm.Load(program); err != nil {
		return nil, nil, fmt.Errorf("%v: %w", path, err)
	}
	return vm, program, nil
}
