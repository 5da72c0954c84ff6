package main

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mnafees/chip8/pkg/host"
	"github.com/mnafees/chip8/pkg/term"
)

// Headless runner: steps a program a fixed number of times without a window
// and prints the final framebuffer.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts := &host.Options{}
	fs := host.NewFlagSet("chip8", stderr, opts)
	cycles := fs.Int("cycles", 1000, "instructions to execute")
	if err := host.Parse(fs, opts, args); errors.Is(err, host.ErrUsage) {
		fmt.Fprintln(stdout, host.Usage("chip8"))
		return 0
	}

	logger := host.NewLogger(stderr, opts.Verbose)

	vm, program, err := host.Boot(opts.Path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	runner := host.NewRunner(vm, program, opts.Hz, logger)
	status := 0
	for i := 0; i < *cycles; i++ {
		if err := runner.Step(); err != nil {
			logger.Error("machine stopped", "cycle", i, "err", err)
			status = 1
			break
		}
	}

	display := vm.Display()
	if err := term.Render(stdout, &display); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "pc=0x%03X dt=%d st=%d\n", vm.PC(), vm.DelayTimer(), vm.SoundTimer())
	return status
}
