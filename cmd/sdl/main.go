package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/mnafees/chip8/pkg/beep"
	"github.com/mnafees/chip8/pkg/host"
	"github.com/mnafees/chip8/pkg/sdl"
)

func init() {
	// SDL must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	opts, err := host.ParseOptions("chopper", os.Stderr, os.Args[1:])
	if errors.Is(err, host.ErrUsage) {
		fmt.Println(host.Usage("chopper"))
		return
	}

	logger := host.NewLogger(os.Stderr, opts.Verbose)

	vm, program, err := host.Boot(opts.Path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	runner := host.NewRunner(vm, program, opts.Hz, logger)
	if !opts.Mute {
		beeper, err := beep.NewBeeper(beep.DefaultSampleRate)
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		}
		defer beeper.Close()
		runner.SetSpeaker(beeper)
	}

	io := sdl.NewIO(runner, opts.Scale)
	defer io.Destroy()
	if err := io.SetupWindow("Chopper | CHIP-8 Emulator"); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runner.Run(ctx, io); err != nil {
		logger.Error("machine stopped", "err", err)
		os.Exit(1)
	}
}
