package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mnafees/chip8/pkg/beep"
	"github.com/mnafees/chip8/pkg/ebiten"
	"github.com/mnafees/chip8/pkg/host"
)

func main() {
	opts, err := host.ParseOptions("chopper-ebiten", os.Stderr, os.Args[1:])
	if errors.Is(err, host.ErrUsage) {
		fmt.Println(host.Usage("chopper-ebiten"))
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

	if err := ebiten.Run(ebiten.NewGame(runner), "Chopper | CHIP-8 Emulator", opts.Scale); err != nil {
		logger.Error("machine stopped", "err", err)
		os.Exit(1)
	}
}
