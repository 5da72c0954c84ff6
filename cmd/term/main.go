package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mnafees/chip8/pkg/beep"
	"github.com/mnafees/chip8/pkg/host"
	"github.com/mnafees/chip8/pkg/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := &host.Options{}
	fs := host.NewFlagSet("chopper-term", os.Stderr, opts)
	hold := fs.Int("hold", 6, "cycles a key stays pressed after it is typed")
	if err := host.Parse(fs, opts, os.Args[1:]); errors.Is(err, host.ErrUsage) {
		fmt.Println(host.Usage("chopper-term"))
		return 0
	}

	logger := host.NewLogger(os.Stderr, opts.Verbose)

	vm, program, err := host.Boot(opts.Path)
	if err != nil {
		fmt.Println(err)
		return 1
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

	tm := term.New(os.Stdin, os.Stdout, *hold)
	if err := tm.Start(); err != nil {
		fmt.Println(err)
		return 1
	}

	err = runner.Run(context.Background(), tm)
	tm.Stop()
	if err != nil {
		logger.Error("machine stopped", "err", err)
		return 1
	}
	return 0
}
