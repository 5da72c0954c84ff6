// Package host holds what every CHIP-8 frontend needs around the machine:
// command line options, logging, loading a program and the clock loop.
package host

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// Default option values
const (
	DefaultHz    = 60
	DefaultScale = 20
)

// ErrUsage means the command line was not "name [flags] <program>".
var ErrUsage = errors.New("usage")

// Options are the settings shared by all executables.
type Options struct {
	Path    string // Program image to run
	Hz      int    // Steps per second, timers tick once per step
	Scale   int    // Window pixels per CHIP-8 pixel
	Mute    bool   // Disable the buzzer
	Verbose bool   // Debug logging
}

// Usage returns the one line usage message for an executable.
func Usage(name string) string {
	return fmt.Sprintf("Usage: %s [flags] <CHIP-8 program>", name)
}

// NewFlagSet registers the shared flags into a new flag set writing its
// defaults to w. Executables may add their own flags before parsing.
func NewFlagSet(name string, w io.Writer, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.IntVar(&opts.Hz, "hz", DefaultHz, "instructions per second")
	fs.IntVar(&opts.Scale, "scale", DefaultScale, "window pixels per CHIP-8 pixel")
	fs.BoolVar(&opts.Mute, "mute", false, "disable sound")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose logging")
	return fs
}

// Parse parses args (without the program name) into opts. Anything other
// than exactly one program path, or -h, returns ErrUsage.
func Parse(fs *flag.FlagSet, opts *Options, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrUsage
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return ErrUsage
	}
	if opts.Hz < 1 {
		return fmt.Errorf("%w: -hz must be positive", ErrUsage)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("%w: -scale must be positive", ErrUsage)
	}
	opts.Path = fs.Arg(0)
	return nil
}

// ParseOptions parses the shared flags only.
func ParseOptions(name string, w io.Writer, args []string) (*Options, error) {
	opts := &Options{}
	fs := NewFlagSet(name, w, opts)
	if err := Parse(fs, opts, args); err != nil {
		return nil, err
	}
	return opts, nil
}
