package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mnafees/chip8/internal"
)

// ErrQuit is returned by Cycle when the frontend asked to stop.
var ErrQuit = errors.New("quit")

// Frontend is the window, terminal or test double a Runner drives.
type Frontend interface {
	// Input updates the machine keys from host input. Returning false stops
	// the machine.
	Input(vm *internal.Machine) bool
	// Output presents the machine state after a step.
	Output(vm *internal.Machine) error
}

// Speaker is switched on and off with the sound timer.
type Speaker interface {
	SetActive(on bool)
}

// Runner steps a machine at a fixed rate on behalf of a frontend.
type Runner struct {
	vm      *internal.Machine
	log     *slog.Logger
	hz      int
	period  time.Duration
	speaker Speaker
	program []byte
}

// NewRunner returns a runner for vm stepping hz times per second. program is
// the loaded image, used by Restart.
func NewRunner(vm *internal.Machine, program []byte, hz int, logger *slog.Logger) *Runner {
	if hz < 1 {
		hz = DefaultHz
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		vm:      vm,
		log:     logger,
		hz:      hz,
		period:  time.Second / time.Duration(hz),
		program: program,
	}
}

// SetSpeaker attaches the buzzer. A nil speaker is allowed.
func (r *Runner) SetSpeaker(s Speaker) {
	r.speaker = s
}

// Machine returns the machine being run.
func (r *Runner) Machine() *internal.Machine {
	return r.vm
}

// Hz returns the number of cycles per second.
func (r *Runner) Hz() int {
	return r.hz
}

// Period returns the time between two cycles.
func (r *Runner) Period() time.Duration {
	return r.period
}

// Restart resets the machine and loads the program again.
func (r *Runner) Restart() error {
	r.vm.Reset()
	if err := r.vm.Load(r.program); err != nil {
		return err
	}
	r.log.Info("restarted")
	return nil
}

// Step runs one machine instruction. Unknown opcodes are logged and
// swallowed, faults are returned.
func (r *Runner) Step() error {
	pc := r.vm.PC()
	err := r.vm.Step()
	if internal.IsFatal(err) {
		return err
	}

	if err != nil {
		var execErr *internal.ExecError
		if errors.As(err, &execErr) {
			r.log.Warn("unrecognized instruction",
				"pc", fmt.Sprintf("0x%03X", execErr.PC),
				"opcode", fmt.Sprintf("0x%04X", execErr.Opcode),
			)
		}
	} else if r.log.Enabled(context.Background(), slog.LevelDebug) {
		r.log.Debug("exec",
			"pc", fmt.Sprintf("0x%03X", pc),
			"opcode", fmt.Sprintf("0x%04X", r.vm.Opcode()),
		)
	}

	if r.speaker != nil {
		r.speaker.SetActive(r.vm.SoundActive())
	}
	return nil
}

// Cycle polls input, steps once and presents the result.
func (r *Runner) Cycle(fe Frontend) error {
	if !fe.Input(r.vm) {
		return ErrQuit
	}
	if err := r.Step(); err != nil {
		return err
	}
	return fe.Output(r.vm)
}

// Run cycles the machine once per period until ctx is done, the frontend
// quits or the machine faults. Only a fault or an output error is returned.
func (r *Runner) Run(ctx context.Context, fe Frontend) error {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	defer func() {
		if r.speaker != nil {
			r.speaker.SetActive(false)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := r.Cycle(fe)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}
