package host

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnafees/chip8/internal"
)

type fakeFrontend struct {
	inputs  int
	outputs int
	quitAt  int
	key     int
}

func (fe *fakeFrontend) Input(vm *internal.Machine) bool {
	fe.inputs++
	if fe.key >= 0 && fe.inputs >= 3 {
		vm.SetKey(uint8(fe.key), true)
	}
	return fe.quitAt == 0 || fe.inputs < fe.quitAt
}

func (fe *fakeFrontend) Output(vm *internal.Machine) error {
	fe.outputs++
	return nil
}

type fakeSpeaker struct {
	states []bool
}

func (s *fakeSpeaker) SetActive(on bool) {
	s.states = append(s.states, on)
}

func newRunner(t *testing.T, log *bytes.Buffer, program ...byte) *Runner {
	t.Helper()
	vm := internal.NewMachine()
	require.NoError(t, vm.Load(program))
	return NewRunner(vm, program, 1000, NewLogger(log, false))
}

func TestRunnerSpeaker(t *testing.T) {
	assert := assert.New(t)

	var log bytes.Buffer
	// LD V0, 2; LD ST, V0; JP 0x204
	r := newRunner(t, &log, 0x60, 0x02, 0xF0, 0x18, 0x12, 0x04)
	speaker := &fakeSpeaker{}
	r.SetSpeaker(speaker)

	fe := &fakeFrontend{key: -1}
	for range 4 {
		assert.NoError(r.Cycle(fe))
	}

	assert.Equal([]bool{false, true, false, false}, speaker.states)
	assert.Equal(4, fe.outputs)
}

func TestRunnerUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	var log bytes.Buffer
	r := newRunner(t, &log, 0x01, 0x23, 0x60, 0x07)

	assert.NoError(r.Step())
	assert.Contains(log.String(), "unrecognized instruction")
	assert.Contains(log.String(), "pc=0x200")
	assert.Contains(log.String(), "opcode=0x0123")

	assert.NoError(r.Step())
	assert.Equal(uint16(0x204), r.Machine().PC())
}

func TestRunnerFault(t *testing.T) {
	assert := assert.New(t)

	var log bytes.Buffer
	r := newRunner(t, &log, 0x00, 0xEE)

	err := r.Run(context.Background(), &fakeFrontend{key: -1})
	assert.ErrorIs(err, internal.ErrStackUnderflow)
}

func TestRunnerQuit(t *testing.T) {
	assert := assert.New(t)

	var log bytes.Buffer
	// LD V5, K; JP 0x202
	r := newRunner(t, &log, 0xF5, 0x0A, 0x12, 0x02)

	fe := &fakeFrontend{quitAt: 6, key: 0xB}
	assert.NoError(r.Run(context.Background(), fe))
	assert.Equal(6, fe.inputs)
	assert.Equal(5, fe.outputs)
	assert.Equal(uint16(0x202), r.Machine().PC())

	assert.ErrorIs(r.Cycle(&fakeFrontend{quitAt: 1}), ErrQuit)
}

func TestRunnerContext(t *testing.T) {
	var log bytes.Buffer
	r := newRunner(t, &log, 0x12, 0x00)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	fe := &fakeFrontend{key: -1}
	assert.NoError(t, r.Run(ctx, fe))
	assert.Positive(t, fe.outputs)
}

func TestRunnerRestart(t *testing.T) {
	assert := assert.New(t)

	var log bytes.Buffer
	r := newRunner(t, &log, 0x60, 0x07, 0x12, 0x02)

	assert.NoError(r.Step())
	assert.NoError(r.Step())
	assert.Equal(uint16(0x202), r.Machine().PC())

	assert.NoError(r.Restart())
	assert.Equal(uint16(internal.ProgramStart), r.Machine().PC())
	assert.NoError(r.Step())
	assert.Contains(log.String(), "restarted")
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(internal.NewMachine(), nil, 0, nil)
	assert.Equal(t, time.Second/DefaultHz, r.Period())
}
