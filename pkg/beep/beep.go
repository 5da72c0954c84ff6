// Package beep sounds the CHIP-8 buzzer through oto.
package beep

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	DefaultSampleRate = 44100
	Frequency         = 440
	amplitude         = 0.2
)

// squareWave is a mono float32 little-endian stream that is silent unless active.
type squareWave struct {
	active atomic.Bool
	period int // samples per cycle
	pos    int
}

func newSquareWave(sampleRate, freq int) *squareWave {
	period := sampleRate / freq
	if period < 2 {
		period = 2
	}
	return &squareWave{period: period}
}

func (w *squareWave) Read(p []byte) (n int, err error) {
	on := w.active.Load()
	for n+4 <= len(p) {
		var sample float32
		if on {
			sample = amplitude
			if w.pos >= w.period/2 {
				sample = -amplitude
			}
		}
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(sample))
		w.pos = (w.pos + 1) % w.period
		n += 4
	}
	return
}

// Beeper plays the buzzer tone while active. A nil *Beeper is silent, so hosts
// without an audio device can keep using it.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	wave   *squareWave
}

// NewBeeper opens the audio device and starts a paused tone.
func NewBeeper(sampleRate int) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Beeper{
		ctx:  ctx,
		wave: newSquareWave(sampleRate, Frequency),
	}
	b.player = ctx.NewPlayer(b.wave)
	b.player.Play()
	return b, nil
}

// SetActive turns the tone on or off.
func (b *Beeper) SetActive(on bool) {
	if b == nil {
		return
	}
	b.wave.active.Store(on)
}

// Close stops playback.
func (b *Beeper) Close() error {
	if b == nil || b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	return err
}
