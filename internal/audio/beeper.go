// Package audio plays the sound timer tone through oto.
package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	SampleRate = 44100
	ToneHz     = 440
	Amplitude  = 0.15

	bytesPerSample = 4
)

// Beeper is a square wave generator that is silent unless switched on.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player

	on    atomic.Bool
	wave  squareWave
	mutex sync.Mutex
}

// NewBeeper opens the audio device and starts a silent player.
func NewBeeper() (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Beeper{
		ctx:  ctx,
		wave: squareWave{period: SampleRate / ToneHz},
	}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// Beep switches the tone on or off.
func (b *Beeper) Beep(on bool) {
	b.on.Store(on)
}

// Read implements io.Reader for the oto player.
func (b *Beeper) Read(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	n := len(p) / bytesPerSample
	amplitude := float32(0)
	if b.on.Load() {
		amplitude = Amplitude
	}

	for index := range n {
		sample := b.wave.next(amplitude)
		binary.LittleEndian.PutUint32(p[index*bytesPerSample:], math.Float32bits(sample))
	}
	return n * bytesPerSample, nil
}

func (b *Beeper) Close() error {
	b.on.Store(false)
	return b.player.Close()
}

type squareWave struct {
	period int // samples per cycle
	pos    int
}

func (w *squareWave) next(amplitude float32) float32 {
	sample := amplitude
	if w.pos >= w.period/2 {
		sample = -amplitude
	}

	w.pos++
	if w.pos >= w.period {
		w.pos = 0
	}
	return sample
}
