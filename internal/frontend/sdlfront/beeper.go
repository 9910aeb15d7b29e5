package sdlfront

// void audioCallback(void *userdata, unsigned char *stream, int len);
import "C"

import (
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	toneHz     = 440
	amplitude  = 24
)

// samples of the tone already written, only touched by the audio thread
var tonePosition int

type beeper struct {
	id sdl.AudioDeviceID
}

func newBeeper() (*beeper, error) {
	spec := sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S8,
		Channels: 2,
		Samples:  512,
		Callback: sdl.AudioCallback(C.audioCallback),
	}
	id, err := sdl.OpenAudioDevice(sdl.GetAudioDeviceName(0, false), false, &spec, nil, 0)
	if err != nil {
		return nil, err
	}

	return &beeper{id}, nil
}

// Beep pauses or unpauses the device, the callback always produces the tone.
func (b *beeper) Beep(on bool) {
	sdl.PauseAudioDevice(b.id, !on)
}

func (b *beeper) close() {
	sdl.CloseAudioDevice(b.id)
}

//export audioCallback
func audioCallback(_ unsafe.Pointer, stream *C.uchar, length C.int) {
	const period = sampleRate / toneHz
	n := int(length)
	buf := unsafe.Slice((*C.schar)(unsafe.Pointer(stream)), n)

	for i := 0; i+1 < n; i += 2 {
		sample := C.schar(amplitude)
		if tonePosition >= period/2 {
			sample = -amplitude
		}

		buf[i] = sample
		buf[i+1] = sample

		tonePosition++
		if tonePosition == period {
			tonePosition = 0
		}
	}
}
