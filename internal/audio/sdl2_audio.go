package audio

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// SDL2AudioOutput plays samples through the host's default audio device via
// SDL2's callback-driven audio API. PushSamples hands whole sample blocks
// to a small queue; the SDL callback, running on SDL's own audio thread,
// drains one block per invocation into the silence-filled ring it streams
// out.
type SDL2AudioOutput struct {
	device      sdl.AudioDeviceID
	spec        *sdl.AudioSpec
	config      AudioConfig
	playing     bool
	initialized bool

	pending chan []int16
	ring    silenceRing
}

// silenceRing is the scratch buffer the audio callback copies into before
// handing bytes to SDL; it defaults to silence whenever the queue is empty
// so underruns play as quiet, not glitchy, noise.
type silenceRing struct {
	mu     sync.Mutex
	frames []int16
}

func (r *silenceRing) fill(size int, source <-chan []int16) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.frames) != size {
		r.frames = make([]int16, size)
	}
	for i := range r.frames {
		r.frames[i] = 0
	}

	select {
	case block := <-source:
		n := len(block)
		if n > size {
			n = size
		}
		copy(r.frames[:n], block[:n])
	default:
	}
}

func (r *silenceRing) copyBytesTo(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := (*[1 << 30]byte)(unsafe.Pointer(&r.frames[0]))[: len(r.frames)*2 : len(r.frames)*2]
	n := len(dst)
	if n > len(src) {
		n = len(src)
	}
	copy(dst[:n], src[:n])
}

// NewSDL2AudioOutput constructs an unopened SDL2 backend; call Initialize
// before Start.
func NewSDL2AudioOutput() *SDL2AudioOutput {
	return &SDL2AudioOutput{pending: make(chan []int16, 10)}
}

// Initialize opens the default audio device with the given configuration.
func (s *SDL2AudioOutput) Initialize(config AudioConfig) error {
	if s.initialized {
		return ErrAudioAlreadyStarted
	}

	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioInitFailed, err)
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(config.SampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: Channels,
		Samples:  uint16(config.BufferSize),
		Callback: sdl.AudioCallback(s.audioCallback),
	}

	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("%w: %v", ErrAudioDeviceNotFound, err)
	}

	s.device = device
	s.spec = spec
	s.config = config
	s.ring.frames = make([]int16, int(config.BufferSize)*Channels)
	s.initialized = true
	return nil
}

// Start unpauses the device.
func (s *SDL2AudioOutput) Start() error {
	if !s.initialized {
		return ErrAudioNotInitialized
	}
	if s.playing {
		return ErrAudioAlreadyStarted
	}
	sdl.PauseAudioDevice(s.device, false)
	s.playing = true
	return nil
}

// Stop pauses the device.
func (s *SDL2AudioOutput) Stop() error {
	if !s.initialized {
		return ErrAudioNotInitialized
	}
	if !s.playing {
		return ErrAudioNotStarted
	}
	sdl.PauseAudioDevice(s.device, true)
	s.playing = false
	return nil
}

// PushSamples volume-scales samples and queues them for the next callback
// invocation, dropping the block rather than blocking if the queue is full.
func (s *SDL2AudioOutput) PushSamples(samples []int16) error {
	if !s.initialized {
		return ErrAudioNotInitialized
	}
	scaled := make([]int16, len(samples))
	copy(scaled, samples)
	ApplyVolume(scaled, s.config.Volume)

	select {
	case s.pending <- scaled:
		return nil
	default:
		return ErrBufferOverflow
	}
}

// SetVolume updates the volume applied to subsequently pushed samples.
func (s *SDL2AudioOutput) SetVolume(volume float32) error {
	if !s.initialized {
		return ErrAudioNotInitialized
	}
	if volume < 0.0 || volume > 1.0 {
		return ErrInvalidVolume
	}
	s.config.Volume = volume
	return nil
}

// GetConfig returns the configuration passed to Initialize.
func (s *SDL2AudioOutput) GetConfig() AudioConfig { return s.config }

// IsPlaying reports whether the device is currently unpaused.
func (s *SDL2AudioOutput) IsPlaying() bool { return s.playing }

// GetBufferLevel approximates fill level as a fraction of queue capacity.
func (s *SDL2AudioOutput) GetBufferLevel() float32 {
	return float32(len(s.pending)) / float32(cap(s.pending))
}

// Cleanup stops playback, closes the device, and tears down SDL audio.
func (s *SDL2AudioOutput) Cleanup() error {
	if !s.initialized {
		return nil
	}
	if s.playing {
		s.Stop()
	}
	sdl.CloseAudioDevice(s.device)
	sdl.Quit()
	close(s.pending)
	s.initialized = false
	return nil
}

// audioCallback runs on SDL's audio thread whenever it needs more data; it
// refills the ring from the pending queue (or silence, on underrun) and
// copies the resulting bytes into SDL's stream buffer.
func (s *SDL2AudioOutput) audioCallback(_ unsafe.Pointer, stream *uint8, length int32) {
	samplesNeeded := int(length) / 2
	s.ring.fill(samplesNeeded, s.pending)

	dst := (*[1 << 30]byte)(unsafe.Pointer(stream))[:length:length]
	s.ring.copyBytesTo(dst)
}
