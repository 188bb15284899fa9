package audio

import (
	"fmt"
	"os"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVAudioOutput implements AudioOutputInterface by capturing every pushed
// sample to a standard PCM WAV file instead of a live device. Useful for
// scan/validate batch runs and headless sessions where no SDL2 audio device
// is available, and for offline inspection of a session's mixed output.
type WAVAudioOutput struct {
	file    *os.File
	encoder *wav.Encoder
	config  AudioConfig
	mutex   sync.Mutex
	playing bool
	written int
}

// NewWAVAudioOutput creates a driver that writes mixed PCM to path on Cleanup.
func NewWAVAudioOutput(path string) (*WAVAudioOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioInitFailed, err)
	}
	return &WAVAudioOutput{file: f}, nil
}

func (w *WAVAudioOutput) Initialize(config AudioConfig) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.encoder != nil {
		return ErrAudioAlreadyStarted
	}
	if config.SampleRate < MinSampleRate || config.SampleRate > MaxSampleRate {
		return ErrInvalidSampleRate
	}

	w.config = config
	w.encoder = wav.NewEncoder(w.file, config.SampleRate, 16, Channels, 1)
	return nil
}

func (w *WAVAudioOutput) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.encoder == nil {
		return ErrAudioNotInitialized
	}
	w.playing = true
	return nil
}

func (w *WAVAudioOutput) Stop() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.playing = false
	return nil
}

// PushSamples appends interleaved stereo int16 samples to the WAV stream.
func (w *WAVAudioOutput) PushSamples(samples []int16) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.encoder == nil {
		return ErrAudioNotInitialized
	}
	if !w.playing {
		return nil
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: Channels, SampleRate: w.config.SampleRate},
		Data:   data,
		SourceBitDepth: 16,
	}
	if err := w.encoder.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioStartFailed, err)
	}
	w.written += len(samples)
	return nil
}

func (w *WAVAudioOutput) SetVolume(volume float32) error {
	if volume < 0.0 || volume > 1.0 {
		return ErrInvalidVolume
	}
	w.mutex.Lock()
	w.config.Volume = volume
	w.mutex.Unlock()
	return nil
}

func (w *WAVAudioOutput) GetConfig() AudioConfig {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.config
}

func (w *WAVAudioOutput) IsPlaying() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.playing
}

// GetBufferLevel is always 0: the WAV driver has no ring buffer, it writes
// through immediately.
func (w *WAVAudioOutput) GetBufferLevel() float32 { return 0 }

// Cleanup flushes the WAV header/trailer and closes the file.
func (w *WAVAudioOutput) Cleanup() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.playing = false
	if w.encoder != nil {
		if err := w.encoder.Close(); err != nil {
			w.file.Close()
			return fmt.Errorf("%w: %v", ErrAudioStopFailed, err)
		}
	}
	return w.file.Close()
}
