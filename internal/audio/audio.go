// Package audio drives APU sample output out to a concrete playback
// backend (SDL2, a WAV file, or a test double), handling the
// backend-agnostic concerns — configuration validation, volume, and
// stereo mixing helpers — once so each backend only has to implement
// AudioOutputInterface.
package audio

import "sync"

// Sample rate, buffer size, and channel layout bounds. DMG output is
// mono at the source (the mixer combines four channels into one), so
// stereo only enters the picture at this output boundary.
const (
	DefaultSampleRate = 44100
	DefaultBufferSize = 1024
	MinSampleRate     = 8000
	MaxSampleRate     = 96000
	MinBufferSize     = 256
	MaxBufferSize     = 4096

	SampleFormat = "int16"
	Channels     = 2
)

// AudioConfig describes how an AudioOutputInterface backend should be set up.
type AudioConfig struct {
	SampleRate int
	BufferSize int
	Volume     float32
	Enabled    bool
}

// AudioSample is a single interleaved stereo sample pair.
type AudioSample struct {
	Left  int16
	Right int16
}

// AudioOutputInterface is implemented by each concrete playback backend
// (SDL2 device, WAV file writer, test double) so AudioOutput can drive any
// of them identically.
type AudioOutputInterface interface {
	Initialize(config AudioConfig) error
	Start() error
	Stop() error
	PushSamples(samples []int16) error
	SetVolume(volume float32) error
	GetConfig() AudioConfig
	IsPlaying() bool
	GetBufferLevel() float32
	Cleanup() error
}

// AudioOutput wraps a backend with configuration validation and an
// enable/disable switch shared by every backend, guarded by a single lock.
type AudioOutput struct {
	mu      sync.RWMutex
	backend AudioOutputInterface
	config  AudioConfig
}

// NewAudioOutput wraps backend with default configuration.
func NewAudioOutput(backend AudioOutputInterface) *AudioOutput {
	return &AudioOutput{backend: backend, config: DefaultConfig()}
}

// Initialize validates config and hands it to the backend.
func (a *AudioOutput) Initialize(config AudioConfig) error {
	if err := ValidateConfig(config); err != nil {
		return err
	}
	a.mu.Lock()
	a.config = config
	a.mu.Unlock()
	return a.backend.Initialize(config)
}

// Start begins playback on the backend.
func (a *AudioOutput) Start() error { return a.backend.Start() }

// Stop pauses playback on the backend.
func (a *AudioOutput) Stop() error { return a.backend.Stop() }

// PushSamples forwards samples to the backend unless output is disabled,
// in which case they are silently dropped rather than buffered.
func (a *AudioOutput) PushSamples(samples []int16) error {
	if !a.IsEnabled() {
		return nil
	}
	return a.backend.PushSamples(samples)
}

// SetVolume clamps volume to [0,1] and applies it to both the locally
// cached config and the backend.
func (a *AudioOutput) SetVolume(volume float32) error {
	switch {
	case volume < 0.0:
		volume = 0.0
	case volume > 1.0:
		volume = 1.0
	}
	a.mu.Lock()
	a.config.Volume = volume
	a.mu.Unlock()
	return a.backend.SetVolume(volume)
}

// GetConfig returns the last configuration applied via Initialize/SetVolume/Enable.
func (a *AudioOutput) GetConfig() AudioConfig {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// IsPlaying reports whether the backend is currently playing.
func (a *AudioOutput) IsPlaying() bool { return a.backend.IsPlaying() }

// GetBufferLevel reports the backend's buffer fill fraction.
func (a *AudioOutput) GetBufferLevel() float32 { return a.backend.GetBufferLevel() }

// Enable toggles whether PushSamples forwards to the backend.
func (a *AudioOutput) Enable(enabled bool) {
	a.mu.Lock()
	a.config.Enabled = enabled
	a.mu.Unlock()
}

// IsEnabled reports the current enable/disable state.
func (a *AudioOutput) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config.Enabled
}

// Cleanup releases backend resources.
func (a *AudioOutput) Cleanup() error { return a.backend.Cleanup() }

// DefaultConfig returns a full-volume, enabled configuration at the
// standard 44.1kHz/1024-sample settings.
func DefaultConfig() AudioConfig {
	return AudioConfig{
		SampleRate: DefaultSampleRate,
		BufferSize: DefaultBufferSize,
		Volume:     1.0,
		Enabled:    true,
	}
}

// ValidateConfig rejects out-of-range sample rates, buffer sizes, or volumes.
func ValidateConfig(config AudioConfig) error {
	if config.SampleRate < MinSampleRate || config.SampleRate > MaxSampleRate {
		return ErrInvalidSampleRate
	}
	if config.BufferSize < MinBufferSize || config.BufferSize > MaxBufferSize {
		return ErrInvalidBufferSize
	}
	if config.Volume < 0.0 || config.Volume > 1.0 {
		return ErrInvalidVolume
	}
	return nil
}

// ConvertSamplesToStereo duplicates each mono sample across both channels.
func ConvertSamplesToStereo(mono []int16) []int16 {
	stereo := make([]int16, 0, len(mono)*2)
	for _, s := range mono {
		stereo = append(stereo, s, s)
	}
	return stereo
}

// MixStereoSamples interleaves independent left/right channel slices,
// truncating to the shorter of the two if they disagree in length.
func MixStereoSamples(left, right []int16) []int16 {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	stereo := make([]int16, 0, n*2)
	for i := 0; i < n; i++ {
		stereo = append(stereo, left[i], right[i])
	}
	return stereo
}

// ApplyVolume scales samples in place by volume, saturating at the int16
// range instead of wrapping on overflow.
func ApplyVolume(samples []int16, volume float32) {
	if volume == 1.0 {
		return
	}
	for i, s := range samples {
		scaled := float32(s) * volume
		switch {
		case scaled > 32767:
			samples[i] = 32767
		case scaled < -32768:
			samples[i] = -32768
		default:
			samples[i] = int16(scaled)
		}
	}
}
