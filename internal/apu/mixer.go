package apu

import "math"

// Mixer combines the four channels' samples into stereo output per
// NR50 (master volume) and NR51 (channel routing). It holds no state of
// its own; every call is a pure function of its arguments.
type Mixer struct{}

// NewMixer returns a ready-to-use Mixer.
func NewMixer() *Mixer {
	return &Mixer{}
}

// Reset is a no-op; Mixer carries no state to reset.
func (m *Mixer) Reset() {}

// routingBits pairs a channel's left/right NR51 routing bits so Mix and
// GetMixerInfo can iterate the same table instead of repeating four
// near-identical bit tests each.
type routingBits struct {
	left, right uint8
}

var channelRouting = [4]routingBits{
	{0x10, 0x01}, // CH1
	{0x20, 0x02}, // CH2
	{0x40, 0x04}, // CH3
	{0x80, 0x08}, // CH4
}

// Mix sums whichever channel samples NR51 routes to each stereo side,
// averages across the 4 channel slots, applies NR50's per-side volume,
// and clamps to the valid [-1, 1] sample range.
func (m *Mixer) Mix(ch1, ch2, ch3, ch4 float32, nr50, nr51 uint8) (float32, float32) {
	samples := [4]float32{ch1, ch2, ch3, ch4}

	var leftMix, rightMix float64
	for i, route := range channelRouting {
		if nr51&route.left != 0 {
			leftMix += float64(samples[i])
		}
		if nr51&route.right != 0 {
			rightMix += float64(samples[i])
		}
	}

	leftVolume, rightVolume := masterVolumes(nr50)
	left := m.clamp(float32(leftMix/4.0) * leftVolume)
	right := m.clamp(float32(rightMix/4.0) * rightVolume)
	return left, right
}

// masterVolumes decodes NR50's left (bits 6-4) and right (bits 2-0)
// volume fields to 0.0-1.0 scale factors.
func masterVolumes(nr50 uint8) (left, right float32) {
	return float32((nr50>>4)&0x07) / 7.0, float32(nr50&0x07) / 7.0
}

// clamp restricts a sample to the valid audio range [-1.0, 1.0].
func (m *Mixer) clamp(sample float32) float32 {
	return float32(math.Max(-1.0, math.Min(1.0, float64(sample))))
}

// GetMixerInfo reports NR50/NR51 decoded into human-readable form, for
// debugging tools.
func (m *Mixer) GetMixerInfo(nr50, nr51 uint8) MixerInfo {
	leftVolume, rightVolume := masterVolumes(nr50)
	return MixerInfo{
		LeftVolume:  leftVolume,
		RightVolume: rightVolume,
		Ch1Left:     nr51&channelRouting[0].left != 0,
		Ch1Right:    nr51&channelRouting[0].right != 0,
		Ch2Left:     nr51&channelRouting[1].left != 0,
		Ch2Right:    nr51&channelRouting[1].right != 0,
		Ch3Left:     nr51&channelRouting[2].left != 0,
		Ch3Right:    nr51&channelRouting[2].right != 0,
		Ch4Left:     nr51&channelRouting[3].left != 0,
		Ch4Right:    nr51&channelRouting[3].right != 0,
	}
}

// MixerInfo contains information about mixer configuration
type MixerInfo struct {
	LeftVolume  float32
	RightVolume float32
	Ch1Left     bool
	Ch1Right    bool
	Ch2Left     bool
	Ch2Right    bool
	Ch3Left     bool
	Ch3Right    bool
	Ch4Left     bool
	Ch4Right    bool
}