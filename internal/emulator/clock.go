package emulator

import (
	"fmt"
	"time"
)

// Game Boy timing constants.
const (
	// CPU_FREQUENCY is the DMG's master clock rate in Hz.
	CPU_FREQUENCY = 4194304

	// CYCLES_PER_FRAME is the cycle count of one full LCD refresh
	// (154 scanlines * 456 cycles), the emulator's natural frame boundary.
	CYCLES_PER_FRAME = 70224

	// FRAME_RATE is the display's nominal refresh rate.
	FRAME_RATE = 60

	// CYCLE_TIME_NS is the wall-clock duration of one CPU cycle at native speed.
	CYCLE_TIME_NS = 238

	// FRAME_DURATION_MS is the wall-clock budget for one frame at 60 FPS.
	FRAME_DURATION_MS = 16
)

// Clock tracks cycle and frame progress against wall-clock time so the
// emulator can either run unthrottled or pace itself to match real Game
// Boy hardware.
type Clock struct {
	TotalCycles uint64
	CycleTime   time.Duration
	StartTime   time.Time

	FrameCycles   uint64
	FrameCount    uint64
	FrameDuration time.Duration

	RealTimeMode    bool
	MaxSpeedMode    bool
	SpeedMultiplier float64

	CurrentFPS float64
	CurrentCPS float64

	throughput   throughputSampler
	lastFrameAt  time.Time
}

// throughputSampler accumulates cycle and frame counts over rolling
// one-second windows to produce the CurrentFPS/CurrentCPS readouts.
type throughputSampler struct {
	windowStart  time.Time
	cyclesInWindow uint64
	framesInWindow uint64
}

func newThroughputSampler(at time.Time) throughputSampler {
	return throughputSampler{windowStart: at}
}

// sample folds in newCycles/newFrames and, once a full second has elapsed
// since the window opened, returns fresh (fps, cps) values and resets.
func (s *throughputSampler) sample(now time.Time, newCycles, newFrames uint64) (fps, cps float64, rolled bool) {
	s.cyclesInWindow += newCycles
	s.framesInWindow += newFrames

	elapsed := now.Sub(s.windowStart)
	if elapsed < time.Second {
		return 0, 0, false
	}

	seconds := elapsed.Seconds()
	fps = float64(s.framesInWindow) / seconds
	cps = float64(s.cyclesInWindow) / seconds

	s.windowStart = now
	s.cyclesInWindow = 0
	s.framesInWindow = 0
	return fps, cps, true
}

// NewClock builds a clock configured for native Game Boy timing, starting
// its wall-clock reference point now.
func NewClock() *Clock {
	now := time.Now()
	return &Clock{
		CycleTime:       time.Duration(CYCLE_TIME_NS) * time.Nanosecond,
		StartTime:       now,
		FrameDuration:   time.Duration(FRAME_DURATION_MS) * time.Millisecond,
		RealTimeMode:    true,
		SpeedMultiplier: 1.0,
		throughput:      newThroughputSampler(now),
		lastFrameAt:     now,
	}
}

// AddCycles records cycles executed since the last call and refreshes the
// throughput counters. Non-positive values are ignored — there is no such
// thing as negative CPU progress.
func (c *Clock) AddCycles(cycles int) {
	if cycles <= 0 {
		return
	}
	n := uint64(cycles)
	c.TotalCycles += n
	c.FrameCycles += n

	if fps, cps, rolled := c.throughput.sample(time.Now(), n, 0); rolled {
		c.CurrentFPS, c.CurrentCPS = fps, cps
	}
}

// IsFrameComplete reports whether the current frame has accumulated a full
// scanline sweep's worth of cycles.
func (c *Clock) IsFrameComplete() bool {
	return c.FrameCycles >= CYCLES_PER_FRAME
}

// NextFrame closes out the current frame and starts counting the next one.
func (c *Clock) NextFrame() {
	c.FrameCycles = 0
	c.FrameCount++
	c.lastFrameAt = time.Now()
	if fps, cps, rolled := c.throughput.sample(c.lastFrameAt, 0, 1); rolled {
		c.CurrentFPS, c.CurrentCPS = fps, cps
	}
}

// ShouldWaitForTiming returns how long the caller should sleep to keep
// cumulative cycle execution from outrunning real Game Boy hardware; zero
// means run the next batch immediately.
func (c *Clock) ShouldWaitForTiming() time.Duration {
	if c.MaxSpeedMode || !c.RealTimeMode {
		return 0
	}
	budget := time.Duration(float64(c.TotalCycles) * float64(c.CycleTime) / c.SpeedMultiplier)
	spent := time.Since(c.StartTime)
	if budget > spent {
		return budget - spent
	}
	return 0
}

// ShouldWaitForFrame is the frame-granular counterpart of
// ShouldWaitForTiming, pacing to FrameDuration instead of cycle time.
func (c *Clock) ShouldWaitForFrame() time.Duration {
	if c.MaxSpeedMode || !c.RealTimeMode {
		return 0
	}
	target := time.Duration(float64(c.FrameDuration) / c.SpeedMultiplier)
	if since := time.Since(c.lastFrameAt); since < target {
		return target - since
	}
	return 0
}

// SetRealTimeMode toggles pacing against real hardware timing; enabling it
// always disables max-speed mode, since the two are mutually exclusive.
func (c *Clock) SetRealTimeMode(enabled bool) {
	c.RealTimeMode = enabled
	c.MaxSpeedMode = !enabled
}

// SetMaxSpeedMode toggles unthrottled execution.
func (c *Clock) SetMaxSpeedMode(enabled bool) {
	c.MaxSpeedMode = enabled
	c.RealTimeMode = !enabled
}

// SetSpeedMultiplier scales real-time pacing; non-positive values are
// rejected so the clock can never divide by zero or run backwards.
func (c *Clock) SetSpeedMultiplier(multiplier float64) {
	if multiplier > 0 {
		c.SpeedMultiplier = multiplier
	}
}

// GetElapsedTime returns wall-clock time since the clock started.
func (c *Clock) GetElapsedTime() time.Duration {
	return time.Since(c.StartTime)
}

// GetCurrentFPS returns the most recently measured frames-per-second.
func (c *Clock) GetCurrentFPS() float64 {
	return c.CurrentFPS
}

// GetCurrentCPS returns the most recently measured cycles-per-second.
func (c *Clock) GetCurrentCPS() float64 {
	return c.CurrentCPS
}

// GetStats is a convenience accessor bundling the four most commonly
// reported timing values.
func (c *Clock) GetStats() (totalCycles uint64, frameCount uint64, fps float64, cps float64) {
	return c.TotalCycles, c.FrameCount, c.CurrentFPS, c.CurrentCPS
}

// Reset zeroes cycle and frame counters and restarts wall-clock tracking.
// SpeedMultiplier is deliberately left alone — it is a user setting, not
// run state.
func (c *Clock) Reset() {
	now := time.Now()
	c.TotalCycles = 0
	c.FrameCycles = 0
	c.FrameCount = 0
	c.StartTime = now
	c.CurrentFPS = 0.0
	c.CurrentCPS = 0.0
	c.throughput = newThroughputSampler(now)
	c.lastFrameAt = now
}

// String renders a one-line summary of clock state for logging.
func (c *Clock) String() string {
	return fmt.Sprintf("Clock: %d cycles, %d frames, %.1f FPS, %.0f CPS, elapsed: %v",
		c.TotalCycles, c.FrameCount, c.CurrentFPS, c.CurrentCPS, c.GetElapsedTime())
}
