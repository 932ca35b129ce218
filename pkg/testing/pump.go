package testing

import (
	"fmt"
	"time"

	"github.com/karto-app/karto/pkg/animation"
)

// FrameInterval is the frame period used by Pump helpers (60 Hz).
const FrameInterval = 16 * time.Millisecond

// FramePump couples a FakeClock with its own Scheduler so tests advance
// animation time explicitly, one frame at a time.
type FramePump struct {
	clock     *FakeClock
	scheduler *animation.Scheduler
	frames    int
}

// NewFramePump returns a pump with a fresh clock and scheduler.
func NewFramePump() *FramePump {
	clk := NewFakeClock()
	return &FramePump{clock: clk, scheduler: animation.NewScheduler(clk)}
}

// Clock returns the pump's fake clock.
func (p *FramePump) Clock() *FakeClock { return p.clock }

// Scheduler returns the scheduler driven by the pump. Pass it wherever an
// animation.TickerProvider is expected.
func (p *FramePump) Scheduler() *animation.Scheduler { return p.scheduler }

// Frames returns the number of frames pumped so far.
func (p *FramePump) Frames() int { return p.frames }

// Pump advances the clock by d and steps the scheduler once.
func (p *FramePump) Pump(d time.Duration) {
	p.clock.Advance(d)
	p.scheduler.Step()
	p.frames++
}

// PumpFrame advances the clock by one frame interval and steps the
// scheduler once.
func (p *FramePump) PumpFrame() {
	p.clock.AdvanceFrames(1)
	p.scheduler.Step()
	p.frames++
}

// PumpFor steps frame by frame until total has elapsed.
func (p *FramePump) PumpFor(total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += FrameInterval {
		p.PumpFrame()
	}
}

// Settle pumps frames until no tickers remain active. It returns an error
// if the animations are still running after maxFrames.
func (p *FramePump) Settle(maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		if !p.scheduler.HasActiveTickers() {
			return nil
		}
		p.PumpFrame()
	}
	if p.scheduler.HasActiveTickers() {
		return fmt.Errorf("animations still active after %d frames", maxFrames)
	}
	return nil
}
