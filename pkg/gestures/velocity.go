package gestures

import (
	"time"

	"github.com/karto-app/karto/pkg/graphics"
)

// velocityWindow is how far back samples count toward the release velocity.
const velocityWindow = 100 * time.Millisecond

const maxSamples = 20

type sample struct {
	pos graphics.Offset
	at  time.Time
}

// VelocityTracker estimates pointer velocity from recent samples.
// Only samples inside a short trailing window are used so that a pause
// before release reads as a slow release, not as the earlier flick.
type VelocityTracker struct {
	samples []sample
}

// Reset discards all samples.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}

// Add records a position at time at.
func (v *VelocityTracker) Add(pos graphics.Offset, at time.Time) {
	if len(v.samples) == maxSamples {
		copy(v.samples, v.samples[1:])
		v.samples = v.samples[:maxSamples-1]
	}
	v.samples = append(v.samples, sample{pos: pos, at: at})
}

// Velocity returns the estimated velocity in units per second.
// It is zero when fewer than two samples fall in the window.
func (v *VelocityTracker) Velocity() graphics.Offset {
	if len(v.samples) < 2 {
		return graphics.Offset{}
	}
	last := v.samples[len(v.samples)-1]
	oldest := last
	for i := len(v.samples) - 2; i >= 0; i-- {
		s := v.samples[i]
		if last.at.Sub(s.at) > velocityWindow {
			break
		}
		oldest = s
	}
	dt := last.at.Sub(oldest.at).Seconds()
	if dt <= 0 {
		return graphics.Offset{}
	}
	return graphics.Offset{
		X: (last.pos.X - oldest.pos.X) / dt,
		Y: (last.pos.Y - oldest.pos.Y) / dt,
	}
}
