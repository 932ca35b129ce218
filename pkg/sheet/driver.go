package sheet

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/karto-app/karto/pkg/animation"
)

// Transition timings.
const (
	OpenFadeDuration       = 220 * time.Millisecond
	CloseFadeDuration      = 200 * time.Millisecond
	CloseSlideDuration     = 250 * time.Millisecond
	DragCloseFadeDuration  = 180 * time.Millisecond
	DragCloseSlideDuration = 240 * time.Millisecond
	SnapBackFadeDuration   = 180 * time.Millisecond
)

// openSpring settles the panel without ever pulling it above rest.
func openSpring() animation.Spring {
	return animation.Spring{
		Description:       animation.SheetSpring(),
		OvershootClamping: true,
	}
}

// Driver owns the panel offset and backdrop opacity and runs the open,
// close and drag-release transitions over them.
//
// Every transition starts from the values' current positions, so a new one
// may interrupt any other without a jump. Only the closing transitions have
// completion callbacks and the closing flag guarantees at most one of them
// is in flight.
type Driver struct {
	// Offset is the panel's downward translation; 0 is fully open.
	Offset *animation.Value
	// Backdrop is the backdrop opacity in [0, 1].
	Backdrop *animation.Value

	height  float64
	closing bool
	logger  *log.Logger
}

// NewDriver creates a driver whose values tick on provider.
func NewDriver(provider animation.TickerProvider, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.Default()
	}
	d := &Driver{
		Offset:   animation.NewValue(provider, 0),
		Backdrop: animation.NewValue(provider, 0),
		logger:   logger,
	}
	d.Backdrop.SetBounds(0, 1)
	return d
}

// Height returns the height the driver was last reset to.
func (d *Driver) Height() float64 { return d.height }

// Reset stops everything and parks the panel fully closed at height.
func (d *Driver) Reset(height float64) {
	d.closing = false
	d.height = height
	d.Offset.SetBounds(0, height)
	d.Offset.Set(height)
	d.Backdrop.Set(0)
}

// IsClosing reports whether a close transition is in flight.
func (d *Driver) IsClosing() bool { return d.closing }

// IsAnimating reports whether any transition is in flight.
func (d *Driver) IsAnimating() bool {
	return d.closing || d.Offset.IsAnimating() || d.Backdrop.IsAnimating()
}

// Open fades the backdrop in and springs the panel to rest.
// It supersedes a close in flight, whose completion then never runs.
func (d *Driver) Open() {
	d.closing = false
	d.logger.Debug("sheet open", "height", d.height, "from", d.Offset.Get())
	d.Backdrop.AnimateTo(1, animation.Timing{Duration: OpenFadeDuration, Curve: animation.Linear}, nil)
	d.Offset.AnimateTo(0, openSpring(), nil)
}

// Close runs the programmatic close and calls done once it has finished.
// It returns false, doing nothing, when a close is already in flight.
func (d *Driver) Close(done func()) bool {
	return d.close(CloseFadeDuration, CloseSlideDuration, done)
}

// Release finishes a drag. When shouldClose is set it runs a faster close
// and calls done at the end, with the same guard as Close. Otherwise it
// snaps the panel back to rest and done is not called.
func (d *Driver) Release(shouldClose bool, done func()) bool {
	if shouldClose {
		return d.close(DragCloseFadeDuration, DragCloseSlideDuration, done)
	}
	if d.closing {
		return false
	}
	d.logger.Debug("sheet snap back", "from", d.Offset.Get())
	d.Backdrop.AnimateTo(1, animation.Timing{Duration: SnapBackFadeDuration, Curve: animation.Linear}, nil)
	d.Offset.AnimateTo(0, openSpring(), nil)
	return true
}

func (d *Driver) close(fade, slide time.Duration, done func()) bool {
	if d.closing {
		return false
	}
	d.closing = true
	d.logger.Debug("sheet close", "from", d.Offset.Get(), "slide", slide)
	d.Backdrop.AnimateTo(0, animation.Timing{Duration: fade, Curve: animation.EaseInOut}, nil)
	d.Offset.AnimateTo(d.height, animation.Timing{Duration: slide, Curve: animation.EaseInOut}, func(finished bool) {
		if !finished {
			return
		}
		d.closing = false
		if done != nil {
			done()
		}
	})
	return true
}

// Hold stops both values where they are so a drag can take over.
// It has no effect while closing.
func (d *Driver) Hold() bool {
	if d.closing {
		return false
	}
	d.Offset.Stop()
	d.Backdrop.Stop()
	return true
}

// Dispose stops both values without running completions.
func (d *Driver) Dispose() {
	d.closing = false
	d.Offset.Dispose()
	d.Backdrop.Dispose()
}
