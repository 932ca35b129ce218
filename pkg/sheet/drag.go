package sheet

import (
	"math"

	"github.com/karto-app/karto/pkg/animation"
)

// Dismiss thresholds. A release commits to closing when it is fast enough
// OR far enough; either alone suffices.
const (
	// DismissVelocity is the downward release speed, in units per second,
	// above which a drag dismisses.
	DismissVelocity = 900
	// DismissFraction is the share of the sheet height a drag must exceed
	// to dismiss.
	DismissFraction = 0.35
	// DragMinBackdrop is the backdrop opacity at a fully lowered panel while
	// the finger is still down.
	DragMinBackdrop = 0.1
)

// DragPhase is the state of a DragInterpreter.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
	DragCommitting
	DragSnappingBack
)

func (p DragPhase) String() string {
	switch p {
	case DragDragging:
		return "dragging"
	case DragCommitting:
		return "committing"
	case DragSnappingBack:
		return "snapping-back"
	default:
		return "idle"
	}
}

// ShouldDismiss decides a drag release. Non-finite readings never dismiss.
func ShouldDismiss(translation, velocity, height float64) bool {
	if !finite(translation) || !finite(velocity) || !finite(height) {
		return false
	}
	return velocity > DismissVelocity || translation > DismissFraction*height
}

// BackdropForOffset maps a dragged offset in [0, height] onto [1, DragMinBackdrop].
func BackdropForOffset(offset, height float64) float64 {
	if !(height > 0) {
		return 1
	}
	return animation.Interpolate(offset, 0, height, 1, DragMinBackdrop)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DragInterpreter turns drag start/update/end messages into writes to a
// Driver's values. While a drag is in progress it is the only writer.
type DragInterpreter struct {
	driver *Driver
	phase  DragPhase
	start  float64
}

// NewDragInterpreter returns an idle interpreter for d.
func NewDragInterpreter(d *Driver) *DragInterpreter {
	return &DragInterpreter{driver: d}
}

// Phase returns the current phase. A snap back reads as idle once the
// panel has come to rest.
func (i *DragInterpreter) Phase() DragPhase {
	if i.phase == DragSnappingBack && !i.driver.Offset.IsAnimating() {
		i.phase = DragIdle
	}
	return i.phase
}

// StartOffset returns the offset recorded when the drag began.
func (i *DragInterpreter) StartOffset() float64 { return i.start }

// Begin takes over the driver's values at their current positions.
// It returns false while the sheet is closing.
func (i *DragInterpreter) Begin() bool {
	if !i.driver.Hold() {
		return false
	}
	i.phase = DragDragging
	i.start = i.driver.Offset.Get()
	return true
}

// Update moves the panel to the start offset plus translation, clamped to
// the sheet, and returns the new offset and backdrop opacity.
func (i *DragInterpreter) Update(translation float64) (offset, backdrop float64) {
	d := i.driver
	if i.phase != DragDragging {
		return d.Offset.Get(), d.Backdrop.Get()
	}
	h := d.Height()
	if finite(translation) && !d.IsClosing() {
		offset = clampOffset(i.start+translation, h)
		d.Offset.Set(offset)
		d.Backdrop.Set(BackdropForOffset(offset, h))
	}
	return d.Offset.Get(), d.Backdrop.Get()
}

// End classifies the release and starts the matching transition. done is
// called after a committed close finishes. It returns whether the drag
// committed to closing.
func (i *DragInterpreter) End(translation, velocity float64, done func()) bool {
	if i.phase != DragDragging {
		return false
	}
	if i.driver.IsClosing() {
		// Something else already closed the sheet under the finger.
		i.phase = DragCommitting
		return false
	}
	dismiss := ShouldDismiss(translation, velocity, i.driver.Height())
	if dismiss {
		i.phase = DragCommitting
		i.driver.Release(true, func() {
			i.phase = DragIdle
			if done != nil {
				done()
			}
		})
		return true
	}
	i.phase = DragSnappingBack
	i.driver.Release(false, nil)
	return false
}

// Cancel abandons a drag and snaps the panel back.
func (i *DragInterpreter) Cancel() {
	if i.phase != DragDragging || i.driver.IsClosing() {
		return
	}
	i.phase = DragSnappingBack
	i.driver.Release(false, nil)
}

// reset forces the interpreter idle, used when the sheet reopens.
func (i *DragInterpreter) reset() {
	i.phase = DragIdle
	i.start = 0
}

func clampOffset(v, height float64) float64 {
	if v < 0 {
		return 0
	}
	if v > height {
		return height
	}
	return v
}
