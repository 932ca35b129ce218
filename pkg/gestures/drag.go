package gestures

import (
	"math"

	"github.com/karto-app/karto/pkg/graphics"
)

// VerticalDragRecognizer recognizes vertical drags that begin inside Region.
//
// A pointer that goes down outside Region is ignored entirely, which is how
// a sheet restricts dragging to its handle and leaves scrollable content
// alone. Once the pointer travels more than Slop, the drag is accepted if
// the movement is mostly vertical and rejected otherwise.
type VerticalDragRecognizer struct {
	// Region reports whether a pointer down at a position may start a drag.
	// Nil accepts every position.
	Region func(graphics.Offset) bool
	// Slop overrides DefaultTouchSlop when positive.
	Slop float64

	OnStart  func(DragStartDetails)
	OnUpdate func(DragUpdateDetails)
	OnEnd    func(DragEndDetails)
	OnCancel func()

	tracking bool
	accepted bool
	pointer  int64
	start    graphics.Offset
	last     graphics.Offset
	tracker  VelocityTracker
}

// IsDragging reports whether an accepted drag is in progress.
func (r *VerticalDragRecognizer) IsDragging() bool {
	return r.tracking && r.accepted
}

// IsTracking reports whether a pointer is being followed, accepted or not.
func (r *VerticalDragRecognizer) IsTracking() bool {
	return r.tracking
}

// HandleEvent feeds one pointer event and reports whether the recognizer
// consumed it.
func (r *VerticalDragRecognizer) HandleEvent(e PointerEvent) bool {
	switch e.Phase {
	case PointerPhaseDown:
		return r.down(e)
	case PointerPhaseMove:
		return r.move(e)
	case PointerPhaseUp:
		return r.up(e)
	case PointerPhaseCancel:
		return r.cancel(e)
	}
	return false
}

func (r *VerticalDragRecognizer) down(e PointerEvent) bool {
	if r.tracking {
		// A second pointer never takes over an active drag.
		return r.accepted
	}
	if r.Region != nil && !r.Region(e.Position) {
		return false
	}
	r.tracking = true
	r.accepted = false
	r.pointer = e.PointerID
	r.start = e.Position
	r.last = e.Position
	r.tracker.Reset()
	r.tracker.Add(e.Position, e.Time)
	return true
}

func (r *VerticalDragRecognizer) move(e PointerEvent) bool {
	if !r.tracking || e.PointerID != r.pointer {
		return false
	}
	r.tracker.Add(e.Position, e.Time)
	total := e.Position.Sub(r.start)

	if !r.accepted {
		slop := r.Slop
		if slop <= 0 {
			slop = DefaultTouchSlop
		}
		primary := math.Abs(total.Y)
		orthogonal := math.Abs(total.X)
		switch {
		case primary > slop && primary >= orthogonal:
			r.accepted = true
			if r.OnStart != nil {
				r.OnStart(DragStartDetails{Position: r.start})
			}
		case orthogonal > slop:
			r.tracking = false
			return false
		default:
			r.last = e.Position
			return true
		}
	}

	delta := e.Position.Y - r.last.Y
	r.last = e.Position
	if r.OnUpdate != nil {
		r.OnUpdate(DragUpdateDetails{
			Position:    e.Position,
			Delta:       delta,
			Translation: total.Y,
		})
	}
	return true
}

func (r *VerticalDragRecognizer) up(e PointerEvent) bool {
	if !r.tracking || e.PointerID != r.pointer {
		return false
	}
	r.tracking = false
	if !r.accepted {
		return false
	}
	r.accepted = false
	r.tracker.Add(e.Position, e.Time)
	if r.OnEnd != nil {
		r.OnEnd(DragEndDetails{
			Position:    e.Position,
			Translation: e.Position.Y - r.start.Y,
			Velocity:    r.tracker.Velocity().Y,
		})
	}
	return true
}

func (r *VerticalDragRecognizer) cancel(e PointerEvent) bool {
	if !r.tracking || e.PointerID != r.pointer {
		return false
	}
	wasAccepted := r.accepted
	r.tracking = false
	r.accepted = false
	if wasAccepted && r.OnCancel != nil {
		r.OnCancel()
	}
	return wasAccepted
}
