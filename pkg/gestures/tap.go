package gestures

import "github.com/karto-app/karto/pkg/graphics"

// TapRecognizer reports a tap when a pointer goes down and up inside Region
// without moving further than the touch slop.
type TapRecognizer struct {
	Region func(graphics.Offset) bool
	OnTap  func(position graphics.Offset)

	tracking bool
	pointer  int64
	start    graphics.Offset
}

// HandleEvent feeds one pointer event and reports whether it was consumed.
func (r *TapRecognizer) HandleEvent(e PointerEvent) bool {
	switch e.Phase {
	case PointerPhaseDown:
		if r.tracking || (r.Region != nil && !r.Region(e.Position)) {
			return false
		}
		r.tracking = true
		r.pointer = e.PointerID
		r.start = e.Position
		return true
	case PointerPhaseMove:
		if !r.tracking || e.PointerID != r.pointer {
			return false
		}
		d := e.Position.Sub(r.start)
		if d.X*d.X+d.Y*d.Y > DefaultTouchSlop*DefaultTouchSlop {
			r.tracking = false
		}
		return r.tracking
	case PointerPhaseUp:
		if !r.tracking || e.PointerID != r.pointer {
			return false
		}
		r.tracking = false
		if r.OnTap != nil {
			r.OnTap(e.Position)
		}
		return true
	case PointerPhaseCancel:
		if e.PointerID == r.pointer {
			r.tracking = false
		}
	}
	return false
}
