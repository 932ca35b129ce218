package gestures

import (
	"fmt"
	"time"

	"github.com/karto-app/karto/pkg/graphics"
)

// DefaultTouchSlop is the distance a pointer must travel before a drag is recognized.
const DefaultTouchSlop = 8.0

// PointerPhase is the lifecycle stage of a pointer event.
type PointerPhase int

const (
	PointerPhaseDown PointerPhase = iota
	PointerPhaseMove
	PointerPhaseUp
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerEvent is a single pointer sample in logical coordinates.
type PointerEvent struct {
	PointerID int64
	Phase     PointerPhase
	Position  graphics.Offset
	Time      time.Time
}

// DragStartDetails is reported once a drag wins over slop.
type DragStartDetails struct {
	Position graphics.Offset
}

// DragUpdateDetails is reported for each move of an accepted drag.
type DragUpdateDetails struct {
	Position graphics.Offset
	// Delta is the vertical movement since the previous update.
	Delta float64
	// Translation is the total vertical movement since pointer down.
	Translation float64
}

// DragEndDetails is reported when the pointer of an accepted drag lifts.
type DragEndDetails struct {
	Position    graphics.Offset
	Translation float64
	// Velocity is the vertical release speed in units per second,
	// positive when moving down.
	Velocity float64
}
