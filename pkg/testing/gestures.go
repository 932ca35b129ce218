package testing

import (
	"time"

	"github.com/karto-app/karto/pkg/gestures"
	"github.com/karto-app/karto/pkg/graphics"
)

// nextPointerID is incremented for each synthesized gesture.
var nextPointerID int64

func allocPointerID() int64 {
	nextPointerID++
	return nextPointerID
}

// DragEvents synthesizes a down, steps evenly spaced moves and an up that
// together travel delta in duration, starting at start. Event times are
// derived from clk so velocity estimates are deterministic.
func DragEvents(clk *FakeClock, start, delta graphics.Offset, steps int, duration time.Duration) []gestures.PointerEvent {
	if steps < 1 {
		steps = 1
	}
	id := allocPointerID()
	t0 := clk.Now()
	events := make([]gestures.PointerEvent, 0, steps+2)
	events = append(events, gestures.PointerEvent{
		PointerID: id, Phase: gestures.PointerPhaseDown, Position: start, Time: t0,
	})
	var pos graphics.Offset
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		pos = graphics.Offset{X: start.X + delta.X*f, Y: start.Y + delta.Y*f}
		events = append(events, gestures.PointerEvent{
			PointerID: id,
			Phase:     gestures.PointerPhaseMove,
			Position:  pos,
			Time:      t0.Add(time.Duration(f * float64(duration))),
		})
	}
	events = append(events, gestures.PointerEvent{
		PointerID: id, Phase: gestures.PointerPhaseUp, Position: pos, Time: t0.Add(duration),
	})
	return events
}

// TapEvents synthesizes a down and up at pos.
func TapEvents(clk *FakeClock, pos graphics.Offset) []gestures.PointerEvent {
	id := allocPointerID()
	now := clk.Now()
	return []gestures.PointerEvent{
		{PointerID: id, Phase: gestures.PointerPhaseDown, Position: pos, Time: now},
		{PointerID: id, Phase: gestures.PointerPhaseUp, Position: pos, Time: now},
	}
}

// PointerHandler is anything that accepts pointer events.
type PointerHandler interface {
	HandlePointer(gestures.PointerEvent)
}

// Dispatch feeds events to h in order.
func Dispatch(h PointerHandler, events []gestures.PointerEvent) {
	for _, e := range events {
		h.HandlePointer(e)
	}
}
