package testing

import (
	"testing"
	"time"

	"github.com/karto-app/karto/pkg/animation"
	"github.com/karto-app/karto/pkg/gestures"
	"github.com/karto-app/karto/pkg/graphics"
)

func TestFramePump_PumpFor(t *testing.T) {
	pump := NewFramePump()
	start := pump.Clock().Now()

	pump.PumpFor(100 * time.Millisecond)
	if got := pump.Frames(); got != 7 {
		t.Errorf("expected 7 frames, got %d", got)
	}
	if got := pump.Clock().Now().Sub(start); got != 112*time.Millisecond {
		t.Errorf("expected 112ms elapsed, got %v", got)
	}
}

func TestFramePump_Settle(t *testing.T) {
	pump := NewFramePump()
	v := animation.NewValue(pump.Scheduler(), 0)
	v.AnimateTo(1, animation.Timing{Duration: 50 * time.Millisecond}, nil)

	if err := pump.Settle(10); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if v.Get() != 1 {
		t.Errorf("expected value 1, got %v", v.Get())
	}

	v.AnimateTo(0, animation.Timing{Duration: time.Hour}, nil)
	if err := pump.Settle(3); err == nil {
		t.Error("expected Settle to fail for a long animation")
	}
}

type recorder struct {
	events []gestures.PointerEvent
}

func (r *recorder) HandlePointer(e gestures.PointerEvent) {
	r.events = append(r.events, e)
}

func TestDragEvents(t *testing.T) {
	clk := NewFakeClock()
	start := graphics.Offset{X: 10, Y: 20}
	events := DragEvents(clk, start, graphics.Offset{Y: 100}, 4, 40*time.Millisecond)

	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}
	if events[0].Phase != gestures.PointerPhaseDown || events[5].Phase != gestures.PointerPhaseUp {
		t.Errorf("expected down..up, got %v..%v", events[0].Phase, events[5].Phase)
	}
	if got := events[4].Position.Y; got != 120 {
		t.Errorf("expected last move at y=120, got %v", got)
	}
	if got := events[5].Time.Sub(events[0].Time); got != 40*time.Millisecond {
		t.Errorf("expected 40ms gesture, got %v", got)
	}
	for _, e := range events {
		if e.PointerID != events[0].PointerID {
			t.Fatal("expected one pointer id for the whole gesture")
		}
	}

	rec := &recorder{}
	Dispatch(rec, events)
	if len(rec.events) != len(events) {
		t.Errorf("expected %d dispatched events, got %d", len(events), len(rec.events))
	}
}

func TestTapEvents(t *testing.T) {
	a := TapEvents(NewFakeClock(), graphics.Offset{X: 1, Y: 2})
	b := TapEvents(NewFakeClock(), graphics.Offset{X: 1, Y: 2})
	if len(a) != 2 || a[0].Phase != gestures.PointerPhaseDown || a[1].Phase != gestures.PointerPhaseUp {
		t.Fatalf("unexpected tap events %+v", a)
	}
	if a[0].PointerID == b[0].PointerID {
		t.Error("expected distinct pointer ids per gesture")
	}
}

func TestFramePump_FramesMatchClock(t *testing.T) {
	pump := NewFramePump()
	pump.PumpFor(100 * time.Millisecond)
	if err := pump.Settle(5); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}

	if got, want := pump.Clock().Frames(), pump.Frames(); got != want {
		t.Errorf("clock counted %d frames, pump counted %d", got, want)
	}
}
