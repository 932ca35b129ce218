package gestures_test

import (
	"math"
	"testing"
	"time"

	"github.com/karto-app/karto/pkg/gestures"
	"github.com/karto-app/karto/pkg/graphics"
	kartotest "github.com/karto-app/karto/pkg/testing"
)

type dragLog struct {
	starts  int
	updates []gestures.DragUpdateDetails
	ends    []gestures.DragEndDetails
	cancels int
}

func newRecognizer(log *dragLog, region func(graphics.Offset) bool) *gestures.VerticalDragRecognizer {
	return &gestures.VerticalDragRecognizer{
		Region:   region,
		OnStart:  func(gestures.DragStartDetails) { log.starts++ },
		OnUpdate: func(d gestures.DragUpdateDetails) { log.updates = append(log.updates, d) },
		OnEnd:    func(d gestures.DragEndDetails) { log.ends = append(log.ends, d) },
		OnCancel: func() { log.cancels++ },
	}
}

func feed(r *gestures.VerticalDragRecognizer, events []gestures.PointerEvent) {
	for _, e := range events {
		r.HandleEvent(e)
	}
}

func TestVerticalDragRecognized(t *testing.T) {
	var log dragLog
	r := newRecognizer(&log, nil)
	clk := kartotest.NewFakeClock()

	events := kartotest.DragEvents(clk, graphics.Offset{X: 100, Y: 100}, graphics.Offset{Y: 200}, 10, time.Second)
	feed(r, events[:len(events)-1])
	if !r.IsDragging() {
		t.Fatal("IsDragging() = false mid-drag")
	}
	r.HandleEvent(events[len(events)-1])

	if log.starts != 1 || len(log.ends) != 1 {
		t.Fatalf("starts=%d ends=%d, want 1 and 1", log.starts, len(log.ends))
	}
	last := log.updates[len(log.updates)-1]
	if last.Translation != 200 {
		t.Errorf("last Translation = %v, want 200", last.Translation)
	}
	var sum float64
	for _, u := range log.updates {
		sum += u.Delta
	}
	// Deltas cover everything after the slop was crossed.
	if sum <= 0 || sum > 200 {
		t.Errorf("sum of deltas = %v, want within (0, 200]", sum)
	}
	if log.ends[0].Translation != 200 {
		t.Errorf("end Translation = %v, want 200", log.ends[0].Translation)
	}
	if r.IsTracking() {
		t.Error("IsTracking() = true after up")
	}
}

func TestVerticalDragRegion(t *testing.T) {
	var log dragLog
	handle := graphics.RectFromLTWH(0, 0, 400, 34)
	r := newRecognizer(&log, handle.Contains)
	clk := kartotest.NewFakeClock()

	feed(r, kartotest.DragEvents(clk, graphics.Offset{X: 50, Y: 200}, graphics.Offset{Y: 100}, 5, time.Second))
	if log.starts != 0 {
		t.Error("drag outside region was recognized")
	}
	feed(r, kartotest.DragEvents(clk, graphics.Offset{X: 50, Y: 10}, graphics.Offset{Y: 100}, 5, time.Second))
	if log.starts != 1 {
		t.Errorf("starts = %d, want 1 for a drag inside region", log.starts)
	}
}

func TestVerticalDragRejectsHorizontal(t *testing.T) {
	var log dragLog
	r := newRecognizer(&log, nil)
	clk := kartotest.NewFakeClock()

	feed(r, kartotest.DragEvents(clk, graphics.Offset{X: 0, Y: 0}, graphics.Offset{X: 100, Y: 5}, 10, time.Second))
	if log.starts != 0 || len(log.ends) != 0 {
		t.Errorf("horizontal drag recognized: starts=%d ends=%d", log.starts, len(log.ends))
	}
}

func TestVerticalDragBelowSlop(t *testing.T) {
	var log dragLog
	r := newRecognizer(&log, nil)
	clk := kartotest.NewFakeClock()

	feed(r, kartotest.DragEvents(clk, graphics.Offset{}, graphics.Offset{Y: 5}, 5, time.Second))
	if log.starts != 0 || len(log.ends) != 0 {
		t.Error("movement inside slop was recognized as a drag")
	}
}

func TestVerticalDragFlickVelocity(t *testing.T) {
	var log dragLog
	r := newRecognizer(&log, nil)
	clk := kartotest.NewFakeClock()

	feed(r, kartotest.DragEvents(clk, graphics.Offset{}, graphics.Offset{Y: 50}, 5, 50*time.Millisecond))
	if len(log.ends) != 1 {
		t.Fatalf("ends = %d, want 1", len(log.ends))
	}
	if v := log.ends[0].Velocity; math.Abs(v-1000) > 1e-6 {
		t.Errorf("Velocity = %v, want 1000", v)
	}
}

func TestVerticalDragCancel(t *testing.T) {
	var log dragLog
	r := newRecognizer(&log, nil)
	clk := kartotest.NewFakeClock()

	events := kartotest.DragEvents(clk, graphics.Offset{}, graphics.Offset{Y: 100}, 5, time.Second)
	feed(r, events[:len(events)-1])
	up := events[len(events)-1]
	up.Phase = gestures.PointerPhaseCancel
	r.HandleEvent(up)

	if log.cancels != 1 || len(log.ends) != 0 {
		t.Errorf("cancels=%d ends=%d, want 1 and 0", log.cancels, len(log.ends))
	}
}

func TestVerticalDragIgnoresSecondPointer(t *testing.T) {
	var log dragLog
	r := newRecognizer(&log, nil)
	clk := kartotest.NewFakeClock()

	first := kartotest.DragEvents(clk, graphics.Offset{}, graphics.Offset{Y: 100}, 5, time.Second)
	second := kartotest.DragEvents(clk, graphics.Offset{}, graphics.Offset{Y: 300}, 5, time.Second)
	feed(r, first[:3])
	feed(r, second)
	feed(r, first[3:])

	if log.starts != 1 || len(log.ends) != 1 {
		t.Fatalf("starts=%d ends=%d, want 1 and 1", log.starts, len(log.ends))
	}
	if got := log.ends[0].Translation; got != 100 {
		t.Errorf("Translation = %v, want 100 from the first pointer", got)
	}
}

func TestTapRecognizer(t *testing.T) {
	taps := 0
	outside := graphics.RectFromLTWH(0, 0, 400, 300)
	r := &gestures.TapRecognizer{Region: outside.Contains, OnTap: func(graphics.Offset) { taps++ }}
	clk := kartotest.NewFakeClock()

	for _, e := range kartotest.TapEvents(clk, graphics.Offset{X: 10, Y: 10}) {
		r.HandleEvent(e)
	}
	for _, e := range kartotest.TapEvents(clk, graphics.Offset{X: 10, Y: 500}) {
		r.HandleEvent(e)
	}
	for _, e := range kartotest.DragEvents(clk, graphics.Offset{X: 10, Y: 10}, graphics.Offset{Y: 50}, 3, time.Second) {
		r.HandleEvent(e)
	}
	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
}
