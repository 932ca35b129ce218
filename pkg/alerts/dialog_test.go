package alerts

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/karto-app/karto/pkg/errors"
	"github.com/karto-app/karto/pkg/graphics"
	kartotest "github.com/karto-app/karto/pkg/testing"
)

func newTestDialog(t *testing.T) (*Dialog, *kartotest.FramePump) {
	t.Helper()
	pump := kartotest.NewFramePump()
	d := NewDialog(pump.Scheduler(), WithDialogLogger(log.New(io.Discard)))
	t.Cleanup(d.Dispose)
	return d, pump
}

func settle(t *testing.T, pump *kartotest.FramePump) {
	t.Helper()
	if err := pump.Settle(300); err != nil {
		t.Fatal(err)
	}
}

func TestDialogShow(t *testing.T) {
	d, pump := newTestDialog(t)
	d.Present(Alert{Type: TypeSuccess, Title: "Saved"})

	if d.State() != DialogShown {
		t.Fatalf("State() = %v, want shown", d.State())
	}
	pump.Pump(kartotest.FrameInterval)
	if d.Opacity() <= 0 || d.Opacity() >= 1 {
		t.Errorf("Opacity() mid fade = %v, want in (0,1)", d.Opacity())
	}

	var peak float64
	for range 200 {
		pump.Pump(kartotest.FrameInterval)
		if d.Scale() > peak {
			peak = d.Scale()
		}
		if !pump.Scheduler().HasActiveTickers() {
			break
		}
	}
	if peak <= 1 {
		t.Errorf("scale peak = %v, want a spring overshoot above 1", peak)
	}
	if d.Scale() != 1 || d.Opacity() != 1 {
		t.Errorf("at rest scale=%v opacity=%v, want 1 and 1", d.Scale(), d.Opacity())
	}
	if got := d.Style(); got.Icon != "checkmark-circle" {
		t.Errorf("Style().Icon = %q, want checkmark-circle", got.Icon)
	}
}

func TestDialogPressRunsCallbacksAfterHide(t *testing.T) {
	d, pump := newTestDialog(t)
	var events []string
	d.Present(Alert{
		Title: "Delete?",
		Buttons: []Button{
			{Text: "Cancel", Style: ButtonCancel},
			{Text: "Delete", OnPress: func() { events = append(events, "press") }},
		},
		OnDismiss: func() { events = append(events, "dismiss") },
	})
	settle(t, pump)

	if d.Press(5) {
		t.Error("Press(5) = true for a missing button")
	}
	if !d.Press(1) {
		t.Fatal("Press(1) = false")
	}
	if d.Press(0) {
		t.Error("second Press during hide = true, want false")
	}
	if len(events) != 0 {
		t.Errorf("callbacks ran before the hide animation: %v", events)
	}
	settle(t, pump)

	if len(events) != 2 || events[0] != "press" || events[1] != "dismiss" {
		t.Errorf("events = %v, want [press dismiss]", events)
	}
	if d.IsVisible() || d.Scale() != 0 || d.Opacity() != 0 {
		t.Errorf("after hide visible=%v scale=%v opacity=%v", d.IsVisible(), d.Scale(), d.Opacity())
	}
}

func TestDialogDefaultButton(t *testing.T) {
	d, pump := newTestDialog(t)
	dismissed := false
	d.Present(Alert{Title: "Hi", OnDismiss: func() { dismissed = true }})
	settle(t, pump)

	a, ok := d.Current()
	if !ok || len(a.EffectiveButtons()) != 1 || a.EffectiveButtons()[0].Text != "OK" {
		t.Fatalf("EffectiveButtons() = %v, want a single OK", a.EffectiveButtons())
	}
	d.Press(0)
	settle(t, pump)
	if !dismissed {
		t.Error("OnDismiss did not run")
	}
}

func TestDialogDismissSkipsButtonAction(t *testing.T) {
	d, pump := newTestDialog(t)
	pressed, dismissed := false, false
	d.Present(Alert{
		Buttons:   []Button{{Text: "Go", OnPress: func() { pressed = true }}},
		OnDismiss: func() { dismissed = true },
	})
	settle(t, pump)

	if !d.Dismiss() {
		t.Fatal("Dismiss() = false")
	}
	settle(t, pump)
	if pressed || !dismissed {
		t.Errorf("pressed=%v dismissed=%v, want false true", pressed, dismissed)
	}
	if d.Dismiss() {
		t.Error("Dismiss() on hidden dialog = true")
	}
}

func TestDialogQueuesWhileShown(t *testing.T) {
	d, pump := newTestDialog(t)
	d.Present(Alert{Title: "first"})
	d.Present(Alert{Title: "second"})
	if d.Queued() != 1 {
		t.Fatalf("Queued() = %d, want 1", d.Queued())
	}
	settle(t, pump)

	d.Dismiss()
	settle(t, pump)
	a, ok := d.Current()
	if !ok || a.Title != "second" {
		t.Errorf("Current() = %q, %v, want second", a.Title, ok)
	}
}

func TestDialogRecoversCallbackPanic(t *testing.T) {
	var panics int
	prev := errors.SetHandler(&panicCounter{n: &panics})
	defer errors.SetHandler(prev)

	d, pump := newTestDialog(t)
	dismissed := false
	d.Present(Alert{
		Buttons:   []Button{{Text: "Boom", OnPress: func() { panic("boom") }}},
		OnDismiss: func() { dismissed = true },
	})
	settle(t, pump)
	d.Press(0)
	settle(t, pump)

	if panics != 1 || !dismissed {
		t.Errorf("panics=%d dismissed=%v, want 1 true", panics, dismissed)
	}
}

func TestBusToDialog(t *testing.T) {
	d, pump := newTestDialog(t)
	b := newTestBus()
	b.Error("Xəta", "queued before mount")
	unsub := b.Subscribe(d)
	defer unsub()

	a, ok := d.Current()
	if !ok || a.Type != TypeError {
		t.Fatalf("Current() = %+v, %v", a, ok)
	}
	settle(t, pump)
	if d.Style().Icon != "close-circle" {
		t.Errorf("Style().Icon = %q, want close-circle", d.Style().Icon)
	}
}

func TestDialogHandleTap(t *testing.T) {
	d, pump := newTestDialog(t)
	viewport := graphics.Size{Width: 390, Height: 800}
	pressed := ""
	d.Present(Alert{Buttons: []Button{
		{Text: "No", Style: ButtonCancel, OnPress: func() { pressed = "no" }},
		{Text: "Yes", OnPress: func() { pressed = "yes" }},
	}})
	settle(t, pump)

	rects := d.ButtonRects(viewport)
	if len(rects) != 2 || rects[0].Right >= rects[1].Left {
		t.Fatalf("ButtonRects = %v", rects)
	}
	card := d.CardRect(viewport)
	if card.Width() != 340 {
		t.Errorf("card width = %v, want 340", card.Width())
	}

	inside := graphics.Offset{X: card.Left + 5, Y: card.Top + 5}
	if !d.HandleTap(viewport, inside) || d.State() != DialogShown {
		t.Error("tap on the card body should be consumed without hiding")
	}
	yes := rects[1]
	d.HandleTap(viewport, graphics.Offset{X: (yes.Left + yes.Right) / 2, Y: (yes.Top + yes.Bottom) / 2})
	settle(t, pump)
	if pressed != "yes" {
		t.Errorf("pressed = %q, want yes", pressed)
	}
}

func TestDialogPaint(t *testing.T) {
	d, pump := newTestDialog(t)
	viewport := graphics.Size{Width: 390, Height: 800}
	rec := &graphics.PictureRecorder{}

	d.Paint(rec.BeginRecording(viewport), viewport)
	if got := rec.EndRecording().Len(); got != 0 {
		t.Errorf("hidden dialog recorded %d ops, want 0", got)
	}

	d.Present(Alert{Type: TypeWarning, Title: "Careful", Message: "Check the price"})
	settle(t, pump)
	d.Paint(rec.BeginRecording(viewport), viewport)
	ops := rec.EndRecording().Ops()
	if len(ops) < 6 {
		t.Fatalf("ops = %v", ops)
	}
	if ops[0] != "rect [0.0,0.0 390.0x800.0] #00000080" {
		t.Errorf("barrier op = %q", ops[0])
	}
}
