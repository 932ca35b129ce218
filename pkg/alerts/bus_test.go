package alerts

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/karto-app/karto/pkg/errors"
)

type recorder struct {
	got []Alert
}

func (r *recorder) Present(a Alert) { r.got = append(r.got, a) }

func newTestBus(opts ...BusOption) *Bus {
	base := []BusOption{WithLogger(log.New(io.Discard))}
	return NewBus(append(base, opts...)...)
}

func TestBusQueuesUntilSubscribed(t *testing.T) {
	b := newTestBus()
	b.Info("one", "")
	b.Warning("two", "")
	b.Error("three", "")
	if got := b.Pending(); got != 3 {
		t.Fatalf("Pending() = %d, want 3", got)
	}

	r := &recorder{}
	b.Subscribe(r)
	if got := b.Pending(); got != 0 {
		t.Errorf("Pending() after Subscribe = %d, want 0", got)
	}
	want := []string{"one", "two", "three"}
	if len(r.got) != len(want) {
		t.Fatalf("presented %d alerts, want %d", len(r.got), len(want))
	}
	for i, a := range r.got {
		if a.Title != want[i] {
			t.Errorf("alert %d title = %q, want %q", i, a.Title, want[i])
		}
	}
	if r.got[1].Type != TypeWarning {
		t.Errorf("alert 1 type = %q, want %q", r.got[1].Type, TypeWarning)
	}
}

func TestBusDropsOldestWhenFull(t *testing.T) {
	b := newTestBus(WithQueueLimit(2))
	b.Info("a", "")
	b.Info("b", "")
	b.Info("c", "")

	if got := b.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1", got)
	}
	r := &recorder{}
	b.Subscribe(r)
	if len(r.got) != 2 || r.got[0].Title != "b" || r.got[1].Title != "c" {
		t.Errorf("flushed %v, want [b c]", titles(r.got))
	}
}

func TestBusDeliversToSubscribersInOrder(t *testing.T) {
	b := newTestBus()
	var order []string
	b.Subscribe(PresenterFunc(func(Alert) { order = append(order, "first") }))
	unsub := b.Subscribe(PresenterFunc(func(Alert) { order = append(order, "second") }))

	b.Success("saved", "")
	if fmt.Sprint(order) != "[first second]" {
		t.Errorf("order = %v, want [first second]", order)
	}

	unsub()
	unsub()
	order = nil
	b.Success("saved", "")
	if fmt.Sprint(order) != "[first]" {
		t.Errorf("order after unsubscribe = %v, want [first]", order)
	}
}

func TestBusQueuesAgainAfterLastUnsubscribe(t *testing.T) {
	b := newTestBus()
	unsub := b.Subscribe(&recorder{})
	unsub()
	b.Info("later", "")
	if got := b.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}
}

func TestBusFillsDefaults(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBus(WithClock(func() time.Time { return at }))
	r := &recorder{}
	b.Subscribe(r)

	id := b.Show(Alert{Title: "hi"})
	got := r.got[0]
	if id == uuid.Nil || got.ID != id {
		t.Errorf("ID = %v, returned %v", got.ID, id)
	}
	if got.Type != TypeInfo {
		t.Errorf("Type = %q, want %q", got.Type, TypeInfo)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, at)
	}

	fixed := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	if id := b.Show(Alert{ID: fixed}); id != fixed {
		t.Errorf("Show kept ID %v, want %v", id, fixed)
	}
}

func TestBusRecoversPresenterPanic(t *testing.T) {
	var panics int
	prev := errors.SetHandler(&panicCounter{n: &panics})
	defer errors.SetHandler(prev)

	b := newTestBus()
	r := &recorder{}
	b.Subscribe(PresenterFunc(func(Alert) { panic("boom") }))
	b.Subscribe(r)

	b.Error("oops", "")
	if panics != 1 {
		t.Errorf("reported panics = %d, want 1", panics)
	}
	if len(r.got) != 1 {
		t.Errorf("second presenter got %d alerts, want 1", len(r.got))
	}
}

func TestContextBus(t *testing.T) {
	if _, err := Show(context.Background(), Alert{}); err != ErrNoBus {
		t.Errorf("Show without bus error = %v, want ErrNoBus", err)
	}

	b := newTestBus()
	ctx := WithBus(context.Background(), b)
	if FromContext(ctx) != b {
		t.Fatal("FromContext did not return the bus")
	}
	if _, err := Show(ctx, Alert{Title: "x"}); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if b.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", b.Pending())
	}
}

type panicCounter struct{ n *int }

func (p *panicCounter) HandleError(*errors.KartoError) {}
func (p *panicCounter) HandlePanic(*errors.PanicError) { *p.n++ }

func titles(as []Alert) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Title
	}
	return out
}
