package platform

import (
	"testing"

	"github.com/karto-app/karto/pkg/graphics"
)

func TestMetricsServiceHandlers(t *testing.T) {
	s := NewMetricsService(Metrics{Viewport: graphics.Size{Width: 390, Height: 800}})

	var calls []Metrics
	remove := s.AddHandler(func(m Metrics) { calls = append(calls, m) })

	s.SetInsets(graphics.EdgeInsets{Top: 47, Bottom: 34})
	if len(calls) != 1 {
		t.Fatalf("handler calls = %d, want 1", len(calls))
	}
	if calls[0].Insets.Bottom != 34 {
		t.Errorf("Insets.Bottom = %v, want 34", calls[0].Insets.Bottom)
	}

	// Same metrics again is not a change.
	s.SetInsets(graphics.EdgeInsets{Top: 47, Bottom: 34})
	if len(calls) != 1 {
		t.Errorf("handler calls after no-op = %d, want 1", len(calls))
	}

	remove()
	s.SetViewport(graphics.Size{Width: 390, Height: 700})
	if len(calls) != 1 {
		t.Errorf("handler called after removal")
	}
	if got := s.Viewport().Height; got != 700 {
		t.Errorf("Viewport().Height = %v, want 700", got)
	}
}

func TestMetricsServiceRemoveIsStable(t *testing.T) {
	s := NewMetricsService(Metrics{})
	var a, b int
	removeA := s.AddHandler(func(Metrics) { a++ })
	s.AddHandler(func(Metrics) { b++ })

	removeA()
	removeA()
	s.SetViewport(graphics.Size{Width: 1, Height: 1})
	if a != 0 || b != 1 {
		t.Errorf("a, b = %d, %d, want 0, 1", a, b)
	}
}

func TestUpdateFromEvent(t *testing.T) {
	s := NewMetricsService(Metrics{Viewport: graphics.Size{Width: 390, Height: 844}})
	s.UpdateFromEvent(map[string]any{"bottom": 34.0, "height": 800.0, "ignored": "x"})

	m := s.Metrics()
	if m.Viewport.Width != 390 || m.Viewport.Height != 800 {
		t.Errorf("Viewport = %+v, want 390x800", m.Viewport)
	}
	if m.Insets.Bottom != 34 {
		t.Errorf("Insets.Bottom = %v, want 34", m.Insets.Bottom)
	}
}
