// Package platform provides the device collaborators a sheet needs outside a
// mobile runtime: viewport metrics with safe-area insets, and a local
// key-value cache.
package platform

import (
	"sync"

	"github.com/karto-app/karto/pkg/graphics"
)

// Metrics describes the viewport a component lays itself out in.
type Metrics struct {
	Viewport graphics.Size
	Insets   graphics.EdgeInsets
}

// ViewportProvider is the read side of MetricsService, as consumed by
// components that only measure.
type ViewportProvider interface {
	Metrics() Metrics
}

// MetricsService manages viewport and safe area events.
type MetricsService struct {
	mu       sync.RWMutex
	metrics  Metrics
	handlers map[int]func(Metrics)
	nextID   int
}

// NewMetricsService returns a service reporting m until the host updates it.
func NewMetricsService(m Metrics) *MetricsService {
	return &MetricsService{metrics: m, handlers: make(map[int]func(Metrics))}
}

// Metrics returns the current viewport and insets.
func (s *MetricsService) Metrics() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

// Viewport returns the current viewport size.
func (s *MetricsService) Viewport() graphics.Size {
	return s.Metrics().Viewport
}

// Insets returns the current safe area insets.
func (s *MetricsService) Insets() graphics.EdgeInsets {
	return s.Metrics().Insets
}

// AddHandler registers a handler to be called on metric changes.
// Returns a function that can be called to remove the handler.
func (s *MetricsService) AddHandler(handler func(Metrics)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = handler
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.handlers, id)
		s.mu.Unlock()
	}
}

// Update replaces the metrics and notifies handlers if anything changed.
func (s *MetricsService) Update(m Metrics) {
	s.mu.Lock()
	if s.metrics == m {
		s.mu.Unlock()
		return
	}
	s.metrics = m
	handlers := make([]func(Metrics), 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(m)
	}
}

// SetViewport updates only the viewport size.
func (s *MetricsService) SetViewport(size graphics.Size) {
	m := s.Metrics()
	m.Viewport = size
	s.Update(m)
}

// SetInsets updates only the safe area insets.
func (s *MetricsService) SetInsets(insets graphics.EdgeInsets) {
	m := s.Metrics()
	m.Insets = insets
	s.Update(m)
}

// UpdateFromEvent applies a platform event payload of the form
// {"width", "height", "top", "bottom", "left", "right"}. Missing keys keep
// their current value.
func (s *MetricsService) UpdateFromEvent(data map[string]any) {
	m := s.Metrics()
	read := func(key string, dst *float64) {
		if v, ok := data[key].(float64); ok {
			*dst = v
		}
	}
	read("width", &m.Viewport.Width)
	read("height", &m.Viewport.Height)
	read("top", &m.Insets.Top)
	read("bottom", &m.Insets.Bottom)
	read("left", &m.Insets.Left)
	read("right", &m.Insets.Right)
	s.Update(m)
}
