package alerts

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	kartoerrors "github.com/karto-app/karto/pkg/errors"
)

// DefaultQueueLimit bounds the alerts held while nobody is subscribed.
const DefaultQueueLimit = 16

// Presenter displays alerts. Present is called on the goroutine that
// called Show or Subscribe.
type Presenter interface {
	Present(Alert)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Alert)

// Present calls f(a).
func (f PresenterFunc) Present(a Alert) { f(a) }

// Bus routes alerts to subscribed presenters.
type Bus struct {
	mu         sync.Mutex
	pending    []Alert
	limit      int
	dropped    int
	presenters map[int]Presenter
	nextID     int
	logger     *log.Logger
	now        func() time.Time
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithQueueLimit sets how many alerts are kept while unsubscribed.
// Non-positive limits are ignored.
func WithQueueLimit(n int) BusOption {
	return func(b *Bus) {
		if n > 0 {
			b.limit = n
		}
	}
}

// WithLogger sets the logger for dropped and failed alerts.
func WithLogger(l *log.Logger) BusOption {
	return func(b *Bus) { b.logger = l }
}

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) BusOption {
	return func(b *Bus) { b.now = now }
}

// NewBus returns a bus with no subscribers.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		limit:      DefaultQueueLimit,
		presenters: make(map[int]Presenter),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.Default().WithPrefix("alerts")
	}
	return b
}

// Show delivers a to every subscriber, or queues it when there are none.
// A zero ID is replaced with a new random one, which is returned.
func (b *Bus) Show(a Alert) uuid.UUID {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Type == "" {
		a.Type = TypeInfo
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = b.now()
	}

	b.mu.Lock()
	if len(b.presenters) == 0 {
		if len(b.pending) == b.limit {
			oldest := b.pending[0]
			copy(b.pending, b.pending[1:])
			b.pending = b.pending[:len(b.pending)-1]
			b.dropped++
			b.logger.Warn("alert queue full, dropping oldest", "id", oldest.ID, "title", oldest.Title)
		}
		b.pending = append(b.pending, a)
		b.mu.Unlock()
		b.logger.Debug("alert queued", "id", a.ID, "pending", len(b.pending))
		return a.ID
	}
	presenters := b.snapshot()
	b.mu.Unlock()

	for _, p := range presenters {
		deliver(p, a)
	}
	return a.ID
}

// Subscribe registers p and flushes any queued alerts to it in the order
// they were shown. The returned function unsubscribes p.
func (b *Bus) Subscribe(p Presenter) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.presenters[id] = p
	queued := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, a := range queued {
		deliver(p, a)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.presenters, id)
			b.mu.Unlock()
		})
	}
}

// snapshot returns presenters in subscription order. Callers hold b.mu.
func (b *Bus) snapshot() []Presenter {
	ids := make([]int, 0, len(b.presenters))
	for id := range b.presenters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Presenter, len(ids))
	for i, id := range ids {
		out[i] = b.presenters[id]
	}
	return out
}

// deliver isolates the bus from a panicking presenter.
func deliver(p Presenter, a Alert) {
	defer kartoerrors.Recover("alerts.Presenter.Present")
	p.Present(a)
}

// Pending returns the number of queued alerts.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Dropped returns how many queued alerts were discarded for space.
func (b *Bus) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Info shows an informational alert.
func (b *Bus) Info(title, message string) uuid.UUID {
	return b.Show(Alert{Type: TypeInfo, Title: title, Message: message})
}

// Success shows a success alert.
func (b *Bus) Success(title, message string) uuid.UUID {
	return b.Show(Alert{Type: TypeSuccess, Title: title, Message: message})
}

// Warning shows a warning alert.
func (b *Bus) Warning(title, message string) uuid.UUID {
	return b.Show(Alert{Type: TypeWarning, Title: title, Message: message})
}

// Error shows an error alert.
func (b *Bus) Error(title, message string) uuid.UUID {
	return b.Show(Alert{Type: TypeError, Title: title, Message: message})
}

type busKey struct{}

// ErrNoBus is returned by Show when the context carries no Bus.
var ErrNoBus = errors.New("alerts: no bus in context")

// WithBus returns a context carrying b.
func WithBus(ctx context.Context, b *Bus) context.Context {
	return context.WithValue(ctx, busKey{}, b)
}

// FromContext returns the Bus carried by ctx, or nil.
func FromContext(ctx context.Context) *Bus {
	b, _ := ctx.Value(busKey{}).(*Bus)
	return b
}

// Show shows a on the Bus carried by ctx.
func Show(ctx context.Context, a Alert) (uuid.UUID, error) {
	b := FromContext(ctx)
	if b == nil {
		return uuid.Nil, ErrNoBus
	}
	return b.Show(a), nil
}
