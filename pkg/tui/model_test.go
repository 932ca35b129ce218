package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/karto-app/karto/pkg/alerts"
	"github.com/karto-app/karto/pkg/catalog"
	"github.com/karto-app/karto/pkg/platform"
	"github.com/karto-app/karto/pkg/sheet"
	kartotest "github.com/karto-app/karto/pkg/testing"
)

type harness struct {
	t     *testing.T
	m     *Model
	clock *kartotest.FakeClock
	store *platform.MemoryStore
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{t: t, clock: kartotest.NewFakeClock(), store: platform.NewMemoryStore()}
	base := []Option{
		WithClock(h.clock),
		WithStore(h.store),
		WithLogger(log.New(io.Discard)),
	}
	m, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.Close)
	h.m = m
	h.send(tea.WindowSizeMsg{Width: 48, Height: 50})
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.m.Update(msg)
}

func (h *harness) keys(s string) {
	switch s {
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "enter":
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "tab":
		h.send(tea.KeyMsg{Type: tea.KeyTab})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func (h *harness) pump(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameInterval {
		h.clock.Advance(FrameInterval)
		h.send(frameMsg(h.clock.Now()))
	}
}

func (h *harness) mouse(x, y int, action tea.MouseAction) {
	h.send(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func TestOpenAndCloseWithKeys(t *testing.T) {
	h := newHarness(t)

	h.keys("f")
	if got := h.m.Router().Current().Pattern; got != RouteFilters {
		t.Fatalf("route = %q, want %q", got, RouteFilters)
	}
	if !h.m.Sheet().IsVisible() {
		t.Fatal("sheet not visible after f")
	}
	h.pump(time.Second)
	if got := h.m.Sheet().Visibility(); got != sheet.Open {
		t.Fatalf("Visibility() = %v, want open", got)
	}
	if h.m.Sheet().Offset() != 0 {
		t.Errorf("Offset() = %v, want 0 at rest", h.m.Sheet().Offset())
	}

	h.keys("esc")
	h.pump(time.Second)
	if h.m.Sheet().IsMounted() {
		t.Fatal("sheet still mounted after esc")
	}
	if got := h.m.Router().Current().Pattern; got != RouteCatalog {
		t.Errorf("route = %q, want %q", got, RouteCatalog)
	}
	if h.m.Dismissed() != 1 {
		t.Errorf("Dismissed() = %d, want 1", h.m.Dismissed())
	}
}

func TestMouseDragDismisses(t *testing.T) {
	h := newHarness(t)
	h.keys("f")
	h.pump(time.Second)

	// Panel top rests at 800-420; the handle strip starts there.
	h.mouse(24, 24, tea.MouseActionPress)
	for i := 1; i <= 10; i++ {
		h.clock.Advance(FrameInterval)
		h.mouse(24, 24+2*i, tea.MouseActionMotion)
		h.send(frameMsg(h.clock.Now()))
	}
	if !h.m.Sheet().IsDragging() {
		t.Fatal("IsDragging() = false during mouse drag")
	}
	if h.m.Sheet().Offset() <= 0 {
		t.Errorf("Offset() = %v, want the panel to follow the drag", h.m.Sheet().Offset())
	}
	h.mouse(24, 44, tea.MouseActionRelease)
	h.pump(time.Second)

	if h.m.Sheet().IsMounted() {
		t.Fatal("sheet still mounted after drag release")
	}
	if h.m.Dismissed() != 1 {
		t.Errorf("Dismissed() = %d, want 1", h.m.Dismissed())
	}
	if got := h.m.Router().Current().Pattern; got != RouteCatalog {
		t.Errorf("route = %q, want %q", got, RouteCatalog)
	}
}

func TestBackdropClickCloses(t *testing.T) {
	h := newHarness(t)
	h.keys("f")
	h.pump(time.Second)

	h.mouse(10, 3, tea.MouseActionPress)
	h.mouse(10, 3, tea.MouseActionRelease)
	h.pump(time.Second)

	if h.m.Sheet().IsMounted() {
		t.Fatal("sheet still mounted after backdrop click")
	}
	if h.m.Dismissed() != 1 {
		t.Errorf("Dismissed() = %d, want 1", h.m.Dismissed())
	}
}

func TestInvalidPriceShowsAlert(t *testing.T) {
	h := newHarness(t)
	h.keys("f")
	h.pump(time.Second)

	h.keys("tab")
	h.keys("tab")
	h.keys("100")
	h.keys("tab")
	h.keys("50")
	h.keys("enter")

	if f := h.m.Filters(); f.MinPrice != "100" || f.MaxPrice != "50" {
		t.Fatalf("prices = %q/%q, want 100/50", f.MinPrice, f.MaxPrice)
	}
	a, ok := h.m.Dialog().Current()
	if !ok {
		t.Fatal("no alert shown for min > max")
	}
	if a.Type != alerts.TypeError || a.Title != catalog.ErrorTitle {
		t.Errorf("alert = %v %q, want error %q", a.Type, a.Title, catalog.ErrorTitle)
	}
	if a.Message != catalog.ErrPriceRange.Error() {
		t.Errorf("alert message = %q", a.Message)
	}
	if !h.m.Sheet().IsVisible() {
		t.Error("sheet closed on a failed apply")
	}

	h.pump(time.Second)
	h.keys("enter")
	h.pump(time.Second)
	if h.m.Dialog().IsVisible() {
		t.Error("alert still visible after pressing OK")
	}
	if got := h.m.Router().Current().Pattern; got != RouteFilters {
		t.Errorf("route = %q, want %q", got, RouteFilters)
	}
}

func TestApplyClosesAndPersists(t *testing.T) {
	h := newHarness(t)
	h.keys("f")
	h.pump(time.Second)

	h.keys("2")
	h.keys("v")
	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("apply returned no save command")
	}
	applied := h.m.Applied()
	if applied.MinPrice != 25 || applied.MaxPrice != 50 || !applied.ShowOnlyAvailable {
		t.Errorf("Applied() = %+v", applied)
	}
	if got := h.m.Router().Current().Pattern; got != RouteCatalog {
		t.Errorf("route = %q, want %q", got, RouteCatalog)
	}
	h.pump(time.Second)
	if h.m.Sheet().IsMounted() {
		t.Error("sheet still mounted after apply")
	}

	msg := h.m.save(KeyAppliedFilters, applied)()
	if saved := msg.(savedMsg); saved.err != nil {
		t.Fatal(saved.err)
	}
	var got catalog.Applied
	if err := platform.GetJSON(context.Background(), h.store, KeyAppliedFilters, &got); err != nil {
		t.Fatal(err)
	}
	if got.MinPrice != 25 || got.MaxPrice != 50 {
		t.Errorf("stored = %+v", got)
	}
}

func TestLoadRestoresFilters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	want := catalog.Applied{Categories: []string{"food"}, MinPrice: 10, MaxPrice: catalog.MaxPrice, Brands: []string{"kfc"}}
	if err := platform.SetJSON(ctx, h.store, KeyAppliedFilters, want); err != nil {
		t.Fatal(err)
	}
	if err := platform.SetJSON(ctx, h.store, KeySheetDismissed, 3); err != nil {
		t.Fatal(err)
	}

	h.send(h.m.load()())

	if h.m.Dismissed() != 3 {
		t.Errorf("Dismissed() = %d, want 3", h.m.Dismissed())
	}
	f := h.m.Filters()
	if f.MinPrice != "10" || f.MaxPrice != "" {
		t.Errorf("restored prices = %q/%q, want 10 and blank", f.MinPrice, f.MaxPrice)
	}
	if len(f.Brands) != 1 || f.Brands[0] != "kfc" {
		t.Errorf("restored brands = %v", f.Brands)
	}
	if n := h.m.Applied().Active(); n != 3 {
		t.Errorf("Active() = %d, want 3", n)
	}
}

func TestSheetOptionsApplyAfterClose(t *testing.T) {
	h := newHarness(t)
	h.keys("f")
	h.pump(time.Second)
	before := h.m.Sheet()

	h.send(SheetOptionsMsg{Options: []sheet.Option{sheet.WithHeight(300)}})
	if h.m.Sheet() != before {
		t.Fatal("mounted sheet replaced while open")
	}

	h.keys("esc")
	h.pump(time.Second)
	if h.m.Sheet() == before {
		t.Fatal("sheet not rebuilt after close")
	}

	h.keys("f")
	if got := h.m.Sheet().Height(); got != 300 {
		t.Errorf("Height() = %v, want 300", got)
	}
}

func TestView(t *testing.T) {
	h := newHarness(t)
	view := h.m.View()
	if !strings.Contains(view, "KARTO") {
		t.Error("catalog header missing")
	}
	if got := strings.Count(view, "\n") + 1; got != 50 {
		t.Errorf("view rows = %d, want 50", got)
	}

	h.keys("f")
	h.pump(time.Second)
	view = h.m.View()
	for _, want := range []string{"Kateqoriyalar", "Brendlər", "Tətbiq et"} {
		if !strings.Contains(view, want) {
			t.Errorf("open sheet view missing %q", want)
		}
	}
}
