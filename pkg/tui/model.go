// Package tui hosts the KARTO catalog and its filter sheet in a terminal.
//
// The terminal is treated as a screen of CellWidth x CellHeight point
// cells. Every frame tick steps the animation scheduler; mouse events are
// converted into pointer events in points, so dragging the sheet's handle
// with the mouse runs the same gesture code as a touch screen.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/karto-app/karto/pkg/alerts"
	"github.com/karto-app/karto/pkg/animation"
	"github.com/karto-app/karto/pkg/catalog"
	"github.com/karto-app/karto/pkg/gestures"
	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/navigation"
	"github.com/karto-app/karto/pkg/platform"
	"github.com/karto-app/karto/pkg/sheet"
	"github.com/karto-app/karto/pkg/theme"
)

// Size of one terminal cell in points.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// FrameInterval is the animation frame period.
const FrameInterval = time.Second / 60

// Routes.
const (
	RouteCatalog = "/catalog"
	RouteFilters = "/catalog/filters"
	RouteBrand   = "/brands/:id"
)

// Store keys.
const (
	KeyAppliedFilters = "filters.applied"
	KeySheetDismissed = "sheet.dismissed"
)

const storeTimeout = 2 * time.Second

// Input fields of the filter sheet, in tab order.
const (
	fieldSearch = iota
	fieldMin
	fieldMax
	fieldCount
	fieldNone = -1
)

type frameMsg time.Time

type loadedMsg struct {
	applied   catalog.Applied
	dismissed int
	err       error
}

type savedMsg struct {
	key string
	err error
}

// SheetOptionsMsg replaces the sheet options. A mounted sheet keeps its
// current options until it has closed.
type SheetOptionsMsg struct {
	Options []sheet.Option
}

// AlertMsg shows an alert from outside the UI goroutine.
type AlertMsg alerts.Alert

// Model is the bubbletea model of the demo.
type Model struct {
	scheduler *animation.Scheduler
	metrics   *platform.MetricsService
	store     platform.Store
	bus       *alerts.Bus
	dialog    *alerts.Dialog
	stack     *navigation.Stack
	sheet     *sheet.Sheet
	sheetOpts []sheet.Option
	rebuild   bool
	logger    *log.Logger
	palette   theme.Palette
	keys      KeyMap
	help      help.Model

	filters   catalog.Filters
	applied   catalog.Applied
	dismissed int

	categoryCursor int
	brandCursor    int
	inputs         [fieldCount]textinput.Model
	focus          int

	cols, rows  int
	pointerDown bool
	pending     []tea.Cmd
	unsubscribe func()
}

// Option configures a Model.
type Option func(*Model)

// WithClock drives animations from c instead of the wall clock.
func WithClock(c animation.Clock) Option {
	return func(m *Model) { m.scheduler = animation.NewScheduler(c) }
}

// WithStore persists applied filters and the dismiss count in s.
func WithStore(s platform.Store) Option {
	return func(m *Model) { m.store = s }
}

// WithLogger sets the logger. The terminal belongs to the UI, so callers
// usually point it at a file.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithSheetOptions sets the options of the filter sheet.
func WithSheetOptions(opts ...sheet.Option) Option {
	return func(m *Model) { m.sheetOpts = opts }
}

// WithInsets sets the simulated safe area.
func WithInsets(insets graphics.EdgeInsets) Option {
	return func(m *Model) { m.metrics.SetInsets(insets) }
}

// WithBus shares an alert bus with the rest of the program.
func WithBus(b *alerts.Bus) Option {
	return func(m *Model) { m.bus = b }
}

// New builds the demo model.
func New(opts ...Option) (*Model, error) {
	m := &Model{
		metrics: platform.NewMetricsService(platform.Metrics{}),
		palette: theme.KartoPalette(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		focus:   fieldNone,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.scheduler == nil {
		m.scheduler = animation.NewScheduler(nil)
	}
	if m.logger == nil {
		m.logger = log.Default().WithPrefix("tui")
	}
	if m.store == nil {
		m.store = platform.NewMemoryStore()
	}
	if m.bus == nil {
		m.bus = alerts.NewBus(alerts.WithLogger(m.logger))
	}

	m.dialog = alerts.NewDialog(m.scheduler, alerts.WithDialogLogger(m.logger))
	m.unsubscribe = m.bus.Subscribe(m.dialog)

	stack, err := navigation.NewStack(
		[]string{RouteCatalog, RouteFilters, RouteBrand},
		navigation.WithInitialPath(RouteCatalog),
		navigation.WithLogger(m.logger),
	)
	if err != nil {
		return nil, err
	}
	m.stack = stack
	m.stack.AddListener(m.onRouteChange)

	placeholders := [fieldCount]string{"Brend axtar", "Min ₼", "Max ₼"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.CharLimit = 32
		m.inputs[i] = ti
	}

	m.buildSheet()
	return m, nil
}

func (m *Model) buildSheet() {
	if m.sheet != nil {
		m.sheet.Dispose()
	}
	opts := append([]sheet.Option{}, m.sheetOpts...)
	opts = append(opts,
		sheet.WithOnClose(m.onSheetClosed),
		sheet.WithContent(&filterContent{m: m}),
		sheet.WithLogger(m.logger),
	)
	m.sheet = sheet.New(m.scheduler, m.metrics, opts...)
	m.rebuild = false
}

// Sheet returns the filter sheet.
func (m *Model) Sheet() *sheet.Sheet { return m.sheet }

// Dialog returns the alert presenter.
func (m *Model) Dialog() *alerts.Dialog { return m.dialog }

// Bus returns the alert bus.
func (m *Model) Bus() *alerts.Bus { return m.bus }

// Router returns the route stack.
func (m *Model) Router() navigation.Router { return m.stack }

// Scheduler returns the animation scheduler.
func (m *Model) Scheduler() *animation.Scheduler { return m.scheduler }

// Filters returns the filters being edited.
func (m *Model) Filters() catalog.Filters { return m.filters }

// Applied returns the last applied filters.
func (m *Model) Applied() catalog.Applied { return m.applied }

// Dismissed returns how many times the sheet has closed.
func (m *Model) Dismissed() int { return m.dismissed }

// Close releases the model's subscriptions and animations.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.sheet.Dispose()
	m.dialog.Dispose()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.load())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case frameMsg:
		m.scheduler.Step()
		if m.rebuild && !m.sheet.IsMounted() {
			m.buildSheet()
		}
		cmds = append(cmds, m.tick())

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.metrics.SetViewport(graphics.Size{
			Width:  float64(msg.Width) * CellWidth,
			Height: float64(msg.Height) * CellHeight,
		})

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case loadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load saved state", "err", msg.err)
			break
		}
		m.applied = msg.applied
		m.dismissed = msg.dismissed
		m.filters.Restore(msg.applied)
		m.syncInputs()

	case savedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to save state", "key", msg.key, "err", msg.err)
		}

	case AlertMsg:
		m.bus.Show(alerts.Alert(msg))

	case SheetOptionsMsg:
		m.sheetOpts = msg.Options
		m.rebuild = true
		if !m.sheet.IsMounted() {
			m.buildSheet()
		}
	}

	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) viewport() graphics.Size { return m.metrics.Viewport() }

// cellCenter converts a terminal cell to the point at its center.
func cellCenter(x, y int) graphics.Offset {
	return graphics.Offset{
		X: (float64(x) + 0.5) * CellWidth,
		Y: (float64(y) + 0.5) * CellHeight,
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos := cellCenter(msg.X, msg.Y)

	var phase gestures.PointerPhase
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		phase = gestures.PointerPhaseDown
		m.pointerDown = true
	case msg.Action == tea.MouseActionMotion && m.pointerDown:
		phase = gestures.PointerPhaseMove
	case msg.Action == tea.MouseActionRelease && m.pointerDown:
		phase = gestures.PointerPhaseUp
		m.pointerDown = false
	default:
		return
	}

	if m.dialog.IsVisible() {
		if phase == gestures.PointerPhaseUp {
			m.dialog.HandleTap(m.viewport(), pos)
		}
		return
	}
	m.sheet.HandlePointer(gestures.PointerEvent{
		PointerID: 1,
		Phase:     phase,
		Position:  pos,
		Time:      m.scheduler.Now(),
	})
}

func (m *Model) onRouteChange(c navigation.Change) {
	switch {
	case c.Action == navigation.ActionPush && c.To.Pattern == RouteFilters:
		m.sheet.SetVisible(true)
	case c.Action == navigation.ActionPop && c.From.Pattern == RouteFilters:
		m.blurInputs()
		m.sheet.SetVisible(false)
	}
}

func (m *Model) onSheetClosed() {
	m.dismissed++
	m.blurInputs()
	if m.stack.Current().Pattern == RouteFilters {
		m.stack.Pop()
	}
	m.pending = append(m.pending, m.save(KeySheetDismissed, m.dismissed))
}

func (m *Model) apply() tea.Cmd {
	applied, err := m.filters.Apply()
	if err != nil {
		msg := err.Error()
		if errors.Is(err, catalog.ErrPriceRange) {
			msg = catalog.ErrPriceRange.Error()
		}
		m.bus.Error(catalog.ErrorTitle, msg)
		return nil
	}
	m.applied = applied
	m.logger.Info("filters applied", "active", applied.Active())
	if m.stack.Current().Pattern == RouteFilters {
		m.stack.Pop()
	}
	return m.save(KeyAppliedFilters, applied)
}

func (m *Model) load() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		var msg loadedMsg
		if err := platform.GetJSON(ctx, store, KeyAppliedFilters, &msg.applied); err != nil && !errors.Is(err, platform.ErrNotFound) {
			msg.err = err
			return msg
		}
		if err := platform.GetJSON(ctx, store, KeySheetDismissed, &msg.dismissed); err != nil && !errors.Is(err, platform.ErrNotFound) {
			msg.err = err
		}
		return msg
	}
}

func (m *Model) save(key string, v any) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return savedMsg{key: key, err: platform.SetJSON(ctx, store, key, v)}
	}
}
