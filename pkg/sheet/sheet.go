package sheet

import (
	"github.com/charmbracelet/log"

	"github.com/karto-app/karto/pkg/animation"
	"github.com/karto-app/karto/pkg/errors"
	"github.com/karto-app/karto/pkg/gestures"
	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/platform"
	"github.com/karto-app/karto/pkg/theme"
)

// Visibility is the sheet's lifecycle state as seen by its owner.
type Visibility int

const (
	// Closed means nothing is mounted.
	Closed Visibility = iota
	// Open covers both the opening spring and the resting sheet.
	Open
	// Closing means a close transition is running; the panel is still mounted.
	Closing
)

func (v Visibility) String() string {
	switch v {
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// Content is whatever the sheet hosts. The sheet treats it as opaque and
// only forwards the space it has available.
type Content interface {
	// Title names the content for hosts that label it.
	Title() string
	// View renders the content into a text cell grid of the given size.
	View(width, height int) string
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithHeight sets the requested panel height. Non-positive heights fall
// back to DefaultHeight.
func WithHeight(h float64) Option {
	return func(s *Sheet) { s.requestedHeight = h }
}

// WithFullScreen makes the sheet cover the whole viewport.
func WithFullScreen(full bool) Option {
	return func(s *Sheet) { s.fullScreen = full }
}

// WithCoverPercentage sizes the sheet as a share of the viewport height.
// Values outside (0, 1] are ignored.
func WithCoverPercentage(c float64) Option {
	return func(s *Sheet) { s.coverPercentage = c }
}

// WithBackdrop sets the backdrop blur tint and intensity.
func WithBackdrop(tint theme.BlurTint, intensity float64) Option {
	return func(s *Sheet) {
		s.style.BlurTint = tint
		s.style.BlurIntensity = intensity
	}
}

// WithBackdropPress controls whether tapping the backdrop closes the sheet.
// Enabled by default.
func WithBackdropPress(enabled bool) Option {
	return func(s *Sheet) { s.backdropPress = enabled }
}

// WithOnClose sets the callback fired once at the end of every close.
func WithOnClose(fn func()) Option {
	return func(s *Sheet) { s.onClose = fn }
}

// WithTheme overrides the sheet styling.
func WithTheme(st theme.SheetThemeData) Option {
	return func(s *Sheet) { s.style = st }
}

// WithContent sets the hosted content.
func WithContent(c Content) Option {
	return func(s *Sheet) { s.content = c }
}

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Sheet) { s.logger = l }
}

// Sheet is a bottom sheet that slides up over a dimmed, blurred backdrop,
// closes by backdrop tap or a downward drag on its handle, and keeps the
// backdrop in step with the panel on every frame.
//
// The owner controls it with SetVisible and learns about every completed
// close through the OnClose callback, fired exactly once per cycle. A Sheet
// is driven from a single goroutine: the one calling Step on its scheduler.
type Sheet struct {
	metrics platform.ViewportProvider
	driver  *Driver
	drag    *DragInterpreter

	dragRecognizer gestures.VerticalDragRecognizer
	tapRecognizer  gestures.TapRecognizer

	requestedHeight float64
	fullScreen      bool
	coverPercentage float64
	backdropPress   bool
	onClose         func()
	style           theme.SheetThemeData
	content         Content
	logger          *log.Logger

	visible  bool
	mounted  bool
	disposed bool
	height   float64
	closes   int
}

// New creates a hidden sheet. Its animations tick on provider and it
// measures the viewport through metrics at the start of every opening.
func New(provider animation.TickerProvider, metrics platform.ViewportProvider, opts ...Option) *Sheet {
	s := &Sheet{
		metrics:         metrics,
		requestedHeight: DefaultHeight,
		backdropPress:   true,
		style:           theme.DefaultSheetTheme(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default().WithPrefix("sheet")
	}
	s.driver = NewDriver(provider, s.logger)
	s.drag = NewDragInterpreter(s.driver)

	s.dragRecognizer = gestures.VerticalDragRecognizer{
		Region: func(p graphics.Offset) bool {
			return s.mounted && s.layout().handleArea.Contains(p)
		},
		OnStart: func(gestures.DragStartDetails) {
			s.drag.Begin()
		},
		OnUpdate: func(d gestures.DragUpdateDetails) {
			s.drag.Update(d.Translation)
		},
		OnEnd: func(d gestures.DragEndDetails) {
			s.drag.End(d.Translation, d.Velocity, s.finishClose)
		},
		OnCancel: func() {
			s.drag.Cancel()
		},
	}
	s.tapRecognizer = gestures.TapRecognizer{
		Region: func(p graphics.Offset) bool {
			return s.backdropPress && s.mounted && !s.layout().panel.Contains(p)
		},
		OnTap: func(graphics.Offset) {
			s.TapBackdrop()
		},
	}
	return s
}

// Driver exposes the sheet's animation driver.
func (s *Sheet) Driver() *Driver { return s.driver }

// Drag exposes the sheet's drag interpreter.
func (s *Sheet) Drag() *DragInterpreter { return s.drag }

// SetVisible shows or hides the sheet. Only a change of the flag acts:
// a sheet that dismissed itself stays closed until the owner hides it
// and shows it again.
//
// Showing an unmounted sheet resolves its height, parks the panel below
// the viewport and springs it open. Showing a sheet that is mid-close
// reverses the close from where it is. Hiding a mounted sheet runs the
// programmatic close, which unmounts and then calls OnClose.
func (s *Sheet) SetVisible(visible bool) {
	if s.disposed || visible == s.visible {
		return
	}
	s.visible = visible
	if visible {
		s.show()
		return
	}
	if s.mounted {
		s.driver.Close(s.finishClose)
	}
}

func (s *Sheet) show() {
	if s.mounted {
		if s.driver.IsClosing() {
			s.logger.Debug("sheet reopened while closing")
			s.drag.reset()
			s.driver.Open()
		}
		return
	}
	m := s.viewport()
	s.height = ResolveHeight(GeometryInput{
		ViewportHeight:  m.Viewport.Height,
		FullScreen:      s.fullScreen,
		Height:          s.requestedHeight,
		CoverPercentage: s.coverPercentage,
		Insets:          m.Insets,
	})
	s.mounted = true
	s.drag.reset()
	s.driver.Reset(s.height)
	s.driver.Open()
}

// Close runs the programmatic close from inside the sheet, for content
// that dismisses itself. It returns false when there is nothing to close
// or a close is already running.
func (s *Sheet) Close() bool {
	if s.disposed || !s.mounted {
		return false
	}
	return s.driver.Close(s.finishClose)
}

// TapBackdrop handles a tap on the dimmed area outside the panel.
func (s *Sheet) TapBackdrop() bool {
	if !s.backdropPress || s.drag.Phase() == DragDragging {
		return false
	}
	return s.Close()
}

// HandlePointer routes a pointer event to the handle drag recognizer and
// the backdrop tap recognizer.
func (s *Sheet) HandlePointer(e gestures.PointerEvent) {
	if s.disposed {
		return
	}
	if s.dragRecognizer.HandleEvent(e) {
		return
	}
	s.tapRecognizer.HandleEvent(e)
}

func (s *Sheet) finishClose() {
	s.mounted = false
	// A close that started under a drag leaves the interpreter committing.
	s.drag.reset()
	s.closes++
	s.logger.Debug("sheet closed", "closes", s.closes)
	errors.Guard("sheet.onClose", s.onClose)
}

// Dispose stops all animations and gesture tracking. The sheet ignores
// every call afterwards and OnClose is not called for an interrupted close.
func (s *Sheet) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.driver.Dispose()
	s.mounted = false
}

// Visibility reports the lifecycle state.
func (s *Sheet) Visibility() Visibility {
	switch {
	case s.mounted && s.driver.IsClosing():
		return Closing
	case s.mounted:
		return Open
	default:
		return Closed
	}
}

// IsVisible returns the last value passed to SetVisible.
func (s *Sheet) IsVisible() bool { return s.visible }

// IsMounted reports whether the panel is part of the scene.
func (s *Sheet) IsMounted() bool { return s.mounted }

// IsAnimating reports whether any transition is running.
func (s *Sheet) IsAnimating() bool { return !s.disposed && s.driver.IsAnimating() }

// IsDragging reports whether the handle is being dragged.
func (s *Sheet) IsDragging() bool { return s.drag.Phase() == DragDragging }

// Height returns the height resolved for the current cycle.
func (s *Sheet) Height() float64 { return s.height }

// Offset returns the panel's current downward translation.
func (s *Sheet) Offset() float64 { return s.driver.Offset.Get() }

// BackdropOpacity returns the backdrop's current opacity.
func (s *Sheet) BackdropOpacity() float64 { return s.driver.Backdrop.Get() }

// Closes returns how many close cycles have completed.
func (s *Sheet) Closes() int { return s.closes }

// Content returns the hosted content, or nil.
func (s *Sheet) Content() Content { return s.content }

// Style returns the sheet's visual tuning.
func (s *Sheet) Style() theme.SheetThemeData { return s.style }

func (s *Sheet) viewport() platform.Metrics {
	if s.metrics == nil {
		return platform.Metrics{}
	}
	return s.metrics.Metrics()
}
