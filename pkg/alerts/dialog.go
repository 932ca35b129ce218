package alerts

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/karto-app/karto/pkg/animation"
	kartoerrors "github.com/karto-app/karto/pkg/errors"
	"github.com/karto-app/karto/pkg/theme"
)

// Dialog timings.
const (
	FadeInDuration  = 200 * time.Millisecond
	FadeOutDuration = 150 * time.Millisecond
)

// Rest thresholds for the unit-scale spring.
const (
	scaleRestDisplacement = 0.001
	scaleRestSpeed        = 0.01
)

// DialogState is where a Dialog is in its show/hide cycle.
type DialogState int

const (
	DialogHidden DialogState = iota
	DialogShown
	DialogHiding
)

func (s DialogState) String() string {
	switch s {
	case DialogShown:
		return "shown"
	case DialogHiding:
		return "hiding"
	default:
		return "hidden"
	}
}

// Dialog is a Presenter that shows one alert at a time as a centered card.
// It scales in on a spring and fades, and runs the pressed button's action
// and the alert's OnDismiss only after the hide animation completes.
// Alerts presented while one is on screen wait their turn.
//
// Like the sheet, a Dialog belongs to the UI goroutine.
type Dialog struct {
	scale   *animation.Value
	opacity *animation.Value
	theme   theme.AlertThemeData
	logger  *log.Logger

	state   DialogState
	current Alert
	queue   []Alert

	pressed    *Button
	hidePhases int
}

// DialogOption configures a Dialog.
type DialogOption func(*Dialog)

// WithAlertTheme overrides the dialog styling.
func WithAlertTheme(th theme.AlertThemeData) DialogOption {
	return func(d *Dialog) { d.theme = th }
}

// WithDialogLogger sets the dialog logger.
func WithDialogLogger(l *log.Logger) DialogOption {
	return func(d *Dialog) { d.logger = l }
}

// NewDialog returns a hidden dialog animated by provider.
func NewDialog(provider animation.TickerProvider, opts ...DialogOption) *Dialog {
	d := &Dialog{
		scale:   animation.NewValue(provider, 0),
		opacity: animation.NewValue(provider, 0),
		theme:   theme.DefaultAlertTheme(theme.KartoPalette()),
	}
	d.opacity.SetBounds(0, 1)
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.Default().WithPrefix("alerts")
	}
	return d
}

// Present implements Presenter.
func (d *Dialog) Present(a Alert) {
	if d.state != DialogHidden {
		d.queue = append(d.queue, a)
		return
	}
	d.show(a)
}

func (d *Dialog) show(a Alert) {
	d.current = a
	d.state = DialogShown
	d.pressed = nil
	d.logger.Debug("alert shown", "id", a.ID, "type", a.Type)
	d.scale.Set(0)
	d.opacity.Set(0)
	d.scale.AnimateTo(1, d.spring(false), nil)
	d.opacity.AnimateTo(1, animation.Timing{Duration: FadeInDuration}, nil)
}

func (d *Dialog) spring(clamp bool) animation.Spring {
	return animation.Spring{
		Description:       animation.AlertSpring(),
		OvershootClamping: clamp,
		RestDisplacement:  scaleRestDisplacement,
		RestSpeed:         scaleRestSpeed,
	}
}

// Press activates the button at index of the current alert's effective
// buttons. It reports whether the press started a hide.
func (d *Dialog) Press(index int) bool {
	if d.state != DialogShown {
		return false
	}
	buttons := d.current.EffectiveButtons()
	if index < 0 || index >= len(buttons) {
		return false
	}
	b := buttons[index]
	d.pressed = &b
	d.hide()
	return true
}

// Dismiss hides the current alert without pressing a button, as a barrier
// tap or back press does.
func (d *Dialog) Dismiss() bool {
	if d.state != DialogShown {
		return false
	}
	d.pressed = nil
	d.hide()
	return true
}

func (d *Dialog) hide() {
	d.state = DialogHiding
	d.hidePhases = 2
	done := func(finished bool) {
		if !finished {
			return
		}
		d.hidePhases--
		if d.hidePhases == 0 {
			d.finishHide()
		}
	}
	d.scale.AnimateTo(0, d.spring(true), done)
	d.opacity.AnimateTo(0, animation.Timing{Duration: FadeOutDuration}, done)
}

func (d *Dialog) finishHide() {
	a := d.current
	pressed := d.pressed
	d.state = DialogHidden
	d.current = Alert{}
	d.pressed = nil
	d.logger.Debug("alert hidden", "id", a.ID)

	if pressed != nil && pressed.OnPress != nil {
		kartoerrors.Guard("alerts.Button.OnPress", pressed.OnPress)
	}
	kartoerrors.Guard("alerts.Alert.OnDismiss", a.OnDismiss)

	// A callback may already have presented a new alert.
	if d.state == DialogHidden && len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		d.show(next)
	}
}

// State returns the dialog state.
func (d *Dialog) State() DialogState { return d.state }

// IsVisible reports whether an alert is on screen, including while hiding.
func (d *Dialog) IsVisible() bool { return d.state != DialogHidden }

// Current returns the alert on screen.
func (d *Dialog) Current() (Alert, bool) {
	return d.current, d.state != DialogHidden
}

// Queued returns the number of alerts waiting behind the current one.
func (d *Dialog) Queued() int { return len(d.queue) }

// Scale returns the card scale, 0 when hidden and 1 at rest.
func (d *Dialog) Scale() float64 { return d.scale.Get() }

// Opacity returns the card and barrier opacity in [0, 1].
func (d *Dialog) Opacity() float64 { return d.opacity.Get() }

// Style returns the look of the current alert.
func (d *Dialog) Style() theme.AlertStyle { return d.current.Type.Style(d.theme) }

// Theme returns the dialog styling.
func (d *Dialog) Theme() theme.AlertThemeData { return d.theme }

// Dispose stops the animations without running callbacks.
func (d *Dialog) Dispose() {
	d.scale.Dispose()
	d.opacity.Dispose()
	d.queue = nil
	d.state = DialogHidden
}
