// Package alerts delivers app-wide alert messages to whichever presenter is
// mounted, without a global manager.
//
// The root of an application owns a [Bus] and hands it down, usually through
// a context.Context via [WithBus]. Alerts shown before any presenter has
// subscribed wait in a bounded queue and are flushed, in order, to the first
// subscriber.
package alerts

import (
	"time"

	"github.com/google/uuid"

	"github.com/karto-app/karto/pkg/theme"
)

// Type selects an alert's icon and colors.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Style returns the look of t. Unknown types look like TypeInfo.
func (t Type) Style(th theme.AlertThemeData) theme.AlertStyle {
	switch t {
	case TypeSuccess:
		return th.Success
	case TypeWarning:
		return th.Warning
	case TypeError:
		return th.Error
	default:
		return th.Info
	}
}

// ButtonStyle changes how a button is drawn.
type ButtonStyle string

const (
	ButtonDefault ButtonStyle = ""
	ButtonCancel  ButtonStyle = "cancel"
)

// Button is one action of an alert. OnPress runs after the alert has
// finished hiding.
type Button struct {
	Text    string
	Style   ButtonStyle
	OnPress func()
}

// DefaultButtons is used for alerts that declare none.
var DefaultButtons = []Button{{Text: "OK"}}

// Alert is a message for the user.
type Alert struct {
	ID      uuid.UUID
	Type    Type
	Title   string
	Message string
	Buttons []Button
	// OnDismiss runs after the alert has hidden, whichever way it was closed.
	OnDismiss func()
	CreatedAt time.Time
}

// EffectiveButtons returns the alert's buttons, or DefaultButtons.
func (a Alert) EffectiveButtons() []Button {
	if len(a.Buttons) == 0 {
		return DefaultButtons
	}
	return a.Buttons
}
