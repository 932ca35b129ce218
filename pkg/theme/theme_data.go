// Package theme holds the KARTO palette and the default visual tuning of
// the components in this module.
package theme

import "github.com/karto-app/karto/pkg/graphics"

// Palette is the app-wide color set.
type Palette struct {
	Primary         graphics.Color
	Success         graphics.Color
	Disabled        graphics.Color
	Warning         graphics.Color
	Error           graphics.Color
	Text            graphics.Color
	TextSecondary   graphics.Color
	Placeholder     graphics.Color
	Border          graphics.Color
	InputBackground graphics.Color
	Background      graphics.Color
}

// KartoPalette returns the brand palette.
func KartoPalette() Palette {
	return Palette{
		Primary:         graphics.MustHex("#77BFA3"),
		Success:         graphics.MustHex("#99D1A4"),
		Disabled:        graphics.MustHex("#C7C7CC"),
		Warning:         graphics.MustHex("#FF9500"),
		Error:           graphics.MustHex("#FF3B30"),
		Text:            graphics.MustHex("#212121"),
		TextSecondary:   graphics.MustHex("#8E8E93"),
		Placeholder:     graphics.MustHex("#AAAAAA"),
		Border:          graphics.MustHex("#AAAAAA"),
		InputBackground: graphics.MustHex("#f9f8f8"),
		Background:      graphics.ColorWhite,
	}
}

// ThemeData contains all theme configuration for an application.
type ThemeData struct {
	// Colors defines the color palette.
	Colors Palette

	// Component themes - optional, derived from Colors if nil.
	SheetTheme *SheetThemeData
	AlertTheme *AlertThemeData
}

// DefaultTheme returns the KARTO theme.
func DefaultTheme() *ThemeData {
	return &ThemeData{Colors: KartoPalette()}
}

// SheetThemeOf returns the sheet theme, deriving from Colors if not set.
func (t *ThemeData) SheetThemeOf() SheetThemeData {
	if t != nil && t.SheetTheme != nil {
		return *t.SheetTheme
	}
	return DefaultSheetTheme()
}

// AlertThemeOf returns the alert theme, deriving from Colors if not set.
func (t *ThemeData) AlertThemeOf() AlertThemeData {
	if t != nil && t.AlertTheme != nil {
		return *t.AlertTheme
	}
	colors := KartoPalette()
	if t != nil {
		colors = t.Colors
	}
	return DefaultAlertTheme(colors)
}
