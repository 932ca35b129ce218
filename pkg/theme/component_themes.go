package theme

import "github.com/karto-app/karto/pkg/graphics"

// BlurTint selects the tint of the frosted backdrop.
type BlurTint string

const (
	BlurTintDark    BlurTint = "dark"
	BlurTintLight   BlurTint = "light"
	BlurTintDefault BlurTint = "default"
)

// SheetThemeData defines default styling for bottom sheets.
type SheetThemeData struct {
	// GradientStart and GradientEnd color the panel from top-left to bottom-right.
	GradientStart graphics.Color
	GradientEnd   graphics.Color
	// BarrierColor is the dim layer drawn over the blurred backdrop.
	BarrierColor graphics.Color
	// BlurIntensity is the backdrop blur strength, 0 to 100.
	BlurIntensity float64
	BlurTint      BlurTint
	// BorderRadius is the corner radius for the top corners of the panel.
	BorderRadius float64

	HandleColor        graphics.Color
	HandleWidth        float64
	HandleHeight       float64
	HandleRadius       float64
	HandleVerticalPad  float64
	HandleBottomMargin float64
	ContentHorizontal  float64
	ContentTopPad      float64
	MinBottomPad       float64
	BorderColor        graphics.Color
	ContentTextColor   graphics.Color
}

// HandleAreaHeight is the height of the strip at the top of the panel that
// accepts drags.
func (s SheetThemeData) HandleAreaHeight() float64 {
	return s.HandleVerticalPad*2 + s.HandleHeight + s.HandleBottomMargin
}

// DefaultSheetTheme returns the gradient sheet styling.
func DefaultSheetTheme() SheetThemeData {
	return SheetThemeData{
		GradientStart:      graphics.MustHex("#1f3b73"),
		GradientEnd:        graphics.MustHex("#6d28d9"),
		BarrierColor:       graphics.RGBA(0, 0, 0, 0.25),
		BlurIntensity:      35,
		BlurTint:           BlurTintDark,
		BorderRadius:       24,
		HandleColor:        graphics.RGBA(255, 255, 255, 0.85),
		HandleWidth:        56,
		HandleHeight:       6,
		HandleRadius:       4,
		HandleVerticalPad:  12,
		HandleBottomMargin: 4,
		ContentHorizontal:  16,
		ContentTopPad:      10,
		MinBottomPad:       16,
		BorderColor:        graphics.RGBA(255, 255, 255, 0.08),
		ContentTextColor:   graphics.ColorWhite,
	}
}

// AlertStyle is the look of one alert type.
type AlertStyle struct {
	Icon          string
	Color         graphics.Color
	GradientStart graphics.Color
	GradientEnd   graphics.Color
}

// AlertThemeData defines default styling for alert dialogs.
type AlertThemeData struct {
	Info    AlertStyle
	Success AlertStyle
	Warning AlertStyle
	Error   AlertStyle
	// BarrierColor dims the screen behind a visible alert.
	BarrierColor graphics.Color
	BorderRadius float64
	MaxWidth     float64
}

// DefaultAlertTheme returns AlertThemeData derived from a palette.
func DefaultAlertTheme(colors Palette) AlertThemeData {
	return AlertThemeData{
		Info: AlertStyle{
			Icon:          "information-circle",
			Color:         graphics.MustHex("#2196F3"),
			GradientStart: colors.Primary,
			GradientEnd:   graphics.MustHex("#5EA88A"),
		},
		Success: AlertStyle{
			Icon:          "checkmark-circle",
			Color:         graphics.MustHex("#4CAF50"),
			GradientStart: graphics.MustHex("#4CAF50"),
			GradientEnd:   graphics.MustHex("#66BB6A"),
		},
		Warning: AlertStyle{
			Icon:          "warning",
			Color:         graphics.MustHex("#FF9800"),
			GradientStart: graphics.MustHex("#FF9800"),
			GradientEnd:   graphics.MustHex("#FFB74D"),
		},
		Error: AlertStyle{
			Icon:          "close-circle",
			Color:         graphics.MustHex("#F44336"),
			GradientStart: graphics.MustHex("#F44336"),
			GradientEnd:   graphics.MustHex("#EF5350"),
		},
		BarrierColor: graphics.RGBA(0, 0, 0, 0.5),
		BorderRadius: 20,
		MaxWidth:     340,
	}
}
