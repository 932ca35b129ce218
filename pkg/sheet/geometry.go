package sheet

import (
	"math"

	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/theme"
)

// DefaultHeight is the requested panel height when none is configured.
const DefaultHeight = 420

// maxHeightFraction caps a non-full-screen, non-cover sheet.
const maxHeightFraction = 0.9

// GeometryInput is everything ResolveHeight reads.
type GeometryInput struct {
	ViewportHeight float64
	FullScreen     bool
	// Height is the requested height. Non-positive values mean DefaultHeight.
	Height float64
	// CoverPercentage is the fraction of the viewport to cover, in (0, 1].
	// Anything outside that range counts as not provided.
	CoverPercentage float64
	Insets          graphics.EdgeInsets
}

// ValidCover reports whether c is a usable cover percentage.
func ValidCover(c float64) bool {
	return c > 0 && c <= 1
}

// ResolveHeight computes the panel height for one open/close cycle.
//
// Full-screen sheets take the whole viewport and treat insets as padding.
// A valid cover percentage takes that share of the viewport. Otherwise the
// requested height plus the bottom inset is used, capped at 90% of the
// viewport.
func ResolveHeight(in GeometryInput) float64 {
	height := in.Height
	if !(height > 0) || math.IsInf(height, 0) {
		height = DefaultHeight
	}
	bottom := math.Max(in.Insets.Bottom, 0)
	if math.IsNaN(bottom) || math.IsInf(bottom, 0) {
		bottom = 0
	}
	vh := in.ViewportHeight
	if !(vh > 0) || math.IsInf(vh, 0) {
		// Nothing to cap against yet.
		return height + bottom
	}

	switch {
	case in.FullScreen:
		return vh
	case ValidCover(in.CoverPercentage):
		return math.Min(vh*in.CoverPercentage, vh)
	default:
		return math.Min(height+bottom, vh*maxHeightFraction)
	}
}

// ResolvePadding returns the panel's inner padding. Full-screen sheets pad
// their top by the top inset so the handle clears the status bar.
func ResolvePadding(fullScreen bool, insets graphics.EdgeInsets, st theme.SheetThemeData) graphics.EdgeInsets {
	top := st.ContentTopPad
	if fullScreen {
		top += math.Max(insets.Top, 0)
	}
	return graphics.EdgeInsets{
		Top:    top,
		Bottom: math.Max(insets.Bottom, st.MinBottomPad),
		Left:   st.ContentHorizontal,
		Right:  st.ContentHorizontal,
	}
}
