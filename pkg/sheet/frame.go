package sheet

import (
	"math"

	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/theme"
)

// BackdropFrame describes the full-screen layer behind the panel.
type BackdropFrame struct {
	Rect    graphics.Rect
	Opacity float64
	// Tint is the dim color with Opacity already applied.
	Tint          graphics.Color
	BlurIntensity float64
	BlurTint      theme.BlurTint
	// Dismissible reports whether a tap on the backdrop closes the sheet.
	Dismissible bool
}

// PanelFrame describes the bottom-anchored panel.
type PanelFrame struct {
	// Rect is where the panel is drawn this frame, translated by Offset.
	Rect          graphics.Rect
	Offset        float64
	Height        float64
	CornerRadius  float64
	GradientStart graphics.Color
	GradientEnd   graphics.Color
	BorderColor   graphics.Color
	Padding       graphics.EdgeInsets
	// HandleArea is the strip that accepts drags.
	HandleArea   graphics.Rect
	Handle       graphics.Rect
	HandleColor  graphics.Color
	HandleRadius float64
	// Content is the space left for the hosted content.
	Content graphics.Rect
}

// Frame is a render description of one sheet frame.
type Frame struct {
	// Present is false when nothing should be drawn at all.
	Present    bool
	Visibility Visibility
	Viewport   graphics.Size
	Backdrop   BackdropFrame
	Panel      PanelFrame
	Content    Content
}

type sheetLayout struct {
	panel      graphics.Rect
	padding    graphics.EdgeInsets
	handleArea graphics.Rect
	handle     graphics.Rect
	content    graphics.Rect
}

func (s *Sheet) layout() sheetLayout {
	m := s.viewport()
	w, vh := m.Viewport.Width, m.Viewport.Height
	st := s.style

	top := vh - s.height + s.driver.Offset.Get()
	panel := graphics.RectFromLTWH(0, top, w, s.height)
	padding := ResolvePadding(s.fullScreen, m.Insets, st)
	handleArea := graphics.RectFromLTWH(0, top+padding.Top, w, st.HandleAreaHeight())
	handle := graphics.RectFromLTWH((w-st.HandleWidth)/2, handleArea.Top+st.HandleVerticalPad, st.HandleWidth, st.HandleHeight)
	contentTop := handleArea.Bottom
	content := graphics.RectFromLTWH(
		padding.Left,
		contentTop,
		math.Max(w-padding.Left-padding.Right, 0),
		math.Max(panel.Bottom-padding.Bottom-contentTop, 0),
	)
	return sheetLayout{
		panel:      panel,
		padding:    padding,
		handleArea: handleArea,
		handle:     handle,
		content:    content,
	}
}

// Frame returns what to draw for the current animation state. It is cheap
// and meant to be called once per host frame after the scheduler steps.
func (s *Sheet) Frame() Frame {
	present := !s.disposed && (s.visible || s.mounted || s.driver.IsAnimating())
	if !present {
		return Frame{Visibility: Closed}
	}
	m := s.viewport()
	l := s.layout()
	st := s.style
	opacity := s.driver.Backdrop.Get()

	return Frame{
		Present:    true,
		Visibility: s.Visibility(),
		Viewport:   m.Viewport,
		Backdrop: BackdropFrame{
			Rect:          graphics.RectFromLTWH(0, 0, m.Viewport.Width, m.Viewport.Height),
			Opacity:       opacity,
			Tint:          st.BarrierColor.ScaleAlpha(opacity),
			BlurIntensity: st.BlurIntensity * opacity,
			BlurTint:      st.BlurTint,
			Dismissible:   s.backdropPress,
		},
		Panel: PanelFrame{
			Rect:          l.panel,
			Offset:        s.driver.Offset.Get(),
			Height:        s.height,
			CornerRadius:  st.BorderRadius,
			GradientStart: st.GradientStart,
			GradientEnd:   st.GradientEnd,
			BorderColor:   st.BorderColor,
			Padding:       l.padding,
			HandleArea:    l.handleArea,
			Handle:        l.handle,
			HandleColor:   st.HandleColor,
			HandleRadius:  st.HandleRadius,
			Content:       l.content,
		},
		Content: s.content,
	}
}
