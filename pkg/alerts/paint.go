package alerts

import "github.com/karto-app/karto/pkg/graphics"

// Card layout.
const (
	cardMargin  = 20.0
	cardHeight  = 180.0
	cardPadding = 20.0
	lineHeight  = 20.0
	buttonH     = 44.0
)

// CardRect returns where the card sits at full scale.
func (d *Dialog) CardRect(viewport graphics.Size) graphics.Rect {
	w := min(d.theme.MaxWidth, viewport.Width-2*cardMargin)
	return graphics.RectFromLTWH((viewport.Width-w)/2, (viewport.Height-cardHeight)/2, w, cardHeight)
}

// ButtonRects returns the hit rectangles of the current alert's buttons at
// full scale, laid out side by side along the bottom of the card.
func (d *Dialog) ButtonRects(viewport graphics.Size) []graphics.Rect {
	card := d.CardRect(viewport)
	buttons := d.current.EffectiveButtons()
	const gap = 10.0
	w := (card.Width() - 2*cardPadding - gap*float64(len(buttons)-1)) / float64(len(buttons))
	top := card.Bottom - cardPadding - buttonH
	rects := make([]graphics.Rect, len(buttons))
	for i := range buttons {
		rects[i] = graphics.RectFromLTWH(card.Left+cardPadding+float64(i)*(w+gap), top, w, buttonH)
	}
	return rects
}

// Paint draws the barrier and the card, scaled about its center.
func (d *Dialog) Paint(c graphics.Canvas, viewport graphics.Size) {
	if d.state == DialogHidden {
		return
	}
	opacity := d.Opacity()
	c.DrawRect(graphics.RectFromLTWH(0, 0, viewport.Width, viewport.Height), graphics.Paint{
		Color: d.theme.BarrierColor.ScaleAlpha(opacity),
	})

	scale := d.Scale()
	if scale <= 0 {
		return
	}
	full := d.CardRect(viewport)
	cx, cy := (full.Left+full.Right)/2, (full.Top+full.Bottom)/2
	card := graphics.Rect{
		Left:   cx + (full.Left-cx)*scale,
		Top:    cy + (full.Top-cy)*scale,
		Right:  cx + (full.Right-cx)*scale,
		Bottom: cy + (full.Bottom-cy)*scale,
	}
	style := d.Style()
	c.DrawRRect(graphics.RRectFromRectAndRadius(card, d.theme.BorderRadius*scale), graphics.Paint{
		Color: graphics.ColorWhite,
		Alpha: opacity,
	})
	// Text and buttons appear once the card has grown to full size.
	if scale < 0.95 {
		return
	}
	c.Save()
	c.ClipRect(card)
	c.DrawText(d.current.Title, graphics.Offset{X: full.Left + cardPadding, Y: full.Top + cardPadding}, style.Color)
	c.DrawText(d.current.Message, graphics.Offset{X: full.Left + cardPadding, Y: full.Top + cardPadding + lineHeight}, graphics.MustHex("#212121"))
	for i, r := range d.ButtonRects(viewport) {
		b := d.current.EffectiveButtons()[i]
		paint := graphics.Paint{Gradient: &graphics.LinearGradient{
			Start: graphics.Offset{X: r.Left, Y: r.Top},
			End:   graphics.Offset{X: r.Right, Y: r.Bottom},
			From:  style.GradientStart,
			To:    style.GradientEnd,
		}}
		text := graphics.ColorWhite
		if b.Style == ButtonCancel {
			paint = graphics.Paint{Color: graphics.MustHex("#f5f5f5")}
			text = graphics.MustHex("#666666")
		}
		c.DrawRRect(graphics.RRectFromRectAndRadius(r, 12), paint)
		c.DrawText(b.Text, graphics.Offset{X: r.Left + 12, Y: r.Top + 15}, text)
	}
	c.Restore()
}

// HitButton returns the index of the button under p, or -1.
func (d *Dialog) HitButton(viewport graphics.Size, p graphics.Offset) int {
	if d.state != DialogShown {
		return -1
	}
	for i, r := range d.ButtonRects(viewport) {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// HandleTap presses the button under p, or dismisses the alert when p is
// outside the card. It reports whether the tap was consumed.
func (d *Dialog) HandleTap(viewport graphics.Size, p graphics.Offset) bool {
	if d.state != DialogShown {
		return d.state == DialogHiding
	}
	if i := d.HitButton(viewport, p); i >= 0 {
		return d.Press(i)
	}
	if !d.CardRect(viewport).Contains(p) {
		return d.Dismiss()
	}
	return true
}
