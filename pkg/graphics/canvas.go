package graphics

// RRect is a rectangle with rounded corners. Top and bottom corners are
// rounded independently since sheets only round their top edge.
type RRect struct {
	Rect         Rect
	TopRadius    float64
	BottomRadius float64
}

// RRectFromRectAndRadius rounds all four corners of r by radius.
func RRectFromRectAndRadius(r Rect, radius float64) RRect {
	return RRect{Rect: r, TopRadius: radius, BottomRadius: radius}
}

// LinearGradient blends From at Start into To at End.
type LinearGradient struct {
	Start, End Offset
	From, To   Color
}

// At returns the gradient color at p.
func (g LinearGradient) At(p Offset) Color {
	d := g.End.Sub(g.Start)
	len2 := d.X*d.X + d.Y*d.Y
	if len2 == 0 {
		return g.From
	}
	v := p.Sub(g.Start)
	return LerpColor(g.From, g.To, (v.X*d.X+v.Y*d.Y)/len2)
}

// Paint describes how a shape is filled. A non-nil Gradient takes
// precedence over Color.
type Paint struct {
	Color    Color
	Gradient *LinearGradient
	// Alpha multiplies the fill's own alpha. Zero means opaque.
	Alpha float64
}

// ColorAt returns the fill color at p, with Alpha applied.
func (p Paint) ColorAt(pt Offset) Color {
	c := p.Color
	if p.Gradient != nil {
		c = p.Gradient.At(pt)
	}
	if p.Alpha > 0 && p.Alpha < 1 {
		c = c.ScaleAlpha(p.Alpha)
	}
	return c
}

// Canvas receives drawing commands.
type Canvas interface {
	// Save pushes the current translation and clip.
	Save()

	// Restore pops the most recent state pushed by Save or SaveLayerBlur.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect fills a rectangle.
	DrawRect(rect Rect, paint Paint)

	// DrawRRect fills a rounded rectangle.
	DrawRRect(rrect RRect, paint Paint)

	// DrawText draws a single line of text with its top-left corner at position.
	DrawText(text string, position Offset, color Color)

	// SaveLayerBlur blurs what has been drawn inside bounds so far and then
	// behaves like Save.
	SaveLayerBlur(bounds Rect, sigma float64)

	// Size returns the size of the canvas.
	Size() Size
}
