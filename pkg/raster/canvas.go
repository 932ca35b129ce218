// Package raster draws sheet frames into images.
//
// [Canvas] implements graphics.Canvas over an *image.RGBA. Fills are
// composited source-over with golang.org/x/image/draw and text uses the
// fixed 7x13 face from golang.org/x/image/font/basicfont, so output is
// identical on every machine.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/karto-app/karto/pkg/graphics"
)

type canvasState struct {
	dx, dy float64
	clip   image.Rectangle
}

// Canvas rasterizes drawing commands into an RGBA image.
type Canvas struct {
	img   *image.RGBA
	face  font.Face
	state canvasState
	stack []canvasState
}

// NewCanvas returns a transparent canvas of the given size, rounded up to
// whole pixels.
func NewCanvas(size graphics.Size) *Canvas {
	w := int(math.Ceil(math.Max(size.Width, 0)))
	h := int(math.Ceil(math.Max(size.Height, 0)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Canvas{
		img:   img,
		face:  basicfont.Face7x13,
		state: canvasState{clip: img.Bounds()},
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Save implements graphics.Canvas.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore implements graphics.Canvas. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.state = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// Translate implements graphics.Canvas.
func (c *Canvas) Translate(dx, dy float64) {
	c.state.dx += dx
	c.state.dy += dy
}

// ClipRect implements graphics.Canvas.
func (c *Canvas) ClipRect(rect graphics.Rect) {
	c.state.clip = c.state.clip.Intersect(c.device(rect))
}

// Clear implements graphics.Canvas. It ignores the clip.
func (c *Canvas) Clear(col graphics.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(nrgba(col)), image.Point{}, draw.Src)
}

// DrawRect implements graphics.Canvas.
func (c *Canvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	r := c.device(rect).Intersect(c.state.clip)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, c.source(paint), r.Min, draw.Over)
}

// DrawRRect implements graphics.Canvas.
func (c *Canvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	r := c.device(rrect.Rect).Intersect(c.state.clip)
	if r.Empty() {
		return
	}
	mask := &rrectMask{
		rect:   rrect.Rect.Translate(c.state.dx, c.state.dy),
		top:    rrect.TopRadius,
		bottom: rrect.BottomRadius,
	}
	draw.DrawMask(c.img, r, c.source(paint), r.Min, mask, r.Min, draw.Over)
}

// DrawText implements graphics.Canvas. position is the top-left corner of
// the line box.
func (c *Canvas) DrawText(text string, position graphics.Offset, col graphics.Color) {
	dst, ok := c.img.SubImage(c.state.clip).(*image.RGBA)
	if !ok || dst.Bounds().Empty() {
		return
	}
	ascent := c.face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(nrgba(col)),
		Face: c.face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round((position.X + c.state.dx) * 64)),
			Y: fixed.Int26_6(math.Round((position.Y+c.state.dy)*64)) + ascent,
		},
	}
	d.DrawString(text)
}

// MeasureText returns the advance width of text in pixels.
func (c *Canvas) MeasureText(text string) float64 {
	return float64(font.MeasureString(c.face, text)) / 64
}

// SaveLayerBlur implements graphics.Canvas.
func (c *Canvas) SaveLayerBlur(bounds graphics.Rect, sigma float64) {
	r := c.device(bounds).Intersect(c.state.clip)
	if !r.Empty() && sigma > 0 {
		blur(c.img, r, sigma)
	}
	c.Save()
}

// Size implements graphics.Canvas.
func (c *Canvas) Size() graphics.Size {
	b := c.img.Bounds()
	return graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// device converts a local rectangle to the pixels it covers.
func (c *Canvas) device(r graphics.Rect) image.Rectangle {
	r = r.Translate(c.state.dx, c.state.dy)
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}

func (c *Canvas) source(p graphics.Paint) image.Image {
	if p.Gradient == nil {
		return image.NewUniform(nrgba(p.ColorAt(graphics.Offset{})))
	}
	return &paintImage{paint: p, dx: c.state.dx, dy: c.state.dy}
}

func nrgba(c graphics.Color) color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

var _ graphics.Canvas = (*Canvas)(nil)

// paintImage samples a gradient paint at pixel centers in device space.
type paintImage struct {
	paint  graphics.Paint
	dx, dy float64
}

func (p *paintImage) ColorModel() color.Model { return color.NRGBAModel }

func (p *paintImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (p *paintImage) At(x, y int) color.Color {
	pt := graphics.Offset{X: float64(x) + 0.5 - p.dx, Y: float64(y) + 0.5 - p.dy}
	return nrgba(p.paint.ColorAt(pt))
}

// rrectMask is the coverage of a rounded rectangle in device space.
type rrectMask struct {
	rect        graphics.Rect
	top, bottom float64
}

func (m *rrectMask) ColorModel() color.Model { return color.AlphaModel }

func (m *rrectMask) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(m.rect.Left)), int(math.Floor(m.rect.Top)),
		int(math.Ceil(m.rect.Right)), int(math.Ceil(m.rect.Bottom)),
	)
}

func (m *rrectMask) At(x, y int) color.Color {
	return color.Alpha{A: uint8(math.Round(m.coverage(float64(x)+0.5, float64(y)+0.5) * 255))}
}

// coverage approximates how much of the pixel centered at (px, py) lies
// inside the shape, with a one pixel ramp along the edge.
func (m *rrectMask) coverage(px, py float64) float64 {
	r := m.rect
	// Signed distance to the straight edges; positive inside.
	d := math.Min(math.Min(px-r.Left, r.Right-px), math.Min(py-r.Top, r.Bottom-py))

	upper := py < r.Top+r.Height()/2
	radius := m.bottom
	if upper {
		radius = m.top
	}
	radius = math.Min(radius, math.Min(r.Width(), r.Height())/2)
	if radius <= 0 {
		return clamp01(d + 0.5)
	}

	cy := r.Bottom - radius
	inBand := py > cy
	if upper {
		cy = r.Top + radius
		inBand = py < cy
	}
	if inBand {
		switch {
		case px < r.Left+radius:
			d = radius - math.Hypot(px-(r.Left+radius), py-cy)
		case px > r.Right-radius:
			d = radius - math.Hypot(px-(r.Right-radius), py-cy)
		}
	}
	return clamp01(d + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
