package raster

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/karto-app/karto/pkg/catalog"
	kartoerrors "github.com/karto-app/karto/pkg/errors"
	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/sheet"
	"github.com/karto-app/karto/pkg/theme"
)

// Painter draws one layer of a snapshot.
type Painter interface {
	Paint(graphics.Canvas)
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(graphics.Canvas)

// Paint calls f(c).
func (f PainterFunc) Paint(c graphics.Canvas) { f(c) }

// Render paints layers bottom to top onto a canvas the size of the frame's
// viewport, then paints the frame itself.
func Render(frame sheet.Frame, layers ...Painter) *image.RGBA {
	c := NewCanvas(frame.Viewport)
	for _, l := range layers {
		if l != nil {
			l.Paint(c)
		}
	}
	frame.Paint(c)
	return c.Image()
}

// Catalog paints a brand grid, standing in for the screen the sheet opens
// over so the backdrop blur has something to act on.
func Catalog(viewport graphics.Size, palette theme.Palette) Painter {
	return PainterFunc(func(c graphics.Canvas) {
		c.Clear(palette.Background)
		header := graphics.RectFromLTWH(0, 0, viewport.Width, 56)
		c.DrawRect(header, graphics.Paint{Color: palette.Primary})
		c.DrawText("KARTO", graphics.Offset{X: 16, Y: 22}, graphics.ColorWhite)

		const (
			cols   = 2
			gap    = 12.0
			cardH  = 72.0
			margin = 16.0
		)
		cardW := (viewport.Width - 2*margin - gap*(cols-1)) / cols
		for i, b := range catalog.Brands() {
			x := margin + float64(i%cols)*(cardW+gap)
			y := 56 + margin + float64(i/cols)*(cardH+gap)
			if y > viewport.Height {
				break
			}
			card := graphics.RectFromLTWH(x, y, cardW, cardH)
			c.DrawRRect(graphics.RRectFromRectAndRadius(card, 12), graphics.Paint{Color: palette.InputBackground})
			c.DrawText(b.Name, graphics.Offset{X: x + 12, Y: y + 12}, palette.Text)
			c.DrawText(b.Category, graphics.Offset{X: x + 12, Y: y + 32}, palette.TextSecondary)
		}
	})
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return kartoerrors.New("raster.EncodePNG", kartoerrors.KindRender, err)
	}
	return nil
}

// WritePNG writes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return kartoerrors.New("raster.WritePNG", kartoerrors.KindRender, err)
	}
	bw := bufio.NewWriter(f)
	if err := EncodePNG(bw, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return kartoerrors.New("raster.WritePNG", kartoerrors.KindRender, err)
	}
	if err := f.Close(); err != nil {
		return kartoerrors.New("raster.WritePNG", kartoerrors.KindRender, err)
	}
	return nil
}
