package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/karto-app/karto/pkg/graphics"
)

var red = graphics.RGB(255, 0, 0)

func rgbaAt(c *Canvas, x, y int) color.RGBA {
	return c.Image().RGBAAt(x, y)
}

func TestDrawRect(t *testing.T) {
	c := NewCanvas(graphics.Size{Width: 10, Height: 10})
	c.DrawRect(graphics.RectFromLTWH(2, 2, 4, 4), graphics.Paint{Color: red})

	if got := rgbaAt(c, 3, 3); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside pixel = %v, want opaque red", got)
	}
	if got := rgbaAt(c, 0, 0); got.A != 0 {
		t.Errorf("outside pixel = %v, want transparent", got)
	}
}

func TestTranslateAndClip(t *testing.T) {
	c := NewCanvas(graphics.Size{Width: 10, Height: 10})
	c.Save()
	c.Translate(5, 0)
	c.ClipRect(graphics.RectFromLTWH(0, 0, 2, 10))
	c.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), graphics.Paint{Color: red})
	c.Restore()

	if rgbaAt(c, 6, 5).A != 255 {
		t.Error("pixel inside translated clip not painted")
	}
	if rgbaAt(c, 8, 5).A != 0 || rgbaAt(c, 2, 5).A != 0 {
		t.Error("pixels outside clip painted")
	}

	// Restore dropped the clip.
	c.DrawRect(graphics.RectFromLTWH(0, 0, 1, 1), graphics.Paint{Color: red})
	if rgbaAt(c, 0, 0).A != 255 {
		t.Error("clip leaked past Restore")
	}
}

func TestDrawRRectCorners(t *testing.T) {
	c := NewCanvas(graphics.Size{Width: 20, Height: 20})
	c.DrawRRect(graphics.RRect{Rect: graphics.RectFromLTWH(0, 0, 20, 20), TopRadius: 8}, graphics.Paint{Color: red})

	if got := rgbaAt(c, 0, 0).A; got != 0 {
		t.Errorf("top-left corner alpha = %d, want 0", got)
	}
	if got := rgbaAt(c, 19, 19).A; got != 255 {
		t.Errorf("square bottom-right corner alpha = %d, want 255", got)
	}
	if got := rgbaAt(c, 10, 10).A; got != 255 {
		t.Errorf("center alpha = %d, want 255", got)
	}
}

func TestGradientFill(t *testing.T) {
	c := NewCanvas(graphics.Size{Width: 100, Height: 1})
	c.DrawRect(graphics.RectFromLTWH(0, 0, 100, 1), graphics.Paint{Gradient: &graphics.LinearGradient{
		Start: graphics.Offset{X: 0},
		End:   graphics.Offset{X: 100},
		From:  graphics.ColorBlack,
		To:    graphics.ColorWhite,
	}})
	left, right := rgbaAt(c, 0, 0), rgbaAt(c, 99, 0)
	if left.R > 10 || right.R < 245 {
		t.Errorf("gradient ends = %v .. %v, want black .. white", left, right)
	}
	if mid := rgbaAt(c, 50, 0); mid.R < 100 || mid.R > 155 {
		t.Errorf("gradient middle = %v, want mid grey", mid)
	}
}

func TestDrawText(t *testing.T) {
	c := NewCanvas(graphics.Size{Width: 60, Height: 20})
	c.DrawText("KARTO", graphics.Offset{X: 2, Y: 2}, graphics.ColorWhite)

	inked := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if rgbaAt(c, x, y).A > 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("DrawText painted nothing")
	}
	if w := c.MeasureText("KARTO"); w != 35 {
		t.Errorf("MeasureText = %v, want 35", w)
	}
}

func TestBlurSoftensEdges(t *testing.T) {
	c := NewCanvas(graphics.Size{Width: 40, Height: 10})
	c.Clear(graphics.ColorBlack)
	c.DrawRect(graphics.RectFromLTWH(20, 0, 20, 10), graphics.Paint{Color: graphics.ColorWhite})

	c.SaveLayerBlur(graphics.RectFromLTWH(0, 0, 40, 10), 2)
	c.Restore()

	edge := rgbaAt(c, 20, 5).R
	if edge < 60 || edge > 200 {
		t.Errorf("edge after blur = %d, want a blend", edge)
	}
	if far := rgbaAt(c, 0, 5).R; far != 0 {
		t.Errorf("far black pixel = %d, want 0", far)
	}
	if far := rgbaAt(c, 39, 5).R; far != 255 {
		t.Errorf("far white pixel = %d, want 255", far)
	}
}

func TestBoxRadius(t *testing.T) {
	tests := []struct {
		sigma float64
		want  int
	}{
		{0, 0},
		{1, 1},
		{7, 7},
	}
	for _, tt := range tests {
		if got := boxRadius(tt.sigma); got != tt.want {
			t.Errorf("boxRadius(%v) = %d, want %d", tt.sigma, got, tt.want)
		}
	}
}

func TestEncodePNG(t *testing.T) {
	c := NewCanvas(graphics.Size{Width: 3.2, Height: 2})
	var buf bytes.Buffer
	if err := EncodePNG(&buf, c.Image()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 4, 2) {
		t.Errorf("bounds = %v, want 4x2", got)
	}
}
