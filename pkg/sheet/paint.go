package sheet

import "github.com/karto-app/karto/pkg/graphics"

// blurSigmaPerIntensity converts a 0-100 blur intensity into a Gaussian sigma.
const blurSigmaPerIntensity = 0.2

// Paint draws the frame: the blurred, dimmed backdrop, then the gradient
// panel with its handle and the content title. Hosts with richer content
// draw it afterwards into Panel.Content.
func (f Frame) Paint(c graphics.Canvas) {
	if !f.Present {
		return
	}

	blurred := f.Backdrop.BlurIntensity > 0
	if blurred {
		c.SaveLayerBlur(f.Backdrop.Rect, f.Backdrop.BlurIntensity*blurSigmaPerIntensity)
	}
	if f.Backdrop.Tint.A() > 0 {
		c.DrawRect(f.Backdrop.Rect, graphics.Paint{Color: f.Backdrop.Tint})
	}
	if blurred {
		c.Restore()
	}

	p := f.Panel
	if p.Rect.Top >= f.Viewport.Height {
		return
	}
	c.Save()
	c.ClipRect(f.Backdrop.Rect)
	c.DrawRRect(graphics.RRect{Rect: p.Rect, TopRadius: p.CornerRadius}, graphics.Paint{
		Gradient: &graphics.LinearGradient{
			Start: graphics.Offset{X: p.Rect.Left, Y: p.Rect.Top},
			End:   graphics.Offset{X: p.Rect.Right, Y: p.Rect.Bottom},
			From:  p.GradientStart,
			To:    p.GradientEnd,
		},
	})
	c.DrawRRect(graphics.RRectFromRectAndRadius(p.Handle, p.HandleRadius), graphics.Paint{Color: p.HandleColor})
	if f.Content != nil {
		if title := f.Content.Title(); title != "" {
			c.DrawText(title, graphics.Offset{X: p.Content.Left, Y: p.Content.Top}, graphics.ColorWhite)
		}
	}
	c.Restore()
}
