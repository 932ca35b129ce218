package graphics

import (
	"fmt"
	"strings"
)

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// Ops describes each recorded operation, one line per op. Tests compare
// these instead of pixels.
func (d *DisplayList) Ops() []string {
	out := make([]string, len(d.ops))
	for i, op := range d.ops {
		out[i] = op.String()
	}
	return out
}

// String joins Ops with newlines.
func (d *DisplayList) String() string {
	return strings.Join(d.Ops(), "\n")
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, size: size}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas)
	String() string
}

type recordingCanvas struct {
	recorder *PictureRecorder
	size     Size
}

func (c *recordingCanvas) Save() {
	c.recorder.append(opSave{})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(opRestore{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) ClipRect(rect Rect) {
	c.recorder.append(opClipRect{rect: rect})
}

func (c *recordingCanvas) Clear(color Color) {
	c.recorder.append(opClear{color: color})
}

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.recorder.append(opRect{rect: rect, paint: copyPaint(paint)})
}

func (c *recordingCanvas) DrawRRect(rrect RRect, paint Paint) {
	c.recorder.append(opRRect{rrect: rrect, paint: copyPaint(paint)})
}

func (c *recordingCanvas) DrawText(text string, position Offset, color Color) {
	c.recorder.append(opText{text: text, position: position, color: color})
}

func (c *recordingCanvas) SaveLayerBlur(bounds Rect, sigma float64) {
	c.recorder.append(opSaveLayerBlur{bounds: bounds, sigma: sigma})
}

func (c *recordingCanvas) Size() Size {
	return c.size
}

// copyPaint detaches the gradient so later edits by the caller do not leak
// into the recording.
func copyPaint(p Paint) Paint {
	if p.Gradient != nil {
		g := *p.Gradient
		p.Gradient = &g
	}
	return p
}

type opSave struct{}

func (opSave) execute(c Canvas) { c.Save() }
func (opSave) String() string   { return "save" }

type opRestore struct{}

func (opRestore) execute(c Canvas) { c.Restore() }
func (opRestore) String() string   { return "restore" }

type opTranslate struct{ dx, dy float64 }

func (o opTranslate) execute(c Canvas) { c.Translate(o.dx, o.dy) }
func (o opTranslate) String() string   { return fmt.Sprintf("translate %.1f %.1f", o.dx, o.dy) }

type opClipRect struct{ rect Rect }

func (o opClipRect) execute(c Canvas) { c.ClipRect(o.rect) }
func (o opClipRect) String() string   { return "clipRect " + formatRect(o.rect) }

type opClear struct{ color Color }

func (o opClear) execute(c Canvas) { c.Clear(o.color) }
func (o opClear) String() string   { return "clear " + o.color.Hex() }

type opRect struct {
	rect  Rect
	paint Paint
}

func (o opRect) execute(c Canvas) { c.DrawRect(o.rect, o.paint) }
func (o opRect) String() string {
	return "rect " + formatRect(o.rect) + " " + formatPaint(o.paint)
}

type opRRect struct {
	rrect RRect
	paint Paint
}

func (o opRRect) execute(c Canvas) { c.DrawRRect(o.rrect, o.paint) }
func (o opRRect) String() string {
	return fmt.Sprintf("rrect %s r=%.1f/%.1f %s",
		formatRect(o.rrect.Rect), o.rrect.TopRadius, o.rrect.BottomRadius, formatPaint(o.paint))
}

type opText struct {
	text     string
	position Offset
	color    Color
}

func (o opText) execute(c Canvas) { c.DrawText(o.text, o.position, o.color) }
func (o opText) String() string {
	return fmt.Sprintf("text %q at %.1f,%.1f %s", o.text, o.position.X, o.position.Y, o.color.Hex())
}

type opSaveLayerBlur struct {
	bounds Rect
	sigma  float64
}

func (o opSaveLayerBlur) execute(c Canvas) { c.SaveLayerBlur(o.bounds, o.sigma) }
func (o opSaveLayerBlur) String() string {
	return fmt.Sprintf("blur %s sigma=%.1f", formatRect(o.bounds), o.sigma)
}

func formatRect(r Rect) string {
	return fmt.Sprintf("[%.1f,%.1f %.1fx%.1f]", r.Left, r.Top, r.Width(), r.Height())
}

func formatPaint(p Paint) string {
	var s string
	if p.Gradient != nil {
		s = p.Gradient.From.Hex() + "->" + p.Gradient.To.Hex()
	} else {
		s = p.Color.Hex()
	}
	if p.Alpha > 0 && p.Alpha < 1 {
		s += fmt.Sprintf(" a=%.2f", p.Alpha)
	}
	return s
}
