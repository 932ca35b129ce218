package raster

import (
	"image"
	"math"
)

// blurPasses box blurs approximate a Gaussian of the requested sigma.
const blurPasses = 3

// blur applies an approximate Gaussian blur to r in place. Pixels outside
// r are not read, so the edge of the region does not bleed.
func blur(img *image.RGBA, r image.Rectangle, sigma float64) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	radius := boxRadius(sigma)
	if radius < 1 {
		return
	}
	w, h := r.Dx(), r.Dy()
	line := make([]float64, max(w, h)*4)
	out := make([]float64, len(line))

	for range blurPasses {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			off := img.PixOffset(r.Min.X, y)
			load(line, img.Pix[off:], w, 4)
			boxLine(line[:w*4], out[:w*4], radius)
			store(img.Pix[off:], out, w, 4)
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			off := img.PixOffset(x, r.Min.Y)
			load(line, img.Pix[off:], h, img.Stride)
			boxLine(line[:h*4], out[:h*4], radius)
			store(img.Pix[off:], out, h, img.Stride)
		}
	}
}

// boxRadius returns the half width of each box pass for sigma.
func boxRadius(sigma float64) int {
	width := math.Sqrt(12*sigma*sigma/blurPasses + 1)
	return int(math.Round((width - 1) / 2))
}

func load(dst []float64, pix []byte, n, stride int) {
	for i := range n {
		p := pix[i*stride : i*stride+4]
		for c := range 4 {
			dst[i*4+c] = float64(p[c])
		}
	}
}

func store(pix []byte, src []float64, n, stride int) {
	for i := range n {
		p := pix[i*stride : i*stride+4]
		for c := range 4 {
			p[c] = uint8(math.Round(math.Min(math.Max(src[i*4+c], 0), 255)))
		}
	}
}

// boxLine averages each pixel with its neighbors within radius, clamping
// at the ends of the line.
func boxLine(in, out []float64, radius int) {
	n := len(in) / 4
	for c := range 4 {
		var sum float64
		for k := -radius; k <= radius; k++ {
			sum += in[clampIndex(k, n)*4+c]
		}
		span := float64(2*radius + 1)
		for i := range n {
			out[i*4+c] = sum / span
			sum += in[clampIndex(i+radius+1, n)*4+c] - in[clampIndex(i-radius, n)*4+c]
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
