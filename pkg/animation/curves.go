package animation

import "math"

// Curve maps linear progress t in [0, 1] to eased progress.
type Curve func(t float64) float64

// Linear returns linear progress (no easing).
func Linear(t float64) float64 {
	return t
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Use for elements exiting the screen.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Use for elements entering the screen.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly. This is the default timing curve of the
// mobile animation runtimes the sheet was tuned against.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

// CubicBezier returns an easing function matching CSS cubic-bezier().
// The curve starts at (0,0) and ends at (1,1); (x1,y1) and (x2,y2) are the
// control points.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezier(y1, y2, solveBezierX(x1, x2, t))
	}
}

// solveBezierX finds the curve parameter whose x coordinate equals x.
func solveBezierX(x1, x2, x float64) float64 {
	u := x
	for range 8 {
		err := bezier(x1, x2, u) - x
		if math.Abs(err) < 1e-7 {
			return u
		}
		d := bezierSlope(x1, x2, u)
		if math.Abs(d) < 1e-7 {
			break
		}
		u -= err / d
	}

	// Newton failed to converge; bisect, which always does on [0,1].
	lo, hi := 0.0, 1.0
	u = clamp(u, 0, 1)
	for range 20 {
		err := bezier(x1, x2, u) - x
		if math.Abs(err) < 1e-7 {
			break
		}
		if err > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

func bezier(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

// Interpolate maps x from the input range [in0, in1] to [out0, out1].
// The result is clamped to the output range. A degenerate input range
// returns out0.
func Interpolate(x, in0, in1, out0, out1 float64) float64 {
	if in1 == in0 || math.IsNaN(x) {
		return out0
	}
	t := clamp((x-in0)/(in1-in0), 0, 1)
	return out0*(1-t) + out1*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
