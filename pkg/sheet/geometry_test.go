package sheet

import (
	"math"
	"testing"

	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/theme"
)

func TestResolveHeight(t *testing.T) {
	tests := []struct {
		name string
		in   GeometryInput
		want float64
	}{
		{"default fits", GeometryInput{ViewportHeight: 800, Height: 420}, 420},
		{"bottom inset added", GeometryInput{ViewportHeight: 800, Height: 420, Insets: graphics.EdgeInsets{Bottom: 34}}, 454},
		{"capped at 90%", GeometryInput{ViewportHeight: 800, Height: 1000}, 720},
		{"full screen", GeometryInput{ViewportHeight: 800, Height: 420, FullScreen: true}, 800},
		{"full screen ignores cover", GeometryInput{ViewportHeight: 800, FullScreen: true, CoverPercentage: 0.5}, 800},
		{"cover half", GeometryInput{ViewportHeight: 800, Height: 420, CoverPercentage: 0.5}, 400},
		{"cover one", GeometryInput{ViewportHeight: 800, Height: 420, CoverPercentage: 1}, 800},
		{"cover too large", GeometryInput{ViewportHeight: 800, Height: 420, CoverPercentage: 1.5}, 420},
		{"cover negative", GeometryInput{ViewportHeight: 800, Height: 420, CoverPercentage: -0.2}, 420},
		{"cover NaN", GeometryInput{ViewportHeight: 800, Height: 420, CoverPercentage: math.NaN()}, 420},
		{"zero height uses default", GeometryInput{ViewportHeight: 800}, DefaultHeight},
		{"NaN height uses default", GeometryInput{ViewportHeight: 800, Height: math.NaN()}, DefaultHeight},
		{"unknown viewport", GeometryInput{Height: 300, Insets: graphics.EdgeInsets{Bottom: 20}}, 320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveHeight(tt.in); got != tt.want {
				t.Errorf("ResolveHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveHeightNeverExceedsCap(t *testing.T) {
	for _, vh := range []float64{200, 568, 800, 1366} {
		for _, h := range []float64{-10, 0, 1, 100, 420, 700, 5000} {
			for _, bottom := range []float64{0, 34} {
				got := ResolveHeight(GeometryInput{
					ViewportHeight: vh,
					Height:         h,
					Insets:         graphics.EdgeInsets{Bottom: bottom},
				})
				if got > 0.9*vh+1e-9 {
					t.Errorf("ResolveHeight(vh=%v, h=%v, bottom=%v) = %v, above %v", vh, h, bottom, got, 0.9*vh)
				}
				if !(got > 0) {
					t.Errorf("ResolveHeight(vh=%v, h=%v) = %v, want positive", vh, h, got)
				}
			}
		}
	}
}

func TestResolvePadding(t *testing.T) {
	st := theme.DefaultSheetTheme()
	insets := graphics.EdgeInsets{Top: 47, Bottom: 34}

	full := ResolvePadding(true, insets, st)
	if full.Top != 57 || full.Bottom != 34 {
		t.Errorf("full screen padding = %+v, want top 57 bottom 34", full)
	}

	partial := ResolvePadding(false, graphics.EdgeInsets{}, st)
	if partial.Top != 10 || partial.Bottom != 16 {
		t.Errorf("partial padding = %+v, want top 10 bottom 16", partial)
	}
	if partial.Left != 16 || partial.Right != 16 {
		t.Errorf("horizontal padding = %v/%v, want 16", partial.Left, partial.Right)
	}
}
