package gridcanvas

import (
	"image/color"
	"testing"
)

func TestGridLines(t *testing.T) {
	tests := []struct {
		name                  string
		position, step, width float64
		want                  []float64
	}{
		{"origin", 0, 40, 130, []float64{0, 40, 80, 120}},
		{"positive offset", 25, 40, 100, []float64{25, 65}},
		{"offset larger than step", 90, 40, 100, []float64{10, 50, 90}},
		// math.Mod keeps the sign of the dividend, so negative positions
		// start slightly off-surface.
		{"negative offset", -10, 40, 100, []float64{-10, 30, 70}},
		{"zoomed out", 0, 4, 10, []float64{0, 4, 8}},
		{"zero step", 0, 0, 100, nil},
		{"empty surface", 0, 40, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gridLines(tt.position, tt.step, tt.width, nil)
			if len(got) != len(tt.want) {
				t.Fatalf("gridLines = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !approxEqual(got[i], tt.want[i], 1e-9) {
					t.Errorf("line %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGridLinesPanContinuity(t *testing.T) {
	// Panning by a whole cell yields the same lines.
	a := gridLines(13, 40, 400, nil)
	b := gridLines(13+40*3, 40, 400, nil)
	if len(a) != len(b) {
		t.Fatalf("line counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !approxEqual(a[i], b[i], 1e-9) {
			t.Errorf("line %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGridLinesReusesBuffer(t *testing.T) {
	buf := make([]float64, 0, 64)
	got := gridLines(0, 10, 100, buf)
	if &got[0] != &buf[:1][0] {
		t.Error("gridLines allocated despite a large enough buffer")
	}
}

func TestRendererInvalidate(t *testing.T) {
	var r surfaceRenderer
	grid := color.NRGBA{R: 255, G: 255, B: 255, A: 26}
	header := color.NRGBA{R: 97, G: 218, B: 251, A: 153}
	bg := color.NRGBA{R: 40, G: 44, B: 52, A: 255}

	tests := []struct {
		name        string
		w, h        int
		rev         uint64
		grid, bg    color.Color
		wantResized bool
		wantStale   bool
	}{
		{"first frame", 800, 600, 1, grid, bg, true, true},
		{"unchanged", 800, 600, 1, grid, bg, false, false},
		{"camera moved", 800, 600, 2, grid, bg, false, true},
		{"surface resized", 1024, 600, 2, grid, bg, true, true},
		{"theme changed", 1024, 600, 2, header, bg, false, true},
		{"same colors in another model", 1024, 600, 2, header, color.RGBA{R: 40, G: 44, B: 52, A: 255}, false, false},
	}
	for _, tt := range tests {
		resized, stale := r.invalidate(tt.w, tt.h, tt.rev, tt.grid, tt.bg)
		if resized != tt.wantResized || stale != tt.wantStale {
			t.Errorf("%s: resized, stale = %v, %v; want %v, %v", tt.name, resized, stale, tt.wantResized, tt.wantStale)
		}
	}
}

func TestDrawNilScreen(t *testing.T) {
	g, _ := newTestGrid(Options{Palette: mapPalette{}})
	g.Draw(nil)
	if g.Redraws() != 0 {
		t.Errorf("Redraws = %d after drawing a nil screen", g.Redraws())
	}
}
