package heatmap

import (
	"image"
	"image/color"
	"testing"
)

func TestRenderSinglePointScenario(t *testing.T) {
	h := New(100, 100)
	if err := h.SetRadius(10); err != nil {
		t.Fatalf("SetRadius: %v", err)
	}
	if err := h.SetIntensity(1); err != nil {
		t.Fatalf("SetIntensity: %v", err)
	}
	h.AddPoints([]Point{{X: 50, Y: 50, Count: 1}})

	img := h.Render()
	ramp := h.ramp

	cr, cg, cb, ca := img.At(50, 50).RGBA()
	want := ramp[len(ramp)-1]
	if uint8(cr>>8) != want.R || uint8(cg>>8) != want.G || uint8(cb>>8) != want.B || uint8(ca>>8) != want.A {
		t.Errorf("center pixel = (%d,%d,%d,%d), want %+v", cr>>8, cg>>8, cb>>8, ca>>8, want)
	}

	// A corner is outside the stamp entirely; it stays white pre-remap, so
	// after negate+remap it lands on ramp[0].
	xr, xg, xb, xa := img.At(0, 0).RGBA()
	wantCorner := ramp[0]
	if uint8(xr>>8) != wantCorner.R || uint8(xg>>8) != wantCorner.G || uint8(xb>>8) != wantCorner.B || uint8(xa>>8) != wantCorner.A {
		t.Errorf("corner pixel = (%d,%d,%d,%d), want %+v", xr>>8, xg>>8, xb>>8, xa>>8, wantCorner)
	}
}

func TestAddPointsAggregatesDuplicateCoordinates(t *testing.T) {
	h := New(10, 10)
	h.AddPoints([]Point{{X: 1, Y: 1, Count: 2}, {X: 1, Y: 1, Count: 3}})
	pts := h.Points()
	if len(pts) != 1 || pts[0].Count != 5 {
		t.Fatalf("expected single aggregated point with count 5, got %+v", pts)
	}
	if h.MaxOccurrence() != 5 {
		t.Errorf("expected maxOccurrence auto-updated to 5, got %d", h.MaxOccurrence())
	}
}

func TestIncreasingCountDoesNotDecreaseLuminance(t *testing.T) {
	render := func(count int) (r, g, b uint32) {
		h := New(60, 60)
		h.SetRadius(10)
		h.AddPoints([]Point{{X: 30, Y: 30, Count: count}})
		h.SetMaxOccurrence(10)
		img := h.Render()
		rr, gg, bb, _ := img.At(30, 30).RGBA()
		return rr, gg, bb
	}

	lum := func(r, g, b uint32) float64 {
		return float64(r>>8) * float64(g>>8) * float64(b>>8)
	}

	var prev float64 = -1
	for _, count := range []int{1, 2, 4, 6, 8, 10} {
		r, g, b := render(count)
		l := lum(r, g, b)
		if prev >= 0 && l < prev {
			t.Errorf("luminance proxy decreased at count=%d: %v -> %v", count, prev, l)
		}
		prev = l
	}
}

func TestSetColorsFromImageReadsExpectedAxis(t *testing.T) {
	// A 3x1 stripe image; useRows=true should read across x at y=0.
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})

	h := New(10, 10)
	h.SetColorsFromImage(img, true)
	if len(h.ramp) == 0 {
		t.Fatal("expected non-empty ramp from row scan")
	}
}

func TestSetRadiusRejectsNonPositive(t *testing.T) {
	h := New(10, 10)
	if err := h.SetRadius(0); err == nil {
		t.Error("expected error for radius 0")
	}
}

func TestSetIntensityRejectsOutOfRange(t *testing.T) {
	h := New(10, 10)
	if err := h.SetIntensity(0); err == nil {
		t.Error("expected error for intensity 0")
	}
	if err := h.SetIntensity(1.5); err == nil {
		t.Error("expected error for intensity > 1")
	}
}

func TestColorsFromHexPreservesShortFormQuirk(t *testing.T) {
	colors, err := ColorsFromHex([]string{"#abc"})
	if err != nil {
		t.Fatalf("ColorsFromHex: %v", err)
	}
	// "#abc" -> "#abcabc" -> r=ab, g=ca, b=bc
	if colors[0].R != 0xab || colors[0].G != 0xca || colors[0].B != 0xbc {
		t.Errorf("got %+v, want R=ab G=ca B=bc per the documented quirk", colors[0])
	}
}
