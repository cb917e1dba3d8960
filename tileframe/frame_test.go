package tileframe

import (
	"math"
	"strings"
	"testing"
)

func TestNewRejectsInvertedBounds(t *testing.T) {
	if _, err := New(10, 0, -10, 10, 256, 256, 4326); err == nil {
		t.Error("expected error for minX > maxX")
	}
}

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := New(-10, -10, 10, 10, 0, 256, 4326); err == nil {
		t.Error("expected error for width 0")
	}
}

func TestNewRejectsUnsupportedSRID(t *testing.T) {
	if _, err := New(-10, -10, 10, 10, 256, 256, 27700); err == nil {
		t.Error("expected error for unsupported SRID")
	}
}

func TestProjectPixelCorners(t *testing.T) {
	f, err := New(-10, -10, 10, 10, 200, 200, 4326)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x, y := f.ProjectPixel(10, -10)
	if x != 0 || y != 0 {
		t.Errorf("top-left corner projected to (%d,%d), want (0,0)", x, y)
	}
	x, y = f.ProjectPixel(-10, 10)
	if x != f.Width() || y != f.Height() {
		t.Errorf("bottom-right corner projected to (%d,%d), want (%d,%d)", x, y, f.Width(), f.Height())
	}
}

func TestProjectPixelCenter(t *testing.T) {
	f, err := New(-10, -10, 10, 10, 200, 200, 4326)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x, y := f.ProjectPixel(0, 0)
	if x != 100 || y != 100 {
		t.Errorf("center projected to (%d,%d), want (100,100)", x, y)
	}
}

func TestBoundsWKTFormat(t *testing.T) {
	f, err := New(-10, -5, 10, 5, 100, 100, 4326)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	wkt := f.BoundsWKT()
	if !strings.HasPrefix(wkt, "POLYGON((") || !strings.HasSuffix(wkt, "))") {
		t.Errorf("unexpected WKT shape: %q", wkt)
	}
	if strings.Contains(wkt, ".000000") {
		t.Errorf("expected trailing zeros trimmed, got %q", wkt)
	}
}

func TestIntersectsOverlappingRing(t *testing.T) {
	f, err := New(0, 0, 10, 10, 100, 100, 4326)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := f.Intersects("POLYGON((5 5,15 5,15 15,5 15,5 5))")
	if err != nil {
		t.Fatalf("Intersects: %v", err)
	}
	if !ok {
		t.Error("expected overlapping polygon to intersect")
	}
}

func TestIntersectsDisjointRing(t *testing.T) {
	f, err := New(0, 0, 10, 10, 100, 100, 4326)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := f.Intersects("POLYGON((100 100,110 100,110 110,100 110,100 100))")
	if err != nil {
		t.Fatalf("Intersects: %v", err)
	}
	if ok {
		t.Error("expected disjoint polygon to not intersect")
	}
}

func TestAddPixelWritesSurface(t *testing.T) {
	f, err := New(-10, -10, 10, 10, 200, 200, 4326)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.SetBackground(255, 255, 255)
	f.AddPixel(0, 0, [4]uint8{255, 0, 0, 255})

	x, y := f.ProjectPixel(0, 0)
	r, g, b, a := f.Image().Image().At(x, y).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 || uint8(a>>8) != 255 {
		t.Errorf("pixel at (%d,%d) = (%d,%d,%d,%d), want (255,0,0,255)", x, y, r>>8, g>>8, b>>8, a>>8)
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0.5, 1}, {-0.5, -1}, {1.4, 1}, {-1.4, -1}, {2.5, 3},
	}
	for _, c := range cases {
		if got := roundHalfAwayFromZero(c.in); got != c.want {
			t.Errorf("roundHalfAwayFromZero(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestGeometryIsClosedRing(t *testing.T) {
	f, err := New(-10, -10, 10, 10, 100, 100, 4326)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ring := f.Geometry()[0]
	first, last := ring[0], ring[len(ring)-1]
	if math.Abs(first[0]-last[0]) > 1e-9 || math.Abs(first[1]-last[1]) > 1e-9 {
		t.Errorf("expected closed ring, first=%v last=%v", first, last)
	}
}
