package surface

import "testing"

func TestFillSetsEveryPixel(t *testing.T) {
	s := New(4, 4)
	s.Fill(10, 20, 30, 255)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, a := s.Image().At(x, y).RGBA()
			if uint8(r>>8) != 10 || uint8(g>>8) != 20 || uint8(b>>8) != 30 || uint8(a>>8) != 255 {
				t.Fatalf("pixel (%d,%d) not filled correctly", x, y)
			}
		}
	}
}

func TestSetPixelOutOfBoundsIsNoop(t *testing.T) {
	s := New(2, 2)
	s.SetPixel(-1, -1, [4]uint8{1, 2, 3, 4})
	s.SetPixel(100, 100, [4]uint8{1, 2, 3, 4})
}

func TestFillOvalCenterOpaque(t *testing.T) {
	s := New(20, 20)
	s.FillOval(10, 10, 8, [4]uint8{255, 0, 0, 255})
	if a := s.AlphaAt(10, 10); a == 0 {
		t.Errorf("expected center of oval to be opaque, got alpha=%d", a)
	}
	if a := s.AlphaAt(0, 0); a != 0 {
		t.Errorf("expected corner to remain transparent, got alpha=%d", a)
	}
}

func TestFillPolygonRequiresThreePoints(t *testing.T) {
	s := New(10, 10)
	s.FillPolygon([]Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, [4]uint8{1, 1, 1, 255})
	if a := s.AlphaAt(2, 2); a != 0 {
		t.Errorf("expected no fill with <3 points, got alpha=%d", a)
	}
}
