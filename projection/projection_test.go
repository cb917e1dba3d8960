package projection

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestMercatorLonRoundTrip(t *testing.T) {
	lons := []float64{-180, -90, -45, 0, 12.34, 90, 179.999}
	for _, lon := range lons {
		got := LonFromMercX(MercXFromLon(lon))
		if math.Abs(got-lon) > 1e-9 {
			t.Errorf("LonFromMercX(MercXFromLon(%v)) = %v, want %v", lon, got, lon)
		}
	}
}

func TestMercatorLatRoundTrip(t *testing.T) {
	lats := []float64{-85.05, -45, -1, 0, 1, 45, 85.05}
	for _, lat := range lats {
		got := LatFromMercY(MercYFromLat(lat))
		if math.Abs(got-lat) > 1e-9 {
			t.Errorf("LatFromMercY(MercYFromLat(%v)) = %v, want %v", lat, got, lat)
		}
	}
}

func TestTileToLatLonKnownValues(t *testing.T) {
	if got := TileToLat(0, 0); math.Abs(got-MaxLat) > 1e-7 {
		t.Errorf("TileToLat(0,0) = %v, want %v", got, MaxLat)
	}
	if got := TileToLon(0, 0); got != -180.0 {
		t.Errorf("TileToLon(0,0) = %v, want -180", got)
	}
}

func TestLatLonToTileKnownValue(t *testing.T) {
	x, y := LatLonToTile(0, 0, 1)
	if x != 1 || y != 1 {
		t.Errorf("LatLonToTile(0,0,1) = (%d,%d), want (1,1)", x, y)
	}
}

func TestTileLatLonRoundTrip(t *testing.T) {
	const z = 8
	for x := int64(0); x < 1<<z; x += 37 {
		for y := int64(0); y < 1<<z; y += 41 {
			lat := TileToLat(y, z)
			lon := TileToLon(x, z)
			// nudge slightly into the tile's interior so we don't land
			// exactly on a shared edge, which can round to the neighbor.
			gx, gy := LatLonToTile(lat-1e-6, lon+1e-6, z)
			if gx != x || gy != y {
				t.Errorf("round-trip tile (%d,%d)@%d -> lat/lon -> tile (%d,%d)", x, y, z, gx, gy)
			}
		}
	}
}

func TestValidateSRID(t *testing.T) {
	if err := ValidateSRID(3857); err != nil {
		t.Errorf("ValidateSRID(3857) = %v, want nil", err)
	}
	if err := ValidateSRID(4326); err != nil {
		t.Errorf("ValidateSRID(4326) = %v, want nil", err)
	}
	if err := ValidateSRID(27700); err == nil {
		t.Errorf("ValidateSRID(27700) = nil, want error")
	}
}

func TestIntersectingTiles(t *testing.T) {
	pt := orb.Point{90, 40}
	tiles := IntersectingTiles(pt, 2)
	if len(tiles) == 0 {
		t.Fatalf("expected at least one intersecting tile")
	}
	x, y := LatLonToTile(40, 90, 2)
	found := false
	for _, tl := range tiles {
		if tl.X == x && tl.Y == y {
			found = true
		}
	}
	if !found {
		t.Errorf("expected tile (%d,%d) among intersecting tiles %v", x, y, tiles)
	}
}

func TestRingIntersectsPolygon(t *testing.T) {
	square := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	poly := orb.Polygon{{{5, 5}, {15, 5}, {15, 15}, {5, 15}, {5, 5}}}
	if !RingIntersects(square, poly) {
		t.Errorf("expected overlapping squares to intersect")
	}

	far := orb.Polygon{{{100, 100}, {110, 100}, {110, 110}, {100, 110}, {100, 100}}}
	if RingIntersects(square, far) {
		t.Errorf("expected disjoint squares to not intersect")
	}
}
