// Package projection implements the pure coordinate-conversion math between
// geographic coordinates (EPSG:4326), Web Mercator meters (EPSG:3857), and
// slippy-map tile indices.
package projection

import (
	"math"

	"github.com/paulmach/orb"

	"tilekit/tkerrors"
)

// OriginShift is half the circumference of the Web Mercator sphere in
// meters: pi * 6378137.
const OriginShift = math.Pi * 6378137

// MaxLat/MinLat bound the latitude range that has a finite Web Mercator Y
// and therefore a valid tile index at any zoom.
const (
	MaxLat = 85.05112878
	MinLat = -85.05112878
	MaxLon = 180.0
	MinLon = -180.0
)

// SRID enumerates the two spatial reference systems this package supports.
type SRID int

const (
	SRID3857 SRID = 3857
	SRID4326 SRID = 4326
)

// ValidateSRID returns a KindUnsupportedProjection error unless srid is
// 3857 or 4326.
func ValidateSRID(srid int) error {
	switch SRID(srid) {
	case SRID3857, SRID4326:
		return nil
	default:
		return tkerrors.New("ValidateSRID", tkerrors.KindUnsupportedProjection, nil)
	}
}

// LatFromMercY converts a Web Mercator Y in meters (the unit MercYFromLat
// returns) back to latitude degrees.
func LatFromMercY(y float64) float64 {
	return (2*math.Atan(math.Exp(y/OriginShift*math.Pi)) - math.Pi/2) * 180 / math.Pi
}

// LonFromMercX converts a Web Mercator X to longitude degrees.
func LonFromMercX(x float64) float64 {
	return x / OriginShift * 180
}

// MercXFromLon converts longitude degrees to Web Mercator X.
func MercXFromLon(lon float64) float64 {
	return lon * OriginShift / 180
}

// MercYFromLat converts latitude degrees to Web Mercator Y.
func MercYFromLat(lat float64) float64 {
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	return y * OriginShift / 180
}

// TileToLon returns the western longitude of tile x at zoom z.
func TileToLon(x int64, z int) float64 {
	n := math.Exp2(float64(z))
	return float64(x)/n*360 - 180
}

// TileToLat returns the northern latitude of tile y at zoom z.
func TileToLat(y int64, z int) float64 {
	n := math.Exp2(float64(z))
	return math.Atan(math.Sinh(math.Pi-2*math.Pi*float64(y)/n)) * 180 / math.Pi
}

func clipLat(lat float64) float64 {
	if lat > MaxLat {
		return MaxLat
	}
	if lat < MinLat {
		return MinLat
	}
	return lat
}

func clipLon(lon float64) float64 {
	if lon > MaxLon {
		return MaxLon
	}
	if lon < MinLon {
		return MinLon
	}
	return lon
}

// LatLonToTile returns the tile index containing (lat, lon) at zoom z.
// Inputs are clipped to the valid lat/lon range before conversion, matching
// the reference formula's assumption that clipped inputs land in the
// interior of the trig identities below.
func LatLonToTile(lat, lon float64, z int) (x, y int64) {
	lat = clipLat(lat)
	lon = clipLon(lon)
	n := math.Exp2(float64(z))

	tx := (lon + 180) / 360 * n
	latRad := lat * math.Pi / 180
	ty := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n

	return int64(math.Trunc(tx)), int64(math.Trunc(ty))
}

// Envelope is an axis-aligned lat/lon bounding box.
type Envelope struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// EnvelopeOf returns the bounding box of an orb geometry in lon/lat degrees.
func EnvelopeOf(geom orb.Geometry) Envelope {
	b := geom.Bound()
	return Envelope{
		MinLon: b.Min[0], MinLat: b.Min[1],
		MaxLon: b.Max[0], MaxLat: b.Max[1],
	}
}

// TileXY is a tile index at a fixed zoom.
type TileXY struct{ X, Y int64 }

// Bound returns the lat/lon envelope covered by tile t at zoom z.
func (t TileXY) Bound(z int) Envelope {
	return Envelope{
		MinLon: TileToLon(t.X, z),
		MaxLon: TileToLon(t.X+1, z),
		MinLat: TileToLat(t.Y+1, z),
		MaxLat: TileToLat(t.Y, z),
	}
}

// Polygon returns the tile's boundary as a closed orb.Ring in lon/lat order.
func (t TileXY) Polygon(z int) orb.Ring {
	b := t.Bound(z)
	return orb.Ring{
		{b.MinLon, b.MinLat},
		{b.MaxLon, b.MinLat},
		{b.MaxLon, b.MaxLat},
		{b.MinLon, b.MaxLat},
		{b.MinLon, b.MinLat},
	}
}

// IntersectingTiles enumerates the tiles at zoom z whose rectangle actually
// intersects geom, by first bounding the UL/LR tile indices from geom's
// envelope and then filtering the candidate rectangle against geom.
func IntersectingTiles(geom orb.Geometry, z int) []TileXY {
	env := EnvelopeOf(geom)

	ulx, uly := LatLonToTile(env.MaxLat, env.MinLon, z)
	lrx, lry := LatLonToTile(env.MinLat, env.MaxLon, z)

	if ulx > lrx {
		ulx, lrx = lrx, ulx
	}
	if uly > lry {
		uly, lry = lry, uly
	}

	var out []TileXY
	for y := uly; y <= lry; y++ {
		for x := ulx; x <= lrx; x++ {
			t := TileXY{X: x, Y: y}
			if RingIntersects(t.Polygon(z), geom) {
				out = append(out, t)
			}
		}
	}
	return out
}
