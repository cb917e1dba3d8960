// Package tileframe implements TileFrame: an immutable per-tile affine
// mapping between geographic coordinates and pixel space, plus the raster
// primitives used to paint onto it.
package tileframe

import (
	"math"

	"github.com/paulmach/orb"

	"tilekit/projection"
	"tilekit/surface"
	"tilekit/tkerrors"
)

// TileFrame is an immutable world-to-pixel mapping for a single tile
// request, plus the raster surface callers draw into.
type TileFrame struct {
	srid          projection.SRID
	width, height int

	north, south, east, west float64

	ulX, ulY     float64
	resX, resY   float64

	wkt  string
	geom orb.Polygon // lazily realized on first call to Geometry()

	surf *surface.Surface
}

// New constructs a TileFrame for the geographic or native-SRID rectangle
// (minX, minY, maxX, maxY) rendered into a width x height pixel canvas.
func New(minX, minY, maxX, maxY float64, width, height int, srid int) (*TileFrame, error) {
	if err := projection.ValidateSRID(srid); err != nil {
		return nil, err
	}
	if minX > maxX || minY > maxY {
		return nil, tkerrors.New("tileframe.New", tkerrors.KindInvalidCoordinates, nil)
	}
	if width <= 0 || height <= 0 {
		return nil, tkerrors.New("tileframe.New", tkerrors.KindInvalidCoordinates, nil)
	}

	f := &TileFrame{
		srid:   projection.SRID(srid),
		width:  width,
		height: height,
	}

	switch f.srid {
	case projection.SRID3857:
		if err := f.initFromMercator(minX, minY, maxX, maxY); err != nil {
			return nil, err
		}
	case projection.SRID4326:
		if err := f.initFromGeographic(minX, minY, maxX, maxY); err != nil {
			return nil, err
		}
	}

	f.wkt = boundsWKT(f.north, f.south, f.east, f.west)
	f.surf = surface.New(width, height)
	return f, nil
}

func (f *TileFrame) initFromMercator(minX, minY, maxX, maxY float64) error {
	f.north = projection.LatFromMercY(maxY)
	f.south = projection.LatFromMercY(minY)
	f.east = projection.LonFromMercX(maxX)
	f.west = projection.LonFromMercX(minX)
	if err := validateBounds(f.north, f.south, f.east, f.west); err != nil {
		return err
	}

	f.ulX, f.ulY = minX, maxY
	f.resX = float64(f.width) / math.Abs(maxX-minX)
	f.resY = float64(f.height) / math.Abs(maxY-minY)
	return nil
}

func (f *TileFrame) initFromGeographic(minX, minY, maxX, maxY float64) error {
	f.west, f.east = minX, maxX
	f.south, f.north = minY, maxY
	if err := validateBounds(f.north, f.south, f.east, f.west); err != nil {
		return err
	}

	minXt := geoX(minX)
	maxXt := geoX(maxX)
	minYt := geoY(minY)
	maxYt := geoY(maxY)

	f.ulX, f.ulY = minXt, maxYt
	f.resX = float64(f.width) / (maxXt - minXt)
	f.resY = float64(f.height) / (minYt - maxYt)
	return nil
}

func validateBounds(north, south, east, west float64) error {
	north = clamp(north, -90, 90)
	south = clamp(south, -90, 90)
	east = clamp(east, -180, 180)
	west = clamp(west, -180, 180)
	if north < south || east < west {
		return tkerrors.New("tileframe.validateBounds", tkerrors.KindInvalidCoordinates, nil)
	}
	return nil
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

// geoX/geoY are the internal 4326 "transform" helpers referenced by the
// pixel-mapping rules: they fold longitude/latitude into a monotonic scalar
// ahead of the linear resX/resY scaling, the same way the original
// implementation's opaque x()/y() helpers do. Preserved verbatim (including
// the near-zero snap) to keep tile boundaries bit-compatible.
func geoX(lon float64) float64 {
	return lon + 180
}

func geoY(lat float64) float64 {
	return 90 + lat
}

func snapZero(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}

// xPixel projects a longitude (4326) or a native-SRID X (3857) to a pixel X.
func (f *TileFrame) xPixel(lonOrX float64) float64 {
	if f.srid == projection.SRID4326 {
		return snapZero((geoX(lonOrX) - f.ulX) * f.resX)
	}
	d := lonOrX - f.ulX
	return snapZero(sign(d) * math.Abs(d) * f.resX)
}

// yPixel projects a latitude (4326) or a native-SRID Y (3857) to a pixel Y.
func (f *TileFrame) yPixel(latOrY float64) float64 {
	if f.srid == projection.SRID4326 {
		return snapZero((geoY(latOrY) - f.ulY) * f.resY)
	}
	d := f.ulY - latOrY
	return snapZero(sign(d) * math.Abs(d) * f.resY)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// roundHalfAwayFromZero implements the rounding rule the pixel mappings use.
func roundHalfAwayFromZero(v float64) int {
	if v >= 0 {
		return int(math.Floor(v + 0.5))
	}
	return int(math.Ceil(v - 0.5))
}

func (f *TileFrame) projectPixel(lat, lon float64) (x, y int) {
	if f.srid == projection.SRID4326 {
		return roundHalfAwayFromZero(f.xPixel(lon)), roundHalfAwayFromZero(f.yPixel(lat))
	}
	mx := projection.MercXFromLon(lon)
	my := projection.MercYFromLat(lat)
	return roundHalfAwayFromZero(f.xPixel(mx)), roundHalfAwayFromZero(f.yPixel(my))
}

// ProjectPixel converts a (lat, lon) pair into the frame's pixel space,
// using the same rounding rule as the drawing primitives.
func (f *TileFrame) ProjectPixel(lat, lon float64) (x, y int) {
	return f.projectPixel(lat, lon)
}

// Width returns the pixel width of the frame.
func (f *TileFrame) Width() int { return f.width }

// Height returns the pixel height of the frame.
func (f *TileFrame) Height() int { return f.height }

// SRID returns the frame's spatial reference system.
func (f *TileFrame) SRID() int { return int(f.srid) }

// North/South/East/West return the frame's geographic bounds in degrees.
func (f *TileFrame) North() float64 { return f.north }
func (f *TileFrame) South() float64 { return f.south }
func (f *TileFrame) East() float64  { return f.east }
func (f *TileFrame) West() float64  { return f.west }

// BoundsWKT returns the frame's boundary polygon as WKT, formatted with up
// to 8 fractional digits.
func (f *TileFrame) BoundsWKT() string { return f.wkt }

// Geometry lazily realizes the frame's boundary polygon as an orb.Polygon.
func (f *TileFrame) Geometry() orb.Polygon {
	if f.geom == nil {
		f.geom = orb.Polygon{orb.Ring{
			{f.west, f.north},
			{f.east, f.north},
			{f.east, f.south},
			{f.west, f.south},
			{f.west, f.north},
		}}
	}
	return f.geom
}

// Intersects reports whether the frame's boundary intersects the geometry
// described by wkt.
func (f *TileFrame) Intersects(wkt string) (bool, error) {
	geom, err := ParseWKT(wkt)
	if err != nil {
		return false, err
	}
	ring := f.Geometry()[0]
	return projection.RingIntersects(ring, geom), nil
}

// SetBackground fills the entire surface with a solid color.
func (f *TileFrame) SetBackground(r, g, b uint8) {
	f.surf.Fill(r, g, b, 255)
}

// AddPixel sets a single pixel at the projected (lat, lon) to color.
func (f *TileFrame) AddPixel(lat, lon float64, color [4]uint8) {
	x, y := f.projectPixel(lat, lon)
	f.surf.SetPixel(x, y, color)
}

// AddPoint draws an antialiased filled circle of the given diameter centered
// at the projected (lat, lon).
func (f *TileFrame) AddPoint(lat, lon float64, color [4]uint8, size float64) {
	x, y := f.projectPixel(lat, lon)
	f.surf.FillOval(float64(x), float64(y), size/2, color)
}

// LatLon is a single ring vertex in (lat, lon) degrees.
type LatLon struct{ Lat, Lon float64 }

// AddPolygon fills the ring (if fillColor is non-nil) and then strokes its
// outline (if lineColor is non-nil).
func (f *TileFrame) AddPolygon(ring []LatLon, lineColor, fillColor *[4]uint8) {
	pts := make([]surface.Point, len(ring))
	for i, v := range ring {
		x, y := f.projectPixel(v.Lat, v.Lon)
		pts[i] = surface.Point{X: float64(x), Y: float64(y)}
	}
	if fillColor != nil {
		f.surf.FillPolygon(pts, *fillColor)
	}
	if lineColor != nil {
		f.surf.StrokePolyline(pts, *lineColor, 1)
	}
}

// Image returns the frame's rendered pixels.
func (f *TileFrame) Image() *surface.Surface { return f.surf }
