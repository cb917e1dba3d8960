// Package geotrail ingests GPX tracks into the heatmap/tileframe pipeline:
// it is the supplemental, domain-specific feature adapted from the
// teacher's own GPX-handling code, which previously fed a PostGIS track
// table instead of a heatmap.
package geotrail

import (
	"fmt"
	"math"

	"github.com/tkrajina/gpxgo/gpx"

	"tilekit/heatmap"
	"tilekit/tileframe"
	"tilekit/tkerrors"
)

// TrackPoint is a single GPX trackpoint reduced to what the rendering
// pipeline needs.
type TrackPoint struct {
	Lat, Lon  float64
	Elevation float64
	HasElev   bool
}

// Trail is a parsed GPX track: a flattened point sequence plus derived
// elevation statistics, mirroring the fields the original PostGIS importer
// computed for storage.
type Trail struct {
	Points        []TrackPoint
	DistanceMeter float64
	ElevationGain float64
	ElevationLoss float64
}

// Parse reads GPX XML data and flattens every segment of every track into
// a single point sequence.
func Parse(data []byte) (*Trail, error) {
	g, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, tkerrors.New("geotrail.Parse", tkerrors.KindOther, err)
	}
	if len(g.Tracks) == 0 {
		return nil, tkerrors.New("geotrail.Parse", tkerrors.KindOther, fmt.Errorf("no tracks in GPX"))
	}

	var points []TrackPoint
	for _, track := range g.Tracks {
		for _, seg := range track.Segments {
			for _, p := range seg.Points {
				tp := TrackPoint{Lat: p.Latitude, Lon: p.Longitude}
				if p.Elevation.NotNull() {
					tp.Elevation = p.Elevation.Value()
					tp.HasElev = true
				}
				points = append(points, tp)
			}
		}
	}
	if len(points) == 0 {
		return nil, tkerrors.New("geotrail.Parse", tkerrors.KindOther, fmt.Errorf("no track points found"))
	}

	trail := &Trail{Points: points}
	trail.computeStats()
	return trail, nil
}

func (t *Trail) computeStats() {
	for i := 1; i < len(t.Points); i++ {
		prev, cur := t.Points[i-1], t.Points[i]
		t.DistanceMeter += haversineMeters(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		if prev.HasElev && cur.HasElev {
			delta := cur.Elevation - prev.Elevation
			if delta > 0 {
				t.ElevationGain += delta
			} else {
				t.ElevationLoss += -delta
			}
		}
	}
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

// ToHeatmapPoints projects every trail point into frame's pixel space,
// producing the input heatmap.AddPoints expects, one point with count 1 per
// track point. Points that project outside the frame are kept; the renderer
// paints their stamps only where they reach within the stamp radius of the
// frame.
func ToHeatmapPoints(t *Trail, frame *tileframe.TileFrame) []heatmap.Point {
	out := make([]heatmap.Point, len(t.Points))
	for i, p := range t.Points {
		x, y := frame.ProjectPixel(p.Lat, p.Lon)
		out[i] = heatmap.Point{X: x, Y: y, Count: 1}
	}
	return out
}

// LineStringWKT renders the trail as a WKT LINESTRING, matching the
// original importer's PostGIS insertion format (6 fractional digits).
func (t *Trail) LineStringWKT() string {
	s := "LINESTRING("
	for i, p := range t.Points {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%f %f", p.Lon, p.Lat)
	}
	s += ")"
	return s
}
