package geotrail

import (
	"strings"
	"testing"

	"tilekit/tileframe"
)

const sampleGPX = `<?xml version="1.0"?>
<gpx version="1.1" creator="test">
  <trk>
    <trkseg>
      <trkpt lat="47.0" lon="8.0"><ele>400</ele></trkpt>
      <trkpt lat="47.001" lon="8.001"><ele>410</ele></trkpt>
      <trkpt lat="47.002" lon="8.002"><ele>405</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParseFlattensPointsAndStats(t *testing.T) {
	trail, err := Parse([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(trail.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(trail.Points))
	}
	if trail.DistanceMeter <= 0 {
		t.Error("expected positive distance")
	}
	if trail.ElevationGain <= 0 {
		t.Error("expected positive elevation gain (400 -> 410)")
	}
	if trail.ElevationLoss <= 0 {
		t.Error("expected positive elevation loss (410 -> 405)")
	}
}

func TestParseRejectsEmptyGPX(t *testing.T) {
	_, err := Parse([]byte(`<?xml version="1.0"?><gpx version="1.1"></gpx>`))
	if err == nil {
		t.Fatal("expected error for GPX with no tracks")
	}
}

func TestToHeatmapPointsProjectsThroughFrame(t *testing.T) {
	trail, err := Parse([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	frame, err := tileframe.New(7.9, 46.9, 8.1, 47.1, 256, 256, 4326)
	if err != nil {
		t.Fatalf("tileframe.New: %v", err)
	}
	pts := ToHeatmapPoints(trail, frame)
	if len(pts) != len(trail.Points) {
		t.Fatalf("expected %d heatmap points, got %d", len(trail.Points), len(pts))
	}
	for _, p := range pts {
		if p.Count != 1 {
			t.Errorf("expected count 1, got %d", p.Count)
		}
	}
}

func TestLineStringWKTFormat(t *testing.T) {
	trail, err := Parse([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wkt := trail.LineStringWKT()
	if !strings.HasPrefix(wkt, "LINESTRING(") || !strings.HasSuffix(wkt, ")") {
		t.Errorf("unexpected WKT format: %q", wkt)
	}
}
