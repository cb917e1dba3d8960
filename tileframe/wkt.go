package tileframe

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	orbwkt "github.com/paulmach/orb/encoding/wkt"

	"tilekit/tkerrors"
)

// formatCoord renders a coordinate with up to 8 fractional digits, trimming
// trailing zeros, matching the spec's "#.##########" numeric contract. This
// is hand-rolled rather than delegated to orb's marshaler because the
// precision/trim behavior is a specific wire-format requirement, not generic
// WKT emission.
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-0" {
		s = "0"
	}
	return s
}

// boundsWKT emits a POLYGON ring starting at the north-east corner and
// running counter-clockwise (north-east, north-west, south-west,
// south-east, back to north-east).
func boundsWKT(north, south, east, west float64) string {
	var b strings.Builder
	b.WriteString("POLYGON((")
	coords := [][2]float64{
		{east, north},
		{west, north},
		{west, south},
		{east, south},
		{east, north},
	}
	for i, c := range coords {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(formatCoord(c[0]))
		b.WriteString(" ")
		b.WriteString(formatCoord(c[1]))
	}
	b.WriteString("))")
	return b.String()
}

// ParseWKT parses a WKT geometry string into an orb.Geometry.
func ParseWKT(s string) (orb.Geometry, error) {
	geom, err := orbwkt.UnmarshalString(s)
	if err != nil {
		return nil, tkerrors.New("ParseWKT", tkerrors.KindWKTParse, err)
	}
	return geom, nil
}
