package projection

import (
	"github.com/paulmach/orb"
)

// RingIntersects reports whether the closed ring (e.g. a tile's rectangle)
// intersects geom. orb's planar package exposes containment and area but no
// general ring/geometry intersection predicate, so this combines a
// bounding-box reject with point-in-ring containment and edge-crossing
// tests — the standard approach for polygon/polygon intersection when
// neither shape is guaranteed convex.
func RingIntersects(ring orb.Ring, geom orb.Geometry) bool {
	gb := geom.Bound()
	rb := ring.Bound()
	if !boundsOverlap(rb, gb) {
		return false
	}

	paths := linearPaths(geom)
	if len(paths) == 0 {
		return false
	}

	for _, p := range paths {
		for _, pt := range p {
			if pointInRing(pt, ring) {
				return true
			}
		}
	}
	for _, pt := range ring {
		for _, p := range paths {
			if len(p) >= 3 && pointInRing(pt, closeRing(p)) {
				return true
			}
		}
	}
	for i := 0; i+1 < len(ring); i++ {
		for _, p := range paths {
			for j := 0; j+1 < len(p); j++ {
				if segmentsIntersect(ring[i], ring[i+1], p[j], p[j+1]) {
					return true
				}
			}
		}
	}
	return false
}

func boundsOverlap(a, b orb.Bound) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1]
}

func closeRing(p orb.Ring) orb.Ring {
	if len(p) == 0 || p[0] == p[len(p)-1] {
		return p
	}
	closed := make(orb.Ring, len(p)+1)
	copy(closed, p)
	closed[len(p)] = p[0]
	return closed
}

// linearPaths flattens any orb.Geometry into a list of point sequences
// (rings for polygonal geometry, open paths for lines, single-point paths
// for points) suitable for containment/edge-crossing tests.
func linearPaths(geom orb.Geometry) []orb.Ring {
	switch g := geom.(type) {
	case orb.Point:
		return []orb.Ring{{g}}
	case orb.MultiPoint:
		var out []orb.Ring
		for _, p := range g {
			out = append(out, orb.Ring{p})
		}
		return out
	case orb.LineString:
		return []orb.Ring{orb.Ring(g)}
	case orb.MultiLineString:
		var out []orb.Ring
		for _, ls := range g {
			out = append(out, orb.Ring(ls))
		}
		return out
	case orb.Ring:
		return []orb.Ring{g}
	case orb.Polygon:
		var out []orb.Ring
		out = append(out, g...)
		return out
	case orb.MultiPolygon:
		var out []orb.Ring
		for _, poly := range g {
			out = append(out, poly...)
		}
		return out
	case orb.Collection:
		var out []orb.Ring
		for _, child := range g {
			out = append(out, linearPaths(child)...)
		}
		return out
	default:
		return nil
	}
}

// pointInRing is a standard even-odd ray-casting point-in-polygon test.
func pointInRing(pt orb.Point, ring orb.Ring) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > pt[1]) != (yj > pt[1]) {
			xIntersect := (xj-xi)*(pt[1]-yi)/(yj-yi) + xi
			if pt[0] < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// segmentsIntersect reports whether segments p1-p2 and p3-p4 cross, using
// the standard orientation-test approach.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return p[0] >= min2(a[0], b[0]) && p[0] <= max2(a[0], b[0]) &&
		p[1] >= min2(a[1], b[1]) && p[1] <= max2(a[1], b[1])
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
