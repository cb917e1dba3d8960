package contour

import "math"

type segKind int

const (
	segLinear segKind = iota
	segQuadratic
)

type fitSegment struct {
	Kind       segKind
	Start, End Point
	Control    Point // only meaningful when Kind == segQuadratic
}

// fitAll splits nodes into maximal runs of at most two distinct direction
// tags, then fits each run independently via fitRange.
func fitAll(nodes []inode, ltres, qtres float64) []fitSegment {
	n := len(nodes)
	var out []fitSegment
	start := 0
	for start < n {
		end := longestTwoDirRun(nodes, start)
		out = append(out, fitRange(nodes, start, end, ltres, qtres)...)
		start = end
	}
	return out
}

// longestTwoDirRun returns the exclusive end of the longest run beginning
// at start whose internodes carry at most two distinct direction tags.
func longestTwoDirRun(nodes []inode, start int) int {
	n := len(nodes)
	if start >= n {
		return n
	}
	tags := map[direction]bool{nodes[start].Dir: true}
	end := start + 1
	for end < n {
		d := nodes[end].Dir
		if !tags[d] {
			if len(tags) >= 2 {
				break
			}
			tags[d] = true
		}
		end++
	}
	return end
}

// fitRange recursively fits nodes[start:end] (end exclusive) as a straight
// line, a quadratic Bezier, or (if neither stays within its threshold) two
// shorter fits split around the worst-fitting point.
func fitRange(nodes []inode, start, end int, ltres, qtres float64) []fitSegment {
	if end-start < 2 {
		return nil
	}
	p0 := nodes[start].P
	p1 := nodes[end-1].P
	L := float64(end - 1 - start)
	if L <= 0 {
		return []fitSegment{{Kind: segLinear, Start: p0, End: p1}}
	}

	maxLErr := -1.0
	fitpoint := start
	for i := start + 1; i < end-1; i++ {
		t := float64(i-start) / L
		lerp := Point{p0.X + (p1.X-p0.X)*t, p0.Y + (p1.Y-p0.Y)*t}
		if d := sqDist(nodes[i].P, lerp); d > maxLErr {
			maxLErr = d
			fitpoint = i
		}
	}
	if maxLErr <= ltres {
		return []fitSegment{{Kind: segLinear, Start: p0, End: p1}}
	}

	t := float64(fitpoint-start) / L
	control := controlPoint(nodes[fitpoint].P, p0, p1, t)

	maxQErr := -1.0
	errpoint := start
	for i := start + 1; i < end-1; i++ {
		ti := float64(i-start) / L
		bez := quadAt(p0, control, p1, ti)
		if d := sqDist(nodes[i].P, bez); d > maxQErr {
			maxQErr = d
			errpoint = i
		}
	}
	if maxQErr <= qtres {
		return []fitSegment{{Kind: segQuadratic, Start: p0, Control: control, End: p1}}
	}

	splitAt := (fitpoint + errpoint) / 2
	if splitAt <= start {
		splitAt = start + 1
	}
	if splitAt >= end-1 {
		splitAt = end - 2
	}
	left := fitRange(nodes, start, splitAt+1, ltres, qtres)
	right := fitRange(nodes, splitAt, end, ltres, qtres)
	return append(left, right...)
}

// controlPoint solves for the quadratic Bezier control point that passes
// through target at parameter t, given fixed endpoints p0, p1.
func controlPoint(target, p0, p1 Point, t float64) Point {
	denom := 2 * t * (1 - t)
	if denom == 0 {
		return p0
	}
	omt2 := (1 - t) * (1 - t)
	t2 := t * t
	return Point{
		X: (target.X - omt2*p0.X - t2*p1.X) / denom,
		Y: (target.Y - omt2*p0.Y - t2*p1.Y) / denom,
	}
}

func quadAt(p0, c, p1 Point, t float64) Point {
	omt := 1 - t
	return Point{
		X: omt*omt*p0.X + 2*omt*t*c.X + t*t*p1.X,
		Y: omt*omt*p0.Y + 2*omt*t*c.Y + t*t*p1.Y,
	}
}

func sqDist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// assemblePolygon converts a fitted segment sequence into a point list:
// straight segments contribute their endpoint, quadratic segments are
// flattened to 0.5px chordal tolerance.
func assemblePolygon(segs []fitSegment) []Point {
	if len(segs) == 0 {
		return nil
	}
	pts := []Point{segs[0].Start}
	for _, s := range segs {
		switch s.Kind {
		case segLinear:
			pts = append(pts, s.End)
		case segQuadratic:
			flat := flattenQuad(s.Start, s.Control, s.End, 0.5)
			pts = append(pts, flat[1:]...)
		}
	}
	return pts
}

func flattenQuad(p0, c, p1 Point, tol float64) []Point {
	mid := quadAt(p0, c, p1, 0.5)
	chordMid := Point{(p0.X + p1.X) / 2, (p0.Y + p1.Y) / 2}
	if math.Hypot(mid.X-chordMid.X, mid.Y-chordMid.Y) <= tol {
		return []Point{p0, p1}
	}
	c0 := Point{(p0.X + c.X) / 2, (p0.Y + c.Y) / 2}
	c1 := Point{(c.X + p1.X) / 2, (c.Y + p1.Y) / 2}
	cm := Point{(c0.X + c1.X) / 2, (c0.Y + c1.Y) / 2}
	left := flattenQuad(p0, c0, cm, tol)
	right := flattenQuad(cm, c1, p1, tol)
	return append(left, right[1:]...)
}
