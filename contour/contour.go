// Package contour extracts iso-alpha level-set polygons from a rendered
// heatmap: render at an expanded size, Gaussian-blur, binarize at one or
// more sampled thresholds, and vectorize each binary mask into closed
// polygon outlines.
package contour

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"tilekit/heatmap"
)

// Point is a contour vertex in the original (pre-expansion) pixel space.
type Point struct{ X, Y float64 }

// Breakpoint selects one threshold, either a direct percentile of the
// sampled alpha distribution, or one of the two named breakpoints the
// pipeline's default set uses.
type Breakpoint struct {
	Percentile  float64
	HalfBetween bool
	Min         bool
}

// DefaultBreakpoints is the pipeline's default set: the 80th percentile,
// the point halfway between the minimum observed alpha and the 80th
// percentile, and the minimum observed alpha itself.
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{Percentile: 80},
		{HalfBetween: true},
		{Min: true},
	}
}

// Contour is the set of polygons produced at one threshold.
type Contour struct {
	Breakpoint Breakpoint
	Threshold  uint8
	Polygons   [][]Point
}

const (
	ltres   = 2
	qtres   = 2
	pathomit = 8
)

// Extract renders h into a canvas padded by 2*radius on every side (so the
// blur doesn't clip density mass at the edges), blurs it, samples alpha at
// every contributing point to derive thresholds, and vectorizes the binary
// mask at each breakpoint into closed polygons in the original pixel space.
func Extract(h *heatmap.HeatmapRenderer, breakpoints ...Breakpoint) ([]Contour, error) {
	if len(breakpoints) == 0 {
		breakpoints = DefaultBreakpoints()
	}

	radius := h.Radius()
	offset := 2 * radius

	points := h.Points()
	if len(points) == 0 {
		return nil, nil
	}
	shifted := make([]heatmap.Point, len(points))
	for i, p := range points {
		shifted[i] = heatmap.Point{X: p.X + offset, Y: p.Y + offset, Count: p.Count}
	}

	expanded := heatmap.New(h.Width()+2*offset, h.Height()+2*offset)
	expanded.SetRadius(radius)
	expanded.SetIntensity(h.Intensity())
	expanded.SetBlur(h.Blur())
	expanded.SetColors([]color.NRGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
	})
	expanded.AddPoints(shifted)

	rendered := expanded.Render()
	sigma := float64(radius) / 2
	blurred := imaging.Blur(rendered, sigma)

	sampled := make([]uint8, len(shifted))
	for i, p := range shifted {
		_, _, _, a := blurred.At(p.X, p.Y).RGBA()
		sampled[i] = uint8(a >> 8)
	}
	sort.Slice(sampled, func(i, j int) bool { return sampled[i] < sampled[j] })

	p80 := percentileValue(sampled, 80)

	out := make([]Contour, 0, len(breakpoints))
	for _, bp := range breakpoints {
		threshold := thresholdFor(sampled, bp, p80)
		bin := binarize(blurred, threshold)
		polys := vectorize(bin, blurred.Bounds().Dx(), blurred.Bounds().Dy())
		for i := range polys {
			for j := range polys[i] {
				polys[i][j].X -= float64(offset)
				polys[i][j].Y -= float64(offset)
			}
		}
		out = append(out, Contour{Breakpoint: bp, Threshold: threshold, Polygons: polys})
	}
	return out, nil
}

func percentileValue(sorted []uint8, percentile float64) uint8 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(percentile/100*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

func thresholdFor(sorted []uint8, bp Breakpoint, p80 uint8) uint8 {
	switch {
	case bp.Min:
		if len(sorted) == 0 {
			return 0
		}
		return sorted[0]
	case bp.HalfBetween:
		min := uint8(0)
		if len(sorted) > 0 {
			min = sorted[0]
		}
		return uint8((int(min) + int(p80)) / 2)
	default:
		return percentileValue(sorted, bp.Percentile)
	}
}

func binarize(img *image.NRGBA, threshold uint8) [][]uint8 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([][]uint8, h)
	for y := 0; y < h; y++ {
		out[y] = make([]uint8, w)
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if uint8(a>>8) >= threshold {
				out[y][x] = 1
			}
		}
	}
	return out
}
