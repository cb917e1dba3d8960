package heatmap

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

const rampLength = 500

// DefaultRamp returns the default black -> cyan -> green -> yellow -> red
// ramp, 500 entries, with the first segment's alpha ramping from 0 to 255.
func DefaultRamp() []color.NRGBA {
	return buildRamp([]color.NRGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 255, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
	})
}

// buildRamp expands a list of control colors into a rampLength-entry ramp:
// numSteps = len(colors)-1 segments of round(rampLength/numSteps) blended
// entries; the first segment additionally ramps alpha linearly 0 -> 255.
func buildRamp(colors []color.NRGBA) []color.NRGBA {
	if len(colors) == 0 {
		return nil
	}
	if len(colors) == 1 {
		return []color.NRGBA{colors[0]}
	}

	numSteps := len(colors) - 1
	perSeg := int(math.Round(float64(rampLength) / float64(numSteps)))
	if perSeg < 1 {
		perSeg = 1
	}

	ramp := make([]color.NRGBA, 0, perSeg*numSteps)
	for seg := 0; seg < numSteps; seg++ {
		c0, c1 := colors[seg], colors[seg+1]
		for i := 0; i < perSeg; i++ {
			t := 0.0
			if perSeg > 1 {
				t = float64(i) / float64(perSeg-1)
			}
			blended := color.NRGBA{
				R: lerpByte(c0.R, c1.R, t),
				G: lerpByte(c0.G, c1.G, t),
				B: lerpByte(c0.B, c1.B, t),
				A: lerpByte(c0.A, c1.A, t),
			}
			if seg == 0 {
				blended.A = uint8(math.Round(t * 255))
			}
			ramp = append(ramp, blended)
		}
	}
	return ramp
}

func lerpByte(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(math.Round(v))
}

// ColorsFromHex expands hex strings ("#rgb", "#rrggbb", "#rrggbbaa") into
// colors; it does not build a ramp (SetColorsHex does). The 4-char-hex ("#abc") expansion
// intentionally reproduces the observed (non-standard) behavior of
// appending hex[1:] rather than doubling each nibble — see DESIGN.md's
// Open Question note.
func ColorsFromHex(hexes []string) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := parseHexColor(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseHexColor(h string) (color.NRGBA, error) {
	if strings.HasPrefix(h, "#") && len(h) == 4 {
		h = h + h[1:]
	}
	h = strings.TrimPrefix(h, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, strconvErr(h)
	}
	r, err := strconv.ParseUint(h[0:2], 16, 8)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := strconv.ParseUint(h[2:4], 16, 8)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := strconv.ParseUint(h[4:6], 16, 8)
	if err != nil {
		return color.NRGBA{}, err
	}
	a := uint64(255)
	if len(h) == 8 {
		av, err := strconv.ParseUint(h[6:8], 16, 8)
		if err != nil {
			return color.NRGBA{}, err
		}
		a = av
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

func strconvErr(h string) error {
	return &strconv.NumError{Func: "parseHexColor", Num: h, Err: strconv.ErrSyntax}
}

// RampFromRGBA builds a ramp directly from raw packed 0xRRGGBBAA values.
func RampFromRGBA(values []uint32) []color.NRGBA {
	out := make([]color.NRGBA, len(values))
	for i, v := range values {
		out[i] = color.NRGBA{
			R: uint8(v >> 24),
			G: uint8(v >> 16),
			B: uint8(v >> 8),
			A: uint8(v),
		}
	}
	return out
}
