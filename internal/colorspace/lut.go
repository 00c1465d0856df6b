// Package colorspace implements the per-channel lookup-table transforms
// (gamma, color temperature, autocontrast) and the HSV hue rotation used by
// the adjustment and calibration pipelines.
package colorspace

import (
	"image"
	"math"
)

// LUT maps one 8-bit channel sample to another. Read-only after construction;
// one table is built per channel per transform invocation.
type LUT [256]uint8

// NewLUT builds a table from f, clamping every computed value to [0, 255].
func NewLUT(f func(i int) int) LUT {
	var lut LUT
	for i := range lut {
		lut[i] = clampByte(f(i))
	}
	return lut
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ApplyRGB maps the three color channels of img through their tables and
// returns a fresh buffer. Alpha passes through untouched.
func ApplyRGB(img *image.NRGBA, r, g, b LUT) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	for i := 0; i < len(img.Pix); i += 4 {
		out.Pix[i+0] = r[img.Pix[i+0]]
		out.Pix[i+1] = g[img.Pix[i+1]]
		out.Pix[i+2] = b[img.Pix[i+2]]
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

// Gamma applies gamma correction through a lookup table:
// out = 255 * (in/255)^(1/gamma). A gamma of zero or below is a no-op and
// returns the input unchanged rather than an error.
func Gamma(img *image.NRGBA, gamma float64) *image.NRGBA {
	if gamma <= 0 {
		return img
	}
	invGamma := 1.0 / gamma
	lut := NewLUT(func(i int) int {
		return int(math.Pow(float64(i)/255.0, invGamma)*255.0 + 0.5)
	})
	return ApplyRGB(img, lut, lut, lut)
}

// KelvinToRGB converts a color temperature to normalized per-channel
// multipliers in [0, 1] using the Tanner Helland piecewise log/power
// approximation. The formula is simply continued outside its nominal
// [1000K, 40000K] range; no domain validation is performed.
func KelvinToRGB(kelvin float64) (r, g, b float64) {
	temp := kelvin / 100.0

	var red, green, blue float64
	if temp <= 66 {
		red = 255
		green = 99.4708025861*math.Log(temp) - 161.1195681661
		if temp <= 19 {
			blue = 0
		} else {
			blue = 138.5177312231*math.Log(temp-10) - 305.0447927307
		}
	} else {
		red = 329.698727446 * math.Pow(temp-60, -0.1332047592)
		green = 288.1221695283 * math.Pow(temp-60, -0.0755148492)
		blue = 255
	}

	return clampUnit(red), clampUnit(green), clampUnit(blue)
}

func clampUnit(channel float64) float64 {
	if math.IsNaN(channel) {
		return 0
	}
	return float64(clampByte(int(channel))) / 255.0
}

// Temperature scales the channels toward the white point of the given Kelvin
// value, one multiplicative LUT per channel.
func Temperature(img *image.NRGBA, kelvin float64) *image.NRGBA {
	rMult, gMult, bMult := KelvinToRGB(kelvin)

	scaled := func(mult float64) LUT {
		return NewLUT(func(i int) int {
			return int(float64(i)*mult + 0.5)
		})
	}

	return ApplyRGB(img, scaled(rMult), scaled(gMult), scaled(bMult))
}

// Autocontrast stretches each channel's histogram to the full [0, 255] range.
// Channels that are already flat are left alone.
func Autocontrast(img *image.NRGBA) *image.NRGBA {
	var luts [3]LUT
	for ch := 0; ch < 3; ch++ {
		lo, hi := channelRange(img, ch)
		if hi <= lo {
			luts[ch] = NewLUT(func(i int) int { return i })
			continue
		}
		scale := 255.0 / float64(hi-lo)
		offset := lo
		luts[ch] = NewLUT(func(i int) int {
			return int(float64(i-offset)*scale + 0.5)
		})
	}
	return ApplyRGB(img, luts[0], luts[1], luts[2])
}

func channelRange(img *image.NRGBA, ch int) (lo, hi int) {
	lo, hi = 255, 0
	for i := ch; i < len(img.Pix); i += 4 {
		v := int(img.Pix[i])
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
