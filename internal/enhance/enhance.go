// Package enhance provides the multiplicative image enhancers behind the
// brightness, contrast and saturation operations. Each enhancer interpolates
// between a degenerate image and the original: a factor of 1.0 returns the
// input unchanged, 0.0 returns the degenerate image, and values outside
// [0, 1] extrapolate. Factors are not range-checked; extreme or negative
// values legitimately produce all-black, all-white or inverted output.
package enhance

import (
	"image"
	"math"

	"github.com/kritik8/pixgonzDIP/internal/colorspace"
)

// Brightness scales every channel sample by factor. The degenerate image is
// solid black.
func Brightness(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1.0 {
		return img
	}
	lut := colorspace.NewLUT(func(i int) int {
		return int(math.Round(float64(i) * factor))
	})
	return colorspace.ApplyRGB(img, lut, lut, lut)
}

// Contrast interpolates between the image and a solid gray of its mean
// luminance.
func Contrast(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1.0 {
		return img
	}

	var total float64
	pixels := 0
	for i := 0; i < len(img.Pix); i += 4 {
		total += luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		pixels++
	}
	if pixels == 0 {
		return img
	}
	mean := total / float64(pixels)

	lut := colorspace.NewLUT(func(i int) int {
		return int(math.Round(mean + (float64(i)-mean)*factor))
	})
	return colorspace.ApplyRGB(img, lut, lut, lut)
}

// Saturation interpolates between the image and its per-pixel grayscale
// rendition, so it cannot be expressed as a single lookup table.
func Saturation(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1.0 {
		return img
	}

	out := image.NewNRGBA(img.Rect)
	for i := 0; i < len(img.Pix); i += 4 {
		gray := luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		out.Pix[i+0] = blend(gray, img.Pix[i+0], factor)
		out.Pix[i+1] = blend(gray, img.Pix[i+1], factor)
		out.Pix[i+2] = blend(gray, img.Pix[i+2], factor)
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

// luminance is the ITU-R 601 weighting used by the grayscale degenerate.
func luminance(r, g, b uint8) float64 {
	return (float64(r)*299 + float64(g)*587 + float64(b)*114) / 1000.0
}

func blend(base float64, sample uint8, factor float64) uint8 {
	v := int(math.Round(base + (float64(sample)-base)*factor))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
