// Package filters wraps the simple one-shot image operations (rotate,
// grayscale, blur, sharpen, masking). These have no algorithmic content of
// their own; they delegate to the imaging library and exist so the endpoint
// layer has one place to call.
package filters

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Rotate rotates img counter-clockwise by angle degrees. With expand the
// canvas grows to fit; otherwise the result is cropped back to the original
// dimensions around the center.
func Rotate(img *image.NRGBA, angle float64, expand bool) *image.NRGBA {
	rotated := imaging.Rotate(img, angle, color.NRGBA{0, 0, 0, 255})
	if expand {
		return rotated
	}
	return imaging.CropCenter(rotated, img.Rect.Dx(), img.Rect.Dy())
}

// Grayscale converts img to grayscale, keeping three channels.
func Grayscale(img *image.NRGBA) *image.NRGBA {
	return imaging.Grayscale(img)
}

// Blur applies a Gaussian blur. Non-positive radii return a plain copy.
func Blur(img *image.NRGBA, radius float64) *image.NRGBA {
	if radius <= 0 {
		return imaging.Clone(img)
	}
	return imaging.Blur(img, radius)
}

// Sharpen applies an unsharp-mask style sharpening pass.
func Sharpen(img *image.NRGBA) *image.NRGBA {
	return imaging.Sharpen(img, 2.0)
}

// ApplyMask composites img over black through mask: white mask areas keep
// the image, black areas drop to black. The mask is converted to grayscale
// and resized to the image dimensions first.
func ApplyMask(img *image.NRGBA, mask image.Image) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()

	scaled := imaging.Grayscale(resize.Resize(uint(w), uint(h), mask, resize.Bilinear))

	alpha := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := 0; i < len(alpha.Pix); i++ {
		alpha.Pix[i] = scaled.Pix[i*4]
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Rect, image.NewUniform(color.NRGBA{0, 0, 0, 255}), image.Point{}, draw.Src)
	draw.DrawMask(out, out.Rect, img, img.Rect.Min, alpha, image.Point{}, draw.Over)
	return out
}
