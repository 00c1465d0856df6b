package segment

import "image"

// Threshold binarizes img against a global luminance threshold: samples
// above it become white, the rest black.
func Threshold(img *image.NRGBA, threshold int) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	for i := 0; i < len(img.Pix); i += 4 {
		gray := (int(img.Pix[i])*299 + int(img.Pix[i+1])*587 + int(img.Pix[i+2])*114) / 1000
		var v uint8
		if gray > threshold {
			v = 255
		}
		out.Pix[i+0] = v
		out.Pix[i+1] = v
		out.Pix[i+2] = v
		out.Pix[i+3] = 255
	}
	return out
}
