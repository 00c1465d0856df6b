package colorspace

import (
	"fmt"
	"image"
	"math"
)

// hueSpace is the size of the quantized hue plane. Hue shifts wrap modulo
// this value rather than clamping.
const hueSpace = 256

// HueShift quantizes a hue rotation in degrees to hue-plane units.
func HueShift(degrees float64) int {
	return int(math.Round(degrees / 360.0 * 255.0))
}

// HueRotate rotates the hue plane of img by the given number of degrees via
// an HSV round trip. A shift that quantizes to zero short-circuits and
// returns the input unchanged, avoiding the precision loss of a pointless
// conversion round trip. Failures are returned to the caller, which is
// expected to treat the step as a no-op rather than propagate them.
func HueRotate(img *image.NRGBA, degrees float64) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("hue rotation: no image buffer")
	}

	shift := HueShift(degrees) % hueSpace
	if shift < 0 {
		shift += hueSpace
	}
	if shift == 0 {
		return img, nil
	}

	out := image.NewNRGBA(img.Rect)
	for i := 0; i < len(img.Pix); i += 4 {
		h, s, v := rgbToHSV(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		h = uint8((int(h) + shift) % hueSpace)
		r, g, b := hsvToRGB(h, s, v)
		out.Pix[i+0] = r
		out.Pix[i+1] = g
		out.Pix[i+2] = b
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out, nil
}

// rgbToHSV quantizes a pixel to byte-sized hue/saturation/value planes.
func rgbToHSV(r, g, b uint8) (uint8, uint8, uint8) {
	maxc := max(r, g, b)
	minc := min(r, g, b)
	v := maxc
	if maxc == minc {
		return 0, 0, v
	}

	delta := float64(maxc) - float64(minc)
	s := uint8(math.Round(delta / float64(maxc) * 255.0))

	var h float64
	switch maxc {
	case r:
		h = (float64(g) - float64(b)) / delta
	case g:
		h = 2 + (float64(b)-float64(r))/delta
	default:
		h = 4 + (float64(r)-float64(g))/delta
	}
	h /= 6.0
	h -= math.Floor(h)

	return uint8(math.Round(h * 255.0)), s, v
}

func hsvToRGB(h, s, v uint8) (uint8, uint8, uint8) {
	if s == 0 {
		return v, v, v
	}

	hf := float64(h) / 255.0 * 6.0
	sector := int(math.Floor(hf)) % 6
	f := hf - math.Floor(hf)

	vf := float64(v)
	sf := float64(s) / 255.0
	p := uint8(math.Round(vf * (1 - sf)))
	q := uint8(math.Round(vf * (1 - sf*f)))
	t := uint8(math.Round(vf * (1 - sf*(1-f))))

	switch sector {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
