package coloradjust

import (
	"image"
	"math/rand"
	"testing"

	"github.com/kritik8/pixgonzDIP/internal/enhance"
	"github.com/kritik8/pixgonzDIP/internal/logger"
)

func newTestImage(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(11))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(rng.Intn(256))
		img.Pix[i+1] = uint8(rng.Intn(256))
		img.Pix[i+2] = uint8(rng.Intn(256))
		img.Pix[i+3] = 255
	}
	return img
}

func TestProcessIdentityReturnsInput(t *testing.T) {
	p := NewProcessor(logger.Nop{})
	img := newTestImage(8, 8)

	out, err := p.Process(img, p.GetDefaultParameters())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != img {
		t.Error("identity parameters should return the input buffer")
	}
}

func TestProcessIntensityScalesBrightness(t *testing.T) {
	p := NewProcessor(logger.Nop{})
	img := newTestImage(8, 8)

	// brightness 1.0 with intensity 100 folds into an effective factor of 2.
	out, err := p.Process(img, map[string]interface{}{
		"brightness": 1.0,
		"contrast":   1.0,
		"saturation": 1.0,
		"hue":        0.0,
		"intensity":  100.0,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := enhance.Brightness(img, 2.0)
	for i := range want.Pix {
		if out.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel byte %d = %d, want %d", i, out.Pix[i], want.Pix[i])
		}
	}
}

func TestProcessAppliesAdjustmentsInOrder(t *testing.T) {
	p := NewProcessor(logger.Nop{})
	img := newTestImage(8, 8)

	out, err := p.Process(img, map[string]interface{}{
		"brightness": 1.2,
		"contrast":   0.8,
		"saturation": 1.4,
		"hue":        0.0,
		"intensity":  0.0,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := enhance.Saturation(enhance.Contrast(enhance.Brightness(img, 1.2), 0.8), 1.4)
	for i := range want.Pix {
		if out.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel byte %d = %d, want %d", i, out.Pix[i], want.Pix[i])
		}
	}
}

func TestProcessHueChangesPixels(t *testing.T) {
	p := NewProcessor(logger.Nop{})
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 255
		img.Pix[i+3] = 255
	}

	out, err := p.Process(img, map[string]interface{}{"hue": 180.0})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out == img {
		t.Fatal("hue rotation should produce a new buffer")
	}
	if out.Pix[0] == 255 && out.Pix[1] == 0 && out.Pix[2] == 0 {
		t.Error("pure red should not survive a 180 degree hue rotation")
	}
}

func TestProcessIgnoresMissingParameters(t *testing.T) {
	p := NewProcessor(logger.Nop{})
	img := newTestImage(4, 4)

	out, err := p.Process(img, map[string]interface{}{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != img {
		t.Error("missing parameters should fall back to identity")
	}
}
