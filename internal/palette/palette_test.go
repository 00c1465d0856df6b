package palette

import (
	"image"
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func twoColorImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			if x < w/2 {
				img.Pix[i+0] = 230
			} else {
				img.Pix[i+2] = 230
			}
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestExtractReturnsRequestedCount(t *testing.T) {
	colors, err := Extract(twoColorImage(16, 16), 2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(colors))
	}
	for _, c := range colors {
		if !hexPattern.MatchString(c) {
			t.Errorf("%q is not a hex color", c)
		}
	}
}

func TestExtractSingleColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 200
		img.Pix[i+3] = 255
	}

	colors, err := Extract(img, 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(colors) != 1 {
		t.Fatalf("got %d colors, want 1", len(colors))
	}
	if !hexPattern.MatchString(colors[0]) {
		t.Errorf("%q is not a hex color", colors[0])
	}
}

func TestExtractCountClampedToPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Pix[0], img.Pix[3] = 250, 255
	img.Pix[6], img.Pix[7] = 250, 255

	colors, err := Extract(img, 10)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(colors) > 2 {
		t.Errorf("got %d colors, want at most 2", len(colors))
	}
}

func TestExtractRejectsBadInput(t *testing.T) {
	t.Run("nil image", func(t *testing.T) {
		if _, err := Extract(nil, 3); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("zero count", func(t *testing.T) {
		if _, err := Extract(twoColorImage(4, 4), 0); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("negative count", func(t *testing.T) {
		if _, err := Extract(twoColorImage(4, 4), -2); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestSampleObservationsBounded(t *testing.T) {
	obs := sampleObservations(twoColorImage(128, 128))
	if len(obs) == 0 {
		t.Fatal("no observations sampled")
	}
	if len(obs) > maxSamples {
		t.Errorf("sampled %d observations, cap is %d", len(obs), maxSamples)
	}
}
