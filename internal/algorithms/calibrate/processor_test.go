package calibrate

import (
	"errors"
	"image"
	"math/rand"
	"strings"
	"testing"

	"github.com/kritik8/pixgonzDIP/internal/colorspace"
	"github.com/kritik8/pixgonzDIP/internal/enhance"
)

func newTestImage(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(23))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(rng.Intn(256))
		img.Pix[i+1] = uint8(rng.Intn(256))
		img.Pix[i+2] = uint8(rng.Intn(256))
		img.Pix[i+3] = 255
	}
	return img
}

func TestSaturationDelta(t *testing.T) {
	cases := []struct {
		label string
		want  float64
	}{
		{"lcd", 10.0},
		{"led backlit", 15.0},
		{"oled", -7.0},
		{"qled", -3.0},
		{"e-paper", 0.0},
		{"led", 15.0},
		{"led-backlit", 15.0},
		{"led_backlit", 15.0},
		{"epaper", 0.0},
		{"e_paper", 0.0},
		{"OLED", -7.0},
		{"  Lcd  ", 10.0},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			got, err := SaturationDelta(tc.label)
			if err != nil {
				t.Fatalf("SaturationDelta(%q): %v", tc.label, err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSaturationDeltaUnknownType(t *testing.T) {
	_, err := SaturationDelta("plasma")
	if !errors.Is(err, ErrUnknownDisplayType) {
		t.Fatalf("got %v, want ErrUnknownDisplayType", err)
	}
	if !strings.Contains(err.Error(), "plasma") {
		t.Errorf("error %q should name the rejected type", err)
	}
}

func TestProcessMatchesManualChain(t *testing.T) {
	img := newTestImage(8, 8)
	p := NewProcessor()

	out, err := p.Process(img, map[string]interface{}{"display_type": "oled"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	delta, err := SaturationDelta("oled")
	if err != nil {
		t.Fatalf("SaturationDelta: %v", err)
	}
	want := colorspace.Temperature(colorspace.Gamma(enhance.Saturation(img, 1.0+delta/100.0), 2.2), 6500.0)
	for i := range want.Pix {
		if out.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel byte %d = %d, want %d", i, out.Pix[i], want.Pix[i])
		}
	}
}

func TestProcessRejectsUnknownType(t *testing.T) {
	p := NewProcessor()
	_, err := p.Process(newTestImage(2, 2), map[string]interface{}{"display_type": "crt"})
	if !errors.Is(err, ErrUnknownDisplayType) {
		t.Fatalf("got %v, want ErrUnknownDisplayType", err)
	}
}

func TestValidateParameters(t *testing.T) {
	p := NewProcessor()
	if err := p.ValidateParameters(map[string]interface{}{"display_type": "qled"}); err != nil {
		t.Errorf("qled should validate: %v", err)
	}
	if err := p.ValidateParameters(map[string]interface{}{"display_type": "crt"}); err == nil {
		t.Error("crt should not validate")
	}
}

func TestAutoCorrectPreservesDimensions(t *testing.T) {
	img := newTestImage(6, 4)
	out := AutoCorrect(img)
	if out.Rect.Dx() != 6 || out.Rect.Dy() != 4 {
		t.Errorf("got %dx%d, want 6x4", out.Rect.Dx(), out.Rect.Dy())
	}
	if out == img {
		t.Error("expected a fresh buffer")
	}
}
