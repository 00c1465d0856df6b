// Package calibrate implements display calibration: a preset saturation
// delta per display technology, followed by gamma correction and a fixed
// white point.
package calibrate

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/kritik8/pixgonzDIP/internal/colorspace"
	"github.com/kritik8/pixgonzDIP/internal/enhance"
)

// ErrUnknownDisplayType is the one validated, user-facing failure in the
// processing core.
var ErrUnknownDisplayType = errors.New("unsupported display type")

const (
	calibrationGamma = 2.2
	whitePointKelvin = 6500.0
)

// saturationDelta maps a canonical display type to its saturation adjustment
// in percent.
var saturationDelta = map[string]float64{
	"lcd":         10.0,
	"led backlit": 15.0,
	"oled":        -7.0,
	"qled":        -3.0,
	"e-paper":     0.0,
}

// displayAliases folds the spellings callers actually send onto the
// canonical names.
var displayAliases = map[string]string{
	"led":         "led backlit",
	"led-backlit": "led backlit",
	"led_backlit": "led backlit",
	"epaper":      "e-paper",
	"e_paper":     "e-paper",
}

// SaturationDelta resolves a display-type label (case-insensitive, alias
// aware) to its preset saturation delta.
func SaturationDelta(displayType string) (float64, error) {
	dt := strings.ToLower(strings.TrimSpace(displayType))
	if canonical, ok := displayAliases[dt]; ok {
		dt = canonical
	}
	delta, ok := saturationDelta[dt]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDisplayType, displayType)
	}
	return delta, nil
}

// Processor implements the "display-calibration" algorithm.
type Processor struct {
	name string
}

func NewProcessor() *Processor {
	return &Processor{name: "display-calibration"}
}

func (p *Processor) GetName() string {
	return p.name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"display_type": "",
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	displayType, _ := params["display_type"].(string)
	_, err := SaturationDelta(displayType)
	return err
}

// Process applies the saturation preset, then gamma 2.2, then the 6500K
// white point. The order matters: gamma correction is defined relative to
// the saturation-adjusted image.
func (p *Processor) Process(input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error) {
	displayType, _ := params["display_type"].(string)
	delta, err := SaturationDelta(displayType)
	if err != nil {
		return nil, err
	}

	out := enhance.Saturation(input, 1.0+delta/100.0)
	out = colorspace.Gamma(out, calibrationGamma)
	out = colorspace.Temperature(out, whitePointKelvin)
	return out, nil
}

// AutoCorrect is the fallback applied when no display type is given:
// per-channel autocontrast plus a slight saturation boost.
func AutoCorrect(img *image.NRGBA) *image.NRGBA {
	return enhance.Saturation(colorspace.Autocontrast(img), 1.1)
}
