// Package coloradjust composes the brightness, contrast, saturation and hue
// adjustments into one ordered pipeline.
package coloradjust

import (
	"image"

	"github.com/kritik8/pixgonzDIP/internal/colorspace"
	"github.com/kritik8/pixgonzDIP/internal/enhance"
	"github.com/kritik8/pixgonzDIP/internal/logger"
)

// Processor applies, in this fixed order: brightness scaled by the intensity
// multiplier, contrast, saturation, then hue rotation. Identity factors are
// skipped entirely so a no-op request returns the input pixel for pixel.
type Processor struct {
	name   string
	logger logger.Logger
}

func NewProcessor(log logger.Logger) *Processor {
	return &Processor{name: "color-adjust", logger: log}
}

func (p *Processor) GetName() string {
	return p.name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"brightness": 1.0,
		"contrast":   1.0,
		"saturation": 1.0,
		"hue":        0.0,
		"intensity":  0.0,
	}
}

// ValidateParameters accepts everything: the factors are unconstrained by
// contract, and degenerate output from extreme values is expected behavior.
func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	return nil
}

func (p *Processor) Process(input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error) {
	brightness := floatParam(params, "brightness", 1.0)
	contrast := floatParam(params, "contrast", 1.0)
	saturation := floatParam(params, "saturation", 1.0)
	hue := floatParam(params, "hue", 0.0)
	intensity := floatParam(params, "intensity", 0.0)

	// Intensity and brightness fold into a single brightness enhancement.
	effectiveBrightness := brightness * (1.0 + intensity/100.0)

	out := input
	if effectiveBrightness != 1.0 {
		out = enhance.Brightness(out, effectiveBrightness)
	}
	if contrast != 1.0 {
		out = enhance.Contrast(out, contrast)
	}
	if saturation != 1.0 {
		out = enhance.Saturation(out, saturation)
	}
	if hue != 0.0 {
		rotated, err := colorspace.HueRotate(out, hue)
		if err != nil {
			// Hue rotation is best effort; a failure degrades to a no-op.
			p.logger.Warning("ColorAdjust", "hue rotation skipped", map[string]interface{}{
				"hue":   hue,
				"error": err.Error(),
			})
		} else {
			out = rotated
		}
	}

	return out, nil
}

func floatParam(params map[string]interface{}, key string, fallback float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}
