package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/kritik8/pixgonzDIP/internal/algorithms"
	"github.com/kritik8/pixgonzDIP/internal/logger"
)

type imageProcessor struct {
	logger logger.Logger
}

func (p *imageProcessor) ProcessImage(inputData *ImageData, algorithm algorithms.Algorithm, params map[string]interface{}) (*ImageData, error) {
	return p.ProcessImageWithContext(context.Background(), inputData, algorithm, params)
}

func (p *imageProcessor) ProcessImageWithContext(ctx context.Context, inputData *ImageData, algorithm algorithms.Algorithm, params map[string]interface{}) (*ImageData, error) {
	if inputData == nil || inputData.Image == nil {
		return nil, fmt.Errorf("no image buffer to process")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var out *image.NRGBA
	var err error
	if contextual, ok := algorithm.(algorithms.ContextualAlgorithm); ok {
		out, err = contextual.ProcessWithContext(ctx, inputData.Image, params)
	} else {
		out, err = algorithm.Process(inputData.Image, params)
	}
	if err != nil {
		return nil, fmt.Errorf("algorithm processing failed: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("algorithm returned nil result")
	}

	result := NewImageData(out, inputData.Format)

	p.logger.Debug("ImageProcessor", "processing completed", map[string]interface{}{
		"algorithm":   algorithm.GetName(),
		"input_size":  fmt.Sprintf("%dx%d", inputData.Width, inputData.Height),
		"output_size": fmt.Sprintf("%dx%d", result.Width, result.Height),
	})

	return result, nil
}
