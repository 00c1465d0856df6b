package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kritik8/pixgonzDIP/internal/logger"
)

type imageLoader struct {
	logger logger.Logger
}

// LoadFromBytes decodes an uploaded payload. Whatever the source format, the
// working buffer is normalized to NRGBA so every downstream transform sees
// the same sample layout.
func (l *imageLoader) LoadFromBytes(data []byte) (*ImageData, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	normalized := imaging.Clone(img)
	bounds := normalized.Bounds()

	imageData := &ImageData{
		Image:  normalized,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}

	l.logger.Debug("ImageLoader", "image loaded", map[string]interface{}{
		"width":  imageData.Width,
		"height": imageData.Height,
		"format": format,
	})

	return imageData, nil
}
