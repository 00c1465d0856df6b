package pipeline

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/kritik8/pixgonzDIP/internal/logger"
)

type imageSaver struct {
	logger logger.Logger
}

// SaveToWriter encodes imageData in the requested format. Responses default
// to PNG; formats without an encoder fall back to PNG with a warning.
func (s *imageSaver) SaveToWriter(writer io.Writer, imageData *ImageData, format string) error {
	if imageData == nil || imageData.Image == nil {
		return fmt.Errorf("no image data to save")
	}

	saveFormat := strings.ToLower(format)
	if saveFormat == "" {
		saveFormat = "png"
	}

	var err error
	switch saveFormat {
	case "jpeg", "jpg":
		err = jpeg.Encode(writer, imageData.Image, &jpeg.Options{Quality: 95})
	case "png":
		err = png.Encode(writer, imageData.Image)
	default:
		s.logger.Warning("ImageSaver", "format not supported, using PNG", map[string]interface{}{
			"requested_format": strings.ToUpper(saveFormat),
		})
		err = png.Encode(writer, imageData.Image)
	}

	if err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"format": saveFormat,
		})
		return err
	}

	return nil
}
