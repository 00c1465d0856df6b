package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/kritik8/pixgonzDIP/internal/algorithms"
	"github.com/kritik8/pixgonzDIP/internal/history"
	"github.com/kritik8/pixgonzDIP/internal/logger"
)

type ImageLoader interface {
	LoadFromBytes(data []byte) (*ImageData, error)
}

type ImageSaver interface {
	SaveToWriter(writer io.Writer, imageData *ImageData, format string) error
}

type ImageProcessor interface {
	ProcessImage(inputData *ImageData, algorithm algorithms.Algorithm, params map[string]interface{}) (*ImageData, error)
	ProcessImageWithContext(ctx context.Context, inputData *ImageData, algorithm algorithms.Algorithm, params map[string]interface{}) (*ImageData, error)
}

// ImageData is one decoded in-memory buffer moving through a pipeline. Each
// transform consumes one buffer and produces a new one; dimensions are
// preserved by every registered operation.
type ImageData struct {
	Image  *image.NRGBA
	Width  int
	Height int
	Format string
}

// NewImageData wraps an already-decoded buffer.
func NewImageData(img *image.NRGBA, format string) *ImageData {
	return &ImageData{
		Image:  img,
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
		Format: format,
	}
}

// Coordinator wires decoding, algorithm dispatch, history and encoding for
// the request handlers. Unlike an interactive editor it holds no current
// image: every request is self-contained.
type Coordinator struct {
	logger           logger.Logger
	algorithmManager *algorithms.Manager
	historyStore     *history.Store
	loader           ImageLoader
	processor        ImageProcessor
	saver            ImageSaver
}

func NewCoordinator(algMgr *algorithms.Manager, store *history.Store, log logger.Logger) *Coordinator {
	coord := &Coordinator{
		logger:           log,
		algorithmManager: algMgr,
		historyStore:     store,
	}

	coord.loader = &imageLoader{logger: log}
	coord.processor = &imageProcessor{logger: log}
	coord.saver = &imageSaver{logger: log}

	log.Info("PipelineCoordinator", "initialized", map[string]interface{}{
		"algorithms": algMgr.GetAvailableAlgorithms(),
	})
	return coord
}

// DecodeImage decodes an uploaded payload into a pipeline buffer.
func (c *Coordinator) DecodeImage(data []byte) (*ImageData, error) {
	return c.loader.LoadFromBytes(data)
}

// ProcessImage runs the named algorithm over inputData with the caller's
// parameters overlaid on the algorithm defaults.
func (c *Coordinator) ProcessImage(ctx context.Context, inputData *ImageData, algorithmName string, params map[string]interface{}) (*ImageData, error) {
	algorithm, err := c.algorithmManager.GetAlgorithm(algorithmName)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"algorithm": algorithmName,
		})
		return nil, fmt.Errorf("failed to get algorithm: %w", err)
	}

	merged, err := c.algorithmManager.MergedParameters(algorithmName, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	processedData, err := c.processor.ProcessImageWithContext(ctx, inputData, algorithm, merged)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
			"algorithm": algorithmName,
		})
		return nil, err
	}

	c.logger.Info("PipelineCoordinator", "image processed", map[string]interface{}{
		"algorithm":       algorithmName,
		"width":           processedData.Width,
		"height":          processedData.Height,
		"processing_time": time.Since(start),
	})

	return processedData, nil
}

// EncodeImage writes imageData to writer in the requested format.
func (c *Coordinator) EncodeImage(writer io.Writer, imageData *ImageData, format string) error {
	return c.saver.SaveToWriter(writer, imageData, format)
}

// PushHistory records a snapshot for the session. History is best effort: a
// failed push is logged and the response still succeeds.
func (c *Coordinator) PushHistory(sessionID string, imageData *ImageData) {
	if sessionID == "" || imageData == nil {
		return
	}
	if err := c.historyStore.Push(sessionID, imageData.Image); err != nil {
		c.logger.Warning("PipelineCoordinator", "history push skipped", map[string]interface{}{
			"session": sessionID,
			"error":   err.Error(),
		})
	}
}

// Undo returns the session's previous state, or history.ErrNoHistory.
func (c *Coordinator) Undo(sessionID string) (*ImageData, error) {
	img, err := c.historyStore.Undo(sessionID)
	if err != nil {
		return nil, err
	}
	return NewImageData(img, "png"), nil
}

// Redo returns the session's next state, or history.ErrNoHistory.
func (c *Coordinator) Redo(sessionID string) (*ImageData, error) {
	img, err := c.historyStore.Redo(sessionID)
	if err != nil {
		return nil, err
	}
	return NewImageData(img, "png"), nil
}
