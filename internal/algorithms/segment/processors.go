package segment

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"sync"
)

// ThresholdProcessor implements the "threshold" segmentation method.
type ThresholdProcessor struct {
	name string
}

func NewThresholdProcessor() *ThresholdProcessor {
	return &ThresholdProcessor{name: "threshold"}
}

func (p *ThresholdProcessor) GetName() string {
	return p.name
}

func (p *ThresholdProcessor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"threshold": 128,
	}
}

func (p *ThresholdProcessor) ValidateParameters(params map[string]interface{}) error {
	return nil
}

func (p *ThresholdProcessor) Process(input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error) {
	return Threshold(input, intParam(params, "threshold", 128)), nil
}

// KMeansProcessor implements the "kmeans" segmentation method. It holds a
// seed source rather than a shared rand.Rand: every run derives its own
// generator, keeping concurrent requests independent and letting tests fix
// the seed.
type KMeansProcessor struct {
	name string
	mu   sync.Mutex
	seed *rand.Rand
}

// NewKMeansProcessor builds a processor around the given random source.
func NewKMeansProcessor(seed *rand.Rand) *KMeansProcessor {
	return &KMeansProcessor{name: "kmeans", seed: seed}
}

func (p *KMeansProcessor) GetName() string {
	return p.name
}

func (p *KMeansProcessor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"clusters":       4,
		"max_iterations": 10,
		"sample_limit":   10000,
	}
}

func (p *KMeansProcessor) ValidateParameters(params map[string]interface{}) error {
	return validateClusterParams(params)
}

func (p *KMeansProcessor) Process(input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error) {
	return p.ProcessWithContext(context.Background(), input, params)
}

func (p *KMeansProcessor) ProcessWithContext(ctx context.Context, input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error) {
	if err := p.ValidateParameters(params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := &clusterer{
		k:           intParam(params, "clusters", 4),
		maxIters:    intParam(params, "max_iterations", 10),
		sampleLimit: intParam(params, "sample_limit", 10000),
		rng:         p.newRun(),
	}

	labels, centroids := c.cluster(input)
	return renderLabels(labels, centroids, input.Rect), nil
}

// newRun derives an independent generator for one clustering run.
func (p *KMeansProcessor) newRun() *rand.Rand {
	p.mu.Lock()
	defer p.mu.Unlock()
	return rand.New(rand.NewSource(p.seed.Int63()))
}

// WatershedProcessor implements the "watershed" segmentation method: k-means
// seeding followed by majority-vote smoothing passes. The smoothing only
// approximates watershed region consolidation, not the classical
// marker-based transform.
type WatershedProcessor struct {
	name   string
	kmeans *KMeansProcessor
}

func NewWatershedProcessor(seed *rand.Rand) *WatershedProcessor {
	return &WatershedProcessor{
		name:   "watershed",
		kmeans: NewKMeansProcessor(seed),
	}
}

func (p *WatershedProcessor) GetName() string {
	return p.name
}

func (p *WatershedProcessor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"clusters":       6,
		"iterations":     4,
		"max_iterations": 10,
		"sample_limit":   8000,
	}
}

func (p *WatershedProcessor) ValidateParameters(params map[string]interface{}) error {
	if err := validateClusterParams(params); err != nil {
		return err
	}
	if iterations, ok := params["iterations"].(int); ok && iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got: %d", iterations)
	}
	return nil
}

func (p *WatershedProcessor) Process(input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error) {
	return p.ProcessWithContext(context.Background(), input, params)
}

func (p *WatershedProcessor) ProcessWithContext(ctx context.Context, input *image.NRGBA, params map[string]interface{}) (*image.NRGBA, error) {
	if err := p.ValidateParameters(params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	k := intParam(params, "clusters", 6)
	c := &clusterer{
		k:           k,
		maxIters:    intParam(params, "max_iterations", 10),
		sampleLimit: intParam(params, "sample_limit", 8000),
		rng:         p.kmeans.newRun(),
	}

	labels, centroids := c.cluster(input)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	width, height := input.Rect.Dx(), input.Rect.Dy()
	labels = smoothLabels(labels, width, height, k, intParam(params, "iterations", 4))
	return renderLabels(labels, centroids, input.Rect), nil
}

func validateClusterParams(params map[string]interface{}) error {
	if clusters := intParam(params, "clusters", 1); clusters < 1 {
		return fmt.Errorf("clusters must be at least 1, got: %d", clusters)
	}
	if maxIters := intParam(params, "max_iterations", 1); maxIters < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got: %d", maxIters)
	}
	if sampleLimit := intParam(params, "sample_limit", 1); sampleLimit < 1 {
		return fmt.Errorf("sample_limit must be at least 1, got: %d", sampleLimit)
	}
	return nil
}

// intParam reads an integer parameter that may arrive as an int or, after
// generic decoding, as a float64.
func intParam(params map[string]interface{}, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}
