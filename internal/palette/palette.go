// Package palette extracts a dominant color palette from an image by
// partitioning sampled pixels in HSV space.
package palette

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// maxSamples bounds the observation count fed into the partitioner.
const maxSamples = 4000

// hsvObservation is one sampled pixel in normalized HSV coordinates.
type hsvObservation struct {
	coords clusters.Coordinates
}

func newHSVObservation(c colorful.Color) hsvObservation {
	h, s, v := c.Hsv()
	return hsvObservation{coords: clusters.Coordinates{h / 360.0, s, v}}
}

func (o hsvObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o hsvObservation) Distance(point clusters.Coordinates) float64 {
	var sum float64
	for i, v := range o.coords {
		d := v - point[i]
		sum += d * d
	}
	return sum
}

// Extract returns up to count dominant colors as hex strings, largest
// cluster first.
func Extract(img image.Image, count int) ([]string, error) {
	if img == nil {
		return nil, fmt.Errorf("palette: no image")
	}
	if count < 1 {
		return nil, fmt.Errorf("palette: color count must be at least 1, got %d", count)
	}

	observations := sampleObservations(img)
	if len(observations) == 0 {
		return nil, fmt.Errorf("palette: no opaque pixels to sample")
	}
	if count > len(observations) {
		count = len(observations)
	}

	km := kmeans.New()
	partitioned, err := km.Partition(observations, count)
	if err != nil {
		return nil, fmt.Errorf("palette partition failed: %w", err)
	}

	// Largest clusters first.
	for i := 0; i < len(partitioned); i++ {
		for j := i + 1; j < len(partitioned); j++ {
			if len(partitioned[j].Observations) > len(partitioned[i].Observations) {
				partitioned[i], partitioned[j] = partitioned[j], partitioned[i]
			}
		}
	}

	hexes := make([]string, 0, len(partitioned))
	for _, cluster := range partitioned {
		center := cluster.Center
		c := colorful.Hsv(center[0]*360.0, center[1], center[2])
		hexes = append(hexes, c.Clamped().Hex())
	}
	return hexes, nil
}

func sampleObservations(img image.Image) clusters.Observations {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	step := 1
	if total > maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(maxSamples))), 1)
	}

	observations := make(clusters.Observations, 0, maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			observations = append(observations, newHSVObservation(c))
			if len(observations) >= maxSamples {
				return observations
			}
		}
	}
	return observations
}
