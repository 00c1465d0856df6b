// Package segment implements the segmentation algorithms: global threshold,
// k-means color clustering, and the watershed-like smoothing of cluster
// labels into contiguous regions.
package segment

import (
	"image"
	"math/rand"
)

// rgb is a color centroid: three integer channel means.
type rgb [3]int

// clusterer runs k-means over the colors of one image. It is built per run
// around an explicit random source so clustering determinism is controllable
// rather than an accident of global state.
type clusterer struct {
	k           int
	maxIters    int
	sampleLimit int
	rng         *rand.Rand
}

// cluster estimates k centroids from a subsample and then assigns every
// pixel of the full-resolution image to its nearest final centroid. It always
// terminates: hitting the iteration cap without stabilizing is expected, not
// an error. Repeated runs may differ since initialization is random.
func (c *clusterer) cluster(img *image.NRGBA) ([]int, []rgb) {
	pixels := extractPixels(img)
	n := len(pixels)
	centroids := make([]rgb, c.k)
	if n == 0 {
		return nil, centroids
	}

	sample := pixels
	if n > c.sampleLimit {
		step := (n + c.sampleLimit - 1) / c.sampleLimit
		sample = make([]rgb, 0, n/step+1)
		for i := 0; i < n; i += step {
			sample = append(sample, pixels[i])
		}
	}

	// Random initialization from the sample, with replacement.
	for i := range centroids {
		centroids[i] = sample[c.rng.Intn(len(sample))]
	}

	sums := make([]rgb, c.k)
	counts := make([]int, c.k)

	for iter := 0; iter < c.maxIters; iter++ {
		for i := range sums {
			sums[i] = rgb{}
			counts[i] = 0
		}

		for _, px := range sample {
			idx := nearestCentroid(px, centroids)
			sums[idx][0] += px[0]
			sums[idx][1] += px[1]
			sums[idx][2] += px[2]
			counts[idx]++
		}

		changed := false
		for i := range centroids {
			if counts[i] == 0 {
				// A cluster that lost all its pixels is reseeded from a
				// fresh random sample, and that always counts as a change.
				centroids[i] = sample[c.rng.Intn(len(sample))]
				changed = true
				continue
			}
			next := rgb{
				sums[i][0] / counts[i],
				sums[i][1] / counts[i],
				sums[i][2] / counts[i],
			}
			if next != centroids[i] {
				changed = true
			}
			centroids[i] = next
		}

		if !changed {
			break
		}
	}

	labels := make([]int, n)
	for i, px := range pixels {
		labels[i] = nearestCentroid(px, centroids)
	}
	return labels, centroids
}

// nearestCentroid scans centroids in order and keeps the first strictly
// smaller squared distance, so ties resolve to the lowest index.
func nearestCentroid(px rgb, centroids []rgb) int {
	best := 0
	bestDist := -1
	for i, c := range centroids {
		dr := px[0] - c[0]
		dg := px[1] - c[1]
		db := px[2] - c[2]
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func extractPixels(img *image.NRGBA) []rgb {
	pixels := make([]rgb, 0, len(img.Pix)/4)
	for i := 0; i < len(img.Pix); i += 4 {
		pixels = append(pixels, rgb{int(img.Pix[i]), int(img.Pix[i+1]), int(img.Pix[i+2])})
	}
	return pixels
}

// renderLabels replaces every pixel with its centroid's color.
func renderLabels(labels []int, centroids []rgb, bounds image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(bounds)
	for i, label := range labels {
		c := centroids[label]
		out.Pix[i*4+0] = uint8(c[0])
		out.Pix[i*4+1] = uint8(c[1])
		out.Pix[i*4+2] = uint8(c[2])
		out.Pix[i*4+3] = 255
	}
	return out
}
