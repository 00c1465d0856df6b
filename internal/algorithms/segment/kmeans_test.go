package segment

import (
	"image"
	"math/rand"
	"testing"
)

func newClusterer(k, maxIters, sampleLimit int, seed int64) *clusterer {
	return &clusterer{
		k:           k,
		maxIters:    maxIters,
		sampleLimit: sampleLimit,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// fourColorImage lays out four well separated colors in quadrants.
func fourColorImage(w, h int) *image.NRGBA {
	colors := [4][3]uint8{
		{250, 10, 10},
		{10, 250, 10},
		{10, 10, 250},
		{240, 240, 20},
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			q := 0
			if x >= w/2 {
				q++
			}
			if y >= h/2 {
				q += 2
			}
			i := (y*w + x) * 4
			img.Pix[i+0] = colors[q][0]
			img.Pix[i+1] = colors[q][1]
			img.Pix[i+2] = colors[q][2]
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestClusterLabelsEveryPixel(t *testing.T) {
	img := fourColorImage(16, 16)
	c := newClusterer(4, 10, 10000, 1)

	labels, centroids := c.cluster(img)
	if len(labels) != 256 {
		t.Fatalf("got %d labels, want 256", len(labels))
	}
	if len(centroids) != 4 {
		t.Fatalf("got %d centroids, want 4", len(centroids))
	}
	for i, label := range labels {
		if label < 0 || label >= 4 {
			t.Fatalf("label %d at pixel %d out of range", label, i)
		}
	}
}

func TestClusterUniformImageCollapses(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 120
		img.Pix[i+1] = 80
		img.Pix[i+2] = 40
		img.Pix[i+3] = 255
	}

	c := newClusterer(3, 10, 10000, 7)
	labels, centroids := c.cluster(img)

	for _, label := range labels {
		// With identical distances to every centroid the scan keeps index 0.
		if centroids[label] != (rgb{120, 80, 40}) {
			t.Fatalf("pixel assigned to centroid %v", centroids[label])
		}
	}
}

func TestClusterOutputColorsComeFromCentroids(t *testing.T) {
	img := fourColorImage(16, 16)
	c := newClusterer(4, 10, 10000, 42)

	labels, centroids := c.cluster(img)
	out := renderLabels(labels, centroids, img.Rect)

	allowed := make(map[rgb]bool, len(centroids))
	for _, cen := range centroids {
		allowed[cen] = true
	}
	for i := 0; i < len(out.Pix); i += 4 {
		px := rgb{int(out.Pix[i]), int(out.Pix[i+1]), int(out.Pix[i+2])}
		if !allowed[px] {
			t.Fatalf("output pixel %v is not a centroid", px)
		}
		if out.Pix[i+3] != 255 {
			t.Fatalf("alpha = %d, want 255", out.Pix[i+3])
		}
	}
}

func TestClusterSamplingStillAssignsFullImage(t *testing.T) {
	img := fourColorImage(32, 32)
	c := newClusterer(4, 10, 100, 3)

	labels, _ := c.cluster(img)
	if len(labels) != 32*32 {
		t.Fatalf("got %d labels, want %d", len(labels), 32*32)
	}
}

func TestClusterDeterministicWithFixedSeed(t *testing.T) {
	img := fourColorImage(16, 16)

	la, ca := newClusterer(4, 10, 10000, 99).cluster(img)
	lb, cb := newClusterer(4, 10, 10000, 99).cluster(img)

	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("centroid %d differs: %v vs %v", i, ca[i], cb[i])
		}
	}
	for i := range la {
		if la[i] != lb[i] {
			t.Fatalf("label %d differs: %d vs %d", i, la[i], lb[i])
		}
	}
}

func TestNearestCentroidTiesPickLowestIndex(t *testing.T) {
	centroids := []rgb{{10, 0, 0}, {30, 0, 0}}
	if got := nearestCentroid(rgb{20, 0, 0}, centroids); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestKMeansProcessorDefaults(t *testing.T) {
	p := NewKMeansProcessor(rand.New(rand.NewSource(1)))
	defaults := p.GetDefaultParameters()
	if defaults["clusters"] != 4 || defaults["max_iterations"] != 10 || defaults["sample_limit"] != 10000 {
		t.Errorf("unexpected defaults: %v", defaults)
	}
}

func TestKMeansProcessorRejectsBadParameters(t *testing.T) {
	p := NewKMeansProcessor(rand.New(rand.NewSource(1)))
	cases := []struct {
		name   string
		params map[string]interface{}
	}{
		{"zero clusters", map[string]interface{}{"clusters": 0}},
		{"zero iterations", map[string]interface{}{"max_iterations": 0}},
		{"zero sample limit", map[string]interface{}{"sample_limit": 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := p.Process(fourColorImage(4, 4), tc.params); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWatershedProcessorReducesDistinctColors(t *testing.T) {
	img := fourColorImage(16, 16)
	p := NewWatershedProcessor(rand.New(rand.NewSource(5)))

	out, err := p.Process(img, map[string]interface{}{
		"clusters":   4,
		"iterations": 2,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	distinct := make(map[rgb]bool)
	for i := 0; i < len(out.Pix); i += 4 {
		distinct[rgb{int(out.Pix[i]), int(out.Pix[i+1]), int(out.Pix[i+2])}] = true
	}
	if len(distinct) > 4 {
		t.Errorf("got %d distinct colors, want at most 4", len(distinct))
	}
}
