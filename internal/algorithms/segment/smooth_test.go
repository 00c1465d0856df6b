package segment

import "testing"

func TestSmoothLabelsFlipsIsolatedPixel(t *testing.T) {
	labels := []int{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}
	got := smoothLabels(labels, 3, 3, 2, 1)
	for i, label := range got {
		if label != 0 {
			t.Errorf("pixel %d = %d, want 0", i, label)
		}
	}
}

func TestSmoothLabelsTieResolvesToLowestLabel(t *testing.T) {
	// The center neighborhood holds four of label 1, four of label 2, and
	// one of label 0, so labels 1 and 2 tie for the majority.
	labels := []int{
		1, 1, 2,
		1, 0, 2,
		1, 2, 2,
	}
	got := smoothLabels(labels, 3, 3, 3, 1)
	if got[4] != 1 {
		t.Errorf("center = %d, want 1", got[4])
	}
}

func TestSmoothLabelsUniformIsFixedPoint(t *testing.T) {
	labels := make([]int, 16)
	for i := range labels {
		labels[i] = 2
	}
	got := smoothLabels(labels, 4, 4, 3, 5)
	for i, label := range got {
		if label != 2 {
			t.Errorf("pixel %d = %d, want 2", i, label)
		}
	}
}

func TestSmoothLabelsNeverInventsLabels(t *testing.T) {
	labels := []int{
		0, 1, 0, 1,
		1, 0, 1, 0,
		0, 1, 0, 1,
		1, 0, 1, 0,
	}
	got := smoothLabels(labels, 4, 4, 4, 3)
	for i, label := range got {
		if label != 0 && label != 1 {
			t.Errorf("pixel %d = %d, want 0 or 1", i, label)
		}
	}
}

func TestSmoothLabelsZeroPassesReturnsInput(t *testing.T) {
	labels := []int{0, 1, 1, 0}
	got := smoothLabels(labels, 2, 2, 2, 0)
	for i := range labels {
		if got[i] != labels[i] {
			t.Errorf("pixel %d = %d, want %d", i, got[i], labels[i])
		}
	}
}

func TestSmoothLabelsReadsFromSnapshot(t *testing.T) {
	// On a 1x3 row of 1 0 1 the center pixel must see both original 1s and
	// vote 1. If the left pixel's rewrite to 0 leaked into the same pass,
	// the center would vote 0 instead.
	labels := []int{1, 0, 1}
	got := smoothLabels(labels, 3, 1, 2, 1)
	want := []int{0, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, got[i], want[i])
		}
	}
}
