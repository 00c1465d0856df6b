package segment

// smoothLabels runs the given number of majority-vote passes over a label
// buffer. Every pixel takes the most frequent label of its 3x3 neighborhood,
// clipped at the image edges. All reads within one pass come from the same
// snapshot and writes go to a fresh buffer, so relabeling never propagates
// within a pass. Ties resolve to the lowest label index because the tally
// scan keeps the first maximal count in ascending label order.
func smoothLabels(labels []int, width, height, k, passes int) []int {
	current := labels
	counts := make([]int, k)

	for pass := 0; pass < passes; pass++ {
		next := make([]int, len(current))

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				for i := range counts {
					counts[i] = 0
				}

				yLo, yHi := max(0, y-1), min(height, y+2)
				xLo, xHi := max(0, x-1), min(width, x+2)
				for yy := yLo; yy < yHi; yy++ {
					for xx := xLo; xx < xHi; xx++ {
						counts[current[yy*width+xx]]++
					}
				}

				best := 0
				for i := 1; i < k; i++ {
					if counts[i] > counts[best] {
						best = i
					}
				}
				next[y*width+x] = best
			}
		}

		current = next
	}

	return current
}
