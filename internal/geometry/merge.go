package geometry

import "math"

const (
	mergeCompareSamples    = 32
	mergeCenterlineSamples = 64
	mergeBoxSlack          = 1.2
)

// MergeOptions controls parallel-stroke merging.
type MergeOptions struct {
	MaxDist         float64
	MaxAngleDeg     float64
	MinOverlapRatio float64
}

// MergeParallel collapses near-duplicate parallel strokes into their
// averaged centerline in one greedy pass. For each surviving stroke A, in
// input order, every later unconsumed stroke B is compared; on a match A is
// replaced by the centerline of A and B and B is consumed. Later candidates
// in the same scan are compared against the replaced A, so three or more
// mutually close strokes can collapse into one.
func MergeParallel(strokes []Polyline, opts MergeOptions) []Polyline {
	consumed := make([]bool, len(strokes))
	maxAngle := deg2rad(opts.MaxAngleDeg)

	out := make([]Polyline, 0, len(strokes))
	for i := range strokes {
		if consumed[i] {
			continue
		}
		a := strokes[i]

		for j := i + 1; j < len(strokes); j++ {
			if consumed[j] {
				continue
			}
			b := strokes[j]
			if len(a) < 2 || len(b) < 2 {
				continue
			}

			if !a.Bounds().Inflate(opts.MaxDist * mergeBoxSlack).Overlaps(b.Bounds()) {
				continue
			}

			angle := angleBetween(a.Last().Sub(a.First()), b.Last().Sub(b.First()))
			if angle > maxAngle && math.Pi-angle > maxAngle {
				continue
			}

			b = alignTo(a, b)
			avg, overlap := compareSampled(a, b, opts.MaxDist)
			if avg <= opts.MaxDist && overlap >= opts.MinOverlapRatio {
				a = Centerline(a, b, mergeCenterlineSamples)
				consumed[j] = true
			}
		}
		out = append(out, a)
	}
	return out
}

// alignTo returns b, reversed when that brings its endpoints closer to a's.
func alignTo(a, b Polyline) Polyline {
	same := a.First().Dist(b.First()) + a.Last().Dist(b.Last())
	flipped := a.First().Dist(b.Last()) + a.Last().Dist(b.First())
	if flipped < same {
		return b.Reversed()
	}
	return b
}

// compareSampled samples both strokes at the same arc-length fractions and
// returns the mean pointwise distance and the fraction of sample pairs
// within maxDist.
func compareSampled(a, b Polyline, maxDist float64) (avg, overlap float64) {
	sa := a.Sample(mergeCompareSamples)
	sb := b.Sample(mergeCompareSamples)

	total := 0.0
	within := 0
	for k := range sa {
		d := sa[k].Dist(sb[k])
		total += d
		if d <= maxDist {
			within++
		}
	}
	return total / mergeCompareSamples, float64(within) / mergeCompareSamples
}

// Centerline averages a and b pointwise at n arc-length fractions.
func Centerline(a, b Polyline, n int) Polyline {
	sa := a.Sample(n)
	sb := b.Sample(n)
	out := make(Polyline, len(sa))
	for k := range sa {
		out[k] = sa[k].Lerp(sb[k], 0.5)
	}
	return out
}
