package analysis

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-approx"
	pdefd "github.com/cwbudde/algo-pde/fd"
	pdepoisson "github.com/cwbudde/algo-pde/poisson"
)

// LoopGains returns, for harmonics 0..delay/2, the amplitude gain each
// harmonic receives per trip around a Karplus-Strong loop of length delay.
//
// The two-point average is (I+S)/2 for the cyclic shift S, whose magnitude on
// mode k is |cos(pi k/delay)|. The periodic second-difference operator has
// eigenvalues 4 sin^2(pi k/delay) on the same modes, so the gain follows from
// the discrete Laplacian spectrum as sqrt(1 - lambda/4).
func LoopGains(delay int, decay float64) []float64 {
	if delay < 1 {
		return nil
	}
	eig := pdefd.Eigenvalues(delay, 1.0, pdepoisson.Periodic)
	sorted := append([]float64(nil), eig...)
	sort.Float64s(sorted)

	gains := make([]float64, delay/2+1)
	for k := range gains {
		idx := 0
		if k > 0 {
			idx = 2*k - 1
		}
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		c := 1.0 - sorted[idx]/4.0
		if c < 0 {
			c = 0
		}
		gains[k] = decay * math.Sqrt(c)
	}
	return gains
}

// DecayTime returns the time in seconds for harmonic to fall by dropDB
// (60 for T60). It returns +Inf for a lossless harmonic.
func DecayTime(delay int, decay float64, sampleRate int, harmonic int, dropDB float64) float64 {
	gains := LoopGains(delay, decay)
	if harmonic < 0 || harmonic >= len(gains) || sampleRate <= 0 {
		return math.NaN()
	}
	g := gains[harmonic]
	if g >= 1 {
		return math.Inf(1)
	}
	if g <= 0 {
		return 0
	}
	periods := -dropDB / (20.0 * math.Log10(g))
	return periods * loopPeriod(delay) / float64(sampleRate)
}

// PredictedEnvelope returns the fundamental's expected amplitude, relative to
// its initial value, for each of n samples.
func PredictedEnvelope(delay int, decay float64, n int) []float32 {
	gains := LoopGains(delay, decay)
	if len(gains) == 0 || n <= 0 {
		return nil
	}
	g := gains[0]
	if len(gains) > 1 {
		g = gains[1]
	}
	rate := float32(math.Log(g) / loopPeriod(delay))
	out := make([]float32, n)
	for i := range out {
		out[i] = approx.FastExp(rate * float32(i))
	}
	return out
}
