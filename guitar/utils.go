package guitar

import "math"

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// quantize maps real samples to floor(s*quant). Values are not clamped.
func quantize(in []float64, quant int) []int {
	out := make([]int, len(in))
	q := float64(quant)
	for i, s := range in {
		out[i] = int(math.Floor(s * q))
	}
	return out
}
