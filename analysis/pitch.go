package analysis

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// ErrNoPitch is returned when no periodicity is found in the search range.
var ErrNoPitch = errors.New("no pitch detected")

// maxPitchFrames bounds the analysed segment so the FFT stays small.
const maxPitchFrames = 16384

// FromInts converts quantized samples back to floats by dividing by scale,
// the same scaling the browser page applies before playback.
func FromInts(samples []int, scale float64) []float64 {
	out := make([]float64, len(samples))
	if scale == 0 {
		return out
	}
	for i, v := range samples {
		out[i] = float64(v) / scale
	}
	return out
}

// ExpectedPitch is the frequency a Karplus-Strong loop of the given integer
// delay actually rings at.
func ExpectedPitch(delay int, sampleRate int) float64 {
	if delay < 1 || sampleRate <= 0 {
		return 0
	}
	return float64(sampleRate) / loopPeriod(delay)
}

// loopPeriod is the effective period in samples. The new sample at t+delay
// averages the taps delay and delay-1 samples back, so the loop is half a
// sample shorter than the buffer.
func loopPeriod(delay int) float64 {
	return float64(delay) - 0.5
}

// CentsBetween returns the interval from ref to f in cents.
func CentsBetween(f, ref float64) float64 {
	if f <= 0 || ref <= 0 {
		return math.NaN()
	}
	return 1200.0 * math.Log2(f/ref)
}

// EstimateFundamental finds the strongest period in [sampleRate/maxHz,
// sampleRate/minHz] from the FFT autocorrelation of x and returns its
// frequency in Hz.
func EstimateFundamental(x []float64, sampleRate int, minHz, maxHz float64) (float64, error) {
	if sampleRate <= 0 || minHz <= 0 || maxHz <= minHz {
		return 0, fmt.Errorf("invalid pitch search range %.1f-%.1f Hz at %d Hz", minHz, maxHz, sampleRate)
	}
	if len(x) > maxPitchFrames {
		x = x[:maxPitchFrames]
	}
	minLag := int(math.Floor(float64(sampleRate) / maxHz))
	maxLag := int(math.Ceil(float64(sampleRate) / minHz))
	if minLag < 1 {
		minLag = 1
	}
	if maxLag+2 >= len(x) {
		return 0, fmt.Errorf("%w: %d frames too short for %.1f Hz", ErrNoPitch, len(x), minHz)
	}

	r, err := autocorrelation(x)
	if err != nil {
		return 0, err
	}
	if r[0] <= 0 {
		return 0, fmt.Errorf("%w: silent input", ErrNoPitch)
	}

	best := -1
	for lag := minLag; lag <= maxLag; lag++ {
		if r[lag] <= r[lag-1] || r[lag] < r[lag+1] {
			continue
		}
		if best < 0 || r[lag] > r[best] {
			best = lag
		}
	}
	if best < 0 || r[best] <= 0 {
		return 0, fmt.Errorf("%w: no autocorrelation peak in range", ErrNoPitch)
	}

	period := float64(best) + parabolicOffset(r[best-1], r[best], r[best+1])
	return float64(sampleRate) / period, nil
}

// autocorrelation returns the linear (non-circular) autocorrelation of x for
// lags 0..len(x)-1. The power spectrum is real and even, so a second forward
// transform yields the inverse up to the factor n.
func autocorrelation(x []float64) ([]float64, error) {
	n := nextPow2(2 * len(x))
	plan, err := algofft.NewPlanReal64(n)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}

	buf := make([]float64, n)
	copy(buf, x)
	spec := make([]complex128, n/2+1)
	plan.Forward(spec, buf)

	power := make([]float64, n)
	for k := 0; k <= n/2; k++ {
		re, im := real(spec[k]), imag(spec[k])
		power[k] = re*re + im*im
		if k > 0 && k < n/2 {
			power[n-k] = power[k]
		}
	}
	plan.Forward(spec, power)

	r := make([]float64, len(x))
	for lag := range r {
		if lag > n/2 {
			break
		}
		r[lag] = real(spec[lag]) / float64(n)
	}
	return r, nil
}

func parabolicOffset(a, b, c float64) float64 {
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	off := 0.5 * (a - c) / den
	if off > 0.5 {
		return 0.5
	}
	if off < -0.5 {
		return -0.5
	}
	return off
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
