package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-guitar/guitar"
)

func TestLoopGainsMatchCosineResponse(t *testing.T) {
	const delay = 84
	gains := LoopGains(delay, guitar.DefaultDecay)
	if len(gains) != delay/2+1 {
		t.Fatalf("len = %d", len(gains))
	}
	if math.Abs(gains[0]-guitar.DefaultDecay) > 1e-9 {
		t.Fatalf("dc gain = %f", gains[0])
	}
	for k := 1; k < len(gains); k++ {
		want := guitar.DefaultDecay * math.Abs(math.Cos(math.Pi*float64(k)/delay))
		if math.Abs(gains[k]-want) > 1e-6 {
			t.Fatalf("harmonic %d gain = %.9f, want %.9f", k, gains[k], want)
		}
		if gains[k] > gains[k-1] {
			t.Fatalf("gains should not increase with harmonic number at %d", k)
		}
	}
	if LoopGains(0, 0.9) != nil {
		t.Fatalf("expected nil for zero delay")
	}
}

func TestDecayTime(t *testing.T) {
	t60 := DecayTime(84, guitar.DefaultDecay, 44100, 1, 60)
	if !(t60 > 1.0 && t60 < 5.0) {
		t.Fatalf("T60 = %f s", t60)
	}
	if upper := DecayTime(84, guitar.DefaultDecay, 44100, 5, 60); upper >= t60 {
		t.Fatalf("upper harmonic should decay faster: %f >= %f", upper, t60)
	}
	if !math.IsInf(DecayTime(84, 1.0, 44100, 0, 60), 1) {
		t.Fatalf("lossless dc should never decay")
	}
	if !math.IsNaN(DecayTime(84, 0.9, 44100, 100, 60)) {
		t.Fatalf("expected NaN for out of range harmonic")
	}
}

func TestPredictedEnvelopeTracksFilter(t *testing.T) {
	const delay = 84
	seed := make([]float64, delay)
	for i := range seed {
		seed[i] = 0.4 * math.Sin(2*math.Pi*float64(i)/delay)
	}
	out := guitar.NewFilter().Extend(seed, 30000-delay)
	env := PredictedEnvelope(delay, guitar.DefaultDecay, len(out))
	if math.Abs(float64(env[0])-1) > 0.05 {
		t.Fatalf("env[0] = %f", env[0])
	}

	const window = 845
	early := rms(out[5000 : 5000+window])
	late := rms(out[25000 : 25000+window])
	measured := late / early
	predicted := float64(env[25000]) / float64(env[5000])
	if math.Abs(measured-predicted)/predicted > 0.1 {
		t.Fatalf("measured decay ratio %.4f, predicted %.4f", measured, predicted)
	}
}
