package analysis

import (
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// Metrics contains distance measurements between a reference pluck and a
// synthesized candidate. Noise excitation makes sample-level comparison
// meaningless, so every metric works on envelopes or averaged spectra.
type Metrics struct {
	SampleRate int `json:"sample_rate"`

	ReferenceFrames int `json:"reference_frames"`
	CandidateFrames int `json:"candidate_frames"`
	AlignedFrames   int `json:"aligned_frames"`

	EnvelopeRMSEDB  float64 `json:"envelope_rmse_db"`
	SpectralRMSEDB  float64 `json:"spectral_rmse_db"`
	RefDecayDBPerS  float64 `json:"ref_decay_db_per_s"`
	CandDecayDBPerS float64 `json:"cand_decay_db_per_s"`
	DecayDiffDBPerS float64 `json:"decay_diff_db_per_s"`
	PitchDiffCents  float64 `json:"pitch_diff_cents"`

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

const (
	envFrame     = 256
	envHop       = 128
	spectrumSize = 4096
)

// Compare returns distance metrics and a combined score in [0,1] (0 is identical).
func Compare(reference []float64, candidate []float64, sampleRate int) Metrics {
	m := Metrics{
		SampleRate:      sampleRate,
		ReferenceFrames: len(reference),
		CandidateFrames: len(candidate),
		Score:           1.0,
	}
	if sampleRate <= 0 {
		return m
	}

	ref := normalizeRMS(trimLeadingSilence(reference, 1e-6), 0.1)
	cand := normalizeRMS(trimLeadingSilence(candidate, 1e-6), 0.1)
	n := min(len(ref), len(cand))
	if n < envFrame*2 {
		return m
	}
	ref = ref[:n]
	cand = cand[:n]
	m.AlignedFrames = n

	refEnv := rmsEnvelope(ref, envFrame, envHop)
	candEnv := rmsEnvelope(cand, envFrame, envHop)
	envDiff := make([]float64, len(refEnv))
	for i := range refEnv {
		envDiff[i] = linToDB(refEnv[i]) - linToDB(candEnv[i])
	}
	m.EnvelopeRMSEDB = rms(envDiff)

	m.SpectralRMSEDB = spectralRMSEDB(ref, cand)

	hopSec := float64(envHop) / float64(sampleRate)
	m.RefDecayDBPerS = decaySlopeDBPerS(refEnv, hopSec)
	m.CandDecayDBPerS = decaySlopeDBPerS(candEnv, hopSec)
	decNorm := 1.0
	if isFinite(m.RefDecayDBPerS) && isFinite(m.CandDecayDBPerS) {
		m.DecayDiffDBPerS = math.Abs(m.RefDecayDBPerS - m.CandDecayDBPerS)
		decNorm = clamp01(m.DecayDiffDBPerS / 40.0)
	}

	pitchNorm := 1.0
	rf, errR := EstimateFundamental(ref, sampleRate, 50, 2000)
	cf, errC := EstimateFundamental(cand, sampleRate, 50, 2000)
	if errR == nil && errC == nil {
		m.PitchDiffCents = CentsBetween(cf, rf)
		pitchNorm = clamp01(math.Abs(m.PitchDiffCents) / 100.0)
	}

	envNorm := clamp01(m.EnvelopeRMSEDB / 30.0)
	specNorm := clamp01(m.SpectralRMSEDB / 30.0)
	m.Score = clamp01(0.35*envNorm + 0.30*specNorm + 0.20*decNorm + 0.15*pitchNorm)
	m.Similarity = clamp01(math.Exp(-4.0 * m.Score))
	return m
}

func trimLeadingSilence(x []float64, threshold float64) []float64 {
	for i := 0; i < len(x); i++ {
		if math.Abs(x[i]) > threshold {
			return x[i:]
		}
	}
	return nil
}

func normalizeRMS(x []float64, target float64) []float64 {
	r := rms(x)
	if r <= 1e-12 {
		return append([]float64(nil), x...)
	}
	g := target / r
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] * g
	}
	return out
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func rmsEnvelope(x []float64, frame int, hop int) []float64 {
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return nil
	}
	out := make([]float64, 1+(len(x)-frame)/hop)
	for i := range out {
		start := i * hop
		out[i] = rms(x[start : start+frame])
	}
	return out
}

// averageSpectrum is a Welch estimate: Hann-windowed magnitude spectra
// averaged over half-overlapping frames.
func averageSpectrum(x []float64, size int) []float64 {
	if len(x) < size {
		size = nextPow2(len(x)) / 2
	}
	if size < 8 {
		return nil
	}
	plan, err := algofft.NewPlanReal64(size)
	if err != nil {
		return nil
	}
	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size-1))
	}

	buf := make([]float64, size)
	spec := make([]complex128, size/2+1)
	avg := make([]float64, size/2+1)
	frames := 0
	for start := 0; start+size <= len(x); start += size / 2 {
		for i := range buf {
			buf[i] = x[start+i] * window[i]
		}
		plan.Forward(spec, buf)
		for k, c := range spec {
			avg[k] += math.Hypot(real(c), imag(c))
		}
		frames++
	}
	if frames == 0 {
		return nil
	}
	for k := range avg {
		avg[k] /= float64(frames)
	}
	return avg
}

func spectralRMSEDB(a []float64, b []float64) float64 {
	sa := averageSpectrum(a, spectrumSize)
	sb := averageSpectrum(b, spectrumSize)
	n := min(len(sa), len(sb))
	if n < 3 {
		return 0
	}
	var sum float64
	for k := 1; k < n-1; k++ {
		d := linToDB(sa[k]) - linToDB(sb[k])
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-2))
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
}

// decaySlopeDBPerS fits a line to the envelope in dB from its peak down to
// 60 dB below it.
func decaySlopeDBPerS(env []float64, hopSec float64) float64 {
	if len(env) < 8 || hopSec <= 0 {
		return math.NaN()
	}
	peak := -math.MaxFloat64
	peakIdx := 0
	for i, v := range env {
		if db := linToDB(v); db > peak {
			peak = db
			peakIdx = i
		}
	}
	start := peakIdx + 1
	if start >= len(env)-4 {
		return math.NaN()
	}

	end := len(env)
	for i := start; i < len(env); i++ {
		if linToDB(env[i]) < peak-60.0 {
			end = i
			break
		}
	}
	if end-start < 6 {
		return math.NaN()
	}

	var sx, sy, sxx, sxy float64
	n := float64(end - start)
	for i := start; i < end; i++ {
		x := float64(i-start) * hopSec
		y := linToDB(env[i])
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := n*sxx - sx*sx
	if math.Abs(den) < 1e-12 {
		return math.NaN()
	}
	return (n*sxy - sx*sy) / den
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
