package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cwbudde/algo-guitar/analysis"
	"github.com/cwbudde/algo-guitar/guitar"
	fitcommon "github.com/cwbudde/algo-guitar/internal/fitcommon"
	"github.com/cwbudde/algo-guitar/preset"
)

func main() {
	referencePath := flag.String("reference", "reference/c5.wav", "Reference WAV path (a single plucked note)")
	presetPath := flag.String("preset", "", "Base preset JSON path (defaults when empty)")
	outputPreset := flag.String("output-preset", "presets/fitted.json", "Path to write the fitted preset JSON")
	reportPath := flag.String("report", "", "Optional report JSON path (default: <output-preset>.report.json)")
	note := flag.String("note", "C", "Catalog note the reference was plucked at")
	seed := flag.Int64("seed", 1, "Random seed for noise and optimizer")
	renders := flag.Int("renders", 3, "Noise renders averaged per evaluation")
	timeBudget := flag.Float64("time-budget", 60.0, "Optimization time budget in seconds")
	maxEvals := flag.Int("max-evals", 400, "Maximum objective evaluations")
	reportEvery := flag.Int("report-every", 20, "Print progress every N evaluations")

	mayflyVariant := flag.String("mayfly-variant", "desma", "Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa")
	mayflyPop := flag.Int("mayfly-pop", 8, "Male and female population size per Mayfly run")
	mayflyRoundEvals := flag.Int("mayfly-round-evals", 120, "Target eval budget per Mayfly round")
	flag.Parse()

	if *maxEvals < 1 {
		die("max-evals must be >= 1")
	}
	if *timeBudget <= 0 {
		die("time-budget must be > 0")
	}
	*reportEvery = fitcommon.MaxInt(1, *reportEvery)
	*renders = fitcommon.MaxInt(1, *renders)
	*mayflyPop = fitcommon.MaxInt(2, *mayflyPop)
	*mayflyRoundEvals = fitcommon.MaxInt(*mayflyPop*2, *mayflyRoundEvals)
	variant := strings.ToLower(*mayflyVariant)

	base := preset.Default()
	if *presetPath != "" {
		loaded, err := preset.LoadJSON(*presetPath)
		if err != nil {
			die("failed to load preset: %v", err)
		}
		base = loaded
	}
	params := *base.Params

	ref, refSR, err := fitcommon.ReadWAVMono(*referencePath)
	if err != nil {
		die("failed to read reference: %v", err)
	}
	ref, err = fitcommon.ResampleIfNeeded(ref, refSR, params.SampleRate)
	if err != nil {
		die("failed to resample reference: %v", err)
	}
	if len(ref) > params.NumSamples {
		ref = ref[:params.NumSamples]
	}
	fmt.Printf("Fitting note %s against %s (%d frames at %d Hz)\n", *note, *referencePath, len(ref), params.SampleRate)

	cat := guitar.NewCatalog()
	if _, err := cat.FrequencyOf(*note); err != nil {
		die("%v", err)
	}
	defs := knobDefs()
	ev := &evaluator{
		catalog:   cat,
		note:      *note,
		reference: ref,
		base:      params,
		renders:   *renders,
		seed:      *seed,
	}

	start := time.Now()
	deadline := start.Add(time.Duration(*timeBudget * float64(time.Second)))
	evals := 0

	best := initCandidate(params)
	bestM, err := ev.evaluate(best)
	if err != nil {
		die("initial evaluation failed: %v", err)
	}
	evals++
	fmt.Printf("Start decay=%.5f quant=%d score=%.4f similarity=%.2f%%\n", best.Vals[0], int(best.Vals[1]), bestM.Score, bestM.Similarity*100.0)

	round := 0
	for evals < *maxEvals && time.Now().Before(deadline) {
		round++
		budget := fitcommon.MinInt(*mayflyRoundEvals, *maxEvals-evals)
		iters := fitcommon.MaxInt(1, budget/(2*(*mayflyPop)))

		cfg, err := newMayflyConfig(variant, *mayflyPop, len(defs), iters)
		if err != nil {
			die("invalid mayfly variant: %v", err)
		}
		cfg.Rand = rand.New(rand.NewSource(*seed + int64(round)*7919))
		cfg.ObjectiveFunc = func(pos []float64) float64 {
			if evals >= *maxEvals || time.Now().After(deadline) {
				return bestM.Score + 1.0
			}
			cand := fromNormalized(pos, defs)
			m, err := ev.evaluate(cand)
			evals++
			if err != nil {
				return bestM.Score + 0.8
			}
			if m.Score < bestM.Score {
				best = cand
				bestM = m
				fmt.Printf("Improved eval=%d decay=%.5f quant=%d score=%.4f sim=%.2f%%\n", evals, best.Vals[0], int(best.Vals[1]), bestM.Score, bestM.Similarity*100.0)
			}
			if evals%*reportEvery == 0 {
				fmt.Printf("Progress round=%d eval=%d elapsed=%.1fs best=%.4f\n", round, evals, time.Since(start).Seconds(), bestM.Score)
			}
			return m.Score
		}

		if _, err := runMayfly(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "mayfly round %d failed: %v\n", round, err)
			continue
		}
	}

	elapsed := time.Since(start).Seconds()
	rep := runReport{
		ReferencePath:  *referencePath,
		PresetPath:     *presetPath,
		OutputPreset:   *outputPreset,
		Note:           *note,
		SampleRate:     params.SampleRate,
		DurationSec:    elapsed,
		Evaluations:    evals,
		MayflyVariant:  variant,
		BestScore:      bestM.Score,
		BestSimilarity: bestM.Similarity,
		BestMetrics:    bestM,
		BestKnobs:      knobMap(defs, best),
	}
	if err := writeOutputs(*outputPreset, *reportPath, applyCandidate(params, best), *seed, rep); err != nil {
		die("failed to write outputs: %v", err)
	}

	fmt.Printf("Done evals=%d elapsed=%.1fs decay=%.5f quant=%d best_score=%.4f best_similarity=%.2f%% variant=%s\n",
		evals, elapsed, best.Vals[0], int(best.Vals[1]), bestM.Score, bestM.Similarity*100.0, variant)
}

// evaluator renders the fitted note with candidate parameters and compares
// it to the reference. Several noise seeds are averaged because each pluck
// is a different random excitation.
type evaluator struct {
	catalog   *guitar.Catalog
	note      string
	reference []float64
	base      guitar.Params
	renders   int
	seed      int64
}

func (e *evaluator) evaluate(c candidate) (analysis.Metrics, error) {
	p := applyCandidate(e.base, c)
	if err := p.Validate(); err != nil {
		return analysis.Metrics{}, err
	}
	var sum analysis.Metrics
	for r := 0; r < e.renders; r++ {
		synth := guitar.NewSynthesizer(e.catalog, guitar.NewSeededNoise(e.seed+int64(r)), &p)
		samples, err := synth.Synthesize(guitar.Note(e.note))
		if err != nil {
			return analysis.Metrics{}, err
		}
		m := analysis.Compare(e.reference, analysis.FromInts(samples, float64(p.Quant)), p.SampleRate)
		if r == 0 {
			sum = m
			continue
		}
		sum.Score += m.Score
		sum.Similarity += m.Similarity
		sum.EnvelopeRMSEDB += m.EnvelopeRMSEDB
		sum.SpectralRMSEDB += m.SpectralRMSEDB
		sum.DecayDiffDBPerS += m.DecayDiffDBPerS
		sum.PitchDiffCents += m.PitchDiffCents
	}
	n := float64(e.renders)
	sum.Score /= n
	sum.Similarity /= n
	sum.EnvelopeRMSEDB /= n
	sum.SpectralRMSEDB /= n
	sum.DecayDiffDBPerS /= n
	sum.PitchDiffCents /= n
	return sum, nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
