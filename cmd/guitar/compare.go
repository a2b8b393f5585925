package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-guitar/analysis"
	"github.com/cwbudde/algo-guitar/guitar"
	fitcommon "github.com/cwbudde/algo-guitar/internal/fitcommon"
	"github.com/spf13/cobra"
)

var (
	compareReference string
	compareNote      string
	compareJSON      bool
)

func init() {
	compareCmd.Flags().StringVar(&compareReference, "reference", "", "reference WAV path")
	compareCmd.Flags().StringVar(&compareNote, "note", "C", "catalog note to synthesize as the candidate")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print metrics as JSON")
	_ = compareCmd.MarkFlagRequired("reference")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Score a reference recording against a synthesized note",
	RunE: func(cmd *cobra.Command, args []string) error {
		synth, err := newSynthesizer()
		if err != nil {
			return err
		}
		m, err := compareReferenceWAV(synth, compareReference, compareNote)
		if err != nil {
			return err
		}
		if compareJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		}
		fmt.Printf("Reference frames: %d\n", m.ReferenceFrames)
		fmt.Printf("Candidate frames: %d\n", m.CandidateFrames)
		fmt.Printf("Aligned frames:   %d\n", m.AlignedFrames)
		fmt.Printf("Envelope RMSE:    %.1f dB\n", m.EnvelopeRMSEDB)
		fmt.Printf("Spectral RMSE:    %.1f dB\n", m.SpectralRMSEDB)
		fmt.Printf("Decay slopes:     ref=%.1f dB/s  cand=%.1f dB/s\n", m.RefDecayDBPerS, m.CandDecayDBPerS)
		fmt.Printf("Pitch diff:       %+.1f cents\n", m.PitchDiffCents)
		fmt.Printf("Score:            %.4f  (0 best, 1 worst)\n", m.Score)
		fmt.Printf("Similarity:       %.2f%%\n", m.Similarity*100.0)
		return nil
	},
}

func compareReferenceWAV(synth *guitar.Synthesizer, path string, note string) (analysis.Metrics, error) {
	p := synth.Params()
	ref, refSR, err := fitcommon.ReadWAVMono(path)
	if err != nil {
		return analysis.Metrics{}, fmt.Errorf("read reference: %w", err)
	}
	ref, err = fitcommon.ResampleIfNeeded(ref, refSR, p.SampleRate)
	if err != nil {
		return analysis.Metrics{}, fmt.Errorf("resample reference: %w", err)
	}
	samples, err := synth.Synthesize(guitar.Note(note))
	if err != nil {
		return analysis.Metrics{}, err
	}
	return analysis.Compare(ref, analysis.FromInts(samples, float64(p.Quant)), p.SampleRate), nil
}
