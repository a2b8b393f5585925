package main

import (
	"github.com/cwbudde/algo-guitar/guitar"
	"github.com/cwbudde/algo-guitar/preset"
	"github.com/spf13/cobra"
)

var (
	presetPath string
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:   "guitar",
	Short: "Karplus-Strong plucked string synthesizer",
	Long: `Renders the 13-key guitar keyboard and the demonstration song with the
Karplus-Strong algorithm, serves them to a browser, and reports pitch analysis.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&presetPath, "preset", "", "preset JSON file (defaults are used when empty)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "noise seed; 0 keeps the preset seed or seeds from the clock")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func loadPreset() (*preset.Preset, error) {
	p := preset.Default()
	if presetPath != "" {
		loaded, err := preset.LoadJSON(presetPath)
		if err != nil {
			return nil, err
		}
		p = loaded
	}
	if seed != 0 {
		s := seed
		p.Seed = &s
	}
	return p, nil
}

func newSynthesizer() (*guitar.Synthesizer, error) {
	p, err := loadPreset()
	if err != nil {
		return nil, err
	}
	return guitar.NewSynthesizer(guitar.NewCatalog(), p.Noise(), p.Params), nil
}
