package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-guitar/guitar"
)

// File is the JSON schema for synthesis presets. Absent fields keep the
// defaults from guitar.NewDefaultParams.
type File struct {
	NumSamples *int     `json:"num_samples,omitempty"`
	SampleRate *int     `json:"sample_rate,omitempty"`
	Quant      *int     `json:"quant,omitempty"`
	Decay      *float64 `json:"decay,omitempty"`
	Seed       *int64   `json:"seed,omitempty"`
}

// Preset is a loaded preset: parameters plus an optional noise seed.
type Preset struct {
	Params *guitar.Params
	Seed   *int64
}

// Noise returns a seeded noise source when the preset pins a seed and a
// clock-seeded one otherwise.
func (p *Preset) Noise() *guitar.Noise {
	if p == nil || p.Seed == nil {
		return guitar.NewDefaultNoise()
	}
	return guitar.NewSeededNoise(*p.Seed)
}

// Default returns the built-in preset.
func Default() *Preset {
	return &Preset{Params: guitar.NewDefaultParams()}
}

// LoadJSON loads a preset JSON file and applies it on top of default params.
func LoadJSON(path string) (*Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	p := guitar.NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return &Preset{Params: p, Seed: f.Seed}, nil
}

// ApplyFile applies a parsed preset file onto an existing params object.
func ApplyFile(dst *guitar.Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.NumSamples != nil {
		if *f.NumSamples < 1 {
			return fmt.Errorf("num_samples must be >= 1")
		}
		dst.NumSamples = *f.NumSamples
	}
	if f.SampleRate != nil {
		if *f.SampleRate < 1 {
			return fmt.Errorf("sample_rate must be >= 1")
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.Quant != nil {
		if *f.Quant < 1 {
			return fmt.Errorf("quant must be >= 1")
		}
		dst.Quant = *f.Quant
	}
	if f.Decay != nil {
		if *f.Decay <= 0 || *f.Decay > 1 {
			return fmt.Errorf("decay must be in (0,1]")
		}
		dst.Decay = *f.Decay
	}
	return dst.Validate()
}

// FromParams builds a fully populated File from params.
func FromParams(p *guitar.Params, seed *int64) *File {
	numSamples := p.NumSamples
	sampleRate := p.SampleRate
	quant := p.Quant
	decay := p.Decay
	return &File{
		NumSamples: &numSamples,
		SampleRate: &sampleRate,
		Quant:      &quant,
		Decay:      &decay,
		Seed:       seed,
	}
}

// WriteJSON writes params as an indented preset file, creating parent
// directories as needed.
func WriteJSON(path string, p *guitar.Params, seed *int64) error {
	if p == nil {
		return fmt.Errorf("nil params")
	}
	b, err := json.MarshalIndent(FromParams(p, seed), "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
