package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-guitar/guitar"
)

func TestLoadJSONAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	content := `{
  "num_samples": 12000,
  "sample_rate": 48000,
  "decay": 0.99,
  "seed": 7
}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadJSON(presetPath)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if p.Params.NumSamples != 12000 || p.Params.SampleRate != 48000 || p.Params.Decay != 0.99 {
		t.Fatalf("params mismatch: %+v", p.Params)
	}
	if p.Params.Quant != 256 {
		t.Fatalf("quant should keep default, got %d", p.Params.Quant)
	}
	if p.Seed == nil || *p.Seed != 7 {
		t.Fatalf("seed mismatch: %v", p.Seed)
	}
}

func TestLoadJSONRejectsInvalidRanges(t *testing.T) {
	cases := map[string]string{
		"decay":       `{"decay": 1.2}`,
		"quant":       `{"quant": 0}`,
		"num_samples": `{"num_samples": -5}`,
		"sample_rate": `{"sample_rate": 0}`,
		"syntax":      `{"decay":`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			presetPath := filepath.Join(t.TempDir(), "preset.json")
			if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
				t.Fatalf("write preset: %v", err)
			}
			if _, err := LoadJSON(presetPath); err == nil {
				t.Fatalf("expected error for %s", content)
			}
		})
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fitted.json")
	p := guitar.NewDefaultParams()
	p.Decay = 0.985
	p.Quant = 512
	seed := int64(99)
	if err := WriteJSON(path, p, &seed); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if *got.Params != *p {
		t.Fatalf("params mismatch: got %+v want %+v", got.Params, p)
	}
	if got.Seed == nil || *got.Seed != 99 {
		t.Fatalf("seed mismatch: %v", got.Seed)
	}
}

func TestPresetNoiseIsSeeded(t *testing.T) {
	seed := int64(3)
	p := &Preset{Params: guitar.NewDefaultParams(), Seed: &seed}
	a := p.Noise().Generate(16)
	b := p.Noise().Generate(16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded presets should produce identical noise")
		}
	}
	if Default().Noise() == nil {
		t.Fatalf("default preset returned nil noise")
	}
}
