package guitar

import "fmt"

// Synthesizer renders Playables into quantized sample sequences.
type Synthesizer struct {
	catalog *Catalog
	noise   *Noise
	params  Params
}

// NewSynthesizer creates a synthesizer. A nil noise source uses NewDefaultNoise
// and nil params use NewDefaultParams.
func NewSynthesizer(catalog *Catalog, noise *Noise, params *Params) *Synthesizer {
	if catalog == nil {
		catalog = NewCatalog()
	}
	if noise == nil {
		noise = NewDefaultNoise()
	}
	if params == nil {
		params = NewDefaultParams()
	}
	return &Synthesizer{
		catalog: catalog,
		noise:   noise,
		params:  *params,
	}
}

// Catalog returns the catalog used for frequency lookups.
func (s *Synthesizer) Catalog() *Catalog {
	return s.catalog
}

// Params returns a copy of the synthesizer's default parameters.
func (s *Synthesizer) Params() Params {
	return s.params
}

// Synthesize renders item with the synthesizer's parameters.
func (s *Synthesizer) Synthesize(item Playable) ([]int, error) {
	return s.SynthesizeWith(item, s.params)
}

// SynthesizeWith renders item with explicit parameters. Buffers pass through
// unchanged; notes are plucked, extended and quantized to exactly
// p.NumSamples integers.
func (s *Synthesizer) SynthesizeWith(item Playable, p Params) ([]int, error) {
	switch v := item.(type) {
	case Buffer:
		return []int(v), nil
	case Note:
		return s.pluck(string(v), p)
	case nil:
		return nil, fmt.Errorf("%w: nil playable", ErrUnknownNote)
	default:
		return nil, fmt.Errorf("unsupported playable %T", item)
	}
}

// Pluck renders a single note and returns the real-valued samples before
// quantization. Delay and length errors take precedence over
// ErrInvalidParams, so a zero sample rate reports ErrInvalidDelay and a zero
// sample count reports ErrInsufficientSamples.
func (s *Synthesizer) Pluck(note string, p Params) ([]float64, error) {
	delay, err := s.catalog.DelayLength(note, p.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("note %q: %w", note, err)
	}
	if p.NumSamples < delay {
		return nil, fmt.Errorf("%w: note %q needs at least %d samples, got %d", ErrInsufficientSamples, note, delay, p.NumSamples)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seed := s.noise.Generate(delay)
	return Filter{Decay: p.Decay}.Extend(seed, p.NumSamples-delay), nil
}

func (s *Synthesizer) pluck(note string, p Params) ([]int, error) {
	samples, err := s.Pluck(note, p)
	if err != nil {
		return nil, err
	}
	return quantize(samples, p.Quant), nil
}
