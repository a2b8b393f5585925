package guitar

import "fmt"

// Params holds the synthesis settings shared by every note of a render.
type Params struct {
	NumSamples int
	SampleRate int
	Quant      int
	Decay      float64
}

// NewDefaultParams creates default parameters.
func NewDefaultParams() *Params {
	return &Params{
		NumSamples: 30000,
		SampleRate: 44100,
		Quant:      256,
		Decay:      DefaultDecay,
	}
}

// Validate checks that the parameters describe a renderable note.
func (p Params) Validate() error {
	if p.NumSamples < 1 {
		return fmt.Errorf("%w: num_samples must be >= 1, got %d", ErrInvalidParams, p.NumSamples)
	}
	if p.SampleRate < 1 {
		return fmt.Errorf("%w: sample_rate must be >= 1, got %d", ErrInvalidParams, p.SampleRate)
	}
	if p.Quant < 1 {
		return fmt.Errorf("%w: quant must be >= 1, got %d", ErrInvalidParams, p.Quant)
	}
	if !(p.Decay > 0 && p.Decay <= 1) {
		return fmt.Errorf("%w: decay must be in (0,1], got %g", ErrInvalidParams, p.Decay)
	}
	return nil
}
