package guitar

import "fmt"

// Mix synthesizes three items and sums them sample by sample. The sum is not
// normalized or clipped, so a chord can reach three times the single-note range.
func (s *Synthesizer) Mix(a, b, c Playable) ([]int, error) {
	bufs := make([][]int, 0, 3)
	for i, item := range [...]Playable{a, b, c} {
		samples, err := s.Synthesize(item)
		if err != nil {
			return nil, fmt.Errorf("chord voice %d: %w", i, err)
		}
		bufs = append(bufs, samples)
	}
	return MixBuffers(bufs...)
}

// Chord is Mix wrapped as a Playable so it can be placed in a song.
func (s *Synthesizer) Chord(a, b, c Playable) (Buffer, error) {
	mixed, err := s.Mix(a, b, c)
	if err != nil {
		return nil, err
	}
	return Buffer(mixed), nil
}

// MixBuffers returns the elementwise sum of equally long buffers.
func MixBuffers(bufs ...[]int) ([]int, error) {
	if len(bufs) == 0 {
		return nil, nil
	}
	n := len(bufs[0])
	for i, b := range bufs[1:] {
		if len(b) != n {
			return nil, fmt.Errorf("%w: voice %d has %d samples, voice 0 has %d", ErrLengthMismatch, i+1, len(b), n)
		}
	}
	out := make([]int, n)
	for _, b := range bufs {
		for i, v := range b {
			out[i] += v
		}
	}
	return out, nil
}
