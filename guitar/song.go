package guitar

import "fmt"

// Sequence resolves each item to its own sample sequence, in order. Items are
// meant to be played one after another and are never mixed together. The
// first failing item fails the whole song.
func (s *Synthesizer) Sequence(items []Playable) ([][]int, error) {
	song := make([][]int, 0, len(items))
	for i, item := range items {
		samples, err := s.Synthesize(item)
		if err != nil {
			return nil, fmt.Errorf("song item %d: %w", i, err)
		}
		song = append(song, samples)
	}
	return song, nil
}
