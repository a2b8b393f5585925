package guitar

// Playable is one item of a song: either a Note to synthesize or a Buffer of
// already quantized samples (typically a mixed chord).
type Playable interface {
	playable()
}

// Note is a catalog note name such as "C", "F#" or "high_C".
type Note string

// Buffer is a precomputed sample sequence. Synthesizing a Buffer returns it unchanged.
type Buffer []int

func (Note) playable()   {}
func (Buffer) playable() {}

// Notes converts names into Playables.
func Notes(names ...string) []Playable {
	out := make([]Playable, len(names))
	for i, n := range names {
		out[i] = Note(n)
	}
	return out
}
