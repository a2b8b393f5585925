package guitar

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness capability consumed by Noise. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Noise generates the white-noise excitation that seeds a string's delay line.
// Draws are serialized, so one Noise can be shared by concurrent synthesizers.
type Noise struct {
	mu  sync.Mutex
	src Source
}

// NewNoise wraps an injected randomness source.
func NewNoise(src Source) *Noise {
	return &Noise{src: src}
}

// NewSeededNoise returns a deterministic noise source.
func NewSeededNoise(seed int64) *Noise {
	return NewNoise(rand.New(rand.NewSource(seed)))
}

// NewDefaultNoise returns a noise source seeded from the wall clock.
func NewDefaultNoise() *Noise {
	return NewSeededNoise(time.Now().UnixNano())
}

// Generate returns n samples uniformly distributed in [-0.5, 0.5).
func (n *Noise) Generate(count int) []float64 {
	if count <= 0 {
		return nil
	}
	out := make([]float64, count)
	n.mu.Lock()
	for i := range out {
		out[i] = n.src.Float64() - 0.5
	}
	n.mu.Unlock()
	return out
}
