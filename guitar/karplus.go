package guitar

// DefaultDecay is the per-step damping applied by the Karplus-Strong loop.
const DefaultDecay = 0.996

// Filter is the Karplus-Strong averaging/decay recurrence. The period of the
// loop is the length of the seed passed to Extend.
type Filter struct {
	Decay float64
}

// NewFilter returns a filter with DefaultDecay.
func NewFilter() Filter {
	return Filter{Decay: DefaultDecay}
}

// Extend appends count samples to a copy of seed. Sample t+len(seed) is
// decay*(buf[t]+buf[t+1])/2, read from the buffer as it grows, so every new
// value depends on the two samples one period back.
func (f Filter) Extend(seed []float64, count int) []float64 {
	if count < 0 {
		count = 0
	}
	buf := make([]float64, len(seed), len(seed)+count)
	copy(buf, seed)
	if len(seed) == 0 {
		return buf
	}
	if len(seed) == 1 {
		// A one-sample loop averages the sample with itself.
		for t := 0; t < count; t++ {
			buf = append(buf, f.Decay*buf[t])
		}
		return buf
	}
	for t := 0; t < count; t++ {
		buf = append(buf, f.Decay*(buf[t]+buf[t+1])/2)
	}
	return buf
}
