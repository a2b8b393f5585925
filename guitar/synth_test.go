package guitar

import (
	"errors"
	"math"
	"testing"
)

func newTestSynth(seed int64) *Synthesizer {
	return NewSynthesizer(NewCatalog(), NewSeededNoise(seed), NewDefaultParams())
}

func TestSynthesizeLengthForAllNotes(t *testing.T) {
	s := newTestSynth(1)
	for _, e := range s.Catalog().Entries() {
		p := *NewDefaultParams()
		got, err := s.Synthesize(Note(e.Note))
		if err != nil {
			t.Fatalf("Synthesize(%s): %v", e.Note, err)
		}
		if len(got) != p.NumSamples {
			t.Fatalf("Synthesize(%s) len = %d, want %d", e.Note, len(got), p.NumSamples)
		}

		delay, err := s.Catalog().DelayLength(e.Note, p.SampleRate)
		if err != nil {
			t.Fatalf("DelayLength(%s): %v", e.Note, err)
		}
		for _, m := range []int{delay, delay + 1, 1234} {
			p.NumSamples = m
			out, err := s.SynthesizeWith(Note(e.Note), p)
			if err != nil {
				t.Fatalf("SynthesizeWith(%s, %d): %v", e.Note, m, err)
			}
			if len(out) != m {
				t.Fatalf("SynthesizeWith(%s, %d) len = %d", e.Note, m, len(out))
			}
		}
	}
}

func TestSynthesizeQuantizedRange(t *testing.T) {
	s := newTestSynth(2)
	p := s.Params()
	half := p.Quant / 2
	for _, note := range []string{"C", "F#", "high_C"} {
		out, err := s.Synthesize(Note(note))
		if err != nil {
			t.Fatalf("Synthesize(%s): %v", note, err)
		}
		for i, v := range out {
			if v < -half || v > half {
				t.Fatalf("%s sample %d = %d outside [-%d, %d]", note, i, v, half, half)
			}
		}
	}
}

func TestSynthesizeMatchesPluckFloor(t *testing.T) {
	a := newTestSynth(77)
	b := newTestSynth(77)
	p := a.Params()
	raw, err := a.Pluck("D", p)
	if err != nil {
		t.Fatalf("Pluck: %v", err)
	}
	ints, err := b.Synthesize(Note("D"))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for i := range raw {
		want := int(math.Floor(raw[i] * float64(p.Quant)))
		if ints[i] != want {
			t.Fatalf("sample %d: got %d want %d (raw %v)", i, ints[i], want, raw[i])
		}
	}
}

func TestSynthesizeBufferPassesThrough(t *testing.T) {
	s := newTestSynth(1)
	in := Buffer{3, -2, 700, 0}
	out, err := s.Synthesize(in)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d changed: %d -> %d", i, in[i], out[i])
		}
	}
	again, err := s.Synthesize(Buffer(out))
	if err != nil || len(again) != len(in) {
		t.Fatalf("second pass: %v", err)
	}
}

func TestSynthesizeErrors(t *testing.T) {
	s := newTestSynth(1)
	if _, err := s.Synthesize(Note("Z")); !errors.Is(err, ErrUnknownNote) {
		t.Fatalf("expected ErrUnknownNote, got %v", err)
	}

	p := s.Params()
	p.SampleRate = 400
	if _, err := s.SynthesizeWith(Note("C"), p); !errors.Is(err, ErrInvalidDelay) {
		t.Fatalf("expected ErrInvalidDelay, got %v", err)
	}

	p = s.Params()
	p.NumSamples = 83
	if _, err := s.SynthesizeWith(Note("C"), p); !errors.Is(err, ErrInsufficientSamples) {
		t.Fatalf("expected ErrInsufficientSamples, got %v", err)
	}

	p = s.Params()
	p.NumSamples = 0
	if _, err := s.SynthesizeWith(Note("C"), p); !errors.Is(err, ErrInsufficientSamples) {
		t.Fatalf("expected ErrInsufficientSamples for zero samples, got %v", err)
	}

	p = s.Params()
	p.SampleRate = 0
	if _, err := s.SynthesizeWith(Note("C"), p); !errors.Is(err, ErrInvalidDelay) {
		t.Fatalf("expected ErrInvalidDelay for zero sample rate, got %v", err)
	}

	p = s.Params()
	p.SampleRate = -44100
	if _, err := s.SynthesizeWith(Note("C"), p); !errors.Is(err, ErrInvalidDelay) {
		t.Fatalf("expected ErrInvalidDelay for negative sample rate, got %v", err)
	}

	p = s.Params()
	p.Quant = 0
	if _, err := s.SynthesizeWith(Note("C"), p); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestSynthesizeSeededIsReproducible(t *testing.T) {
	a, err := newTestSynth(10).Synthesize(Note("A"))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	b, err := newTestSynth(10).Synthesize(Note("A"))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		ok     bool
	}{
		{"defaults", func(p *Params) {}, true},
		{"zero samples", func(p *Params) { p.NumSamples = 0 }, false},
		{"zero rate", func(p *Params) { p.SampleRate = 0 }, false},
		{"negative quant", func(p *Params) { p.Quant = -1 }, false},
		{"decay above one", func(p *Params) { p.Decay = 1.01 }, false},
		{"zero decay", func(p *Params) { p.Decay = 0 }, false},
		{"lossless", func(p *Params) { p.Decay = 1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewDefaultParams()
			tt.mutate(p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}
