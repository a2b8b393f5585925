package guitar

import (
	"fmt"
	"math"
)

const (
	// A4 is the tuning reference in Hz.
	A4 = 440.0
)

// BaseC is the frequency of the catalog's first entry: the C three semitones above A4.
var BaseC = A4 * math.Pow(2, 3.0/12.0)

// Entry binds a keyboard key to a note and its equal-tempered frequency.
type Entry struct {
	Key       string  `json:"key"`
	Note      string  `json:"note"`
	Index     int     `json:"index"`
	Frequency float64 `json:"frequency"`
}

var keyboardLayout = [...][2]string{
	{"a", "C"},
	{"w", "C#"},
	{"s", "D"},
	{"e", "D#"},
	{"d", "E"},
	{"f", "F"},
	{"t", "F#"},
	{"g", "G"},
	{"y", "G#"},
	{"h", "A"},
	{"u", "A#"},
	{"j", "B"},
	{"k", "high_C"},
}

// Catalog is the immutable key/note/frequency table. Build it once with
// NewCatalog and share the pointer; it is never mutated afterwards.
type Catalog struct {
	entries []Entry
	byNote  map[string]int
	byKey   map[string]int
}

// NewCatalog builds the 13-entry chromatic keyboard starting at BaseC.
func NewCatalog() *Catalog {
	c := &Catalog{
		entries: make([]Entry, len(keyboardLayout)),
		byNote:  make(map[string]int, len(keyboardLayout)),
		byKey:   make(map[string]int, len(keyboardLayout)),
	}
	for i, kn := range keyboardLayout {
		c.entries[i] = Entry{
			Key:       kn[0],
			Note:      kn[1],
			Index:     i,
			Frequency: BaseC * math.Pow(2, float64(i)/12.0),
		}
		c.byKey[kn[0]] = i
		c.byNote[kn[1]] = i
	}
	return c
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// FrequencyOf returns the frequency of note in Hz.
func (c *Catalog) FrequencyOf(note string) (float64, error) {
	i, ok := c.byNote[note]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, note)
	}
	return c.entries[i].Frequency, nil
}

// KeyFor returns the keyboard key bound to note.
func (c *Catalog) KeyFor(note string) (string, error) {
	i, ok := c.byNote[note]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNote, note)
	}
	return c.entries[i].Key, nil
}

// NoteForKey returns the note bound to a keyboard key.
func (c *Catalog) NoteForKey(key string) (string, error) {
	i, ok := c.byKey[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return c.entries[i].Note, nil
}

// DelayLength returns floor(sampleRate/frequency) for note.
func (c *Catalog) DelayLength(note string, sampleRate int) (int, error) {
	f, err := c.FrequencyOf(note)
	if err != nil {
		return 0, err
	}
	return delayForFrequency(f, sampleRate)
}

func delayForFrequency(freq float64, sampleRate int) (int, error) {
	if freq <= 0 || !isFinite(freq) {
		return 0, fmt.Errorf("%w: frequency %g Hz", ErrInvalidDelay, freq)
	}
	d := int(math.Floor(float64(sampleRate) / freq))
	if d < 1 {
		return 0, fmt.Errorf("%w: %d samples for %.2f Hz at %d Hz", ErrInvalidDelay, d, freq, sampleRate)
	}
	return d, nil
}
