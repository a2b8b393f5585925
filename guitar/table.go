package guitar

import (
	"encoding/json"
	"fmt"
)

// KeyString is one playable key: its label, note name and rendered samples.
// It encodes to JSON as the triple [key, note, samples].
type KeyString struct {
	Key     string
	Note    string
	Samples []int
}

// MarshalJSON implements json.Marshaler.
func (k KeyString) MarshalJSON() ([]byte, error) {
	samples := k.Samples
	if samples == nil {
		samples = []int{}
	}
	return json.Marshal([]any{k.Key, k.Note, samples})
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *KeyString) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("key string: expected 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &k.Key); err != nil {
		return fmt.Errorf("key string key: %w", err)
	}
	if err := json.Unmarshal(raw[1], &k.Note); err != nil {
		return fmt.Errorf("key string note: %w", err)
	}
	if err := json.Unmarshal(raw[2], &k.Samples); err != nil {
		return fmt.Errorf("key string samples: %w", err)
	}
	return nil
}

// BuildKeyTable renders every catalog entry in catalog order.
func (s *Synthesizer) BuildKeyTable() ([]KeyString, error) {
	entries := s.catalog.Entries()
	table := make([]KeyString, 0, len(entries))
	for _, e := range entries {
		samples, err := s.Synthesize(Note(e.Note))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}
		table = append(table, KeyString{Key: e.Key, Note: e.Note, Samples: samples})
	}
	return table, nil
}

// DefaultSongItems returns the demonstration song: the opening of
// "Twinkle, Twinkle" with a C major chord in second position.
func (s *Synthesizer) DefaultSongItems() ([]Playable, error) {
	chord, err := s.Chord(Note("C"), Note("E"), Note("G"))
	if err != nil {
		return nil, fmt.Errorf("default song chord: %w", err)
	}
	return []Playable{
		Note("C"),
		chord,
		Note("G"),
		Note("G"),
		Note("A"),
		Note("A"),
		Note("G"),
	}, nil
}

// BuildDefaultSong renders the demonstration song.
func (s *Synthesizer) BuildDefaultSong() ([][]int, error) {
	items, err := s.DefaultSongItems()
	if err != nil {
		return nil, err
	}
	return s.Sequence(items)
}
