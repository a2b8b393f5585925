package guitar

import "errors"

var (
	// ErrUnknownNote is returned when a note name is not in the catalog.
	ErrUnknownNote = errors.New("unknown note")
	// ErrUnknownKey is returned when a key label is not bound to a note.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidDelay is returned when sample_rate/frequency rounds down below one sample.
	ErrInvalidDelay = errors.New("invalid delay length")
	// ErrInsufficientSamples is returned when num_samples is shorter than the delay line.
	ErrInsufficientSamples = errors.New("insufficient samples")
	// ErrLengthMismatch is returned when chord components differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrInvalidParams is returned by Params.Validate.
	ErrInvalidParams = errors.New("invalid params")
)
