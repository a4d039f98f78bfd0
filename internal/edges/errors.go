package edges

import (
	"errors"
	"fmt"
)

// ErrDecode classifies every decode failure for errors.Is.
var ErrDecode = errors.New("decode failed")

// DecodeReason is a coarse category for why input bytes were rejected.
type DecodeReason string

const (
	ReasonEmpty       DecodeReason = "empty_input"
	ReasonUnsupported DecodeReason = "unsupported_format"
	ReasonZeroSize    DecodeReason = "zero_size"
)

// DecodeError is the only failure surfaced to callers of the pipeline: the
// bytes were empty or not a raster image.
type DecodeError struct {
	Backend string
	Reason  DecodeReason
	Err     error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("decode image: %s", e.Reason)
	if e.Backend != "" {
		base += fmt.Sprintf(" (backend=%s)", e.Backend)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// IsDecodeError reports whether err carries a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// NewDecodeError builds a DecodeError for backend.
func NewDecodeError(backend string, reason DecodeReason, err error) *DecodeError {
	return &DecodeError{Backend: backend, Reason: reason, Err: err}
}
