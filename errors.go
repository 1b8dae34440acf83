package bragi

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated      = errors.New("bragi: truncated data")
	ErrHeadOverflow   = errors.New("bragi: head exceeds head size")
	ErrTailTooLarge   = errors.New("bragi: tail exceeds 4 GiB")
	ErrTailOverLimit  = errors.New("bragi: tail exceeds frame limit")
	ErrBufferOverflow = errors.New("bragi: write past buffer capacity")
	ErrInvalidSeek    = errors.New("bragi: invalid seek offset")
	ErrUnknownMessage = errors.New("bragi: unknown message id")
	ErrUnknownTag     = errors.New("bragi: unknown tag")
)

// InvalidEncodingError reports bytes that are present but do not decode:
// invalid UTF-8 text or an integer too wide for its field.
type InvalidEncodingError struct {
	Offset int64
	Reason string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("bragi: invalid encoding at offset %d: %s", e.Offset, e.Reason)
}

// UnknownDiscriminantError carries the raw value of an enum that matched no
// declared variant. Callers may treat it as fatal or keep the raw value as
// an unknown variant.
type UnknownDiscriminantError struct {
	Enum  string
	Value uint64
}

func (e *UnknownDiscriminantError) Error() string {
	return fmt.Sprintf("bragi: unknown %s discriminant: %d", e.Enum, e.Value)
}

// MessageIDError is returned when a head carries a different MESSAGE_ID than
// the type decoding it.
type MessageIDError struct {
	Want uint32
	Got  uint32
}

func (e *MessageIDError) Error() string {
	return fmt.Sprintf("bragi: message id mismatch: got %d want %d", e.Got, e.Want)
}
