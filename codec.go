package bragi

import "io"

// Struct is implemented by nested composite types. A struct has no framing
// of its own: its body is every field in declaration order.
type Struct interface {
	// SizeOfBody returns the exact encoded length for the current field values.
	SizeOfBody() int
	EncodeBody(w io.Writer) error
	DecodeBody(r io.ReadSeeker) error
}

// Message is implemented by top-level schema types.
//
// MessageID and HeadSize return per-type constants. The encoded head is
// always HeadSize bytes and starts with the Preamble; SizeOfHead reports
// how much of it the current values occupy. The tail has no fixed budget
// and its length is recorded in the preamble. Decoding starts from the zero
// value of the type and fills fields in place.
type Message interface {
	MessageID() uint32
	HeadSize() int

	SizeOfHead() int
	SizeOfTail() int

	EncodeHead(w io.Writer) error
	EncodeTail(w io.Writer) error

	DecodeHead(r io.ReadSeeker) error
	DecodeTail(r io.ReadSeeker) error
}

// messagePtr constrains a pointer to M that implements Message, so the
// orchestration functions can allocate the zero value themselves.
type messagePtr[M any] interface {
	*M
	Message
}
