package bragi

import (
	"bytes"
	"io"
	"math"
)

// PreambleSize is the length of the preamble at the start of every head.
const PreambleSize = 8

// Preamble is the message id and tail length that open every head. It is
// enough to route a message before decoding it.
type Preamble struct {
	id       uint32
	tailSize uint32
}

// NewPreamble builds the preamble for a message id and tail length.
func NewPreamble(id, tailSize uint32) Preamble {
	return Preamble{id: id, tailSize: tailSize}
}

// ID returns the MESSAGE_ID of the message.
func (p Preamble) ID() uint32 { return p.id }

// TailSize returns the byte length of the encoded tail.
func (p Preamble) TailSize() uint32 { return p.tailSize }

// WritePreamble writes the 8-byte preamble to w.
func WritePreamble(w io.Writer, p Preamble) error {
	wr := NewWriter(w)
	if err := wr.WriteUint32(p.id); err != nil {
		return err
	}
	return wr.WriteUint32(p.tailSize)
}

// ReadPreamble reads the preamble at the current position of r and seeks
// back, leaving r where it was.
func ReadPreamble(r io.ReadSeeker) (Preamble, error) {
	rd := NewReader(r)
	start, err := rd.Offset()
	if err != nil {
		return Preamble{}, err
	}
	p, readErr := readPreamble(rd)
	if _, err := rd.Seek(start); err != nil {
		return Preamble{}, err
	}
	if readErr != nil {
		return Preamble{}, readErr
	}
	return p, nil
}

// PreambleFromBytes reads the preamble from the front of a head buffer.
func PreambleFromBytes(head []byte) (Preamble, error) {
	return ReadPreamble(bytes.NewReader(head))
}

func readPreamble(rd *Reader) (Preamble, error) {
	id, err := rd.ReadUint32()
	if err != nil {
		return Preamble{}, err
	}
	tail, err := rd.ReadUint32()
	if err != nil {
		return Preamble{}, err
	}
	return Preamble{id: id, tailSize: tail}, nil
}

// EncodeHeadPreamble writes the preamble of m. Generated EncodeHead
// implementations call it before their head fields.
func EncodeHeadPreamble(w *Writer, m Message) error {
	tail := m.SizeOfTail()
	if tail < 0 || uint64(tail) > math.MaxUint32 {
		return ErrTailTooLarge
	}
	if err := w.WriteUint32(m.MessageID()); err != nil {
		return err
	}
	return w.WriteUint32(uint32(tail))
}

// DecodeHeadPreamble consumes the preamble and checks it names id.
func DecodeHeadPreamble(r *Reader, id uint32) (Preamble, error) {
	p, err := readPreamble(r)
	if err != nil {
		return Preamble{}, err
	}
	if p.id != id {
		return Preamble{}, &MessageIDError{Want: id, Got: p.id}
	}
	return p, nil
}
