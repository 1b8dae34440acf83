package bragi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// HeadToBytes encodes the head of m into a buffer of exactly HeadSize bytes.
// It is the whole encoding for messages whose tail is always empty.
func HeadToBytes(m Message) ([]byte, error) {
	if m.SizeOfHead() > m.HeadSize() {
		return nil, fmt.Errorf("%w: %d > %d", ErrHeadOverflow, m.SizeOfHead(), m.HeadSize())
	}
	head := NewFixedBuffer(m.HeadSize())
	if err := m.EncodeHead(head); err != nil {
		if errors.Is(err, ErrBufferOverflow) {
			return nil, ErrHeadOverflow
		}
		return nil, err
	}
	return head.Bytes(), nil
}

// TailToBytes encodes the tail of m into a buffer of exactly SizeOfTail bytes.
func TailToBytes(m Message) ([]byte, error) {
	tail := NewFixedBuffer(m.SizeOfTail())
	if err := m.EncodeTail(tail); err != nil {
		return nil, err
	}
	if tail.Len() != tail.Cap() {
		return nil, fmt.Errorf("bragi: tail encoded %d bytes, size reported %d", tail.Len(), tail.Cap())
	}
	return tail.Bytes(), nil
}

// HeadTailToBytes encodes both parts of m.
func HeadTailToBytes(m Message) (head, tail []byte, err error) {
	if head, err = HeadToBytes(m); err != nil {
		return nil, nil, err
	}
	if tail, err = TailToBytes(m); err != nil {
		return nil, nil, err
	}
	return head, tail, nil
}

// ReadHeadOnly decodes a message of type M from its head alone.
func ReadHeadOnly[M any, PM messagePtr[M]](head io.ReadSeeker) (*M, error) {
	msg := new(M)
	if err := PM(msg).DecodeHead(head); err != nil {
		return nil, err
	}
	return msg, nil
}

// ReadHeadTail decodes a message of type M from its head and tail.
func ReadHeadTail[M any, PM messagePtr[M]](head, tail io.ReadSeeker) (*M, error) {
	msg := new(M)
	if err := PM(msg).DecodeHead(head); err != nil {
		return nil, err
	}
	if err := PM(msg).DecodeTail(tail); err != nil {
		return nil, err
	}
	return msg, nil
}

// HeadFromBytes decodes a message of type M from a head buffer.
func HeadFromBytes[M any, PM messagePtr[M]](head []byte) (*M, error) {
	return ReadHeadOnly[M, PM](bytes.NewReader(head))
}

// HeadTailFromBytes decodes a message of type M from head and tail buffers.
func HeadTailFromBytes[M any, PM messagePtr[M]](head, tail []byte) (*M, error) {
	return ReadHeadTail[M, PM](bytes.NewReader(head), bytes.NewReader(tail))
}

// WriteMessage writes the head of m followed directly by its tail.
func WriteMessage(w io.Writer, m Message) error {
	head, tail, err := HeadTailToBytes(m)
	if err != nil {
		return err
	}
	wr := NewWriter(w)
	if err := wr.WriteBytes(head); err != nil {
		return err
	}
	return wr.WriteBytes(tail)
}

// FrameLimits constrains how much ReadFrameLimits accepts from a preamble.
// A zero MaxTailBytes means no limit.
type FrameLimits struct {
	MaxTailBytes uint32
}

func DefaultFrameLimits() FrameLimits {
	return FrameLimits{MaxTailBytes: 8 * 1024 * 1024}
}

// ReadFrame reads one head of headSize bytes and the tail its preamble
// announces from a stream written by WriteMessage. The tail length is not
// trusted for allocation; a stream shorter than announced fails with
// ErrTruncated.
func ReadFrame(r io.Reader, headSize int) (head, tail []byte, err error) {
	return ReadFrameLimits(r, headSize, FrameLimits{})
}

// ReadFrameLimits is ReadFrame with a cap on the announced tail length,
// checked before any tail byte is read.
func ReadFrameLimits(r io.Reader, headSize int, limits FrameLimits) (head, tail []byte, err error) {
	if headSize < PreambleSize {
		return nil, nil, fmt.Errorf("bragi: head size %d smaller than preamble", headSize)
	}
	head = make([]byte, headSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, nil, truncated(err)
	}
	p, err := PreambleFromBytes(head)
	if err != nil {
		return nil, nil, err
	}
	if limits.MaxTailBytes > 0 && p.TailSize() > limits.MaxTailBytes {
		return nil, nil, fmt.Errorf("%w: %d > %d", ErrTailOverLimit, p.TailSize(), limits.MaxTailBytes)
	}
	if tail, err = readExact(r, uint64(p.TailSize())); err != nil {
		return nil, nil, err
	}
	return head, tail, nil
}

// ReadMessage reads and decodes one message of type M from a stream written
// by WriteMessage.
func ReadMessage[M any, PM messagePtr[M]](r io.Reader) (*M, error) {
	var zero M
	head, tail, err := ReadFrame(r, PM(&zero).HeadSize())
	if err != nil {
		return nil, err
	}
	return HeadTailFromBytes[M, PM](head, tail)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
