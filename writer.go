package bragi

import (
	"fmt"
	"io"
)

// Writer is a sequential encoder over an io.Writer. It counts the bytes it
// has emitted; the count is informational and never used for seeking.
type Writer struct {
	w       io.Writer
	offset  int
	scratch [MaxVarintLen]byte
}

// NewWriter returns a Writer whose offset starts at zero.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int { return w.offset }

// WriteBytes writes p verbatim.
func (w *Writer) WriteBytes(p []byte) error {
	n, err := w.w.Write(p)
	w.offset += n
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteInteger writes v as little-endian bytes of its fixed width.
func WriteInteger[T Integer](w *Writer, v T) error {
	return w.WriteBytes(AppendInteger(w.scratch[:0], v))
}

func (w *Writer) WriteUint8(v uint8) error   { return WriteInteger(w, v) }
func (w *Writer) WriteUint16(v uint16) error { return WriteInteger(w, v) }
func (w *Writer) WriteUint32(v uint32) error { return WriteInteger(w, v) }
func (w *Writer) WriteUint64(v uint64) error { return WriteInteger(w, v) }
func (w *Writer) WriteInt8(v int8) error     { return WriteInteger(w, v) }
func (w *Writer) WriteInt16(v int16) error   { return WriteInteger(w, v) }
func (w *Writer) WriteInt32(v int32) error   { return WriteInteger(w, v) }
func (w *Writer) WriteInt64(v int64) error   { return WriteInteger(w, v) }

// WriteUint writes a pointer-width unsigned integer as 8 bytes.
func (w *Writer) WriteUint(v uint) error { return WriteInteger(w, v) }

// WriteInt writes a pointer-width signed integer as 8 bytes.
func (w *Writer) WriteInt(v int) error { return WriteInteger(w, v) }

// WriteVarint writes v in varint form.
func (w *Writer) WriteVarint(v uint64) error {
	return w.WriteBytes(AppendVarint(w.scratch[:0], v))
}

// WriteString writes the byte length of s as a varint followed by the raw
// bytes of s. There is no terminator.
func (w *Writer) WriteString(s string) error {
	if err := w.WriteVarint(uint64(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return w.WriteBytes([]byte(s))
}

// WriteStruct encodes s in place through its own body encoder.
func (w *Writer) WriteStruct(s Struct) error {
	cw := &countingWriter{w: w.w}
	err := s.EncodeBody(cw)
	w.offset += cw.n
	return err
}

// WritePointer writes a head offset using size bytes, as chosen by
// PointerSize.
func (w *Writer) WritePointer(size int, v uint64) error {
	switch size {
	case 1:
		if v > 0xFF {
			return fmt.Errorf("bragi: pointer %d does not fit in %d byte", v, size)
		}
		return w.WriteUint8(uint8(v))
	case 2:
		if v > 0xFFFF {
			return fmt.Errorf("bragi: pointer %d does not fit in %d bytes", v, size)
		}
		return w.WriteUint16(uint16(v))
	case 4:
		if v > 0xFFFFFFFF {
			return fmt.Errorf("bragi: pointer %d does not fit in %d bytes", v, size)
		}
		return w.WriteUint32(uint32(v))
	case 8:
		return w.WriteUint64(v)
	default:
		return fmt.Errorf("bragi: invalid pointer size %d", size)
	}
}

// WriteTag opens an optional member inside a tags block.
func (w *Writer) WriteTag(tag uint64) error {
	if tag == 0 {
		return fmt.Errorf("bragi: tag 0 is reserved for the block terminator")
	}
	return w.WriteVarint(tag)
}

// EndTags terminates a tags block.
func (w *Writer) EndTags() error {
	return w.WriteVarint(0)
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// PointerSize returns the width of the offsets a part uses to reach its
// dynamic members: the smallest width that can address headSize bytes for
// a head, and 8 bytes for a tail (headSize <= 0).
func PointerSize(headSize int) int {
	switch {
	case headSize <= 0:
		return 8
	case headSize <= 0xFF:
		return 1
	case headSize <= 0xFFFF:
		return 2
	case uint64(headSize) <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}

// SizeOfString returns the encoded length of s.
func SizeOfString(s string) int {
	return SizeOfVarint(uint64(len(s))) + len(s)
}

// SizeOfBytes returns the encoded length of a varint-prefixed byte array.
func SizeOfBytes(b []byte) int {
	return SizeOfVarint(uint64(len(b))) + len(b)
}
