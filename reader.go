package bragi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// smallRead is the largest length read with a single up-front allocation
// when the source cannot vouch for it.
const smallRead = 64 << 10

// Reader is a decoder over an io.ReadSeeker. Seek and Offset let decoders
// follow head pointers and return, and let callers peek a preamble without
// consuming it.
type Reader struct {
	r       io.ReadSeeker
	scratch [MaxVarintLen]byte
}

// NewReader returns a Reader positioned wherever r currently is.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{r: r}
}

// Offset returns the current absolute position of the source.
func (r *Reader) Offset() (int64, error) {
	return r.r.Seek(0, io.SeekCurrent)
}

// Seek moves to the absolute position off.
func (r *Reader) Seek(off int64) (int64, error) {
	if off < 0 {
		return 0, ErrInvalidSeek
	}
	return r.r.Seek(off, io.SeekStart)
}

// ReadFull fills p or fails with ErrTruncated.
func (r *Reader) ReadFull(p []byte) error {
	if _, err := io.ReadFull(r.r, p); err != nil {
		return truncated(err)
	}
	return nil
}

// ReadInteger reads a little-endian T of its fixed width.
func ReadInteger[T Integer](r *Reader) (T, error) {
	b := r.scratch[:SizeOf[T]()]
	if err := r.ReadFull(b); err != nil {
		return 0, err
	}
	v, err := DecodeInteger[T](b)
	var encErr *InvalidEncodingError
	if errors.As(err, &encErr) {
		if off, offErr := r.Offset(); offErr == nil {
			encErr.Offset = off - int64(len(b))
		}
	}
	return v, err
}

func (r *Reader) ReadUint8() (uint8, error)   { return ReadInteger[uint8](r) }
func (r *Reader) ReadUint16() (uint16, error) { return ReadInteger[uint16](r) }
func (r *Reader) ReadUint32() (uint32, error) { return ReadInteger[uint32](r) }
func (r *Reader) ReadUint64() (uint64, error) { return ReadInteger[uint64](r) }
func (r *Reader) ReadInt8() (int8, error)     { return ReadInteger[int8](r) }
func (r *Reader) ReadInt16() (int16, error)   { return ReadInteger[int16](r) }
func (r *Reader) ReadInt32() (int32, error)   { return ReadInteger[int32](r) }
func (r *Reader) ReadInt64() (int64, error)   { return ReadInteger[int64](r) }

// ReadUint reads a pointer-width unsigned integer carried as 8 bytes.
func (r *Reader) ReadUint() (uint, error) { return ReadInteger[uint](r) }

// ReadInt reads a pointer-width signed integer carried as 8 bytes.
func (r *Reader) ReadInt() (int, error) { return ReadInteger[int](r) }

// ReadVarint reads one varint, taking its length from the first byte.
func (r *Reader) ReadVarint() (uint64, error) {
	b := r.scratch[:]
	if err := r.ReadFull(b[:1]); err != nil {
		return 0, err
	}
	n := varintLen(b[0])
	if n > 1 {
		if err := r.ReadFull(b[1:n]); err != nil {
			return 0, err
		}
	}
	return varintValue(b[:n]), nil
}

// ReadVarintAs reads a varint into T and rejects values T cannot hold.
func ReadVarintAs[T Integer](r *Reader) (T, error) {
	start, err := r.Offset()
	if err != nil {
		return 0, err
	}
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	out := T(v)
	if out < 0 || uint64(out) != v {
		return 0, &InvalidEncodingError{Offset: start, Reason: fmt.Sprintf("varint %d overflows %d-byte field", v, SizeOf[T]())}
	}
	return out, nil
}

// ReadBytes reads a varint length followed by that many raw bytes.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	if err := r.checkRemaining(n); err != nil {
		return nil, err
	}
	return readExact(r.r, n)
}

// ReadString reads a length-prefixed string and rejects invalid UTF-8.
func (r *Reader) ReadString() (string, error) {
	start, err := r.Offset()
	if err != nil {
		return "", err
	}
	buf, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", &InvalidEncodingError{Offset: start, Reason: "string is not valid UTF-8"}
	}
	return string(buf), nil
}

// ReadStruct decodes s in place through its own body decoder.
func (r *Reader) ReadStruct(s Struct) error {
	return s.DecodeBody(r.r)
}

// ReadPointer reads a head offset of size bytes.
func (r *Reader) ReadPointer(size int) (uint64, error) {
	switch size {
	case 1:
		v, err := r.ReadUint8()
		return uint64(v), err
	case 2:
		v, err := r.ReadUint16()
		return uint64(v), err
	case 4:
		v, err := r.ReadUint32()
		return uint64(v), err
	case 8:
		return r.ReadUint64()
	default:
		return 0, fmt.Errorf("bragi: invalid pointer size %d", size)
	}
}

// Follow reads a pointer of size bytes, runs decode at the target offset
// and returns to the byte after the pointer.
func (r *Reader) Follow(size int, decode func(*Reader) error) error {
	ptr, err := r.ReadPointer(size)
	if err != nil {
		return err
	}
	back, err := r.Offset()
	if err != nil {
		return err
	}
	if _, err := r.Seek(int64(ptr)); err != nil {
		return err
	}
	if err := decode(r); err != nil {
		return err
	}
	_, err = r.Seek(back)
	return err
}

// ReadTag returns the next tag of a tags block; 0 marks the end.
func (r *Reader) ReadTag() (uint64, error) {
	return r.ReadVarint()
}

// checkRemaining rejects a declared length longer than what a sized
// source has left. Unsized sources are left to readExact.
func (r *Reader) checkRemaining(n uint64) error {
	sized, ok := r.r.(interface{ Size() int64 })
	if !ok {
		return nil
	}
	cur, err := r.Offset()
	if err != nil {
		return err
	}
	if remaining := sized.Size() - cur; remaining < 0 || n > uint64(remaining) {
		return ErrTruncated
	}
	return nil
}

// readExact reads n bytes from r. Lengths above smallRead grow the buffer
// only as data arrives, so an untrusted n cannot force a large allocation.
func readExact(r io.Reader, n uint64) ([]byte, error) {
	if n <= smallRead {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, truncated(err)
		}
		return buf, nil
	}
	if n > math.MaxInt64 {
		return nil, ErrTruncated
	}
	var buf bytes.Buffer
	buf.Grow(smallRead)
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		return nil, truncated(err)
	}
	return buf.Bytes(), nil
}
