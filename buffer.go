package bragi

// FixedBuffer is an io.Writer over a preallocated slice that refuses to
// grow. Bytes past the last write keep whatever the slice held, zero for a
// fresh buffer.
type FixedBuffer struct {
	buf []byte
	off int
}

// NewFixedBuffer returns a zero-filled buffer of exactly size bytes.
func NewFixedBuffer(size int) *FixedBuffer {
	return &FixedBuffer{buf: make([]byte, size)}
}

// Write copies p at the current offset. A write that does not fit is
// rejected whole with ErrBufferOverflow.
func (b *FixedBuffer) Write(p []byte) (int, error) {
	if len(p) > len(b.buf)-b.off {
		return 0, ErrBufferOverflow
	}
	n := copy(b.buf[b.off:], p)
	b.off += n
	return n, nil
}

// Len reports how many bytes have been written.
func (b *FixedBuffer) Len() int { return b.off }

// Cap reports the fixed capacity.
func (b *FixedBuffer) Cap() int { return len(b.buf) }

// Bytes returns the whole buffer, including the unwritten suffix.
func (b *FixedBuffer) Bytes() []byte { return b.buf }
