package bragi

import (
	"encoding/binary"
	"math/bits"
)

// MaxVarintLen is the longest varint encoding in bytes.
const MaxVarintLen = 9

// varintDataBits is the largest magnitude that still fits the prefixed
// forms; anything wider uses the 9-byte escape.
const varintDataBits = 56

func varintDataWidth(v uint64) int {
	return 64 - bits.LeadingZeros64(v|1)
}

// SizeOfVarint returns the encoded length of v without encoding it.
func SizeOfVarint(v uint64) int {
	dataBits := varintDataWidth(v)
	if dataBits > varintDataBits {
		return MaxVarintLen
	}
	return 1 + (dataBits-1)/7
}

// AppendVarint appends the varint encoding of v to dst.
//
// Values of up to 56 significant bits are stored as (2v+1) << (L-1) in L
// little-endian bytes, so the lowest set bit of the first byte gives L.
// Wider values are a zero byte followed by the raw 8 bytes.
func AppendVarint(dst []byte, v uint64) []byte {
	n := SizeOfVarint(v)
	if n == MaxVarintLen {
		dst = append(dst, 0)
		return binary.LittleEndian.AppendUint64(dst, v)
	}
	x := (2*v + 1) << (n - 1)
	for i := 0; i < n; i++ {
		dst = append(dst, byte(x>>(8*i)))
	}
	return dst
}

// EncodeVarint returns the varint encoding of v.
func EncodeVarint(v uint64) []byte {
	return AppendVarint(make([]byte, 0, SizeOfVarint(v)), v)
}

// varintLen returns the total encoded length announced by a first byte.
func varintLen(first byte) int {
	if first == 0 {
		return MaxVarintLen
	}
	return bits.TrailingZeros8(first) + 1
}

// DecodeVarint decodes a varint from the front of b and returns the value
// and the number of bytes consumed.
func DecodeVarint(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrTruncated
	}
	n := varintLen(b[0])
	if len(b) < n {
		return 0, 0, ErrTruncated
	}
	return varintValue(b[:n]), n, nil
}

// varintValue decodes a complete encoding whose length matches its first byte.
func varintValue(b []byte) uint64 {
	n := len(b)
	if n == MaxVarintLen {
		return binary.LittleEndian.Uint64(b[1:])
	}
	var x uint64
	for i := n - 1; i >= 0; i-- {
		x = x<<8 | uint64(b[i])
	}
	return x >> n
}
