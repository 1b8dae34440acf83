package bragi

import (
	"encoding/binary"
	"reflect"
	"unsafe"
)

// Integer is the set of fixed-width integers the primitive codec handles.
// Pointer-width kinds are always carried as 8 bytes on the wire so 32-bit
// and 64-bit peers agree.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Unsigned is the subset of Integer usable as bitfield storage.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// SizeOf returns the wire width of T in bytes. Types whose underlying kind
// is int, uint or uintptr take 8 bytes whatever the host word size.
func SizeOf[T Integer]() int {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return 8
	}
	var v T
	return int(unsafe.Sizeof(v))
}

func signed[T Integer]() bool {
	var zero T
	return zero-1 < zero
}

// AppendInteger appends the little-endian encoding of v to dst.
func AppendInteger[T Integer](dst []byte, v T) []byte {
	switch SizeOf[T]() {
	case 1:
		return append(dst, byte(v))
	case 2:
		return binary.LittleEndian.AppendUint16(dst, uint16(v))
	case 4:
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	}
}

// DecodeInteger reads a T from the front of b. An 8-byte value that does
// not fit a narrower host int, uint or uintptr is an *InvalidEncodingError.
func DecodeInteger[T Integer](b []byte) (T, error) {
	n := SizeOf[T]()
	if len(b) < n {
		return 0, ErrTruncated
	}
	switch n {
	case 1:
		return T(b[0]), nil
	case 2:
		return T(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return T(binary.LittleEndian.Uint32(b)), nil
	default:
		return narrow[T](binary.LittleEndian.Uint64(b))
	}
}

// narrow converts the 64-bit wire value u to T, sign-extending for signed
// kinds, and fails when the value does not survive the conversion.
func narrow[T Integer](u uint64) (T, error) {
	if signed[T]() {
		v := T(int64(u))
		if int64(v) != int64(u) {
			return 0, &InvalidEncodingError{Reason: "integer overflows host width"}
		}
		return v, nil
	}
	v := T(u)
	if uint64(v) != u {
		return 0, &InvalidEncodingError{Reason: "integer overflows host width"}
	}
	return v, nil
}
