package bragi

import "strings"

// LookupEnum maps a raw value back to a closed enum. Values outside known
// come back with an *UnknownDiscriminantError carrying the raw value, so a
// decoder can keep going and let its caller decide.
func LookupEnum[E Integer](name string, v E, known ...E) (E, error) {
	for _, k := range known {
		if k == v {
			return v, nil
		}
	}
	return v, &UnknownDiscriminantError{Enum: name, Value: uint64(v)}
}

// NoFlags is how an empty Bitfield renders.
const NoFlags = "NONE"

// Bitfield is a set of flags stored in T. Named flags are declared by
// generated code with Flag; arbitrary bit patterns only come from
// UncheckedBitfield.
type Bitfield[T Unsigned] struct {
	bits T
}

// FlagName pairs a named flag with its rendering.
type FlagName[T Unsigned] struct {
	Flag Bitfield[T]
	Name string
}

// EmptyBitfield returns a bitfield with no flags set.
func EmptyBitfield[T Unsigned]() Bitfield[T] {
	return Bitfield[T]{}
}

// Flag declares a named flag. It is meant for the constants of generated
// code, not for decoding.
func Flag[T Unsigned](bits T) Bitfield[T] {
	return Bitfield[T]{bits: bits}
}

// UncheckedBitfield wraps bits without checking them against any declared
// flag. Decoders use it to keep bits from newer schemas intact.
func UncheckedBitfield[T Unsigned](bits T) Bitfield[T] {
	return Bitfield[T]{bits: bits}
}

func (b Bitfield[T]) Bits() T { return b.bits }

func (b Bitfield[T]) IsEmpty() bool { return b.bits == 0 }

// Has reports whether every bit of other is set in b.
func (b Bitfield[T]) Has(other Bitfield[T]) bool {
	return b.bits&other.bits == other.bits
}

func (b Bitfield[T]) Set(other Bitfield[T]) Bitfield[T] {
	return Bitfield[T]{bits: b.bits | other.bits}
}

func (b Bitfield[T]) Clear(other Bitfield[T]) Bitfield[T] {
	return Bitfield[T]{bits: b.bits &^ other.bits}
}

func (b Bitfield[T]) Union(other Bitfield[T]) Bitfield[T] {
	return Bitfield[T]{bits: b.bits | other.bits}
}

func (b Bitfield[T]) Intersect(other Bitfield[T]) Bitfield[T] {
	return Bitfield[T]{bits: b.bits & other.bits}
}

func (b Bitfield[T]) SymmetricDifference(other Bitfield[T]) Bitfield[T] {
	return Bitfield[T]{bits: b.bits ^ other.bits}
}

func (b Bitfield[T]) Complement() Bitfield[T] {
	return Bitfield[T]{bits: ^b.bits}
}

// Format joins the names of the set flags with " | " in the order given, or
// returns NoFlags when none of them is set.
func (b Bitfield[T]) Format(names []FlagName[T]) string {
	var sb strings.Builder
	for _, n := range names {
		if n.Flag.bits == 0 || !b.Has(n.Flag) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(n.Name)
	}
	if sb.Len() == 0 {
		return NoFlags
	}
	return sb.String()
}

// WriteBitfield writes the bits of b as a varint.
func WriteBitfield[T Unsigned](w *Writer, b Bitfield[T]) error {
	return w.WriteVarint(uint64(b.bits))
}

// ReadBitfield reads a varint bitfield. Unknown bits are kept; bits past
// the width of T are an *InvalidEncodingError.
func ReadBitfield[T Unsigned](r *Reader) (Bitfield[T], error) {
	v, err := ReadVarintAs[T](r)
	if err != nil {
		return Bitfield[T]{}, err
	}
	return UncheckedBitfield(v), nil
}

// SizeOfBitfield returns the encoded length of b.
func SizeOfBitfield[T Unsigned](b Bitfield[T]) int {
	return SizeOfVarint(uint64(b.bits))
}
