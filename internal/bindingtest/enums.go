package bindingtest

import (
	"fmt"
	"io"

	"github.com/danmuck/bragi"
)

// Foo is a closed enum.
type Foo uint8

const (
	FooA Foo = 1
	FooB Foo = 2
	FooC Foo = 4
	FooD Foo = 5
	FooE Foo = 6
	FooF Foo = 7
)

var fooValues = []Foo{FooA, FooB, FooC, FooD, FooE, FooF}

// FooFromValue returns the Foo for v, or v itself with an
// *bragi.UnknownDiscriminantError when no variant has that value.
func FooFromValue(v uint8) (Foo, error) {
	return bragi.LookupEnum("Foo", Foo(v), fooValues...)
}

func (f Foo) String() string {
	switch f {
	case FooA:
		return "A"
	case FooB:
		return "B"
	case FooC:
		return "C"
	case FooD:
		return "D"
	case FooE:
		return "E"
	case FooF:
		return "F"
	default:
		return fmt.Sprintf("Foo(%d)", uint8(f))
	}
}

// Bar is a constant set; BarD and BarF alias BarB and BarC.
type Bar uint8

const (
	BarA Bar = 1
	BarB Bar = 2
	BarC Bar = 4
	BarD Bar = 2
	BarE Bar = 3
	BarF Bar = 4
)

func (b Bar) Value() uint8 { return uint8(b) }

// Perms is a bitfield.
type Perms struct {
	f bragi.Bitfield[uint32]
}

var (
	PermsRead  = Perms{bragi.Flag[uint32](1 << 0)}
	PermsWrite = Perms{bragi.Flag[uint32](1 << 1)}
	PermsExec  = Perms{bragi.Flag[uint32](1 << 2)}
)

var permsNames = []bragi.FlagName[uint32]{
	{Flag: PermsRead.f, Name: "READ"},
	{Flag: PermsWrite.f, Name: "WRITE"},
	{Flag: PermsExec.f, Name: "EXEC"},
}

func PermsEmpty() Perms { return Perms{} }

// PermsUnchecked wraps raw bits without checking them against the
// declared flags.
func PermsUnchecked(bits uint32) Perms {
	return Perms{bragi.UncheckedBitfield(bits)}
}

func (p Perms) Bits() uint32                      { return p.f.Bits() }
func (p Perms) IsEmpty() bool                     { return p.f.IsEmpty() }
func (p Perms) Has(o Perms) bool                  { return p.f.Has(o.f) }
func (p Perms) Set(o Perms) Perms                 { return Perms{p.f.Set(o.f)} }
func (p Perms) Clear(o Perms) Perms               { return Perms{p.f.Clear(o.f)} }
func (p Perms) Union(o Perms) Perms               { return Perms{p.f.Union(o.f)} }
func (p Perms) Intersect(o Perms) Perms           { return Perms{p.f.Intersect(o.f)} }
func (p Perms) SymmetricDifference(o Perms) Perms { return Perms{p.f.SymmetricDifference(o.f)} }
func (p Perms) Complement() Perms                 { return Perms{p.f.Complement()} }
func (p Perms) String() string                    { return p.f.Format(permsNames) }

const (
	EnumsMessageID uint32 = 6
	EnumsHeadSize         = 128

	enumsPtr       = 1
	enumsHeadFixed = bragi.PreambleSize + 1 + 1 + enumsPtr + 4 + enumsPtr

	enumsTagPerms uint64 = 1
)

type Enums struct {
	foo  Foo
	bar  Bar
	foos []Foo
	bars [4]Bar

	perms    Perms
	hasPerms bool
}

func NewEnums(foo Foo, bar Bar, foos []Foo, bars [4]Bar) Enums {
	return Enums{foo: foo, bar: bar, foos: foos, bars: bars}
}

// Foo returns the decoded foo, or its raw value with an error when it names
// no variant.
func (m *Enums) Foo() (Foo, error)    { return FooFromValue(uint8(m.foo)) }
func (m *Enums) SetFoo(v Foo)         { m.foo = v }
func (m *Enums) Bar() Bar             { return m.bar }
func (m *Enums) SetBar(v Bar)         { m.bar = v }
func (m *Enums) Foos() []Foo          { return m.foos }
func (m *Enums) SetFoos(v []Foo)      { m.foos = v }
func (m *Enums) Bars() [4]Bar         { return m.bars }
func (m *Enums) SetBars(v [4]Bar)     { m.bars = v }
func (m *Enums) Perms() (Perms, bool) { return m.perms, m.hasPerms }
func (m *Enums) SetPerms(v Perms)     { m.perms, m.hasPerms = v, true }

func (m *Enums) MessageID() uint32 { return EnumsMessageID }
func (m *Enums) HeadSize() int     { return EnumsHeadSize }

func (m *Enums) SizeOfHead() int {
	return enumsHeadFixed + m.sizeOfFoos() + m.sizeOfTags()
}

func (m *Enums) SizeOfTail() int { return 0 }

func (m *Enums) sizeOfFoos() int {
	size := bragi.SizeOfVarint(uint64(len(m.foos)))
	for _, f := range m.foos {
		size += bragi.SizeOfVarint(uint64(f))
	}
	return size
}

func (m *Enums) sizeOfTags() int {
	size := bragi.SizeOfVarint(0)
	if m.hasPerms {
		size += bragi.SizeOfVarint(enumsTagPerms) + bragi.SizeOfBitfield(m.perms.f)
	}
	return size
}

func (m *Enums) EncodeHead(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := bragi.EncodeHeadPreamble(wr, m); err != nil {
		return err
	}
	foosOffset := uint64(enumsHeadFixed)
	tagsOffset := foosOffset + uint64(m.sizeOfFoos())

	if err := wr.WriteUint8(uint8(m.foo)); err != nil {
		return err
	}
	if err := wr.WriteUint8(m.bar.Value()); err != nil {
		return err
	}
	if err := wr.WritePointer(enumsPtr, foosOffset); err != nil {
		return err
	}
	for _, b := range m.bars {
		if err := wr.WriteUint8(b.Value()); err != nil {
			return err
		}
	}
	if err := wr.WritePointer(enumsPtr, tagsOffset); err != nil {
		return err
	}

	if err := wr.WriteVarint(uint64(len(m.foos))); err != nil {
		return err
	}
	for _, f := range m.foos {
		if err := wr.WriteVarint(uint64(f)); err != nil {
			return err
		}
	}

	if m.hasPerms {
		if err := wr.WriteTag(enumsTagPerms); err != nil {
			return err
		}
		if err := bragi.WriteBitfield(wr, m.perms.f); err != nil {
			return err
		}
	}
	return wr.EndTags()
}

func (m *Enums) EncodeTail(w io.Writer) error { return nil }

func (m *Enums) DecodeHead(r io.ReadSeeker) error {
	rd := bragi.NewReader(r)
	if _, err := bragi.DecodeHeadPreamble(rd, EnumsMessageID); err != nil {
		return err
	}
	foo, err := rd.ReadUint8()
	if err != nil {
		return err
	}
	m.foo = Foo(foo)
	bar, err := rd.ReadUint8()
	if err != nil {
		return err
	}
	m.bar = Bar(bar)
	if err := rd.Follow(enumsPtr, m.decodeFoos); err != nil {
		return err
	}
	for i := range m.bars {
		b, err := rd.ReadUint8()
		if err != nil {
			return err
		}
		m.bars[i] = Bar(b)
	}
	return rd.Follow(enumsPtr, m.decodeTags)
}

func (m *Enums) decodeFoos(rd *bragi.Reader) error {
	n, err := rd.ReadVarint()
	if err != nil {
		return err
	}
	m.foos = make([]Foo, 0, min(n, EnumsHeadSize))
	for i := uint64(0); i < n; i++ {
		v, err := bragi.ReadVarintAs[uint8](rd)
		if err != nil {
			return err
		}
		m.foos = append(m.foos, Foo(v))
	}
	return nil
}

func (m *Enums) decodeTags(rd *bragi.Reader) error {
	for {
		tag, err := rd.ReadTag()
		if err != nil {
			return err
		}
		switch tag {
		case 0:
			return nil
		case enumsTagPerms:
			f, err := bragi.ReadBitfield[uint32](rd)
			if err != nil {
				return err
			}
			m.perms, m.hasPerms = Perms{f}, true
		default:
			return bragi.ErrUnknownTag
		}
	}
}

func (m *Enums) DecodeTail(r io.ReadSeeker) error { return nil }
