package bindingtest

import (
	"io"

	"github.com/danmuck/bragi"
)

type Item struct {
	a string
	b uint64
	c uint32
	d []byte
}

func NewItem(a string, b uint64, c uint32, d []byte) Item {
	return Item{a: a, b: b, c: c, d: d}
}

func (s *Item) A() string { return s.a }
func (s *Item) B() uint64 { return s.b }
func (s *Item) C() uint32 { return s.c }
func (s *Item) D() []byte { return s.d }

func (s *Item) SizeOfBody() int {
	return bragi.SizeOfString(s.a) + 8 + 4 + bragi.SizeOfBytes(s.d)
}

func (s *Item) EncodeBody(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := wr.WriteString(s.a); err != nil {
		return err
	}
	if err := wr.WriteUint64(s.b); err != nil {
		return err
	}
	if err := wr.WriteUint32(s.c); err != nil {
		return err
	}
	if err := wr.WriteVarint(uint64(len(s.d))); err != nil {
		return err
	}
	return wr.WriteBytes(s.d)
}

func (s *Item) DecodeBody(r io.ReadSeeker) error {
	rd := bragi.NewReader(r)
	var err error
	if s.a, err = rd.ReadString(); err != nil {
		return err
	}
	if s.b, err = rd.ReadUint64(); err != nil {
		return err
	}
	if s.c, err = rd.ReadUint32(); err != nil {
		return err
	}
	s.d, err = rd.ReadBytes()
	return err
}

type Pair struct {
	a string
	b uint32
}

func NewPair(a string, b uint32) Pair {
	return Pair{a: a, b: b}
}

func (s *Pair) A() string { return s.a }
func (s *Pair) B() uint32 { return s.b }

func (s *Pair) SizeOfBody() int {
	return bragi.SizeOfString(s.a) + 4
}

func (s *Pair) EncodeBody(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := wr.WriteString(s.a); err != nil {
		return err
	}
	return wr.WriteUint32(s.b)
}

func (s *Pair) DecodeBody(r io.ReadSeeker) error {
	rd := bragi.NewReader(r)
	var err error
	if s.a, err = rd.ReadString(); err != nil {
		return err
	}
	s.b, err = rd.ReadUint32()
	return err
}

type Baz struct {
	pair  Pair
	items []Item
}

func NewBaz(pair Pair, items []Item) Baz {
	return Baz{pair: pair, items: items}
}

func (s *Baz) Pair() Pair    { return s.pair }
func (s *Baz) Items() []Item { return s.items }

func (s *Baz) SizeOfBody() int {
	size := s.pair.SizeOfBody() + bragi.SizeOfVarint(uint64(len(s.items)))
	for i := range s.items {
		size += s.items[i].SizeOfBody()
	}
	return size
}

func (s *Baz) EncodeBody(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := wr.WriteStruct(&s.pair); err != nil {
		return err
	}
	if err := wr.WriteVarint(uint64(len(s.items))); err != nil {
		return err
	}
	for i := range s.items {
		if err := wr.WriteStruct(&s.items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Baz) DecodeBody(r io.ReadSeeker) error {
	rd := bragi.NewReader(r)
	if err := rd.ReadStruct(&s.pair); err != nil {
		return err
	}
	n, err := rd.ReadVarint()
	if err != nil {
		return err
	}
	s.items = nil
	for i := uint64(0); i < n; i++ {
		var item Item
		if err := rd.ReadStruct(&item); err != nil {
			return err
		}
		s.items = append(s.items, item)
	}
	return nil
}

const (
	NestedMessageID uint32 = 7
	NestedHeadSize         = 128

	nestedPtr       = 1
	nestedHeadFixed = bragi.PreambleSize + nestedPtr
)

// Nested carries a struct tree behind a single head pointer.
type Nested struct {
	baz Baz
}

func NewNested(baz Baz) Nested {
	return Nested{baz: baz}
}

func (m *Nested) Baz() Baz     { return m.baz }
func (m *Nested) SetBaz(v Baz) { m.baz = v }

func (m *Nested) MessageID() uint32 { return NestedMessageID }
func (m *Nested) HeadSize() int     { return NestedHeadSize }
func (m *Nested) SizeOfHead() int   { return nestedHeadFixed + m.baz.SizeOfBody() }
func (m *Nested) SizeOfTail() int   { return 0 }

func (m *Nested) EncodeHead(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := bragi.EncodeHeadPreamble(wr, m); err != nil {
		return err
	}
	if err := wr.WritePointer(nestedPtr, nestedHeadFixed); err != nil {
		return err
	}
	return wr.WriteStruct(&m.baz)
}

func (m *Nested) EncodeTail(w io.Writer) error { return nil }

func (m *Nested) DecodeHead(r io.ReadSeeker) error {
	rd := bragi.NewReader(r)
	if _, err := bragi.DecodeHeadPreamble(rd, NestedMessageID); err != nil {
		return err
	}
	return rd.Follow(nestedPtr, func(rd *bragi.Reader) error {
		return rd.ReadStruct(&m.baz)
	})
}

func (m *Nested) DecodeTail(r io.ReadSeeker) error { return nil }
