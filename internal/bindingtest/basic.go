package bindingtest

import (
	"io"

	"github.com/danmuck/bragi"
)

const (
	BasicMessageID uint32 = 2
	BasicHeadSize         = 128

	basicHeadFixed = bragi.PreambleSize + 4 + 8 + 2*basicPtr
	basicPtr       = 1
)

const (
	basicTagD uint64 = 1
	basicTagE uint64 = 2
	basicTagF uint64 = 3
)

// Basic carries scalar head members, a string behind a head pointer and a
// tags block of optional members.
type Basic struct {
	a uint32
	b uint64
	c string

	d    uint32
	hasD bool
	e    []byte
	hasE bool
	f    string
	hasF bool
}

func NewBasic(a uint32, b uint64, c string) Basic {
	return Basic{a: a, b: b, c: c}
}

func (m *Basic) A() uint32         { return m.a }
func (m *Basic) SetA(v uint32)     { m.a = v }
func (m *Basic) B() uint64         { return m.b }
func (m *Basic) SetB(v uint64)     { m.b = v }
func (m *Basic) C() string         { return m.c }
func (m *Basic) SetC(v string)     { m.c = v }
func (m *Basic) D() (uint32, bool) { return m.d, m.hasD }
func (m *Basic) SetD(v uint32)     { m.d, m.hasD = v, true }
func (m *Basic) E() ([]byte, bool) { return m.e, m.hasE }
func (m *Basic) SetE(v []byte)     { m.e, m.hasE = v, true }
func (m *Basic) F() (string, bool) { return m.f, m.hasF }
func (m *Basic) SetF(v string)     { m.f, m.hasF = v, true }

func (m *Basic) MessageID() uint32 { return BasicMessageID }
func (m *Basic) HeadSize() int     { return BasicHeadSize }

func (m *Basic) SizeOfHead() int {
	return basicHeadFixed + bragi.SizeOfString(m.c) + m.sizeOfTags()
}

func (m *Basic) SizeOfTail() int { return 0 }

func (m *Basic) sizeOfTags() int {
	size := bragi.SizeOfVarint(0)
	if m.hasD {
		size += bragi.SizeOfVarint(basicTagD) + 4
	}
	if m.hasE {
		size += bragi.SizeOfVarint(basicTagE) + bragi.SizeOfBytes(m.e)
	}
	if m.hasF {
		size += bragi.SizeOfVarint(basicTagF) + bragi.SizeOfString(m.f)
	}
	return size
}

func (m *Basic) EncodeHead(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := bragi.EncodeHeadPreamble(wr, m); err != nil {
		return err
	}
	cOffset := uint64(basicHeadFixed)
	tagsOffset := cOffset + uint64(bragi.SizeOfString(m.c))

	if err := wr.WriteUint32(m.a); err != nil {
		return err
	}
	if err := wr.WriteUint64(m.b); err != nil {
		return err
	}
	if err := wr.WritePointer(basicPtr, cOffset); err != nil {
		return err
	}
	if err := wr.WritePointer(basicPtr, tagsOffset); err != nil {
		return err
	}
	if err := wr.WriteString(m.c); err != nil {
		return err
	}
	return m.encodeTags(wr)
}

func (m *Basic) encodeTags(wr *bragi.Writer) error {
	if m.hasD {
		if err := wr.WriteTag(basicTagD); err != nil {
			return err
		}
		if err := wr.WriteUint32(m.d); err != nil {
			return err
		}
	}
	if m.hasE {
		if err := wr.WriteTag(basicTagE); err != nil {
			return err
		}
		if err := wr.WriteVarint(uint64(len(m.e))); err != nil {
			return err
		}
		if err := wr.WriteBytes(m.e); err != nil {
			return err
		}
	}
	if m.hasF {
		if err := wr.WriteTag(basicTagF); err != nil {
			return err
		}
		if err := wr.WriteString(m.f); err != nil {
			return err
		}
	}
	return wr.EndTags()
}

func (m *Basic) EncodeTail(w io.Writer) error { return nil }

func (m *Basic) DecodeHead(r io.ReadSeeker) error {
	rd := bragi.NewReader(r)
	if _, err := bragi.DecodeHeadPreamble(rd, BasicMessageID); err != nil {
		return err
	}
	var err error
	if m.a, err = rd.ReadUint32(); err != nil {
		return err
	}
	if m.b, err = rd.ReadUint64(); err != nil {
		return err
	}
	if err := rd.Follow(basicPtr, func(rd *bragi.Reader) (err error) {
		m.c, err = rd.ReadString()
		return err
	}); err != nil {
		return err
	}
	return rd.Follow(basicPtr, m.decodeTags)
}

func (m *Basic) decodeTags(rd *bragi.Reader) error {
	for {
		tag, err := rd.ReadTag()
		if err != nil {
			return err
		}
		switch tag {
		case 0:
			return nil
		case basicTagD:
			if m.d, err = rd.ReadUint32(); err != nil {
				return err
			}
			m.hasD = true
		case basicTagE:
			if m.e, err = rd.ReadBytes(); err != nil {
				return err
			}
			m.hasE = true
		case basicTagF:
			if m.f, err = rd.ReadString(); err != nil {
				return err
			}
			m.hasF = true
		default:
			return bragi.ErrUnknownTag
		}
	}
}

func (m *Basic) DecodeTail(r io.ReadSeeker) error { return nil }
