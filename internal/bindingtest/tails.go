package bindingtest

import (
	"io"

	"github.com/danmuck/bragi"
)

const (
	SplitMessageID uint32 = 3
	SplitHeadSize         = 128

	splitPtr       = 1
	splitHeadFixed = bragi.PreambleSize + splitPtr
)

// Split keeps a string in the head and a fixed integer in the tail.
type Split struct {
	bar string
	baz uint32
}

func NewSplit(bar string, baz uint32) Split {
	return Split{bar: bar, baz: baz}
}

func (m *Split) Bar() string     { return m.bar }
func (m *Split) SetBar(v string) { m.bar = v }
func (m *Split) Baz() uint32     { return m.baz }
func (m *Split) SetBaz(v uint32) { m.baz = v }

func (m *Split) MessageID() uint32 { return SplitMessageID }
func (m *Split) HeadSize() int     { return SplitHeadSize }
func (m *Split) SizeOfHead() int   { return splitHeadFixed + bragi.SizeOfString(m.bar) }
func (m *Split) SizeOfTail() int   { return 4 }

func (m *Split) EncodeHead(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := bragi.EncodeHeadPreamble(wr, m); err != nil {
		return err
	}
	if err := wr.WritePointer(splitPtr, splitHeadFixed); err != nil {
		return err
	}
	return wr.WriteString(m.bar)
}

func (m *Split) EncodeTail(w io.Writer) error {
	return bragi.NewWriter(w).WriteUint32(m.baz)
}

func (m *Split) DecodeHead(r io.ReadSeeker) error {
	rd := bragi.NewReader(r)
	if _, err := bragi.DecodeHeadPreamble(rd, SplitMessageID); err != nil {
		return err
	}
	return rd.Follow(splitPtr, func(rd *bragi.Reader) (err error) {
		m.bar, err = rd.ReadString()
		return err
	})
}

func (m *Split) DecodeTail(r io.ReadSeeker) (err error) {
	m.baz, err = bragi.NewReader(r).ReadUint32()
	return err
}

const (
	EmptyHeadMessageID uint32 = 4
	EmptyHeadHeadSize         = 128

	emptyHeadTailPtr   = 8
	emptyHeadTailFixed = emptyHeadTailPtr
)

// EmptyHead has nothing but the preamble in its head.
type EmptyHead struct {
	foo string
}

func NewEmptyHead(foo string) EmptyHead {
	return EmptyHead{foo: foo}
}

func (m *EmptyHead) Foo() string     { return m.foo }
func (m *EmptyHead) SetFoo(v string) { m.foo = v }

func (m *EmptyHead) MessageID() uint32 { return EmptyHeadMessageID }
func (m *EmptyHead) HeadSize() int     { return EmptyHeadHeadSize }
func (m *EmptyHead) SizeOfHead() int   { return bragi.PreambleSize }

func (m *EmptyHead) SizeOfTail() int {
	return emptyHeadTailFixed + bragi.SizeOfString(m.foo)
}

func (m *EmptyHead) EncodeHead(w io.Writer) error {
	return bragi.EncodeHeadPreamble(bragi.NewWriter(w), m)
}

func (m *EmptyHead) EncodeTail(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := wr.WritePointer(emptyHeadTailPtr, emptyHeadTailFixed); err != nil {
		return err
	}
	return wr.WriteString(m.foo)
}

func (m *EmptyHead) DecodeHead(r io.ReadSeeker) error {
	_, err := bragi.DecodeHeadPreamble(bragi.NewReader(r), EmptyHeadMessageID)
	return err
}

func (m *EmptyHead) DecodeTail(r io.ReadSeeker) error {
	return bragi.NewReader(r).Follow(emptyHeadTailPtr, func(rd *bragi.Reader) (err error) {
		m.foo, err = rd.ReadString()
		return err
	})
}

const (
	EmptyMessageMessageID uint32 = 5
	EmptyMessageHeadSize         = 128
)

type EmptyMessage struct{}

func (m *EmptyMessage) MessageID() uint32 { return EmptyMessageMessageID }
func (m *EmptyMessage) HeadSize() int     { return EmptyMessageHeadSize }
func (m *EmptyMessage) SizeOfHead() int   { return bragi.PreambleSize }
func (m *EmptyMessage) SizeOfTail() int   { return 0 }

func (m *EmptyMessage) EncodeHead(w io.Writer) error {
	return bragi.EncodeHeadPreamble(bragi.NewWriter(w), m)
}

func (m *EmptyMessage) EncodeTail(w io.Writer) error { return nil }

func (m *EmptyMessage) DecodeHead(r io.ReadSeeker) error {
	_, err := bragi.DecodeHeadPreamble(bragi.NewReader(r), EmptyMessageMessageID)
	return err
}

func (m *EmptyMessage) DecodeTail(r io.ReadSeeker) error { return nil }
