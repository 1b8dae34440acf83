package bindingtest

import (
	"io"

	"github.com/danmuck/bragi"
)

const (
	ArraysMessageID uint32 = 1
	ArraysHeadSize         = 128

	arraysPtr       = 1
	arraysHeadFixed = bragi.PreambleSize + arraysPtr
)

type Arrays struct {
	arr []byte
}

func NewArrays(arr []byte) Arrays {
	return Arrays{arr: arr}
}

func (m *Arrays) Arr() []byte     { return m.arr }
func (m *Arrays) SetArr(v []byte) { m.arr = v }

func (m *Arrays) MessageID() uint32 { return ArraysMessageID }
func (m *Arrays) HeadSize() int     { return ArraysHeadSize }

func (m *Arrays) SizeOfHead() int {
	return arraysHeadFixed + bragi.SizeOfBytes(m.arr)
}

func (m *Arrays) SizeOfTail() int { return 0 }

func (m *Arrays) EncodeHead(w io.Writer) error {
	wr := bragi.NewWriter(w)
	if err := bragi.EncodeHeadPreamble(wr, m); err != nil {
		return err
	}
	if err := wr.WritePointer(arraysPtr, arraysHeadFixed); err != nil {
		return err
	}
	if err := wr.WriteVarint(uint64(len(m.arr))); err != nil {
		return err
	}
	return wr.WriteBytes(m.arr)
}

func (m *Arrays) EncodeTail(w io.Writer) error { return nil }

func (m *Arrays) DecodeHead(r io.ReadSeeker) error {
	rd := bragi.NewReader(r)
	if _, err := bragi.DecodeHeadPreamble(rd, ArraysMessageID); err != nil {
		return err
	}
	return rd.Follow(arraysPtr, func(rd *bragi.Reader) (err error) {
		m.arr, err = rd.ReadBytes()
		return err
	})
}

func (m *Arrays) DecodeTail(r io.ReadSeeker) error { return nil }
