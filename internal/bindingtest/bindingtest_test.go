package bindingtest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/bragi"
)

func TestArraysHeadOnly(t *testing.T) {
	msg := NewArrays([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	if msg.MessageID() != 1 || msg.HeadSize() != 128 {
		t.Fatalf("id=%d head=%d", msg.MessageID(), msg.HeadSize())
	}
	if msg.SizeOfTail() != 0 {
		t.Fatalf("expected no tail, got %d", msg.SizeOfTail())
	}
	head, err := bragi.HeadToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := bragi.HeadFromBytes[Arrays](head)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(out.Arr(), []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Fatalf("arr=%x", out.Arr())
	}
}

func TestEnumsRoundTrip(t *testing.T) {
	msg := NewEnums(FooD, BarE, []Foo{FooD, FooA, FooF, FooB}, [4]Bar{BarE, BarB, BarA, BarC})
	head, err := bragi.HeadToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := bragi.HeadFromBytes[Enums](head)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	foo, err := out.Foo()
	if err != nil || foo != FooD {
		t.Fatalf("foo=%v err=%v", foo, err)
	}
	if out.Bar() != BarE {
		t.Fatalf("bar=%d", out.Bar())
	}
	wantFoos := []Foo{FooD, FooA, FooF, FooB}
	if len(out.Foos()) != len(wantFoos) {
		t.Fatalf("foos=%v", out.Foos())
	}
	for i, f := range wantFoos {
		if out.Foos()[i] != f {
			t.Fatalf("foos=%v want %v", out.Foos(), wantFoos)
		}
	}
	if out.Bars() != [4]Bar{BarE, BarB, BarA, BarC} {
		t.Fatalf("bars=%v", out.Bars())
	}
	if _, ok := out.Perms(); ok {
		t.Fatalf("perms should be unset")
	}
}

func TestConstantSetAliasesCompareByValue(t *testing.T) {
	if BarD != BarB || BarF != BarC {
		t.Fatalf("aliases must share a value")
	}
	msg := NewEnums(FooA, BarD, nil, [4]Bar{})
	head, err := bragi.HeadToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := bragi.HeadFromBytes[Enums](head)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Bar() != BarB {
		t.Fatalf("bar=%d want %d", out.Bar(), BarB)
	}
}

func TestUnknownFooKeepsRawValue(t *testing.T) {
	msg := NewEnums(Foo(9), BarA, []Foo{Foo(200)}, [4]Bar{})
	head, err := bragi.HeadToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := bragi.HeadFromBytes[Enums](head)
	if err != nil {
		t.Fatalf("decode must succeed for unknown values: %v", err)
	}
	foo, err := out.Foo()
	var unknown *bragi.UnknownDiscriminantError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownDiscriminantError, got %v", err)
	}
	if foo != Foo(9) || unknown.Value != 9 {
		t.Fatalf("foo=%d err=%+v", foo, unknown)
	}
	if out.Foos()[0] != Foo(200) {
		t.Fatalf("foos=%v", out.Foos())
	}
	if got := Foo(9).String(); got != "Foo(9)" {
		t.Fatalf("String()=%q", got)
	}
}

func TestPermsFormatting(t *testing.T) {
	rw := PermsRead.Union(PermsWrite)
	if got := rw.String(); got != "READ | WRITE" {
		t.Fatalf("format=%q", got)
	}
	if got := PermsEmpty().String(); got != "NONE" {
		t.Fatalf("empty format=%q", got)
	}
	if !rw.Has(PermsWrite) || rw.Has(PermsExec) {
		t.Fatalf("membership wrong: %b", rw.Bits())
	}
	if got := rw.Clear(PermsRead); got != PermsWrite {
		t.Fatalf("clear=%b", got.Bits())
	}
	if got := PermsUnchecked(0b101); got != PermsRead.Union(PermsExec) {
		t.Fatalf("unchecked=%b", got.Bits())
	}
}

func TestPermsRoundTripInTags(t *testing.T) {
	msg := NewEnums(FooC, BarA, nil, [4]Bar{})
	msg.SetPerms(PermsRead.Union(PermsExec))
	head, err := bragi.HeadToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := bragi.HeadFromBytes[Enums](head)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p, ok := out.Perms()
	if !ok || p.String() != "READ | EXEC" {
		t.Fatalf("perms=%v ok=%v", p, ok)
	}
}

func TestNestedStructs(t *testing.T) {
	baz := NewBaz(NewPair("pair", 7), []Item{
		NewItem("first", 1<<40, 3, []byte{1, 2}),
		NewItem("", 0, 0, nil),
	})
	msg := NewNested(baz)
	head, err := bragi.HeadToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := bragi.HeadFromBytes[Nested](head)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := out.Baz()
	pair := got.Pair()
	if pair.A() != "pair" || pair.B() != 7 {
		t.Fatalf("pair=%q/%d", pair.A(), pair.B())
	}
	items := got.Items()
	if len(items) != 2 {
		t.Fatalf("items=%d", len(items))
	}
	if items[0].A() != "first" || items[0].B() != 1<<40 || items[0].C() != 3 || !bytes.Equal(items[0].D(), []byte{1, 2}) {
		t.Fatalf("item 0 mismatch")
	}
	if items[1].A() != "" || len(items[1].D()) != 0 {
		t.Fatalf("item 1 mismatch")
	}
}

func TestEmptyMessage(t *testing.T) {
	msg := EmptyMessage{}
	head, tail, err := bragi.HeadTailToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(head) != EmptyMessageHeadSize || len(tail) != 0 {
		t.Fatalf("head=%d tail=%d", len(head), len(tail))
	}
	p, err := bragi.PreambleFromBytes(head)
	if err != nil || p.ID() != EmptyMessageMessageID || p.TailSize() != 0 {
		t.Fatalf("preamble=%+v err=%v", p, err)
	}
	if _, err := bragi.HeadTailFromBytes[EmptyMessage](head, tail); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestSplitTailSize(t *testing.T) {
	msg := NewSplit("..world!", 123456789)
	head, tail, err := bragi.HeadTailToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(tail) != 4 {
		t.Fatalf("tail=%d want 4", len(tail))
	}
	out, err := bragi.HeadTailFromBytes[Split](head, tail)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Bar() != "..world!" || out.Baz() != 123456789 {
		t.Fatalf("decoded %q/%d", out.Bar(), out.Baz())
	}
}

func TestFoosRejectVarintWiderThanByte(t *testing.T) {
	msg := NewEnums(FooA, BarA, []Foo{FooA}, [4]Bar{})
	head, err := bragi.HeadToBytes(&msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if head[16] != 0x03 || head[17] != 0x03 || head[18] != 0x01 || head[15] != 18 {
		t.Fatalf("unexpected layout: %x", head[:20])
	}
	// widen the single foo to 257 and shift the tags block along.
	copy(head[17:19], bragi.EncodeVarint(257))
	head[19] = 0x01
	head[15] = 19

	_, err = bragi.HeadFromBytes[Enums](head)
	var encErr *bragi.InvalidEncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected InvalidEncodingError, got %v", err)
	}
	if encErr.Offset != 17 {
		t.Fatalf("offset=%d want 17", encErr.Offset)
	}
}
