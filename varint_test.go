package bragi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestVarintRoundTripBoundaries(t *testing.T) {
	values := []uint64{
		0, 1, 2,
		1<<7 - 1, 1 << 7,
		1<<14 - 1, 1 << 14,
		1<<21 - 1, 1 << 21,
		1<<49 - 1, 1 << 49,
		1<<56 - 1, 1 << 56,
		1<<63 - 1, 1 << 63,
		math.MaxUint64,
	}
	for _, v := range values {
		enc := EncodeVarint(v)
		if got := SizeOfVarint(v); got != len(enc) {
			t.Fatalf("SizeOfVarint(%d)=%d, encoded %d bytes", v, got, len(enc))
		}
		got, n, err := DecodeVarint(enc)
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v || n != len(enc) {
			t.Fatalf("decode %d: got=%d n=%d len=%d", v, got, n, len(enc))
		}
	}
}

func TestVarintRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		v := rng.Uint64() >> uint(rng.Intn(64))
		got, _, err := DecodeVarint(EncodeVarint(v))
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
	}
}

func TestSizeOfVarintLengths(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{1<<7 - 1, 1},
		{1 << 7, 2},
		{1<<14 - 1, 2},
		{1 << 14, 3},
		{1<<56 - 1, 8},
		{1 << 56, 9},
		{math.MaxUint64, 9},
	}
	for _, tc := range cases {
		if got := SizeOfVarint(tc.v); got != tc.want {
			t.Fatalf("SizeOfVarint(%d)=%d want %d", tc.v, got, tc.want)
		}
	}
}

func TestEncodeVarintKnownBytes(t *testing.T) {
	if got := EncodeVarint(0); !bytes.Equal(got, []byte{0x01}) {
		t.Fatalf("encode 0: %x", got)
	}
	if got := EncodeVarint(1); !bytes.Equal(got, []byte{0x03}) {
		t.Fatalf("encode 1: %x", got)
	}
	// 128 needs two bytes: (2*128+1)<<1 = 0x202.
	if got := EncodeVarint(128); !bytes.Equal(got, []byte{0x02, 0x02}) {
		t.Fatalf("encode 128: %x", got)
	}

	want := []byte{0x00}
	want = binary.LittleEndian.AppendUint64(want, 1<<56)
	if got := EncodeVarint(1 << 56); !bytes.Equal(got, want) {
		t.Fatalf("encode 2^56: got %x want %x", got, want)
	}
}

func TestDecodeVarintLengthFromFirstByte(t *testing.T) {
	for l := 1; l <= 8; l++ {
		first := byte(1) << (l - 1)
		if got := varintLen(first); got != l {
			t.Fatalf("varintLen(%08b)=%d want %d", first, got, l)
		}
	}
	if got := varintLen(0); got != MaxVarintLen {
		t.Fatalf("varintLen(0)=%d want %d", got, MaxVarintLen)
	}
}

func TestDecodeVarintTruncated(t *testing.T) {
	enc := EncodeVarint(1 << 20)
	for i := 0; i < len(enc); i++ {
		if _, _, err := DecodeVarint(enc[:i]); !errors.Is(err, ErrTruncated) {
			t.Fatalf("decode %d of %d bytes: expected ErrTruncated, got %v", i, len(enc), err)
		}
	}
	wide := EncodeVarint(math.MaxUint64)
	if _, _, err := DecodeVarint(wide[:8]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for short 9-byte form, got %v", err)
	}
}

func TestAppendVarintKeepsPrefix(t *testing.T) {
	out := AppendVarint([]byte{0xAA}, 300)
	if out[0] != 0xAA {
		t.Fatalf("prefix clobbered: %x", out)
	}
	v, n, err := DecodeVarint(out[1:])
	if err != nil || v != 300 || n != len(out)-1 {
		t.Fatalf("decode appended: v=%d n=%d err=%v", v, n, err)
	}
}
