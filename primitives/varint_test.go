// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"bytes"
	"math"
	"testing"
)

func TestEncodeVarintBoundaries(t *testing.T) {
	tests := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x00}},
		{math.MaxUint64, []byte{0x81, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}},
	}
	for _, tt := range tests {
		got := EncodeVarint(tt.n)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("EncodeVarint(%d) = %x, want %x", tt.n, got, tt.want)
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 126, 127, 128, 129, 255, 256, 16383, 16384,
		1 << 20, 1 << 40, math.MaxUint32, math.MaxUint64}
	for _, n := range values {
		enc := EncodeVarint(n)
		got, rest, err := DecodeVarint(enc)
		if err != nil {
			t.Fatalf("DecodeVarint(encode(%d)) returned error: %v", n, err)
		}
		if got != n {
			t.Errorf("DecodeVarint(encode(%d)) = %d", n, got)
		}
		if len(rest) != 0 {
			t.Errorf("DecodeVarint(encode(%d)) left remainder %x", n, rest)
		}
	}
}

func TestDecodeVarintRejectsNonCanonical(t *testing.T) {
	// Zero padded to two bytes: 0x80, 0x00 decodes to 0 but canonical
	// form of 0 is the single byte 0x00.
	if _, _, err := DecodeVarint([]byte{0x80, 0x00}); err == nil {
		t.Error("expected non-canonical varint to be rejected")
	}
}

func TestDecodeVarintRejectsPrematureEnd(t *testing.T) {
	if _, _, err := DecodeVarint([]byte{0x81}); err == nil {
		t.Error("expected premature end of input to be rejected")
	}
	if _, _, err := DecodeVarint(nil); err == nil {
		t.Error("expected empty input to be rejected")
	}
}

func TestDecodeVarintLeavesRemainder(t *testing.T) {
	enc := append(EncodeVarint(128), 0xDE, 0xAD)
	got, rest, err := DecodeVarint(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 128 {
		t.Fatalf("got %d, want 128", got)
	}
	if !bytes.Equal(rest, []byte{0xDE, 0xAD}) {
		t.Fatalf("remainder = %x, want dead", rest)
	}
}
