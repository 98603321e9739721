// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"bytes"
	"testing"

	"github.com/sambarnes/factom-core/primitives"
)

func hashWithFirstByte(b byte) primitives.Hash {
	var h primitives.Hash
	h[0] = b
	return h
}

func TestEntryBlockBodyMarshalRoundTrip(t *testing.T) {
	body := &EntryBlockBody{
		EntriesByMinute: map[uint8][]primitives.Hash{
			1: {hashWithFirstByte(0x01), hashWithFirstByte(0x02)},
			2: {},
			3: {hashWithFirstByte(0x03)},
		},
		MinuteOrder: []uint8{1, 2, 3},
	}
	raw := body.Marshal()

	got, rest, err := UnmarshalEntryBlockBodyWithRemainder(raw, body.SlotCount())
	if err != nil {
		t.Fatalf("UnmarshalEntryBlockBodyWithRemainder: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected remainder: %x", rest)
	}
	if !bytes.Equal(got.Marshal(), raw) {
		t.Error("marshal(unmarshal(b)) != b")
	}
	if len(got.EntriesByMinute[1]) != 2 {
		t.Errorf("minute 1 had %d entries, want 2", len(got.EntriesByMinute[1]))
	}
}

func TestEntryBlockBodySlotCountIncludesMarkers(t *testing.T) {
	body := &EntryBlockBody{
		EntriesByMinute: map[uint8][]primitives.Hash{1: {hashWithFirstByte(0x01)}},
		MinuteOrder:     []uint8{1},
	}
	// 1 entry + 1 marker = 2 slots, not 1 (a real-entries-only count would
	// under-consume the body on decode).
	if got := body.SlotCount(); got != 2 {
		t.Errorf("slot count = %d, want 2", got)
	}
}

func TestEntryBlockSealedHasTenMinuteMarkers(t *testing.T) {
	entriesByMinute := make(map[uint8][]primitives.Hash)
	var order []uint8
	for m := uint8(1); m <= 10; m++ {
		entriesByMinute[m] = nil
		order = append(order, m)
	}
	body := &EntryBlockBody{EntriesByMinute: entriesByMinute, MinuteOrder: order}
	if got := body.SlotCount(); got != 10 {
		t.Errorf("slot count = %d, want 10", got)
	}

	e := &EntryBlock{Body: *body}
	sealed := e.ConstructHeader()
	if sealed.EntryCount != 10 {
		t.Errorf("entry count = %d, want 10", sealed.EntryCount)
	}
}

func TestEntryBlockMarshalRoundTrip(t *testing.T) {
	body := EntryBlockBody{
		EntriesByMinute: map[uint8][]primitives.Hash{1: {hashWithFirstByte(0xAB)}},
		MinuteOrder:     []uint8{1},
	}
	e := &EntryBlock{
		Header: EntryBlockHeader{ChainID: hashWithFirstByte(0x99), Sequence: 1, Height: 2},
		Body:   body,
	}
	e.Header = e.ConstructHeader()
	raw := e.Marshal()

	got, err := UnmarshalEntryBlock(raw)
	if err != nil {
		t.Fatalf("UnmarshalEntryBlock: %v", err)
	}
	if !bytes.Equal(got.Marshal(), raw) {
		t.Error("marshal(unmarshal(b)) != b")
	}
	if got.Header.EntryCount != 2 {
		t.Errorf("entry count = %d, want 2 (1 entry + 1 marker)", got.Header.EntryCount)
	}
}

func TestEntryBlockAddContext(t *testing.T) {
	e := &EntryBlock{}
	var dbKeyMR primitives.Hash
	dbKeyMR[0] = 7
	e.AddContext(dbKeyMR, 12345)
	if !e.ContextSet {
		t.Fatal("context not marked as set")
	}
	if e.Timestamp != 12345 {
		t.Errorf("timestamp = %d, want 12345", e.Timestamp)
	}
}
