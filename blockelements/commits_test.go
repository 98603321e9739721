// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockelements

import (
	"bytes"
	"testing"
)

func TestChainCommitRoundTrip(t *testing.T) {
	c := &ChainCommit{ECSpent: 15}
	for i := range c.ChainIDHash {
		c.ChainIDHash[i] = byte(i)
	}
	raw := c.Marshal()
	if len(raw) != ChainCommitSize {
		t.Fatalf("marshalled size = %d, want %d", len(raw), ChainCommitSize)
	}

	got, err := UnmarshalChainCommit(raw)
	if err != nil {
		t.Fatalf("UnmarshalChainCommit: %v", err)
	}
	if got.ChainIDHash != c.ChainIDHash {
		t.Error("chain id hash mismatch")
	}
	if !bytes.Equal(got.Marshal(), raw) {
		t.Error("marshal(unmarshal(b)) != b")
	}
}

func TestChainCommitRejectsBadECSpent(t *testing.T) {
	c := &ChainCommit{ECSpent: 5} // valid range is 11..20
	if _, err := UnmarshalChainCommit(c.Marshal()); err == nil {
		t.Error("expected error for ec_spent outside 11..20")
	}
	c.ECSpent = 21
	if _, err := UnmarshalChainCommit(c.Marshal()); err == nil {
		t.Error("expected error for ec_spent outside 11..20")
	}
}

func TestEntryCommitRoundTrip(t *testing.T) {
	c := &EntryCommit{ECSpent: 3}
	raw := c.Marshal()
	if len(raw) != EntryCommitSize {
		t.Fatalf("marshalled size = %d, want %d", len(raw), EntryCommitSize)
	}
	got, err := UnmarshalEntryCommit(raw)
	if err != nil {
		t.Fatalf("UnmarshalEntryCommit: %v", err)
	}
	if !bytes.Equal(got.Marshal(), raw) {
		t.Error("marshal(unmarshal(b)) != b")
	}
}

func TestEntryCommitRejectsBadECSpent(t *testing.T) {
	c := &EntryCommit{ECSpent: 11}
	if _, err := UnmarshalEntryCommit(c.Marshal()); err == nil {
		t.Error("expected error for ec_spent > 10")
	}
}

func TestBalanceIncreaseRoundTrip(t *testing.T) {
	b := &BalanceIncrease{Index: 3, Quantity: 123456}
	raw := b.Marshal()
	got, err := UnmarshalBalanceIncrease(raw)
	if err != nil {
		t.Fatalf("UnmarshalBalanceIncrease: %v", err)
	}
	if got.Index != b.Index || got.Quantity != b.Quantity {
		t.Errorf("got %+v, want %+v", got, b)
	}
}

func TestBalanceIncreaseWithRemainder(t *testing.T) {
	b := &BalanceIncrease{Index: 1, Quantity: 2}
	raw := append(b.Marshal(), 0xCA, 0xFE)
	got, rest, err := UnmarshalBalanceIncreaseWithRemainder(raw)
	if err != nil {
		t.Fatalf("UnmarshalBalanceIncreaseWithRemainder: %v", err)
	}
	if got.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", got.Quantity)
	}
	if !bytes.Equal(rest, []byte{0xCA, 0xFE}) {
		t.Errorf("remainder = %x, want cafe", rest)
	}
}
