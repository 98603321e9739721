// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"bytes"
	"testing"

	"github.com/sambarnes/factom-core/blockelements"
)

func TestAdminBlockMarshalRoundTrip(t *testing.T) {
	a := &AdminBlock{
		Header: AdminBlockHeader{Height: 12345},
		Body: AdminBlockBody{
			Messages: []blockelements.AdminMessage{
				&blockelements.MinuteNumber{Minute: 3},
				&blockelements.ServerCountIncrease{Value: 1},
			},
		},
	}
	a.Header = a.ConstructHeader(a.Header.BackReferenceHash)
	raw := a.Marshal()

	got, err := UnmarshalAdminBlock(raw)
	if err != nil {
		t.Fatalf("UnmarshalAdminBlock: %v", err)
	}
	if !bytes.Equal(got.Marshal(), raw) {
		t.Error("marshal(unmarshal(b)) != b")
	}
	if got.Header.MessageCount != 2 {
		t.Errorf("message count = %d, want 2", got.Header.MessageCount)
	}
	if len(got.Body.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(got.Body.Messages))
	}
	if m, ok := got.Body.Messages[0].(*blockelements.MinuteNumber); !ok || m.Minute != 3 {
		t.Errorf("messages[0] = %+v, want MinuteNumber{3}", got.Body.Messages[0])
	}
}

func TestAdminBlockBackReferenceHashNotTruncated(t *testing.T) {
	a := &AdminBlock{
		Header: AdminBlockHeader{Height: 1},
		Body: AdminBlockBody{
			Messages: []blockelements.AdminMessage{&blockelements.MinuteNumber{Minute: 1}},
		},
	}
	h := a.BackReferenceHash()
	allZero := true
	for _, b := range h {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("back reference hash is all zero; SHA512 digest truncation likely wrong")
	}
}

func TestAdminBlockLookupHash(t *testing.T) {
	a := &AdminBlock{Header: AdminBlockHeader{Height: 1}}
	h1 := a.LookupHash()
	h2 := a.LookupHash()
	if h1 != h2 {
		t.Error("lookup hash not deterministic")
	}
}

func TestAdminBlockRejectsUnexpectedChainID(t *testing.T) {
	a := &AdminBlock{Header: AdminBlockHeader{Height: 1}}
	raw := a.Marshal()
	raw[31] = 0xFF // corrupt the chain id's last byte
	if _, err := UnmarshalAdminBlock(raw); err == nil {
		t.Error("expected error for corrupted chain id")
	}
}
