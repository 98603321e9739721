// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"path/filepath"
	"testing"

	"github.com/sambarnes/factom-core/blockelements"
	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/primitives"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreDirectoryBlockRoundTripAndHead(t *testing.T) {
	s := openTestStore(t)

	if b, err := s.DirectoryBlockHead(); err != nil || b != nil {
		t.Fatalf("DirectoryBlockHead on empty store = %v, %v, want nil, nil", b, err)
	}

	db := &blocks.DirectoryBlock{
		Header: blocks.DirectoryBlockHeader{Height: 1},
		Body: blocks.DirectoryBlockBody{
			EntryBlocks: []blocks.EntryBlockRef{},
		},
	}
	db.Header = db.ConstructHeader()

	if err := s.PutDirectoryBlockHead(db); err != nil {
		t.Fatalf("PutDirectoryBlockHead: %v", err)
	}

	head, err := s.DirectoryBlockHead()
	if err != nil {
		t.Fatalf("DirectoryBlockHead: %v", err)
	}
	if head == nil || head.KeyMR() != db.KeyMR() {
		t.Fatalf("DirectoryBlockHead = %v, want key-MR %x", head, db.KeyMR())
	}

	byKeyMR, err := s.GetDirectoryBlockByKeyMR(db.KeyMR())
	if err != nil || byKeyMR == nil {
		t.Fatalf("GetDirectoryBlockByKeyMR: %v, %v", byKeyMR, err)
	}
	byHeight, err := s.GetDirectoryBlockByHeight(1)
	if err != nil || byHeight == nil {
		t.Fatalf("GetDirectoryBlockByHeight: %v, %v", byHeight, err)
	}
	if byHeight.KeyMR() != db.KeyMR() {
		t.Error("GetDirectoryBlockByHeight returned the wrong block")
	}
}

func TestStoreDirectoryBlockMissingLookupsReturnNil(t *testing.T) {
	s := openTestStore(t)

	var keyMR primitives.Hash
	b, err := s.GetDirectoryBlockByKeyMR(keyMR)
	if err != nil || b != nil {
		t.Fatalf("GetDirectoryBlockByKeyMR on empty store = %v, %v, want nil, nil", b, err)
	}
	b, err = s.GetDirectoryBlockByHeight(99)
	if err != nil || b != nil {
		t.Fatalf("GetDirectoryBlockByHeight on empty store = %v, %v, want nil, nil", b, err)
	}
}

func TestStoreAdminBlockRoundTripAndHead(t *testing.T) {
	s := openTestStore(t)

	ab := &blocks.AdminBlock{Header: blocks.AdminBlockHeader{Height: 5}}
	ab.Header = ab.ConstructHeader(primitives.Hash{})

	if err := s.PutAdminBlockHead(ab); err != nil {
		t.Fatalf("PutAdminBlockHead: %v", err)
	}
	head, err := s.AdminBlockHead()
	if err != nil || head == nil {
		t.Fatalf("AdminBlockHead: %v, %v", head, err)
	}
	if head.LookupHash() != ab.LookupHash() {
		t.Error("AdminBlockHead returned the wrong block")
	}
	byHeight, err := s.GetAdminBlockByHeight(5)
	if err != nil || byHeight == nil {
		t.Fatalf("GetAdminBlockByHeight: %v, %v", byHeight, err)
	}
}

func TestStoreFactoidBlockRoundTripAndHead(t *testing.T) {
	s := openTestStore(t)

	fb := &blocks.FactoidBlock{
		Header: blocks.FactoidBlockHeader{Height: 3, ECExchangeRate: 1000},
		Body: blocks.FactoidBlockBody{
			TransactionsByMinute: make(map[uint8][]blockelements.FactoidTransaction),
			MinuteOrder:          []uint8{1},
		},
	}
	fb.Header = fb.ConstructHeader()

	if err := s.PutFactoidBlockHead(fb); err != nil {
		t.Fatalf("PutFactoidBlockHead: %v", err)
	}
	head, err := s.FactoidBlockHead()
	if err != nil || head == nil {
		t.Fatalf("FactoidBlockHead: %v, %v", head, err)
	}
	if head.KeyMR() != fb.KeyMR() {
		t.Error("FactoidBlockHead returned the wrong block")
	}
	byHeight, err := s.GetFactoidBlockByHeight(3)
	if err != nil || byHeight == nil {
		t.Fatalf("GetFactoidBlockByHeight: %v, %v", byHeight, err)
	}
}

func TestStoreEntryCreditBlockRoundTripAndHead(t *testing.T) {
	s := openTestStore(t)

	ec := &blocks.EntryCreditBlock{
		Header: blocks.EntryCreditBlockHeader{Height: 7},
		Body: blocks.EntryCreditBlockBody{
			ObjectsByMinute: make(map[uint8][]blocks.EntryCreditObject),
			MinuteOrder:     []uint8{1},
		},
	}
	ec.Header = ec.ConstructHeader()

	if err := s.PutEntryCreditBlockHead(ec); err != nil {
		t.Fatalf("PutEntryCreditBlockHead: %v", err)
	}
	head, err := s.EntryCreditBlockHead()
	if err != nil || head == nil {
		t.Fatalf("EntryCreditBlockHead: %v, %v", head, err)
	}
	if head.HeaderHash() != ec.HeaderHash() {
		t.Error("EntryCreditBlockHead returned the wrong block")
	}
	byHeight, err := s.GetEntryCreditBlockByHeight(7)
	if err != nil || byHeight == nil {
		t.Fatalf("GetEntryCreditBlockByHeight: %v, %v", byHeight, err)
	}
}

func TestStoreEntryBlockRoundTripAndHeadPerChain(t *testing.T) {
	s := openTestStore(t)

	chainID := primitives.Hash{0x01, 0x02, 0x03}
	eb := &blocks.EntryBlock{
		Header: blocks.EntryBlockHeader{ChainID: chainID, Sequence: 0, Height: 2},
		Body: blocks.EntryBlockBody{
			EntriesByMinute: make(map[uint8][]primitives.Hash),
			MinuteOrder:     []uint8{1},
		},
	}
	eb.Header = eb.ConstructHeader()

	if head, err := s.EntryBlockHead(chainID); err != nil || head != nil {
		t.Fatalf("EntryBlockHead on empty chain = %v, %v, want nil, nil", head, err)
	}

	if err := s.PutEntryBlockHead(eb); err != nil {
		t.Fatalf("PutEntryBlockHead: %v", err)
	}

	head, err := s.EntryBlockHead(chainID)
	if err != nil || head == nil {
		t.Fatalf("EntryBlockHead: %v, %v", head, err)
	}
	if head.KeyMR() != eb.KeyMR() {
		t.Error("EntryBlockHead returned the wrong block")
	}

	byKeyMR, err := s.GetEntryBlockByKeyMR(eb.KeyMR())
	if err != nil || byKeyMR == nil {
		t.Fatalf("GetEntryBlockByKeyMR: %v, %v", byKeyMR, err)
	}

	otherChain := primitives.Hash{0xff}
	if head, err := s.EntryBlockHead(otherChain); err != nil || head != nil {
		t.Fatalf("EntryBlockHead on untouched chain = %v, %v, want nil, nil", head, err)
	}
}

func TestStoreEntryRoundTripAndHasEntry(t *testing.T) {
	s := openTestStore(t)

	e := &blockelements.Entry{
		ChainID:     primitives.Hash{0xaa, 0xbb},
		ExternalIDs: [][]byte{[]byte("tag")},
		Content:     []byte("hello"),
	}

	if got, err := s.GetEntry(e.Hash()); err != nil || got != nil {
		t.Fatalf("GetEntry before put = %v, %v, want nil, nil", got, err)
	}
	if s.HasEntry(e.ChainID, e.Hash()) {
		t.Error("HasEntry before put = true, want false")
	}

	if err := s.PutEntry(e); err != nil {
		t.Fatalf("PutEntry: %v", err)
	}

	got, err := s.GetEntry(e.Hash())
	if err != nil || got == nil {
		t.Fatalf("GetEntry after put: %v, %v", got, err)
	}
	if got.Hash() != e.Hash() {
		t.Error("GetEntry returned a different entry")
	}
	if !s.HasEntry(e.ChainID, e.Hash()) {
		t.Error("HasEntry after put = false, want true")
	}
}
