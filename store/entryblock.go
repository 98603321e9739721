// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/primitives"
)

// GetEntryBlockByKeyMR returns the entry block identified by keyMR, or
// nil with a nil error if none is stored. Entry blocks from every chain
// share this namespace: keyMR alone is enough to identify one, since it
// already commits to the block's chain id via the header.
func (s *Store) GetEntryBlockByKeyMR(keyMR primitives.Hash) (*blocks.EntryBlock, error) {
	raw, err := s.get(nsEntryBlock, keyMR[:])
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blocks.UnmarshalEntryBlock(raw)
}

// EntryBlockHead returns the current head entry block of chainID, or nil
// with a nil error if that chain has never had an entry block sealed.
func (s *Store) EntryBlockHead(chainID primitives.Hash) (*blocks.EntryBlock, error) {
	raw, err := s.GetChainHead(chainID[:])
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	keyMR, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "ChainHead for an entry chain is not a 32-byte hash"}
	}
	b, err := s.GetEntryBlockByKeyMR(keyMR)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "ChainHead for an entry chain points at a missing entry block"}
	}
	return b, nil
}

// PutEntryBlock writes b, keyed by its own key-MR. Entry blocks carry no
// global height index: a chain's position in time is read off its own
// Sequence field, not a directory-block-height table.
func (s *Store) PutEntryBlock(b *blocks.EntryBlock) error {
	keyMR := b.KeyMR()
	return s.put(nsEntryBlock, keyMR[:], b.Marshal())
}

// PutEntryBlockHead atomically writes b and advances its chain's head to
// point at it.
func (s *Store) PutEntryBlockHead(b *blocks.EntryBlock) error {
	keyMR := b.KeyMR()
	batch := new(leveldb.Batch)
	batchPut(batch, nsEntryBlock, keyMR[:], b.Marshal())
	putChainHeadBatch(batch, b.Header.ChainID[:], keyMR[:])
	return s.db.Write(batch, nil)
}
