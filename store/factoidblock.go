// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/primitives"
)

// GetFactoidBlockByKeyMR returns the factoid block identified by keyMR,
// or nil with a nil error if none is stored.
func (s *Store) GetFactoidBlockByKeyMR(keyMR primitives.Hash) (*blocks.FactoidBlock, error) {
	raw, err := s.get(nsFactoidBlock, keyMR[:])
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blocks.UnmarshalFactoidBlock(raw)
}

// GetFactoidBlockByHeight resolves height through the height index and
// returns the factoid block there, or nil with a nil error if height has
// no block.
func (s *Store) GetFactoidBlockByHeight(height uint32) (*blocks.FactoidBlock, error) {
	raw, err := s.get(nsFactoidBlockNumber, heightKey(height))
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	keyMR, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "FactoidBlockNumber index value is not a 32-byte hash"}
	}
	b, err := s.GetFactoidBlockByKeyMR(keyMR)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "FactoidBlockNumber index points at a missing block"}
	}
	return b, nil
}

// FactoidBlockHead returns the current factoid chain head, or nil with a
// nil error before the first block is ever put.
func (s *Store) FactoidBlockHead() (*blocks.FactoidBlock, error) {
	raw, err := s.GetChainHead(blocks.FactoidBlockChainID[:])
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	keyMR, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "ChainHead for factoid chain is not a 32-byte hash"}
	}
	b, err := s.GetFactoidBlockByKeyMR(keyMR)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "ChainHead for factoid chain points at a missing block"}
	}
	return b, nil
}

// PutFactoidBlock writes b and its height index, but does not update the
// chain head.
func (s *Store) PutFactoidBlock(b *blocks.FactoidBlock) error {
	keyMR := b.KeyMR()
	if err := s.put(nsFactoidBlockNumber, heightKey(b.Header.Height), keyMR[:]); err != nil {
		return err
	}
	return s.put(nsFactoidBlock, keyMR[:], b.Marshal())
}

// PutFactoidBlockHead atomically writes b, its height index, and the
// factoid chain head in a single batch.
func (s *Store) PutFactoidBlockHead(b *blocks.FactoidBlock) error {
	keyMR := b.KeyMR()
	batch := new(leveldb.Batch)
	batchPut(batch, nsFactoidBlockNumber, heightKey(b.Header.Height), keyMR[:])
	batchPut(batch, nsFactoidBlock, keyMR[:], b.Marshal())
	putChainHeadBatch(batch, blocks.FactoidBlockChainID[:], keyMR[:])
	return s.db.Write(batch, nil)
}
