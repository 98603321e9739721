// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/primitives"
)

// GetEntryCreditBlockByHeaderHash returns the entry credit block
// identified by headerHash (blocks.EntryCreditBlock.HeaderHash), or nil
// with a nil error if none is stored.
func (s *Store) GetEntryCreditBlockByHeaderHash(headerHash primitives.Hash) (*blocks.EntryCreditBlock, error) {
	raw, err := s.get(nsEntryCreditBlock, headerHash[:])
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blocks.UnmarshalEntryCreditBlock(raw)
}

// GetEntryCreditBlockByHeight resolves height through the height index
// and returns the entry credit block there, or nil with a nil error if
// height has no block.
func (s *Store) GetEntryCreditBlockByHeight(height uint32) (*blocks.EntryCreditBlock, error) {
	raw, err := s.get(nsEntryCreditBlockNum, heightKey(height))
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	headerHash, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "EntryCreditBlockNumber index value is not a 32-byte hash"}
	}
	b, err := s.GetEntryCreditBlockByHeaderHash(headerHash)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "EntryCreditBlockNumber index points at a missing block"}
	}
	return b, nil
}

// EntryCreditBlockHead returns the current entry credit chain head, or
// nil with a nil error before the first block is ever put.
func (s *Store) EntryCreditBlockHead() (*blocks.EntryCreditBlock, error) {
	raw, err := s.GetChainHead(blocks.EntryCreditBlockChainID[:])
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	headerHash, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "ChainHead for entry credit chain is not a 32-byte hash"}
	}
	b, err := s.GetEntryCreditBlockByHeaderHash(headerHash)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "ChainHead for entry credit chain points at a missing block"}
	}
	return b, nil
}

// PutEntryCreditBlock writes b and its height index, but does not
// update the chain head.
func (s *Store) PutEntryCreditBlock(b *blocks.EntryCreditBlock) error {
	headerHash := b.HeaderHash()
	if err := s.put(nsEntryCreditBlockNum, heightKey(b.Header.Height), headerHash[:]); err != nil {
		return err
	}
	return s.put(nsEntryCreditBlock, headerHash[:], b.Marshal())
}

// PutEntryCreditBlockHead atomically writes b, its height index, and
// the entry credit chain head in a single batch.
func (s *Store) PutEntryCreditBlockHead(b *blocks.EntryCreditBlock) error {
	headerHash := b.HeaderHash()
	batch := new(leveldb.Batch)
	batchPut(batch, nsEntryCreditBlockNum, heightKey(b.Header.Height), headerHash[:])
	batchPut(batch, nsEntryCreditBlock, headerHash[:], b.Marshal())
	putChainHeadBatch(batch, blocks.EntryCreditBlockChainID[:], headerHash[:])
	return s.db.Write(batch, nil)
}
