// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/primitives"
)

// GetDirectoryBlockByKeyMR returns the directory block identified by
// keyMR, or nil with a nil error if none is stored.
func (s *Store) GetDirectoryBlockByKeyMR(keyMR primitives.Hash) (*blocks.DirectoryBlock, error) {
	raw, err := s.get(nsDirectoryBlock, keyMR[:])
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blocks.UnmarshalDirectoryBlock(raw)
}

// GetDirectoryBlockByHeight resolves height through the height index and
// returns the directory block there, or nil with a nil error if height
// has no block.
func (s *Store) GetDirectoryBlockByHeight(height uint32) (*blocks.DirectoryBlock, error) {
	raw, err := s.get(nsDirectoryBlockNumber, heightKey(height))
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	keyMR, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "DirectoryBlockNumber index value is not a 32-byte hash"}
	}
	b, err := s.GetDirectoryBlockByKeyMR(keyMR)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "DirectoryBlockNumber index points at a missing block"}
	}
	return b, nil
}

// DirectoryBlockHead returns the current directory chain head, or nil
// with a nil error before the first block is ever put.
func (s *Store) DirectoryBlockHead() (*blocks.DirectoryBlock, error) {
	raw, err := s.GetChainHead(blocks.DirectoryBlockChainID[:])
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	keyMR, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "ChainHead for directory chain is not a 32-byte hash"}
	}
	b, err := s.GetDirectoryBlockByKeyMR(keyMR)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "ChainHead for directory chain points at a missing block"}
	}
	return b, nil
}

// PutDirectoryBlock writes b and its height index, but does not update
// the chain head.
func (s *Store) PutDirectoryBlock(b *blocks.DirectoryBlock) error {
	keyMR := b.KeyMR()
	if err := s.put(nsDirectoryBlockNumber, heightKey(b.Header.Height), keyMR[:]); err != nil {
		return err
	}
	return s.put(nsDirectoryBlock, keyMR[:], b.Marshal())
}

// PutDirectoryBlockHead atomically writes b, its height index, and the
// directory chain head in a single batch.
func (s *Store) PutDirectoryBlockHead(b *blocks.DirectoryBlock) error {
	keyMR := b.KeyMR()
	batch := new(leveldb.Batch)
	batchPut(batch, nsDirectoryBlockNumber, heightKey(b.Header.Height), keyMR[:])
	batchPut(batch, nsDirectoryBlock, keyMR[:], b.Marshal())
	putChainHeadBatch(batch, blocks.DirectoryBlockChainID[:], keyMR[:])
	return s.db.Write(batch, nil)
}
