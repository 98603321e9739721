// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/primitives"
)

// GetAdminBlockByLookupHash returns the admin block identified by
// lookupHash (blocks.AdminBlock.LookupHash), or nil with a nil error if
// none is stored.
func (s *Store) GetAdminBlockByLookupHash(lookupHash primitives.Hash) (*blocks.AdminBlock, error) {
	raw, err := s.get(nsAdminBlock, lookupHash[:])
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blocks.UnmarshalAdminBlock(raw)
}

// GetAdminBlockByHeight resolves height through the height index and
// returns the admin block there, or nil with a nil error if height has
// no block.
func (s *Store) GetAdminBlockByHeight(height uint32) (*blocks.AdminBlock, error) {
	raw, err := s.get(nsAdminBlockNumber, heightKey(height))
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lookupHash, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "AdminBlockNumber index value is not a 32-byte hash"}
	}
	b, err := s.GetAdminBlockByLookupHash(lookupHash)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "AdminBlockNumber index points at a missing block"}
	}
	return b, nil
}

// AdminBlockHead returns the current admin chain head, or nil with a nil
// error before the first block is ever put.
func (s *Store) AdminBlockHead() (*blocks.AdminBlock, error) {
	raw, err := s.GetChainHead(blocks.AdminBlockChainID[:])
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	lookupHash, err := primitives.NewHashFromBytes(raw)
	if err != nil {
		return nil, &InvariantError{Reason: "ChainHead for admin chain is not a 32-byte hash"}
	}
	b, err := s.GetAdminBlockByLookupHash(lookupHash)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &InvariantError{Reason: "ChainHead for admin chain points at a missing block"}
	}
	return b, nil
}

// PutAdminBlock writes b and its height index, but does not update the
// chain head.
func (s *Store) PutAdminBlock(b *blocks.AdminBlock) error {
	lookupHash := b.LookupHash()
	if err := s.put(nsAdminBlockNumber, heightKey(b.Header.Height), lookupHash[:]); err != nil {
		return err
	}
	return s.put(nsAdminBlock, lookupHash[:], b.Marshal())
}

// PutAdminBlockHead atomically writes b, its height index, and the admin
// chain head in a single batch.
func (s *Store) PutAdminBlockHead(b *blocks.AdminBlock) error {
	lookupHash := b.LookupHash()
	batch := new(leveldb.Batch)
	batchPut(batch, nsAdminBlockNumber, heightKey(b.Header.Height), lookupHash[:])
	batchPut(batch, nsAdminBlock, lookupHash[:], b.Marshal())
	putChainHeadBatch(batch, blocks.AdminBlockChainID[:], lookupHash[:])
	return s.db.Write(batch, nil)
}
