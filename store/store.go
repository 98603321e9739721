// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store is a keyspace-namespaced, ordered key-value persistence
// layer for the blockchain's five block types and their entries, backed
// by goleveldb.
package store

import (
	"sync"

	"github.com/decred/dcrd/container/apbf"
	"github.com/syndtr/goleveldb/leveldb"
)

// entryFilterElements and entryFilterFPRate size the per-chain
// age-partitioned bloom filter: generous enough that a single directory
// chain's lifetime entry volume stays well under the false-positive
// knee, at a sub-percent false-positive rate. The filters back HasEntry
// only; GetEntry always reads the database.
const (
	entryFilterElements = 1 << 20
	entryFilterFPRate   = 0.001
)

// Store is a leveldb-backed, namespace-prefixed persistent store for
// directory, admin, factoid, entry-credit, and entry blocks, plus the
// entries themselves.
type Store struct {
	db *leveldb.DB

	mu            sync.Mutex
	entryFilters  map[[32]byte]*apbf.Filter
}

// Open opens (creating if absent) a Store at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:           db,
		entryFilters: make(map[[32]byte]*apbf.Filter),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// get reads prefix+key, translating goleveldb's not-found into
// ErrNotFound and passing every other error through unchanged.
func (s *Store) get(prefix, key []byte) ([]byte, error) {
	v, err := s.db.Get(namespaced(prefix, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// put writes value under prefix+key.
func (s *Store) put(prefix, key, value []byte) error {
	return s.db.Put(namespaced(prefix, key), value, nil)
}

// batchPut stages a prefix+key/value write into an in-progress batch.
func batchPut(b *leveldb.Batch, prefix, key, value []byte) {
	b.Put(namespaced(prefix, key), value)
}

// GetChainHead returns the current head identifier recorded for
// chainID, or nil with a nil error if the chain has never had a block
// sealed.
func (s *Store) GetChainHead(chainID []byte) ([]byte, error) {
	v, err := s.get(nsChainHead, chainID)
	if err == ErrNotFound {
		return nil, nil
	}
	return v, err
}

// putChainHeadBatch stages a chain-head update into batch.
func putChainHeadBatch(b *leveldb.Batch, chainID, identifier []byte) {
	batchPut(b, nsChainHead, chainID, identifier)
}

func (s *Store) entryFilter(chainID [32]byte) *apbf.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.entryFilters[chainID]
	if !ok {
		f = apbf.NewFilter(entryFilterElements, entryFilterFPRate)
		s.entryFilters[chainID] = f
	}
	return f
}
