// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/sambarnes/factom-core/blockelements"
	"github.com/sambarnes/factom-core/primitives"
)

// GetEntry returns the entry identified by entryHash, or nil with a nil
// error if none is stored. Resolution is two steps, mirroring how
// entries are actually addressed on the wire (by hash alone, with no
// chain-id carried alongside it): the Entry; namespace first recovers
// which chain the hash belongs to, then that chain's own namespace holds
// the marshalled entry itself.
func (s *Store) GetEntry(entryHash primitives.Hash) (*blockelements.Entry, error) {
	chainIDRaw, err := s.get(nsEntry, entryHash[:])
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	chainID, err := primitives.NewHashFromBytes(chainIDRaw)
	if err != nil {
		return nil, &InvariantError{Reason: "Entry index value is not a 32-byte chain id"}
	}

	raw, err := s.get(chainNamespace(chainID[:]), entryHash[:])
	if err == ErrNotFound {
		return nil, &InvariantError{Reason: "Entry index points at a missing entry"}
	}
	if err != nil {
		return nil, err
	}
	return blockelements.UnmarshalEntry(raw)
}

// HasEntry reports whether chainID's age-partitioned bloom filter has
// seen entryHash. It answers from the filter alone and does not read the
// database. The filters are held in memory and start empty when the
// Store is opened, so only entries put through this Store value are
// reported; a true still warrants the caller treating it as "probably",
// since the filter itself may false positive (GetEntry is the
// authoritative check).
func (s *Store) HasEntry(chainID, entryHash primitives.Hash) bool {
	return s.entryFilter(chainID).Contains(entryHash[:])
}

// PutEntry atomically records e under its own chain's namespace and
// indexes its hash for cross-chain lookup by GetEntry, then marks the
// hash present in that chain's existence filter.
func (s *Store) PutEntry(e *blockelements.Entry) error {
	hash := e.Hash()
	batch := new(leveldb.Batch)
	batchPut(batch, nsEntry, hash[:], e.ChainID[:])
	batchPut(batch, chainNamespace(e.ChainID[:]), hash[:], e.Marshal())
	if err := s.db.Write(batch, nil); err != nil {
		return err
	}
	s.entryFilter(e.ChainID).Add(hash[:])
	return nil
}
