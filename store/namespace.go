// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import "encoding/binary"

// Namespace prefixes, following the semicolon-delimited convention of
// original_source/factom_core/db/leveldb.py verbatim: every key actually
// stored is prefix+key, not a structured encoding.
var (
	nsDirectoryBlock       = []byte("DirectoryBlock;")
	nsDirectoryBlockNumber = []byte("DirectoryBlockNumber;")
	nsAdminBlock           = []byte("AdminBlock;")
	nsAdminBlockNumber     = []byte("AdminBlockNumber;")
	nsFactoidBlock         = []byte("FactoidBlock;")
	nsFactoidBlockNumber   = []byte("FactoidBlockNumber;")
	nsEntryCreditBlock     = []byte("EntryCreditBlock;")
	nsEntryCreditBlockNum  = []byte("EntryCreditBlockNumber;")
	nsEntryBlock           = []byte("EntryBlock;")
	nsEntry                = []byte("Entry;")
	nsChainHead            = []byte("ChainHead;")
)

// heightKey encodes a block height as a 4-byte big-endian key, the form
// every *Number; namespace indexes on.
func heightKey(height uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], height)
	return buf[:]
}

// namespaced returns prefix+key as the literal bytes stored in the
// underlying engine.
func namespaced(prefix, key []byte) []byte {
	out := make([]byte, 0, len(prefix)+len(key))
	out = append(out, prefix...)
	out = append(out, key...)
	return out
}

// chainNamespace returns the per-chain "<chain_id>;" namespace prefix
// used to store that chain's entries, keyed by entry hash.
func chainNamespace(chainID []byte) []byte {
	out := make([]byte, 0, len(chainID)+1)
	out = append(out, chainID...)
	out = append(out, ';')
	return out
}
