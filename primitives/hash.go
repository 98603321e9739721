// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the number of bytes in every hash used by the protocol:
// entry hashes, chain ids, key-MRs, body merkle roots, and lookup hashes
// are all 32-byte SHA-256 (or SHA-256-derived) digests.
const HashSize = 32

// Hash is a fixed-size 32-byte array. Unlike btcsuite/decred's chainhash.Hash,
// Hash does NOT reverse bytes for display: Factom hashes and chain ids are
// conventionally printed and compared in the same natural (big-endian, as
// marshalled) byte order everywhere, including factomd's own RPC layer, so a
// reversed hex string would silently disagree with every reference vector
// and log line a caller might cross-check against.
type Hash [HashSize]byte

// ZeroHash is the all-zero 32-byte digest used as a previous-block reference
// when no prior block exists (e.g. genesis, or a brand new chain's first
// entry block).
var ZeroHash = Hash{}

// String returns the natural-order lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is the all-zero digest.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// NewHashFromBytes creates a Hash from a byte slice, which must be exactly
// HashSize bytes long.
func NewHashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, fmt.Errorf("invalid hash length %d, want %d", len(b), HashSize)
	}
	copy(h[:], b)
	return h, nil
}
