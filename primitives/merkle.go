// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import "crypto/sha256"

// MerkleRoot computes the leaves-first Merkle root of an ordered sequence
// of 32-byte leaves: adjacent leaves are paired left-to-right and hashed
// with SHA-256, the last leaf of an odd-length layer is duplicated to pair
// with itself, and the process recurses until one hash remains.
//
// An empty input yields the all-zero distinguished digest; a single leaf is
// returned unchanged (no hashing performed). This mirrors
// original_source/utils/merkle.py's get_merkle_root/build_merkle_tree.
func MerkleRoot(leaves []Hash) Hash {
	switch len(leaves) {
	case 0:
		return ZeroHash
	case 1:
		return leaves[0]
	}

	level := leaves
	for len(level) > 1 {
		next := make([]Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hashPair(left, right))
		}
		level = next
	}
	return level[0]
}

func hashPair(left, right Hash) Hash {
	h := sha256.New()
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// KeyMR computes the canonical 32-byte block identifier:
// SHA256( SHA256(header) ‖ body_mr ).
func KeyMR(header []byte, bodyMR Hash) Hash {
	headerHash := sha256.Sum256(header)
	h := sha256.New()
	h.Write(headerHash[:])
	h.Write(bodyMR[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
