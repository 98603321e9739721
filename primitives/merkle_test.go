// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"crypto/sha256"
	"testing"
)

func leaf(b byte) Hash {
	var h Hash
	h[0] = b
	return h
}

func TestMerkleRootEmpty(t *testing.T) {
	if got := MerkleRoot(nil); got != ZeroHash {
		t.Errorf("MerkleRoot(nil) = %s, want zero hash", got)
	}
}

func TestMerkleRootSingleLeaf(t *testing.T) {
	l := leaf(0xAB)
	if got := MerkleRoot([]Hash{l}); got != l {
		t.Errorf("MerkleRoot(single) = %s, want %s", got, l)
	}
}

func TestMerkleRootPair(t *testing.T) {
	a, b := leaf(1), leaf(2)
	want := hashPair(a, b)
	if got := MerkleRoot([]Hash{a, b}); got != want {
		t.Errorf("MerkleRoot(pair) = %s, want %s", got, want)
	}
}

func TestMerkleRootOddDuplicatesLastLeaf(t *testing.T) {
	a, b, c := leaf(1), leaf(2), leaf(3)
	top := hashPair(hashPair(a, b), hashPair(c, c))
	if got := MerkleRoot([]Hash{a, b, c}); got != top {
		t.Errorf("MerkleRoot(odd) = %s, want %s", got, top)
	}
}

func TestKeyMR(t *testing.T) {
	header := []byte("header bytes")
	bodyMR := leaf(0x42)
	headerHash := sha256.Sum256(header)
	h := sha256.New()
	h.Write(headerHash[:])
	h.Write(bodyMR[:])
	var want Hash
	copy(want[:], h.Sum(nil))

	if got := KeyMR(header, bodyMR); got != want {
		t.Errorf("KeyMR() = %s, want %s", got, want)
	}
}
