// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockelements

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"

	"github.com/sambarnes/factom-core/primitives"
)

// EntryVersion is the only version byte an Entry has ever carried on chain.
const EntryVersion = 0x00

// Entry is a single chain record: a chain-id, a set of external ids used
// for indexing and (for the first entry in a chain) chain-id derivation,
// and an opaque content payload.
type Entry struct {
	ChainID     primitives.Hash
	ExternalIDs [][]byte
	Content     []byte

	// Context is optional, derived, never-marshalled metadata filled in by
	// AddContext once the entry's containing entry block is known.
	Context EntryContext
}

// EntryContext is metadata about where an Entry landed, derived from the
// entry block and directory block that contain it. It is never part of the
// wire encoding and may be recomputed at any time from the containing
// blocks.
type EntryContext struct {
	DirectoryBlockKeyMR primitives.Hash
	EntryBlockKeyMR     primitives.Hash
	Height              uint32
	Timestamp           uint32
	Set                 bool
}

// Hash returns the entry's identity hash:
// SHA256( SHA512(marshalled) ‖ marshalled ).
//
// This double-hash commits to both primitives rather than relying on either
// alone, so that recovering a collision would require breaking SHA-512 and
// SHA-256 simultaneously against the same input.
func (e *Entry) Hash() primitives.Hash {
	data := e.Marshal()
	mid := sha512.Sum512(data)
	var prefixed []byte
	prefixed = append(prefixed, mid[:]...)
	prefixed = append(prefixed, data...)
	return sha256.Sum256(prefixed)
}

// Marshal encodes the entry: version byte, 32-byte chain-id, 16-bit
// big-endian external-id section size, then each external id as a
// (16-bit size, payload) pair, then the raw content.
func (e *Entry) Marshal() []byte {
	extBuf := make([]byte, 0, 64)
	for _, ext := range e.ExternalIDs {
		var size [2]byte
		binary.BigEndian.PutUint16(size[:], uint16(len(ext)))
		extBuf = append(extBuf, size[:]...)
		extBuf = append(extBuf, ext...)
	}

	buf := make([]byte, 0, 1+32+2+len(extBuf)+len(e.Content))
	buf = append(buf, EntryVersion)
	buf = append(buf, e.ChainID[:]...)
	var extSize [2]byte
	binary.BigEndian.PutUint16(extSize[:], uint16(len(extBuf)))
	buf = append(buf, extSize[:]...)
	buf = append(buf, extBuf...)
	buf = append(buf, e.Content...)
	return buf
}

// UnmarshalEntry decodes an Entry from its marshalled form. Unlike most
// element types, Entry has no self-describing total length: the caller is
// expected to already know where the entry ends (entry blocks list entry
// hashes, not raw lengths), so UnmarshalEntry always consumes raw to its
// end.
func UnmarshalEntry(raw []byte) (*Entry, error) {
	if len(raw) < 1+32+2 {
		return nil, newDecodeError("Entry", ErrShortInput, "missing version/chain-id/ext-size prefix")
	}
	data := raw[1:] // version byte, always 0x00 today

	var chainID primitives.Hash
	copy(chainID[:], data[:32])
	data = data[32:]

	extSize := binary.BigEndian.Uint16(data[:2])
	data = data[2:]

	if len(data) < int(extSize) {
		return nil, newDecodeError("Entry", ErrShortInput, "external id section truncated")
	}
	extData, data := data[:extSize], data[extSize:]

	var externalIDs [][]byte
	for len(extData) > 0 {
		if len(extData) < 2 {
			return nil, newDecodeError("Entry", ErrShortInput, "external id length prefix truncated")
		}
		size := binary.BigEndian.Uint16(extData[:2])
		extData = extData[2:]
		if len(extData) < int(size) {
			return nil, newDecodeError("Entry", ErrShortInput, "external id payload truncated")
		}
		externalIDs = append(externalIDs, extData[:size])
		extData = extData[size:]
	}

	return &Entry{
		ChainID:     chainID,
		ExternalIDs: externalIDs,
		Content:     data,
	}, nil
}

// DeriveChainID computes the 32-byte chain-id a chain's founding entry
// commits to: SHA256( SHA256(ExtID[0]) ‖ SHA256(ExtID[1]) ‖ … ).
func DeriveChainID(externalIDs [][]byte) primitives.Hash {
	h := sha256.New()
	for _, ext := range externalIDs {
		sum := sha256.Sum256(ext)
		h.Write(sum[:])
	}
	var out primitives.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// AddContext fills in the entry's derived metadata from the entry block
// (and its directory block key-MR) that the entry was sealed into. It
// never mutates the marshalled representation.
func (e *Entry) AddContext(directoryBlockKeyMR, entryBlockKeyMR primitives.Hash, height, blockTimestamp uint32, minute int) {
	e.Context = EntryContext{
		DirectoryBlockKeyMR: directoryBlockKeyMR,
		EntryBlockKeyMR:     entryBlockKeyMR,
		Height:              height,
		Timestamp:           blockTimestamp + uint32(minute)*60,
		Set:                 true,
	}
}
