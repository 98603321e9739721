// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/sambarnes/factom-core/primitives"
)

// DirectoryBlockHeaderSize is the fixed marshalled width of a
// DirectoryBlockHeader, including its leading version byte.
const DirectoryBlockHeaderSize = 113

// DirectoryBlockHeader is the fixed-width preamble of a directory block:
// the network it belongs to, the Merkle root of its body, and a back
// reference to its predecessor.
type DirectoryBlockHeader struct {
	NetworkID     uint32
	BodyMR        primitives.Hash
	PrevKeyMR     primitives.Hash
	PrevFullHash  primitives.Hash
	Timestamp     uint32
	Height        uint32
	BlockCount    uint32
}

// Marshal encodes the 113-byte header: a single version byte (always
// 0x00) followed by every field in declaration order, each big-endian.
// Unlike the body, the header does not carry the directory chain id on
// the wire — it is implied by context.
func (h *DirectoryBlockHeader) Marshal() []byte {
	buf := make([]byte, 0, DirectoryBlockHeaderSize)
	buf = append(buf, 0x00)
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], h.NetworkID)
	buf = append(buf, n[:]...)
	buf = append(buf, h.BodyMR[:]...)
	buf = append(buf, h.PrevKeyMR[:]...)
	buf = append(buf, h.PrevFullHash[:]...)
	var t [4]byte
	binary.BigEndian.PutUint32(t[:], h.Timestamp)
	buf = append(buf, t[:]...)
	var ht [4]byte
	binary.BigEndian.PutUint32(ht[:], h.Height)
	buf = append(buf, ht[:]...)
	var bc [4]byte
	binary.BigEndian.PutUint32(bc[:], h.BlockCount)
	buf = append(buf, bc[:]...)
	return buf
}

// UnmarshalDirectoryBlockHeaderWithRemainder decodes a DirectoryBlockHeader
// from the front of raw and returns the unconsumed remainder.
func UnmarshalDirectoryBlockHeaderWithRemainder(raw []byte) (*DirectoryBlockHeader, []byte, error) {
	if len(raw) < DirectoryBlockHeaderSize {
		return nil, nil, newDecodeError("DirectoryBlockHeader", ErrShortInput, "")
	}
	data := raw[1:DirectoryBlockHeaderSize] // version byte; bound to the fixed header width
	remainder := raw[DirectoryBlockHeaderSize:]

	var h DirectoryBlockHeader
	h.NetworkID = binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	copy(h.BodyMR[:], data[:32])
	data = data[32:]
	copy(h.PrevKeyMR[:], data[:32])
	data = data[32:]
	copy(h.PrevFullHash[:], data[:32])
	data = data[32:]
	h.Timestamp = binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	h.Height = binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	h.BlockCount = binary.BigEndian.Uint32(data[:4])

	return &h, remainder, nil
}

// EntryBlockRef is a (chain id, key-MR) pair naming a single entry block
// sealed into a directory block.
type EntryBlockRef struct {
	ChainID primitives.Hash
	KeyMR   primitives.Hash
}

// DirectoryBlockBody lists the three system blocks (in fixed order: admin,
// entry credit, factoid) sealed at this height, followed by every entry
// block sealed at this height in the order chains were touched.
type DirectoryBlockBody struct {
	AdminBlockLookupHash       primitives.Hash
	EntryCreditBlockHeaderHash primitives.Hash
	FactoidBlockKeyMR          primitives.Hash
	EntryBlocks                []EntryBlockRef
}

// Marshal encodes the body as a flat sequence of (chain id, hash) pairs:
// the three system blocks first, then one pair per entry block.
func (b *DirectoryBlockBody) Marshal() []byte {
	buf := make([]byte, 0, (3+len(b.EntryBlocks))*64)
	buf = append(buf, AdminBlockChainID[:]...)
	buf = append(buf, b.AdminBlockLookupHash[:]...)
	buf = append(buf, EntryCreditBlockChainID[:]...)
	buf = append(buf, b.EntryCreditBlockHeaderHash[:]...)
	buf = append(buf, FactoidBlockChainID[:]...)
	buf = append(buf, b.FactoidBlockKeyMR[:]...)
	for _, eb := range b.EntryBlocks {
		buf = append(buf, eb.ChainID[:]...)
		buf = append(buf, eb.KeyMR[:]...)
	}
	return buf
}

// BlockCount is the number of (chain id, hash) pairs the body carries:
// always 3 system blocks plus one per entry block.
func (b *DirectoryBlockBody) BlockCount() uint32 {
	return uint32(3 + len(b.EntryBlocks))
}

// MerkleRoot computes the body's Merkle root over its (chain id, hash)
// pairs, flattened leaf-per-hash in the same order Marshal emits them:
// [admin_chain_id, admin_lookup_hash, ec_chain_id, ec_header_hash,
// factoid_chain_id, factoid_keymr, entry_block_chain_id, entry_block_keymr, ...].
func (b *DirectoryBlockBody) MerkleRoot() primitives.Hash {
	leaves := make([]primitives.Hash, 0, 2*(3+len(b.EntryBlocks)))
	leaves = append(leaves,
		AdminBlockChainID, b.AdminBlockLookupHash,
		EntryCreditBlockChainID, b.EntryCreditBlockHeaderHash,
		FactoidBlockChainID, b.FactoidBlockKeyMR,
	)
	for _, eb := range b.EntryBlocks {
		leaves = append(leaves, eb.ChainID, eb.KeyMR)
	}
	return primitives.MerkleRoot(leaves)
}

// UnmarshalDirectoryBlockBodyWithRemainder decodes blockCount (chain id,
// hash) pairs from the front of raw and returns the unconsumed remainder.
// The first three pairs must name the admin, entry credit, and factoid
// chains in that fixed order.
func UnmarshalDirectoryBlockBodyWithRemainder(raw []byte, blockCount uint32) (*DirectoryBlockBody, []byte, error) {
	if blockCount < 3 {
		return nil, nil, newDecodeError("DirectoryBlockBody", ErrFieldOutOfRange, "block_count must be at least 3")
	}
	data := raw
	pair := func(wantChainID primitives.Hash, name string) (primitives.Hash, error) {
		var zero primitives.Hash
		if len(data) < 64 {
			return zero, newDecodeError("DirectoryBlockBody", ErrShortInput, name)
		}
		var chainID primitives.Hash
		copy(chainID[:], data[:32])
		if chainID != wantChainID {
			return zero, newDecodeError("DirectoryBlockBody", ErrFieldOutOfRange, name+": unexpected chain id")
		}
		var h primitives.Hash
		copy(h[:], data[32:64])
		data = data[64:]
		return h, nil
	}

	var b DirectoryBlockBody
	var err error
	if b.AdminBlockLookupHash, err = pair(AdminBlockChainID, "admin block"); err != nil {
		return nil, nil, err
	}
	if b.EntryCreditBlockHeaderHash, err = pair(EntryCreditBlockChainID, "entry credit block"); err != nil {
		return nil, nil, err
	}
	if b.FactoidBlockKeyMR, err = pair(FactoidBlockChainID, "factoid block"); err != nil {
		return nil, nil, err
	}

	for i := uint32(3); i < blockCount; i++ {
		if len(data) < 64 {
			return nil, nil, newDecodeError("DirectoryBlockBody", ErrShortInput, "entry block reference")
		}
		var ref EntryBlockRef
		copy(ref.ChainID[:], data[:32])
		copy(ref.KeyMR[:], data[32:64])
		data = data[64:]
		b.EntryBlocks = append(b.EntryBlocks, ref)
	}

	return &b, data, nil
}

// DirectoryBlock is the root block of each height: it commits to exactly
// one instance each of the admin, entry credit, and factoid block, plus
// every entry block touched that height.
type DirectoryBlock struct {
	Header DirectoryBlockHeader
	Body   DirectoryBlockBody
}

// Marshal encodes the full directory block: header then body.
func (d *DirectoryBlock) Marshal() []byte {
	buf := d.Header.Marshal()
	return append(buf, d.Body.Marshal()...)
}

// UnmarshalDirectoryBlock decodes a DirectoryBlock, failing if any bytes
// remain unconsumed afterward.
func UnmarshalDirectoryBlock(raw []byte) (*DirectoryBlock, error) {
	d, rest, err := UnmarshalDirectoryBlockWithRemainder(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, newDecodeError("DirectoryBlock", ErrTrailingBytes, "")
	}
	return d, nil
}

// UnmarshalDirectoryBlockWithRemainder decodes a DirectoryBlock from the
// front of raw and returns the unconsumed remainder.
func UnmarshalDirectoryBlockWithRemainder(raw []byte) (*DirectoryBlock, []byte, error) {
	header, data, err := UnmarshalDirectoryBlockHeaderWithRemainder(raw)
	if err != nil {
		return nil, nil, err
	}
	body, data, err := UnmarshalDirectoryBlockBodyWithRemainder(data, header.BlockCount)
	if err != nil {
		return nil, nil, err
	}
	return &DirectoryBlock{Header: *header, Body: *body}, data, nil
}

// ConstructHeader fills in BodyMR and BlockCount from the current body and
// returns the sealed header. Callers still own NetworkID, PrevKeyMR,
// PrevFullHash, Timestamp, and Height.
func (d *DirectoryBlock) ConstructHeader() DirectoryBlockHeader {
	h := d.Header
	h.BodyMR = d.Body.MerkleRoot()
	h.BlockCount = d.Body.BlockCount()
	return h
}

// KeyMR returns the block's key Merkle root: SHA256(SHA256(header) ‖ body_mr).
func (d *DirectoryBlock) KeyMR() primitives.Hash {
	return primitives.KeyMR(d.Header.Marshal(), d.Body.MerkleRoot())
}

// FullHash returns SHA256 of the complete marshalled block.
func (d *DirectoryBlock) FullHash() primitives.Hash {
	return sha256.Sum256(d.Marshal())
}
