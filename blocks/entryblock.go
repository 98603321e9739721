// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/sambarnes/factom-core/primitives"
)

// EntryBlockHeaderSize is the fixed marshalled width of an EntryBlockHeader.
const EntryBlockHeaderSize = 140

// EntryBlockHeader is the fixed-width preamble of an entry block: which
// chain it belongs to, a back reference to its predecessor on that chain,
// and its position.
type EntryBlockHeader struct {
	ChainID      primitives.Hash
	BodyMR       primitives.Hash
	PrevKeyMR    primitives.Hash
	PrevFullHash primitives.Hash
	Sequence     uint32
	Height       uint32
	EntryCount   uint32
}

// Marshal encodes the 140-byte header.
func (h *EntryBlockHeader) Marshal() []byte {
	buf := make([]byte, 0, EntryBlockHeaderSize)
	buf = append(buf, h.ChainID[:]...)
	buf = append(buf, h.BodyMR[:]...)
	buf = append(buf, h.PrevKeyMR[:]...)
	buf = append(buf, h.PrevFullHash[:]...)
	var seq, ht, ec [4]byte
	binary.BigEndian.PutUint32(seq[:], h.Sequence)
	binary.BigEndian.PutUint32(ht[:], h.Height)
	binary.BigEndian.PutUint32(ec[:], h.EntryCount)
	buf = append(buf, seq[:]...)
	buf = append(buf, ht[:]...)
	buf = append(buf, ec[:]...)
	return buf
}

// UnmarshalEntryBlockHeaderWithRemainder decodes an EntryBlockHeader from
// the front of raw and returns the unconsumed remainder.
func UnmarshalEntryBlockHeaderWithRemainder(raw []byte) (*EntryBlockHeader, []byte, error) {
	if len(raw) < EntryBlockHeaderSize {
		return nil, nil, newDecodeError("EntryBlockHeader", ErrShortInput, "")
	}
	data := raw[:EntryBlockHeaderSize]
	remainder := raw[EntryBlockHeaderSize:]

	var h EntryBlockHeader
	copy(h.ChainID[:], data[:32])
	data = data[32:]
	copy(h.BodyMR[:], data[:32])
	data = data[32:]
	copy(h.PrevKeyMR[:], data[:32])
	data = data[32:]
	copy(h.PrevFullHash[:], data[:32])
	data = data[32:]
	h.Sequence = binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	h.Height = binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	h.EntryCount = binary.BigEndian.Uint32(data[:4])

	return &h, remainder, nil
}

// minuteMarker is the 32-byte pseudo-hash distinguishing which minute the
// entries immediately preceding it were recorded in: 31 zero bytes
// followed by the minute number (1..10).
func minuteMarker(minute uint8) primitives.Hash {
	var h primitives.Hash
	h[primitives.HashSize-1] = minute
	return h
}

func isMinuteMarker(h primitives.Hash) (uint8, bool) {
	for i := 0; i < primitives.HashSize-1; i++ {
		if h[i] != 0 {
			return 0, false
		}
	}
	minute := h[primitives.HashSize-1]
	if minute < 1 || minute > 10 {
		return 0, false
	}
	return minute, true
}

// EntryBlockBody lists, per minute, the entry hashes recorded in that
// minute, each minute's list terminated by its minuteMarker pseudo-hash.
type EntryBlockBody struct {
	// EntriesByMinute maps minute number (1..10) to the ordered entry
	// hashes recorded in it.
	EntriesByMinute map[uint8][]primitives.Hash
	// MinuteOrder preserves the order minute markers were written in,
	// since Go map iteration order is not stable.
	MinuteOrder []uint8
}

// Marshal encodes the body: each minute's entry hashes followed by its
// marker, in MinuteOrder.
func (b *EntryBlockBody) Marshal() []byte {
	buf := make([]byte, 0, 32*(len(b.MinuteOrder)+b.entryCount()))
	for _, minute := range b.MinuteOrder {
		for _, h := range b.EntriesByMinute[minute] {
			buf = append(buf, h[:]...)
		}
		marker := minuteMarker(minute)
		buf = append(buf, marker[:]...)
	}
	return buf
}

func (b *EntryBlockBody) entryCount() int {
	n := 0
	for _, hashes := range b.EntriesByMinute {
		n += len(hashes)
	}
	return n
}

// SlotCount is the total number of 32-byte body slots: every entry hash
// plus one minute-marker pseudo-hash per minute recorded. This is the
// value the wire header's entry_count field must carry for a body to
// decode back to itself: a count of real entries alone (as the source
// material's header-construction routine computes) would make the decode
// loop under-consume the body and leave marker bytes unaccounted for.
func (b *EntryBlockBody) SlotCount() uint32 {
	return uint32(b.entryCount() + len(b.MinuteOrder))
}

// MerkleRoot computes the body's Merkle root over the same flattened
// (entry hashes then marker, per minute) leaf sequence Marshal emits.
func (b *EntryBlockBody) MerkleRoot() primitives.Hash {
	leaves := make([]primitives.Hash, 0, b.SlotCount())
	for _, minute := range b.MinuteOrder {
		leaves = append(leaves, b.EntriesByMinute[minute]...)
		leaves = append(leaves, minuteMarker(minute))
	}
	return primitives.MerkleRoot(leaves)
}

// UnmarshalEntryBlockBodyWithRemainder decodes slotCount 32-byte slots
// (entry hashes and minute markers intermixed) from the front of raw and
// returns the unconsumed remainder.
func UnmarshalEntryBlockBodyWithRemainder(raw []byte, slotCount uint32) (*EntryBlockBody, []byte, error) {
	data := raw
	body := &EntryBlockBody{EntriesByMinute: make(map[uint8][]primitives.Hash)}
	var current []primitives.Hash

	for i := uint32(0); i < slotCount; i++ {
		if len(data) < 32 {
			return nil, nil, newDecodeError("EntryBlockBody", ErrShortInput, "")
		}
		var h primitives.Hash
		copy(h[:], data[:32])
		data = data[32:]

		if minute, ok := isMinuteMarker(h); ok {
			body.EntriesByMinute[minute] = current
			body.MinuteOrder = append(body.MinuteOrder, minute)
			current = nil
			continue
		}
		current = append(current, h)
	}

	return body, data, nil
}

// EntryBlock records every entry committed to a single chain within one
// directory block height.
type EntryBlock struct {
	Header EntryBlockHeader
	Body   EntryBlockBody

	// DirectoryBlockKeyMR and Timestamp are optional contextual metadata
	// populated by AddContext once the containing directory block is known.
	DirectoryBlockKeyMR primitives.Hash
	Timestamp           uint32
	ContextSet          bool
}

// Marshal encodes the full entry block: header then body.
func (e *EntryBlock) Marshal() []byte {
	buf := e.Header.Marshal()
	return append(buf, e.Body.Marshal()...)
}

// UnmarshalEntryBlock decodes an EntryBlock, failing if any bytes remain
// unconsumed afterward.
func UnmarshalEntryBlock(raw []byte) (*EntryBlock, error) {
	e, rest, err := UnmarshalEntryBlockWithRemainder(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, newDecodeError("EntryBlock", ErrTrailingBytes, "")
	}
	return e, nil
}

// UnmarshalEntryBlockWithRemainder decodes an EntryBlock from the front of
// raw and returns the unconsumed remainder.
func UnmarshalEntryBlockWithRemainder(raw []byte) (*EntryBlock, []byte, error) {
	header, data, err := UnmarshalEntryBlockHeaderWithRemainder(raw)
	if err != nil {
		return nil, nil, err
	}
	body, data, err := UnmarshalEntryBlockBodyWithRemainder(data, header.EntryCount)
	if err != nil {
		return nil, nil, err
	}
	return &EntryBlock{Header: *header, Body: *body}, data, nil
}

// ConstructHeader fills in BodyMR and EntryCount from the current body and
// returns the sealed header. Callers still own ChainID, PrevKeyMR,
// PrevFullHash, Sequence, and Height.
func (e *EntryBlock) ConstructHeader() EntryBlockHeader {
	h := e.Header
	h.BodyMR = e.Body.MerkleRoot()
	h.EntryCount = e.Body.SlotCount()
	return h
}

// KeyMR returns the block's key Merkle root: SHA256(SHA256(header) ‖ body_mr).
func (e *EntryBlock) KeyMR() primitives.Hash {
	return primitives.KeyMR(e.Header.Marshal(), e.Body.MerkleRoot())
}

// FullHash returns SHA256 of the complete marshalled block.
func (e *EntryBlock) FullHash() primitives.Hash {
	return sha256.Sum256(e.Marshal())
}

// AddContext attaches directory-block-derived metadata: the key-MR of the
// directory block that sealed this entry block, and that directory
// block's timestamp.
func (e *EntryBlock) AddContext(directoryBlockKeyMR primitives.Hash, timestamp uint32) {
	e.DirectoryBlockKeyMR = directoryBlockKeyMR
	e.Timestamp = timestamp
	e.ContextSet = true
}
