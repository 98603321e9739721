// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/sambarnes/factom-core/blockelements"
	"github.com/sambarnes/factom-core/primitives"
)

// FactoidBlockHeader is the fixed-and-expansion preamble of a factoid
// block: a back reference to the predecessor factoid block (both its
// key-MR and its ledger key-MR) plus the exchange rate and accounting
// needed to decode the body that follows.
type FactoidBlockHeader struct {
	BodyMR           primitives.Hash
	PrevKeyMR        primitives.Hash
	PrevLedgerKeyMR  primitives.Hash
	ECExchangeRate   uint64
	Height           uint32
	ExpansionArea    []byte
	TransactionCount uint32
	BodySize         uint32
}

// Marshal encodes the header: chain id, fixed fields, varint-length-prefixed
// expansion area, then transaction count and body size.
func (h *FactoidBlockHeader) Marshal() []byte {
	buf := make([]byte, 0, 32+32+32+32+8+4+16+len(h.ExpansionArea))
	buf = append(buf, FactoidBlockChainID[:]...)
	buf = append(buf, h.BodyMR[:]...)
	buf = append(buf, h.PrevKeyMR[:]...)
	buf = append(buf, h.PrevLedgerKeyMR[:]...)
	var rate [8]byte
	binary.BigEndian.PutUint64(rate[:], h.ECExchangeRate)
	buf = append(buf, rate[:]...)
	var ht [4]byte
	binary.BigEndian.PutUint32(ht[:], h.Height)
	buf = append(buf, ht[:]...)
	buf = append(buf, primitives.EncodeVarint(uint64(len(h.ExpansionArea)))...)
	buf = append(buf, h.ExpansionArea...)
	var tc, bs [4]byte
	binary.BigEndian.PutUint32(tc[:], h.TransactionCount)
	binary.BigEndian.PutUint32(bs[:], h.BodySize)
	buf = append(buf, tc[:]...)
	buf = append(buf, bs[:]...)
	return buf
}

// UnmarshalFactoidBlockHeaderWithRemainder decodes a FactoidBlockHeader
// from the front of raw and returns the unconsumed remainder.
func UnmarshalFactoidBlockHeaderWithRemainder(raw []byte) (*FactoidBlockHeader, []byte, error) {
	if len(raw) < 32 {
		return nil, nil, newDecodeError("FactoidBlockHeader", ErrShortInput, "")
	}
	var chainID primitives.Hash
	copy(chainID[:], raw[:32])
	if chainID != FactoidBlockChainID {
		return nil, nil, newDecodeError("FactoidBlockHeader", ErrFieldOutOfRange, "unexpected chain id")
	}
	data := raw[32:]

	if len(data) < 32+32+32+8+4 {
		return nil, nil, newDecodeError("FactoidBlockHeader", ErrShortInput, "")
	}
	var h FactoidBlockHeader
	copy(h.BodyMR[:], data[:32])
	data = data[32:]
	copy(h.PrevKeyMR[:], data[:32])
	data = data[32:]
	copy(h.PrevLedgerKeyMR[:], data[:32])
	data = data[32:]
	h.ECExchangeRate = binary.BigEndian.Uint64(data[:8])
	data = data[8:]
	h.Height = binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	expansionSize, data, err := primitives.DecodeVarint(data)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(data)) < expansionSize {
		return nil, nil, newDecodeError("FactoidBlockHeader", ErrShortInput, "header expansion area truncated")
	}
	h.ExpansionArea = append([]byte{}, data[:expansionSize]...)
	data = data[expansionSize:]

	if len(data) < 8 {
		return nil, nil, newDecodeError("FactoidBlockHeader", ErrShortInput, "")
	}
	h.TransactionCount = binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	h.BodySize = binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	return &h, data, nil
}

// minuteTerminator is the single zero byte closing out each minute's
// transaction list in a factoid block body.
const minuteTerminator = 0x00

// FactoidBlockBody lists, per minute, the Factoid transactions recorded in
// that minute, each minute's list terminated by a single zero byte.
type FactoidBlockBody struct {
	// TransactionsByMinute maps minute number (1..10) to the ordered
	// transactions recorded in it.
	TransactionsByMinute map[uint8][]blockelements.FactoidTransaction
	// MinuteOrder preserves the order minute terminators were written in,
	// since Go map iteration order is not stable.
	MinuteOrder []uint8
}

// Marshal encodes the body: each minute's marshalled transactions followed
// by its single zero-byte terminator, in MinuteOrder.
func (b *FactoidBlockBody) Marshal() []byte {
	var buf []byte
	for _, minute := range b.MinuteOrder {
		for _, tx := range b.TransactionsByMinute[minute] {
			buf = append(buf, tx.Marshal()...)
		}
		buf = append(buf, minuteTerminator)
	}
	return buf
}

// TransactionCount is the total number of transactions across every minute.
func (b *FactoidBlockBody) TransactionCount() uint32 {
	n := 0
	for _, txs := range b.TransactionsByMinute {
		n += len(txs)
	}
	return uint32(n)
}

// MerkleRoot computes the body's Merkle root: one leaf per transaction
// (SHA256 of its marshalled bytes) followed by one leaf per minute marking
// its terminator (SHA256 of the single zero byte), in the same per-minute
// order Marshal emits.
func (b *FactoidBlockBody) MerkleRoot() primitives.Hash {
	terminatorLeaf := sha256.Sum256([]byte{minuteTerminator})
	leaves := make([]primitives.Hash, 0, b.TransactionCount()+uint32(len(b.MinuteOrder)))
	for _, minute := range b.MinuteOrder {
		for _, tx := range b.TransactionsByMinute[minute] {
			leaves = append(leaves, sha256.Sum256(tx.Marshal()))
		}
		leaves = append(leaves, terminatorLeaf)
	}
	return primitives.MerkleRoot(leaves)
}

// LedgerMerkleRoot computes the body's ledger Merkle root: like MerkleRoot,
// but each transaction leaf hashes only its signature-prefix bytes (via
// TxID) rather than its full marshalled form, so the ledger root never
// commits to RCD/signature payloads. This is the quantity
// PrevLedgerKeyMR/LedgerKeyMR reference.
func (b *FactoidBlockBody) LedgerMerkleRoot() primitives.Hash {
	terminatorLeaf := sha256.Sum256([]byte{minuteTerminator})
	leaves := make([]primitives.Hash, 0, b.TransactionCount()+uint32(len(b.MinuteOrder)))
	for _, minute := range b.MinuteOrder {
		for _, tx := range b.TransactionsByMinute[minute] {
			leaves = append(leaves, tx.TxID())
		}
		leaves = append(leaves, terminatorLeaf)
	}
	return primitives.MerkleRoot(leaves)
}

// UnmarshalFactoidBlockBodyWithRemainder decodes minute-terminated
// transaction lists from the front of raw until all 10 minutes have been
// closed out, and returns the unconsumed remainder. transactionCount is
// used only to sanity-check the result against the header.
func UnmarshalFactoidBlockBodyWithRemainder(raw []byte, transactionCount uint32) (*FactoidBlockBody, []byte, error) {
	data := raw
	body := &FactoidBlockBody{TransactionsByMinute: make(map[uint8][]blockelements.FactoidTransaction)}
	var current []blockelements.FactoidTransaction
	var minute uint8 = 1

	for {
		if len(data) < 1 {
			return nil, nil, newDecodeError("FactoidBlockBody", ErrShortInput, "missing minute terminator")
		}
		if data[0] == minuteTerminator {
			data = data[1:]
			body.TransactionsByMinute[minute] = current
			body.MinuteOrder = append(body.MinuteOrder, minute)
			if minute == 10 {
				break
			}
			current = nil
			minute++
			continue
		}
		tx, rest, err := blockelements.UnmarshalFactoidTransactionWithRemainder(data)
		if err != nil {
			return nil, nil, err
		}
		data = rest
		current = append(current, *tx)
	}

	if body.TransactionCount() != transactionCount {
		return nil, nil, newDecodeError("FactoidBlockBody", ErrFieldOutOfRange, "transaction count mismatch")
	}

	return body, data, nil
}

// FactoidBlock records every Factoid transaction across the network within
// one directory block height.
type FactoidBlock struct {
	Header FactoidBlockHeader
	Body   FactoidBlockBody
}

// Marshal encodes the full factoid block: header then body.
func (f *FactoidBlock) Marshal() []byte {
	buf := f.Header.Marshal()
	return append(buf, f.Body.Marshal()...)
}

// UnmarshalFactoidBlock decodes a FactoidBlock, failing if any bytes remain
// unconsumed afterward.
func UnmarshalFactoidBlock(raw []byte) (*FactoidBlock, error) {
	header, data, err := UnmarshalFactoidBlockHeaderWithRemainder(raw)
	if err != nil {
		return nil, err
	}
	if uint32(len(data)) != header.BodySize {
		return nil, newDecodeError("FactoidBlock", ErrFieldOutOfRange, "header body size does not match actual body size")
	}
	body, data, err := UnmarshalFactoidBlockBodyWithRemainder(data, header.TransactionCount)
	if err != nil {
		return nil, err
	}
	if len(data) != 0 {
		return nil, newDecodeError("FactoidBlock", ErrTrailingBytes, "")
	}
	return &FactoidBlock{Header: *header, Body: *body}, nil
}

// ConstructHeader fills in BodyMR, TransactionCount, and BodySize from the
// current body and returns the sealed header. Callers still own
// PrevKeyMR, PrevLedgerKeyMR, ECExchangeRate, Height, and ExpansionArea.
func (f *FactoidBlock) ConstructHeader() FactoidBlockHeader {
	h := f.Header
	h.BodyMR = f.Body.MerkleRoot()
	h.TransactionCount = f.Body.TransactionCount()
	h.BodySize = uint32(len(f.Body.Marshal()))
	return h
}

// KeyMR returns the block's key Merkle root: SHA256(SHA256(header) ‖
// header.BodyMR). Unlike FullHash, this trusts the header's stated body_mr
// field rather than recomputing it from the body, matching the quantity
// every other block in the chain signs over.
func (f *FactoidBlock) KeyMR() primitives.Hash {
	return primitives.KeyMR(f.Header.Marshal(), f.Header.BodyMR)
}

// FullHash returns SHA256 of the complete marshalled block.
func (f *FactoidBlock) FullHash() primitives.Hash {
	return sha256.Sum256(f.Marshal())
}

// LedgerKeyMR returns the block's ledger key Merkle root: SHA256(SHA256(header) ‖
// ledger_body_mr). The header reserves no field for the ledger body root
// (unlike BodyMR, which is stored and trusted by KeyMR), so this is always
// recomputed fresh from the body.
func (f *FactoidBlock) LedgerKeyMR() primitives.Hash {
	return primitives.KeyMR(f.Header.Marshal(), f.Body.LedgerMerkleRoot())
}
