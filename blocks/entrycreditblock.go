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

// EntryCreditBlockHeader is the fixed-and-expansion preamble of an entry
// credit block: a back reference to the predecessor EC block plus the
// object/body accounting needed to decode the body that follows.
type EntryCreditBlockHeader struct {
	BodyHash             primitives.Hash
	PrevHeaderHash       primitives.Hash
	PrevFullHash         primitives.Hash
	Height               uint32
	HeaderExpansionArea  []byte
	ObjectCount          uint64
	BodySize             uint64
}

// Marshal encodes the header: chain id, fixed fields, varint-length-prefixed
// expansion area, then the 8-byte big-endian object count and body size.
func (h *EntryCreditBlockHeader) Marshal() []byte {
	buf := make([]byte, 0, 32+32+32+32+4+16+len(h.HeaderExpansionArea))
	buf = append(buf, EntryCreditBlockChainID[:]...)
	buf = append(buf, h.BodyHash[:]...)
	buf = append(buf, h.PrevHeaderHash[:]...)
	buf = append(buf, h.PrevFullHash[:]...)
	var ht [4]byte
	binary.BigEndian.PutUint32(ht[:], h.Height)
	buf = append(buf, ht[:]...)
	buf = append(buf, primitives.EncodeVarint(uint64(len(h.HeaderExpansionArea)))...)
	buf = append(buf, h.HeaderExpansionArea...)
	var oc, bs [8]byte
	binary.BigEndian.PutUint64(oc[:], h.ObjectCount)
	binary.BigEndian.PutUint64(bs[:], h.BodySize)
	buf = append(buf, oc[:]...)
	buf = append(buf, bs[:]...)
	return buf
}

// UnmarshalEntryCreditBlockHeaderWithRemainder decodes an
// EntryCreditBlockHeader from the front of raw and returns the unconsumed
// remainder.
func UnmarshalEntryCreditBlockHeaderWithRemainder(raw []byte) (*EntryCreditBlockHeader, []byte, error) {
	if len(raw) < 32 {
		return nil, nil, newDecodeError("EntryCreditBlockHeader", ErrShortInput, "")
	}
	var chainID primitives.Hash
	copy(chainID[:], raw[:32])
	if chainID != EntryCreditBlockChainID {
		return nil, nil, newDecodeError("EntryCreditBlockHeader", ErrFieldOutOfRange, "unexpected chain id")
	}
	data := raw[32:]

	if len(data) < 32+32+32+4 {
		return nil, nil, newDecodeError("EntryCreditBlockHeader", ErrShortInput, "")
	}
	var h EntryCreditBlockHeader
	copy(h.BodyHash[:], data[:32])
	data = data[32:]
	copy(h.PrevHeaderHash[:], data[:32])
	data = data[32:]
	copy(h.PrevFullHash[:], data[:32])
	data = data[32:]
	h.Height = binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	expansionSize, data, err := primitives.DecodeVarint(data)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(data)) < expansionSize {
		return nil, nil, newDecodeError("EntryCreditBlockHeader", ErrShortInput, "header expansion area truncated")
	}
	h.HeaderExpansionArea = append([]byte{}, data[:expansionSize]...)
	data = data[expansionSize:]

	if len(data) < 16 {
		return nil, nil, newDecodeError("EntryCreditBlockHeader", ErrShortInput, "")
	}
	h.ObjectCount = binary.BigEndian.Uint64(data[:8])
	data = data[8:]
	h.BodySize = binary.BigEndian.Uint64(data[:8])
	data = data[8:]

	return &h, data, nil
}

// EntryCreditObject is a single record in one minute's object list: exactly one
// of ServerIndex, ChainCommit, EntryCommit, or BalanceIncrease is set.
type EntryCreditObject struct {
	ServerIndex     *uint8
	ChainCommit     *blockelements.ChainCommit
	EntryCommit     *blockelements.EntryCommit
	BalanceIncrease *blockelements.BalanceIncrease
}

const (
	ecObjectServerIndex = 0x00
	ecObjectMinuteMark  = 0x01
)

// EntryCreditBlockBody lists, per minute, the commits and balance
// increases recorded in it.
type EntryCreditBlockBody struct {
	// ObjectsByMinute maps minute number to its ordered object list.
	ObjectsByMinute map[uint8][]EntryCreditObject
	MinuteOrder     []uint8
}

// Marshal encodes the body: each minute's objects (each tagged by its
// ECID, 0x00 for a raw server index) followed by a 0x01-tagged minute
// marker.
func (b *EntryCreditBlockBody) Marshal() []byte {
	var buf []byte
	for _, minute := range b.MinuteOrder {
		for _, obj := range b.ObjectsByMinute[minute] {
			switch {
			case obj.ServerIndex != nil:
				buf = append(buf, ecObjectServerIndex, *obj.ServerIndex)
			case obj.ChainCommit != nil:
				buf = append(buf, blockelements.ChainCommitECID)
				buf = append(buf, obj.ChainCommit.Marshal()...)
			case obj.EntryCommit != nil:
				buf = append(buf, blockelements.EntryCommitECID)
				buf = append(buf, obj.EntryCommit.Marshal()...)
			case obj.BalanceIncrease != nil:
				buf = append(buf, blockelements.BalanceIncreaseECID)
				buf = append(buf, obj.BalanceIncrease.Marshal()...)
			}
		}
		buf = append(buf, ecObjectMinuteMark, minute)
	}
	return buf
}

// ObjectCount is the total object_count the header must carry: every
// commit/balance-increase/server-index record plus one minute-mark record
// per minute recorded.
func (b *EntryCreditBlockBody) ObjectCount() uint64 {
	n := uint64(len(b.MinuteOrder))
	for _, objs := range b.ObjectsByMinute {
		n += uint64(len(objs))
	}
	return n
}

// UnmarshalEntryCreditBlockBodyWithRemainder decodes objectCount records
// (commits, balance increases, server indices, and minute marks
// intermixed) from the front of raw and returns the unconsumed remainder.
func UnmarshalEntryCreditBlockBodyWithRemainder(raw []byte, objectCount uint64) (*EntryCreditBlockBody, []byte, error) {
	data := raw
	body := &EntryCreditBlockBody{ObjectsByMinute: make(map[uint8][]EntryCreditObject)}
	var current []EntryCreditObject

	for i := uint64(0); i < objectCount; i++ {
		if len(data) < 1 {
			return nil, nil, newDecodeError("EntryCreditBlockBody", ErrShortInput, "missing ecid byte")
		}
		ecid := data[0]
		data = data[1:]

		switch ecid {
		case ecObjectServerIndex:
			if len(data) < 1 {
				return nil, nil, newDecodeError("EntryCreditBlockBody", ErrShortInput, "server index")
			}
			idx := data[0]
			data = data[1:]
			current = append(current, EntryCreditObject{ServerIndex: &idx})
		case ecObjectMinuteMark:
			if len(data) < 1 {
				return nil, nil, newDecodeError("EntryCreditBlockBody", ErrShortInput, "minute mark")
			}
			minute := data[0]
			data = data[1:]
			body.ObjectsByMinute[minute] = current
			body.MinuteOrder = append(body.MinuteOrder, minute)
			current = nil
		case blockelements.ChainCommitECID:
			if len(data) < blockelements.ChainCommitSize {
				return nil, nil, newDecodeError("EntryCreditBlockBody", ErrShortInput, "chain commit")
			}
			cc, err := blockelements.UnmarshalChainCommit(data[:blockelements.ChainCommitSize])
			if err != nil {
				return nil, nil, err
			}
			data = data[blockelements.ChainCommitSize:]
			current = append(current, EntryCreditObject{ChainCommit: cc})
		case blockelements.EntryCommitECID:
			if len(data) < blockelements.EntryCommitSize {
				return nil, nil, newDecodeError("EntryCreditBlockBody", ErrShortInput, "entry commit")
			}
			ec, err := blockelements.UnmarshalEntryCommit(data[:blockelements.EntryCommitSize])
			if err != nil {
				return nil, nil, err
			}
			data = data[blockelements.EntryCommitSize:]
			current = append(current, EntryCreditObject{EntryCommit: ec})
		case blockelements.BalanceIncreaseECID:
			bi, rest, err := blockelements.UnmarshalBalanceIncreaseWithRemainder(data)
			if err != nil {
				return nil, nil, err
			}
			data = rest
			current = append(current, EntryCreditObject{BalanceIncrease: bi})
		default:
			return nil, nil, newDecodeError("EntryCreditBlockBody", ErrFieldOutOfRange, "unrecognized ecid")
		}
	}

	return body, data, nil
}

// EntryCreditBlock records every entry-credit-spending transaction across
// all chains within one directory block height.
type EntryCreditBlock struct {
	Header EntryCreditBlockHeader
	Body   EntryCreditBlockBody
}

// Marshal encodes the full entry credit block: header then body.
func (e *EntryCreditBlock) Marshal() []byte {
	buf := e.Header.Marshal()
	return append(buf, e.Body.Marshal()...)
}

// UnmarshalEntryCreditBlock decodes an EntryCreditBlock, failing if any
// bytes remain unconsumed afterward.
func UnmarshalEntryCreditBlock(raw []byte) (*EntryCreditBlock, error) {
	header, data, err := UnmarshalEntryCreditBlockHeaderWithRemainder(raw)
	if err != nil {
		return nil, err
	}
	body, data, err := UnmarshalEntryCreditBlockBodyWithRemainder(data, header.ObjectCount)
	if err != nil {
		return nil, err
	}
	if len(data) != 0 {
		return nil, newDecodeError("EntryCreditBlock", ErrTrailingBytes, "")
	}
	return &EntryCreditBlock{Header: *header, Body: *body}, nil
}

// ConstructHeader fills in BodyHash, ObjectCount, and BodySize from the
// current body. Callers still own PrevHeaderHash, PrevFullHash, Height,
// and HeaderExpansionArea.
func (e *EntryCreditBlock) ConstructHeader() EntryCreditBlockHeader {
	h := e.Header
	body := e.Body.Marshal()
	h.BodyHash = sha256.Sum256(body)
	h.ObjectCount = e.Body.ObjectCount()
	h.BodySize = uint64(len(body))
	return h
}

// HeaderHash returns SHA256 of the marshalled header — the value
// directory blocks reference when sealing in the entry credit block for
// a given height.
func (e *EntryCreditBlock) HeaderHash() primitives.Hash {
	return sha256.Sum256(e.Header.Marshal())
}

// FullHash returns SHA256 of the complete marshalled block.
func (e *EntryCreditBlock) FullHash() primitives.Hash {
	return sha256.Sum256(e.Marshal())
}
