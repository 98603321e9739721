// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"

	"github.com/sambarnes/factom-core/blockelements"
	"github.com/sambarnes/factom-core/primitives"
)

// AdminBlockHeader is the fixed-and-expansion preamble of an admin block: a
// back reference to its predecessor plus the message/body accounting
// needed to decode the body that follows.
type AdminBlockHeader struct {
	BackReferenceHash primitives.Hash
	Height            uint32
	ExpansionArea     []byte
	MessageCount      uint32
	BodySize          uint32
}

// Marshal encodes the header: chain id, fixed fields, varint-length-prefixed
// expansion area, then message count and body size.
func (h *AdminBlockHeader) Marshal() []byte {
	buf := make([]byte, 0, 32+32+4+16+len(h.ExpansionArea))
	buf = append(buf, AdminBlockChainID[:]...)
	buf = append(buf, h.BackReferenceHash[:]...)
	var ht [4]byte
	binary.BigEndian.PutUint32(ht[:], h.Height)
	buf = append(buf, ht[:]...)
	buf = append(buf, primitives.EncodeVarint(uint64(len(h.ExpansionArea)))...)
	buf = append(buf, h.ExpansionArea...)
	var mc, bs [4]byte
	binary.BigEndian.PutUint32(mc[:], h.MessageCount)
	binary.BigEndian.PutUint32(bs[:], h.BodySize)
	buf = append(buf, mc[:]...)
	buf = append(buf, bs[:]...)
	return buf
}

// UnmarshalAdminBlockHeaderWithRemainder decodes an AdminBlockHeader from
// the front of raw and returns the unconsumed remainder.
func UnmarshalAdminBlockHeaderWithRemainder(raw []byte) (*AdminBlockHeader, []byte, error) {
	if len(raw) < 32 {
		return nil, nil, newDecodeError("AdminBlockHeader", ErrShortInput, "")
	}
	var chainID primitives.Hash
	copy(chainID[:], raw[:32])
	if chainID != AdminBlockChainID {
		return nil, nil, newDecodeError("AdminBlockHeader", ErrFieldOutOfRange, "unexpected chain id")
	}
	data := raw[32:]

	if len(data) < 32+4 {
		return nil, nil, newDecodeError("AdminBlockHeader", ErrShortInput, "")
	}
	var h AdminBlockHeader
	copy(h.BackReferenceHash[:], data[:32])
	data = data[32:]
	h.Height = binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	expansionSize, data, err := primitives.DecodeVarint(data)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(data)) < expansionSize {
		return nil, nil, newDecodeError("AdminBlockHeader", ErrShortInput, "header expansion area truncated")
	}
	h.ExpansionArea = append([]byte{}, data[:expansionSize]...)
	data = data[expansionSize:]

	if len(data) < 8 {
		return nil, nil, newDecodeError("AdminBlockHeader", ErrShortInput, "")
	}
	h.MessageCount = binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	h.BodySize = binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	return &h, data, nil
}

// AdminBlockBody lists every administrative message recorded at this
// height, in the order the leader queued them.
type AdminBlockBody struct {
	Messages []blockelements.AdminMessage
}

// Marshal encodes the body: each message's admin-id byte followed by its
// own marshalled payload.
func (b *AdminBlockBody) Marshal() []byte {
	var buf []byte
	for _, msg := range b.Messages {
		buf = append(buf, msg.AdminID())
		buf = append(buf, msg.Marshal()...)
	}
	return buf
}

// UnmarshalAdminBlockBodyWithRemainder decodes messageCount admin messages
// from the front of raw and returns the unconsumed remainder.
func UnmarshalAdminBlockBodyWithRemainder(raw []byte, messageCount uint32) (*AdminBlockBody, []byte, error) {
	messages, data, err := blockelements.UnmarshalAdminMessages(raw, messageCount)
	if err != nil {
		return nil, nil, err
	}
	return &AdminBlockBody{Messages: messages}, data, nil
}

// AdminBlock records every administrative action (federated server
// membership changes, directory block signatures, coinbase descriptors,
// and the like) taken at a single directory block height.
type AdminBlock struct {
	Header AdminBlockHeader
	Body   AdminBlockBody
}

// Marshal encodes the full admin block: header then body.
func (a *AdminBlock) Marshal() []byte {
	buf := a.Header.Marshal()
	return append(buf, a.Body.Marshal()...)
}

// UnmarshalAdminBlock decodes an AdminBlock, failing if any bytes remain
// unconsumed afterward.
func UnmarshalAdminBlock(raw []byte) (*AdminBlock, error) {
	header, data, err := UnmarshalAdminBlockHeaderWithRemainder(raw)
	if err != nil {
		return nil, err
	}
	body, data, err := UnmarshalAdminBlockBodyWithRemainder(data, header.MessageCount)
	if err != nil {
		return nil, err
	}
	if len(data) != 0 {
		return nil, newDecodeError("AdminBlock", ErrTrailingBytes, "")
	}
	return &AdminBlock{Header: *header, Body: *body}, nil
}

// ConstructHeader fills in BackReferenceHash, MessageCount, and BodySize
// from the current body and returns the sealed header. Callers still own
// Height and ExpansionArea.
func (a *AdminBlock) ConstructHeader(backReferenceHash primitives.Hash) AdminBlockHeader {
	h := a.Header
	h.BackReferenceHash = backReferenceHash
	h.MessageCount = uint32(len(a.Body.Messages))
	h.BodySize = uint32(len(a.Body.Marshal()))
	return h
}

// BackReferenceHash returns the first 32 bytes of SHA512 of the complete
// marshalled block — the value the next admin block's header references.
func (a *AdminBlock) BackReferenceHash() primitives.Hash {
	digest := sha512.Sum512(a.Marshal())
	var h primitives.Hash
	copy(h[:], digest[:primitives.HashSize])
	return h
}

// LookupHash returns SHA256 of the complete marshalled block — the value
// directory blocks reference when sealing in the admin block for a given
// height.
func (a *AdminBlock) LookupHash() primitives.Hash {
	return sha256.Sum256(a.Marshal())
}
