// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockelements

import (
	"github.com/sambarnes/factom-core/primitives"
)

// EntryCommitECID and EntryCommitSize identify the entry-credit-block
// record tag and fixed wire width of an EntryCommit. The width is 136
// bytes, despite the "BITLENGTH" naming the source material used for it.
const (
	EntryCommitECID  = 0x03
	EntryCommitSize  = 136
	entryCommitSigned = 1 + 6 + 32 + 1
)

// EntryCommit pays entry credits to append an entry to an existing chain:
// 1 EC per KiB (up to 10 KiB) of the entry.
type EntryCommit struct {
	Timestamp   [6]byte
	EntryHash   primitives.Hash
	ECSpent     uint8
	ECPublicKey [32]byte
	Signature   [64]byte
}

// MarshalForSignature returns the bytes an EntryCommit's signature covers:
// version byte through the ec_spent byte, inclusive.
func (c *EntryCommit) MarshalForSignature() []byte {
	buf := make([]byte, 0, entryCommitSigned)
	buf = append(buf, 0x00)
	buf = append(buf, c.Timestamp[:]...)
	buf = append(buf, c.EntryHash[:]...)
	buf = append(buf, c.ECSpent)
	return buf
}

// Marshal encodes the full 136-byte EntryCommit.
func (c *EntryCommit) Marshal() []byte {
	buf := c.MarshalForSignature()
	buf = append(buf, c.ECPublicKey[:]...)
	buf = append(buf, c.Signature[:]...)
	return buf
}

// UnmarshalEntryCommit decodes a 136-byte EntryCommit, rejecting an
// ec_spent outside the valid 1..10 window.
func UnmarshalEntryCommit(raw []byte) (*EntryCommit, error) {
	if len(raw) != EntryCommitSize {
		return nil, newDecodeError("EntryCommit", ErrShortInput, "must be exactly 136 bytes")
	}
	data := raw[1:] // skip version byte

	var c EntryCommit
	copy(c.Timestamp[:], data[:6])
	data = data[6:]
	copy(c.EntryHash[:], data[:32])
	data = data[32:]
	c.ECSpent = data[0]
	data = data[1:]

	if c.ECSpent < 1 || c.ECSpent > 10 {
		return nil, newDecodeError("EntryCommit", ErrFieldOutOfRange, "ec_spent must be in 1..10")
	}

	copy(c.ECPublicKey[:], data[:32])
	data = data[32:]
	copy(c.Signature[:], data[:64])
	data = data[64:]

	if len(data) != 0 {
		return nil, newDecodeError("EntryCommit", ErrTrailingBytes, "")
	}
	return &c, nil
}
