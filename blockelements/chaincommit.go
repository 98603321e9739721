// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockelements

import (
	"github.com/sambarnes/factom-core/primitives"
)

// ChainCommitECID and ChainCommitSize identify the entry-credit-block
// record tag and fixed wire width of a ChainCommit. The width is 200
// bytes, despite the "BITLENGTH" naming the source material used for it.
const (
	ChainCommitECID  = 0x02
	ChainCommitSize  = 200
	chainCommitSigned = 1 + 6 + 32 + 32 + 32 + 1 // version..ec_spent prefix
)

// ChainCommit pays entry credits to create a brand new chain: 10 EC for
// the chain itself plus 1 EC per KiB (up to 10 KiB) of the founding entry.
type ChainCommit struct {
	Timestamp    [6]byte
	ChainIDHash  primitives.Hash
	CommitWeld   primitives.Hash
	EntryHash    primitives.Hash
	ECSpent      uint8
	ECPublicKey  [32]byte
	Signature    [64]byte
}

// MarshalForSignature returns the bytes a ChainCommit's signature covers:
// version byte through the ec_spent byte, inclusive.
func (c *ChainCommit) MarshalForSignature() []byte {
	buf := make([]byte, 0, chainCommitSigned)
	buf = append(buf, 0x00)
	buf = append(buf, c.Timestamp[:]...)
	buf = append(buf, c.ChainIDHash[:]...)
	buf = append(buf, c.CommitWeld[:]...)
	buf = append(buf, c.EntryHash[:]...)
	buf = append(buf, c.ECSpent)
	return buf
}

// Marshal encodes the full 200-byte ChainCommit.
func (c *ChainCommit) Marshal() []byte {
	buf := c.MarshalForSignature()
	buf = append(buf, c.ECPublicKey[:]...)
	buf = append(buf, c.Signature[:]...)
	return buf
}

// UnmarshalChainCommit decodes a 200-byte ChainCommit, rejecting an
// ec_spent outside the valid 11..20 window (10 EC creation fee plus 1
// EC/KiB up to 10 KiB).
func UnmarshalChainCommit(raw []byte) (*ChainCommit, error) {
	if len(raw) != ChainCommitSize {
		return nil, newDecodeError("ChainCommit", ErrShortInput, "must be exactly 200 bytes")
	}
	data := raw[1:] // skip version byte

	var c ChainCommit
	copy(c.Timestamp[:], data[:6])
	data = data[6:]
	copy(c.ChainIDHash[:], data[:32])
	data = data[32:]
	copy(c.CommitWeld[:], data[:32])
	data = data[32:]
	copy(c.EntryHash[:], data[:32])
	data = data[32:]
	c.ECSpent = data[0]
	data = data[1:]

	if c.ECSpent <= 10 || c.ECSpent > 20 {
		return nil, newDecodeError("ChainCommit", ErrFieldOutOfRange, "ec_spent must be in 11..20")
	}

	copy(c.ECPublicKey[:], data[:32])
	data = data[32:]
	copy(c.Signature[:], data[:64])
	data = data[64:]

	if len(data) != 0 {
		return nil, newDecodeError("ChainCommit", ErrTrailingBytes, "")
	}
	return &c, nil
}
