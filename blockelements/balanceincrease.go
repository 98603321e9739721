// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockelements

import "github.com/sambarnes/factom-core/primitives"

// BalanceIncreaseECID identifies a BalanceIncrease record within an
// entry-credit block body.
const BalanceIncreaseECID = 0x04

// BalanceIncrease records an entry-credit purchase: a buyer's EC public
// key, the source Factoid transaction that paid for it, the index of the
// relevant EC-purchase output within that transaction, and the quantity of
// EC granted.
type BalanceIncrease struct {
	ECPublicKey [32]byte
	TxID        primitives.Hash
	Index       uint64
	Quantity    uint64
}

// Marshal encodes the BalanceIncrease: 32-byte EC public key, 32-byte
// source transaction id, then (index, quantity) as canonical varints.
func (b *BalanceIncrease) Marshal() []byte {
	buf := make([]byte, 0, 32+32+10+10)
	buf = append(buf, b.ECPublicKey[:]...)
	buf = append(buf, b.TxID[:]...)
	buf = append(buf, primitives.EncodeVarint(b.Index)...)
	buf = append(buf, primitives.EncodeVarint(b.Quantity)...)
	return buf
}

// UnmarshalBalanceIncrease decodes a BalanceIncrease, failing if trailing
// bytes remain.
func UnmarshalBalanceIncrease(raw []byte) (*BalanceIncrease, error) {
	b, rest, err := UnmarshalBalanceIncreaseWithRemainder(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, newDecodeError("BalanceIncrease", ErrTrailingBytes, "")
	}
	return b, nil
}

// UnmarshalBalanceIncreaseWithRemainder decodes a BalanceIncrease from the
// front of raw and returns the unconsumed remainder, since BalanceIncrease
// has no self-describing total length and is typically embedded in a
// longer entry-credit-block stream.
func UnmarshalBalanceIncreaseWithRemainder(raw []byte) (*BalanceIncrease, []byte, error) {
	if len(raw) < 32+32 {
		return nil, nil, newDecodeError("BalanceIncrease", ErrShortInput, "missing ec-public-key/tx-id prefix")
	}
	var b BalanceIncrease
	copy(b.ECPublicKey[:], raw[:32])
	data := raw[32:]
	copy(b.TxID[:], data[:32])
	data = data[32:]

	index, data, err := primitives.DecodeVarint(data)
	if err != nil {
		return nil, nil, err
	}
	b.Index = index

	quantity, data, err := primitives.DecodeVarint(data)
	if err != nil {
		return nil, nil, err
	}
	b.Quantity = quantity

	return &b, data, nil
}
