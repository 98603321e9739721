// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockelements

import (
	"crypto/sha256"

	"github.com/sambarnes/factom-core/primitives"
)

// FactoidTransactionVersion is the only version this codec understands.
const FactoidTransactionVersion = 0x02

// TransferOutput is a (value, address) pair used for Factoid inputs,
// outputs, and entry-credit purchases alike; the address field means a
// Factoid RCD hash for inputs/outputs and an EC public key for purchases.
type TransferOutput struct {
	Value   uint64
	Address [32]byte
}

// Redeemer is the (RCD version, public key, signature) tuple that
// authorizes one transaction input, in input order.
type Redeemer struct {
	PublicKey [32]byte
	Signature [64]byte
}

// FactoidTransaction moves value between Factoid addresses and optionally
// purchases entry credits in the same transaction.
type FactoidTransaction struct {
	Timestamp    [6]byte
	Inputs       []TransferOutput
	Outputs      []TransferOutput
	ECPurchases  []TransferOutput
	Redeemers    []Redeemer
}

// IsCoinbase reports whether this is the height-anchored coinbase
// transaction: no inputs, no EC purchases, no redeemers.
func (tx *FactoidTransaction) IsCoinbase() bool {
	return len(tx.Inputs) == 0 && len(tx.ECPurchases) == 0 && len(tx.Redeemers) == 0
}

// marshalSignaturePrefix encodes everything up to (but excluding) the
// redeemer list: version, timestamp, counts, inputs, outputs, purchases.
func (tx *FactoidTransaction) marshalSignaturePrefix() []byte {
	buf := make([]byte, 0, 1+6+3+64*len(tx.Inputs))
	buf = append(buf, FactoidTransactionVersion)
	buf = append(buf, tx.Timestamp[:]...)
	buf = append(buf, byte(len(tx.Inputs)), byte(len(tx.Outputs)), byte(len(tx.ECPurchases)))
	for _, in := range tx.Inputs {
		buf = append(buf, primitives.EncodeVarint(in.Value)...)
		buf = append(buf, in.Address[:]...)
	}
	for _, out := range tx.Outputs {
		buf = append(buf, primitives.EncodeVarint(out.Value)...)
		buf = append(buf, out.Address[:]...)
	}
	for _, p := range tx.ECPurchases {
		buf = append(buf, primitives.EncodeVarint(p.Value)...)
		buf = append(buf, p.Address[:]...)
	}
	return buf
}

// Marshal encodes the full transaction: the signature prefix followed by
// one (version, public key, signature) record per redeemer, in input
// order.
func (tx *FactoidTransaction) Marshal() []byte {
	buf := tx.marshalSignaturePrefix()
	for _, r := range tx.Redeemers {
		buf = append(buf, 0x01)
		buf = append(buf, r.PublicKey[:]...)
		buf = append(buf, r.Signature[:]...)
	}
	return buf
}

// TxID returns the transaction's identity hash: SHA256 of the signature
// prefix (the bytes up to and excluding the redeemer list).
func (tx *FactoidTransaction) TxID() primitives.Hash {
	return sha256.Sum256(tx.marshalSignaturePrefix())
}

// UnmarshalFactoidTransaction decodes a FactoidTransaction, failing if
// trailing bytes remain.
func UnmarshalFactoidTransaction(raw []byte) (*FactoidTransaction, error) {
	tx, rest, err := UnmarshalFactoidTransactionWithRemainder(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, newDecodeError("FactoidTransaction", ErrTrailingBytes, "")
	}
	return tx, nil
}

// UnmarshalFactoidTransactionWithRemainder decodes a FactoidTransaction
// from the front of raw and returns the unconsumed remainder, since
// transactions are typically embedded in a longer per-minute body stream.
func UnmarshalFactoidTransactionWithRemainder(raw []byte) (*FactoidTransaction, []byte, error) {
	if len(raw) < 1+6+3 {
		return nil, nil, newDecodeError("FactoidTransaction", ErrShortInput, "missing version/timestamp/count prefix")
	}
	data := raw[1:] // skip version byte

	var tx FactoidTransaction
	copy(tx.Timestamp[:], data[:6])
	data = data[6:]

	inputCount, outputCount, purchaseCount := int(data[0]), int(data[1]), int(data[2])
	data = data[3:]

	readOutputs := func(n int) ([]TransferOutput, error) {
		outs := make([]TransferOutput, 0, n)
		for i := 0; i < n; i++ {
			value, rest, err := primitives.DecodeVarint(data)
			if err != nil {
				return nil, err
			}
			data = rest
			if len(data) < 32 {
				return nil, newDecodeError("FactoidTransaction", ErrShortInput, "truncated address")
			}
			var addr [32]byte
			copy(addr[:], data[:32])
			data = data[32:]
			outs = append(outs, TransferOutput{Value: value, Address: addr})
		}
		return outs, nil
	}

	var err error
	if tx.Inputs, err = readOutputs(inputCount); err != nil {
		return nil, nil, err
	}
	if tx.Outputs, err = readOutputs(outputCount); err != nil {
		return nil, nil, err
	}
	if tx.ECPurchases, err = readOutputs(purchaseCount); err != nil {
		return nil, nil, err
	}

	tx.Redeemers = make([]Redeemer, 0, inputCount)
	for i := 0; i < inputCount; i++ {
		if len(data) < 1+32+64 {
			return nil, nil, newDecodeError("FactoidTransaction", ErrShortInput, "truncated redeemer")
		}
		data = data[1:] // skip RCD version byte, always 0x01 today
		var r Redeemer
		copy(r.PublicKey[:], data[:32])
		data = data[32:]
		copy(r.Signature[:], data[:64])
		data = data[64:]
		tx.Redeemers = append(tx.Redeemers, r)
	}

	return &tx, data, nil
}
