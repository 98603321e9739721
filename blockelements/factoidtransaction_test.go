// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockelements

import (
	"bytes"
	"encoding/hex"
	"testing"
)

const factoidTxTestVector = "02016bb2d7cd7e0201008991b4e605c07d49124e6a6d968a25be00596939e7cb27af821a3119d60e55fd075ab1838e8d8b64" +
	"330fd717584445ac866dc2facd8b856e63bdb8b15b5ed46c0b053b2c6c5c5c3f8991b4e605330fd717584445ac866dc2facd" +
	"8b856e63bdb8b15b5ed46c0b053b2c6c5c5c3f0117646c5e142a35d2b7d6522cb738dfadb3e4057b7027926173de1e514c5f" +
	"151c92cf5723e76b54a04d42bea61f81c8b7313aabecb5089efcf24d0b03b5f77d6473c4142ac021a041b5aed6ab7d224adf" +
	"9ebe9f8767e4fd5bb3581b2ea62e1102012c94f2bbe49899679c54482eba49bf1d024476845e478f9cce3238f612edd761ef" +
	"8c41822702b5caa37399d857b8601fc36fe66b451359f4f8764b9f6b1bdbcd439fe4f540d31aa7434eb080ccdc59056c14f8" +
	"d70099a362e00f315cd2e41407"

func TestFactoidTransactionUnmarshal(t *testing.T) {
	raw, err := hex.DecodeString(factoidTxTestVector)
	if err != nil {
		t.Fatalf("bad test vector: %v", err)
	}

	tx, err := UnmarshalFactoidTransaction(raw)
	if err != nil {
		t.Fatalf("UnmarshalFactoidTransaction: %v", err)
	}

	wantTxID := "bf5a4700b56c60e2cd2366094901436ee8e78db68768dbc96705bcf26a964d1a"
	if got := hex.EncodeToString(tx.TxID().Bytes()); got != wantTxID {
		t.Errorf("tx id = %s, want %s", got, wantTxID)
	}

	if len(tx.Inputs) != 2 {
		t.Fatalf("got %d inputs, want 2", len(tx.Inputs))
	}
	if tx.Inputs[0].Value != 2452435717 {
		t.Errorf("input[0].value = %d, want 2452435717", tx.Inputs[0].Value)
	}
	wantAddr0 := "c07d49124e6a6d968a25be00596939e7cb27af821a3119d60e55fd075ab1838e"
	if got := hex.EncodeToString(tx.Inputs[0].Address[:]); got != wantAddr0 {
		t.Errorf("input[0].address = %s, want %s", got, wantAddr0)
	}
	if tx.Inputs[1].Value != 214500 {
		t.Errorf("input[1].value = %d, want 214500", tx.Inputs[1].Value)
	}

	if len(tx.Outputs) != 1 {
		t.Fatalf("got %d outputs, want 1", len(tx.Outputs))
	}
	if tx.Outputs[0].Value != 2452435717 {
		t.Errorf("output[0].value = %d, want 2452435717", tx.Outputs[0].Value)
	}

	if len(tx.ECPurchases) != 0 {
		t.Errorf("got %d ec purchases, want 0", len(tx.ECPurchases))
	}

	if len(tx.Redeemers) != 2 {
		t.Fatalf("got %d redeemers, want 2", len(tx.Redeemers))
	}
	wantPub0 := "17646c5e142a35d2b7d6522cb738dfadb3e4057b7027926173de1e514c5f151c"
	if got := hex.EncodeToString(tx.Redeemers[0].PublicKey[:]); got != wantPub0 {
		t.Errorf("redeemer[0].public_key = %s, want %s", got, wantPub0)
	}

	if tx.IsCoinbase() {
		t.Error("transaction with inputs should not be coinbase")
	}
}

func TestFactoidTransactionMarshalRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString(factoidTxTestVector)
	if err != nil {
		t.Fatalf("bad test vector: %v", err)
	}
	tx, err := UnmarshalFactoidTransaction(raw)
	if err != nil {
		t.Fatalf("UnmarshalFactoidTransaction: %v", err)
	}
	if got := tx.Marshal(); !bytes.Equal(got, raw) {
		t.Errorf("marshal(unmarshal(b)) != b:\ngot:  %x\nwant: %x", got, raw)
	}
}

func TestFactoidTransactionCoinbase(t *testing.T) {
	tx := &FactoidTransaction{}
	if !tx.IsCoinbase() {
		t.Error("empty transaction should be coinbase")
	}
}
