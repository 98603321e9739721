// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/ed25519"
)

func TestFullSignatureRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	msg := []byte("directory block signing message")
	sig := ed25519.Sign(priv, msg)

	var fs FullSignature
	copy(fs.PublicKey[:], pub)
	copy(fs.Signature[:], sig)

	if !fs.Verify(msg) {
		t.Fatal("Verify() = false, want true")
	}
	if fs.Verify([]byte("tampered")) {
		t.Fatal("Verify() on tampered message = true, want false")
	}

	raw := fs.Marshal()
	got, err := UnmarshalFullSignature(raw)
	if err != nil {
		t.Fatalf("UnmarshalFullSignature: %v", err)
	}
	if got != fs {
		t.Fatalf("round trip mismatch")
	}
}

func TestUnmarshalFullSignatureRejectsWrongLength(t *testing.T) {
	if _, err := UnmarshalFullSignature(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short input")
	}
}

func TestFullSignatureListRoundTrip(t *testing.T) {
	var list FullSignatureList
	for i := 0; i < 3; i++ {
		pub, priv, _ := ed25519.GenerateKey(nil)
		var fs FullSignature
		copy(fs.PublicKey[:], pub)
		copy(fs.Signature[:], ed25519.Sign(priv, []byte{byte(i)}))
		list = append(list, fs)
	}

	raw := list.Marshal()
	got, err := UnmarshalFullSignatureList(raw)
	if err != nil {
		t.Fatalf("UnmarshalFullSignatureList: %v", err)
	}
	if len(got) != len(list) {
		t.Fatalf("got %d signatures, want %d", len(got), len(list))
	}
	for i := range list {
		if got[i] != list[i] {
			t.Fatalf("signature %d mismatch", i)
		}
	}
}

func TestUnmarshalFullSignatureListRejectsTrailingBytes(t *testing.T) {
	raw := append(FullSignatureList{}.Marshal(), 0xFF)
	if _, err := UnmarshalFullSignatureList(raw); err == nil {
		t.Fatal("expected error for trailing bytes")
	}
}

func TestFullSignatureListMarshalEmpty(t *testing.T) {
	raw := FullSignatureList{}.Marshal()
	if !bytes.Equal(raw, []byte{0, 0, 0, 0}) {
		t.Fatalf("empty list marshal = %x, want 00000000", raw)
	}
}
