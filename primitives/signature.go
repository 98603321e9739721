// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/ed25519"
)

// Ed25519PublicKeySize and Ed25519SignatureSize are the fixed wire widths of
// every public key / signature pair used throughout the protocol.
const (
	Ed25519PublicKeySize = 32
	Ed25519SignatureSize = 64
)

// FullSignature is an (Ed25519 public key, Ed25519 signature) pair, the
// wire representation shared by DirectoryBlockSignature admin messages and
// any other element that commits to a signer's identity inline.
type FullSignature struct {
	PublicKey [Ed25519PublicKeySize]byte
	Signature [Ed25519SignatureSize]byte
}

// Marshal returns the 96-byte wire representation: public key then signature.
func (s FullSignature) Marshal() []byte {
	buf := make([]byte, 0, Ed25519PublicKeySize+Ed25519SignatureSize)
	buf = append(buf, s.PublicKey[:]...)
	buf = append(buf, s.Signature[:]...)
	return buf
}

// UnmarshalFullSignature decodes a 96-byte (public key, signature) pair.
func UnmarshalFullSignature(raw []byte) (FullSignature, error) {
	var s FullSignature
	if len(raw) != Ed25519PublicKeySize+Ed25519SignatureSize {
		return s, fmt.Errorf("full signature must be exactly %d bytes, got %d",
			Ed25519PublicKeySize+Ed25519SignatureSize, len(raw))
	}
	copy(s.PublicKey[:], raw[:Ed25519PublicKeySize])
	copy(s.Signature[:], raw[Ed25519PublicKeySize:])
	return s, nil
}

// Verify reports whether sig.Signature is a valid Ed25519 signature over msg
// under sig.PublicKey. The core never handles private keys; this exists so
// external collaborators (RPC validators, tests) can check a FullSignature
// without importing ed25519 themselves.
func (s FullSignature) Verify(msg []byte) bool {
	return ed25519.Verify(s.PublicKey[:], msg, s.Signature[:])
}

// FullSignatureList is a 32-bit-big-endian-length-prefixed list of
// FullSignature values.
type FullSignatureList []FullSignature

// Marshal returns the wire representation: a 4-byte big-endian count
// followed by each signature's 96-byte encoding in order.
func (l FullSignatureList) Marshal() []byte {
	buf := make([]byte, 4, 4+len(l)*(Ed25519PublicKeySize+Ed25519SignatureSize))
	binary.BigEndian.PutUint32(buf, uint32(len(l)))
	for _, s := range l {
		buf = append(buf, s.Marshal()...)
	}
	return buf
}

// UnmarshalFullSignatureList decodes a length-prefixed FullSignature list,
// failing if trailing bytes remain after the declared count is consumed.
func UnmarshalFullSignatureList(raw []byte) (FullSignatureList, error) {
	if len(raw) < 4 {
		return nil, fmt.Errorf("full signature list: short input")
	}
	count := binary.BigEndian.Uint32(raw)
	data := raw[4:]

	const elemSize = Ed25519PublicKeySize + Ed25519SignatureSize
	list := make(FullSignatureList, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < elemSize {
			return nil, fmt.Errorf("full signature list: short input at element %d", i)
		}
		sig, err := UnmarshalFullSignature(data[:elemSize])
		if err != nil {
			return nil, err
		}
		list = append(list, sig)
		data = data[elemSize:]
	}
	if len(data) != 0 {
		return nil, fmt.Errorf("full signature list: trailing bytes")
	}
	return list, nil
}
