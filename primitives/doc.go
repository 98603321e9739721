// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package primitives implements the wire-level building blocks shared by
// every block type in the factom-core module: the canonical varint used
// throughout the protocol, the leaves-first Merkle tree, the key-MR
// derivation, and the Ed25519 full-signature pair.
package primitives
