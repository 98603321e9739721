// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

import "github.com/sambarnes/factom-core/primitives"

// System chain ids. Each of the four system chains is identified by 31
// zero bytes followed by a single distinguishing byte.
var (
	AdminBlockChainID       = systemChainID(0x0a)
	EntryCreditBlockChainID = systemChainID(0x0c)
	DirectoryBlockChainID   = systemChainID(0x0d)
	FactoidBlockChainID     = systemChainID(0x0f)
)

func systemChainID(id byte) primitives.Hash {
	var h primitives.Hash
	h[primitives.HashSize-1] = id
	return h
}
