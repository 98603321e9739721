// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/sambarnes/factom-core/blockelements"
	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/chaincfg"
	"github.com/sambarnes/factom-core/primitives"
)

// genesisTimestamp is the timestamp, in minutes since the Unix epoch,
// carried by every network's directory block at height 0, matching the
// historical Factom mainnet genesis moment.
const genesisTimestamp = 24018960

// LoadGenesisBlock constructs, persists, and returns height-0's
// directory block (plus its three system blocks) for b's network. The
// networks differ only in the network id and in the entry-credit body,
// whose first minute holds a single server-index object on mainnet; the
// admin and factoid blocks start as the same empty, programmatically
// constructed bodies on every network, since no historical hard-coded
// genesis payload is available to embed outside of mainnet's own
// history.
func (b *Blockchain) LoadGenesisBlock() (*blocks.DirectoryBlock, error) {
	admin := &blocks.AdminBlock{}
	admin.Header = admin.ConstructHeader(primitives.Hash{})

	ec := &blocks.EntryCreditBlock{
		Body: blocks.EntryCreditBlockBody{
			ObjectsByMinute: make(map[uint8][]blocks.EntryCreditObject),
			MinuteOrder:     []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	}
	if b.params.Net == chaincfg.MainNet {
		// Mainnet's first entry credit block records a single M1
		// server-index object in its first minute.
		zero := uint8(0)
		ec.Body.ObjectsByMinute[1] = []blocks.EntryCreditObject{{ServerIndex: &zero}}
	}
	ec.Header = ec.ConstructHeader()

	factoid := &blocks.FactoidBlock{
		Header: blocks.FactoidBlockHeader{ECExchangeRate: 1000},
		Body: blocks.FactoidBlockBody{
			TransactionsByMinute: make(map[uint8][]blockelements.FactoidTransaction),
			MinuteOrder:          []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	}
	factoid.Header = factoid.ConstructHeader()

	directoryBody := blocks.DirectoryBlockBody{
		AdminBlockLookupHash:       admin.LookupHash(),
		EntryCreditBlockHeaderHash: ec.HeaderHash(),
		FactoidBlockKeyMR:          factoid.KeyMR(),
	}
	directory := &blocks.DirectoryBlock{
		Header: blocks.DirectoryBlockHeader{
			NetworkID: b.params.NetworkID,
			Timestamp: genesisTimestamp,
			Height:    0,
		},
		Body: directoryBody,
	}
	directory.Header = directory.ConstructHeader()

	if err := b.store.PutAdminBlockHead(admin); err != nil {
		return nil, err
	}
	if err := b.store.PutEntryCreditBlockHead(ec); err != nil {
		return nil, err
	}
	if err := b.store.PutFactoidBlockHead(factoid); err != nil {
		return nil, err
	}
	if err := b.store.PutDirectoryBlockHead(directory); err != nil {
		return nil, err
	}

	b.StartPendingBlock(directory, genesisTimestamp)
	return directory, nil
}
