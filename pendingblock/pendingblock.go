// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pendingblock stages admin messages, entry-credit commits,
// entries, and Factoid transactions arriving within the interval between
// two finalized directory blocks, and finalizes them into a consistent
// five-block set.
package pendingblock

import (
	"fmt"

	"github.com/jrick/bitset"

	"github.com/sambarnes/factom-core/blockelements"
	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/primitives"
)

// minutesPerBlock is the number of minutes every sealed block divides
// into, numbered 1..10 on the wire.
const minutesPerBlock = 10

// HeadLookup resolves the current chain-head block for each of the admin,
// entry-credit and Factoid system chains and for an arbitrary user chain. A nil block with a nil
// error represents the normal "no prior block" case (a brand-new chain,
// or height 0); a non-nil error represents a real I/O or decode failure.
type HeadLookup interface {
	AdminBlockHead() (*blocks.AdminBlock, error)
	EntryCreditBlockHead() (*blocks.EntryCreditBlock, error)
	FactoidBlockHead() (*blocks.FactoidBlock, error)
	EntryBlockHead(chainID primitives.Hash) (*blocks.EntryBlock, error)
}

// Oracle supplies the EC-per-FCT exchange rate a sealed Factoid block
// stamps into its header. It is an out-of-scope collaborator: the core
// never derives this value itself.
type Oracle interface {
	ECExchangeRate(height uint32) (uint64, error)
}

// FullBlockSet is the tuple SealBlock emits: the directory block plus
// every sub-block it references.
type FullBlockSet struct {
	Directory   *blocks.DirectoryBlock
	Admin       *blocks.AdminBlock
	EntryCredit *blocks.EntryCreditBlock
	Factoid     *blocks.FactoidBlock
	EntryBlocks []*blocks.EntryBlock
}

// PendingBlock is a staging container owned by a Blockchain during the
// interval between two finalized directory blocks. It accumulates admin
// messages, entry-credit commits, entries, and Factoid transactions by
// minute, then finalizes them into a FullBlockSet.
type PendingBlock struct {
	Previous  *blocks.DirectoryBlock
	Height    uint32
	Timestamp uint32

	// currentMinute is the 0-indexed minute presently open for writes
	// (0..9, corresponding to wire minute numbers 1..10).
	currentMinute uint8
	// sealedMinutes records, per 0-indexed minute, whether SealMinute has
	// already closed it. AddXxx calls naming an already-sealed minute are
	// a programmer error: the owning Blockchain's single-threaded loop
	// should never revisit a closed minute.
	sealedMinutes bitset.Bytes

	AdminMessages   []blockelements.AdminMessage
	FactoidBody     blocks.FactoidBlockBody
	EntryCreditBody blocks.EntryCreditBlockBody

	entryBodies     map[primitives.Hash]*blocks.EntryBlockBody
	entryChainOrder []primitives.Hash
}

// New starts a PendingBlock following previous, the last finalized
// directory block. previous must not be nil: the genesis block is
// constructed directly by the Blockchain facade, never through sealing a
// PendingBlock.
func New(previous *blocks.DirectoryBlock, timestamp uint32) *PendingBlock {
	if previous == nil {
		panic("pendingblock: New requires a non-nil previous directory block")
	}
	return &PendingBlock{
		Previous:        previous,
		Height:          previous.Header.Height + 1,
		Timestamp:       timestamp,
		sealedMinutes:   bitset.New(minutesPerBlock),
		FactoidBody:     blocks.FactoidBlockBody{TransactionsByMinute: make(map[uint8][]blockelements.FactoidTransaction)},
		EntryCreditBody: blocks.EntryCreditBlockBody{ObjectsByMinute: make(map[uint8][]blocks.EntryCreditObject)},
		entryBodies:     make(map[primitives.Hash]*blocks.EntryBlockBody),
	}
}

// CurrentMinute returns the wire-numbered minute (1..10) presently open
// for writes.
func (p *PendingBlock) CurrentMinute() uint8 {
	return p.currentMinute + 1
}

// checkMinute validates that minute is in range and not already sealed,
// panicking otherwise: a second AddXxx call naming an already-sealed
// minute is a programmer error, not a recoverable input error, much like
// an out-of-bounds slice index.
func (p *PendingBlock) checkMinute(minute uint8) {
	if minute < 1 || minute > minutesPerBlock {
		panic(fmt.Sprintf("pendingblock: minute %d out of range 1..%d", minute, minutesPerBlock))
	}
	if p.sealedMinutes.Get(int(minute - 1)) {
		panic(fmt.Sprintf("pendingblock: minute %d is already sealed", minute))
	}
}

// AddFactoidTransaction appends tx to minute's transaction list.
func (p *PendingBlock) AddFactoidTransaction(minute uint8, tx blockelements.FactoidTransaction) {
	p.checkMinute(minute)
	p.FactoidBody.TransactionsByMinute[minute] = append(p.FactoidBody.TransactionsByMinute[minute], tx)
}

// AddCommit appends an entry-credit object (a ChainCommit, EntryCommit, or
// BalanceIncrease, via obj's dynamic tag) to minute's object list.
func (p *PendingBlock) AddCommit(minute uint8, obj blocks.EntryCreditObject) {
	p.checkMinute(minute)
	p.EntryCreditBody.ObjectsByMinute[minute] = append(p.EntryCreditBody.ObjectsByMinute[minute], obj)
}

// AddEntry records e's hash under minute in the entry block body for
// e.ChainID, lazily creating that chain's accumulator on first use.
func (p *PendingBlock) AddEntry(minute uint8, e *blockelements.Entry) {
	p.checkMinute(minute)
	body, ok := p.entryBodies[e.ChainID]
	if !ok {
		body = &blocks.EntryBlockBody{EntriesByMinute: make(map[uint8][]primitives.Hash)}
		p.entryBodies[e.ChainID] = body
		p.entryChainOrder = append(p.entryChainOrder, e.ChainID)
	}
	body.EntriesByMinute[minute] = append(body.EntriesByMinute[minute], e.Hash())
}

// AddAdminMessage appends msg to the admin block's flat message list.
// Admin messages are not minute-partitioned.
func (p *PendingBlock) AddAdminMessage(msg blockelements.AdminMessage) {
	p.AdminMessages = append(p.AdminMessages, msg)
}

// SealMinute closes out the currently open minute and advances to the
// next one. It reports true once minute 10 has been sealed, signalling
// that the caller (the owning Blockchain) must now invoke SealBlock
// instead of continuing to accumulate.
func (p *PendingBlock) SealMinute() (blockReady bool) {
	p.sealedMinutes.Set(int(p.currentMinute))
	if p.currentMinute == minutesPerBlock-1 {
		return true
	}
	p.currentMinute++
	return false
}

// allMinutes returns the wire minute numbers 1..10: every sealed body
// must carry exactly this many markers, including minutes that never
// received an element.
func allMinutes() []uint8 {
	minutes := make([]uint8, minutesPerBlock)
	for i := range minutes {
		minutes[i] = uint8(i + 1)
	}
	return minutes
}

// SealBlock runs the finalization pipeline: for each accumulated chain it
// resolves the previous entry block via lookup, builds the entry-credit,
// Factoid, and admin blocks against their own chain heads, assembles the
// directory block body from the three system-block identifiers plus the
// entry-block references, and returns the full tuple. Any lookup or
// oracle error aborts the seal and returns only that error: headers
// already built before the failure are discarded, and no FullBlockSet
// is returned.
func (p *PendingBlock) SealBlock(lookup HeadLookup, oracle Oracle) (*FullBlockSet, error) {
	entryBlocks := make([]*blocks.EntryBlock, 0, len(p.entryChainOrder))
	for _, chainID := range p.entryChainOrder {
		body := p.entryBodies[chainID]
		body.MinuteOrder = allMinutes()

		prev, err := lookup.EntryBlockHead(chainID)
		if err != nil {
			return nil, fmt.Errorf("pendingblock: entry block head for chain %x: %w", chainID, err)
		}
		var prevKeyMR, prevFullHash primitives.Hash
		var sequence uint32
		if prev != nil {
			prevKeyMR = prev.KeyMR()
			prevFullHash = prev.FullHash()
			sequence = prev.Header.Sequence + 1
		}

		eb := &blocks.EntryBlock{
			Header: blocks.EntryBlockHeader{
				ChainID:      chainID,
				PrevKeyMR:    prevKeyMR,
				PrevFullHash: prevFullHash,
				Sequence:     sequence,
				Height:       p.Height,
			},
			Body: *body,
		}
		eb.Header = eb.ConstructHeader()
		entryBlocks = append(entryBlocks, eb)
	}

	p.EntryCreditBody.MinuteOrder = allMinutes()
	prevEC, err := lookup.EntryCreditBlockHead()
	if err != nil {
		return nil, fmt.Errorf("pendingblock: entry credit block head: %w", err)
	}
	var prevECHeaderHash, prevECFullHash primitives.Hash
	if prevEC != nil {
		prevECHeaderHash = prevEC.HeaderHash()
		prevECFullHash = prevEC.FullHash()
	}
	ec := &blocks.EntryCreditBlock{
		Header: blocks.EntryCreditBlockHeader{
			PrevHeaderHash: prevECHeaderHash,
			PrevFullHash:   prevECFullHash,
			Height:         p.Height,
		},
		Body: p.EntryCreditBody,
	}
	ec.Header = ec.ConstructHeader()

	exchangeRate, err := oracle.ECExchangeRate(p.Height)
	if err != nil {
		return nil, fmt.Errorf("pendingblock: ec exchange rate: %w", err)
	}
	p.FactoidBody.MinuteOrder = allMinutes()
	prevFC, err := lookup.FactoidBlockHead()
	if err != nil {
		return nil, fmt.Errorf("pendingblock: factoid block head: %w", err)
	}
	var prevKeyMR, prevLedgerKeyMR primitives.Hash
	if prevFC != nil {
		prevKeyMR = prevFC.KeyMR()
		prevLedgerKeyMR = prevFC.LedgerKeyMR()
	}
	fb := &blocks.FactoidBlock{
		Header: blocks.FactoidBlockHeader{
			PrevKeyMR:       prevKeyMR,
			PrevLedgerKeyMR: prevLedgerKeyMR,
			ECExchangeRate:  exchangeRate,
			Height:          p.Height,
		},
		Body: p.FactoidBody,
	}
	fb.Header = fb.ConstructHeader()

	prevAB, err := lookup.AdminBlockHead()
	if err != nil {
		return nil, fmt.Errorf("pendingblock: admin block head: %w", err)
	}
	var backReferenceHash primitives.Hash
	if prevAB != nil {
		backReferenceHash = prevAB.BackReferenceHash()
	}
	ab := &blocks.AdminBlock{
		Header: blocks.AdminBlockHeader{Height: p.Height},
		Body:   blocks.AdminBlockBody{Messages: p.AdminMessages},
	}
	ab.Header = ab.ConstructHeader(backReferenceHash)

	dbBody := blocks.DirectoryBlockBody{
		AdminBlockLookupHash:       ab.LookupHash(),
		EntryCreditBlockHeaderHash: ec.HeaderHash(),
		FactoidBlockKeyMR:          fb.KeyMR(),
	}
	for _, eb := range entryBlocks {
		dbBody.EntryBlocks = append(dbBody.EntryBlocks, blocks.EntryBlockRef{
			ChainID: eb.Header.ChainID,
			KeyMR:   eb.KeyMR(),
		})
	}
	db := &blocks.DirectoryBlock{
		Header: blocks.DirectoryBlockHeader{
			NetworkID:    p.Previous.Header.NetworkID,
			PrevKeyMR:    p.Previous.KeyMR(),
			PrevFullHash: p.Previous.FullHash(),
			Timestamp:    p.Timestamp,
			Height:       p.Height,
		},
		Body: dbBody,
	}
	db.Header = db.ConstructHeader()

	return &FullBlockSet{
		Directory:   db,
		Admin:       ab,
		EntryCredit: ec,
		Factoid:     fb,
		EntryBlocks: entryBlocks,
	}, nil
}
