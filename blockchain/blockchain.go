// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain binds a pending block, a persistent store, and a
// VM slot assignment into a single-threaded coordinator: the facade
// external runtimes drive to submit work and seal blocks.
package blockchain

import (
	"context"

	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/chaincfg"
	"github.com/sambarnes/factom-core/pendingblock"
	"github.com/sambarnes/factom-core/primitives"
	"github.com/sambarnes/factom-core/store"
)

// Blockchain owns the Store, the current VM slot assignment, and the
// PendingBlock accumulating the next height's work. It is bound at
// construction to a single network via chaincfg.Params and never
// changes networks afterward.
type Blockchain struct {
	params *chaincfg.Params
	store  *store.Store
	oracle Oracle

	vms     []int
	pending *pendingblock.PendingBlock
}

// New opens (or creates) a store at dataDir and returns a Blockchain
// bound to params, with vmCount VM slots (numbered 0..vmCount-1).
func New(params *chaincfg.Params, dataDir string, vmCount int, oracle Oracle) (*Blockchain, error) {
	if params == nil || params.NetworkID == 0 {
		return nil, &pendingblock.ValidationError{Reason: "Blockchain requires a non-zero NetworkID"}
	}
	s, err := store.Open(dataDir)
	if err != nil {
		return nil, err
	}
	vms := make([]int, vmCount)
	for i := range vms {
		vms[i] = i
	}
	return &Blockchain{params: params, store: s, oracle: oracle, vms: vms}, nil
}

// Close releases the underlying store.
func (b *Blockchain) Close() error {
	return b.store.Close()
}

// Store exposes the read-side of the underlying persistent store to
// collaborators (e.g. an RPC layer) that need concurrent read access.
func (b *Blockchain) Store() *store.Store {
	return b.store
}

// DirectoryBlockHead returns the chain's current directory block head.
func (b *Blockchain) DirectoryBlockHead() (*blocks.DirectoryBlock, error) {
	return b.store.DirectoryBlockHead()
}

// vmForHash computes the VM slot responsible for h: the sum of its bytes
// modulo the VM count, or 0 if there are no VM slots. This is the sole
// tie-break for VM ownership of a given hash.
func (b *Blockchain) vmForHash(h primitives.Hash) int {
	if len(b.vms) == 0 {
		return 0
	}
	var sum int
	for _, v := range h {
		sum += int(v)
	}
	return sum % len(b.vms)
}

// VMForHash exposes vmForHash to collaborators deciding which VM owns a
// given chain or transaction hash.
func (b *Blockchain) VMForHash(h primitives.Hash) int {
	return b.vmForHash(h)
}

// rotateVMs left-rotates the VM slot assignment by one. A single-VM (or
// empty) assignment is left untouched: per-height rotation formulas
// beyond this one-step rotation are out of scope.
func (b *Blockchain) rotateVMs() {
	if len(b.vms) <= 1 {
		return
	}
	first := b.vms[0]
	copy(b.vms, b.vms[1:])
	b.vms[len(b.vms)-1] = first
}

// StartPendingBlock begins accumulating a new pending block on top of
// previous, timestamped at timestamp (minutes since the Unix epoch, the
// unit the directory block header carries). Panics if previous
// is nil, matching pendingblock.New.
func (b *Blockchain) StartPendingBlock(previous *blocks.DirectoryBlock, timestamp uint32) {
	b.pending = pendingblock.New(previous, timestamp)
}

// Submit routes one dequeued Message into the current pending block,
// using msg.Minute as the target minute. Exactly one of msg's payload
// fields must be set.
func (b *Blockchain) Submit(msg Message) {
	switch {
	case msg.FactoidTx != nil:
		b.pending.AddFactoidTransaction(msg.Minute, *msg.FactoidTx)
	case msg.Commit != nil:
		b.pending.AddCommit(msg.Minute, *msg.Commit)
	case msg.Entry != nil:
		b.pending.AddEntry(msg.Minute, msg.Entry)
	case msg.AdminMessage != nil:
		b.pending.AddAdminMessage(msg.AdminMessage)
	}
}

// Run dequeues messages from src until it is exhausted or ctx is
// canceled, submitting each synchronously before dequeuing the next —
// the core's single-threaded cooperative execution model.
func (b *Blockchain) Run(ctx context.Context, src MessageSource) {
	for {
		msg, ok := src.Next(ctx)
		if !ok {
			return
		}
		b.Submit(msg)
	}
}

// SealMinute rotates the VM assignment, then either advances the
// pending block's current minute or, once minute 10 closes, seals the
// full block.
func (b *Blockchain) SealMinute() error {
	b.rotateVMs()
	if blockReady := b.pending.SealMinute(); blockReady {
		return b.SealBlock()
	}
	return nil
}

// SealBlock finalizes the current pending block and persists every
// resulting block as its chain's new head, in dependency order: entry
// blocks and the three system blocks first, the directory block last,
// so a crash mid-seal leaves the directory head lagging rather than
// pointing at data that was never written.
func (b *Blockchain) SealBlock() error {
	oracle := b.oracle
	if oracle == nil {
		oracle = nullOracle{}
	}
	set, err := b.pending.SealBlock(b.store, oracle)
	if err != nil {
		return err
	}

	for _, eb := range set.EntryBlocks {
		if err := b.store.PutEntryBlockHead(eb); err != nil {
			return err
		}
	}
	if err := b.store.PutAdminBlockHead(set.Admin); err != nil {
		return err
	}
	if err := b.store.PutEntryCreditBlockHead(set.EntryCredit); err != nil {
		return err
	}
	if err := b.store.PutFactoidBlockHead(set.Factoid); err != nil {
		return err
	}
	if err := b.store.PutDirectoryBlockHead(set.Directory); err != nil {
		return err
	}

	timestamp := set.Directory.Header.Timestamp
	b.pending = nil
	b.StartPendingBlock(set.Directory, timestamp)
	return nil
}

// nullOracle is used by SealBlock when a Blockchain is constructed
// without an Oracle; it reports an exchange rate of 0 for every height,
// so blocks sealed that way carry a zero EC exchange rate.
type nullOracle struct{}

func (nullOracle) ECExchangeRate(uint32) (uint64, error) { return 0, nil }
