// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"path/filepath"
	"testing"

	"github.com/sambarnes/factom-core/blockelements"
	"github.com/sambarnes/factom-core/chaincfg"
	"github.com/sambarnes/factom-core/primitives"
)

type fixedOracle struct{ rate uint64 }

func (o fixedOracle) ECExchangeRate(uint32) (uint64, error) { return o.rate, nil }

func newTestBlockchain(t *testing.T) *Blockchain {
	t.Helper()
	b, err := New(chaincfg.MainNetParams(), filepath.Join(t.TempDir(), "db"), 1, fixedOracle{rate: 1000})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestLoadGenesisBlock(t *testing.T) {
	b := newTestBlockchain(t)

	genesis, err := b.LoadGenesisBlock()
	if err != nil {
		t.Fatalf("LoadGenesisBlock: %v", err)
	}
	if genesis.Header.Height != 0 {
		t.Errorf("Height = %d, want 0", genesis.Header.Height)
	}
	if genesis.Header.NetworkID != chaincfg.MainNetParams().NetworkID {
		t.Errorf("NetworkID = %#x, want %#x", genesis.Header.NetworkID, chaincfg.MainNetParams().NetworkID)
	}

	head, err := b.DirectoryBlockHead()
	if err != nil {
		t.Fatalf("DirectoryBlockHead: %v", err)
	}
	if head == nil || head.KeyMR() != genesis.KeyMR() {
		t.Fatalf("DirectoryBlockHead = %v, want key-MR %x", head, genesis.KeyMR())
	}

	byHeight, err := b.store.GetDirectoryBlockByHeight(0)
	if err != nil || byHeight == nil {
		t.Fatalf("GetDirectoryBlockByHeight(0): %v, %v", byHeight, err)
	}
}

func TestSealBlockAfterGenesis(t *testing.T) {
	b := newTestBlockchain(t)
	if _, err := b.LoadGenesisBlock(); err != nil {
		t.Fatalf("LoadGenesisBlock: %v", err)
	}

	entry := &blockelements.Entry{
		ChainID: blockelements.DeriveChainID([][]byte{[]byte("test-chain")}),
		Content: []byte("hello"),
	}
	b.Submit(Message{Minute: 1, Entry: entry})

	for minute := uint8(1); minute <= 10; minute++ {
		if err := b.SealMinute(); err != nil {
			t.Fatalf("SealMinute at wire minute %d: %v", minute, err)
		}
	}

	head, err := b.DirectoryBlockHead()
	if err != nil {
		t.Fatalf("DirectoryBlockHead: %v", err)
	}
	if head.Header.Height != 1 {
		t.Fatalf("Height = %d, want 1", head.Header.Height)
	}
	if head.Body.BlockCount() != 4 {
		t.Fatalf("BlockCount = %d, want 4 (three system blocks + one entry chain)", head.Body.BlockCount())
	}

	admin, err := b.store.AdminBlockHead()
	if err != nil || admin == nil {
		t.Fatalf("AdminBlockHead: %v, %v", admin, err)
	}
	if head.Body.AdminBlockLookupHash != admin.LookupHash() {
		t.Error("directory block's admin lookup hash does not match the sealed admin block")
	}

	eb, err := b.store.EntryBlockHead(entry.ChainID)
	if err != nil || eb == nil {
		t.Fatalf("EntryBlockHead: %v, %v", eb, err)
	}
	found := false
	for _, ref := range head.Body.EntryBlocks {
		if ref.ChainID == entry.ChainID && ref.KeyMR == eb.KeyMR() {
			found = true
		}
	}
	if !found {
		t.Error("directory block does not reference the sealed entry block")
	}
}

func TestVMForHashAndRotation(t *testing.T) {
	b, err := New(chaincfg.TestNetParams(), filepath.Join(t.TempDir(), "db"), 3, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	if got := b.VMForHash(primitives.Hash{}); got != 0 {
		t.Errorf("VMForHash(zero hash) = %d, want 0", got)
	}

	before := append([]int(nil), b.vms...)
	b.rotateVMs()
	want := append(append([]int(nil), before[1:]...), before[0])
	for i := range want {
		if b.vms[i] != want[i] {
			t.Fatalf("rotateVMs = %v, want %v", b.vms, want)
		}
	}
}

func TestNewRejectsZeroNetworkID(t *testing.T) {
	_, err := New(&chaincfg.Params{}, filepath.Join(t.TempDir(), "db"), 1, nil)
	if err == nil {
		t.Fatal("New with zero NetworkID: got nil error, want an error")
	}
}
