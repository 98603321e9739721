// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/decred/slog"

	"github.com/sambarnes/factom-core/blockchain"
)

// noOracle is wired in until the embedding runtime provides a real
// entry-credit exchange rate feed.
type noOracle struct{}

func (noOracle) ECExchangeRate(uint32) (uint64, error) { return 1000, nil }

// noMessages is a MessageSource that never yields: a placeholder until
// factomcored grows a real P2P/inbox layer.
type noMessages struct{}

func (noMessages) Next(ctx context.Context) (blockchain.Message, bool) {
	<-ctx.Done()
	return blockchain.Message{}, false
}

func factomcoredMain() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.NoFileLogging {
		if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
			return fmt.Errorf("failed to initialize log rotator: %w", err)
		}
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	setLogLevels(level)

	log.Infof("Starting factomcored on %s (network id %#08x)", cfg.netParams.Name, cfg.netParams.NetworkID)
	log.Infof("Data directory: %s", cfg.DataDir)

	chain, err := blockchain.New(cfg.netParams, cfg.DataDir, cfg.VMCount, noOracle{})
	if err != nil {
		return fmt.Errorf("failed to initialize blockchain: %w", err)
	}
	defer chain.Close()

	if head, err := chain.DirectoryBlockHead(); err != nil {
		return fmt.Errorf("failed to load directory block head: %w", err)
	} else if head == nil {
		log.Info("No existing chain found, loading genesis block")
		if _, err := chain.LoadGenesisBlock(); err != nil {
			return fmt.Errorf("failed to load genesis block: %w", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	chain.Run(ctx, noMessages{})
	log.Info("Shutdown complete")
	return nil
}

func main() {
	if err := factomcoredMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
