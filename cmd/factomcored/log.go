// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"github.com/sambarnes/factom-core/blockchain"
	"github.com/sambarnes/factom-core/pendingblock"
	"github.com/sambarnes/factom-core/store"
)

// logWriter implements io.Writer and always writes to standard output,
// and also to the rotator when one is set (file logging is enabled).
type logWriter struct {
	logRotator *rotator.Rotator
}

func (w logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if w.logRotator == nil {
		return len(p), nil
	}
	return w.logRotator.Write(p)
}

var (
	backendLog = slog.NewBackend(logWriter{})

	log       = backendLog.Logger("MAIN")
	storeLog  = backendLog.Logger("STOR")
	chainLog  = backendLog.Logger("CHAN")
	pblockLog = backendLog.Logger("PBLK")

	logRotator *rotator.Rotator
)

// initLogRotator initializes the logging rotator to write logs to
// logFile and create roll files in the same directory. It must be
// called before the package-level log variables are used.
func initLogRotator(logFile string) error {
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	backendLog = slog.NewBackend(logWriter{logRotator: r})

	log = backendLog.Logger("MAIN")
	storeLog = backendLog.Logger("STOR")
	chainLog = backendLog.Logger("CHAN")
	pblockLog = backendLog.Logger("PBLK")
	return nil
}

// setLogLevels assigns the same level to every subsystem logger.
func setLogLevels(level slog.Level) {
	log.SetLevel(level)
	storeLog.SetLevel(level)
	chainLog.SetLevel(level)
	pblockLog.SetLevel(level)

	store.UseLogger(storeLog)
	blockchain.UseLogger(chainLog)
	pendingblock.UseLogger(pblockLog)
}
