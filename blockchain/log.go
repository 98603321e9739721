// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/decred/slog"

// log is the package-level logger used by blockchain. It is a no-op sink
// until the embedding application calls UseLogger.
var log = slog.Disabled

// UseLogger sets the package-wide logger. It should be called before any
// other blockchain function, typically during application init.
func UseLogger(logger slog.Logger) {
	log = logger
}
