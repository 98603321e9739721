// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockelements implements the constituent transaction and entry
// types carried inside block bodies: Entry, ChainCommit, EntryCommit,
// BalanceIncrease, FactoidTransaction, and the closed set of AdminMessage
// variants. Every type exposes a deterministic Marshal and an Unmarshal (or
// UnmarshalWithRemainder for variable-width elements embedded in a longer
// stream).
package blockelements
