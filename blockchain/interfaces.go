// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"context"

	"github.com/sambarnes/factom-core/blockelements"
	"github.com/sambarnes/factom-core/blocks"
	"github.com/sambarnes/factom-core/primitives"
)

// Signer is implemented by the embedding runtime's key management layer.
// The core never handles private keys directly.
type Signer interface {
	Sign(msg []byte) (primitives.FullSignature, error)
	Verify(msg []byte, sig primitives.FullSignature) bool
}

// Oracle supplies the entry-credit-to-factoid exchange rate used when
// sealing a new factoid block. The core never computes this itself.
type Oracle interface {
	ECExchangeRate(height uint32) (uint64, error)
}

// Message is one unit of work dequeued from a MessageSource: exactly one
// of the fields is set, naming which kind of element it carries and
// which minute of the current pending block it belongs to.
type Message struct {
	Minute       uint8
	FactoidTx    *blockelements.FactoidTransaction
	Commit       *blocks.EntryCreditObject
	Entry        *blockelements.Entry
	AdminMessage blockelements.AdminMessage
}

// MessageSource feeds the Blockchain's run loop. Next blocks until a
// message is available, ctx is canceled, or the source is exhausted (the
// bool return is false in the latter two cases).
type MessageSource interface {
	Next(ctx context.Context) (Message, bool)
}
