// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the low-level get when a key is absent from
// its namespace. The typed accessors (GetDirectoryBlockByKeyMR and friends)
// translate it into the ordinary Go "absence of value" idiom — a nil
// pointer with a nil error — rather than surfacing it directly, so
// callers never need to errors.Is against it for the common case. It
// remains exported for the rare caller that needs to distinguish
// "doesn't exist" from "something else went wrong" at the raw-key level.
var ErrNotFound = errors.New("store: key not found")

// InvariantError reports a stored-data invariant violation: a
// height-index or entry-index entry pointing at a missing record or
// holding a value that is not a 32-byte hash, or a chain-head referring
// to a block that isn't there. A stored block that fails to decode is
// reported by the blocks package's own DecodeError. These should never
// happen from data this package wrote itself; they are surfaced, never
// silently repaired.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("store: invariant violation: %s", e.Reason)
}
