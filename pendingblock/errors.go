// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pendingblock

import "fmt"

// ValidationError reports a rejected sanity/validity check against an
// incoming directory-block-state message or a malformed seal request:
// checkpoint mismatch, network-id mismatch, or a hash disagreement across
// parent/child blocks. The offending message is rejected without
// side-effects; nothing partial reaches the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pendingblock: validation failed: %s", e.Reason)
}
