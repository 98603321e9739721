// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import "errors"

// ErrBadVarint is the sentinel wrapped by every varint decode failure:
// premature end of input or a non-canonical (zero-padded) encoding.
var ErrBadVarint = errors.New("bad varint")
