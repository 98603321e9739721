// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import "fmt"

// EncodeVarint packs n into the protocol's canonical varint form: big-endian
// 7-bit groups, MSB=1 on every continuation byte, MSB=0 on the terminator.
// Zero is always encoded as the single byte 0x00; this is the only value
// whose encoding ever begins with a zero 7-bit group. EncodeVarint is the
// authoritative encoder — original_source/utils/varint.py has a documented
// off-by-one when the high bit of the first emitted byte is set (see
// DESIGN.md); that bug is not reproduced here.
func EncodeVarint(n uint64) []byte {
	if n == 0 {
		return []byte{0x00}
	}

	// Collect 7-bit groups from least to most significant, then emit
	// most-significant-first with continuation bits set on every byte
	// except the last.
	var groups []byte
	for v := n; v > 0; v >>= 7 {
		groups = append(groups, byte(v&0x7f))
	}

	buf := make([]byte, len(groups))
	for i, g := range groups {
		out := len(groups) - 1 - i
		if out != len(groups)-1 {
			g |= 0x80
		}
		buf[out] = g
	}
	return buf
}

// DecodeVarint reads one varint from the front of raw, returning its value
// along with the unconsumed remainder. Besides a premature end of input, it
// rejects any non-canonical (zero-padded) encoding: the consumed bytes must
// equal EncodeVarint(value) exactly.
func DecodeVarint(raw []byte) (uint64, []byte, error) {
	if len(raw) == 0 {
		return 0, nil, fmt.Errorf("%w: empty input", ErrBadVarint)
	}

	var result uint64
	consumed := 0
	data := raw
	for {
		if len(data) == 0 {
			return 0, nil, fmt.Errorf("%w: premature end of input", ErrBadVarint)
		}
		b := data[0]
		data = data[1:]
		consumed++
		result = (result << 7) | uint64(b&0x7f)
		if b&0x80 == 0 {
			break
		}
	}

	if canonical := EncodeVarint(result); len(canonical) != consumed {
		return 0, nil, fmt.Errorf("%w: non-canonical encoding of %d", ErrBadVarint, result)
	}

	return result, data, nil
}
