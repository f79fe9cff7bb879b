package rcxcmd

import "math/bits"

// Zero-run and sparse-byte thresholds, per-medium. These are the
// defaults from the original transport; package link exposes them as
// per-Link tunables rather than compile-time constants (spec.md §9).
const (
	MaxZerosUSB    = 23
	MaxZerosSerial = 30
	MaxOnes        = 90
)

// popcount is a precomputed 256-entry set-bit-count table. The original
// implementation hand-wrote this table; spec.md §9 explicitly sanctions
// replacing it with a runtime popcount, so this repo builds it once from
// math/bits at package init instead of carrying 256 literals.
var popcount [256]uint8

func init() {
	for i := range popcount {
		popcount[i] = uint8(bits.OnesCount8(uint8(i)))
	}
}

// isSparse reports whether a byte's set-bit count is at most 2 — the
// "sparse byte" the shaper's second guard watches for.
func isSparse(b byte) bool {
	return popcount[b] < 3
}

// ShapeChunk is the Payload Shaper (C2): given a prospective chunk size
// and the upcoming bytes, it returns a possibly-reduced size that avoids
// long zero-runs and long sparse-byte runs the physical carrier loses
// bit-clock recovery over. If complementEnabled is true the transport's
// own complement-byte framing already guarantees transition density and
// this function is the identity.
//
// maxZeros and maxOnes are per-Link tunables (spec.md §9); callers pass
// MaxZerosUSB/MaxZerosSerial and MaxOnes for the documented defaults.
func ShapeChunk(requestedSize int, data []byte, complementEnabled bool, maxZeros, maxOnes int) int {
	if complementEnabled {
		return requestedSize
	}

	size := requestedSize

	// Zero-run guard.
	for i := 0; i < size-maxZeros; i++ {
		if data[i] != 0 {
			continue
		}
		run := 0
		for run < maxZeros && data[i+run] == 0 {
			run++
		}
		if run >= maxZeros {
			size = i + maxZeros
			break
		}
	}

	// Sparse-byte guard, applied to the possibly-truncated size. The
	// running score counts DENSE bytes seen inside the window, not
	// sparse ones: a window that stays predominantly sparse for its
	// whole length (score never climbing past scoreBound) is the one
	// that triggers truncation. This reads backwards from the obvious
	// guess; it matches the original's nLotsOfOnes bookkeeping exactly.
	const scoreBound = 3
	for i := 0; i < size-maxOnes; i++ {
		if !isSparse(data[i]) {
			continue
		}
		score := 0
		j := 0
		for ; j < maxOnes; j++ {
			if !isSparse(data[i+j]) {
				score++
				if score > scoreBound {
					break
				}
			} else {
				score -= 2
				if score < 0 {
					score = 0
				}
			}
		}
		if j >= maxOnes {
			// Preserved verbatim from the original: when i < maxOnes the
			// cut lands at maxOnes rather than at i, so the chunk keeps
			// bytes past the start of the sparse run (it is still never
			// longer than size, since i < size-maxOnes). Surprising, but
			// spec.md §9 directs us not to "fix" it without a protocol
			// reference.
			size = i
			if maxOnes > size {
				size = maxOnes
			}
			break
		}
	}

	return size
}
