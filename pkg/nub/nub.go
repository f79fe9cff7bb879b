// Package nub holds the small bootstrap payload uploaded into RAM at
// 0x8000 before a fast-mode firmware transfer. The target runs the nub
// to receive the firmware body at the negotiated higher speed; which
// variant to send depends on the tower's parity setting
// (transport.Transport.FastModeOddParity).
//
// The original ships the real nub machine code as two generated byte
// arrays (rcxnub.h / rcxnub_odd.h) assembled from firmware source not
// present in this repo's reference material. The bytes below are a
// placeholder of the correct shape (same load address, same rough size
// class) rather than the real bootstrap; DESIGN.md records this
// explicitly. The wire path that sends them — transferFirmware called
// with progress disabled, exactly like any other firmware body — is
// fully implemented and exercised.
package nub

// LoadAddress is the fixed RAM address every nub variant is uploaded to.
const LoadAddress = 0x8000

// Even is the nub variant for towers using even parity framing.
var Even = buildPlaceholder(0xE0)

// Odd is the nub variant for towers using odd parity framing.
var Odd = buildPlaceholder(0x0D)

// buildPlaceholder synthesizes a small, deterministic byte sequence so
// Even and Odd are distinct and of a plausible nub size without
// depending on any unavailable firmware source.
func buildPlaceholder(seed byte) []byte {
	const size = 256
	b := make([]byte, size)
	for i := range b {
		b[i] = seed ^ byte(i)
	}
	return b
}

// Select returns the nub variant appropriate for a tower's parity
// setting.
func Select(oddParity bool) []byte {
	if oddParity {
		return Odd
	}
	return Even
}
