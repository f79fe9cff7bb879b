// Package transport defines the byte-pipe contract the link core needs
// from whatever physically carries bytes to and from an RCX-family
// target (serial tower, USB tower, or a TCP-tunneled tower), and
// provides the two adapters this repo can implement for real: a serial
// port over go.bug.st/serial, and a TCP tunnel over the standard net
// package. The encoding, framing, and retry behavior of the physical
// carrier itself are out of scope (spec.md §1); this package only states
// the interface the core core relies on and forwards to it.
package transport

import (
	"errors"
	"io"
	"time"
)

// Options carries the handful of open-time settings every adapter
// accepts. Target-specific and medium-specific tweaks live in package
// link, not here; an adapter only needs to know whether the caller
// wants header bytes omitted from its diagnostics.
type Options struct {
	// OmitHeader forwards RCX_Link's SetOmitHeader: when true, DumpData
	// leaves out the "dump[n] = {...}" wrapper and writes only the
	// comma-separated hex bytes.
	OmitHeader bool
}

// ErrUSBUnsupported is returned by NewUSBTower: this repo ships no real
// USB HID/bulk backend (see DESIGN.md), mirroring the original's
// RCX_NewUSBTowerPipe() returning nil on platforms without the tower
// driver compiled in.
var ErrUSBUnsupported = errors.New("transport: USB tower unsupported in this build")

// ErrTCPUnsupported mirrors ErrUSBUnsupported for symmetry with the
// original's kRCX_TcpUnsupportedError; NewTCP never actually returns it
// today (stdlib net always satisfies the TCP case) but callers that
// switch on it stay correct if that ever changes.
var ErrTCPUnsupported = errors.New("transport: TCP tunnel unsupported in this build")

// Transport is the C3 contract: an abstract byte pipe with retrying,
// timing-out send/receive, fast-mode capability flags, a complement-byte
// flag, and a diagnostic dump. A Link owns exactly one Transport for its
// lifetime.
type Transport interface {
	// Close releases the underlying pipe. Idempotent.
	Close() error

	// SetOmitHeader toggles the "dump[n] = {...}" wrapper on DumpData.
	SetOmitHeader(omit bool)

	// Send transmits cmd and then waits for exactly expected reply bytes
	// on the wire (0 means "no reply expected"), retrying the whole
	// exchange up to the adapter's own retry policy when retry is true,
	// and giving up after timeout elapses per attempt. expected counts
	// the leading echoed-opcode-complement byte; reply (which has at
	// least expected capacity) is filled with all expected bytes,
	// echo included. On success Send returns expected-1: the payload
	// length with the echo byte excluded (0 if expected was 0). On
	// failure it returns a negative-equivalent error.
	Send(cmd []byte, reply []byte, expected int, retry bool, timeout time.Duration) (int, error)

	// FastModeSupported reports whether this adapter's medium has a
	// negotiated high-speed mode at all.
	FastModeSupported() bool

	// FastModeOddParity reports which nub variant a fast-mode transfer
	// on this adapter needs (true selects the odd-parity nub).
	FastModeOddParity() bool

	// SetFastMode flips the adapter between its normal and high-speed
	// framing. Only meaningful when FastModeSupported is true.
	SetFastMode(on bool)

	// FastMode reports the adapter's current fast-mode state.
	FastMode() bool

	// ComplementData reports whether this adapter already follows every
	// data byte with its bitwise complement for self-clocking. When
	// true, the payload shaper (package rcxcmd) is bypassed.
	ComplementData() bool

	// DumpData writes a hex dump of data to w for diagnostics, honoring
	// the OmitHeader setting.
	DumpData(w io.Writer, data []byte)
}

// MaxTimeout is the soft-configurable "as long as it takes" timeout used
// for the final Unlock after a firmware transfer and for the
// missing-firmware probe's GetVersions call.
const MaxTimeout = 30 * time.Second
