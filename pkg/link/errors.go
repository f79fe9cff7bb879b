package link

import "fmt"

// Sentinel errors for the taxonomy in spec.md §7. Transport-level
// failures are forwarded as whatever error the transport.Transport
// implementation produced; the core never manufactures its own error
// for those (spec.md: "transport errors: opaque negative codes
// forwarded from the transport").
var (
	// ErrRequest: command bytes or expected reply length exceed the
	// configured maxima.
	ErrRequest = fmt.Errorf("link: request exceeds configured maximum")

	// ErrReply: a reply's length didn't match the opcode's contract
	// (e.g. GetVersions returning anything but 8 payload bytes).
	ErrReply = fmt.Errorf("link: unexpected reply length")

	// ErrMemFull: a Begin-chunk reply was present but its payload byte
	// was non-zero, meaning the target has no room for the chunk.
	ErrMemFull = fmt.Errorf("link: target reports insufficient memory")

	// ErrAbort: the caller's progress callback returned false mid-download.
	ErrAbort = fmt.Errorf("link: download aborted by caller")

	// ErrPipeMode: fast mode was requested but the transport doesn't
	// support it.
	ErrPipeMode = fmt.Errorf("link: fast mode not supported by transport")
)

// OpcodeError reports that a particular opcode's reply didn't match
// its documented contract. It wraps ErrReply so callers can still
// errors.Is against the sentinel.
type OpcodeError struct {
	Opcode byte
	Got    int
	Want   int
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("link: opcode 0x%02x: got %d reply bytes, want %d", e.Opcode, e.Got, e.Want)
}

func (e *OpcodeError) Unwrap() error { return ErrReply }
