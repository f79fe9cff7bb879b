// Package link is the host-side driver core: one Link is one logical
// session to one RCX-family target. It drives the sync handshake, the
// command/reply exchange, and the chunked program/firmware download
// engine described in spec.md, over whatever transport.Transport the
// device URL resolves to.
package link

import (
	"fmt"
	"strings"

	"github.com/kbrick/rcx/pkg/rcxcmd"
	"github.com/kbrick/rcx/pkg/transport"
)

// Target re-exports rcxcmd.Target so callers of this package don't need
// to import rcxcmd just to name a target.
type Target = rcxcmd.Target

const (
	RCX       = rcxcmd.RCX
	RCX2      = rcxcmd.RCX2
	Scout     = rcxcmd.Scout
	CM        = rcxcmd.CM
	Swan      = rcxcmd.Swan
	Spybotics = rcxcmd.Spybotics
)

// OpenOptions carries Open-time settings. VerboseMode forwards to
// Link.verbose, which makes every command exchange log the command
// bytes sent and the reply bytes received; OmitHeader forwards to the
// transport's DumpData.
type OpenOptions struct {
	VerboseMode bool
	OmitHeader  bool
}

// Link is one logical session to one device. It is not safe for
// concurrent use: spec.md's Non-goals explicitly exclude serializing
// calls on the caller's behalf, so this type takes no mutex.
type Link struct {
	target Target
	tr     transport.Transport

	synced bool
	quiet  bool
	usb    bool // selected medium; drives maxZeros and the Spybotics chunk size

	verbose bool

	lastReply  [rcxcmd.MaxReplyLength]byte
	lastResult int // >=0: reply length; <0 is never stored, errors are returned directly

	programChunkSize  int
	firmwareChunkSize int
	downloadWaitMS    int

	maxZeros int
	maxOnes  int

	downloadTotal int
	downloadSoFar int
	onProgress    ProgressFunc
}

// ProgressFunc is invoked after every download frame with the bytes
// transferred so far, the transfer's declared total, and the size of
// the frame just sent. Returning false aborts the transfer with
// ErrAbort, leaving the target in an undefined program state (spec.md
// §5: the caller is expected to re-sync and reissue StopAll before
// trying again). A ProgressFunc must not call back into the Link that
// invoked it.
type ProgressFunc func(soFar, total, delta int) bool

// SetProgressFunc installs the callback DownloadProgram/DownloadFirmware
// report progress through. A nil callback (the default) never aborts.
func (l *Link) SetProgressFunc(fn ProgressFunc) { l.onProgress = fn }

const (
	programChunkSize    = 20
	firmwareChunkSize   = 200
	spyboticsSmallChunk = 2  // USB
	spyboticsChunk      = 16 // serial
	downloadWaitMS      = 300
)

// New constructs an idle Link for target. Open must be called before
// any other operation.
func New(target Target) *Link {
	return &Link{
		target:            target,
		programChunkSize:  programChunkSize,
		firmwareChunkSize: firmwareChunkSize,
		downloadWaitMS:    downloadWaitMS,
		maxOnes:           rcxcmd.MaxOnes,
	}
}

// SetQuiet suppresses the end-of-download PlaySound and forces every
// download frame's final sequence number to 0 regardless — matching the
// original's documented tautology (spec.md §4.6/§9): the final frame's
// sequence is unconditionally 0 in this implementation, quiet or not.
func (l *Link) SetQuiet(quiet bool) { l.quiet = quiet }

// Open binds a transport chosen by the portName prefix (see
// ResolvePort/dialTransport), performs target-specific pre-sync tweaks,
// and clears the synced/result state.
func (l *Link) Open(portName string, opts OpenOptions) error {
	l.verbose = opts.VerboseMode

	resolved, err := ResolvePort(portName)
	if err != nil {
		return err
	}

	tr, usb, err := dialTransport(resolved, l.target, opts)
	if err != nil {
		return err
	}
	l.tr = tr
	l.usb = usb

	if l.target == Spybotics {
		// Turn off the Spybotics target's periodic ping; it otherwise
		// interferes with this link's own request/reply cadence.
		if _, err := l.send(rcxcmd.MakeSet(0x01, 1, 2, 0), true, defaultSendTimeout); err != nil {
			l.tr.Close()
			l.tr = nil
			return err
		}
	}

	if l.usb {
		l.maxZeros = rcxcmd.MaxZerosUSB
	} else {
		l.maxZeros = rcxcmd.MaxZerosSerial
	}

	l.synced = false
	l.lastResult = 0
	return nil
}

// Close tears down the transport. Idempotent.
func (l *Link) Close() error {
	if l.tr == nil {
		return nil
	}
	err := l.tr.Close()
	l.tr = nil
	l.synced = false
	return err
}

// dialTransport parses the device-URL prefix (spec.md §3) and opens the
// matching transport.Transport.
func dialTransport(portName string, target Target, opts OpenOptions) (transport.Transport, bool, error) {
	name, prefix := splitPrefix(portName)

	switch prefix {
	case "usb":
		tr, err := transport.NewUSBTower(transport.Options{OmitHeader: opts.OmitHeader})
		if err != nil {
			return nil, true, err
		}
		return tr, true, nil
	case "tcp":
		tr, err := transport.NewTCP(name, transport.Options{OmitHeader: opts.OmitHeader})
		if err != nil {
			return nil, false, err
		}
		return tr, false, nil
	default:
		// "serial" prefix stripped, or no recognized prefix: serial
		// transport over the raw name.
		oddParity := target == Scout // placeholder-consistent, tower-specific in practice
		tr, err := transport.NewSerial(name, oddParity, transport.Options{OmitHeader: opts.OmitHeader})
		if err != nil {
			return nil, false, err
		}
		return tr, false, nil
	}
}

// splitPrefix implements spec.md §3/§6's device-URL grammar:
// (("usb"|"tcp"|"serial") ":")? device_name, case-insensitive prefix.
func splitPrefix(portName string) (name string, prefix string) {
	for _, p := range []string{"usb", "tcp", "serial"} {
		if rest, ok := checkPrefix(portName, p); ok {
			return rest, p
		}
	}
	return portName, ""
}

// checkPrefix mirrors the original's CheckPrefix: case-insensitive
// prefix match that must be followed by ':' or end-of-string, returning
// the remainder with the colon consumed.
func checkPrefix(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	rest := s[len(prefix):]
	if rest == "" {
		return rest, true
	}
	if rest[0] == ':' {
		return rest[1:], true
	}
	return "", false
}

// errorf is a small helper kept to match the teacher's habit of
// wrapping errors with call-site context rather than returning bare
// sentinels.
func errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
