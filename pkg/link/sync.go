package link

import (
	"github.com/kbrick/rcx/pkg/rcxcmd"
	"github.com/kbrick/rcx/pkg/transport"
)

// Sync is the Sync Engine (C5): it drives the per-target wake/unlock
// handshake and caches the result in l.synced. Any hard error leaves
// synced false; a stale synced=true is never cleared automatically on a
// later failure — spec.md is explicit that this is conservative by
// design, not an oversight, and that callers wanting to recover from a
// later failure must call Sync again to reprobe.
func (l *Link) Sync() error {
	if l.synced {
		return nil
	}

	if _, err := l.send(rcxcmd.MakePing(), true, defaultSendTimeout); err != nil {
		return err
	}

	switch l.target {
	case CM:
		if _, err := l.send(rcxcmd.MakeUnlockCM(), true, defaultSendTimeout); err != nil {
			return err
		}
	case Scout:
		if _, err := l.send(rcxcmd.MakeUnlock(), true, defaultSendTimeout); err != nil {
			return err
		}
		// Undocumented in the original source; reproduced verbatim per
		// spec.md §9.
		if _, err := l.send(rcxcmd.MakeSet(0x47, 0x80), true, defaultSendTimeout); err != nil {
			return err
		}
	}

	l.synced = true
	return nil
}

// WasErrorFromMissingFirmware implements the missing-firmware probe
// (spec.md §4.5): true iff the target is one that needs downloaded
// firmware to do anything useful, the link believes it's synced, and a
// generously-timed GetVersions reply comes back with a zero RAM
// version — the signature of a target running only its ROM.
func (l *Link) WasErrorFromMissingFirmware() bool {
	if !l.target.RequiresFirmware() {
		return false
	}
	if !l.synced {
		return false
	}

	n, err := l.send(rcxcmd.MakeGetVersions(), true, transport.MaxTimeout)
	if err != nil || n != 8 {
		return false
	}
	for i := 4; i < 8; i++ {
		if l.GetReplyByte(i) != 0 {
			return false
		}
	}
	return true
}
