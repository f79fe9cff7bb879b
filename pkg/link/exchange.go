package link

import (
	"log"
	"time"

	"github.com/kbrick/rcx/pkg/rcxcmd"
)

// defaultSendTimeout is used whenever a caller doesn't need a specific
// timeout; individual orchestrators (download, firmware transfer) pass
// their own.
const defaultSendTimeout = 1 * time.Second

// send is the Command Exchanger (C4): it computes the expected reply
// length via the opcode table, rejects oversized requests before ever
// touching the transport, invokes the transport, and caches the result
// so GetReply/GetReplyByte can serve it. It returns the reply length on
// success (which may be 0) or an error — unlike the original's
// RCX_Link::Send, which stashes a signed result code in fResult for
// GetReply to reinterpret, this repo's GetReply/GetReplyByte read the
// same cache but send itself always reports success or failure through
// its own return, per spec.md §9's redesign note.
func (l *Link) send(cmd rcxcmd.Command, retry bool, timeout time.Duration) (int, error) {
	if l.tr == nil {
		return 0, errorf("link: not open")
	}

	expected := rcxcmd.ExpectedReplyLength(cmd, l.target)
	if len(cmd) > rcxcmd.MaxCmdLength || expected > rcxcmd.MaxReplyLength {
		return 0, ErrRequest
	}

	if l.verbose {
		log.Printf("link: send % x", []byte(cmd))
	}
	n, err := l.tr.Send(cmd, l.lastReply[:], expected, retry, timeout)
	if err != nil {
		return 0, err
	}
	if l.verbose {
		log.Printf("link: reply % x", l.lastReply[:expected])
	}
	l.lastResult = n
	return n, nil
}

// Send exposes the Command Exchanger to callers outside this package
// that hold a raw rcxcmd.Command they built themselves (e.g. the
// interactive console). Most callers should prefer the named
// operations (Sync, DownloadProgram, DownloadFirmware, GetVersion, ...).
func (l *Link) Send(cmd rcxcmd.Command) (int, error) {
	return l.send(cmd, true, defaultSendTimeout)
}

// GetReply copies min(lastResult, len(dst)) bytes of the last captured
// reply (skipping the opcode-echo byte at index 0) into dst and returns
// the count.
func (l *Link) GetReply(dst []byte) int {
	n := l.lastResult
	if n > len(dst) {
		n = len(dst)
	}
	copy(dst, l.lastReply[1:1+n])
	return n
}

// GetReplyByte returns the i'th byte of the last captured reply,
// skipping the opcode echo. Callers must ensure i < the last result's
// length; this mirrors the original's unchecked direct accessor.
func (l *Link) GetReplyByte(i int) byte {
	return l.lastReply[i+1]
}
