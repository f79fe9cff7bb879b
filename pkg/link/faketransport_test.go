package link

import (
	"io"
	"time"

	"github.com/kbrick/rcx/pkg/rcxcmd"
)

// fakeTransport is a scriptable transport.Transport double: each call to
// Send pops the next scripted exchange and checks the outgoing command
// against it (when wantCmd is non-nil), then copies the scripted reply
// bytes into the caller's buffer. It records every command sent so
// tests can assert on the full exchange sequence.
type fakeTransport struct {
	script []fakeExchange
	pos    int

	sent []rcxcmd.Command

	fastModeSupported bool
	fastModeOddParity bool
	fastMode          bool
	complementData    bool

	closed bool
}

type fakeExchange struct {
	wantCmd rcxcmd.Command // nil: don't check the outgoing command
	reply   []byte         // wire bytes, echo byte included
	err     error
}

func (f *fakeTransport) Close() error         { f.closed = true; return nil }
func (f *fakeTransport) SetOmitHeader(b bool) {}

func (f *fakeTransport) Send(cmd []byte, reply []byte, expected int, retry bool, timeout time.Duration) (int, error) {
	f.sent = append(f.sent, append(rcxcmd.Command{}, cmd...))

	if f.pos >= len(f.script) {
		return 0, io.ErrUnexpectedEOF
	}
	ex := f.script[f.pos]
	f.pos++

	if ex.err != nil {
		return 0, ex.err
	}
	if len(ex.reply) != expected {
		panic("fakeTransport: scripted reply length does not match expected")
	}
	copy(reply, ex.reply)
	if expected == 0 {
		return 0, nil
	}
	return expected - 1, nil
}

func (f *fakeTransport) FastModeSupported() bool { return f.fastModeSupported }
func (f *fakeTransport) FastModeOddParity() bool { return f.fastModeOddParity }
func (f *fakeTransport) SetFastMode(on bool)     { f.fastMode = on }
func (f *fakeTransport) FastMode() bool          { return f.fastMode }
func (f *fakeTransport) ComplementData() bool    { return f.complementData }
func (f *fakeTransport) DumpData(w io.Writer, data []byte) {}

// replyOK builds a one-byte-payload reply (echo byte + the given payload
// byte), the shape every Begin-chunk success reply takes.
func replyOK(payload ...byte) []byte {
	return append([]byte{0xFF}, payload...)
}

// newTestLink builds a Link wired directly to a fake transport, bypassing
// Open/ResolvePort/dialTransport entirely.
func newTestLink(target Target, tr *fakeTransport) *Link {
	l := New(target)
	l.tr = tr
	l.maxZeros = rcxcmd.MaxZerosSerial
	return l
}
