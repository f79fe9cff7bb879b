package transport

// TCP-tunneled tower transport: some RCX tower deployments (e.g. a
// tower wired to a small network bridge instead of directly to the
// host) expose the same byte protocol over a TCP socket. This adapter
// needs no third-party client: the wire contract is "write the command,
// read exactly N bytes back," which net.Conn already gives us directly.

import (
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

type tcpTransport struct {
	mu         sync.Mutex
	conn       net.Conn
	omitHeader bool
	fastMode   bool
}

// NewTCP dials addr (host:port) as a TCP-tunneled tower.
func NewTCP(addr string, opts Options) (Transport, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dial tcp tower %s: %w", addr, err)
	}
	return &tcpTransport{conn: conn, omitHeader: opts.OmitHeader}, nil
}

func (t *tcpTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *tcpTransport) SetOmitHeader(omit bool) { t.omitHeader = omit }

// FastModeSupported is false for the TCP tunnel: there is no lower-level
// baud rate to renegotiate over a socket, so a fast-mode firmware
// transfer (which needs the nub handshake and a real speed switch) is
// not meaningful here. DownloadFirmware with fast=true against this
// adapter fails with PipeModeError, matching the original's behavior on
// any transport that answers FastModeSupported() with false.
func (t *tcpTransport) FastModeSupported() bool { return false }
func (t *tcpTransport) FastModeOddParity() bool { return false }
func (t *tcpTransport) SetFastMode(on bool)     { t.fastMode = on }
func (t *tcpTransport) FastMode() bool          { return t.fastMode }
func (t *tcpTransport) ComplementData() bool    { return false }

func (t *tcpTransport) Send(cmd []byte, reply []byte, expected int, retry bool, timeout time.Duration) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return 0, fmt.Errorf("send on closed tcp transport")
	}

	tries := 1
	if retry {
		tries = 3
	}

	var lastErr error
	for attempt := 0; attempt < tries; attempt++ {
		n, err := t.sendOnce(cmd, reply, expected, timeout)
		if err == nil {
			return n, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

func (t *tcpTransport) sendOnce(cmd []byte, reply []byte, expected int, timeout time.Duration) (int, error) {
	t.conn.SetDeadline(time.Now().Add(timeout))
	if _, err := t.conn.Write(cmd); err != nil {
		return 0, err
	}
	if expected == 0 {
		return 0, nil
	}
	if _, err := io.ReadFull(t.conn, reply[:expected]); err != nil {
		return 0, err
	}
	// reply[0] is the echoed opcode complement; report the payload
	// length that follows it.
	return expected - 1, nil
}

func (t *tcpTransport) DumpData(w io.Writer, data []byte) {
	dumpHex(w, data, t.omitHeader)
}
