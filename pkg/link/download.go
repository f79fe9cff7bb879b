package link

import (
	"time"

	"github.com/kbrick/rcx/pkg/rcxcmd"
)

// downloadWaitTime is the per-frame timeout for download commands.
func (l *Link) downloadWaitTime() time.Duration {
	return time.Duration(l.downloadWaitMS) * time.Millisecond
}

// download is the Chunked Downloader (C6): it iterates data in bounded
// chunks, calling the shaper to adjust each chunk's size before sending
// it, and reports progress after each frame. The final frame's sequence
// number is forced to 0 — per spec.md §4.6/§9, the original's
// "if (!quiet || program_mode)" guard is a tautology in practice because
// program_mode is true for every image-chunk download, and this repo
// preserves that outcome unconditionally rather than reintroducing the
// stack-scoped program_mode flag it names in its redesign notes.
func (l *Link) download(data []byte, chunkSize int) error {
	remain := len(data)
	seq := uint16(1)
	pos := 0

	for remain > 0 {
		var n int
		final := remain <= chunkSize
		if final {
			n = remain
		} else {
			n = chunkSize
		}

		n = rcxcmd.ShapeChunk(n, data[pos:], l.tr.ComplementData(), l.maxZeros, l.maxOnes)

		frameSeq := seq
		if final {
			frameSeq = 0
		}
		seq++

		if _, err := l.send(rcxcmd.MakeDownload(frameSeq, data[pos:pos+n]), true, l.downloadWaitTime()); err != nil {
			return err
		}

		pos += n
		remain -= n
		if !l.incrementProgress(n) {
			return ErrAbort
		}
	}

	return nil
}

// beginProgress resets the progress counters for a new transfer. total
// of 0 disables progress reporting for this transfer (incrementProgress
// always returns true).
func (l *Link) beginProgress(total int) {
	l.downloadTotal = total
	l.downloadSoFar = 0
}

// incrementProgress advances the so-far counter and invokes the
// progress callback if one total was set. The zero-value callback
// (ProgressFunc == nil) always permits continuing, matching the
// original's default DownloadProgress returning true.
func (l *Link) incrementProgress(delta int) bool {
	l.downloadSoFar += delta
	if l.downloadTotal == 0 {
		return true
	}
	if l.onProgress == nil {
		return true
	}
	return l.onProgress(l.downloadSoFar, l.downloadTotal, delta)
}
