package link

import (
	"github.com/kbrick/rcx/pkg/rcxcmd"
	"github.com/kbrick/rcx/pkg/rcximage"
)

// DownloadProgram is the Program Download Orchestrator (C7): sync,
// stop all running tasks, then either link-and-send a single Spybotics
// blob or walk the image chunk by chunk. programNumber is 1-based; 0
// means "leave the currently selected program alone."
func (l *Link) DownloadProgram(img *rcximage.Image, programNumber int) error {
	if err := l.Sync(); err != nil {
		return err
	}
	if _, err := l.send(rcxcmd.MakeStopAll(), true, defaultSendTimeout); err != nil {
		return err
	}

	var err error
	if l.target == Spybotics {
		err = l.downloadSpybotics(img)
	} else {
		err = l.downloadByChunk(img, programNumber)
	}
	if err != nil {
		return err
	}

	if !l.quiet {
		_, _ = l.send(rcxcmd.MakePlaySound(5), true, defaultSendTimeout)
	}
	return nil
}

func (l *Link) downloadSpybotics(img *rcximage.Image) error {
	blob := rcximage.LinkSpybotics(img)
	check := rcxcmd.Checksum16(blob)

	if _, err := l.send(rcxcmd.MakeBeginFirmware(0x0100, check), true, defaultSendTimeout); err != nil {
		return err
	}

	l.beginProgress(len(blob))

	chunk := spyboticsChunk
	if l.usb {
		chunk = spyboticsSmallChunk
	}
	return l.download(blob, chunk)
}

func (l *Link) downloadByChunk(img *rcximage.Image, programNumber int) error {
	if programNumber > 0 {
		if _, err := l.send(rcxcmd.MakeSelectProgram(byte(programNumber-1)), true, defaultSendTimeout); err != nil {
			return err
		}
	}

	if _, err := l.send(rcxcmd.MakeDeleteTasks(), true, defaultSendTimeout); err != nil {
		return err
	}
	if _, err := l.send(rcxcmd.MakeDeleteSubs(), true, defaultSendTimeout); err != nil {
		return err
	}

	total := img.Size()
	for i, c := range img.Chunks {
		chunkTotal := -1
		if i == 0 {
			chunkTotal = total
		}
		if err := l.downloadChunk(c.Type, c.Number, c.Data, chunkTotal); err != nil {
			return err
		}
	}
	return nil
}

// downloadChunk is DownloadChunk: it (re)syncs, announces the chunk with
// a Begin command, requires an exact one-byte zero reply (anything else
// is MemFullError per spec.md §4.7), and then drives the chunked
// downloader at the program chunk size. total == 0 means "use this
// chunk's own length as the progress total"; total < 0 means "progress
// was already initialized by an earlier chunk in this image, leave it
// alone."
func (l *Link) downloadChunk(t rcxcmd.ChunkType, number byte, data []byte, total int) error {
	if err := l.Sync(); err != nil {
		return err
	}

	n, err := l.send(rcxcmd.MakeBegin(t, number, uint16(len(data))), true, defaultSendTimeout)
	if err != nil {
		return err
	}
	if n != 1 || l.GetReplyByte(0) != 0 {
		return ErrMemFull
	}

	if total == 0 {
		total = len(data)
	}
	if total > 0 {
		l.beginProgress(total)
	}

	return l.download(data, l.programChunkSize)
}
