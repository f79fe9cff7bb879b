package link

import (
	"github.com/kbrick/rcx/pkg/nub"
	"github.com/kbrick/rcx/pkg/rcxcmd"
	"github.com/kbrick/rcx/pkg/transport"
)

const firmwareChecksumWindow = 0x4C00

// DownloadFirmware is the Firmware Transfer Orchestrator (C8). When fast
// is true it first uploads the bootstrap nub at 0x8000 (without
// progress reporting), flips the transport into fast mode, transfers
// the real firmware with progress, then flips fast mode back off. When
// fast is false it transfers data directly at the non-negotiated speed.
func (l *Link) DownloadFirmware(data []byte, start int, fast bool) error {
	if !fast {
		return l.transferFirmware(data, start, true)
	}

	if !l.tr.FastModeSupported() {
		return ErrPipeMode
	}

	nubBytes := nub.Select(l.tr.FastModeOddParity())
	if err := l.transferFirmware(nubBytes, nub.LoadAddress, false); err != nil {
		return err
	}

	l.tr.SetFastMode(true)
	err := l.transferFirmware(data, start, true)
	l.tr.SetFastMode(false)
	return err
}

// transferFirmware is shared by the nub upload and the real firmware
// transfer: sync, send the DeleteFirmware shibboleth, announce the
// transfer with its checksum over the first min(length, 0x4C00) bytes,
// drive the chunked downloader at the firmware chunk size, and finish
// with a no-retry, max-timeout Unlock whose reply may legitimately be
// lost while the target is mid-switch to fast mode.
func (l *Link) transferFirmware(data []byte, start int, progress bool) error {
	if err := l.Sync(); err != nil {
		return err
	}

	if _, err := l.send(rcxcmd.MakeDeleteFirmware(), true, defaultSendTimeout); err != nil {
		return err
	}

	window := len(data)
	if window > firmwareChecksumWindow {
		window = firmwareChecksumWindow
	}
	check := rcxcmd.Checksum16(data[:window])

	if _, err := l.send(rcxcmd.MakeBeginFirmware(uint16(start), check), true, defaultSendTimeout); err != nil {
		return err
	}

	if progress {
		l.beginProgress(len(data))
	} else {
		l.beginProgress(0)
	}

	if err := l.download(data, l.firmwareChunkSize); err != nil {
		return err
	}

	_, err := l.send(rcxcmd.MakeUnlock(), false, transport.MaxTimeout)
	if l.tr.FastMode() {
		return nil
	}
	return err
}
