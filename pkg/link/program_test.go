package link

import (
	"bytes"
	"testing"

	"github.com/kbrick/rcx/pkg/rcxcmd"
	"github.com/kbrick/rcx/pkg/rcximage"
)

func chunkData(n int, start byte) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = start + byte(i)
	}
	return d
}

func TestDownloadProgramRCX2SingleTaskChunk(t *testing.T) {
	data := chunkData(25, 1) // two frames at chunkSize 20: 20 then 5
	img := &rcximage.Image{Chunks: []rcximage.Chunk{
		{Type: rcxcmd.ChunkTask, Number: 0, Data: data},
	}}

	tr := &fakeTransport{script: []fakeExchange{
		{reply: []byte{0xFF}},                      // Ping
		{reply: []byte{0xFF}},                      // StopAll
		{reply: []byte{0xFF}},                      // DeleteTasks
		{reply: []byte{0xFF}},                      // DeleteSubs
		{reply: replyOK(0)},                         // BeginTask -> ok
		{reply: replyOK(0)},                         // Download frame 1
		{reply: replyOK(0)},                         // Download frame 2 (final)
		{reply: []byte{0xFF}},                      // PlaySound
	}}
	l := newTestLink(RCX2, tr)

	if err := l.DownloadProgram(img, 0); err != nil {
		t.Fatalf("DownloadProgram: %v", err)
	}

	want := []rcxcmd.Command{
		rcxcmd.MakePing(),
		rcxcmd.MakeStopAll(),
		rcxcmd.MakeDeleteTasks(),
		rcxcmd.MakeDeleteSubs(),
		rcxcmd.MakeBegin(rcxcmd.ChunkTask, 0, 25),
		rcxcmd.MakeDownload(1, data[:20]),
		rcxcmd.MakeDownload(0, data[20:]),
		rcxcmd.MakePlaySound(5),
	}
	if len(tr.sent) != len(want) {
		t.Fatalf("sent %d commands, want %d: %v", len(tr.sent), len(want), tr.sent)
	}
	for i := range want {
		if !bytes.Equal(tr.sent[i], want[i]) {
			t.Fatalf("command %d: got % x want % x", i, tr.sent[i], want[i])
		}
	}
}

func TestDownloadProgramSelectsNonZeroProgramNumber(t *testing.T) {
	img := &rcximage.Image{Chunks: []rcximage.Chunk{
		{Type: rcxcmd.ChunkTask, Number: 0, Data: []byte{1, 2, 3}},
	}}

	tr := &fakeTransport{script: []fakeExchange{
		{reply: []byte{0xFF}},  // Ping
		{reply: []byte{0xFF}},  // StopAll
		{reply: []byte{0xFF}},  // SelectProgram
		{reply: []byte{0xFF}},  // DeleteTasks
		{reply: []byte{0xFF}},  // DeleteSubs
		{reply: replyOK(0)},     // BeginTask
		{reply: replyOK(0)},     // Download (single final frame)
		{reply: []byte{0xFF}},  // PlaySound
	}}
	l := newTestLink(RCX2, tr)

	if err := l.DownloadProgram(img, 3); err != nil {
		t.Fatalf("DownloadProgram: %v", err)
	}
	if !bytes.Equal(tr.sent[2], rcxcmd.MakeSelectProgram(2)) {
		t.Fatalf("expected SelectProgram(2), got % x", tr.sent[2])
	}
}

func TestDownloadProgramQuietSuppressesPlaySound(t *testing.T) {
	img := &rcximage.Image{Chunks: []rcximage.Chunk{
		{Type: rcxcmd.ChunkTask, Number: 0, Data: []byte{1, 2, 3}},
	}}
	tr := &fakeTransport{script: []fakeExchange{
		{reply: []byte{0xFF}}, // Ping
		{reply: []byte{0xFF}}, // StopAll
		{reply: []byte{0xFF}}, // DeleteTasks
		{reply: []byte{0xFF}}, // DeleteSubs
		{reply: replyOK(0)},    // BeginTask
		{reply: replyOK(0)},    // Download
	}}
	l := newTestLink(RCX2, tr)
	l.SetQuiet(true)

	if err := l.DownloadProgram(img, 0); err != nil {
		t.Fatalf("DownloadProgram: %v", err)
	}
	for _, cmd := range tr.sent {
		if cmd[0] == rcxcmd.OpPlaySound {
			t.Fatalf("PlaySound sent despite SetQuiet(true): % x", cmd)
		}
	}
}

func TestDownloadChunkMemFullOnNonZeroReply(t *testing.T) {
	img := &rcximage.Image{Chunks: []rcximage.Chunk{
		{Type: rcxcmd.ChunkTask, Number: 0, Data: []byte{1, 2, 3}},
	}}
	tr := &fakeTransport{script: []fakeExchange{
		{reply: []byte{0xFF}},   // Ping
		{reply: []byte{0xFF}},   // StopAll
		{reply: []byte{0xFF}},   // DeleteTasks
		{reply: []byte{0xFF}},   // DeleteSubs
		{reply: replyOK(1)},      // BeginTask replies non-zero: memory full
	}}
	l := newTestLink(RCX2, tr)

	err := l.DownloadProgram(img, 0)
	if err != ErrMemFull {
		t.Fatalf("got %v want ErrMemFull", err)
	}
}

func TestDownloadProgramSpyboticsLinksAndChecksums(t *testing.T) {
	img := &rcximage.Image{Chunks: []rcximage.Chunk{
		{Type: rcxcmd.ChunkTask, Number: 0, Data: []byte{1, 2, 3, 4}},
	}}
	blob := rcximage.LinkSpybotics(img)
	check := rcxcmd.Checksum16(blob)

	tr := &fakeTransport{script: []fakeExchange{
		{reply: []byte{0xFF}},  // Ping (Spybotics is not CM/Scout in the Sync switch)
		{reply: []byte{0xFF}},  // StopAll
		{reply: replyOK(0)},     // BeginFirmware
		{reply: replyOK(0)},     // single download frame (blob is short)
		{reply: []byte{0xFF}},  // PlaySound
	}}
	l := newTestLink(Spybotics, tr)

	if err := l.DownloadProgram(img, 0); err != nil {
		t.Fatalf("DownloadProgram: %v", err)
	}

	want := rcxcmd.MakeBeginFirmware(0x0100, check)
	if !bytes.Equal(tr.sent[2], want) {
		t.Fatalf("BeginFirmware: got % x want % x", tr.sent[2], want)
	}
}
