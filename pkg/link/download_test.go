package link

import "testing"

func TestDownloadReportsProgressAndAborts(t *testing.T) {
	data := chunkData(45, 1) // three frames at chunkSize 20: 20, 20, 5
	tr := &fakeTransport{script: []fakeExchange{
		{reply: replyOK(0)},
		{reply: replyOK(0)},
		{reply: replyOK(0)},
	}}
	l := newTestLink(RCX2, tr)
	l.beginProgress(len(data))

	var calls []int
	l.SetProgressFunc(func(soFar, total, delta int) bool {
		calls = append(calls, soFar)
		return soFar < 25 // abort partway through the second frame
	})

	err := l.download(data, 20)
	if err != ErrAbort {
		t.Fatalf("got %v want ErrAbort", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected exactly 2 progress calls before abort, got %d: %v", len(calls), calls)
	}
	if calls[0] != 20 || calls[1] != 40 {
		t.Fatalf("got %v want [20 40]", calls)
	}
}

func TestDownloadNoProgressCallbackAlwaysContinues(t *testing.T) {
	data := chunkData(25, 1)
	tr := &fakeTransport{script: []fakeExchange{
		{reply: replyOK(0)},
		{reply: replyOK(0)},
	}}
	l := newTestLink(RCX2, tr)
	l.beginProgress(len(data))

	if err := l.download(data, 20); err != nil {
		t.Fatalf("download: %v", err)
	}
}

func TestDownloadZeroTotalNeverInvokesCallback(t *testing.T) {
	data := chunkData(3, 1)
	tr := &fakeTransport{script: []fakeExchange{{reply: replyOK(0)}}}
	l := newTestLink(RCX2, tr)
	// beginProgress(0): progress disabled for this transfer.
	l.beginProgress(0)

	called := false
	l.SetProgressFunc(func(soFar, total, delta int) bool {
		called = true
		return true
	})
	if err := l.download(data, 20); err != nil {
		t.Fatalf("download: %v", err)
	}
	if called {
		t.Fatal("progress callback should not fire when total is 0")
	}
}
