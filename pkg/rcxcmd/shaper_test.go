package rcxcmd

import "testing"

func TestShapeChunkComplementIsIdentity(t *testing.T) {
	data := make([]byte, 60)
	if got := ShapeChunk(60, data, true, MaxZerosUSB, MaxOnes); got != 60 {
		t.Fatalf("got %d want 60", got)
	}
}

func TestShapeChunkZeroRun(t *testing.T) {
	// d = [1]*10, then 25 zeros, then 1s. max_zeros = 23.
	// Expected: the zero run starting at index 10 triggers truncation
	// at i + maxZeros = 10 + 23 = 33.
	data := make([]byte, 60)
	for i := 0; i < 10; i++ {
		data[i] = 1
	}
	for i := 10; i < 35; i++ {
		data[i] = 0
	}
	for i := 35; i < 60; i++ {
		data[i] = 1
	}

	got := ShapeChunk(60, data, false, 23, MaxOnes)
	if got != 33 {
		t.Fatalf("got %d want 33", got)
	}
}

func TestShapeChunkSparseRun(t *testing.T) {
	// 95 bytes, each with popcount <= 2 (sparse). max_ones = 90.
	data := make([]byte, 120)
	for i := range data[:95] {
		data[i] = 0x01 // popcount 1, sparse
	}
	for i := 95; i < 120; i++ {
		data[i] = 0xFF // dense
	}

	got := ShapeChunk(120, data, false, MaxZerosUSB, 90)
	if got != 90 {
		t.Fatalf("got %d want 90", got)
	}
}

func TestIsSparse(t *testing.T) {
	if !isSparse(0x00) {
		t.Fatal("0x00 should be sparse (popcount 0)")
	}
	if !isSparse(0x03) {
		t.Fatal("0x03 should be sparse (popcount 2)")
	}
	if isSparse(0x07) {
		t.Fatal("0x07 should not be sparse (popcount 3)")
	}
	if isSparse(0xFF) {
		t.Fatal("0xFF should not be sparse (popcount 8)")
	}
}

func TestShapeChunkNoTriggerReturnsRequested(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = 0xFF // dense, no zero runs, no sparse runs
	}
	got := ShapeChunk(20, data, false, MaxZerosUSB, MaxOnes)
	if got != 20 {
		t.Fatalf("got %d want 20 (no guard should trigger)", got)
	}
}
