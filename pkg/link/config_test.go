package link

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePortExplicitWins(t *testing.T) {
	t.Setenv(envPortVar, "tcp:1.2.3.4:1234")
	got, err := ResolvePort("serial:/dev/ttyS1")
	if err != nil {
		t.Fatalf("ResolvePort: %v", err)
	}
	if got != "serial:/dev/ttyS1" {
		t.Fatalf("got %q", got)
	}
}

func TestResolvePortFallsBackToEnv(t *testing.T) {
	t.Setenv(envPortVar, "usb:")
	got, err := ResolvePort("")
	if err != nil {
		t.Fatalf("ResolvePort: %v", err)
	}
	if got != "usb:" {
		t.Fatalf("got %q", got)
	}
}

func TestResolvePortFallsBackToUserConfFile(t *testing.T) {
	t.Setenv(envPortVar, "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	confDir := filepath.Join(home, ".rcx")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatal(err)
	}
	confPath := filepath.Join(confDir, "device.conf")
	if err := os.WriteFile(confPath, []byte("serial:/dev/ttyUSB2  # tower\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolvePort("")
	if err != nil {
		t.Fatalf("ResolvePort: %v", err)
	}
	if got != "serial:/dev/ttyUSB2" {
		t.Fatalf("got %q", got)
	}
}

func TestResolvePortDefaultsWhenNothingConfigured(t *testing.T) {
	t.Setenv(envPortVar, "")
	t.Setenv("HOME", t.TempDir()) // no .rcx/device.conf inside it

	got, err := ResolvePort("")
	if err != nil {
		t.Fatalf("ResolvePort: %v", err)
	}
	if got != DefaultDeviceName {
		t.Fatalf("got %q want %q (unless /etc/rcx/device.conf exists on the test host)", got, DefaultDeviceName)
	}
}
