package link

import (
	"bufio"
	"os"
	"path/filepath"
)

// envPortVar is the environment variable holding a device URL,
// overriding both config files and the compiled-in default.
const envPortVar = "RCX_PORT"

const (
	userConfRelPath = ".rcx/device.conf"
	systemConfPath  = "/etc/rcx/device.conf"
)

// DefaultDeviceName is the compiled-in fallback used when no other
// source names a port. Real deployments almost always override this
// via RCX_PORT or a config file; it exists so Open never fails purely
// for lack of configuration.
const DefaultDeviceName = "serial:/dev/ttyUSB0"

// ResolvePort implements the device-URL precedence chain from spec.md
// §3: an explicit caller-supplied name wins outright; otherwise
// RCX_PORT, then $HOME/.rcx/device.conf, then /etc/rcx/device.conf,
// then the compiled-in default, in that order.
func ResolvePort(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if v := os.Getenv(envPortVar); v != "" {
		return v, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		if tok, err := firstToken(filepath.Join(home, userConfRelPath)); err == nil && tok != "" {
			return tok, nil
		}
	}

	if tok, err := firstToken(systemConfPath); err == nil && tok != "" {
		return tok, nil
	}

	return DefaultDeviceName, nil
}

// firstToken reads the first whitespace-delimited token from path's
// contents, per spec.md §6's config file format. A missing file is
// reported as an error the caller treats as "this source has nothing
// to say," not a hard failure of ResolvePort itself.
func firstToken(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	s.Split(bufio.ScanWords)
	if s.Scan() {
		return s.Text(), nil
	}
	return "", s.Err()
}
