package transport

// USB tower transport.
//
// The original implementation builds this adapter around a vendor
// libusb-based pipe (RCX_NewUSBTowerPipe) that is compiled in on
// platforms with the driver available and returns nil otherwise, at
// which point RCX_Link::Open fails with kRCX_USBUnsupportedError. None
// of this repo's reference material ships a Go USB HID/bulk driver, so
// this adapter always takes that same "driver not available" path. The
// Transport interface and capability flags it would need to implement
// are fully specified so a real backend can be dropped in later without
// touching package link.

// NewUSBTower always fails in this build; see ErrUSBUnsupported.
func NewUSBTower(opts Options) (Transport, error) {
	return nil, ErrUSBUnsupported
}
