package link

import "github.com/kbrick/rcx/pkg/rcxcmd"

// Value re-exports rcxcmd.Value for callers of GetValue.
type Value = rcxcmd.Value

// GetVersion returns the target's ROM and RAM (firmware) versions, each
// a big-endian 32-bit word decoded from an 8-byte GetVersions reply.
func (l *Link) GetVersion() (rom, ram uint32, err error) {
	if err := l.Sync(); err != nil {
		return 0, 0, err
	}

	n, err := l.send(rcxcmd.MakeGetVersions(), true, defaultSendTimeout)
	if err != nil {
		return 0, 0, err
	}
	if n != 8 {
		return 0, 0, &OpcodeError{Opcode: rcxcmd.OpGetVersions, Got: n, Want: 8}
	}

	var reply [8]byte
	l.GetReply(reply[:])

	rom = uint32(reply[0])<<24 | uint32(reply[1])<<16 | uint32(reply[2])<<8 | uint32(reply[3])
	ram = uint32(reply[4])<<24 | uint32(reply[5])<<16 | uint32(reply[6])<<8 | uint32(reply[7])
	return rom, ram, nil
}

// GetValue reads one memory-mapped value by (type, index), decoded as a
// little-endian 16-bit word.
func (l *Link) GetValue(v Value) (int, error) {
	if err := l.Sync(); err != nil {
		return 0, err
	}

	n, err := l.send(rcxcmd.MakeRead(v), true, defaultSendTimeout)
	if err != nil {
		return 0, err
	}
	if n != 2 {
		return 0, &OpcodeError{Opcode: rcxcmd.OpRead, Got: n, Want: 2}
	}

	return int(l.GetReplyByte(0)) | int(l.GetReplyByte(1))<<8, nil
}

// GetBatteryLevel returns the target's battery level in millivolts. On
// Scout (which has no BatteryLevel opcode) it reads a memory location
// via PollMemory and scales by 109 mV/unit; every other target answers
// BatteryLevel directly with a little-endian 16-bit millivolt reading.
func (l *Link) GetBatteryLevel() (int, error) {
	if err := l.Sync(); err != nil {
		return 0, err
	}

	if l.target == Scout {
		n, err := l.send(rcxcmd.MakePollMemory(0x3A, 0x01, 0x01), true, defaultSendTimeout)
		if err != nil {
			return 0, err
		}
		if n != 1 {
			return 0, &OpcodeError{Opcode: rcxcmd.OpPollMemory, Got: n, Want: 1}
		}
		return int(l.GetReplyByte(0)) * 109, nil
	}

	n, err := l.send(rcxcmd.MakeBatteryLevel(), true, defaultSendTimeout)
	if err != nil {
		return 0, err
	}
	if n != 2 {
		return 0, &OpcodeError{Opcode: rcxcmd.OpBatteryLevel, Got: n, Want: 2}
	}
	return int(l.GetReplyByte(0)) | int(l.GetReplyByte(1))<<8, nil
}
