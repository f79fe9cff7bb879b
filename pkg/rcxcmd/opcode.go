package rcxcmd

// Opcode bytes, in the numbering this repo uses for the RCX family's
// command set. Bit 0x08 is a sequence-toggle flag some firmware
// revisions expect to alternate on successive identical commands; it
// carries no semantic weight for reply-length classification, so every
// lookup here masks it off first.
const (
	OpBeginTask      byte = 0x01
	OpBeginSub       byte = 0x03
	OpDownload       byte = 0x05
	OpBeginFirmware  byte = 0x15
	OpBatteryLevel   byte = 0x30
	OpRead           byte = 0x12
	OpGetVersions    byte = 0x14
	OpUploadEeprom   byte = 0x25
	OpUnlock         byte = 0x11
	OpGetMemMap      byte = 0x20
	OpPollMemory     byte = 0x13
	OpUploadDatalog  byte = 0x26
	OpStopAll        byte = 0x60
	OpSelectProgram  byte = 0x91
	OpDeleteTasks    byte = 0x40
	OpDeleteSubs     byte = 0x41
	OpDeleteFirmware byte = 0x27
	OpPlaySound      byte = 0x51
	OpSet            byte = 0x42
	OpPing           byte = 0x10
)

// seqMask strips the sequence-toggle bit before opcode classification,
// per spec: opcode identity is command[0] & 0xF7.
const seqMask = 0xF7

// MaxReplyLength is the largest reply any opcode can legitimately demand
// (GetMemMap on a non-CyberMaster target). A reply buffer is sized to
// this; a request whose computed expected length exceeds it is rejected
// before it ever reaches the transport.
const MaxReplyLength = 189

// MaxCmdLength bounds the command bytes this link will ever construct or
// forward; anything longer indicates a caller-supplied command is
// malformed rather than a protocol command this core recognizes.
const MaxCmdLength = 256

// ExpectedReplyLength is the opcode table: a pure function of the
// command's leading opcode byte, the full command bytes (needed for the
// length- and parameter-dependent PollMemory/UploadDatalog cases), and
// the target (needed for UploadEeprom/GetMemMap). It never touches a
// transport and never blocks.
func ExpectedReplyLength(cmd []byte, target Target) int {
	if len(cmd) == 0 {
		return 1
	}
	switch cmd[0] & seqMask {
	case OpBeginTask, OpBeginSub, OpDownload, OpBeginFirmware:
		return 2
	case OpBatteryLevel, OpRead:
		return 3
	case OpGetVersions:
		return 9
	case OpUploadEeprom:
		if target == CM {
			return 1
		}
		return 17
	case OpUnlock:
		return 26
	case OpGetMemMap:
		if target == CM {
			return 21
		}
		return 189
	case OpPollMemory:
		if len(cmd) != 4 {
			return 0
		}
		return int(cmd[3]) + 1
	case OpUploadDatalog:
		if len(cmd) != 5 {
			return 0
		}
		return (int(cmd[3])|int(cmd[4])<<8)*3 + 1
	default:
		return 1
	}
}
