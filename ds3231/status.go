package ds3231

// StatusFlags mirrors the control/status register (0x0F). Bits 6..4 are unused; they are dropped on decode and
// written as zero.
type StatusFlags struct {
	// OscillatorStopped (OSF) is set when the oscillator has stopped at some point, typically after power loss, and
	// means the time registers cannot be trusted. Only a write of zero clears it.
	OscillatorStopped bool
	Enable32kHz       bool
	// Busy (BSY) is read-only and set while a temperature conversion runs.
	Busy bool
	// Alarm flags are set by the chip when the alarm time matches. Writing false clears them, writing true has no
	// effect.
	Alarm2Fired bool
	Alarm1Fired bool
}

// Encode packs the flags into a register value.
func (s StatusFlags) Encode() byte {
	return bit(s.OscillatorStopped, statusOSF) |
		bit(s.Enable32kHz, statusEN32kHz) |
		bit(s.Busy, statusBSY) |
		bit(s.Alarm2Fired, statusA2F) |
		bit(s.Alarm1Fired, statusA1F)
}

// DecodeStatus extracts the flags from a status register value.
func DecodeStatus(b byte) StatusFlags {
	return StatusFlags{
		OscillatorStopped: isSet(b, statusOSF),
		Enable32kHz:       isSet(b, statusEN32kHz),
		Busy:              isSet(b, statusBSY),
		Alarm2Fired:       isSet(b, statusA2F),
		Alarm1Fired:       isSet(b, statusA1F),
	}
}

func bit(v bool, pos uint8) byte {
	if v {
		return 1 << pos
	}
	return 0
}

func isSet(b byte, pos uint8) bool {
	return b&(1<<pos) != 0
}
