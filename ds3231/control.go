package ds3231

import "strconv"

// RateSelect is the square-wave output frequency (RS2:RS1).
type RateSelect uint8

const (
	Rate1Hz RateSelect = iota
	Rate1024Hz
	Rate4096Hz
	Rate8192Hz
)

// Hz returns the output frequency.
func (r RateSelect) Hz() int {
	switch r & 0b11 {
	case Rate1024Hz:
		return 1024
	case Rate4096Hz:
		return 4096
	case Rate8192Hz:
		return 8192
	default:
		return 1
	}
}

func (r RateSelect) String() string {
	return strconv.Itoa(r.Hz()) + "Hz"
}

// ControlFlags mirrors the control register (0x0E).
type ControlFlags struct {
	// OscillatorEnabled is the inverse of EOSC. When false the oscillator stops as soon as the chip runs from
	// battery.
	OscillatorEnabled bool
	// BatterySquareWave (BBSQW) keeps the square wave running on battery when InterruptControl is off.
	BatterySquareWave  bool
	ConvertTemperature bool
	Rate               RateSelect
	// InterruptControl (INTCN) routes alarm matches to the INT/SQW pin instead of the square wave.
	InterruptControl      bool
	Alarm2InterruptEnable bool
	Alarm1InterruptEnable bool
}

// Encode packs the flags into a register value.
func (c ControlFlags) Encode() byte {
	return bit(!c.OscillatorEnabled, controlEOSC) |
		bit(c.BatterySquareWave, controlBBSQW) |
		bit(c.ConvertTemperature, controlCONV) |
		byte(c.Rate&0b11)<<controlRS1 |
		bit(c.InterruptControl, controlINTCN) |
		bit(c.Alarm2InterruptEnable, controlA2IE) |
		bit(c.Alarm1InterruptEnable, controlA1IE)
}

// DecodeControl extracts the flags from a control register value. Every bit pattern is a legal chip state.
func DecodeControl(b byte) ControlFlags {
	return ControlFlags{
		OscillatorEnabled:     !isSet(b, controlEOSC),
		BatterySquareWave:     isSet(b, controlBBSQW),
		ConvertTemperature:    isSet(b, controlCONV),
		Rate:                  RateSelect(b>>controlRS1) & 0b11,
		InterruptControl:      isSet(b, controlINTCN),
		Alarm2InterruptEnable: isSet(b, controlA2IE),
		Alarm1InterruptEnable: isSet(b, controlA1IE),
	}
}
