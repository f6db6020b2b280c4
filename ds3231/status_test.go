package ds3231

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestStatusBits(t *testing.T) {
	c := qt.New(t)
	c.Assert(StatusFlags{OscillatorStopped: true}.Encode(), qt.Equals, byte(0x80))
	c.Assert(StatusFlags{Enable32kHz: true}.Encode(), qt.Equals, byte(0x08))
	c.Assert(StatusFlags{Busy: true}.Encode(), qt.Equals, byte(0x04))
	c.Assert(StatusFlags{Alarm2Fired: true}.Encode(), qt.Equals, byte(0x02))
	c.Assert(StatusFlags{Alarm1Fired: true}.Encode(), qt.Equals, byte(0x01))

	// power-on value: OSF and EN32kHz set
	c.Assert(DecodeStatus(0x88), qt.Equals, StatusFlags{OscillatorStopped: true, Enable32kHz: true})
	// unused bits are dropped
	c.Assert(DecodeStatus(0x70), qt.Equals, StatusFlags{})
	c.Assert(DecodeStatus(0xFF).Encode(), qt.Equals, byte(0x8F))
}

func TestControlBits(t *testing.T) {
	c := qt.New(t)
	// power-on value: oscillator on, INTCN set, rate 8.192kHz
	want := ControlFlags{OscillatorEnabled: true, Rate: Rate8192Hz, InterruptControl: true}
	c.Assert(DecodeControl(0x1C), qt.Equals, want)
	c.Assert(want.Encode(), qt.Equals, byte(0x1C))

	c.Assert(ControlFlags{}.Encode(), qt.Equals, byte(0x80))
	c.Assert(ControlFlags{OscillatorEnabled: true, BatterySquareWave: true}.Encode(), qt.Equals, byte(0x40))
	c.Assert(ControlFlags{OscillatorEnabled: true, ConvertTemperature: true}.Encode(), qt.Equals, byte(0x20))
	c.Assert(ControlFlags{OscillatorEnabled: true, Alarm2InterruptEnable: true}.Encode(), qt.Equals, byte(0x02))
	c.Assert(ControlFlags{OscillatorEnabled: true, Alarm1InterruptEnable: true}.Encode(), qt.Equals, byte(0x01))
}

func TestControlRoundTrip(t *testing.T) {
	c := qt.New(t)
	for b := 0; b <= 0xFF; b++ {
		c.Assert(DecodeControl(byte(b)).Encode(), qt.Equals, byte(b))
	}
}

func TestRateSelect(t *testing.T) {
	c := qt.New(t)
	for r, hz := range map[RateSelect]int{Rate1Hz: 1, Rate1024Hz: 1024, Rate4096Hz: 4096, Rate8192Hz: 8192} {
		c.Assert(r.Hz(), qt.Equals, hz)
		c.Assert(DecodeControl(ControlFlags{Rate: r}.Encode()).Rate, qt.Equals, r)
	}
	c.Assert(Rate4096Hz.String(), qt.Equals, "4096Hz")
}
