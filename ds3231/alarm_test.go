package ds3231

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestAlarmRoundTrip(t *testing.T) {
	c := qt.New(t)
	for n, l := range alarmLayouts {
		for _, m := range l.masks {
			for _, a := range []Alarm{
				{Minute: 30, Hour: 7, DayOrDate: 1},
				{Minute: 59, Hour: 23, DayOrDate: 7},
				{Minute: 0, Hour: 0, DayOrDate: 5},
			} {
				a.Number = n
				a.Mode = m.mode
				if n == Alarm1 {
					a.Second = 45
				}
				buf, err := EncodeAlarm(a)
				c.Assert(err, qt.IsNil, qt.Commentf("%+v", a))
				c.Assert(buf, qt.HasLen, len(l.fields))
				got, err := DecodeAlarm(buf)
				c.Assert(err, qt.IsNil, qt.Commentf("%+v % X", a, buf))
				c.Assert(got, qt.Equals, a)
			}
		}
	}
}

func TestAlarmDateRoundTrip(t *testing.T) {
	c := qt.New(t)
	for _, n := range []AlarmNumber{Alarm1, Alarm2} {
		a := Alarm{Number: n, Minute: 15, Hour: 12, DayOrDate: 31, Mode: AlarmMatchDate}
		buf, err := EncodeAlarm(a)
		c.Assert(err, qt.IsNil)
		got, err := DecodeAlarm(buf)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, a)
	}
}

func TestEncodeAlarmRegisters(t *testing.T) {
	c := qt.New(t)
	for _, test := range []struct {
		alarm Alarm
		want  []byte
	}{
		{Alarm{Number: Alarm1, Mode: AlarmOncePerSecond}, []byte{0x80, 0x80, 0x80, 0x80}},
		{Alarm{Number: Alarm1, Second: 30, Mode: AlarmMatchSeconds}, []byte{0x30, 0x80, 0x80, 0x80}},
		{Alarm{Number: Alarm1, Second: 30, Minute: 15, Mode: AlarmMatchMinutes}, []byte{0x30, 0x15, 0x80, 0x80}},
		{Alarm{Number: Alarm1, Second: 1, Minute: 2, Hour: 23, Mode: AlarmMatchHours}, []byte{0x01, 0x02, 0x23, 0x80}},
		{Alarm{Number: Alarm1, Hour: 6, DayOrDate: 25, Mode: AlarmMatchDate}, []byte{0x00, 0x00, 0x06, 0x25}},
		{Alarm{Number: Alarm1, Hour: 6, DayOrDate: 3, Mode: AlarmMatchDay}, []byte{0x00, 0x00, 0x06, 0x43}},
		{Alarm{Number: Alarm2, Mode: AlarmOncePerMinute}, []byte{0x80, 0x80, 0x80}},
		{Alarm{Number: Alarm2, Minute: 45, Mode: AlarmMatchMinutes}, []byte{0x45, 0x80, 0x80}},
		{Alarm{Number: Alarm2, Minute: 45, Hour: 18, Mode: AlarmMatchHours}, []byte{0x45, 0x18, 0x80}},
		{Alarm{Number: Alarm2, Minute: 45, Hour: 18, DayOrDate: 12, Mode: AlarmMatchDate}, []byte{0x45, 0x18, 0x12}},
		{Alarm{Number: Alarm2, Minute: 45, Hour: 18, DayOrDate: 7, Mode: AlarmMatchDay}, []byte{0x45, 0x18, 0x47}},
	} {
		buf, err := EncodeAlarm(test.alarm)
		c.Assert(err, qt.IsNil)
		c.Assert(buf, qt.DeepEquals, test.want, qt.Commentf("%+v", test.alarm))
	}
}

func TestEncodeAlarmRange(t *testing.T) {
	c := qt.New(t)
	for _, test := range []struct {
		about string
		alarm Alarm
		field string
	}{
		{"no alarm 3", Alarm{Number: 3}, "alarm number"},
		{"no alarm 0", Alarm{Number: 0}, "alarm number"},
		{"seconds on alarm 2", Alarm{Number: Alarm2, Second: 5, Mode: AlarmMatchMinutes}, "alarm 2 second"},
		{"once per second on alarm 2", Alarm{Number: Alarm2, Mode: AlarmOncePerSecond}, "alarm 2 mode"},
		{"match seconds on alarm 2", Alarm{Number: Alarm2, Mode: AlarmMatchSeconds}, "alarm 2 mode"},
		{"once per minute on alarm 1", Alarm{Number: Alarm1, Mode: AlarmOncePerMinute}, "alarm 1 mode"},
		{"unknown mode", Alarm{Number: Alarm1, Mode: 42}, "alarm 1 mode"},
		{"second", Alarm{Number: Alarm1, Second: 60, Mode: AlarmMatchSeconds}, "alarm second"},
		{"minute", Alarm{Number: Alarm2, Minute: 60, Mode: AlarmMatchMinutes}, "alarm minute"},
		{"hour", Alarm{Number: Alarm1, Hour: 24, Mode: AlarmMatchHours}, "alarm hour"},
		{"day of week", Alarm{Number: Alarm1, DayOrDate: 8, Mode: AlarmMatchDay}, "alarm day"},
		{"day of week zero", Alarm{Number: Alarm2, DayOrDate: 0, Mode: AlarmMatchDay}, "alarm day"},
		{"date", Alarm{Number: Alarm2, DayOrDate: 32, Mode: AlarmMatchDate}, "alarm day"},
		{"date zero", Alarm{Number: Alarm1, DayOrDate: 0, Mode: AlarmMatchDate}, "alarm day"},
	} {
		c.Run(test.about, func(c *qt.C) {
			_, err := EncodeAlarm(test.alarm)
			var re *RangeError
			c.Assert(err, qt.ErrorAs, &re)
			c.Assert(re.Field, qt.Equals, test.field)
		})
	}
}

func TestDecodeAlarmErrors(t *testing.T) {
	c := qt.New(t)
	for _, test := range []struct {
		about string
		buf   []byte
	}{
		{"empty", nil},
		{"too long", []byte{0, 0, 0, 0, 0}},
		{"two bytes", []byte{0, 0}},
		{"alarm 1 seconds ignored but minutes matched", []byte{0x80, 0x00, 0x80, 0x80}},
		{"alarm 1 minutes and days ignored", []byte{0x00, 0x80, 0x00, 0x80}},
		{"alarm 2 minutes ignored but hours matched", []byte{0x80, 0x00, 0x80}},
		{"invalid bcd", []byte{0x5A, 0x00, 0x01}},
		{"minute 60", []byte{0x60, 0x00, 0x01}},
		{"hour 25", []byte{0x00, 0x25, 0x01}},
		{"day of week 8", []byte{0x00, 0x00, 0x48}},
		{"date 32", []byte{0x00, 0x00, 0x32}},
		{"date reserved bits", []byte{0x00, 0x00, 0x00, 0x41 | 0x20}},
	} {
		c.Run(test.about, func(c *qt.C) {
			_, err := DecodeAlarm(test.buf)
			var fe *FormatError
			c.Assert(err, qt.ErrorAs, &fe)
		})
	}
}

func TestDecodeAlarmPowerOn(t *testing.T) {
	c := qt.New(t)
	// all-zero registers select date matching on date 0, which no configured alarm holds
	_, err := DecodeAlarm([]byte{0, 0, 0, 0})
	var fe *FormatError
	c.Assert(err, qt.ErrorAs, &fe)
	c.Assert(fe.Register, qt.Equals, uint8(Alarm1Time+3))

	// the date range only applies once the mode matches on it
	a, err := DecodeAlarm([]byte{0x80, 0x80, 0x80})
	c.Assert(err, qt.IsNil)
	c.Assert(a, qt.Equals, Alarm{Number: Alarm2, Mode: AlarmOncePerMinute})
}

func TestDecodeAlarm12Hour(t *testing.T) {
	c := qt.New(t)
	a, err := DecodeAlarm([]byte{0x30, 0x67, 0x80})
	c.Assert(err, qt.IsNil)
	c.Assert(a, qt.Equals, Alarm{Number: Alarm2, Minute: 30, Hour: 19, Mode: AlarmMatchHours})
}

func TestAlarmModeNames(t *testing.T) {
	c := qt.New(t)
	for m := AlarmOncePerSecond; m <= AlarmMatchDay; m++ {
		got, ok := ParseAlarmMode(m.String())
		c.Assert(ok, qt.IsTrue)
		c.Assert(got, qt.Equals, m)
	}
	_, ok := ParseAlarmMode("hourly")
	c.Assert(ok, qt.IsFalse)
	c.Assert(AlarmMode(99).String(), qt.Equals, "AlarmMode(99)")
}
