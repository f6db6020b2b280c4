package ds3231

import "strconv"

// AlarmNumber selects one of the two alarms. The alarms use different register layouts: alarm 1 has a seconds field
// and alarm 2 does not.
type AlarmNumber uint8

const (
	Alarm1 AlarmNumber = 1
	Alarm2 AlarmNumber = 2
)

func (n AlarmNumber) String() string {
	return "alarm " + strconv.Itoa(int(n))
}

// AlarmMode selects which fields must match the current time for the alarm to fire.
type AlarmMode uint8

const (
	AlarmOncePerSecond AlarmMode = iota // alarm 1 only
	AlarmMatchSeconds                   // alarm 1 only
	AlarmOncePerMinute                  // alarm 2 only, fires at second 00
	AlarmMatchMinutes                   // alarm 1: minutes and seconds; alarm 2: minutes
	AlarmMatchHours                     // hours, minutes (and seconds for alarm 1)
	AlarmMatchDate                      // day of month, hours, minutes (and seconds)
	AlarmMatchDay                       // day of week, hours, minutes (and seconds)
)

var alarmModeNames = [...]string{
	AlarmOncePerSecond: "once-per-second",
	AlarmMatchSeconds:  "match-seconds",
	AlarmOncePerMinute: "once-per-minute",
	AlarmMatchMinutes:  "match-minutes",
	AlarmMatchHours:    "match-hours",
	AlarmMatchDate:     "match-date",
	AlarmMatchDay:      "match-day",
}

func (m AlarmMode) String() string {
	if int(m) < len(alarmModeNames) {
		return alarmModeNames[m]
	}
	return "AlarmMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseAlarmMode is the inverse of AlarmMode.String.
func ParseAlarmMode(s string) (AlarmMode, bool) {
	for i, name := range alarmModeNames {
		if name == s {
			return AlarmMode(i), true
		}
	}
	return 0, false
}

// Alarm is the content of one alarm register group. Fields that a mode does not match on are still stored by the
// chip, so they survive a round trip. Second must be zero for alarm 2.
type Alarm struct {
	Number    AlarmNumber
	Second    int
	Minute    int
	Hour      int
	DayOrDate int
	Mode      AlarmMode
}

// alarmLayout describes one alarm register group. masks holds the AxMy bits for each supported mode, bit i
// belonging to register i of the group.
type alarmLayout struct {
	reg    uint8
	fields []string
	masks  []alarmMask
}

type alarmMask struct {
	mode AlarmMode
	bits uint8
}

var alarmLayouts = map[AlarmNumber]alarmLayout{
	Alarm1: {
		reg:    Alarm1Time,
		fields: []string{"second", "minute", "hour", "day"},
		masks: []alarmMask{
			{AlarmOncePerSecond, 0b1111},
			{AlarmMatchSeconds, 0b1110},
			{AlarmMatchMinutes, 0b1100},
			{AlarmMatchHours, 0b1000},
			{AlarmMatchDate, 0b0000},
			{AlarmMatchDay, 0b0000},
		},
	},
	Alarm2: {
		reg:    Alarm2Time,
		fields: []string{"minute", "hour", "day"},
		masks: []alarmMask{
			{AlarmOncePerMinute, 0b111},
			{AlarmMatchMinutes, 0b110},
			{AlarmMatchHours, 0b100},
			{AlarmMatchDate, 0b000},
			{AlarmMatchDay, 0b000},
		},
	},
}

func (l alarmLayout) maskFor(m AlarmMode) (uint8, bool) {
	for _, am := range l.masks {
		if am.mode == m {
			return am.bits, true
		}
	}
	return 0, false
}

func (l alarmLayout) modeFor(bits uint8, dayOfWeek bool) (AlarmMode, bool) {
	if bits == 0 {
		if dayOfWeek {
			return AlarmMatchDay, true
		}
		return AlarmMatchDate, true
	}
	for _, am := range l.masks {
		if am.bits == bits {
			return am.mode, true
		}
	}
	return 0, false
}

// dayRange is the accepted DayOrDate range for a mode. Modes that ignore the day field accept zero, which is what the
// chip holds after power-on.
func dayRange(m AlarmMode) (lo, hi int) {
	switch m {
	case AlarmMatchDay:
		return 1, 7
	case AlarmMatchDate:
		return 1, 31
	}
	return 0, 31
}

// EncodeAlarm produces the register group for a: four bytes for alarm 1 and three for alarm 2. Hours are written in
// 24-hour mode.
func EncodeAlarm(a Alarm) ([]byte, error) {
	l, ok := alarmLayouts[a.Number]
	if !ok {
		return nil, &RangeError{Field: "alarm number", Value: int(a.Number), Min: int(Alarm1), Max: int(Alarm2)}
	}
	mask, ok := l.maskFor(a.Mode)
	if !ok {
		return nil, &RangeError{Field: a.Number.String() + " mode", Value: int(a.Mode),
			Min: int(l.masks[0].mode), Max: int(AlarmMatchDay)}
	}
	if a.Number == Alarm2 && a.Second != 0 {
		return nil, &RangeError{Field: "alarm 2 second", Value: a.Second, Min: 0, Max: 0}
	}

	dlo, dhi := dayRange(a.Mode)
	values := map[string][3]int{
		"second": {a.Second, 0, 59},
		"minute": {a.Minute, 0, 59},
		"hour":   {a.Hour, 0, 23},
		"day":    {a.DayOrDate, dlo, dhi},
	}

	buf := make([]byte, len(l.fields))
	for i, name := range l.fields {
		v := values[name]
		b, err := encodeField("alarm "+name, v[0], v[1], v[2])
		if err != nil {
			return nil, err
		}
		if mask&(1<<i) != 0 {
			b |= alarmMaskB
		}
		buf[i] = b
	}
	if a.Mode == AlarmMatchDay {
		buf[len(buf)-1] |= alarmDayBit
	}
	return buf, nil
}

// DecodeAlarm is the inverse of EncodeAlarm. The buffer length selects the layout: four bytes for alarm 1 and three
// for alarm 2.
func DecodeAlarm(buf []byte) (Alarm, error) {
	var a Alarm
	switch len(buf) {
	case alarm1Len:
		a.Number = Alarm1
	case alarm2Len:
		a.Number = Alarm2
	default:
		return a, &FormatError{Register: Alarm1Time, Field: "alarm", Reason: "unexpected length " + strconv.Itoa(len(buf))}
	}
	l := alarmLayouts[a.Number]

	var mask uint8
	for i, b := range buf {
		if b&alarmMaskB != 0 {
			mask |= 1 << i
		}
	}
	last := buf[len(buf)-1]
	mode, ok := l.modeFor(mask, last&alarmDayBit != 0)
	if !ok {
		return a, &FormatError{Register: l.reg, Field: "alarm mask", Value: mask, Reason: "illegal mask combination"}
	}
	a.Mode = mode

	for i, name := range l.fields {
		reg := l.reg + uint8(i)
		b := buf[i] &^ alarmMaskB
		var err error
		switch name {
		case "second":
			a.Second, err = decodeField(reg, "alarm second", b, 0x7F, 0, 59)
		case "minute":
			a.Minute, err = decodeField(reg, "alarm minute", b, 0x7F, 0, 59)
		case "hour":
			a.Hour, err = decodeHour(reg, b)
		case "day":
			a.DayOrDate, err = decodeAlarmDay(reg, b, mode)
		}
		if err != nil {
			return a, err
		}
	}
	return a, nil
}

func decodeAlarmDay(reg uint8, b byte, mode AlarmMode) (int, error) {
	lo, hi := dayRange(mode)
	if b&alarmDayBit != 0 {
		if hi > 7 {
			hi = 7
		}
		return decodeField(reg, "alarm day", b&^alarmDayBit, 0x0F, lo, hi)
	}
	return decodeField(reg, "alarm date", b, 0x3F, lo, hi)
}
