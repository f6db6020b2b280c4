package ds3231

import "time"

// CalendarTime is the wall-clock value held in the time registers. The chip has no notion of calendar validity, so
// only the digit ranges of each field are checked. Weekday is 1-7 (Sunday is 1 when converted from a time.Time), or 0
// when absent.
type CalendarTime struct {
	Year    int
	Month   int
	Day     int
	Weekday int
	Hour    int
	Minute  int
	Second  int
}

// FromTime converts t to a CalendarTime in UTC.
func FromTime(t time.Time) CalendarTime {
	t = t.UTC()
	return CalendarTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: int(t.Weekday()) + 1,
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

// Time returns ct as a UTC time.Time. The weekday is not consulted.
func (ct CalendarTime) Time() time.Time {
	return time.Date(ct.Year, time.Month(ct.Month), ct.Day, ct.Hour, ct.Minute, ct.Second, 0, time.UTC)
}

// Century selects the two 100-year windows that the single century bit can address: bit 0 is [Base, Base+99] and
// bit 1 is [Base+100, Base+199].
type Century struct {
	Base int
}

// Second returns the first year of the window selected by a set century bit.
func (c Century) Second() int {
	return c.Base + 100
}

func (c Century) split(year int) (yy int, bit byte, err error) {
	switch {
	case year >= c.Base && year <= c.Base+99:
		return year - c.Base, 0, nil
	case year >= c.Second() && year <= c.Second()+99:
		return year - c.Second(), centuryBit, nil
	}
	return 0, 0, &RangeError{Field: "year", Value: year, Min: c.Base, Max: c.Second() + 99}
}

// EncodeTime produces the seven time registers (seconds through year) for ct. Hours are always written in 24-hour
// mode and a zero Weekday is written as-is.
func EncodeTime(ct CalendarTime, c Century) ([timeLen]byte, error) {
	var buf [timeLen]byte
	yy, cb, err := c.split(ct.Year)
	if err != nil {
		return buf, err
	}

	fields := [timeLen]struct {
		name   string
		v      int
		lo, hi int
	}{
		{"second", ct.Second, 0, 59},
		{"minute", ct.Minute, 0, 59},
		{"hour", ct.Hour, 0, 23},
		{"weekday", ct.Weekday, 0, 7},
		{"day", ct.Day, 1, 31},
		{"month", ct.Month, 1, 12},
		{"year", yy, 0, 99},
	}
	for i, f := range fields {
		buf[i], err = encodeField(f.name, f.v, f.lo, f.hi)
		if err != nil {
			return buf, err
		}
	}
	buf[5] |= cb
	return buf, nil
}

// DecodeTime is the inverse of EncodeTime. The century bit picks c.Base or c.Second() as the base for the two digit
// year. Hours stored in 12-hour mode are converted to 24-hour.
func DecodeTime(buf []byte, c Century) (CalendarTime, error) {
	var ct CalendarTime
	if len(buf) < timeLen {
		return ct, &FormatError{Register: Time, Field: "time", Reason: "short read"}
	}

	var err error
	if ct.Second, err = decodeField(Time, "second", buf[0], 0x7F, 0, 59); err != nil {
		return ct, err
	}
	if ct.Minute, err = decodeField(Time+1, "minute", buf[1], 0x7F, 0, 59); err != nil {
		return ct, err
	}
	if ct.Hour, err = decodeHour(Time+2, buf[2]); err != nil {
		return ct, err
	}
	if ct.Weekday, err = decodeField(Time+3, "weekday", buf[3], 0x07, 0, 7); err != nil {
		return ct, err
	}
	if ct.Day, err = decodeField(Time+4, "day", buf[4], 0x3F, 1, 31); err != nil {
		return ct, err
	}
	if ct.Month, err = decodeField(Time+5, "month", buf[5]&^centuryBit, 0x1F, 1, 12); err != nil {
		return ct, err
	}
	yy, err := decodeField(Time+6, "year", buf[6], 0xFF, 0, 99)
	if err != nil {
		return ct, err
	}

	ct.Year = c.Base + yy
	if buf[5]&centuryBit != 0 {
		ct.Year = c.Second() + yy
	}
	return ct, nil
}

// decodeHour handles both hour register layouts; field names the register in errors.
func decodeHour(reg uint8, b byte) (int, error) {
	if b&hour12Bit == 0 {
		return decodeField(reg, "hour", b, 0x3F, 0, 23)
	}
	h, err := decodeField(reg, "hour", b&^(hour12Bit|hourPMBit), 0x1F, 1, 12)
	if err != nil {
		return 0, err
	}
	h %= 12
	if b&hourPMBit != 0 {
		h += 12
	}
	return h, nil
}
