// Package ds3231 implements a driver for the DS3231 Real-Time Clock (RTC): reading and setting the time with a
// configurable two-century window, plus access to the status, control, alarm and temperature registers. Alarm
// interrupts are left to the caller, as are the aging offset and anything temperature compensation related.
//
// A Device is not safe for concurrent use. SetTime is a read-modify-write over two register groups and another
// transaction on the same bus in between can observe a half-set clock, so callers sharing a Device must serialize
// access themselves.
//
// Datasheet: https://www.analog.com/media/en/technical-documentation/data-sheets/DS3231.pdf
package ds3231

import (
	"errors"
	"io"
	"time"

	"tinygo.org/x/drivers"
)

// BusCloser is a bus the Device acquires by name and releases on Close.
type BusCloser interface {
	drivers.I2C
	io.Closer
}

// Opener acquires the named bus.
type Opener func(name string) (BusCloser, error)

// ErrorHook is called with the operation name and the error before any failed operation returns, including ReadTime
// which otherwise only reports the clock as unset.
type ErrorHook func(op string, err error)

type Config struct {
	Address uint16
	// Bus is the name handed to the Opener. Ignored for devices created with New.
	Bus string
	// Century is the first year of the window selected by a clear century bit. The other window starts 100 years
	// later.
	Century   int
	ErrorHook ErrorHook
}

type Device struct {
	bus     drivers.I2C
	closer  io.Closer
	opener  Opener
	hook    ErrorHook
	Address uint16
	BusName string
	Century Century
}

// New creates a Device on an already configured bus, for example a machine.I2C. The device is open immediately and
// Close does not release the bus.
//
// This function only creates the Device object, it does not touch the device.
func New(bus drivers.I2C) *Device {
	d := &Device{bus: bus}
	d.Configure(Config{})
	return d
}

// NewWithOpener creates a closed Device that acquires its bus through open when Open is called.
func NewWithOpener(open Opener) *Device {
	d := &Device{opener: open}
	d.Configure(Config{})
	return d
}

// Configure applies c, filling in defaults for zero fields. It does not touch the bus.
func (d *Device) Configure(c Config) {
	if c.Address == 0 {
		c.Address = Address
	}
	if c.Bus == "" {
		c.Bus = DefaultBus
	}
	if c.Century == 0 {
		c.Century = DefaultCentury
	}

	d.Address = c.Address
	d.BusName = c.Bus
	d.Century = Century{Base: c.Century}
	d.hook = c.ErrorHook
}

// Open applies c and acquires the bus. On failure the device stays closed.
func (d *Device) Open(c Config) error {
	if d.bus != nil {
		return d.fail("open", ErrAlreadyOpen)
	}
	d.Configure(c)
	if d.opener == nil {
		return d.fail("open", &OpenError{Bus: d.BusName, Err: errors.New("no bus opener")})
	}
	b, err := d.opener(d.BusName)
	if err != nil {
		return d.fail("open", &OpenError{Bus: d.BusName, Err: err})
	}
	d.bus = b
	d.closer = b
	return nil
}

// IsOpen reports whether the device has a bus.
func (d *Device) IsOpen() bool {
	return d.bus != nil
}

// Close releases the bus if the device owns it. The device is always closed afterwards; a release error is reported
// for information only.
func (d *Device) Close() error {
	c := d.closer
	d.bus = nil
	d.closer = nil
	if c == nil {
		return nil
	}
	if err := c.Close(); err != nil {
		return d.fail("close", err)
	}
	return nil
}

// ReadTime returns the current time. Any bus or decode failure is reported as ok == false: a clock that cannot be
// read is treated the same as one that was never set.
func (d *Device) ReadTime() (ct CalendarTime, ok bool) {
	var buf [timeLen]byte
	if err := d.readReg(Time, buf[:]); err != nil {
		d.fail("read time", err)
		return CalendarTime{}, false
	}
	ct, err := DecodeTime(buf[:], d.Century)
	if err != nil {
		d.fail("read time", err)
		return CalendarTime{}, false
	}
	return ct, true
}

// Now is ReadTime as a UTC time.Time.
func (d *Device) Now() (time.Time, bool) {
	ct, ok := d.ReadTime()
	if !ok {
		return time.Time{}, false
	}
	return ct.Time(), true
}

// SetTime writes ct to the time registers and then clears the oscillator stop flag, marking the time as valid. The
// status register is read before anything is written so a failing bus leaves the clock untouched. If writing the
// status register fails, the new time stays written but the flag remains set.
func (d *Device) SetTime(ct CalendarTime) error {
	var status [1]byte
	if err := d.readReg(Status, status[:]); err != nil {
		return d.fail("set time", err)
	}

	buf, err := EncodeTime(ct, d.Century)
	if err != nil {
		return d.fail("set time", err)
	}
	if err := d.writeReg(Time, buf[:]); err != nil {
		return d.fail("set time", err)
	}

	status[0] &^= 1 << statusOSF
	if err := d.writeReg(Status, status[:]); err != nil {
		return d.fail("set time", err)
	}
	return nil
}

// Set is SetTime for a time.Time, converted to UTC.
func (d *Device) Set(t time.Time) error {
	return d.SetTime(FromTime(t))
}

// LostPower reports whether the oscillator stop flag is set, meaning the time is not reliable.
func (d *Device) LostPower() (bool, error) {
	s, err := d.Status()
	if err != nil {
		return false, err
	}
	return s.OscillatorStopped, nil
}

func (d *Device) Status() (StatusFlags, error) {
	var buf [1]byte
	if err := d.readReg(Status, buf[:]); err != nil {
		return StatusFlags{}, d.fail("read status", err)
	}
	return DecodeStatus(buf[0]), nil
}

func (d *Device) SetStatus(s StatusFlags) error {
	if err := d.writeReg(Status, []byte{s.Encode()}); err != nil {
		return d.fail("write status", err)
	}
	return nil
}

// ClearAlarmFlag acknowledges a fired alarm by clearing its flag, leaving the rest of the status register as read.
func (d *Device) ClearAlarmFlag(n AlarmNumber) error {
	var mask byte
	switch n {
	case Alarm1:
		mask = 1 << statusA1F
	case Alarm2:
		mask = 1 << statusA2F
	default:
		return d.fail("clear alarm flag", &RangeError{Field: "alarm number", Value: int(n), Min: 1, Max: 2})
	}

	var buf [1]byte
	if err := d.readReg(Status, buf[:]); err != nil {
		return d.fail("clear alarm flag", err)
	}
	buf[0] &^= mask
	if err := d.writeReg(Status, buf[:]); err != nil {
		return d.fail("clear alarm flag", err)
	}
	return nil
}

func (d *Device) Control() (ControlFlags, error) {
	var buf [1]byte
	if err := d.readReg(Control, buf[:]); err != nil {
		return ControlFlags{}, d.fail("read control", err)
	}
	return DecodeControl(buf[0]), nil
}

func (d *Device) SetControl(c ControlFlags) error {
	if err := d.writeReg(Control, []byte{c.Encode()}); err != nil {
		return d.fail("write control", err)
	}
	return nil
}

// Alarm reads the registers of alarm n.
func (d *Device) Alarm(n AlarmNumber) (Alarm, error) {
	l, ok := alarmLayouts[n]
	if !ok {
		return Alarm{}, d.fail("read alarm", &RangeError{Field: "alarm number", Value: int(n), Min: 1, Max: 2})
	}
	buf := make([]byte, len(l.fields))
	if err := d.readReg(l.reg, buf); err != nil {
		return Alarm{}, d.fail("read alarm", err)
	}
	a, err := DecodeAlarm(buf)
	if err != nil {
		return Alarm{}, d.fail("read alarm", err)
	}
	return a, nil
}

// SetAlarm writes the registers of alarm a.Number. It does not touch the interrupt enables in the control register.
func (d *Device) SetAlarm(a Alarm) error {
	buf, err := EncodeAlarm(a)
	if err != nil {
		return d.fail("write alarm", err)
	}
	if err := d.writeReg(alarmLayouts[a.Number].reg, buf); err != nil {
		return d.fail("write alarm", err)
	}
	return nil
}

// Temperature returns the last temperature conversion. The chip converts every 64 seconds on its own; set
// ConvertTemperature in the control register to force one.
func (d *Device) Temperature() (Temperature, error) {
	var buf [tempLen]byte
	if err := d.readReg(Temp, buf[:]); err != nil {
		return 0, d.fail("read temperature", err)
	}
	return DecodeTemperature(buf[:])
}

func (d *Device) fail(op string, err error) error {
	if d.hook != nil {
		d.hook(op, err)
	}
	return err
}

func (d *Device) readReg(reg uint8, buf []byte) error {
	if d.bus == nil {
		return ErrClosed
	}
	w := [1]byte{reg}
	if err := d.bus.Tx(d.Address, w[:], buf); err != nil {
		return &TransportError{Op: "read", Register: reg, Err: err}
	}
	return nil
}

func (d *Device) writeReg(reg uint8, data []byte) error {
	if d.bus == nil {
		return ErrClosed
	}
	var w [1 + timeLen]byte
	w[0] = reg
	n := copy(w[1:], data)
	if err := d.bus.Tx(d.Address, w[:1+n], nil); err != nil {
		return &TransportError{Op: "write", Register: reg, Err: err}
	}
	return nil
}
