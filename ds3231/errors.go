package ds3231

import (
	"errors"
	"strconv"
)

var (
	ErrClosed      = errors.New("ds3231: device is closed")
	ErrAlreadyOpen = errors.New("ds3231: device is already open")
)

// RangeError reports a caller supplied value that cannot be encoded into a register.
type RangeError struct {
	Field    string
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return "ds3231: " + e.Field + " " + strconv.Itoa(e.Value) + " out of range [" +
		strconv.Itoa(e.Min) + ", " + strconv.Itoa(e.Max) + "]"
}

// FormatError reports register contents that do not decode. This usually means the chip was never configured or its
// contents are corrupt.
type FormatError struct {
	Register uint8
	Field    string
	Value    byte
	Reason   string
}

func (e *FormatError) Error() string {
	return "ds3231: register 0x" + hex8(e.Register) + " " + e.Field + " (0x" + hex8(e.Value) + "): " + e.Reason
}

// TransportError wraps a failed bus transaction. The underlying error is passed through untouched.
type TransportError struct {
	Op       string // "read" or "write"
	Register uint8
	Err      error
}

func (e *TransportError) Error() string {
	return "ds3231: " + e.Op + " register 0x" + hex8(e.Register) + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// OpenError is returned when the named bus cannot be acquired.
type OpenError struct {
	Bus string
	Err error
}

func (e *OpenError) Error() string {
	return "ds3231: open bus " + strconv.Quote(e.Bus) + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error { return e.Err }

func hex8(b uint8) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0x0F]})
}
