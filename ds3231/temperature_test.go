package ds3231

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDecodeTemperature(t *testing.T) {
	c := qt.New(t)
	for _, test := range []struct {
		buf     []byte
		celsius float64
		milli   int32
	}{
		{[]byte{0x19, 0x80}, 25.5, 25500},
		{[]byte{0xE7, 0x00}, -25, -25000},
		{[]byte{0x00, 0x40}, 0.25, 250},
		{[]byte{0x7F, 0xC0}, 127.75, 127750},
		{[]byte{0xFF, 0xC0}, -0.25, -250},
		{[]byte{0x80, 0x00}, -128, -128000},
		{[]byte{0x15, 0x3F}, 21, 21000}, // unused low bits
	} {
		temp, err := DecodeTemperature(test.buf)
		c.Assert(err, qt.IsNil)
		c.Assert(temp.Celsius(), qt.Equals, test.celsius, qt.Commentf("% X", test.buf))
		c.Assert(temp.MilliCelsius(), qt.Equals, test.milli)
	}

	_, err := DecodeTemperature([]byte{0x19})
	var fe *FormatError
	c.Assert(err, qt.ErrorAs, &fe)
}
