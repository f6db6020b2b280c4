package periphbus

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNormalize(t *testing.T) {
	c := qt.New(t)
	for name, want := range map[string]string{
		"i2c-1":       "1",
		"/dev/i2c-1":  "1",
		"/dev/i2c-22": "22",
		"1":           "1",
		"I2C1":        "I2C1",
		"":            "",
		"i2c-":        "i2c-",
		"i2c-x":       "i2c-x",
		"/dev/spi-0":  "/dev/spi-0",
	} {
		c.Assert(Normalize(name), qt.Equals, want, qt.Commentf("%q", name))
	}
}
