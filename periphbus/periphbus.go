// Package periphbus opens Linux I2C buses by name through periph.io, for use as a ds3231.Opener on hosts such as a
// Raspberry Pi. Bus names are accepted as "i2c-1", "/dev/i2c-1", "1" or any name registered with i2creg, like "I2C1".
package periphbus

import (
	"strings"
	"sync"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/ajanata/drivers/ds3231"
)

var (
	initOnce sync.Once
	initErr  error
)

// hostInit registers the host drivers once per process.
func hostInit() error {
	initOnce.Do(func() {
		_, initErr = host.Init()
	})
	return initErr
}

// Open acquires the named bus. The returned bus satisfies tinygo.org/x/drivers.I2C.
func Open(name string) (ds3231.BusCloser, error) {
	if err := hostInit(); err != nil {
		return nil, err
	}
	return i2creg.Open(Normalize(name))
}

// Normalize maps Linux device names onto the bus number i2creg knows them by. Other names pass through unchanged.
func Normalize(name string) string {
	n := strings.TrimPrefix(name, "/dev/")
	if num, ok := strings.CutPrefix(n, "i2c-"); ok && num != "" && isDigits(num) {
		return num
	}
	return name
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var _ ds3231.Opener = Open
