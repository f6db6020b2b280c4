// Package config loads the clock configuration: bus name, bus address and century base. Values come from an optional
// YAML file, in which ${VAR} references are expanded from the environment, then from DS3231_* environment variables.
// Anything left unset takes the driver defaults.
package config

import (
	"os"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/ajanata/drivers/ds3231"
)

// Keys accepted in the file.
const (
	KeyBus     = "bus"
	KeyAddress = "address"
	KeyCentury = "century"
)

// Environment variables that override the file.
var envKeys = map[string]string{
	KeyBus:     "DS3231_BUS",
	KeyAddress: "DS3231_ADDRESS",
	KeyCentury: "DS3231_CENTURY",
}

type Config struct {
	Bus     string
	Address uint16
	Century int
}

// Default returns the driver defaults.
func Default() Config {
	return Config{
		Bus:     ds3231.DefaultBus,
		Address: ds3231.Address,
		Century: ds3231.DefaultCentury,
	}
}

// Driver converts c into the driver's configuration.
func (c Config) Driver(hook ds3231.ErrorHook) ds3231.Config {
	return ds3231.Config{
		Address:   c.Address,
		Bus:       c.Bus,
		Century:   c.Century,
		ErrorHook: hook,
	}
}

// Load reads path, if not empty, and applies environment overrides and defaults.
func Load(path string) (Config, error) {
	values := map[string]interface{}{}
	if path != "" {
		data, err := envsubst.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "reading config %q", path)
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return Config{}, errors.Wrapf(err, "parsing config %q", path)
		}
	}
	for key, env := range envKeys {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			values[key] = v
		}
	}
	return FromMap(values)
}

// FromMap builds a Config from key/value pairs on top of the defaults.
func FromMap(values map[string]interface{}) (Config, error) {
	return Default().Merge(values)
}

// Merge overrides fields of c from key/value pairs, coercing strings and numbers as needed. Unknown keys are an error
// so that typos do not silently fall back to defaults.
func (c Config) Merge(values map[string]interface{}) (Config, error) {
	for key, v := range values {
		switch key {
		case KeyBus:
			s, err := cast.ToStringE(v)
			if err != nil {
				return Config{}, errors.Wrapf(err, "config key %q", key)
			}
			if s != "" {
				c.Bus = s
			}
		case KeyAddress:
			a, err := cast.ToIntE(v)
			if err != nil {
				return Config{}, errors.Wrapf(err, "config key %q", key)
			}
			if a < 0x08 || a > 0x77 {
				return Config{}, errors.Errorf("config key %q: 0x%X is not a 7-bit I2C device address", key, a)
			}
			c.Address = uint16(a)
		case KeyCentury:
			y, err := cast.ToIntE(v)
			if err != nil {
				return Config{}, errors.Wrapf(err, "config key %q", key)
			}
			if y <= 0 {
				return Config{}, errors.Errorf("config key %q: century base %d must be positive", key, y)
			}
			c.Century = y
		default:
			return Config{}, errors.Errorf("unknown config key %q", key)
		}
	}
	return c, nil
}
