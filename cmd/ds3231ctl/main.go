// Command ds3231ctl reads and configures a DS3231 real-time clock on a Linux I2C bus.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ajanata/drivers/config"
	"github.com/ajanata/drivers/ds3231"
	"github.com/ajanata/drivers/periphbus"
)

const (
	flagConfig  = "config"
	flagBus     = "bus"
	flagAddress = "address"
	flagCentury = "century"
	flagDebug   = "debug"
)

// env holds everything the commands share. One env owns one open device for the life of the process.
type env struct {
	opener ds3231.Opener
	clock  clock.Clock
	dial   dialFunc
	stdin  io.Reader
	stdout io.Writer
	logger *zap.SugaredLogger
	dev    *ds3231.Device
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := &env{
		opener: periphbus.Open,
		clock:  clock.New(),
		dial:   dialMQTT,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	if err := newApp(e).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:  "ds3231ctl",
		Usage: "read and configure a DS3231 real-time clock",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "YAML config file with bus, address and century keys",
				EnvVars: []string{"DS3231_CONFIG"},
			},
			&cli.StringFlag{Name: flagBus, Usage: "I2C bus name (default " + ds3231.DefaultBus + ")"},
			&cli.IntFlag{Name: flagAddress, Usage: "7-bit device address (default 0x68)"},
			&cli.IntFlag{Name: flagCentury, Usage: "first year of the century selected by a clear century bit (default 2000)"},
			&cli.BoolFlag{Name: flagDebug, Usage: "development logging"},
		},
		Writer:   e.stdout,
		Before:   e.before,
		After:    e.after,
		Commands: append(e.commands(), e.shellCommand()),
	}
}

// before loads the configuration, builds the logger and opens the device.
func (e *env) before(c *cli.Context) error {
	if e.logger == nil {
		var (
			l   *zap.Logger
			err error
		)
		if c.Bool(flagDebug) {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			return errors.Wrap(err, "building logger")
		}
		e.logger = l.Sugar()
	}

	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return err
	}
	overrides := map[string]interface{}{}
	if c.IsSet(flagBus) {
		overrides[config.KeyBus] = c.String(flagBus)
	}
	if c.IsSet(flagAddress) {
		overrides[config.KeyAddress] = c.Int(flagAddress)
	}
	if c.IsSet(flagCentury) {
		overrides[config.KeyCentury] = c.Int(flagCentury)
	}
	if cfg, err = cfg.Merge(overrides); err != nil {
		return err
	}

	// help needs no hardware
	if c.Args().First() == "help" || c.Args().Len() == 0 {
		return nil
	}

	e.dev = ds3231.NewWithOpener(e.opener)
	if err := e.dev.Open(cfg.Driver(e.logError)); err != nil {
		return errors.Wrap(err, "opening clock")
	}
	e.logger.Debugw("clock open", "bus", e.dev.BusName, "address", e.dev.Address, "century", e.dev.Century.Base)
	return nil
}

func (e *env) after(*cli.Context) error {
	if e.dev != nil {
		e.dev.Close()
	}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
	return nil
}

// logError is the driver's error hook.
func (e *env) logError(op string, err error) {
	e.logger.Warnw("ds3231 operation failed", "op", op, "error", err)
}
