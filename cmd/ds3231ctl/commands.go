package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/ajanata/drivers/ds3231"
)

func (e *env) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "get",
			Usage:  "print the current time, or unset if the clock holds no valid time",
			Action: e.get,
		},
		{
			Name:      "set",
			Usage:     "set the time and clear the oscillator stop flag",
			ArgsUsage: "[RFC3339 time|now]",
			Action:    e.set,
		},
		{
			Name:  "status",
			Usage: "show the status register, optionally acknowledging flags",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "clear-alarm", Usage: "clear the fired flag of alarm 1 or 2"},
				&cli.BoolFlag{Name: "clear-osf", Usage: "clear the oscillator stop flag without setting the time"},
				&cli.BoolFlag{Name: "32khz", Usage: "enable or disable the 32kHz output"},
			},
			Action: e.status,
		},
		{
			Name:  "control",
			Usage: "show the control register, changing any flag given",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "oscillator", Usage: "run the oscillator on battery"},
				&cli.BoolFlag{Name: "bbsqw", Usage: "run the square wave on battery"},
				&cli.BoolFlag{Name: "conv", Usage: "start a temperature conversion"},
				&cli.IntFlag{Name: "rate", Usage: "square wave rate in Hz: 1, 1024, 4096 or 8192"},
				&cli.BoolFlag{Name: "intcn", Usage: "route alarms to INT/SQW instead of the square wave"},
				&cli.BoolFlag{Name: "a1ie", Usage: "alarm 1 interrupt enable"},
				&cli.BoolFlag{Name: "a2ie", Usage: "alarm 2 interrupt enable"},
			},
			Action: e.control,
		},
		{
			Name:  "alarm",
			Usage: "read or write an alarm",
			Subcommands: []*cli.Command{
				{
					Name:      "get",
					ArgsUsage: "1|2",
					Action:    e.alarmGet,
				},
				{
					Name:      "set",
					ArgsUsage: "1|2",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "mode", Value: ds3231.AlarmMatchHours.String(), Usage: alarmModeUsage()},
						&cli.IntFlag{Name: "second"},
						&cli.IntFlag{Name: "minute"},
						&cli.IntFlag{Name: "hour"},
						&cli.IntFlag{Name: "day", Usage: "day of month, or day of week 1-7 for match-day"},
					},
					Action: e.alarmSet,
				},
			},
		},
		{
			Name:   "temp",
			Usage:  "print the last temperature conversion",
			Action: e.temp,
		},
		e.publishCommand(),
	}
}

func (e *env) get(c *cli.Context) error {
	t, ok := e.dev.Now()
	if !ok {
		fmt.Fprintln(c.App.Writer, "unset")
		return nil
	}
	fmt.Fprintln(c.App.Writer, t.Format(time.RFC3339))
	return nil
}

func (e *env) set(c *cli.Context) error {
	t := e.clock.Now()
	if arg := c.Args().First(); arg != "" && arg != "now" {
		var err error
		if t, err = time.Parse(time.RFC3339, arg); err != nil {
			return errors.Wrapf(err, "parsing %q", arg)
		}
	}
	if err := e.dev.Set(t); err != nil {
		return errors.Wrap(err, "setting time")
	}
	fmt.Fprintln(c.App.Writer, t.UTC().Format(time.RFC3339))
	return nil
}

func (e *env) status(c *cli.Context) error {
	if c.IsSet("clear-alarm") {
		if err := e.dev.ClearAlarmFlag(ds3231.AlarmNumber(c.Int("clear-alarm"))); err != nil {
			return errors.Wrap(err, "clearing alarm flag")
		}
	}
	s, err := e.dev.Status()
	if err != nil {
		return errors.Wrap(err, "reading status")
	}
	if c.IsSet("clear-osf") || c.IsSet("32khz") {
		if c.Bool("clear-osf") {
			s.OscillatorStopped = false
		}
		if c.IsSet("32khz") {
			s.Enable32kHz = c.Bool("32khz")
		}
		// fired flags are only cleared on request
		s.Alarm1Fired, s.Alarm2Fired = true, true
		if err := e.dev.SetStatus(s); err != nil {
			return errors.Wrap(err, "writing status")
		}
		if s, err = e.dev.Status(); err != nil {
			return errors.Wrap(err, "reading status")
		}
	}
	printFlags(c.App.Writer, []table.Row{
		{"OSF", s.OscillatorStopped},
		{"EN32kHz", s.Enable32kHz},
		{"BSY", s.Busy},
		{"A2F", s.Alarm2Fired},
		{"A1F", s.Alarm1Fired},
	})
	return nil
}

func rateFromHz(hz int) (ds3231.RateSelect, error) {
	for r := ds3231.Rate1Hz; r <= ds3231.Rate8192Hz; r++ {
		if r.Hz() == hz {
			return r, nil
		}
	}
	return 0, errors.Errorf("unsupported square wave rate %dHz", hz)
}

func (e *env) control(c *cli.Context) error {
	ctl, err := e.dev.Control()
	if err != nil {
		return errors.Wrap(err, "reading control")
	}

	changed := false
	for name, field := range map[string]*bool{
		"oscillator": &ctl.OscillatorEnabled,
		"bbsqw":      &ctl.BatterySquareWave,
		"conv":       &ctl.ConvertTemperature,
		"intcn":      &ctl.InterruptControl,
		"a1ie":       &ctl.Alarm1InterruptEnable,
		"a2ie":       &ctl.Alarm2InterruptEnable,
	} {
		if c.IsSet(name) {
			*field = c.Bool(name)
			changed = true
		}
	}
	if c.IsSet("rate") {
		if ctl.Rate, err = rateFromHz(c.Int("rate")); err != nil {
			return err
		}
		changed = true
	}
	if changed {
		if err := e.dev.SetControl(ctl); err != nil {
			return errors.Wrap(err, "writing control")
		}
	}

	printFlags(c.App.Writer, []table.Row{
		{"EOSC", !ctl.OscillatorEnabled},
		{"BBSQW", ctl.BatterySquareWave},
		{"CONV", ctl.ConvertTemperature},
		{"RS", ctl.Rate},
		{"INTCN", ctl.InterruptControl},
		{"A2IE", ctl.Alarm2InterruptEnable},
		{"A1IE", ctl.Alarm1InterruptEnable},
	})
	return nil
}

func alarmNumber(c *cli.Context) (ds3231.AlarmNumber, error) {
	n, err := strconv.Atoi(c.Args().First())
	if err != nil || (n != 1 && n != 2) {
		return 0, errors.Errorf("alarm must be 1 or 2, got %q", c.Args().First())
	}
	return ds3231.AlarmNumber(n), nil
}

func alarmModeUsage() string {
	s := "one of"
	for m := ds3231.AlarmOncePerSecond; m <= ds3231.AlarmMatchDay; m++ {
		s += " " + m.String()
	}
	return s
}

func (e *env) alarmGet(c *cli.Context) error {
	n, err := alarmNumber(c)
	if err != nil {
		return err
	}
	a, err := e.dev.Alarm(n)
	if err != nil {
		return errors.Wrapf(err, "reading %s", n)
	}
	printAlarm(c.App.Writer, a)
	return nil
}

func (e *env) alarmSet(c *cli.Context) error {
	n, err := alarmNumber(c)
	if err != nil {
		return err
	}
	mode, ok := ds3231.ParseAlarmMode(c.String("mode"))
	if !ok {
		return errors.Errorf("unknown alarm mode %q", c.String("mode"))
	}
	a := ds3231.Alarm{
		Number:    n,
		Second:    c.Int("second"),
		Minute:    c.Int("minute"),
		Hour:      c.Int("hour"),
		DayOrDate: c.Int("day"),
		Mode:      mode,
	}
	if err := e.dev.SetAlarm(a); err != nil {
		return errors.Wrapf(err, "writing %s", n)
	}
	printAlarm(c.App.Writer, a)
	return nil
}

func (e *env) temp(c *cli.Context) error {
	t, err := e.dev.Temperature()
	if err != nil {
		return errors.Wrap(err, "reading temperature")
	}
	fmt.Fprintf(c.App.Writer, "%.2f°C\n", t.Celsius())
	return nil
}

func printFlags(w io.Writer, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Bit", "Value"})
	t.AppendRows(rows)
	t.Render()
}

func printAlarm(w io.Writer, a ds3231.Alarm) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(a.Number.String())
	t.AppendHeader(table.Row{"Mode", "Second", "Minute", "Hour", "Day/Date"})
	t.AppendRow(table.Row{a.Mode, a.Second, a.Minute, a.Hour, a.DayOrDate})
	t.Render()
}
