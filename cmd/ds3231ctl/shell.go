package main

import (
	"bufio"
	"fmt"

	"github.com/google/shlex"
	"github.com/urfave/cli/v2"
)

const prompt = "ds3231> "

func (e *env) shellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "run commands interactively against the open clock",
		Action: e.shell,
	}
}

// shell reads one command per line and runs it against the device opened by before. A failing command is reported
// and the shell carries on.
func (e *env) shell(c *cli.Context) error {
	out := c.App.Writer
	scanner := bufio.NewScanner(e.stdin)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return nil
		}

		inner := &cli.App{
			Name:           c.App.Name,
			Writer:         out,
			ErrWriter:      out,
			Commands:       e.commands(),
			ExitErrHandler: func(*cli.Context, error) {},
		}
		if args[0] != "help" && inner.Command(args[0]) == nil {
			fmt.Fprintf(out, "unknown command %q\n", args[0])
			continue
		}
		if err := inner.RunContext(c.Context, append([]string{c.App.Name}, args...)); err != nil {
			fmt.Fprintln(out, "error:", err)
			e.logger.Debugw("shell command failed", "args", args, "error", err)
		}
		if c.Context.Err() != nil {
			return nil
		}
	}
}
