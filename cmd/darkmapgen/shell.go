package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

var _ flag.Value = (*commandList)(nil)

// shellCmd runs subcommands from a prompt against one loaded project.
type shellCmd struct {
	command
	execs commandList
}

func parseShellCmd(args []string, r *root) (*shellCmd, error) {
	c := &shellCmd{command: newCommand("shell", r)}
	c.fs.Var(&c.execs, "e", "execute a command and exit (may be specified multiple times)")
	if err := c.parse(c, args); err != nil {
		return nil, err
	}
	if c.fs.NArg() > 0 {
		return nil, usageErrorf(c, "unexpected argument %q", c.fs.Arg(0))
	}
	return c, nil
}

func (c *shellCmd) Run() error {
	if _, err := c.r.openProject(); err != nil {
		return err
	}
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.r.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	for {
		fmt.Fprint(c.r.stdout, "> ")
		line, err := c.r.stdin.ReadString('\n')
		if line == "" && err != nil {
			fmt.Fprintln(c.r.stdout)
			return nil
		}
		done, runErr := c.executeLine(line)
		if runErr != nil {
			fmt.Fprintln(c.r.stderr, runErr)
		}
		if done {
			return nil
		}
	}
}

// executeLine splits line like a shell would and runs it. done reports an
// exit request.
func (c *shellCmd) executeLine(line string) (done bool, err error) {
	args, err := shellwords.Parse(strings.TrimSpace(line))
	if err != nil {
		return false, fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(c.r.stdout, (&UsageError{of: c}).Error())
		return false, nil
	case "shell", "edit", "watch":
		return false, fmt.Errorf("%s is not available in the shell", args[0])
	}
	return false, c.r.dispatch(args[0], args[1:])
}
