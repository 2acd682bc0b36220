package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/example/darkmapgen/internal/config"
)

type configCmd struct {
	command
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := &configCmd{command: newCommand("config", r)}
	if err := c.parse(c, args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Fprint(c.r.stdout, c.r.config.String())
		return nil
	case "save":
		return c.runSave()
	default:
		return usageErrorf(c, "unknown config command: %s", args[0])
	}
}

func (c *configCmd) runSave() error {
	loader := config.NewLoader(version, configPathOverride)
	path := loader.GetConfigPath()
	if path == "" {
		// No existing config found, default to XDG
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("failed to get user home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "darkmapgen", "config.rc")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(c.r.config.String()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(c.r.stderr, "Configuration saved to %s\n", path)
	return nil
}
