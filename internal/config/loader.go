package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/example/darkmapgen/internal/export"
	"github.com/example/darkmapgen/internal/render"
)

// Environment variables that override the config file.
const (
	EnvTheme     = "DARKMAPGEN_THEME"
	EnvOutputDir = "DARKMAPGEN_OUTPUT_DIR"
	EnvAA        = "DARKMAPGEN_AA"
	EnvMargin    = "DARKMAPGEN_MARGIN"
	EnvFormat    = "DARKMAPGEN_FORMAT"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Explicit config file, e.g. from -config
	EnvFile      string // Optional dotenv file read before the environment
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		EnvFile:      ".env",
	}
}

// Load reads the config file, if any, then applies environment overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cfg, err = Parse(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if l.EnvFile != "" {
		// A missing dotenv file is normal.
		if err := godotenv.Load(l.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: %v", err)
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.OutputDir != "" {
		dir, err := homedir.Expand(cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("output_dir: %w", err)
		}
		cfg.OutputDir = dir
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from DARKMAPGEN_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(EnvAA); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAA, err)
		}
		cfg.Export.AA = render.ClampAA(n)
	}
	if v := os.Getenv(EnvMargin); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMargin, err)
		}
		cfg.Export.Margin = max(n, 0)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFormat, err)
		}
		cfg.Export.Format = f
	}
	return nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".darkmapgenrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.rc", "darkmapgen.rc"} {
		p := filepath.Join(home, ".config", "darkmapgen", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
