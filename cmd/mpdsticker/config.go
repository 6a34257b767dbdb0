package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/pior/mpd"
)

// config is the connection settings, read from the config file then
// overridden by MPD_HOST / MPD_PORT and finally by flags.
type config struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
	Verbose  bool          `yaml:"verbose"`
}

func defaultConfig() config {
	return config{
		Host:    "localhost",
		Port:    6600,
		Timeout: 5 * time.Second,
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mpdsticker.yaml")
}

// loadConfigFile merges the YAML file at path into cfg.
// A missing file is not an error unless required.
func loadConfigFile(cfg *config, path string, required bool) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnv applies the variables understood by the mpc client.
// MPD_HOST may carry a password: "password@host".
func applyEnv(cfg *config, getenv func(string) string) error {
	if host := getenv("MPD_HOST"); host != "" {
		// '@' also starts an abstract socket name, which has no password part
		if password, h, ok := strings.Cut(host, "@"); ok && password != "" {
			cfg.Password, host = password, h
		}
		cfg.Host = host
	}

	if port := getenv("MPD_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid MPD_PORT %q: %w", port, err)
		}
		cfg.Port = p
	}
	return nil
}

func addFlags(flags *pflag.FlagSet, cfg *config) {
	flags.StringVarP(&cfg.Host, "host", "H", cfg.Host, "MPD host, or unix socket path")
	flags.IntVarP(&cfg.Port, "port", "p", cfg.Port, "MPD port")
	flags.StringVar(&cfg.Password, "password", cfg.Password, "MPD password")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout of each command")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log connection events")
}

// parseConfig resolves the configuration from the config file, the
// environment and the command line, in increasing priority.
func parseConfig(args []string, getenv func(string) string) (config, *pflag.FlagSet, error) {
	fromFlags := defaultConfig()

	flags := pflag.NewFlagSet("mpdsticker", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	configPath := flags.String("config", "", "config file (default "+defaultConfigPath()+")")
	addFlags(flags, &fromFlags)

	if err := flags.Parse(args); err != nil {
		return fromFlags, flags, err
	}

	cfg := defaultConfig()
	if err := loadConfigFile(&cfg, firstNonEmpty(*configPath, defaultConfigPath()), *configPath != ""); err != nil {
		return cfg, flags, err
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, flags, err
	}

	if flags.Changed("host") {
		cfg.Host = fromFlags.Host
	}
	if flags.Changed("port") {
		cfg.Port = fromFlags.Port
	}
	if flags.Changed("password") {
		cfg.Password = fromFlags.Password
	}
	if flags.Changed("timeout") {
		cfg.Timeout = fromFlags.Timeout
	}
	if flags.Changed("verbose") {
		cfg.Verbose = fromFlags.Verbose
	}
	return cfg, flags, nil
}

func (c config) address() string {
	return mpd.JoinHostPort(c.Host, c.Port)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
