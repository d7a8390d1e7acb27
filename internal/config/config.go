// Package config resolves command configuration from flags, environment
// variables and defaults, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/olivierh59500/particle-life-engine/internal/life"
	"github.com/olivierh59500/particle-life-engine/internal/logging"
)

// EnvPrefix prefixes every environment variable
const EnvPrefix = "PLIFE_"

// Config holds everything the commands can be configured with
type Config struct {
	Params   life.Params
	Workers  int
	LogLevel logging.Level

	// viewer
	Width  int
	Height int
	TPS    int

	// headless runs
	Ticks       int
	ReportEvery int
}

// resolver defines how to resolve a single configuration value
type resolver struct {
	flagName    string
	defaultVal  string
	description string
	setter      func(*Config, string) error
}

func (r resolver) envVar() string {
	name := []byte(EnvPrefix + r.flagName)
	for i, c := range name {
		switch {
		case c == '-':
			name[i] = '_'
		case c >= 'a' && c <= 'z':
			name[i] = c - 'a' + 'A'
		}
	}
	return string(name)
}

// resolvers lists every option. To add one, add an entry here.
func resolvers() []resolver {
	d := life.DefaultParams()
	return []resolver{
		// population
		{"particles", itoa(d.ParticleCount), "number of particles", intField(func(c *Config) *int { return &c.Params.ParticleCount })},
		{"types", itoa(d.TypeCount), "number of particle types", intField(func(c *Config) *int { return &c.Params.TypeCount })},
		{"spread", ftoa(d.WorldSpread), "side of the spawn square, and the world size when bounded", floatField(func(c *Config) *float32 { return &c.Params.WorldSpread })},
		{"attraction", ftoa(d.AttractionRange), "matrix coefficients are drawn from [-attraction, attraction]", floatField(func(c *Config) *float32 { return &c.Params.AttractionRange })},
		{"initial-speed", ftoa(d.InitialSpeed), "maximum random initial speed", floatField(func(c *Config) *float32 { return &c.Params.InitialSpeed })},
		{"spawn", d.Spawn.String(), "spawn pattern: uniform, noise", func(c *Config, v string) error {
			s, err := life.ParseSpawnPattern(v)
			c.Params.Spawn = s
			return err
		}},
		{"seed", "0", "random seed, 0 seeds from the clock", func(c *Config, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			c.Params.Seed = n
			return err
		}},

		// dynamics
		{"r-min", ftoa(d.RMin), "overlap repulsion radius", floatField(func(c *Config) *float32 { return &c.Params.RMin })},
		{"r-max", ftoa(d.RMax), "interaction cutoff radius", floatField(func(c *Config) *float32 { return &c.Params.RMax })},
		{"drag", ftoa(d.Drag), "fraction of velocity lost every tick", floatField(func(c *Config) *float32 { return &c.Params.Drag })},
		{"force", ftoa(d.ForceScale), "attraction force scale", floatField(func(c *Config) *float32 { return &c.Params.ForceScale })},
		{"repulsion", ftoa(d.Repulsion), "overlap repulsion strength", floatField(func(c *Config) *float32 { return &c.Params.Repulsion })},
		{"falloff", d.Falloff.String(), "attraction falloff: inverse, linear", func(c *Config, v string) error {
			f, err := life.ParseFalloff(v)
			c.Params.Falloff = f
			return err
		}},
		{"dt", ftoa(d.DT), "integration step", floatField(func(c *Config) *float32 { return &c.Params.DT })},
		{"boundary", d.Boundary.String(), "world edge: none, wrap, bounce", func(c *Config, v string) error {
			b, err := life.ParseBoundary(v)
			c.Params.Boundary = b
			return err
		}},
		{"bounce-multiplier", ftoa(d.BounceMultiplier), "speed kept when bouncing", floatField(func(c *Config) *float32 { return &c.Params.BounceMultiplier })},
		{"bounce-pushback", ftoa(d.BouncePushback), "speed added when bouncing", floatField(func(c *Config) *float32 { return &c.Params.BouncePushback })},
		{"evolve-every", itoa(d.EvolveEvery), "mutate the matrix every N ticks, 0 disables", intField(func(c *Config) *int { return &c.Params.EvolveEvery })},
		{"evolve-sigma", ftoa(d.EvolveSigma), "standard deviation of matrix mutations", floatField(func(c *Config) *float32 { return &c.Params.EvolveSigma })},

		// runtime
		{"workers", "0", "parallel workers, 0 uses all CPUs, 1 runs sequentially", intField(func(c *Config) *int { return &c.Workers })},
		{"log-level", "info", "log level: debug, info, warn, error", func(c *Config, v string) error {
			l, err := logging.ParseLevel(v)
			c.LogLevel = l
			return err
		}},
		{"width", "1280", "window width", intField(func(c *Config) *int { return &c.Width })},
		{"height", "800", "window height", intField(func(c *Config) *int { return &c.Height })},
		{"tps", "60", "simulation ticks per second", intField(func(c *Config) *int { return &c.TPS })},
		{"ticks", "1000", "ticks to run headless", intField(func(c *Config) *int { return &c.Ticks })},
		{"report-every", "100", "ticks between headless progress reports", intField(func(c *Config) *int { return &c.ReportEvery })},
	}
}

// Load parses args (without the program name) into a Config. Each option is
// taken from its flag if set, else from its PLIFE_* environment variable,
// else from its default. Every bad value is reported, then the resulting
// parameters and window options are validated together.
func Load(name string, args []string, getenv func(string) string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	rs := resolvers()
	flagVars := make(map[string]*string, len(rs))
	for _, r := range rs {
		flagVars[r.flagName] = fs.String(r.flagName, "", fmt.Sprintf("%s (env %s, default %s)", r.description, r.envVar(), r.defaultVal))
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var cfg Config
	var errs []error
	for _, r := range rs {
		value, source := r.defaultVal, "default"
		if v := *flagVars[r.flagName]; v != "" {
			value, source = v, "flag -"+r.flagName
		} else if v := getenv(r.envVar()); v != "" {
			value, source = v, r.envVar()
		}
		if err := r.setter(&cfg, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid value %q: %w", source, value, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	if err := cfg.Params.Validate(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, cfg.validateRuntime()...)
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validateRuntime checks the options that never reach the engine
func (c Config) validateRuntime() []error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	positive("width", c.Width)
	positive("height", c.Height)
	positive("tps", c.TPS)
	if c.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must not be negative, got %d", c.Ticks))
	}
	if c.ReportEvery < 0 {
		errs = append(errs, fmt.Errorf("report-every must not be negative, got %d", c.ReportEvery))
	}
	return errs
}

func intField(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatField(field func(*Config) *float32) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return err
		}
		*field(c) = float32(f)
		return nil
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
