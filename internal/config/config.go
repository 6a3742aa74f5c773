// Package config assembles the exporter settings from built-in defaults, an
// optional TOML file, GDMLEXPORT_* environment variables and command-line
// flags, in that order of increasing priority.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/chazu/gdmlexport/pkg/gdml"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "GDMLEXPORT_"

// Duration is a time.Duration read from text such as "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds the exporter settings.
type Config struct {
	Output     string   `toml:"output"`     // GDML path; empty derives it from the input
	Kernel     string   `toml:"kernel"`     // brep, sdfx or manifold, for scene scripts
	Resolution int      `toml:"resolution"` // sdfx marching-cubes cells
	Precision  int      `toml:"precision"`  // decimals; -1 is shortest round-trip
	Margin     float64  `toml:"margin"`     // world box padding in mm
	Material   string   `toml:"material"`   // for solids that name none
	Metadata   string   `toml:"metadata"`   // sidecar path
	LogLevel   string   `toml:"log_level"`
	Debounce   Duration `toml:"debounce"` // watch mode
	Timeout    Duration `toml:"timeout"`  // script evaluation
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Kernel:     "brep",
		Resolution: 100,
		Precision:  gdml.DefaultPrecision,
		Margin:     gdml.DefaultMargin,
		Material:   gdml.Aluminum,
		LogLevel:   "info",
		Debounce:   Duration(300 * time.Millisecond),
		Timeout:    Duration(5 * time.Second),
	}
}

// LoadFile overlays the settings in the TOML file at path. Keys absent from
// the file keep their current value; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays GDMLEXPORT_* variables found by lookup, which is
// normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	str("OUTPUT", &c.Output)
	str("KERNEL", &c.Kernel)
	str("MATERIAL", &c.Material)
	str("METADATA", &c.Metadata)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup(EnvPrefix + "RESOLUTION"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sRESOLUTION: %w", EnvPrefix, err)
		}
		c.Resolution = n
	}
	if v, ok := lookup(EnvPrefix + "PRECISION"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sPRECISION: %w", EnvPrefix, err)
		}
		c.Precision = n
	}
	if v, ok := lookup(EnvPrefix + "MARGIN"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sMARGIN: %w", EnvPrefix, err)
		}
		c.Margin = f
	}
	for key, dst := range map[string]*Duration{"DEBOUNCE": &c.Debounce, "TIMEOUT": &c.Timeout} {
		if v, ok := lookup(EnvPrefix + key); ok {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
			}
		}
	}
	return nil
}

// WriterOptions returns the GDML writer options for these settings.
func (c *Config) WriterOptions() []gdml.Option {
	return []gdml.Option{
		gdml.WithPrecision(c.Precision),
		gdml.WithMargin(c.Margin),
	}
}
