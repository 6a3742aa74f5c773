package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig     = "config"
	FlagOutput     = "output"
	FlagKernel     = "kernel"
	FlagResolution = "resolution"
	FlagPrecision  = "precision"
	FlagMargin     = "margin"
	FlagMaterial   = "material"
	FlagMetadata   = "metadata"
	FlagLogLevel   = "log-level"
	FlagDebounce   = "debounce"
	FlagTimeout    = "timeout"
)

// RegisterFlags adds the settings flags to fs, with the built-in defaults
// shown in the help text.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "TOML settings file")
	fs.StringP(FlagOutput, "o", "", "output GDML file (default: input name with .gdml)")
	fs.String(FlagKernel, d.Kernel, "geometry kernel for scene scripts: brep, sdfx or manifold")
	fs.Int(FlagResolution, d.Resolution, "sdfx marching-cubes cells along the longest axis")
	fs.Int(FlagPrecision, d.Precision, "decimals in coordinates, -1 for shortest round-trip")
	fs.Float64(FlagMargin, d.Margin, "world volume padding in mm")
	fs.String(FlagMaterial, d.Material, "material for solids that name none")
	fs.String(FlagMetadata, "", "TOML sidecar with per-solid names and materials")
	fs.String(FlagLogLevel, d.LogLevel, "log level: panic, fatal, error, warn, info, debug, trace")
	fs.Duration(FlagDebounce, time.Duration(d.Debounce), "watch mode: quiet period before re-export")
	fs.Duration(FlagTimeout, time.Duration(d.Timeout), "scene script evaluation limit")
}

// ApplyFlags overlays the flags the user set explicitly. Flags left at
// their default do not override file or environment settings.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil {
			return
		}
		if f := fs.Lookup(name); f != nil && f.Changed {
			err = apply()
		}
	}

	set(FlagOutput, func() (e error) { c.Output, e = fs.GetString(FlagOutput); return })
	set(FlagKernel, func() (e error) { c.Kernel, e = fs.GetString(FlagKernel); return })
	set(FlagResolution, func() (e error) { c.Resolution, e = fs.GetInt(FlagResolution); return })
	set(FlagPrecision, func() (e error) { c.Precision, e = fs.GetInt(FlagPrecision); return })
	set(FlagMargin, func() (e error) { c.Margin, e = fs.GetFloat64(FlagMargin); return })
	set(FlagMaterial, func() (e error) { c.Material, e = fs.GetString(FlagMaterial); return })
	set(FlagMetadata, func() (e error) { c.Metadata, e = fs.GetString(FlagMetadata); return })
	set(FlagLogLevel, func() (e error) { c.LogLevel, e = fs.GetString(FlagLogLevel); return })
	set(FlagDebounce, func() error {
		d, e := fs.GetDuration(FlagDebounce)
		c.Debounce = Duration(d)
		return e
	})
	set(FlagTimeout, func() error {
		d, e := fs.GetDuration(FlagTimeout)
		c.Timeout = Duration(d)
		return e
	})
	return err
}

// Load builds the settings for a command: defaults, then the file named by
// the config flag, then the environment, then explicit flags. The result
// is checked before it is returned.
func Load(fs *pflag.FlagSet, lookup func(string) (string, bool)) (*Config, error) {
	c := Default()
	if path, _ := fs.GetString(FlagConfig); path != "" {
		if err := c.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := c.ApplyFlags(fs); err != nil {
		return nil, err
	}
	if err := Check(c); err != nil {
		return nil, err
	}
	return c, nil
}
