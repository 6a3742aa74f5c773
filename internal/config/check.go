package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/gdmlexport/internal/logging"
	"github.com/chazu/gdmlexport/pkg/gdml"
	"github.com/chazu/gdmlexport/pkg/importer"
)

type checkFunc func(conf *Config) error

// Check validates the settings and returns the first problem found.
func Check(conf *Config) error {
	checkFuncs := []checkFunc{
		checkKernel,
		checkResolution,
		checkPrecision,
		checkMargin,
		checkMaterial,
		checkLogLevel,
		checkDurations,
	}

	for _, checkFunc := range checkFuncs {
		if err := checkFunc(conf); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	return nil
}

func checkKernel(conf *Config) error {
	for _, k := range importer.Kernels {
		if strings.EqualFold(conf.Kernel, k) {
			return nil
		}
	}
	return fmt.Errorf("invalid kernel %q, want one of %s", conf.Kernel, strings.Join(importer.Kernels, ", "))
}

func checkResolution(conf *Config) error {
	if conf.Resolution <= 0 {
		return fmt.Errorf("resolution must be positive, got %d", conf.Resolution)
	}
	return nil
}

func checkPrecision(conf *Config) error {
	if conf.Precision < -1 {
		return fmt.Errorf("precision must be -1 or more, got %d", conf.Precision)
	}
	return nil
}

func checkMargin(conf *Config) error {
	if conf.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %g", conf.Margin)
	}
	return nil
}

func checkMaterial(conf *Config) error {
	if !gdml.KnownMaterial(conf.Material) {
		var names []string
		for _, m := range gdml.Materials() {
			names = append(names, m.Name)
		}
		return fmt.Errorf("unknown material %q, one of: %s", conf.Material, strings.Join(names, ", "))
	}
	return nil
}

func checkLogLevel(conf *Config) error {
	if !logging.ValidLevel(conf.LogLevel) {
		return fmt.Errorf("invalid log level %q, one of: %s", conf.LogLevel, strings.Join(logging.Levels, ", "))
	}
	return nil
}

func checkDurations(conf *Config) error {
	if conf.Debounce < 0 {
		return errors.New("debounce must not be negative")
	}
	if conf.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}
