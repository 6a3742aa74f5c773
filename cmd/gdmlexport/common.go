package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/chazu/gdmlexport/internal/config"
	"github.com/chazu/gdmlexport/internal/logging"
	"github.com/chazu/gdmlexport/pkg/importer"
	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/metadata"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// setup resolves the settings and logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cmd.Flags(), os.LookupEnv)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// loadSolids reads input and applies the metadata sidecar. An explicit
// sidecar must exist; the conventional one next to the input is optional.
func loadSolids(input string, cfg *config.Config, log logrus.FieldLogger) ([]kernel.NamedSolid, error) {
	k, err := importer.NewKernel(cfg.Kernel, cfg.Resolution)
	if err != nil {
		return nil, err
	}

	solids, err := importer.Load(input, importer.Options{
		Kernel:   k,
		Material: cfg.Material,
		Timeout:  time.Duration(cfg.Timeout),
		Log:      logging.Named(log, "importer"),
	})
	if err != nil {
		return nil, err
	}

	sidecar := cfg.Metadata
	if sidecar == "" {
		candidate := metadata.SidecarPath(input)
		if _, err := os.Stat(candidate); err == nil {
			sidecar = candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if sidecar == "" {
		return solids, nil
	}

	meta, err := metadata.Load(sidecar)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"path": sidecar, "entries": len(meta.Solids)}).Debug("applying metadata")
	return meta.Apply(solids)
}

// outputPath returns the configured output or the input path with its
// extension replaced by .gdml.
func outputPath(input string, cfg *config.Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	for _, ext := range importer.Formats() {
		if strings.HasSuffix(strings.ToLower(input), ext) {
			return input[:len(input)-len(ext)] + ".gdml"
		}
	}
	return input + ".gdml"
}

func checkInput(input string) error {
	if !importer.Supported(input) {
		return fmt.Errorf("%w: %s (supported: %s)", importer.ErrUnsupportedFormat, input, strings.Join(importer.Formats(), ", "))
	}
	return nil
}
