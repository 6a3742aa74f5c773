package main

import (
	"fmt"

	"github.com/chazu/gdmlexport/internal/config"
	"github.com/chazu/gdmlexport/internal/logging"
	"github.com/chazu/gdmlexport/pkg/export"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [input]",
	Short: "Write the solids of an input file as a GDML document",
	Long: `Load every solid of the input, tessellate it and write one GDML document
containing a tessellated solid, a logical volume and a placement per solid.
A partially written output file is removed when the export fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	r, err := exportFile(args[0], cfg, log)
	if err != nil {
		return err
	}
	_, err = r.WriteTo(cmd.OutOrStdout())
	return err
}

// exportFile loads input and writes the GDML document named by the
// settings.
func exportFile(input string, cfg *config.Config, log *logrus.Logger) (export.Report, error) {
	if err := checkInput(input); err != nil {
		return export.Report{}, err
	}
	solids, err := loadSolids(input, cfg, log)
	if err != nil {
		return export.Report{}, err
	}

	out := outputPath(input, cfg)
	r, err := export.ToFile(out, solids, logging.Named(log, "gdml"), cfg.WriterOptions()...)
	if err != nil {
		return r, fmt.Errorf("export %s: %w", out, err)
	}
	return r, nil
}
