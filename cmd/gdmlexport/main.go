package main

import (
	"fmt"
	"os"

	"github.com/chazu/gdmlexport/internal/config"
	"github.com/chazu/gdmlexport/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gdmlexport",
	Short: "Convert tessellated solids into GDML geometry",
	Long: `gdmlexport turns solid models into GDML documents for particle-transport
simulations. Each solid becomes a tessellated solid with its own logical and
physical volume inside an automatically sized world box.

Inputs may be STL meshes, 3MF packages or scene scripts (.lgn, .zy).`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
