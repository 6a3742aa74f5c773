package main

import (
	"fmt"

	"github.com/chazu/gdmlexport/internal/logging"
	"github.com/chazu/gdmlexport/pkg/export"
	"github.com/chazu/gdmlexport/pkg/gdml"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [input]",
	Short: "Show the solids of an input file without writing GDML",
	Long:  "List every solid with its exported name, material, vertex and triangle counts, followed by the scene bounds and the world box.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	input := args[0]
	if err := checkInput(input); err != nil {
		return err
	}

	solids, err := loadSolids(input, cfg, log)
	if err != nil {
		return err
	}
	r, err := export.Inspect(solids, logging.Named(log, "gdml"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Scene Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "File: %s\n\n", input)

	fmt.Fprintln(out, "Solids:")
	for i, s := range r.Solids {
		material := s.Material
		if !gdml.KnownMaterial(material) {
			material = fmt.Sprintf("%s -> %s", material, gdml.DefaultMaterial())
		}
		fmt.Fprintf(out, "  %3d  %-24s %-20s %8d vertices %8d triangles\n", i, s.Name, material, s.Vertices, s.Triangles)
		if s.SkippedFaces > 0 {
			fmt.Fprintf(out, "       %d faces skipped (no triangulation)\n", s.SkippedFaces)
		}
	}
	fmt.Fprintf(out, "  Total: %d vertices, %d triangles\n\n", r.Vertices, r.Triangles)

	world := r.Bounds.Grow(cfg.Margin)
	fmt.Fprintln(out, "Bounding Box (mm):")
	fmt.Fprintf(out, "  Min: %s\n", formatVec(r.Bounds.Min))
	fmt.Fprintf(out, "  Max: %s\n", formatVec(r.Bounds.Max))
	fmt.Fprintf(out, "  Size: %s\n\n", formatVec(r.Bounds.Size()))

	fmt.Fprintf(out, "World Box (margin %g mm):\n", cfg.Margin)
	fmt.Fprintf(out, "  Size: %s\n", formatVec(world.Size()))
	fmt.Fprintf(out, "  Center: %s\n", formatVec(world.Center()))
	return nil
}

func formatVec(v [3]float64) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v[0], v[1], v[2])
}
