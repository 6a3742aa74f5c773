package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chazu/gdmlexport/internal/config"
	"github.com/chazu/gdmlexport/internal/logging"
	"github.com/chazu/gdmlexport/pkg/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSolids = `
(defsolid "pipe" (cylinder :height 10 :radius 1 :segments 8) :material "ALUMINUM")
(defsolid "plate" (box 4 4 1))
`

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestOutputPath(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "parts/scene.gdml", outputPath("parts/scene.lgn", cfg))
	assert.Equal(t, "MODEL.gdml", outputPath("MODEL.STL", cfg))
	assert.Equal(t, "noext.gdml", outputPath("noext", cfg))

	cfg.Output = "custom.gdml"
	assert.Equal(t, "custom.gdml", outputPath("scene.lgn", cfg))
}

func TestExportFile(t *testing.T) {
	input := writeInput(t, "scene.lgn", twoSolids)
	cfg := config.Default()

	r, err := exportFile(input, cfg, logging.Discard())
	require.NoError(t, err)
	require.Len(t, r.Solids, 2)

	data, err := os.ReadFile(strings.TrimSuffix(input, ".lgn") + ".gdml")
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, `<tessellated name="T-pipe">`)
	assert.Contains(t, doc, `<volume name="V-plate">`)
	assert.Contains(t, doc, `<materialref ref="ALUMINUM"/>`)
}

func TestExportFileAppliesSidecar(t *testing.T) {
	input := writeInput(t, "scene.lgn", twoSolids)
	sidecar := strings.TrimSuffix(input, ".lgn") + ".meta.toml"
	require.NoError(t, os.WriteFile(sidecar, []byte("[[solid]]\nmatch = \"plate\"\nname = \"target\"\nmaterial = \"VACUUM\"\n"), 0o644))

	r, err := exportFile(input, config.Default(), logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, "target", r.Solids[1].Name)
	assert.Equal(t, "VACUUM", r.Solids[1].Material)
}

func TestExportFileExplicitSidecarMustExist(t *testing.T) {
	input := writeInput(t, "scene.lgn", twoSolids)
	cfg := config.Default()
	cfg.Metadata = filepath.Join(t.TempDir(), "missing.toml")

	_, err := exportFile(input, cfg, logging.Discard())
	assert.Error(t, err)
}

func TestExportFileUnsupported(t *testing.T) {
	_, err := exportFile("model.step", config.Default(), logging.Discard())
	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
}

func TestExportFileFailureLeavesNoOutput(t *testing.T) {
	input := writeInput(t, "bad.lgn", `(defsolid "World" (box 1 1 1))`)
	_, err := exportFile(input, config.Default(), logging.Discard())
	require.Error(t, err)

	_, statErr := os.Stat(strings.TrimSuffix(input, ".lgn") + ".gdml")
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootExportCommand(t *testing.T) {
	input := writeInput(t, "scene.lgn", twoSolids)
	out := filepath.Join(t.TempDir(), "out.gdml")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"export", input, "-o", out, "--log-level", "error"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "2 solids")
	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "gdmlexport dev\n", stdout.String())
}

func TestWatchFileExportsAndStops(t *testing.T) {
	input := writeInput(t, "scene.lgn", twoSolids)
	cfg := config.Default()
	cfg.Debounce = config.Duration(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchFile(ctx, input, cfg, logging.Discard()) }()

	gdmlPath := strings.TrimSuffix(input, ".lgn") + ".gdml"
	assert.Eventually(t, func() bool {
		_, err := os.Stat(gdmlPath)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
