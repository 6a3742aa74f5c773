package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/chazu/gdmlexport/pkg/kernel/brep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solids() []kernel.NamedSolid {
	k := brep.New()
	return []kernel.NamedSolid{
		{Solid: k.Box(1, 1, 1), Name: "0", Material: "ALUMINUM"},
		{Solid: k.Box(1, 1, 1), Name: "flange"},
		{Solid: k.Box(1, 1, 1), Name: "flange_2"},
	}
}

func TestParseAndApply(t *testing.T) {
	f, err := Parse(strings.NewReader(`
[[solid]]
index = 0
name = "beampipe"

[[solid]]
match = "flange"
material = "VACUUM"
`))
	require.NoError(t, err)
	require.Len(t, f.Solids, 2)

	in := solids()
	out, err := f.Apply(in)
	require.NoError(t, err)

	assert.Equal(t, "beampipe", out[0].Name)
	assert.Equal(t, "ALUMINUM", out[0].Material, "untouched fields survive")
	assert.Equal(t, "flange", out[1].Name)
	assert.Equal(t, "VACUUM", out[1].Material)
	assert.Equal(t, "", out[2].Material, "match is exact")

	assert.Equal(t, "0", in[0].Name, "input must not be mutated")
	assert.Equal(t, "", in[1].Material)
}

func TestMatchUsesOriginalNames(t *testing.T) {
	f, err := Parse(strings.NewReader(`
[[solid]]
match = "flange"
name = "collar"

[[solid]]
match = "flange"
material = "VACUUM"
`))
	require.NoError(t, err)

	out, err := f.Apply(solids())
	require.NoError(t, err)
	assert.Equal(t, "collar", out[1].Name)
	assert.Equal(t, "VACUUM", out[1].Material)
}

func TestApplyUnknownIndex(t *testing.T) {
	f, err := Parse(strings.NewReader("[[solid]]\nindex = 7\nmaterial = \"VACUUM\"\n"))
	require.NoError(t, err)

	_, err = f.Apply(solids())
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, err.Error(), "index 7")
}

func TestApplyUnknownMatch(t *testing.T) {
	f, err := Parse(strings.NewReader("[[solid]]\nmatch = \"ghost\"\nname = \"x\"\n"))
	require.NoError(t, err)

	_, err = f.Apply(solids())
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestApplyNilFile(t *testing.T) {
	var f *File
	out, err := f.Apply(solids())
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no selector", "[[solid]]\nname = \"x\"\n"},
		{"both selectors", "[[solid]]\nindex = 0\nmatch = \"a\"\nname = \"x\"\n"},
		{"negative index", "[[solid]]\nindex = -1\nname = \"x\"\n"},
		{"no change", "[[solid]]\nindex = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("[[solid]]\nindex = 0\ncolour = \"red\"\n"))
	assert.Error(t, err)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader("[[solid]\nindex = "))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.meta.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[solid]]\nindex = 2\nmaterial = \"ALUMINUM\"\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Solids, 1)
	require.NotNil(t, f.Solids[0].Index)
	assert.Equal(t, 2, *f.Solids[0].Index)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "parts/scene.meta.toml", SidecarPath("parts/scene.stl"))
	assert.Equal(t, "model.meta.toml", SidecarPath("model"))
}
