// Package metadata applies per-solid overrides from a TOML sidecar file.
//
// A sidecar lists [[solid]] tables. Each selects solids either by position
// (index, 0-based) or by source name (match) and may set a new name, a
// material, or both:
//
//	[[solid]]
//	index = 0
//	name = "beampipe"
//
//	[[solid]]
//	match = "flange"
//	material = "VACUUM"
package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidEntry is returned for entries that select nothing or change
// nothing.
var ErrInvalidEntry = errors.New("metadata: invalid entry")

// ErrNoMatch is returned when an entry selects no solid.
var ErrNoMatch = errors.New("metadata: entry matches no solid")

// Entry is one [[solid]] table.
type Entry struct {
	Index    *int   `toml:"index"`
	Match    string `toml:"match"`
	Name     string `toml:"name"`
	Material string `toml:"material"`
}

func (e Entry) String() string {
	if e.Index != nil {
		return fmt.Sprintf("index %d", *e.Index)
	}
	return fmt.Sprintf("match %q", e.Match)
}

// File is a parsed sidecar.
type File struct {
	Solids []Entry `toml:"solid"`
}

// Parse decodes a sidecar. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the sidecar at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// SidecarPath returns the conventional sidecar location for an input file:
// the input path with its extension replaced by ".meta.toml".
func SidecarPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".meta.toml"
}

func (f *File) check() error {
	for i, e := range f.Solids {
		switch {
		case e.Index == nil && e.Match == "":
			return fmt.Errorf("%w: solid %d needs index or match", ErrInvalidEntry, i)
		case e.Index != nil && e.Match != "":
			return fmt.Errorf("%w: solid %d has both index and match", ErrInvalidEntry, i)
		case e.Index != nil && *e.Index < 0:
			return fmt.Errorf("%w: solid %d has negative index %d", ErrInvalidEntry, i, *e.Index)
		case e.Name == "" && e.Material == "":
			return fmt.Errorf("%w: solid %d (%s) sets neither name nor material", ErrInvalidEntry, i, e)
		}
	}
	return nil
}

// Apply returns a copy of solids with the overrides applied in file order.
// Matches compare against the names solids had before any override. An
// entry that selects no solid is an error. The input slice is not modified.
func (f *File) Apply(solids []kernel.NamedSolid) ([]kernel.NamedSolid, error) {
	out := make([]kernel.NamedSolid, len(solids))
	copy(out, solids)
	if f == nil {
		return out, nil
	}

	for _, e := range f.Solids {
		hit := false
		for i := range solids {
			if !e.selects(i, solids[i].Name) {
				continue
			}
			hit = true
			if e.Name != "" {
				out[i].Name = e.Name
			}
			if e.Material != "" {
				out[i].Material = e.Material
			}
		}
		if !hit {
			return nil, fmt.Errorf("%w: %s (%d solids)", ErrNoMatch, e, len(solids))
		}
	}
	return out, nil
}

func (e Entry) selects(i int, name string) bool {
	if e.Index != nil {
		return *e.Index == i
	}
	return e.Match == name
}
