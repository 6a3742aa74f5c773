package gdml

import (
	"fmt"
	"strings"
)

// Placeholder replaces characters that may not appear in an identifier.
const Placeholder = '?'

// Identifier tags and reserved names.
const (
	TessellatedPrefix = "T-"
	VolumePrefix      = "V-"
	PhysvolPrefix     = "P-"
	PositionPrefix    = "N-"

	WorldBoxName = "worldbox"
	WorldName    = "World"
	CenterName   = "center"
)

var reservedNames = []string{WorldBoxName, WorldName, CenterName}

var reservedPrefixes = []string{TessellatedPrefix, VolumePrefix, PhysvolPrefix, PositionPrefix}

// disallowed are ASCII characters that break attribute quoting or GDML
// reference syntax.
const disallowed = `"[]<>&'`

// Sanitize replaces every non-ASCII, control or disallowed character in
// name with Placeholder. It never fails.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r > 126 || r < 0x20 || strings.ContainsRune(disallowed, r) {
			b.WriteRune(Placeholder)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CheckName validates an already sanitized name against the identifiers
// the writer generates itself.
func CheckName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	for _, r := range reservedNames {
		if name == r {
			return fmt.Errorf("%w: %q", ErrReservedName, name)
		}
	}
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(name, p) {
			return fmt.Errorf("%w: %q starts with %q", ErrReservedName, name, p)
		}
	}
	return nil
}
