package gdml

// Built-in material names.
const (
	Aluminum = "ALUMINUM"
	Vacuum   = "VACUUM"
)

// Material is one entry of the fixed material table. Atom and Density are
// kept as text so they are emitted exactly as tabulated.
type Material struct {
	Name    string
	Z       int
	Atom    string // g/mole
	Density string // g/cm3
}

var materialTable = []Material{
	{Name: Aluminum, Z: 13, Atom: "26.9815385", Density: "2.70"},
	{Name: Vacuum, Z: 1, Atom: "1.00794", Density: "1e-25"},
}

// DefaultMaterial is used for untagged solids and for the world volume.
func DefaultMaterial() string {
	return Vacuum
}

// Materials returns a copy of the material table in emission order.
func Materials() []Material {
	out := make([]Material, len(materialTable))
	copy(out, materialTable)
	return out
}

// KnownMaterial reports whether name is in the material table.
func KnownMaterial(name string) bool {
	for _, m := range materialTable {
		if m.Name == name {
			return true
		}
	}
	return false
}

// ResolveMaterial returns name if it is in the table, otherwise the default
// material and false.
func ResolveMaterial(name string) (string, bool) {
	if KnownMaterial(name) {
		return name, true
	}
	return DefaultMaterial(), false
}
