package material

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Physical constants used across the model (KN_m_C)
const (
	Gravity         = 9.81 // m/s²
	ConcreteDensity = 2.5  // t/m³, used for lumped cap mass
	SteelDensity    = 7.85 // t/m³
)

// Material is an entry of the engine's built-in material library
type Material struct {
	Name     string // name used by sections
	Region   string
	Standard string
	Grade    string
	Kind     string // "Concrete" or "Steel"

	// Reference values for reports (MPa, kN/m³)
	E           float64
	UnitWeight  float64
	Description string
}

// Common materials of the bridge models
var Common = []Material{
	{
		Name:        "C40",
		Region:      "China",
		Standard:    "JTG",
		Grade:       "JTG D62 C40",
		Kind:        "Concrete",
		E:           32500,
		UnitWeight:  26.0,
		Description: "pier legs, caps",
	},
	{
		Name:        "C50",
		Region:      "China",
		Standard:    "JTG",
		Grade:       "JTG D62 C50",
		Kind:        "Concrete",
		E:           34500,
		UnitWeight:  26.0,
		Description: "variable-section concrete girders",
	},
	{
		Name:        "Q345",
		Region:      "China",
		Standard:    "GB",
		Grade:       "GB Q345",
		Kind:        "Steel",
		E:           206000,
		UnitWeight:  78.5,
		Description: "steel and composite box girders",
	},
}

// Default names used by the assemblies
const (
	PierConcrete   = "C40"
	GirderConcrete = "C50"
	GirderSteel    = "Q345"
)

// Lookup finds a common material by name
func Lookup(name string) (Material, bool) {
	for _, m := range Common {
		if m.Name == name {
			return m, true
		}
	}
	return Material{}, false
}

// Ensure adds a common material to the model unless a material with the same
// name already exists. Unknown names are passed through untouched so models
// can use the engine's own defaults.
func Ensure(m *sap.Model, name string) error {
	names, ret := m.Engine().MaterialNames()
	if err := m.Check("PropMaterial.GetNameList", ret); err != nil {
		return err
	}
	if sap.Contains(names, name) {
		return nil
	}
	mat, found := Lookup(name)
	if !found {
		return fmt.Errorf("%w: material %q is neither defined nor in the common catalog", sap.ErrDataMissing, name)
	}
	got, ret := m.Engine().AddMaterial(mat.Region, mat.Standard, mat.Grade, mat.Name)
	if err := m.Check("PropMaterial.AddMaterial", ret); err != nil {
		return err
	}
	if got != mat.Name {
		m.Log.Warnf("material %s was added as %s", mat.Name, got)
	}
	return nil
}

// EnsureAll adds every common material
func EnsureAll(m *sap.Model) error {
	for _, mat := range Common {
		if err := Ensure(m, mat.Name); err != nil {
			return err
		}
	}
	return nil
}
