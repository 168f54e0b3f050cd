package seismic

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Combo is a load combination of cases and nested combinations
type Combo struct {
	Name  string
	Kind  sap.ComboKind
	Items []sap.ComboItem
}

// Define emits the combination
func (c Combo) Define(m *sap.Model) error {
	if len(c.Items) == 0 {
		return m.Report(nil, fmt.Errorf("%w: combination %s has no cases", sap.ErrDataMissing, c.Name))
	}
	eng := m.Engine()
	if err := m.Check("RespCombo.Add", eng.AddCombo(c.Name, c.Kind)); err != nil {
		return m.Report(nil, err)
	}
	for _, it := range c.Items {
		if err := m.Check("RespCombo.SetCaseList", eng.SetComboCase(c.Name, it)); err != nil {
			return m.Report(nil, fmt.Errorf("combination %s, %s: %w", c.Name, it.Name, err))
		}
	}
	return nil
}

// Average is the AbsAdd combination of cases, each at 1/N
func Average(name string, cases []string) Combo {
	c := Combo{Name: name, Kind: sap.ComboAbsAdd}
	for _, cs := range cases {
		c.Items = append(c.Items, sap.ComboItem{Name: cs, SF: 1 / float64(len(cases))})
	}
	return c
}

// AverageCombo defines the average of a set of time-history cases
func AverageCombo(m *sap.Model, name string, cases []string) error {
	return Average(name, cases).Define(m)
}

// Factored is a seismic design combination: factors on the dead case and on
// the earthquake response
type Factored struct {
	ID          string
	Description string
	Dead        float64
	Earthquake  float64
}

// DesignCombinations are the gravity plus earthquake checks of a bridge pier
var DesignCombinations = []Factored{
	{ID: "1", Description: "1.0D + 1.0E", Dead: 1.0, Earthquake: 1.0},
	{ID: "2", Description: "1.2D + 1.0E", Dead: 1.2, Earthquake: 1.0},
	{ID: "3", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// Combo returns the linear combination of dead and quake. quakeIsCombo is
// set when the earthquake response is itself a combination (an average).
func (f Factored) Combo(name, dead, quake string, quakeIsCombo bool) Combo {
	return Combo{Name: name, Kind: sap.ComboLinearAdd, Items: []sap.ComboItem{
		{Name: dead, SF: f.Dead},
		{Name: quake, IsCombo: quakeIsCombo, SF: f.Earthquake},
	}}
}

// Apply returns the factored value of a dead-load and an earthquake response
func (f Factored) Apply(dead, quake float64) float64 {
	return f.Dead*dead + f.Earthquake*quake
}

// Governing returns the largest factored value over combos and the
// combination producing it
func Governing(dead, quake float64, combos []Factored) (float64, Factored) {
	var (
		max float64
		gov Factored
	)
	for i, c := range combos {
		v := c.Apply(dead, quake)
		if i == 0 || v > max {
			max, gov = v, c
		}
	}
	return max, gov
}

// DefineDesign defines every design combination over quake, named
// `<quake>_D<ID>`, and returns the names
func DefineDesign(m *sap.Model, quake string, quakeIsCombo bool) ([]string, error) {
	var names []string
	for _, f := range DesignCombinations {
		name := quake + "_D" + f.ID
		if err := f.Combo(name, m.DeadCase, quake, quakeIsCombo).Define(m); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}
