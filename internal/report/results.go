// Package report extracts grouped per-pier results from an analysed model
// and writes summary tables.
package report

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Output selects a load case or a combination for result queries
type Output struct {
	Name  string
	Combo bool
}

// Case selects a load case
func Case(name string) Output { return Output{Name: name} }

// Combo selects a combination
func Combo(name string) Output { return Output{Name: name, Combo: true} }

func (o Output) String() string { return o.Name }

func (o Output) selectFor(m *sap.Model) error {
	if o.Combo {
		return m.SelectOnlyCombo(o.Name)
	}
	return m.SelectOnly(o.Name)
}

// PierResult holds the peak responses of one pier under one output
type PierResult struct {
	Pier   string
	Output string

	// bearing with the largest horizontal shear sqrt(V2^2 + V3^2)
	Link  string
	Shear float64
	V2    float64 // longitudinal
	V3    float64 // transverse

	// bearing with the largest horizontal deformation sqrt(U2^2 + U3^2), m
	DeformLink string
	Deform     float64
	U2, U3     float64

	// base reaction, absolute peaks
	F1, F2, F3 float64
	M1, M2, M3 float64
}

// BearingGroup and BaseGroup are the group names results are read from
func BearingGroup(pier string) string { return pier + "_Bearings" }
func BaseGroup(pier string) string    { return pier + "_Base" }

func absMax(a, b float64) float64 { return math.Max(a, math.Abs(b)) }

// Extract reads the peak bearing shear, bearing deformation and base
// reaction of every pier
func Extract(m *sap.Model, piers []string, o Output) ([]PierResult, error) {
	if !m.IsLocked() {
		return nil, m.Report(nil, fmt.Errorf("%w: results of %s need an analysed model", sap.ErrContract, o))
	}
	if err := o.selectFor(m); err != nil {
		return nil, m.Report(nil, err)
	}
	eng := m.Engine()
	out := make([]PierResult, 0, len(piers))
	for _, p := range piers {
		r := PierResult{Pier: p, Output: o.Name}

		rows, ret := eng.LinkForce(BearingGroup(p), sap.GroupElm)
		if err := m.Check("Results.LinkForce", ret); err != nil {
			return out, m.Report(nil, fmt.Errorf("pier %s: %w", p, err))
		}
		for _, row := range rows {
			if v := math.Hypot(row.V2, row.V3); v > r.Shear || r.Link == "" {
				r.Shear, r.V2, r.V3, r.Link = v, math.Abs(row.V2), math.Abs(row.V3), row.Obj
			}
		}

		deforms, ret := eng.LinkDeformation(BearingGroup(p), sap.GroupElm)
		if err := m.Check("Results.LinkDeformation", ret); err != nil {
			return out, m.Report(nil, fmt.Errorf("pier %s: %w", p, err))
		}
		for _, row := range deforms {
			u2, u3 := row.U[sap.U2], row.U[sap.U3]
			if u := math.Hypot(u2, u3); u > r.Deform || r.DeformLink == "" {
				r.Deform, r.U2, r.U3, r.DeformLink = u, math.Abs(u2), math.Abs(u3), row.Obj
			}
		}

		reactions, ret := eng.JointReaction(BaseGroup(p), sap.GroupElm)
		if err := m.Check("Results.JointReact", ret); err != nil {
			return out, m.Report(nil, fmt.Errorf("pier %s: %w", p, err))
		}
		for _, row := range reactions {
			r.F1, r.F2, r.F3 = absMax(r.F1, row.F1), absMax(r.F2, row.F2), absMax(r.F3, row.F3)
			r.M1, r.M2, r.M3 = absMax(r.M1, row.M1), absMax(r.M2, row.M2), absMax(r.M3, row.M3)
		}
		out = append(out, r)
	}
	return out, nil
}

// Comparison pairs the spectrum and time-history results of one pier
type Comparison struct {
	Pier     string
	Spectrum PierResult
	History  PierResult
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return a / b
}

// ShearRatio is history over spectrum bearing shear
func (c Comparison) ShearRatio() float64 { return ratio(c.History.Shear, c.Spectrum.Shear) }

// DeformRatio is history over spectrum bearing deformation
func (c Comparison) DeformRatio() float64 { return ratio(c.History.Deform, c.Spectrum.Deform) }

// ReactionRatio is history over spectrum base shear
func (c Comparison) ReactionRatio() float64 {
	return ratio(math.Hypot(c.History.F1, c.History.F2), math.Hypot(c.Spectrum.F1, c.Spectrum.F2))
}

// Compare extracts both outputs and pairs them per pier
func Compare(m *sap.Model, piers []string, spectrum, history Output) ([]Comparison, error) {
	rs, err := Extract(m, piers, spectrum)
	if err != nil {
		return nil, err
	}
	hs, err := Extract(m, piers, history)
	if err != nil {
		return nil, err
	}
	out := make([]Comparison, len(piers))
	for i, p := range piers {
		out[i] = Comparison{Pier: p, Spectrum: rs[i], History: hs[i]}
	}
	return out, nil
}

// TotalVertical is the sum of vertical base reactions under a case
func TotalVertical(m *sap.Model, piers []string, o Output) (float64, error) {
	if err := o.selectFor(m); err != nil {
		return 0, m.Report(nil, err)
	}
	sum := 0.0
	for _, p := range piers {
		rows, ret := m.Engine().JointReaction(BaseGroup(p), sap.GroupElm)
		if err := m.Check("Results.JointReact", ret); err != nil {
			return sum, m.Report(nil, fmt.Errorf("pier %s: %w", p, err))
		}
		for _, r := range rows {
			sum += r.F3
		}
	}
	return sum, nil
}
