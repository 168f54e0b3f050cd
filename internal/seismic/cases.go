package seismic

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/material"
	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Case defaults
const (
	DefaultModalCase = "MODAL"
	DefaultMaxModes  = 100
	DefaultDamping   = 0.05
	DefaultIntegrate = "HilberHughesTaylor"
	DefaultVertical  = 0.65 // vertical over horizontal ground motion
)

// Excitation is one ground acceleration of a case: a direction (U1, U2 or
// U3), the function driving it and a scale factor on the function values
type Excitation struct {
	Dir   string
	Func  string
	Scale float64
	Unit  AccelUnit // unit of the function values, MS2 when empty
}

// load converts the excitation to an engine load in m/s2 (KN_m_C)
func (x Excitation) load() (sap.CaseLoad, error) {
	switch x.Dir {
	case "U1", "U2", "U3":
	default:
		return sap.CaseLoad{}, fmt.Errorf("%w: excitation direction %q (U1, U2 or U3)", sap.ErrContract, x.Dir)
	}
	unit := x.Unit
	if unit == "" {
		unit = MS2
	}
	return sap.CaseLoad{Type: "Accel", Name: x.Dir, Func: x.Func, SF: x.Scale * Factor(unit, MS2)}, nil
}

// Longitudinal is the design excitation pair: fn at full scale along U1
// and at vertical along U3. The spectrum case combines them by SRSS.
func Longitudinal(fn string, unit AccelUnit, vertical float64) []Excitation {
	return []Excitation{
		{Dir: "U1", Func: fn, Scale: 1, Unit: unit},
		{Dir: "U3", Func: fn, Scale: vertical, Unit: unit},
	}
}

func loads(xs []Excitation) ([]sap.CaseLoad, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: case has no excitation", sap.ErrDataMissing)
	}
	out := make([]sap.CaseLoad, 0, len(xs))
	for _, x := range xs {
		l, err := x.load()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// DefineDead defines the gravity case: an acceleration of g in Z acting on
// every mass of the model, lumped masses included
func DefineDead(m *sap.Model) error {
	ls := []sap.CaseLoad{{Type: "Accel", Name: "U3", SF: material.Gravity}}
	return m.Report(nil, m.Check("LoadCases.StaticLinear.SetCase", m.Engine().SetStaticLinear(m.DeadCase, ls)))
}

// DefineModal defines an eigen case starting from the dead-load state
func DefineModal(m *sap.Model, name string, maxModes int) error {
	if maxModes < 1 {
		maxModes = DefaultMaxModes
	}
	return m.Report(nil, m.Check("LoadCases.ModalEigen.SetCase",
		m.Engine().SetModalEigen(name, m.DeadCase, maxModes, 1)))
}

// DefineSpectrumFunction emits a response-spectrum function
func DefineSpectrumFunction(m *sap.Model, name string, s *Spectrum, damping float64) error {
	if s == nil || len(s.Periods) == 0 {
		return m.Report(nil, fmt.Errorf("%w: spectrum %s has no data", sap.ErrDataMissing, name))
	}
	return m.Report(nil, m.Check("Func.FuncRS.SetUser",
		m.Engine().SetSpectrumFunction(name, s.Periods, s.Values, damping)))
}

// DefineHistoryFunction emits a time-history function named after h
func DefineHistoryFunction(m *sap.Model, h *History) error {
	if h == nil || len(h.Values) == 0 {
		return m.Report(nil, fmt.Errorf("%w: time history has no data", sap.ErrDataMissing))
	}
	return m.Report(nil, m.Check("Func.FuncTH.SetUser",
		m.Engine().SetHistoryFunction(h.Name, h.Times, h.Values)))
}

// DefineSpectrumCase defines a response-spectrum case over modal. Directions
// are combined by SRSS.
func DefineSpectrumCase(m *sap.Model, name, modal string, xs []Excitation, combo sap.ModalCombination, damping float64) error {
	ls, err := loads(xs)
	if err != nil {
		return m.Report(nil, fmt.Errorf("spectrum case %s: %w", name, err))
	}
	c := sap.SpectrumCase{ModalCase: modal, Loads: ls, ModalCombo: combo, DirCombo: sap.SRSS, Damping: damping}
	return m.Report(nil, m.WithUnits(sap.KNmC, func() error {
		return m.Check("LoadCases.ResponseSpectrum.SetCase", m.Engine().SetResponseSpectrum(name, c))
	}))
}

// HistoryOptions are the step settings of a time-history case
type HistoryOptions struct {
	Steps   int
	Dt      float64
	Damping float64       // modal cases, constant ratio
	Initial string        // direct cases, initial state case
	Method  string        // direct cases, integration method
	Periods *sap.Rayleigh // direct cases, proportional damping
}

// StepsFor returns options covering h at its own time step
func StepsFor(h *History) HistoryOptions {
	return HistoryOptions{Steps: len(h.Values), Dt: h.Dt(), Damping: DefaultDamping}
}

// DefineModalHistory defines a modal (FNA) time-history case
func DefineModalHistory(m *sap.Model, name, modal string, xs []Excitation, o HistoryOptions) error {
	ls, err := loads(xs)
	if err != nil {
		return m.Report(nil, fmt.Errorf("history case %s: %w", name, err))
	}
	if o.Damping == 0 {
		o.Damping = DefaultDamping
	}
	c := sap.HistoryCase{ModalCase: modal, Loads: ls, Steps: o.Steps, Dt: o.Dt, Damping: o.Damping}
	return m.Report(nil, m.WithUnits(sap.KNmC, func() error {
		return m.Check("LoadCases.ModHistNonlinear.SetCase", m.Engine().SetModalHistory(name, c))
	}))
}

// DefineDirectHistory defines a direct-integration time-history case with
// Rayleigh damping
func DefineDirectHistory(m *sap.Model, name string, xs []Excitation, o HistoryOptions) error {
	ls, err := loads(xs)
	if err != nil {
		return m.Report(nil, fmt.Errorf("history case %s: %w", name, err))
	}
	if o.Periods == nil {
		return m.Report(nil, fmt.Errorf("%w: direct history %s needs Rayleigh periods", sap.ErrContract, name))
	}
	if o.Method == "" {
		o.Method = DefaultIntegrate
	}
	if o.Initial == "" {
		o.Initial = m.DeadCase
	}
	c := sap.HistoryCase{InitialCase: o.Initial, Loads: ls, Steps: o.Steps, Dt: o.Dt, Rayleigh: o.Periods, Integration: o.Method}
	return m.Report(nil, m.WithUnits(sap.KNmC, func() error {
		return m.Check("LoadCases.DirHistNonlinear.SetCase", m.Engine().SetDirectHistory(name, c))
	}))
}

// DefineRecords emits one history function per record and one modal history
// case `<prefix>_<record>` per record, all sharing the excitation layout of
// xs (whose Func fields are replaced). It returns the case names.
func DefineRecords(m *sap.Model, prefix, modal string, records []*History, xs []Excitation, damping float64) ([]string, error) {
	var names []string
	for _, h := range records {
		if err := DefineHistoryFunction(m, h); err != nil {
			return names, err
		}
		ex := make([]Excitation, len(xs))
		for i, x := range xs {
			x.Func = h.Name
			ex[i] = x
		}
		o := StepsFor(h)
		if damping > 0 {
			o.Damping = damping
		}
		name := prefix + "_" + h.Name
		if err := DefineModalHistory(m, name, modal, ex, o); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}
