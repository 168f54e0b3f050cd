package frame

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/section"
)

// Frame is a two-node beam element
type Frame struct {
	Name    string
	I       string
	J       string
	Section string

	m *sap.Model
}

// Define emits a frame between two existing points. The engine may assign
// another name; the returned frame carries the name actually used.
func Define(m *sap.Model, i, j, sectionName, name string) (*Frame, error) {
	got, ret := m.Engine().AddFrame(i, j, sectionName, name)
	if err := m.Check("FrameObj.AddByPoint", ret); err != nil {
		return nil, m.Report(nil, fmt.Errorf("frame %s (%s -> %s): %w", name, i, j, err))
	}
	if name != "" && got != name {
		m.Log.Tracef("frame %s was named %s by the engine", name, got)
	}
	return &Frame{Name: got, I: i, J: j, Section: sectionName, m: m}, nil
}

// Rigid creates the rigid section if needed, then a frame using it
func Rigid(m *sap.Model, cat *section.Catalog, i, j, name string) (*Frame, error) {
	s, err := cat.RigidLink("", 0)
	if err != nil {
		return nil, err
	}
	return Define(m, i, j, s.Name, name)
}

// AddLineMass assigns mass per unit length (KN_m_C: t/m)
func (f *Frame) AddLineMass(q float64, replace bool) error {
	return f.m.Report(nil, f.m.Check("FrameObj.SetMass", f.m.Engine().SetFrameMass(f.Name, q, replace)))
}

// LineMass returns the current mass per unit length
func (f *Frame) LineMass() (float64, error) {
	q, ret := f.m.Engine().FrameMass(f.Name)
	return q, f.m.Check("FrameObj.GetMass", ret)
}

// SetVariablePlacement tells the engine where the element sits inside the
// assumed total length of its non-prismatic section. Prismatic sections are
// rejected.
func (f *Frame) SetVariablePlacement(totalLength, relStart float64) error {
	name, err := f.CurrentSection()
	if err != nil {
		return f.m.Report(nil, err)
	}
	kind, ret := f.m.Engine().SectionType(name)
	if err := f.m.Check("PropFrame.GetTypeOAPI", ret); err != nil {
		return f.m.Report(nil, err)
	}
	if kind != sap.SectionNonPrismatic {
		return f.m.Report(nil, fmt.Errorf("%w: frame %s: variable placement on prismatic section %s", sap.ErrContract, f.Name, name))
	}
	return f.m.Report(nil, f.m.Check("FrameObj.SetSection", f.m.Engine().SetFrameSection(f.Name, name, totalLength, relStart)))
}

// SetCardinal sets the insertion point of the frame
func (f *Frame) SetCardinal(cp sap.CardinalPoint) error {
	return f.m.Report(nil, f.m.Check("FrameObj.SetInsertionPoint", f.m.Engine().SetInsertionPoint(f.Name, cp)))
}

// CurrentSection asks the engine which section the frame uses
func (f *Frame) CurrentSection() (string, error) {
	name, ret := f.m.Engine().FrameSection(f.Name)
	if err := f.m.Check("FrameObj.GetSection", ret); err != nil {
		return "", err
	}
	f.Section = name
	return name, nil
}
