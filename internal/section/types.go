package section

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/material"
	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Kind discriminates the section variants
type Kind int

const (
	General Kind = iota + 1
	NonPrismatic
	Rectangle
)

func (k Kind) String() string {
	switch k {
	case General:
		return "general"
	case NonPrismatic:
		return "non-prismatic"
	case Rectangle:
		return "rectangle"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Segment is one piece of a non-prismatic section
type Segment struct {
	Length float64       `json:"length"`
	Start  string        `json:"start"`
	End    string        `json:"end"`
	EI33   sap.Variation `json:"ei33,omitempty"`
	EI22   sap.Variation `json:"ei22,omitempty"`
}

// Section is a frame section. Which fields matter depends on Kind:
// General uses the property fields, Rectangle uses Depth and Width,
// NonPrismatic uses Segments.
type Section struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Material string `json:"material,omitempty"`

	// Unit system the numeric fields are written in (KN_m_C when zero)
	Units sap.Units `json:"units,omitempty"`

	// General and rectangular properties
	Depth float64 `json:"depth,omitempty"`
	Width float64 `json:"width,omitempty"`
	Area  float64 `json:"area,omitempty"`
	As2   float64 `json:"as2,omitempty"`
	As3   float64 `json:"as3,omitempty"`
	J     float64 `json:"j,omitempty"`
	I22   float64 `json:"i22,omitempty"`
	I33   float64 `json:"i33,omitempty"`
	I23   float64 `json:"i23,omitempty"`
	Notes string  `json:"notes,omitempty"`

	// Non-prismatic segments, all relative or all absolute
	Segments   []Segment      `json:"segments,omitempty"`
	LengthType sap.LengthType `json:"length_type,omitempty"`

	// Mass and weight modifiers are zeroed on definition
	NoMass bool `json:"no_mass,omitempty"`
}

// FromPolygon builds a general section (KN_m_C) from polygon geometry
func FromPolygon(name, mat string, p *Polygon) *Section {
	props := p.CalculateProperties()
	return &Section{
		Name:     name,
		Kind:     General,
		Material: mat,
		Units:    sap.KNmC,
		Depth:    props.Height,
		Width:    props.Width,
		Area:     props.Area,
		As2:      props.As2,
		As3:      props.As3,
		J:        props.J,
		I22:      props.Iyy,
		I33:      props.Ixx,
		I23:      props.Ixy,
	}
}

func (s *Section) units() sap.Units {
	if s.Units == 0 {
		return sap.DefaultUnits
	}
	return s.Units
}

// Validate checks if the section definition is usable
func (s *Section) Validate() error {
	if s.Name == "" {
		return &ValidationError{"section must have a name"}
	}
	switch s.Kind {
	case General:
		if s.Area <= 0 {
			return &ValidationError{msg: fmt.Sprintf("section %s: area must be positive", s.Name)}
		}
	case Rectangle:
		if s.Depth <= 0 || s.Width <= 0 {
			return &ValidationError{msg: fmt.Sprintf("section %s: depth and width must be positive", s.Name)}
		}
	case NonPrismatic:
		if len(s.Segments) == 0 {
			return fmt.Errorf("%w: non-prismatic section %s has no segments", sap.ErrDataMissing, s.Name)
		}
		for i, seg := range s.Segments {
			if seg.Length <= 0 {
				return &ValidationError{msg: fmt.Sprintf("section %s: segment %d must have a positive length", s.Name, i+1)}
			}
		}
	default:
		return &ValidationError{msg: fmt.Sprintf("section %s: unknown kind %d", s.Name, int(s.Kind))}
	}
	return nil
}

// IsDefined reports whether the engine knows the section
func (s *Section) IsDefined(m *sap.Model) bool {
	_, ret := m.Engine().SectionType(s.Name)
	return ret == 0
}

// Define emits the section, switching to its unit system for the call
func (s *Section) Define(m *sap.Model) error {
	if err := s.Validate(); err != nil {
		return m.Report(nil, err)
	}
	if s.Kind != NonPrismatic {
		if err := material.Ensure(m, s.Material); err != nil {
			return m.Report(nil, err)
		}
	}
	eng := m.Engine()
	err := m.WithUnits(s.units(), func() error {
		switch s.Kind {
		case General:
			return m.Check("PropFrame.SetGeneral", eng.SetGeneral(sap.GeneralSection{
				Name: s.Name, Material: s.Material,
				Depth: s.Depth, Width: s.Width, Area: s.Area,
				As2: s.As2, As3: s.As3, J: s.J,
				I22: s.I22, I33: s.I33, I23: s.I23,
				Notes: s.Notes,
			}))
		case Rectangle:
			return m.Check("PropFrame.SetRectangle", eng.SetRectangle(s.Name, s.Material, s.Depth, s.Width))
		default:
			lt := s.LengthType
			if lt == 0 {
				lt = sap.LengthRelative
			}
			segs := make([]sap.NonPrismaticSegment, len(s.Segments))
			for i, seg := range s.Segments {
				segs[i] = sap.NonPrismaticSegment{
					Start: seg.Start, End: seg.End, Length: seg.Length, Type: lt,
					EI33: variation(seg.EI33), EI22: variation(seg.EI22),
				}
			}
			return m.Check("PropFrame.SetNonPrismatic", eng.SetNonPrismatic(s.Name, segs))
		}
	})
	if err != nil {
		return m.Report(nil, err)
	}
	if s.NoMass {
		return s.IgnoreMassEffect(m)
	}
	return nil
}

func variation(v sap.Variation) sap.Variation {
	if v == 0 {
		return sap.VarLinear
	}
	return v
}

// IgnoreMassEffect zeroes the mass and weight modifiers of the section
func (s *Section) IgnoreMassEffect(m *sap.Model) error {
	mods := sap.UnitModifiers
	mods[6], mods[7] = 0, 0
	return m.Report(nil, m.Check("PropFrame.SetModifiers", m.Engine().SetModifiers(s.Name, mods)))
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
