package girder

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobridge/internal/material"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/section"
)

// Plan selects the girder section scheme
type Plan int

const (
	PlanI   Plan = iota + 1 // equal-section steel box
	PlanII                  // equal-section composite box
	PlanIII                 // variable-section continuous concrete box
)

func (p Plan) String() string {
	switch p {
	case PlanI:
		return "I"
	case PlanII:
		return "II"
	case PlanIII:
		return "III"
	}
	return fmt.Sprintf("Plan(%d)", int(p))
}

// ParsePlan accepts I, II, III (or 1, 2, 3)
func ParsePlan(s string) (Plan, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "I", "1":
		return PlanI, nil
	case "II", "2":
		return PlanII, nil
	case "III", "3":
		return PlanIII, nil
	}
	return 0, fmt.Errorf("%w: unknown girder plan %q", sap.ErrContract, s)
}

// MarshalText writes the roman numeral
func (p Plan) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText reads the roman numeral
func (p *Plan) UnmarshalText(b []byte) error {
	v, err := ParsePlan(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Loads returns the self weight q1 and the superimposed load q2 (kN/m)
func (p Plan) Loads() (q1, q2 float64) {
	switch p {
	case PlanI:
		return 117.5, 43.9
	case PlanII:
		return 246.9, 56.0
	case PlanIII:
		return 707.0, 60.19
	}
	return 0, 0
}

// Variable reports whether the plan uses non-prismatic spans
func (p Plan) Variable() bool { return p == PlanIII }

// Depth is the girder depth over the piers (m)
func (p Plan) Depth() float64 {
	switch p {
	case PlanI:
		return 3.0
	case PlanII:
		return 3.2
	case PlanIII:
		return 8.0
	}
	return 0
}

// Girder section names
const (
	SteelBox   = "GirderSteelBox"
	Composite  = "GirderComposite"
	PierBox    = "GirderPier"
	MidBox     = "GirderMid"
	varEndMid  = "GirderVar_IM" // intermediate pier -> middle pier
	varMidEnd  = "GirderVar_MI" // middle pier -> intermediate pier
	varMidMid  = "GirderVar_MM" // middle pier -> middle pier
	ruleMid    = 0.723
	rulePier   = 0.0422
	ruleCenter = 0.447
)

// catalog data, N_mm_C
var planSections = map[string]*section.Section{
	SteelBox: {
		Name: SteelBox, Kind: section.General, Material: material.GirderSteel, Units: sap.NmmC,
		Depth: 3000, Width: 12500, Area: 1.4968e6, As2: 4.21e5, As3: 9.64e5,
		J: 5.02e12, I22: 2.71e13, I33: 2.37e12,
		Notes: "plan I equal-section steel box",
	},
	Composite: {
		Name: Composite, Kind: section.General, Material: material.GirderConcrete, Units: sap.NmmC,
		Depth: 3200, Width: 12500, Area: 9.876e6, As2: 3.12e6, As3: 5.83e6,
		J: 2.91e13, I22: 1.12e14, I33: 1.45e13,
		Notes: "plan II equal-section composite box, transformed to C50",
	},
	PierBox: {
		Name: PierBox, Kind: section.General, Material: material.GirderConcrete, Units: sap.NmmC,
		Depth: 8000, Width: 12500, Area: 3.782e7, As2: 1.41e7, As3: 1.96e7,
		J: 4.12e14, I22: 3.93e14, I33: 2.61e14,
		Notes: "plan III section over piers",
	},
	MidBox: {
		Name: MidBox, Kind: section.General, Material: material.GirderConcrete, Units: sap.NmmC,
		Depth: 3500, Width: 12500, Area: 1.904e7, As2: 4.87e6, As3: 1.12e7,
		J: 1.03e14, I22: 2.29e14, I33: 3.12e13,
		Notes: "plan III mid-span section",
	},
}

// Prismatic returns the prismatic sections a plan emits
func (p Plan) Prismatic() []*section.Section {
	switch p {
	case PlanI:
		return []*section.Section{planSections[SteelBox]}
	case PlanII:
		return []*section.Section{planSections[Composite]}
	case PlanIII:
		return []*section.Section{planSections[PierBox], planSections[MidBox]}
	}
	return nil
}

func segment(frac float64, start, end string) section.Segment {
	s := section.Segment{Length: frac, Start: start, End: end, EI33: sap.VarLinear, EI22: sap.VarLinear}
	if start != end {
		s.EI33 = sap.VarParabolic
	}
	return s
}

// varying returns the non-prismatic section of a plan III span from a pier
// of the first kind to a pier of the second. Intermediate to intermediate
// has no rule: nil is returned and the span uses the mid-span section.
func varying(startIntermediate, endIntermediate bool) *section.Section {
	var (
		name string
		segs []section.Segment
	)
	switch {
	case startIntermediate && endIntermediate:
		return nil
	case startIntermediate:
		name = varEndMid
		segs = []section.Segment{
			segment(ruleMid, MidBox, MidBox),
			segment(1-ruleMid-rulePier, MidBox, PierBox),
			segment(rulePier, PierBox, PierBox),
		}
	case endIntermediate:
		name = varMidEnd
		segs = []section.Segment{
			segment(rulePier, PierBox, PierBox),
			segment(1-ruleMid-rulePier, PierBox, MidBox),
			segment(ruleMid, MidBox, MidBox),
		}
	default:
		name = varMidMid
		segs = []section.Segment{
			segment(0.5-ruleCenter/2, PierBox, MidBox),
			segment(ruleCenter, MidBox, MidBox),
			segment(0.5-ruleCenter/2, MidBox, PierBox),
		}
	}
	return &section.Section{Name: name, Kind: section.NonPrismatic, Segments: segs, LengthType: sap.LengthRelative}
}
