package bearing

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/google/uuid"
)

// Kind is the link property variant
type Kind int

const (
	Linear Kind = iota + 1
	MultiElastic
	PlasticWen
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "Linear"
	case MultiElastic:
		return "MultiElastic"
	case PlasticWen:
		return "PlasticWen"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a variant name (case sensitive, as printed by String)
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Linear, MultiElastic, PlasticWen} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: bearing variant %q", sap.ErrUnsupported, s)
}

// Hysteresis is the label written with multi-linear elastic points
const Hysteresis = "Isotropic"

// MinExp is the smallest plastic-Wen yield exponent accepted
const MinExp = 2.0

// Curve is a multi-linear elastic force-displacement law
type Curve struct {
	Disp  []float64
	Force []float64
}

// Wen holds the plastic-Wen parameters of one dof
type Wen struct {
	K     float64 // initial stiffness
	Yield float64 // yield force
	Ratio float64 // post-yield to initial stiffness
	Exp   float64 // yielding exponent
}

// Prop is a link property. All variants share the linear skeleton; Curves
// are used by MultiElastic and Wen by PlasticWen.
type Prop struct {
	Name      string
	Kind      Kind
	DOF       sap.DOFSet
	Fixed     sap.DOFSet
	NonLinear sap.DOFSet
	Ke        [6]float64
	Ce        [6]float64
	KeCoupled bool
	CeCoupled bool
	DJ2       float64
	DJ3       float64
	Curves    map[sap.DOF]Curve
	Wen       map[sap.DOF]Wen
	Notes     string
	GUID      string
}

// NewLinear creates a linear property active on every dof listed in dofs
func NewLinear(name string, ke [6]float64, dofs ...sap.DOF) *Prop {
	return &Prop{
		Name: name,
		Kind: Linear,
		DOF:  sap.NewDOFSet(dofs...),
		Ke:   ke,
		GUID: uuid.NewString(),
	}
}

// Derive returns a new property of kind k sharing the linear skeleton of p
// (dofs, fixed set, Ke, Ce, shear locations). Nonlinear data start empty.
func (p *Prop) Derive(name string, k Kind) *Prop {
	return &Prop{
		Name:      name,
		Kind:      k,
		DOF:       p.DOF,
		Fixed:     p.Fixed,
		Ke:        p.Ke,
		Ce:        p.Ce,
		KeCoupled: p.KeCoupled,
		CeCoupled: p.CeCoupled,
		DJ2:       p.DJ2,
		DJ3:       p.DJ3,
		Curves:    make(map[sap.DOF]Curve),
		Wen:       make(map[sap.DOF]Wen),
		Notes:     p.Notes,
		GUID:      uuid.NewString(),
	}
}

// SetCurve makes dof nonlinear with a symmetric multi-linear law
func (p *Prop) SetCurve(dof sap.DOF, c Curve) error {
	if p.Kind != MultiElastic {
		return fmt.Errorf("%w: %s property %s has no force-displacement points", sap.ErrContract, p.Kind, p.Name)
	}
	n := len(c.Disp)
	if n != len(c.Force) || n < 3 || n%2 == 0 {
		return fmt.Errorf("%w: property %s %v: need an odd number (>= 3) of paired points, got %d/%d", sap.ErrContract, p.Name, dof, len(c.Disp), len(c.Force))
	}
	for i := 1; i < n; i++ {
		if c.Disp[i] <= c.Disp[i-1] {
			return fmt.Errorf("%w: property %s %v: displacements must increase", sap.ErrContract, p.Name, dof)
		}
	}
	if math.Abs(c.Disp[n/2]) > 1e-12 || math.Abs(c.Force[n/2]) > 1e-12 {
		return fmt.Errorf("%w: property %s %v: curve must pass through the origin", sap.ErrContract, p.Name, dof)
	}
	if p.Curves == nil {
		p.Curves = make(map[sap.DOF]Curve)
	}
	p.Curves[dof] = Curve{Disp: append([]float64(nil), c.Disp...), Force: append([]float64(nil), c.Force...)}
	p.DOF[dof], p.NonLinear[dof], p.Fixed[dof] = true, true, false
	return nil
}

// SetWen makes dof nonlinear with plastic-Wen parameters. An exponent
// below MinExp is raised to MinExp.
func (p *Prop) SetWen(dof sap.DOF, w Wen) error {
	if p.Kind != PlasticWen {
		return fmt.Errorf("%w: %s property %s has no plastic-Wen parameters", sap.ErrContract, p.Kind, p.Name)
	}
	if w.Exp < MinExp {
		w.Exp = MinExp
	}
	if p.Wen == nil {
		p.Wen = make(map[sap.DOF]Wen)
	}
	p.Wen[dof] = w
	p.DOF[dof], p.NonLinear[dof], p.Fixed[dof] = true, true, false
	return nil
}

// NonLinearDOFs returns the nonlinear dofs in ascending order
func (p *Prop) NonLinearDOFs() []sap.DOF { return p.NonLinear.List() }

// Validate checks the set relations between DOF, Fixed and NonLinear
func (p *Prop) Validate() error {
	for i := range p.DOF {
		d := sap.DOF(i)
		if (p.Fixed[i] || p.NonLinear[i]) && !p.DOF[i] {
			return fmt.Errorf("%w: property %s: %v is fixed or nonlinear but not active", sap.ErrContract, p.Name, d)
		}
		if p.Fixed[i] && p.NonLinear[i] {
			return fmt.Errorf("%w: property %s: %v is both fixed and nonlinear", sap.ErrContract, p.Name, d)
		}
		if !p.NonLinear[i] {
			continue
		}
		switch p.Kind {
		case MultiElastic:
			if _, found := p.Curves[d]; !found {
				return fmt.Errorf("%w: property %s: no points for nonlinear %v", sap.ErrDataMissing, p.Name, d)
			}
		case PlasticWen:
			if _, found := p.Wen[d]; !found {
				return fmt.Errorf("%w: property %s: no parameters for nonlinear %v", sap.ErrDataMissing, p.Name, d)
			}
		}
	}
	return nil
}

func (p *Prop) data() sap.LinkPropData {
	return sap.LinkPropData{
		Name:      p.Name,
		DOF:       p.DOF,
		Fixed:     p.Fixed,
		NonLinear: p.NonLinear,
		Ke:        p.Ke,
		Ce:        p.Ce,
		DJ2:       p.DJ2,
		DJ3:       p.DJ3,
		KeCoupled: p.KeCoupled,
		CeCoupled: p.CeCoupled,
		Notes:     p.Notes,
		GUID:      p.GUID,
	}
}

func (p *Prop) wenData() sap.WenData {
	var w sap.WenData
	for d, v := range p.Wen {
		w.K[d], w.Yield[d], w.Ratio[d], w.Exp[d] = v.K, v.Yield, v.Ratio, v.Exp
	}
	return w
}

// fromData rebuilds a property from what the engine reports
func fromData(k Kind, d sap.LinkPropData) *Prop {
	return &Prop{
		Name:      d.Name,
		Kind:      k,
		DOF:       d.DOF,
		Fixed:     d.Fixed,
		NonLinear: d.NonLinear,
		Ke:        d.Ke,
		Ce:        d.Ce,
		KeCoupled: d.KeCoupled,
		CeCoupled: d.CeCoupled,
		DJ2:       d.DJ2,
		DJ3:       d.DJ3,
		Curves:    make(map[sap.DOF]Curve),
		Wen:       make(map[sap.DOF]Wen),
		Notes:     d.Notes,
		GUID:      d.GUID,
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func nearAll(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !near(a[i], b[i]) {
			return false
		}
	}
	return true
}

func allZero(v [6]float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// skeletonDiff lists the linear-skeleton fields where want differs from
// have. A Ce of all zeros on the have side is the engine default and is
// not reported.
func skeletonDiff(have, want *Prop) []string {
	var out []string
	if have.Kind != want.Kind {
		out = append(out, fmt.Sprintf("type %v -> %v", have.Kind, want.Kind))
	}
	if have.DOF != want.DOF {
		out = append(out, fmt.Sprintf("DOF %v -> %v", have.DOF.List(), want.DOF.List()))
	}
	if have.Fixed != want.Fixed {
		out = append(out, fmt.Sprintf("Fixed %v -> %v", have.Fixed.List(), want.Fixed.List()))
	}
	if have.NonLinear != want.NonLinear {
		out = append(out, fmt.Sprintf("NonLinear %v -> %v", have.NonLinear.List(), want.NonLinear.List()))
	}
	if !nearAll(have.Ke[:], want.Ke[:]) {
		out = append(out, fmt.Sprintf("Ke %v -> %v", have.Ke, want.Ke))
	}
	if !allZero(have.Ce) && !nearAll(have.Ce[:], want.Ce[:]) {
		out = append(out, fmt.Sprintf("Ce %v -> %v", have.Ce, want.Ce))
	}
	if !near(have.DJ2, want.DJ2) {
		out = append(out, fmt.Sprintf("dj2 %g -> %g", have.DJ2, want.DJ2))
	}
	if !near(have.DJ3, want.DJ3) {
		out = append(out, fmt.Sprintf("dj3 %g -> %g", have.DJ3, want.DJ3))
	}
	if have.Notes != want.Notes {
		out = append(out, fmt.Sprintf("notes %q -> %q", have.Notes, want.Notes))
	}
	if have.GUID != want.GUID {
		out = append(out, fmt.Sprintf("GUID %s -> %s", have.GUID, want.GUID))
	}
	return out
}

// nonlinearDiff lists the per-dof nonlinear parameters that differ
func nonlinearDiff(have, want *Prop) []string {
	var out []string
	for _, d := range want.NonLinearDOFs() {
		switch want.Kind {
		case MultiElastic:
			h, w := have.Curves[d], want.Curves[d]
			if !nearAll(h.Disp, w.Disp) || !nearAll(h.Force, w.Force) {
				out = append(out, fmt.Sprintf("%v points %v/%v -> %v/%v", d, h.Disp, h.Force, w.Disp, w.Force))
			}
		case PlasticWen:
			h, w := have.Wen[d], want.Wen[d]
			if !near(h.K, w.K) || !near(h.Yield, w.Yield) || !near(h.Ratio, w.Ratio) || !near(h.Exp, w.Exp) {
				out = append(out, fmt.Sprintf("%v wen %+v -> %+v", d, h, w))
			}
		}
	}
	return out
}

// Diff lists every field where want differs from have
func Diff(have, want *Prop) []string {
	out := skeletonDiff(have, want)
	return append(out, nonlinearDiff(have, want)...)
}
