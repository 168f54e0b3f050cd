package bearing

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Calibration defaults
const (
	DefaultMu            = 0.02
	DefaultDy            = 0.0025 // m
	DefaultDu            = 1.0    // m
	DefaultKeRatio       = 0.1
	DefaultFreeThreshold = 10.0 // kN/m
)

// Options drive the yield calibration. Zero values take the defaults.
type Options struct {
	Mu float64 // friction coefficient
	Dy float64 // yield displacement
	Du float64 // ultimate displacement (multi-linear plateau end)

	// plastic-Wen post-yield behaviour: Ratio wins over PostStiffness;
	// with neither the bearing is elasto-plastic
	Ratio         *float64
	PostStiffness *float64
	Exp           float64
	KeRatio       float64
	Ce            *float64

	// only horizontal dofs whose Ke is at most FreeThreshold are calibrated,
	// unless FrictionPendulum asks for both U2 and U3
	FreeThreshold    float64
	FrictionPendulum bool

	// Axial replaces the dead-load lookup
	Axial *float64
}

// DefaultOptions returns the calibration defaults
func DefaultOptions() Options { return Options{}.withDefaults() }

func (o Options) withDefaults() Options {
	if o.Mu == 0 {
		o.Mu = DefaultMu
	}
	if o.Dy == 0 {
		o.Dy = DefaultDy
	}
	if o.Du == 0 {
		o.Du = DefaultDu
	}
	if o.Exp == 0 {
		o.Exp = MinExp
	}
	if o.KeRatio == 0 {
		o.KeRatio = DefaultKeRatio
	}
	if o.FreeThreshold == 0 {
		o.FreeThreshold = DefaultFreeThreshold
	}
	return o
}

// Float returns a pointer to v, for the optional fields of Options
func Float(v float64) *float64 { return &v }

// Targets returns the dofs a calibration rewrites. A calibrated property
// carries a raised Ke, so its nonlinear dofs are recalibrated instead.
func (b *Bearing) Targets(o Options) []sap.DOF {
	o = o.withDefaults()
	var out []sap.DOF
	for _, d := range []sap.DOF{sap.U2, sap.U3} {
		switch {
		case o.FrictionPendulum:
		case b.Prop.Kind != Linear:
			if !b.Prop.NonLinear[d] {
				continue
			}
		case b.Prop.Ke[d] > o.FreeThreshold:
			continue
		}
		out = append(out, d)
	}
	return out
}

func (b *Bearing) targets(m *sap.Model, o Options) []sap.DOF {
	ds := b.Targets(o)
	if len(ds) == 0 {
		m.Log.Warnf("bearing %s: no free horizontal dof, property %s stays linear", b.Name, b.Prop.Name)
	}
	return ds
}

// YieldForce is the friction force N * mu of the bearing
func (b *Bearing) YieldForce(m *sap.Model, o Options) (float64, error) {
	o = o.withDefaults()
	var n float64
	if o.Axial != nil {
		n = *o.Axial
	} else {
		var err error
		if n, err = b.DeadLoadAxial(m); err != nil {
			return 0, err
		}
	}
	if n == 0 {
		m.Log.Warnf("bearing %s carries no dead load, yield force is zero", b.Name)
	}
	if n < 0 {
		n = -n
	}
	return n * o.Mu, nil
}

// ToMultiElastic derives `<bearing>_MultiElastic` with the five-point
// symmetric ideal-bilinear curve (+-du, +-dy, 0) on every target dof
func (b *Bearing) ToMultiElastic(m *sap.Model, o Options) (*Prop, error) {
	o = o.withDefaults()
	if o.Dy <= 0 || o.Du <= o.Dy {
		return nil, m.Report(nil, fmt.Errorf("%w: bearing %s: need 0 < dy < du, got dy=%g du=%g", sap.ErrContract, b.Name, o.Dy, o.Du))
	}
	fy, err := b.YieldForce(m, o)
	if err != nil {
		return nil, err
	}
	p := b.Prop.Derive(b.Name+"_"+MultiElastic.String(), MultiElastic)
	c := Curve{
		Disp:  []float64{-o.Du, -o.Dy, 0, o.Dy, o.Du},
		Force: []float64{-fy, -fy, 0, fy, fy},
	}
	for _, d := range b.targets(m, o) {
		if err := p.SetCurve(d, c); err != nil {
			return nil, m.Report(nil, err)
		}
	}
	return p, nil
}

// ToPlasticWen derives `<bearing>_PlasticWen` with k = Fy/dy on every
// target dof. Ke becomes k * KeRatio.
func (b *Bearing) ToPlasticWen(m *sap.Model, o Options) (*Prop, error) {
	o = o.withDefaults()
	if o.Dy <= 0 {
		return nil, m.Report(nil, fmt.Errorf("%w: bearing %s: yield displacement must be positive", sap.ErrContract, b.Name))
	}
	fy, err := b.YieldForce(m, o)
	if err != nil {
		return nil, err
	}
	k := fy / o.Dy
	var ratio float64
	switch {
	case o.Ratio != nil:
		ratio = *o.Ratio
	case o.PostStiffness != nil && k > 0:
		ratio = *o.PostStiffness / k
	default:
		m.Log.Warnf("bearing %s: neither post-yield ratio nor post stiffness given, using elasto-plastic", b.Name)
	}

	p := b.Prop.Derive(b.Name+"_"+PlasticWen.String(), PlasticWen)
	for _, d := range b.targets(m, o) {
		if err := p.SetWen(d, Wen{K: k, Yield: fy, Ratio: ratio, Exp: o.Exp}); err != nil {
			return nil, m.Report(nil, err)
		}
		p.Ke[d] = k * o.KeRatio
		if o.Ce != nil {
			p.Ce[d] = *o.Ce
		}
	}
	return p, nil
}

// Upgrade calibrates the bearing to kind and swaps its property for the
// registered result. Nothing is written to the engine.
func (b *Bearing) Upgrade(reg *Registry, kind Kind, o Options) error {
	var (
		p   *Prop
		err error
	)
	switch kind {
	case MultiElastic:
		p, err = b.ToMultiElastic(reg.Model(), o)
	case PlasticWen:
		p, err = b.ToPlasticWen(reg.Model(), o)
	default:
		return fmt.Errorf("%w: cannot upgrade bearing %s to %v", sap.ErrUnsupported, b.Name, kind)
	}
	if err != nil {
		return err
	}
	b.Prop = reg.Register(p)
	return nil
}

// Backbone samples the bilinear envelope of w on [-du, du]
func (w Wen) Backbone(du float64) Curve {
	dy := 0.0
	if w.K > 0 {
		dy = w.Yield / w.K
	}
	force := func(d float64) float64 {
		if d <= dy {
			return w.K * d
		}
		return w.Yield + w.Ratio*w.K*(d-dy)
	}
	if du <= dy {
		du = 2 * dy
	}
	return Curve{
		Disp:  []float64{-du, -dy, 0, dy, du},
		Force: []float64{-force(du), -w.Yield, 0, w.Yield, force(du)},
	}
}
