package bearing

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gobridge/internal/logger"
	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Registry owns the link properties of one model, one instance per name.
// It is the source of truth: emission rewrites whatever the engine holds.
type Registry struct {
	m     *sap.Model
	log   *logger.Logger
	props map[string]*Prop
}

// NewRegistry creates an empty registry bound to a model
func NewRegistry(m *sap.Model) *Registry {
	return &Registry{m: m, log: m.Log.With("links"), props: make(map[string]*Prop)}
}

// Model returns the model the registry emits into
func (r *Registry) Model() *sap.Model { return r.m }

// Get returns the property registered under name
func (r *Registry) Get(name string) (*Prop, bool) {
	p, found := r.props[name]
	return p, found
}

// Names returns the registered names in order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.props))
	for n := range r.props {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Register stores p under its name. A different instance already held
// under that name is replaced and the differing fields are reported.
func (r *Registry) Register(p *Prop) *Prop {
	old, found := r.props[p.Name]
	if found && old != p {
		for _, d := range Diff(old, p) {
			r.log.Warnf("property %s updated: %s", p.Name, d)
		}
	}
	r.props[p.Name] = p
	return p
}

// Ideal returns the registered ideal template called name, registering a
// fresh one the first time
func (r *Registry) Ideal(name string) (*Prop, error) {
	if p, found := r.props[name]; found {
		return p, nil
	}
	p, err := Ideal(name)
	if err != nil {
		return nil, err
	}
	return r.Register(p), nil
}

// Defined reports whether the engine knows a property called name
func (r *Registry) Defined(name string) bool {
	_, ret := r.m.Engine().LinkPropType(name)
	return ret == 0
}

// engineProp reads the engine-side definition of name
func (r *Registry) engineProp(name string) (*Prop, bool) {
	eng := r.m.Engine()
	kind, ret := eng.LinkPropType(name)
	if ret != 0 {
		return nil, false
	}
	switch kind {
	case sap.LinkMultiElastic:
		d, ret := eng.MultiElasticProp(name)
		if ret != 0 {
			return nil, false
		}
		p := fromData(MultiElastic, d)
		for _, dof := range d.NonLinear.List() {
			disp, force, ret := eng.MultiLinearPoints(name, dof)
			if ret == 0 {
				p.Curves[dof] = Curve{Disp: disp, Force: force}
			}
		}
		return p, true
	case sap.LinkPlasticWen:
		d, w, ret := eng.PlasticWenProp(name)
		if ret != 0 {
			return nil, false
		}
		p := fromData(PlasticWen, d)
		for _, dof := range d.NonLinear.List() {
			p.Wen[dof] = Wen{K: w.K[dof], Yield: w.Yield[dof], Ratio: w.Ratio[dof], Exp: w.Exp[dof]}
		}
		return p, true
	}
	d, ret := eng.LinearProp(name)
	if ret != 0 {
		return nil, false
	}
	return fromData(Linear, d), true
}

// Emit registers p and writes it to the engine under KN_m_C. An existing
// engine definition is compared field by field; each difference is
// reported before the registry values overwrite it. Nonlinear parameters
// are written again even when the linear skeleton already matches.
func (r *Registry) Emit(p *Prop) error {
	if err := p.Validate(); err != nil {
		return r.m.Report(r.log, err)
	}
	r.Register(p)
	err := r.m.WithUnits(sap.KNmC, func() error {
		have, found := r.engineProp(p.Name)
		if !found {
			return r.emit(p, true)
		}
		skeleton := skeletonDiff(have, p)
		for _, d := range append(skeleton, nonlinearDiff(have, p)...) {
			r.log.Warnf("property %s differs from the model: %s", p.Name, d)
		}
		if len(skeleton) > 0 {
			return r.emit(p, true)
		}
		return r.emit(p, false)
	})
	return r.m.Report(r.log, err)
}

// Sync registers p and emits it unless the engine already holds the same
// values under its name
func (r *Registry) Sync(p *Prop) error {
	if !r.Defined(p.Name) {
		return r.Emit(p)
	}
	var (
		have  *Prop
		found bool
	)
	err := r.m.WithUnits(sap.KNmC, func() error {
		have, found = r.engineProp(p.Name)
		return nil
	})
	if err != nil {
		return r.m.Report(r.log, err)
	}
	if found && len(Diff(have, p)) == 0 {
		r.Register(p)
		return nil
	}
	return r.Emit(p)
}

// emit writes p. Without skeleton only the nonlinear part is written.
func (r *Registry) emit(p *Prop, skeleton bool) error {
	eng := r.m.Engine()
	switch p.Kind {
	case Linear:
		if !skeleton {
			return nil
		}
		return r.m.Check("PropLink.SetLinear", eng.SetLinearProp(p.data()))
	case MultiElastic:
		if skeleton {
			if err := r.m.Check("PropLink.SetMultiLinearElastic", eng.SetMultiElasticProp(p.data())); err != nil {
				return err
			}
		}
		for _, d := range p.NonLinearDOFs() {
			c := p.Curves[d]
			if err := r.m.Check("PropLink.SetMultiLinearPoints", eng.SetMultiLinearPoints(p.Name, d, c.Disp, c.Force, Hysteresis)); err != nil {
				return fmt.Errorf("property %s %v: %w", p.Name, d, err)
			}
		}
		return nil
	case PlasticWen:
		return r.m.Check("PropLink.SetPlasticWen", eng.SetPlasticWenProp(p.data(), p.wenData()))
	}
	return fmt.Errorf("%w: property %s kind %v", sap.ErrUnsupported, p.Name, p.Kind)
}
