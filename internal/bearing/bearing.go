// Package bearing implements bearing links, their property variants and
// the dead-load driven calibration that promotes ideal linear bearings to
// nonlinear ones.
package bearing

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Bearing is a two-node link between a pier pad and a girder bearing top
type Bearing struct {
	Name string
	I    string // bottom (pad)
	J    string // top (girder side)
	Prop *Prop
}

// New creates a bearing referencing p; nothing is emitted yet
func New(name, i, j string, p *Prop) *Bearing {
	return &Bearing{Name: name, I: i, J: j, Prop: p}
}

// links returns the engine links joining the two endpoints in either order
func (b *Bearing) links(m *sap.Model) ([]string, error) {
	eng := m.Engine()
	conns, ret := eng.PointConnectivity(b.I)
	if err := m.Check("PointObj.GetConnectivity", ret); err != nil {
		return nil, err
	}
	var out []string
	for _, c := range conns {
		if c.Kind != sap.ObjLink {
			continue
		}
		i, j, ret := eng.LinkPoints(c.Name)
		if ret != 0 {
			continue
		}
		if (i == b.I && j == b.J) || (i == b.J && j == b.I) {
			out = append(out, c.Name)
		}
	}
	return out, nil
}

// Add emits the link. The property is emitted first unless the engine
// already holds the same values, and any link already joining the two
// endpoints is deleted.
func (b *Bearing) Add(reg *Registry) error {
	m := reg.Model()
	if err := reg.Sync(b.Prop); err != nil {
		return err
	}
	old, err := b.links(m)
	if err != nil {
		return m.Report(reg.log, err)
	}
	for _, name := range old {
		m.Log.Tracef("replacing link %s between %s and %s", name, b.I, b.J)
		if err := m.Check("LinkObj.Delete", m.Engine().DeleteLink(name)); err != nil {
			return m.Report(reg.log, err)
		}
	}
	got, ret := m.Engine().AddLink(b.I, b.J, b.Prop.Name, b.Name)
	if err := m.Check("LinkObj.AddByPoint", ret); err != nil {
		return m.Report(reg.log, fmt.Errorf("link %s (%s -> %s): %w", b.Name, b.I, b.J, err))
	}
	if got != b.Name {
		m.Log.Warnf("link %s was named %s by the engine", b.Name, got)
		b.Name = got
	}
	return nil
}

// Emit writes the current property through reg and re-adds the link
func (b *Bearing) Emit(reg *Registry) error {
	if err := reg.Emit(b.Prop); err != nil {
		return err
	}
	return b.Add(reg)
}

// DeadLoadAxial returns the largest absolute axial force of the link under
// the dead-load case. An unlocked model is analysed first.
func (b *Bearing) DeadLoadAxial(m *sap.Model) (float64, error) {
	if err := m.EnsureAnalyzed(); err != nil {
		return 0, m.Report(nil, err)
	}
	if err := m.SelectOnly(m.DeadCase); err != nil {
		return 0, m.Report(nil, err)
	}
	rows, ret := m.Engine().LinkForce(b.Name, sap.ObjectElm)
	if err := m.Check("Results.LinkForce", ret); err != nil {
		return 0, m.Report(nil, fmt.Errorf("link %s: %w", b.Name, err))
	}
	if len(rows) == 0 {
		return 0, m.Report(nil, fmt.Errorf("%w: no %s force for link %s", sap.ErrDataMissing, m.DeadCase, b.Name))
	}
	n := 0.0
	for _, r := range rows {
		n = math.Max(n, math.Abs(r.P))
	}
	return n, nil
}
