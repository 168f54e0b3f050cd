// Package bridge turns a bridge description into piers and girders and runs
// the two-phase bearing workflow over all of them.
package bridge

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/base"
	"github.com/alexiusacademia/gobridge/internal/bearing"
	"github.com/alexiusacademia/gobridge/internal/girder"
	"github.com/alexiusacademia/gobridge/internal/logger"
	"github.com/alexiusacademia/gobridge/internal/pier"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/section"
)

// Bridge holds the assemblies of one description
type Bridge struct {
	Desc     *Description
	Model    *sap.Model
	Catalog  *section.Catalog
	Registry *bearing.Registry
	Piers    []*pier.Pier
	Girders  []*girder.Girder

	// Springs replaces SpringFile when set
	Springs *base.SpringTable

	coupling pier.Coupling
	piers    map[string]*pier.Pier
	log      *logger.Logger
}

// New binds a description to a model
func New(m *sap.Model, d *Description) *Bridge {
	return &Bridge{
		Desc:     d,
		Model:    m,
		Catalog:  section.NewCatalog(m),
		Registry: bearing.NewRegistry(m),
		piers:    make(map[string]*pier.Pier),
		log:      m.Log.With("bridge"),
	}
}

// Pier returns a built pier by name
func (b *Bridge) Pier(name string) (*pier.Pier, bool) {
	p, found := b.piers[name]
	return p, found
}

// Girder returns a girder by name
func (b *Bridge) Girder(name string) (*girder.Girder, bool) {
	for _, g := range b.Girders {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

func (b *Bridge) base(ps PierSpec) (*base.Base, error) {
	if ps.Base.Kind != BaseSpring {
		return base.NewFixed(), nil
	}
	key := ps.Base.Key
	if key == "" {
		key = ps.Name
	}
	if b.Springs == nil {
		t, err := base.LoadSpringTable(b.Desc.SpringFile)
		if err != nil {
			return nil, b.Model.Report(b.log, fmt.Errorf("%w: spring file: %v", sap.ErrDataMissing, err))
		}
		b.Springs = t
	}
	return base.NewSpringFromTable(b.Springs, key), nil
}

// Build emits every pier, then every girder. A failing pier is skipped and
// girders resting on it fail their ordering check.
func (b *Bridge) Build() error {
	if err := b.Desc.Validate(); err != nil {
		return err
	}
	c, err := pier.ParseCoupling(b.Desc.Coupling)
	if err != nil {
		return err
	}
	b.coupling = c

	var errs []error
	for _, ps := range b.Desc.Piers {
		g := pier.DefaultGeometry()
		if ps.Geometry != nil {
			g = *ps.Geometry
		}
		p := pier.New(ps.Name, ps.Station, g, ps.Intermediate)
		p.Coupling = c
		bs, err := b.base(ps)
		if err != nil {
			errs = append(errs, err)
		} else {
			p.ConnectWithBase(bs)
		}
		errs = append(errs, p.Build(b.Catalog))
		b.Piers = append(b.Piers, p)
		b.piers[p.Name] = p
	}

	for _, gs := range b.Desc.Girders {
		var ps []*pier.Pier
		for _, name := range gs.Piers {
			ps = append(ps, b.piers[name])
		}
		g := girder.New(gs.Name, ps, gs.Fixed, gs.Plan)
		g.Coupling = c
		if gs.Elements > 0 {
			g.ElementsPerSpan = gs.Elements
		}
		if gs.PadThickness > 0 {
			g.PadThickness = gs.PadThickness
		}
		if gs.SpanCount > 0 {
			g.SpanCount = gs.SpanCount
		}
		g.Depth = gs.Depth
		errs = append(errs, g.Build(b.Catalog, b.Registry))
		b.Girders = append(b.Girders, g)
	}

	err = errors.Join(errs...)
	if err == nil {
		b.log.Successf("%d piers, %d girders", len(b.Piers), len(b.Girders))
	} else {
		b.log.Warnf("bridge built with errors")
	}
	return err
}

// Calibrate runs both phases of the bearing update: every girder computes
// its calibrated properties, then the model is unlocked once and every link
// is emitted again
func (b *Bridge) Calibrate(kind bearing.Kind, o bearing.Options) error {
	var errs []error
	for _, g := range b.Girders {
		if err := g.UpdateLinkParameters(kind, o); err != nil {
			if errors.Is(err, sap.ErrUnsupported) {
				return err
			}
			errs = append(errs, err)
		}
	}
	for _, g := range b.Girders {
		errs = append(errs, g.UpdateLinksInEngine())
	}
	return errors.Join(errs...)
}

// Bearings returns the bearings of every girder
func (b *Bridge) Bearings() []*bearing.Bearing {
	var out []*bearing.Bearing
	for _, g := range b.Girders {
		out = append(out, g.Bearings()...)
	}
	return out
}
