// Package girder assembles a multi-span box girder over an ordered list of
// piers, including the bearings that carry it.
package girder

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/alexiusacademia/gobridge/internal/bearing"
	"github.com/alexiusacademia/gobridge/internal/frame"
	"github.com/alexiusacademia/gobridge/internal/logger"
	"github.com/alexiusacademia/gobridge/internal/material"
	"github.com/alexiusacademia/gobridge/internal/pier"
	"github.com/alexiusacademia/gobridge/internal/point"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/section"
)

// Defaults
const (
	DefaultElements     = 8
	DefaultPadThickness = 0.3  // m
	DefaultSpan         = 90.0 // m, single-pier models only
)

// Pair holds the inner and outer bearing of one pier side
type Pair struct {
	Inner *bearing.Bearing
	Outer *bearing.Bearing
}

// Girder is a continuous girder over Piers. Each side of the twin-leg piers
// carries its own girder line.
type Girder struct {
	Name            string
	Piers           []*pier.Pier
	FixedPiers      []string
	Plan            Plan
	ElementsPerSpan int
	PadThickness    float64
	Depth           float64 // over-pier depth; 0 takes the plan depth
	DefaultSpan     float64
	SpanCount       int // spans represented by a single-pier model
	Coupling        pier.Coupling

	Frames []*frame.Frame

	m        *sap.Model
	cat      *section.Catalog
	reg      *bearing.Registry
	log      *logger.Logger
	nodes    map[string]*point.Node
	bearings map[string]map[pier.Side]*Pair
	order    []*bearing.Bearing
	groupOf  map[*bearing.Bearing]string
}

// New creates an unbuilt girder with default counts
func New(name string, piers []*pier.Pier, fixed []string, plan Plan) *Girder {
	return &Girder{
		Name:            name,
		Piers:           piers,
		FixedPiers:      fixed,
		Plan:            plan,
		ElementsPerSpan: DefaultElements,
		PadThickness:    DefaultPadThickness,
		DefaultSpan:     DefaultSpan,
		SpanCount:       1,
		Coupling:        pier.DefaultCoupling,
	}
}

// NodeOverPier is the girder node of one side above a pier
func (g *Girder) NodeOverPier(s pier.Side, pierName string) string {
	return fmt.Sprintf("%s_%s_%s", g.Name, s, pierName)
}

// SpanNode is interior node k (1-based) of span s (1-based)
func (g *Girder) SpanNode(s pier.Side, span, k int) string {
	return fmt.Sprintf("%s_%s_S%d_%d", g.Name, s, span, k)
}

// SpanFrame is element k (1-based) of span s (1-based)
func (g *Girder) SpanFrame(s pier.Side, span, k int) string {
	return fmt.Sprintf("%s_%s_S%d_E%d", g.Name, s, span, k)
}

// BearingName is the link name of the bearing on a pad
func (g *Girder) BearingName(p *pier.Pier, pad pier.Pad) string {
	return fmt.Sprintf("%s_%s_%s_%s", g.Name, p.Name, pad.Side, pad.Role)
}

// BearingTopName is the girder-side node of the bearing on a pad
func (g *Girder) BearingTopName(p *pier.Pier, pad pier.Pad) string {
	return fmt.Sprintf("%s_%s_%s_BearingTop_%s", g.Name, p.Name, pad.Side, pad.Role)
}

func (g *Girder) depth() float64 {
	if g.Depth > 0 {
		return g.Depth
	}
	return g.Plan.Depth()
}

// axisZ is the elevation of the girder axis above a pier
func (g *Girder) axisZ(p *pier.Pier) float64 {
	top := p.TopZ() + g.PadThickness
	if g.Plan.Variable() {
		return top + g.depth() // top-center cardinal point
	}
	return top + g.depth()/2
}

// endX is the girder node x above pier i of the sorted list: intermediate
// end piers shift towards the span interior
func (g *Girder) endX(i int) float64 {
	p := g.Piers[i]
	if !p.Intermediate {
		return p.Station
	}
	if i == 0 && len(g.Piers) > 1 {
		return p.Station + p.Geometry.Offset
	}
	return p.Station - p.Geometry.Offset
}

func (g *Girder) isFixed(name string) bool { return sap.Contains(g.FixedPiers, name) }

// validate sorts the piers and checks the ordering rules
func (g *Girder) validate() error {
	if len(g.Piers) == 0 {
		return fmt.Errorf("%w: girder %s has no piers", sap.ErrContract, g.Name)
	}
	if g.Plan < PlanI || g.Plan > PlanIII {
		return fmt.Errorf("%w: girder %s: unknown plan %v", sap.ErrContract, g.Name, g.Plan)
	}
	if g.ElementsPerSpan < 1 {
		return fmt.Errorf("%w: girder %s: elements per span must be at least 1", sap.ErrContract, g.Name)
	}
	piers := append([]*pier.Pier(nil), g.Piers...)
	sort.SliceStable(piers, func(i, j int) bool { return piers[i].Station < piers[j].Station })
	g.Piers = piers
	for i, p := range piers {
		if !p.Built() {
			return fmt.Errorf("%w: girder %s: pier %s is not built", sap.ErrContract, g.Name, p.Name)
		}
		if i > 0 && p.Station-piers[i-1].Station <= point.Tolerance {
			return fmt.Errorf("%w: girder %s: piers %s and %s share station %g", sap.ErrContract, g.Name, piers[i-1].Name, p.Name, p.Station)
		}
		if len(piers) == 1 {
			continue
		}
		end := i == 0 || i == len(piers)-1
		if end && !p.Intermediate {
			return fmt.Errorf("%w: girder %s: end pier %s must be intermediate", sap.ErrContract, g.Name, p.Name)
		}
		if !end && p.Intermediate {
			return fmt.Errorf("%w: girder %s: intermediate pier %s inside the girder", sap.ErrContract, g.Name, p.Name)
		}
	}
	for _, f := range g.FixedPiers {
		found := false
		for _, p := range piers {
			found = found || p.Name == f
		}
		if !found {
			g.log.Warnf("fixed pier %s is not carried by this girder", f)
		}
	}
	return nil
}

// Build emits sections, nodes, span frames, line masses, bearing tops,
// rigid coupling and ideal bearings. Ordering problems abort the girder;
// later failures are collected.
func (g *Girder) Build(cat *section.Catalog, reg *bearing.Registry) error {
	g.m, g.cat, g.reg = cat.Model(), cat, reg
	g.log = g.m.Log.With(g.Name)
	g.nodes = make(map[string]*point.Node)
	g.bearings = make(map[string]map[pier.Side]*Pair)
	g.groupOf = make(map[*bearing.Bearing]string)
	g.order, g.Frames = nil, nil
	m := g.m

	if err := g.validate(); err != nil {
		return m.Report(g.log, err)
	}
	for _, s := range g.Plan.Prismatic() {
		if err := cat.Define(s); err != nil {
			return err
		}
	}

	var errs []error
	for i, p := range g.Piers {
		for _, s := range pier.Sides {
			errs = append(errs, g.overPier(i, p, s))
		}
	}
	if len(g.Piers) == 1 {
		errs = append(errs, g.lumped(g.Piers[0]))
	} else {
		for span := 1; span < len(g.Piers); span++ {
			for _, s := range pier.Sides {
				errs = append(errs, g.span(span, s))
			}
		}
	}

	var names []string
	for _, f := range g.Frames {
		names = append(names, f.Name)
	}
	errs = append(errs, m.Report(g.log, m.Group(g.Name, sap.ObjFrame, names...)))

	err := errors.Join(errs...)
	if err == nil {
		g.log.Tracef("%d frames, %d bearings", len(g.Frames), len(g.order))
	}
	return err
}

// overPier creates the girder node above pier i on side s, the bearing
// tops under it, their coupling and the ideal bearings
func (g *Girder) overPier(i int, p *pier.Pier, s pier.Side) error {
	x := g.endX(i)
	top, err := g.add(g.NodeOverPier(s, p.Name), x, p.SideY(s), g.axisZ(p))
	if err != nil {
		return err
	}
	pads := p.PadsAt(s, x)
	if len(pads) == 0 {
		return g.m.Report(g.log, fmt.Errorf("%w: pier %s has no %s pads at x = %g", sap.ErrDataMissing, p.Name, s, x))
	}

	var (
		errs           []error
		tops, rigidFor []string
		pair           = &Pair{}
	)
	innerT, outerT := bearing.InnerOuter(g.isFixed(p.Name))
	for _, pad := range pads {
		bt, err := g.add(g.BearingTopName(p, pad), pad.X, pad.Y, pad.Z+g.PadThickness)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tops = append(tops, bt.Name)
		rigidFor = append(rigidFor, fmt.Sprintf("%s_%s_%s_Rigid_%s", g.Name, p.Name, s, pad.Role))

		template := outerT
		if pad.Inner {
			template = innerT
		}
		prop, err := g.reg.Ideal(template)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b := bearing.New(g.BearingName(p, pad), pad.Name, bt.Name, prop)
		if err := g.addBearing(p.Name, b); err != nil {
			errs = append(errs, err)
			continue
		}
		if pad.Inner {
			pair.Inner = b
		} else {
			pair.Outer = b
		}
	}
	if g.bearings[p.Name] == nil {
		g.bearings[p.Name] = make(map[pier.Side]*Pair)
	}
	g.bearings[p.Name][s] = pair

	fs, err := pier.Couple(g.m, g.cat, g.Coupling, fmt.Sprintf("%s_%s_%s", g.Name, p.Name, s), top.Name, tops, rigidFor)
	g.Frames = append(g.Frames, fs...)
	errs = append(errs, err)
	return errors.Join(errs...)
}

// addBearing adds the link and puts it in the per-pier and per-girder
// bearing groups
func (g *Girder) addBearing(pierName string, b *bearing.Bearing) error {
	if err := b.Add(g.reg); err != nil {
		return err
	}
	if _, seen := g.groupOf[b]; !seen {
		g.order = append(g.order, b)
	}
	g.groupOf[b] = pierName
	return g.groupBearing(pierName, b)
}

func (g *Girder) groupBearing(pierName string, b *bearing.Bearing) error {
	m := g.m
	return m.Report(g.log, errors.Join(
		m.Group(pierName+"_Bearings", sap.ObjLink, b.Name),
		m.Group(g.Name+"_Bearings", sap.ObjLink, b.Name),
	))
}

func (g *Girder) add(name string, x, y, z float64) (*point.Node, error) {
	n, err := point.Add(g.m, name, x, y, z)
	if err != nil {
		return nil, err
	}
	g.nodes[n.Name] = n
	return n, nil
}

// span emits the interior nodes and elements of span (1-based) on side s
func (g *Girder) span(span int, s pier.Side) error {
	a, b := g.Piers[span-1], g.Piers[span]
	start, sok := g.nodes[g.NodeOverPier(s, a.Name)]
	end, eok := g.nodes[g.NodeOverPier(s, b.Name)]
	if !sok || !eok {
		return fmt.Errorf("girder %s: span %d on %s side has no end node", g.Name, span, s)
	}

	sectionName := g.Plan.Prismatic()[0].Name
	variable := false
	if g.Plan.Variable() {
		sectionName = MidBox
		if v := varying(a.Intermediate, b.Intermediate); v != nil {
			if err := g.cat.Define(v); err != nil {
				return err
			}
			sectionName, variable = v.Name, true
		}
	}

	n := g.ElementsPerSpan
	chain := []*point.Node{start}
	for k := 1; k < n; k++ {
		t := float64(k) / float64(n)
		node, err := g.add(g.SpanNode(s, span, k),
			start.X+t*(end.X-start.X), start.Y+t*(end.Y-start.Y), start.Z+t*(end.Z-start.Z))
		if err != nil {
			return err
		}
		chain = append(chain, node)
	}
	chain = append(chain, end)

	q1, q2 := g.Plan.Loads()
	length := end.X - start.X
	var errs []error
	for k := 1; k <= n; k++ {
		i, j := chain[k-1], chain[k]
		f, err := frame.Define(g.m, i.Name, j.Name, sectionName, g.SpanFrame(s, span, k))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		g.Frames = append(g.Frames, f)
		errs = append(errs,
			f.AddLineMass(q1/material.Gravity, true),
			f.AddLineMass(q2/material.Gravity, false),
		)
		if g.Plan.Variable() {
			if variable {
				errs = append(errs, f.SetVariablePlacement(length, (i.X-start.X)/length))
			}
			errs = append(errs, f.SetCardinal(sap.TopCenter))
		}
	}
	return errors.Join(errs...)
}

// lumped replaces the spans of a single-pier model by lumped masses on the
// girder nodes, restrained about y and z
func (g *Girder) lumped(p *pier.Pier) error {
	q1, q2 := g.Plan.Loads()
	w := (q1 + q2) * g.DefaultSpan / material.Gravity
	count := g.SpanCount
	if count < 1 {
		count = 1
	}
	var errs []error
	for _, s := range pier.Sides {
		n, found := g.nodes[g.NodeOverPier(s, p.Name)]
		if !found {
			continue
		}
		errs = append(errs,
			n.SetMasses([]float64{w * float64(count), w, w}, sap.Ux, sap.Uy, sap.Uz),
			n.Fix(sap.Ry, sap.Rz),
		)
	}
	return errors.Join(errs...)
}

// Bearings returns every bearing of the girder in creation order
func (g *Girder) Bearings() []*bearing.Bearing {
	return append([]*bearing.Bearing(nil), g.order...)
}

// Pair returns the inner and outer bearing of one pier side
func (g *Girder) Pair(pierName string, s pier.Side) (*Pair, bool) {
	sides, found := g.bearings[pierName]
	if !found {
		return nil, false
	}
	p, found := sides[s]
	return p, found
}

// UpdateLinkParameters promotes every bearing to kind using the dead-load
// calibration. Only the registry changes; call UpdateLinksInEngine next.
func (g *Girder) UpdateLinkParameters(kind bearing.Kind, o bearing.Options) error {
	if kind != bearing.MultiElastic && kind != bearing.PlasticWen {
		return fmt.Errorf("%w: girder %s: cannot update bearings to %v", sap.ErrUnsupported, g.Name, kind)
	}
	var errs []error
	for _, b := range g.order {
		errs = append(errs, b.Upgrade(g.reg, kind, o))
	}
	return errors.Join(errs...)
}

// UpdateLinksInEngine unlocks the model, emits every bearing property and
// re-adds the links, replacing the previous ones
func (g *Girder) UpdateLinksInEngine() error {
	if err := g.m.Unlock(); err != nil {
		return g.m.Report(g.log, err)
	}
	var errs []error
	for _, b := range g.order {
		if err := b.Emit(g.reg); err != nil {
			errs = append(errs, err)
			continue
		}
		errs = append(errs, g.groupBearing(g.groupOf[b], b))
	}
	return errors.Join(errs...)
}

// Length is the girder length between the end nodes
func (g *Girder) Length() float64 {
	if len(g.Piers) < 2 {
		return 0
	}
	return math.Abs(g.endX(len(g.Piers)-1) - g.endX(0))
}
