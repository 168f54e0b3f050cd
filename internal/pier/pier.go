package pier

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gobridge/internal/base"
	"github.com/alexiusacademia/gobridge/internal/frame"
	"github.com/alexiusacademia/gobridge/internal/material"
	"github.com/alexiusacademia/gobridge/internal/point"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/section"
)

// Pad is a bearing-bottom node on a pier top
type Pad struct {
	Name  string
	Role  string // inner, outer, inner_1, inner_2, outer_1, outer_2
	Side  Side
	Inner bool
	Index int // 0 on ordinary piers, 1 (x = station - offset) or 2 (x = station + offset)
	X     float64
	Y     float64
	Z     float64
}

// Pier is a double-box hollow twin-leg pier with an optional cap block
type Pier struct {
	Name         string
	Station      float64
	Geometry     Geometry
	Intermediate bool // end pier of a girder: doubled pads offset in x
	Coupling     Coupling
	Base         *base.Base

	Frames []*frame.Frame

	m     *sap.Model
	nodes map[string]*point.Node
	legs  map[Side][]*point.Node
	pads  map[Side][]Pad
	built bool
}

// New creates an unbuilt pier
func New(name string, station float64, g Geometry, intermediate bool) *Pier {
	return &Pier{
		Name:         name,
		Station:      station,
		Geometry:     g,
		Intermediate: intermediate,
		Coupling:     DefaultCoupling,
		nodes:        make(map[string]*point.Node),
		legs:         make(map[Side][]*point.Node),
		pads:         make(map[Side][]Pad),
	}
}

// NodeName returns the name of a central node (Base, Cap, CapTop)
func (p *Pier) NodeName(role string) string { return p.Name + "_" + role }

// LegNodeName returns the name of a per-side node
func (p *Pier) LegNodeName(s Side, role string) string {
	return fmt.Sprintf("%s_%s_%s", p.Name, s, role)
}

// PadName returns the name of a bearing-bottom node
func (p *Pier) PadName(s Side, role string) string {
	return p.LegNodeName(s, "BearingBottom_"+role)
}

// PadRoles lists the pad roles of one side: inner and outer, each doubled
// with suffixes _1 and _2 on intermediate piers
func (p *Pier) PadRoles() []string {
	if p.Intermediate {
		return []string{"inner_1", "inner_2", "outer_1", "outer_2"}
	}
	return []string{"inner", "outer"}
}

// SideY is the transverse coordinate of a leg axis
func (p *Pier) SideY(s Side) float64 { return s.Sign() * p.Geometry.Spacing / 2 }

// TopZ is the elevation of the pads
func (p *Pier) TopZ() float64 { return p.Geometry.Top() }

// Built reports whether Build completed
func (p *Pier) Built() bool { return p.built }

// Node returns a generated node by full name
func (p *Pier) Node(name string) (*point.Node, bool) {
	n, found := p.nodes[name]
	return n, found
}

// BaseNode is the support node on the pier axis
func (p *Pier) BaseNode() *point.Node { return p.nodes[p.NodeName("Base")] }

// LegNodes returns the longitudinal nodes of one leg, bottom to top
func (p *Pier) LegNodes(s Side) []*point.Node { return p.legs[s] }

// Pads returns the bearing-bottom nodes of one side
func (p *Pier) Pads(s Side) []Pad { return p.pads[s] }

// PadsAt returns the pads of one side lying at longitudinal coordinate x
func (p *Pier) PadsAt(s Side, x float64) []Pad {
	var out []Pad
	for _, pad := range p.pads[s] {
		if math.Abs(pad.X-x) <= point.Tolerance {
			out = append(out, pad)
		}
	}
	return out
}

// padLayout returns the pad positions without touching the engine
func (p *Pier) padLayout(s Side) []Pad {
	g := p.Geometry
	y0 := p.SideY(s)
	var pads []Pad
	for _, role := range p.PadRoles() {
		pad := Pad{Name: p.PadName(s, role), Role: role, Side: s, X: p.Station, Z: g.Top()}
		switch role {
		case "inner", "inner_1", "inner_2":
			pad.Inner = true
			pad.Y = y0 - s.Sign()*g.BearingSpacing/2
		default:
			pad.Y = y0 + s.Sign()*g.BearingSpacing/2
		}
		switch role[len(role)-1] {
		case '1':
			pad.Index = 1
			pad.X = p.Station - g.Offset
		case '2':
			pad.Index = 2
			pad.X = p.Station + g.Offset
		}
		pads = append(pads, pad)
	}
	return pads
}

func (p *Pier) add(name string, x, y, z float64) (*point.Node, error) {
	n, err := point.Add(p.m, name, x, y, z)
	if err != nil {
		return nil, err
	}
	p.nodes[n.Name] = n
	return n, nil
}

func (p *Pier) frame(i, j *point.Node, sectionName, name string) error {
	f, err := frame.Define(p.m, i.Name, j.Name, sectionName, name)
	if err != nil {
		return err
	}
	p.Frames = append(p.Frames, f)
	return nil
}

// sections defines the leg and cap sections and returns their names
func (p *Pier) sections(cat *section.Catalog) (solid, box, capName string, err error) {
	g := p.Geometry
	s := section.FromPolygon(fmt.Sprintf("PierSolid_%gx%g", g.LegWidth, g.LegDepth), material.PierConcrete, section.Solid(g.LegWidth, g.LegDepth))
	b := section.FromPolygon(fmt.Sprintf("PierBox_%gx%gx%g", g.LegWidth, g.LegDepth, g.Wall), material.PierConcrete, section.Box(g.LegWidth, g.LegDepth, g.Wall))
	for _, sec := range []*section.Section{s, b} {
		if err = cat.Define(sec); err != nil {
			return
		}
	}
	solid, box = s.Name, b.Name
	if g.HasCap() {
		c := section.FromPolygon(fmt.Sprintf("PierCap_%gx%g", g.capWidth(), g.capLength()), material.PierConcrete, section.Solid(g.capWidth(), g.capLength()))
		if err = cat.Define(c); err != nil {
			return
		}
		capName = c.Name
	}
	return
}

// Build emits nodes, sections, frames, coupling and groups. A failure
// to define sections or the base node aborts; later failures are collected
// and building continues.
func (p *Pier) Build(cat *section.Catalog) error {
	p.m = cat.Model()
	m := p.m
	g := p.Geometry
	if err := g.Validate(); err != nil {
		return m.Report(nil, fmt.Errorf("%w: pier %s: %v", sap.ErrContract, p.Name, err))
	}
	log := m.Log.With(p.Name)

	solid, box, capSection, err := p.sections(cat)
	if err != nil {
		return err
	}

	baseNode, err := p.add(p.NodeName("Base"), p.Station, 0, g.Elevation)
	if err != nil {
		return err
	}

	var errs []error
	hub := baseNode
	if g.HasCap() {
		capNode, err := p.add(p.NodeName("Cap"), p.Station, 0, g.Elevation+g.CapHeight/2)
		errs = append(errs, err)
		capTop, err2 := p.add(p.NodeName("CapTop"), p.Station, 0, g.Elevation+g.CapHeight)
		errs = append(errs, err2)
		if err == nil && err2 == nil {
			errs = append(errs,
				p.frame(baseNode, capNode, capSection, p.Name+"_Cap_1"),
				p.frame(capNode, capTop, capSection, p.Name+"_Cap_2"),
				capNode.SetMass(g.CapArea()*g.CapHeight*material.ConcreteDensity, sap.Ux, sap.Uy, sap.Uz),
			)
			hub = capTop
		}
	}

	roles, levels := g.LegLevels()
	for _, s := range Sides {
		y := p.SideY(s)
		var leg []*point.Node
		for i, role := range roles {
			n, err := p.add(p.LegNodeName(s, role), p.Station, y, levels[i])
			if err != nil {
				errs = append(errs, err)
				continue
			}
			leg = append(leg, n)
		}
		p.legs[s] = leg
		if len(leg) != len(roles) {
			errs = append(errs, fmt.Errorf("pier %s: %s leg is incomplete", p.Name, s))
			continue
		}

		// bottom solid, N hollow numbered from 0, top solid
		last := len(leg) - 1
		errs = append(errs,
			p.frame(leg[0], leg[1], solid, p.LegNodeName(s, "BottomSolid_1")),
			p.frame(leg[1], leg[2], solid, p.LegNodeName(s, "BottomSolid_2")),
		)
		for k := 2; k < last-1; k++ {
			errs = append(errs, p.frame(leg[k], leg[k+1], box, p.LegNodeName(s, fmt.Sprintf("Hollow_%d", k-2))))
		}
		errs = append(errs, p.frame(leg[last-1], leg[last], solid, p.LegNodeName(s, "TopSolid")))

		for _, pad := range p.padLayout(s) {
			if _, err := p.add(pad.Name, pad.X, pad.Y, pad.Z); err != nil {
				errs = append(errs, err)
				continue
			}
			p.pads[s] = append(p.pads[s], pad)
		}
	}

	// coupling: hub to leg bottoms, leg tops to their pads
	var bottoms, bottomFrames []string
	for _, s := range Sides {
		if len(p.legs[s]) == 0 {
			continue
		}
		bottoms = append(bottoms, p.legs[s][0].Name)
		bottomFrames = append(bottomFrames, p.LegNodeName(s, "RigidBottom"))
	}
	fs, err := Couple(m, cat, p.Coupling, p.Name+"_Bottom", hub.Name, bottoms, bottomFrames)
	p.Frames = append(p.Frames, fs...)
	errs = append(errs, err)

	for _, s := range Sides {
		leg := p.legs[s]
		if len(leg) == 0 || len(p.pads[s]) == 0 {
			continue
		}
		var slaves, names []string
		for _, pad := range p.pads[s] {
			slaves = append(slaves, pad.Name)
			names = append(names, p.LegNodeName(s, "Rigid_"+pad.Role))
		}
		fs, err := Couple(m, cat, p.Coupling, p.LegNodeName(s, "Top"), leg[len(leg)-1].Name, slaves, names)
		p.Frames = append(p.Frames, fs...)
		errs = append(errs, err)
	}

	var frameNames []string
	for _, f := range p.Frames {
		frameNames = append(frameNames, f.Name)
	}
	errs = append(errs,
		m.Report(nil, m.Group(p.Name, sap.ObjFrame, frameNames...)),
		m.Report(nil, m.Group(p.Name+"_Base", sap.ObjPoint, baseNode.Name)),
	)

	p.built = true
	if p.Base != nil {
		errs = append(errs, p.ConnectWithBase(p.Base))
	}

	err = errors.Join(errs...)
	if err != nil {
		log.Warnf("pier built with errors")
	} else {
		log.Tracef("%d nodes, %d frames", len(p.nodes), len(p.Frames))
	}
	return err
}

// ConnectWithBase binds b to the base node and emits it. Before Build the
// base is only stored; Build emits it.
func (p *Pier) ConnectWithBase(b *base.Base) error {
	p.Base = b
	if !p.built {
		return nil
	}
	b.ConnectWith(p.BaseNode())
	return b.Build(p.m)
}
