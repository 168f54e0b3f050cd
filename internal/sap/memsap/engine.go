// Package memsap is an in-memory implementation of the engine verb surface.
// It stores the model in KN_m_C, converts quantities with the active unit
// system, enforces the lock flag and records every verb it receives.
package memsap

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

const (
	ok     = 0
	failed = 1
)

type point struct {
	x, y, z   float64
	restraint sap.DOFSet
	mass      [6]float64
	spring    [21]float64
	conns     []sap.Connection
	constrs   []string
}

type section struct {
	kind     sap.SectionKind
	general  sap.GeneralSection
	segments []sap.NonPrismaticSegment
	mods     sap.Modifiers
}

type frame struct {
	i, j        string
	section     string
	totalLength float64
	relStart    float64
	cardinal    sap.CardinalPoint
	mass        float64
}

type link struct {
	i, j string
	prop string
}

type linkProp struct {
	kind   sap.LinkPropKind
	data   sap.LinkPropData
	wen    sap.WenData
	curves map[sap.DOF][2][]float64
}

// Engine is the in-memory engine. The zero value is not usable; call New.
type Engine struct {
	path   string
	units  sap.Units
	locked bool

	materials   map[string]string
	sections    map[string]*section
	points      map[string]*point
	frames      map[string]*frame
	links       map[string]*link
	linkProps   map[string]*linkProp
	constraints map[string]sap.DOFSet
	groups      map[string][]sap.Connection
	cases       map[string]*loadCase
	functions   map[string][2][]float64
	combos      map[string]*combo
	runFlags    map[string]bool
	ran         map[string]bool

	selectedCases  map[string]bool
	selectedCombos map[string]bool

	seedLinkForce map[string]map[string][]sap.ForceRow
	seedReaction  map[string]map[string][]sap.JointRow
	seedDeform    map[string]map[string][]sap.DeformRow
	seedModal     *sap.ModalRatios

	nextName int
	script   []string
}

var _ sap.Engine = (*Engine)(nil)

// New returns a blank model in KN_m_C
func New() *Engine {
	e := &Engine{}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.path = ""
	e.units = sap.DefaultUnits
	e.locked = false
	e.materials = map[string]string{"4000Psi": "Concrete", "A992Fy50": "Steel"}
	e.sections = make(map[string]*section)
	e.points = make(map[string]*point)
	e.frames = make(map[string]*frame)
	e.links = make(map[string]*link)
	e.linkProps = make(map[string]*linkProp)
	e.constraints = make(map[string]sap.DOFSet)
	e.groups = map[string][]sap.Connection{"ALL": nil}
	e.cases = map[string]*loadCase{
		sap.DefaultDeadCase: {kind: sap.CaseStaticLinear, loads: []sap.CaseLoad{{Type: "Load", Name: sap.DefaultDeadCase, SF: 1}}},
		"MODAL":             {kind: sap.CaseModalEigen, maxModes: 12},
	}
	e.functions = make(map[string][2][]float64)
	e.combos = make(map[string]*combo)
	e.runFlags = map[string]bool{sap.DefaultDeadCase: true, "MODAL": true}
	e.ran = make(map[string]bool)
	e.selectedCases = make(map[string]bool)
	e.selectedCombos = make(map[string]bool)
	e.seedLinkForce = make(map[string]map[string][]sap.ForceRow)
	e.seedReaction = make(map[string]map[string][]sap.JointRow)
	e.seedDeform = make(map[string]map[string][]sap.DeformRow)
	e.seedModal = nil
	e.nextName = 0
}

func (e *Engine) uniqueName(taken func(string) bool) string {
	for {
		e.nextName++
		name := fmt.Sprintf("%d", e.nextName)
		if !taken(name) {
			return name
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// conversion factors from the active unit system to KN_m_C
func (e *Engine) lf() float64 { return e.units.Length() }
func (e *Engine) ff() float64 { return e.units.Force() }

// file ////////////////////////////////////////////////////////////////////

func (e *Engine) NewBlank() int {
	e.record("File.NewBlank")
	units := e.units
	e.reset()
	e.units = units
	return ok
}

func (e *Engine) OpenFile(path string) int {
	e.record("File.OpenFile", path)
	if path != e.path {
		return failed
	}
	return ok
}

func (e *Engine) SaveFile(path string) int {
	e.record("File.Save", path)
	if path == "" {
		return failed
	}
	e.path = path
	return ok
}

func (e *Engine) ModelPath() string { return e.path }

// units and lock ///////////////////////////////////////////////////////////

func (e *Engine) SetPresentUnits(u sap.Units) int {
	e.record("SetPresentUnits", u)
	if !u.Valid() {
		return failed
	}
	e.units = u
	return ok
}

func (e *Engine) PresentUnits() sap.Units { return e.units }

func (e *Engine) SetModelLocked(locked bool) int {
	e.record("SetModelIsLocked", locked)
	e.locked = locked
	if !locked {
		e.ran = make(map[string]bool)
	}
	return ok
}

func (e *Engine) ModelLocked() bool { return e.locked }

// materials ////////////////////////////////////////////////////////////////

func (e *Engine) AddMaterial(region, standard, grade, userName string) (string, int) {
	e.record("PropMaterial.AddMaterial", region, standard, grade, userName)
	if e.locked || grade == "" {
		return "", failed
	}
	name := userName
	if name == "" {
		name = grade
	}
	e.materials[name] = standard
	return name, ok
}

func (e *Engine) DeleteMaterial(name string) int {
	e.record("PropMaterial.Delete", name)
	if e.locked {
		return failed
	}
	if _, found := e.materials[name]; !found {
		return failed
	}
	delete(e.materials, name)
	return ok
}

func (e *Engine) MaterialNames() ([]string, int) {
	return sortedKeys(e.materials), ok
}

// sections /////////////////////////////////////////////////////////////////

func (e *Engine) SetGeneral(s sap.GeneralSection) int {
	e.record("PropFrame.SetGeneral", s.Name, s.Material, s.Depth, s.Width, s.Area, s.As2, s.As3, s.J, s.I22, s.I33)
	if e.locked || s.Name == "" {
		return failed
	}
	if _, found := e.materials[s.Material]; !found {
		return failed
	}
	l := e.lf()
	s.Depth *= l
	s.Width *= l
	s.Area *= l * l
	s.As2 *= l * l
	s.As3 *= l * l
	s.J *= math.Pow(l, 4)
	s.I22 *= math.Pow(l, 4)
	s.I33 *= math.Pow(l, 4)
	s.I23 *= math.Pow(l, 4)
	e.sections[s.Name] = &section{kind: sap.SectionGeneral, general: s, mods: sap.UnitModifiers}
	return ok
}

func (e *Engine) General(name string) (sap.GeneralSection, int) {
	sec, found := e.sections[name]
	if !found || sec.kind == sap.SectionNonPrismatic {
		return sap.GeneralSection{}, failed
	}
	s := sec.general
	l := e.lf()
	s.Depth /= l
	s.Width /= l
	s.Area /= l * l
	s.As2 /= l * l
	s.As3 /= l * l
	s.J /= math.Pow(l, 4)
	s.I22 /= math.Pow(l, 4)
	s.I33 /= math.Pow(l, 4)
	s.I23 /= math.Pow(l, 4)
	return s, ok
}

func (e *Engine) SetNonPrismatic(name string, segs []sap.NonPrismaticSegment) int {
	e.record("PropFrame.SetNonPrismatic", name, len(segs))
	if e.locked || len(segs) == 0 {
		return failed
	}
	for _, seg := range segs {
		for _, ref := range []string{seg.Start, seg.End} {
			if sec, found := e.sections[ref]; !found || sec.kind == sap.SectionNonPrismatic {
				return failed
			}
		}
		if seg.Length <= 0 {
			return failed
		}
	}
	e.sections[name] = &section{
		kind:     sap.SectionNonPrismatic,
		segments: append([]sap.NonPrismaticSegment(nil), segs...),
		mods:     sap.UnitModifiers,
	}
	return ok
}

func (e *Engine) NonPrismatic(name string) ([]sap.NonPrismaticSegment, int) {
	sec, found := e.sections[name]
	if !found || sec.kind != sap.SectionNonPrismatic {
		return nil, failed
	}
	return append([]sap.NonPrismaticSegment(nil), sec.segments...), ok
}

func (e *Engine) SetRectangle(name, material string, depth, width float64) int {
	e.record("PropFrame.SetRectangle", name, material, depth, width)
	if e.locked || name == "" || depth <= 0 || width <= 0 {
		return failed
	}
	if _, found := e.materials[material]; !found {
		return failed
	}
	l := e.lf()
	d, w := depth*l, width*l
	a := d * w
	e.sections[name] = &section{
		kind: sap.SectionRectangle,
		general: sap.GeneralSection{
			Name: name, Material: material, Depth: d, Width: w, Area: a,
			As2: 5.0 / 6.0 * a, As3: 5.0 / 6.0 * a,
			I33: w * d * d * d / 12, I22: d * w * w * w / 12,
			J: rectTorsion(d, w),
		},
		mods: sap.UnitModifiers,
	}
	return ok
}

// rectTorsion is the Saint-Venant torsion constant of a solid rectangle
func rectTorsion(d, w float64) float64 {
	a, b := math.Max(d, w), math.Min(d, w)
	return a * b * b * b * (1.0/3.0 - 0.21*b/a*(1-math.Pow(b/a, 4)/12))
}

func (e *Engine) SetModifiers(name string, m sap.Modifiers) int {
	e.record("PropFrame.SetModifiers", name, m)
	sec, found := e.sections[name]
	if e.locked || !found {
		return failed
	}
	sec.mods = m
	return ok
}

func (e *Engine) SectionModifiers(name string) (sap.Modifiers, int) {
	sec, found := e.sections[name]
	if !found {
		return sap.Modifiers{}, failed
	}
	return sec.mods, ok
}

func (e *Engine) SectionType(name string) (sap.SectionKind, int) {
	sec, found := e.sections[name]
	if !found {
		return 0, failed
	}
	return sec.kind, ok
}

func (e *Engine) SectionNames() ([]string, int) {
	return sortedKeys(e.sections), ok
}

// points ///////////////////////////////////////////////////////////////////

func (e *Engine) AddPoint(x, y, z float64, name string) (string, int) {
	e.record("PointObj.AddCartesian", x, y, z, name)
	if e.locked {
		return "", failed
	}
	if name == "" || e.points[name] != nil {
		name = e.uniqueName(func(s string) bool { return e.points[s] != nil })
	}
	l := e.lf()
	e.points[name] = &point{x: x * l, y: y * l, z: z * l}
	e.groups["ALL"] = append(e.groups["ALL"], sap.Connection{Kind: sap.ObjPoint, Name: name})
	return name, ok
}

func (e *Engine) PointCoord(name string) (float64, float64, float64, int) {
	p, found := e.points[name]
	if !found {
		return 0, 0, 0, failed
	}
	l := e.lf()
	return p.x / l, p.y / l, p.z / l, ok
}

func (e *Engine) PointNames() ([]string, int) {
	return sortedKeys(e.points), ok
}

func (e *Engine) SetRestraint(name string, r sap.DOFSet) int {
	e.record("PointObj.SetRestraint", name, r)
	p, found := e.points[name]
	if e.locked || !found {
		return failed
	}
	p.restraint = r
	return ok
}

func (e *Engine) Restraint(name string) (sap.DOFSet, int) {
	p, found := e.points[name]
	if !found {
		return sap.DOFSet{}, failed
	}
	return p.restraint, ok
}

// massFactor converts point mass in dof d to KN_m_C
func (e *Engine) massFactor(d int) float64 {
	if d < 3 {
		return e.ff() / e.lf()
	}
	return e.ff() * e.lf()
}

func (e *Engine) SetPointMass(name string, m [6]float64, replace bool) int {
	e.record("PointObj.SetMass", name, m, replace)
	p, found := e.points[name]
	if e.locked || !found {
		return failed
	}
	for d := range m {
		v := m[d] * e.massFactor(d)
		if replace {
			p.mass[d] = v
		} else {
			p.mass[d] += v
		}
	}
	return ok
}

func (e *Engine) PointMass(name string) ([6]float64, int) {
	p, found := e.points[name]
	if !found {
		return [6]float64{}, failed
	}
	var m [6]float64
	for d := range m {
		m[d] = p.mass[d] / e.massFactor(d)
	}
	return m, ok
}

// springFactors returns the KN_m_C factor of each of the 21 coupled terms,
// ordered column by column over the upper triangle (11, 12, 22, 13, ...)
func (e *Engine) springFactors() [21]float64 {
	var f [21]float64
	l, force := e.lf(), e.ff()
	k := 0
	for j := 0; j < 6; j++ {
		for i := 0; i <= j; i++ {
			switch {
			case i < 3 && j < 3:
				f[k] = force / l
			case i >= 3 && j >= 3:
				f[k] = force * l
			default:
				f[k] = force
			}
			k++
		}
	}
	return f
}

func (e *Engine) SetSpringCoupled(name string, k [21]float64, replace bool) int {
	e.record("PointObj.SetSpringCoupled", name, k, replace)
	p, found := e.points[name]
	if e.locked || !found {
		return failed
	}
	f := e.springFactors()
	for i := range k {
		v := k[i] * f[i]
		if replace {
			p.spring[i] = v
		} else {
			p.spring[i] += v
		}
	}
	return ok
}

func (e *Engine) SpringCoupled(name string) ([21]float64, int) {
	p, found := e.points[name]
	if !found {
		return [21]float64{}, failed
	}
	f := e.springFactors()
	var k [21]float64
	for i := range k {
		k[i] = p.spring[i] / f[i]
	}
	return k, ok
}

func (e *Engine) PointConnectivity(name string) ([]sap.Connection, int) {
	p, found := e.points[name]
	if !found {
		return nil, failed
	}
	return append([]sap.Connection(nil), p.conns...), ok
}

func (e *Engine) detach(pointName string, kind sap.ObjectKind, objName string) {
	p := e.points[pointName]
	if p == nil {
		return
	}
	kept := p.conns[:0]
	for _, c := range p.conns {
		if c.Kind != kind || c.Name != objName {
			kept = append(kept, c)
		}
	}
	p.conns = kept
}

// frames ///////////////////////////////////////////////////////////////////

func (e *Engine) AddFrame(i, j, sectionName, name string) (string, int) {
	e.record("FrameObj.AddByPoint", i, j, sectionName, name)
	if e.locked || i == j || e.points[i] == nil || e.points[j] == nil {
		return "", failed
	}
	if _, found := e.sections[sectionName]; !found {
		return "", failed
	}
	if name == "" || e.frames[name] != nil {
		name = e.uniqueName(func(s string) bool { return e.frames[s] != nil })
	}
	e.frames[name] = &frame{i: i, j: j, section: sectionName, cardinal: sap.Centroid}
	e.points[i].conns = append(e.points[i].conns, sap.Connection{Kind: sap.ObjFrame, Name: name})
	e.points[j].conns = append(e.points[j].conns, sap.Connection{Kind: sap.ObjFrame, Name: name})
	e.groups["ALL"] = append(e.groups["ALL"], sap.Connection{Kind: sap.ObjFrame, Name: name})
	return name, ok
}

func (e *Engine) FramePoints(name string) (string, string, int) {
	f, found := e.frames[name]
	if !found {
		return "", "", failed
	}
	return f.i, f.j, ok
}

func (e *Engine) FrameNames() ([]string, int) {
	return sortedKeys(e.frames), ok
}

func (e *Engine) FrameSection(name string) (string, int) {
	f, found := e.frames[name]
	if !found {
		return "", failed
	}
	return f.section, ok
}

func (e *Engine) SetFrameSection(name, sectionName string, totalLength, relStart float64) int {
	e.record("FrameObj.SetSection", name, sectionName, totalLength, relStart)
	f, found := e.frames[name]
	if e.locked || !found {
		return failed
	}
	if _, found := e.sections[sectionName]; !found {
		return failed
	}
	if relStart < 0 || relStart > 1 || totalLength < 0 {
		return failed
	}
	f.section = sectionName
	f.totalLength = totalLength * e.lf()
	f.relStart = relStart
	return ok
}

// VariablePlacement returns the stored total length (m) and relative start of a frame
func (e *Engine) VariablePlacement(name string) (float64, float64, bool) {
	f, found := e.frames[name]
	if !found {
		return 0, 0, false
	}
	return f.totalLength, f.relStart, true
}

func (e *Engine) SetInsertionPoint(name string, cp sap.CardinalPoint) int {
	e.record("FrameObj.SetInsertionPoint", name, cp)
	f, found := e.frames[name]
	if e.locked || !found || cp < sap.BottomLeft || cp > sap.ShearCenter {
		return failed
	}
	f.cardinal = cp
	return ok
}

func (e *Engine) InsertionPoint(name string) (sap.CardinalPoint, int) {
	f, found := e.frames[name]
	if !found {
		return 0, failed
	}
	return f.cardinal, ok
}

func (e *Engine) SetFrameMass(name string, massPerLength float64, replace bool) int {
	e.record("FrameObj.SetMass", name, massPerLength, replace)
	f, found := e.frames[name]
	if e.locked || !found {
		return failed
	}
	l := e.lf()
	v := massPerLength * e.ff() / (l * l)
	if replace {
		f.mass = v
	} else {
		f.mass += v
	}
	return ok
}

func (e *Engine) FrameMass(name string) (float64, int) {
	f, found := e.frames[name]
	if !found {
		return 0, failed
	}
	l := e.lf()
	return f.mass * l * l / e.ff(), ok
}

// links ////////////////////////////////////////////////////////////////////

func (e *Engine) AddLink(i, j, prop, name string) (string, int) {
	e.record("LinkObj.AddByPoint", i, j, prop, name)
	if e.locked || i == j || e.points[i] == nil || e.points[j] == nil {
		return "", failed
	}
	if _, found := e.linkProps[prop]; !found {
		return "", failed
	}
	if name == "" || e.links[name] != nil {
		name = e.uniqueName(func(s string) bool { return e.links[s] != nil })
	}
	e.links[name] = &link{i: i, j: j, prop: prop}
	e.points[i].conns = append(e.points[i].conns, sap.Connection{Kind: sap.ObjLink, Name: name})
	e.points[j].conns = append(e.points[j].conns, sap.Connection{Kind: sap.ObjLink, Name: name})
	e.groups["ALL"] = append(e.groups["ALL"], sap.Connection{Kind: sap.ObjLink, Name: name})
	return name, ok
}

func (e *Engine) DeleteLink(name string) int {
	e.record("LinkObj.Delete", name)
	l, found := e.links[name]
	if e.locked || !found {
		return failed
	}
	e.detach(l.i, sap.ObjLink, name)
	e.detach(l.j, sap.ObjLink, name)
	for g, members := range e.groups {
		kept := members[:0]
		for _, c := range members {
			if c.Kind != sap.ObjLink || c.Name != name {
				kept = append(kept, c)
			}
		}
		e.groups[g] = kept
	}
	delete(e.links, name)
	return ok
}

func (e *Engine) LinkNames() ([]string, int) {
	return sortedKeys(e.links), ok
}

func (e *Engine) LinkPoints(name string) (string, string, int) {
	l, found := e.links[name]
	if !found {
		return "", "", failed
	}
	return l.i, l.j, ok
}

func (e *Engine) LinkProperty(name string) (string, int) {
	l, found := e.links[name]
	if !found {
		return "", failed
	}
	return l.prop, ok
}
