package girder

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/bearing"
	"github.com/alexiusacademia/gobridge/internal/material"
	"github.com/alexiusacademia/gobridge/internal/pier"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/alexiusacademia/gobridge/internal/section"
	"github.com/cpmech/gosl/chk"
)

type fixture struct {
	e   *memsap.Engine
	m   *sap.Model
	cat *section.Catalog
	reg *bearing.Registry
}

func setup() fixture {
	e := memsap.New()
	m := sap.NewModel(e, nil)
	return fixture{e, m, section.NewCatalog(m), bearing.NewRegistry(m)}
}

// piers builds piers at 0, 90, 180, ... with the first and last intermediate
func (f fixture) piers(tst *testing.T, names ...string) []*pier.Pier {
	var out []*pier.Pier
	for i, name := range names {
		p := pier.New(name, 90*float64(i), pier.DefaultGeometry(), i == 0 || i == len(names)-1)
		if err := p.Build(f.cat); err != nil {
			tst.Fatalf("pier %s: %v", name, err)
		}
		out = append(out, p)
	}
	return out
}

func Test_girder01(tst *testing.T) {

	chk.PrintTitle("girder01. plan I over three piers")

	f := setup()
	ps := f.piers(tst, "#1", "#2", "#3")
	// unsorted input is sorted by station
	g := New("G1", []*pier.Pier{ps[2], ps[0], ps[1]}, []string{"#2"}, PlanI)
	if err := g.Build(f.cat, f.reg); err != nil {
		tst.Errorf("build: %v", err)
		return
	}
	chk.String(tst, g.Piers[0].Name, "#1")

	spans := 0
	for _, fr := range g.Frames {
		if sec, _ := f.e.FrameSection(fr.Name); sec == SteelBox {
			spans++
		}
	}
	chk.Int(tst, "span frames", spans, 2*8*2)

	// end nodes shift towards the span interior
	x, y, z, _ := f.e.PointCoord("G1_left_#1")
	chk.Float64(tst, "first x", 1e-12, x, 1)
	chk.Float64(tst, "first y", 1e-12, y, -20.75/2)
	chk.Float64(tst, "first z", 1e-12, z, ps[0].TopZ()+0.3+1.5)
	x, _, _, _ = f.e.PointCoord("G1_right_#3")
	chk.Float64(tst, "last x", 1e-12, x, 179)
	x, _, _, _ = f.e.PointCoord("G1_right_S1_4")
	chk.Float64(tst, "interior x", 1e-12, x, 1+4*(90.0-1)/8)

	q, _ := f.e.FrameMass("G1_left_S2_E3")
	chk.Float64(tst, "line mass", 1e-12, q, (117.5+43.9)/material.Gravity)

	// fixed pier: fixed inside, y_sliding outside; others slide longitudinally
	pair, _ := g.Pair("#2", pier.Left)
	chk.String(tst, pair.Inner.Prop.Name, bearing.IdealFixed)
	chk.String(tst, pair.Outer.Prop.Name, bearing.YSliding)
	pair, _ = g.Pair("#1", pier.Right)
	chk.String(tst, pair.Inner.Prop.Name, bearing.XSliding)
	chk.String(tst, pair.Outer.Prop.Name, bearing.BothSliding)
	chk.String(tst, pair.Inner.Name, "G1_#1_right_inner_2")
	chk.String(tst, pair.Inner.I, "#1_right_BearingBottom_inner_2")

	chk.Int(tst, "bearings", len(g.Bearings()), 3*2*2)
	members, _ := f.e.GroupAssignments("#2_Bearings")
	chk.Int(tst, "pier bearing group", len(members), 4)

	// bearing top sits one pad thickness above the pad
	_, _, zt, _ := f.e.PointCoord("G1_#3_left_BearingTop_outer_1")
	chk.Float64(tst, "bearing top z", 1e-12, zt, ps[2].TopZ()+0.3)
	if !f.e.Connected("G1_left_#3", sap.Connection{Kind: sap.ObjFrame, Name: "G1_#3_left_Rigid_outer_1"}) {
		tst.Errorf("girder node should be coupled to the bearing tops")
	}
}

func Test_girder02(tst *testing.T) {

	chk.PrintTitle("girder02. ordering rules")

	f := setup()
	ps := f.piers(tst, "#1", "#2", "#3")

	inner := pier.New("#9", 45, pier.DefaultGeometry(), true)
	inner.Build(f.cat)
	g := New("bad", append(ps, inner), nil, PlanI)
	if err := g.Build(f.cat, f.reg); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("intermediate pier inside a girder should be rejected, got %v", err)
	}

	twin := pier.New("#2b", 90, pier.DefaultGeometry(), false)
	twin.Build(f.cat)
	g = New("bad2", append(ps, twin), nil, PlanI)
	if err := g.Build(f.cat, f.reg); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("equal stations should be rejected, got %v", err)
	}

	g = New("bad3", ps[:2], nil, PlanI)
	if err := g.Build(f.cat, f.reg); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("non-intermediate end pier should be rejected, got %v", err)
	}

	if _, err := ParsePlan("IV"); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("unknown plan should be rejected")
	}
	p, _ := ParsePlan(" iii ")
	if p != PlanIII {
		tst.Errorf("plan III should parse")
	}
}

func Test_girder03(tst *testing.T) {

	chk.PrintTitle("girder03. plan III variable sections")

	f := setup()
	ps := f.piers(tst, "#1", "#2", "#3", "#4")
	g := New("G3", ps, []string{"#2"}, PlanIII)
	if err := g.Build(f.cat, f.reg); err != nil {
		tst.Errorf("build: %v", err)
		return
	}

	sec, _ := f.e.FrameSection("G3_left_S1_E1")
	chk.String(tst, sec, varEndMid)
	sec, _ = f.e.FrameSection("G3_left_S2_E1")
	chk.String(tst, sec, varMidMid)
	sec, _ = f.e.FrameSection("G3_right_S3_E8")
	chk.String(tst, sec, varMidEnd)

	segs, _ := f.e.NonPrismatic(varEndMid)
	chk.Int(tst, "segments", len(segs), 3)
	sum := 0.0
	for _, s := range segs {
		sum += s.Length
	}
	chk.Float64(tst, "fractions", 1e-12, sum, 1)
	chk.String(tst, segs[2].Start, PierBox)

	total, rel, _ := f.e.VariablePlacement("G3_left_S2_E3")
	chk.Float64(tst, "total length", 1e-9, total, 90)
	chk.Float64(tst, "relative start", 1e-12, rel, 2.0/8)
	total, rel, _ = f.e.VariablePlacement("G3_left_S1_E2")
	chk.Float64(tst, "shifted span", 1e-9, total, 89)
	chk.Float64(tst, "shifted start", 1e-12, rel, 1.0/8)

	cp, _ := f.e.InsertionPoint("G3_right_S2_E5")
	chk.Int(tst, "top center", int(cp), int(sap.TopCenter))
	_, _, z, _ := f.e.PointCoord("G3_left_#2")
	chk.Float64(tst, "axis at girder top", 1e-12, z, ps[1].TopZ()+0.3+8)

	// two intermediate piers only: mid-span fallback, no placement
	f = setup()
	ps = f.piers(tst, "#1", "#2")
	g = New("G4", ps, nil, PlanIII)
	if err := g.Build(f.cat, f.reg); err != nil {
		tst.Errorf("build fallback: %v", err)
	}
	sec, _ = f.e.FrameSection("G4_left_S1_E1")
	chk.String(tst, sec, MidBox)
}

func Test_girder04(tst *testing.T) {

	chk.PrintTitle("girder04. single pier with lumped mass")

	f := setup()
	p := pier.New("#1", 0, pier.DefaultGeometry(), false)
	p.Build(f.cat)
	g := New("G1", []*pier.Pier{p}, []string{"#1"}, PlanII)
	g.SpanCount = 5
	if err := g.Build(f.cat, f.reg); err != nil {
		tst.Errorf("build: %v", err)
		return
	}
	if _, ret := f.e.FrameSection(g.SpanFrame(pier.Left, 1, 1)); ret == 0 {
		tst.Errorf("a single-pier girder has no span frames")
	}
	w := (246.9 + 56.0) * 90 / material.Gravity
	mass, _ := f.e.PointMass("G1_left_#1")
	chk.Array(tst, "lumped", 1e-9, mass[:3], []float64{5 * w, w, w})
	r, _ := f.e.Restraint("G1_right_#1")
	if r != sap.NewDOFSet(sap.Ry, sap.Rz) {
		tst.Errorf("girder node should be restrained about y and z, got %v", r.List())
	}
	chk.Int(tst, "bearings", len(g.Bearings()), 4)
}

func Test_girder05(tst *testing.T) {

	chk.PrintTitle("girder05. two-phase bearing update")

	f := setup()
	ps := f.piers(tst, "#1", "#2", "#3")
	g := New("G1", ps, []string{"#2"}, PlanI)
	if err := g.Build(f.cat, f.reg); err != nil {
		tst.Errorf("build: %v", err)
		return
	}
	for _, b := range g.Bearings() {
		f.e.SeedLinkForce(sap.DefaultDeadCase, b.Name, sap.ForceRow{P: -5000})
	}
	links, _ := f.e.LinkNames()

	if err := g.UpdateLinkParameters(bearing.PlasticWen, bearing.Options{Ratio: bearing.Float(0)}); err != nil {
		tst.Errorf("update parameters: %v", err)
		return
	}
	if !f.m.IsLocked() {
		tst.Errorf("calibration should have run the dead load")
	}
	if err := g.UpdateLinksInEngine(); err != nil {
		tst.Errorf("update links: %v", err)
		return
	}
	after, _ := f.e.LinkNames()
	chk.Strings(tst, "same links", after, links)

	pair, _ := g.Pair("#1", pier.Left)
	_, w, ret := f.e.PlasticWenProp(pair.Inner.Name + "_PlasticWen")
	chk.Int(tst, "wen emitted", ret, 0)
	chk.Float64(tst, "Fy", 1e-9, w.Yield[sap.U2], 100)
	chk.Float64(tst, "k", 1e-9, w.K[sap.U2], 40000)
	prop, _ := f.e.LinkProperty(pair.Inner.Name)
	chk.String(tst, prop, pair.Inner.Name+"_PlasticWen")

	members, _ := f.e.GroupAssignments("#2_Bearings")
	chk.Int(tst, "groups restored", len(members), 4)

	if err := g.UpdateLinkParameters(bearing.Linear, bearing.Options{}); !errors.Is(err, sap.ErrUnsupported) {
		tst.Errorf("linear update should be unsupported")
	}
}
