package pier

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/base"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/alexiusacademia/gobridge/internal/section"
	"github.com/cpmech/gosl/chk"
)

func build(tst *testing.T, p *Pier) *memsap.Engine {
	e := memsap.New()
	cat := section.NewCatalog(sap.NewModel(e, nil))
	if err := p.Build(cat); err != nil {
		tst.Fatalf("build %s: %v", p.Name, err)
	}
	return e
}

func Test_pier01(tst *testing.T) {

	chk.PrintTitle("pier01. leg nodes and elements")

	for _, n := range []int{1, 3, 5} {
		g := DefaultGeometry()
		g.HollowCount = n
		p := New("#2", 90, g, false)
		e := build(tst, p)

		for _, s := range Sides {
			legs := p.LegNodes(s)
			chk.Int(tst, "leg nodes", len(legs), 5+n-1)
			chk.String(tst, legs[0].Name, "#2_"+string(s)+"_Bottom")
			chk.String(tst, legs[len(legs)-1].Name, "#2_"+string(s)+"_Top")
			chk.Float64(tst, "leg y", 1e-12, legs[0].Y, s.Sign()*20.75/2)
			chk.Float64(tst, "bottom z", 1e-12, legs[0].Z, 4)
			chk.Float64(tst, "hollow bottom z", 1e-12, legs[2].Z, 6)
			chk.Float64(tst, "hollow top z", 1e-12, legs[len(legs)-2].Z, 4+60.9-3)
			chk.Float64(tst, "top z", 1e-12, legs[len(legs)-1].Z, 64.9)
		}
		if n == 3 {
			z1 := zOf(tst, e, "#2_left_HollowMiddle_0")
			z2 := zOf(tst, e, "#2_left_HollowMiddle_1")
			step := (64.9 - 3 - 6) / 3
			chk.Float64(tst, "middle 1", 1e-9, z1, 6+step)
			chk.Float64(tst, "middle 2", 1e-9, z2, 6+2*step)
		}

		// per side: 2 bottom solid + n hollow + 1 top solid
		hollow := 0
		for _, f := range p.Frames {
			if strings.Contains(f.Name, "_Hollow_") {
				hollow++
			}
		}
		chk.Int(tst, "hollow frames", hollow, 2*n)
		if _, ret := e.FrameSection(fmt.Sprintf("#2_left_Hollow_%d", n-1)); ret != 0 {
			tst.Errorf("last hollow element should be numbered %d", n-1)
		}
		roles, _ := g.LegLevels()
		if n > 1 {
			chk.String(tst, roles[3], "HollowMiddle_0")
			chk.String(tst, roles[len(roles)-3], fmt.Sprintf("HollowMiddle_%d", n-2))
		}
		sec, _ := e.FrameSection("#2_right_Hollow_0")
		chk.String(tst, sec, "PierBox_9x6.5x0.8")
		sec, _ = e.FrameSection("#2_right_TopSolid")
		chk.String(tst, sec, "PierSolid_9x6.5")
	}
}

func zOf(tst *testing.T, e *memsap.Engine, name string) float64 {
	_, _, z, ret := e.PointCoord(name)
	if ret != 0 {
		tst.Errorf("point %s is missing", name)
	}
	return z
}

func Test_pier02(tst *testing.T) {

	chk.PrintTitle("pier02. bearing pads")

	g := DefaultGeometry()
	p := New("#1", 0, g, true)
	build(tst, p)

	for _, s := range Sides {
		pads := p.Pads(s)
		chk.Int(tst, "intermediate pads", len(pads), 4)
		for _, pad := range pads {
			want := -1.0
			if pad.Index == 2 {
				want = 1
			}
			chk.Float64(tst, pad.Name+" x", 1e-12, pad.X, want)
			chk.Float64(tst, pad.Name+" z", 1e-12, pad.Z, p.TopZ())
			dy := pad.Y - p.SideY(s)
			if pad.Inner {
				chk.Float64(tst, pad.Name+" inner y", 1e-12, dy*s.Sign(), -3.5)
			} else {
				chk.Float64(tst, pad.Name+" outer y", 1e-12, dy*s.Sign(), 3.5)
			}
		}
		chk.Int(tst, "pads at station-offset", len(p.PadsAt(s, -1)), 2)
	}
	if _, found := p.Node("#1_left_BearingBottom_inner_1"); !found {
		tst.Errorf("pad node name is wrong")
	}

	q := New("#3", 180, g, false)
	build(tst, q)
	for _, s := range Sides {
		pads := q.Pads(s)
		chk.Int(tst, "ordinary pads", len(pads), 2)
		for _, pad := range pads {
			chk.Float64(tst, pad.Name+" x", 1e-12, pad.X, 180)
			chk.Int(tst, pad.Name+" index", pad.Index, 0)
		}
	}
	chk.String(tst, q.Pads(Right)[1].Name, "#3_right_BearingBottom_outer")
}

func Test_pier03(tst *testing.T) {

	chk.PrintTitle("pier03. cap block and base")

	g := DefaultGeometry()
	p := New("#4", 270, g, false)
	e := build(tst, p)

	mass, _ := e.PointMass("#4_Cap")
	want := g.CapArea() * 4 * 2.5
	chk.Array(tst, "cap mass", 1e-9, mass[:3], []float64{want, want, want})
	z := zOf(tst, e, "#4_CapTop")
	chk.Float64(tst, "cap top", 1e-12, z, 4)

	b := base.NewFixed()
	if err := p.ConnectWithBase(b); err != nil {
		tst.Errorf("connect: %v", err)
	}
	r, _ := e.Restraint("#4_Base")
	if r != sap.AllDOF {
		tst.Errorf("base restraint missing")
	}
	members, _ := e.GroupAssignments("#4_Base")
	chk.Int(tst, "base group", len(members), 1)

	// no cap: legs start at the base elevation, no cap nodes
	g.CapHeight = 0
	q := New("#5", 360, g, false)
	e = build(tst, q)
	if _, _, _, ret := e.PointCoord("#5_Cap"); ret == 0 {
		tst.Errorf("cap node should not exist")
	}
	chk.Float64(tst, "leg bottom", 1e-12, q.LegNodes(Left)[0].Z, 0)
	if !e.Connected("#5_Base", sap.Connection{Kind: sap.ObjFrame, Name: "#5_left_RigidBottom"}) {
		tst.Errorf("base should be coupled to the leg bottoms")
	}
}

func Test_pier04(tst *testing.T) {

	chk.PrintTitle("pier04. coupling modes")

	for _, mode := range []Coupling{CouplingBody, CouplingEqual} {
		p := New("#6", 450, DefaultGeometry(), false)
		p.Coupling = mode
		e := build(tst, p)
		suffix := "_Body"
		if mode == CouplingEqual {
			suffix = "_Equal"
		}
		cs, _ := e.PointConstraints("#6_left_BearingBottom_inner")
		chk.Strings(tst, "pad constraint", cs, []string{"#6_left_Top" + suffix})
		cs, _ = e.PointConstraints("#6_CapTop")
		chk.Strings(tst, "cap constraint", cs, []string{"#6_Bottom" + suffix})
		for _, f := range p.Frames {
			if strings.Contains(f.Name, "Rigid") {
				tst.Errorf("%s mode should not emit rigid frames, got %s", mode, f.Name)
			}
		}
	}

	c, err := ParseCoupling(" Body ")
	if err != nil || c != CouplingBody {
		tst.Errorf("parse body: %v %v", c, err)
	}
	c, _ = ParseCoupling("")
	if c != CouplingFrame {
		tst.Errorf("default coupling should be frame")
	}
	if _, err = ParseCoupling("weld"); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("unknown coupling should be a contract violation")
	}

	g := DefaultGeometry()
	g.HollowCount = 0
	p := New("#7", 540, g, false)
	if err := p.Build(section.NewCatalog(sap.NewModel(memsap.New(), nil))); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("invalid geometry should be a contract violation, got %v", err)
	}
}
