package memsap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/logger"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/cpmech/gosl/chk"
)

func Test_engine01(tst *testing.T) {

	chk.PrintTitle("engine01. unit conversion")

	e := New()
	chk.Int(tst, "set units", e.SetPresentUnits(sap.KNmmC), 0)
	name, ret := e.AddPoint(1500, -250, 3000, "A")
	chk.Int(tst, "add point", ret, 0)
	chk.String(tst, name, "A")

	x, y, z, _ := e.PointCoord("A")
	chk.Array(tst, "mm coords", 1e-12, []float64{x, y, z}, []float64{1500, -250, 3000})

	e.SetPresentUnits(sap.KNmC)
	x, y, z, _ = e.PointCoord("A")
	chk.Array(tst, "m coords", 1e-12, []float64{x, y, z}, []float64{1.5, -0.25, 3})

	// translational mass is F/L, rotational F*L
	e.SetPresentUnits(sap.NmmC)
	e.SetPointMass("A", [6]float64{2, 0, 0, 5, 0, 0}, true)
	e.SetPresentUnits(sap.KNmC)
	m, _ := e.PointMass("A")
	chk.Float64(tst, "mass U1", 1e-12, m[0], 2)
	chk.Float64(tst, "mass R1", 1e-12, m[3], 5e-6)

	// spring terms: 11 is F/L, 14 (index 6) is F, 44 (index 9) is F*L
	var k [21]float64
	k[0], k[6], k[9] = 1000, 1000, 1000
	e.SetPresentUnits(sap.KNmmC)
	e.SetSpringCoupled("A", k, true)
	e.SetPresentUnits(sap.KNmC)
	got, _ := e.SpringCoupled("A")
	chk.Float64(tst, "k11", 1e-9, got[0], 1e6)
	chk.Float64(tst, "k14", 1e-9, got[6], 1000)
	chk.Float64(tst, "k44", 1e-9, got[9], 1)

	// duplicate names are replaced by generated ones
	other, _ := e.AddPoint(0, 0, 0, "A")
	if other == "A" {
		tst.Errorf("duplicate point name should be renamed")
	}
}

func Test_engine02(tst *testing.T) {

	chk.PrintTitle("engine02. lock flag and connectivity")

	e := New()
	e.AddPoint(0, 0, 0, "I")
	e.AddPoint(0, 0, 1, "J")
	chk.Int(tst, "rect", e.SetRectangle("R", "4000Psi", 1, 2), 0)
	chk.Int(tst, "bad material", e.SetRectangle("R2", "none", 1, 2), 1)
	_, ret := e.AddFrame("I", "J", "R", "F")
	chk.Int(tst, "frame", ret, 0)
	if !e.Connected("I", sap.Connection{Kind: sap.ObjFrame, Name: "F"}) {
		tst.Errorf("frame should be connected to I")
	}

	chk.Int(tst, "run", e.RunAnalysis(), 0)
	if !e.ModelLocked() || !e.Ran(sap.DefaultDeadCase) {
		tst.Errorf("analysis should lock the model and run DEAD")
	}
	_, ret = e.AddPoint(1, 1, 1, "")
	chk.Int(tst, "add while locked", ret, 1)

	e.SetModelLocked(false)
	if e.Ran(sap.DefaultDeadCase) {
		tst.Errorf("unlocking should discard results")
	}
	_, ret = e.AddPoint(1, 1, 1, "")
	chk.Int(tst, "add after unlock", ret, 0)

	sec, _ := e.General("R")
	chk.Float64(tst, "I33", 1e-12, sec.I33, 2.0/12.0)
	chk.Float64(tst, "I22", 1e-12, sec.I22, 8.0/12.0)
}

func Test_engine03(tst *testing.T) {

	chk.PrintTitle("engine03. link properties")

	e := New()
	d := sap.LinkPropData{
		Name:      "B",
		DOF:       sap.AllDOF,
		Fixed:     sap.NewDOFSet(sap.R1),
		NonLinear: sap.NewDOFSet(sap.U2),
	}
	d.Ke = [6]float64{1e6, 100, 100, 0, 10, 10}
	chk.Int(tst, "multi", e.SetMultiElasticProp(d), 0)

	chk.Int(tst, "points on linear dof", e.SetMultiLinearPoints("B", sap.U3, []float64{-1, 1}, []float64{-1, 1}, ""), 1)
	chk.Int(tst, "too few points", e.SetMultiLinearPoints("B", sap.U2, []float64{1}, []float64{1}, ""), 1)
	chk.Int(tst, "not increasing", e.SetMultiLinearPoints("B", sap.U2, []float64{0, 0}, []float64{1, 1}, ""), 1)
	chk.Int(tst, "ok", e.SetMultiLinearPoints("B", sap.U2, []float64{-1, 0, 1}, []float64{-5, 0, 5}, "Elastic"), 0)

	// redefining the prop keeps curves on dofs that stay nonlinear
	d.Ke[1] = 200
	e.SetMultiElasticProp(d)
	disp, force, ret := e.MultiLinearPoints("B", sap.U2)
	chk.Int(tst, "curve kept", ret, 0)
	chk.Array(tst, "disp", 1e-15, disp, []float64{-1, 0, 1})
	chk.Array(tst, "force", 1e-15, force, []float64{-5, 0, 5})

	bad := d
	bad.Fixed = sap.NewDOFSet(sap.U2)
	chk.Int(tst, "fixed and nonlinear", e.SetMultiElasticProp(bad), 1)

	kind, _ := e.LinkPropType("B")
	chk.Int(tst, "kind", int(kind), int(sap.LinkMultiElastic))

	w := sap.WenData{}
	w.Exp[1] = 0.5
	d.Name = "W"
	chk.Int(tst, "wen exponent", e.SetPlasticWenProp(d, w), 1)
	w.Exp[1] = 2
	chk.Int(tst, "wen", e.SetPlasticWenProp(d, w), 0)
}

func Test_engine04(tst *testing.T) {

	chk.PrintTitle("engine04. results and combinations")

	e := New()
	e.AddPoint(0, 0, 0, "P")
	e.AddPoint(0, 0, 1, "Q")
	e.SetLinearProp(sap.LinkPropData{Name: "L", DOF: sap.AllDOF})
	e.AddLink("P", "Q", "L", "K")
	e.SetGroup("G")
	e.AssignToGroup(sap.ObjLink, "K", "G")
	e.SetStaticLinear("EX", []sap.CaseLoad{{Type: "Load", Name: "EX", SF: 1}})
	chk.Int(tst, "static accel", e.SetStaticLinear("GZ", []sap.CaseLoad{{Type: "Accel", Name: "U3", SF: 9.81}}), 0)
	chk.Int(tst, "static accel direction", e.SetStaticLinear("GX", []sap.CaseLoad{{Type: "Accel", Name: "Z", SF: 1}}), 1)
	if _, found := e.StaticLoads("GX"); found {
		tst.Errorf("rejected static case should not be stored")
	}

	_, ret := e.LinkForce("K", sap.ObjectElm)
	chk.Int(tst, "unlocked query", ret, 1)

	e.SeedLinkForce(sap.DefaultDeadCase, "K", sap.ForceRow{P: -3}, sap.ForceRow{P: 3})
	e.SeedLinkForce("EX", "K", sap.ForceRow{P: -4}, sap.ForceRow{P: 4})
	e.RunAnalysis()

	e.DeselectAllForOutput()
	e.SelectCaseForOutput(sap.DefaultDeadCase)
	rows, ret := e.LinkForce("G", sap.GroupElm)
	chk.Int(tst, "group query", ret, 0)
	chk.Int(tst, "rows", len(rows), 2)
	chk.Float64(tst, "P", 1e-15, rows[0].P, -3)
	chk.String(tst, rows[0].Case, sap.DefaultDeadCase)
	chk.String(tst, rows[1].Obj, "K")

	e.AddCombo("C", sap.ComboSRSS)
	chk.Int(tst, "combo item", e.SetComboCase("C", sap.ComboItem{Name: sap.DefaultDeadCase, SF: 1}), 0)
	e.SetComboCase("C", sap.ComboItem{Name: "EX", SF: 1})
	chk.Int(tst, "missing case", e.SetComboCase("C", sap.ComboItem{Name: "none", SF: 1}), 1)
	e.DeselectAllForOutput()
	e.SelectComboForOutput("C")
	rows, _ = e.LinkForce("K", sap.ObjectElm)
	chk.Int(tst, "combo rows", len(rows), 2)
	chk.Float64(tst, "srss", 1e-12, rows[1].P, 5)

	e.AddCombo("A", sap.ComboAbsAdd)
	e.SetComboCase("A", sap.ComboItem{Name: sap.DefaultDeadCase, SF: 1})
	e.SetComboCase("A", sap.ComboItem{Name: "EX", SF: -1})
	e.DeselectAllForOutput()
	e.SelectComboForOutput("A")
	rows, _ = e.LinkForce("K", sap.ObjectElm)
	chk.Float64(tst, "abs", 1e-12, rows[0].P, 7)

	e.SeedReaction(sap.DefaultDeadCase, "P", sap.JointRow{F3: 12})
	e.DeselectAllForOutput()
	e.SelectCaseForOutput(sap.DefaultDeadCase)
	reac, _ := e.JointReaction("P", sap.ObjectElm)
	chk.Int(tst, "reactions", len(reac), 1)
	chk.Float64(tst, "F3", 1e-15, reac[0].F3, 12)

	chk.Int(tst, "delete locked", e.DeleteLink("K"), 1)
	e.SetModelLocked(false)
	chk.Int(tst, "delete", e.DeleteLink("K"), 0)
	members, _ := e.GroupAssignments("G")
	chk.Int(tst, "group emptied", len(members), 0)
}

func Test_engine05(tst *testing.T) {

	chk.PrintTitle("engine05. cases and script")

	e := New()
	chk.Int(tst, "spectrum without function", e.SetResponseSpectrum("RS", sap.SpectrumCase{
		ModalCase: "MODAL",
		Loads:     []sap.CaseLoad{{Type: "Accel", Name: "U1", Func: "F", SF: 9.81}},
	}), 1)
	e.SetSpectrumFunction("F", []float64{0, 1, 2}, []float64{0.4, 1, 0.5}, 0.05)
	chk.Int(tst, "spectrum", e.SetResponseSpectrum("RS", sap.SpectrumCase{
		ModalCase: "MODAL",
		Loads:     []sap.CaseLoad{{Type: "Accel", Name: "U1", Func: "F", SF: 9.81}},
	}), 0)
	kind, _ := e.CaseType("RS")
	chk.Int(tst, "kind", int(kind), int(sap.CaseSpectrum))

	chk.Int(tst, "history bad dt", e.SetDirectHistory("TH", sap.HistoryCase{Steps: 10}), 1)
	chk.Int(tst, "history", e.SetDirectHistory("TH", sap.HistoryCase{
		Steps: 10, Dt: 0.01, Rayleigh: &sap.Rayleigh{Period1: 0.1, Period2: 1, Damping1: 0.05, Damping2: 0.05},
	}), 0)
	h, found := e.HistoryCase("TH")
	if !found || h.Rayleigh == nil {
		tst.Errorf("history case should keep its damping")
	}

	chk.Int(tst, "calls", e.Calls("Func.FuncRS.SetUser"), 1)
	var buf bytes.Buffer
	if err := e.WriteScript(&buf); err != nil {
		tst.Errorf("write script: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	chk.Int(tst, "script lines", len(lines), len(e.Script()))
}

func Test_model01(tst *testing.T) {

	chk.PrintTitle("model01. error mapping and unit scope")

	var rec logger.Recorder
	log := logger.New(logger.Trace)
	log.SetSink(rec.Sink())
	m := sap.NewModel(New(), log)

	err := m.Check("PointObj.SetRestraint", m.Engine().SetRestraint("none", sap.AllDOF))
	if !sap.IsCallError(err) {
		tst.Errorf("expected a call error, got %v", err)
	}

	fail := errors.New("boom")
	err = m.WithUnits(sap.KNmmC, func() error {
		chk.Int(tst, "inside", int(m.Engine().PresentUnits()), int(sap.KNmmC))
		return fail
	})
	if err != fail {
		tst.Errorf("WithUnits should return the callback error")
	}
	chk.Int(tst, "restored", int(m.Engine().PresentUnits()), int(sap.DefaultUnits))

	m.Report(nil, sap.ErrDataMissing)
	m.Report(nil, &sap.CallError{Verb: "x", Code: 1})
	chk.Int(tst, "errors", rec.Count(logger.Error), 1)
	chk.Int(tst, "warnings", rec.Count(logger.Warn), 1)
}

func Test_model02(tst *testing.T) {

	chk.PrintTitle("model02. ensure analyzed")

	e := New()
	m := sap.NewModel(e, nil)
	e.AddPoint(0, 0, 0, "P")
	e.SetStaticLinear("EX", nil)

	if err := m.EnsureAnalyzed(); err != nil {
		tst.Errorf("ensure analyzed: %v", err)
		return
	}
	if !m.IsLocked() {
		tst.Errorf("model should be locked")
	}
	chk.String(tst, e.ModelPath(), "bridge.sdb")
	if !e.Ran(sap.DefaultDeadCase) || e.Ran("EX") || e.Ran("MODAL") {
		tst.Errorf("only the dead case should run")
	}
	runs := e.Calls("Analyze.RunAnalysis")
	if err := m.EnsureAnalyzed(); err != nil {
		tst.Errorf("second call: %v", err)
	}
	chk.Int(tst, "no rerun", e.Calls("Analyze.RunAnalysis"), runs)

	if err := m.Unlock(); err != nil || m.IsLocked() {
		tst.Errorf("unlock failed")
	}
}
