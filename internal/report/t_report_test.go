package report

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

func model(tst *testing.T) (*memsap.Engine, *sap.Model) {
	e := memsap.New()
	m := sap.NewModel(e, nil)
	for i, p := range []string{"#1_Base", "pad1", "pad2", "top1", "top2"} {
		e.AddPoint(float64(i), 0, 0, p)
	}
	e.SetLinearProp(sap.LinkPropData{Name: "P", DOF: sap.AllDOF})
	e.AddLink("pad1", "top1", "P", "B1")
	e.AddLink("pad2", "top2", "P", "B2")
	if err := m.Group(BearingGroup("#1"), sap.ObjLink, "B1", "B2"); err != nil {
		tst.Fatalf("bearing group: %v", err)
	}
	if err := m.Group(BaseGroup("#1"), sap.ObjPoint, "#1_Base"); err != nil {
		tst.Fatalf("base group: %v", err)
	}
	e.SetStaticLinear("RS", nil)
	e.SetStaticLinear("TH", nil)
	return e, m
}

func Test_report01(tst *testing.T) {

	chk.PrintTitle("report01. pier extraction and comparison")

	e, m := model(tst)
	if _, err := Extract(m, []string{"#1"}, Case("RS")); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("unlocked model should be rejected")
	}

	e.SeedLinkForce("RS", "B1", sap.ForceRow{V2: 30, V3: 40})
	e.SeedLinkForce("RS", "B2", sap.ForceRow{V2: -10})
	e.SeedLinkForce("TH", "B2", sap.ForceRow{V2: 0, V3: -60})
	e.SeedDeformation("RS", "B1", sap.DeformRow{U: [6]float64{0.001, 0.03, -0.04}})
	e.SeedDeformation("RS", "B2", sap.DeformRow{U: [6]float64{0, 0.01}})
	e.SeedDeformation("TH", "B2", sap.DeformRow{U: [6]float64{0, 0, -0.1}})
	e.SeedReaction("RS", "#1_Base", sap.JointRow{F1: 300, F2: -400, F3: 5000})
	e.SeedReaction("TH", "#1_Base", sap.JointRow{F1: 600, F2: 800, F3: 5000})
	e.RunAnalysis()

	rs, err := Extract(m, []string{"#1"}, Case("RS"))
	if err != nil {
		tst.Errorf("extract: %v", err)
		return
	}
	chk.String(tst, rs[0].Link, "B1")
	chk.Float64(tst, "shear", 1e-12, rs[0].Shear, 50)
	chk.Float64(tst, "F2", 1e-12, rs[0].F2, 400)
	chk.String(tst, rs[0].DeformLink, "B1")
	chk.Float64(tst, "deformation", 1e-12, rs[0].Deform, 0.05)
	chk.Float64(tst, "U3", 1e-15, rs[0].U3, 0.04)

	cs, err := Compare(m, []string{"#1"}, Case("RS"), Case("TH"))
	if err != nil {
		tst.Errorf("compare: %v", err)
		return
	}
	chk.String(tst, cs[0].History.Link, "B2")
	chk.Float64(tst, "shear ratio", 1e-12, cs[0].ShearRatio(), 1.2)
	chk.Float64(tst, "base ratio", 1e-12, cs[0].ReactionRatio(), 2)
	chk.String(tst, cs[0].History.DeformLink, "B2")
	chk.Float64(tst, "deform ratio", 1e-12, cs[0].DeformRatio(), 2)

	total, _ := TotalVertical(m, []string{"#1"}, Case("TH"))
	chk.Float64(tst, "vertical", 1e-12, total, 5000)

	var buf bytes.Buffer
	WriteComparison(&buf, cs)
	if !strings.Contains(buf.String(), "1.200") {
		tst.Errorf("comparison table should carry the ratio:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "0.1000") || !strings.Contains(buf.String(), "Deform ratio") {
		tst.Errorf("comparison table should carry the deformations:\n%s", buf.String())
	}
}

func Test_report02(tst *testing.T) {

	chk.PrintTitle("report02. modal table and workbook")

	r := sap.ModalRatios{
		Periods: []float64{2.5, 1.8},
		UX:      []float64{0.02, 0.7},
		UY:      []float64{0.65, 0.01},
		UZ:      []float64{0, 0},
		SumUX:   []float64{0.02, 0.72},
		SumUY:   []float64{0.65, 0.66},
		SumUZ:   []float64{0, 0},
	}
	var buf bytes.Buffer
	if err := WriteModal(&buf, r); err != nil {
		tst.Errorf("modal table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	chk.Int(tst, "lines", len(lines), 2+1+2)
	if !strings.Contains(lines[4], "1.8000") {
		tst.Errorf("second mode row: %q", lines[4])
	}

	cs := []Comparison{
		{Pier: "#1", Spectrum: PierResult{Shear: 100, F1: 3, F2: 4, Deform: 0.05}, History: PierResult{Link: "B1", Shear: 90, F1: 6, F2: 8, Deform: 0.1}},
		{Pier: "#2", History: PierResult{Shear: 5}},
	}
	path := filepath.Join(tst.TempDir(), "summary.xlsx")
	if err := ExportXLSX(path, r, cs); err != nil {
		tst.Errorf("export: %v", err)
		return
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		tst.Errorf("open: %v", err)
		return
	}
	defer f.Close()
	chk.Strings(tst, "sheets", f.GetSheetList(), []string{ModalSheet, ComparisonSheet})
	rows, _ := f.GetRows(ModalSheet)
	chk.Int(tst, "modal rows", len(rows), 3)
	chk.String(tst, rows[2][1], "1.8")
	rows, _ = f.GetRows(ComparisonSheet)
	chk.Int(tst, "comparison rows", len(rows), 3)
	chk.String(tst, rows[1][4], "0.9")
	chk.String(tst, rows[1][7], "2")
	chk.String(tst, rows[0][10], "Deform ratio")
	chk.String(tst, rows[1][8], "0.05")
	chk.String(tst, rows[1][10], "2")
}
