package seismic

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/sap/memsap"
	"github.com/cpmech/gosl/chk"
)

const spectrumFile = `E2 design spectrum
T(s)   Sa(g)
0.00   0.40
0.10   1.00
0.50   1.00
2.00   0.25
`

const datFile = `4 0.02
0.1 0.2
-0.3 0.4
3 0.01
1.0
2.0 3.0
`

func Test_records01(tst *testing.T) {

	chk.PrintTitle("records01. spectrum, history and DAT files")

	s, err := ReadSpectrum(strings.NewReader(spectrumFile))
	if err != nil {
		tst.Errorf("spectrum: %v", err)
		return
	}
	chk.Array(tst, "periods", 1e-15, s.Periods, []float64{0, 0.1, 0.5, 2})
	chk.Array(tst, "values", 1e-15, s.Values, []float64{0.4, 1, 1, 0.25})
	t, v := s.Max()
	chk.Float64(tst, "peak period", 1e-15, t, 0.1)
	chk.Float64(tst, "peak", 1e-15, v, 1)
	chk.Float64(tst, "interpolated", 1e-12, s.At(1.25), 0.625)
	chk.Float64(tst, "beyond table", 1e-15, s.At(3), 0.25)
	chk.Array(tst, "resampled", 1e-12, s.Resample(3), []float64{0.4, 0.75, 0.25})

	if _, err := ReadSpectrum(strings.NewReader("header only\n")); !errors.Is(err, sap.ErrDataMissing) {
		tst.Errorf("empty spectrum should report missing data")
	}

	h, err := ReadHistory(strings.NewReader("acc (g)\n0.1\n0.2 0.3\n"), 0.005)
	if err != nil {
		tst.Errorf("one column: %v", err)
		return
	}
	chk.Array(tst, "one column times", 1e-15, h.Times, []float64{0, 0.005, 0.01})
	chk.Float64(tst, "dt", 1e-15, h.Dt(), 0.005)

	h, _ = ReadHistory(strings.NewReader("t a\n0 0\n0.01 1.5\n0.02 -2\n"), 0)
	chk.Array(tst, "two column values", 1e-15, h.Values, []float64{0, 1.5, -2})
	chk.Float64(tst, "duration", 1e-15, h.Duration(), 0.02)
	if _, err := ReadHistory(strings.NewReader("t a\n"), 0.01); !errors.Is(err, sap.ErrDataMissing) {
		tst.Errorf("empty history should report missing data")
	}
	if _, err := ReadHistory(strings.NewReader("1\n2\n"), 0); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("one column without dt should be rejected")
	}

	recs, err := ReadDAT(strings.NewReader(datFile), "W")
	if err != nil {
		tst.Errorf("dat: %v", err)
		return
	}
	chk.Int(tst, "records", len(recs), 2)
	chk.String(tst, recs[1].Name, "W_2")
	chk.Array(tst, "first", 1e-15, recs[0].Values, []float64{0.1, 0.2, -0.3, 0.4})
	chk.Array(tst, "second times", 1e-15, recs[1].Times, []float64{0, 0.01, 0.02})
	if _, err := ReadDAT(strings.NewReader("4 0.02\n1 2 3\n"), "W"); err == nil {
		tst.Errorf("short record should be rejected")
	}

	chk.Float64(tst, "g to cm/s2", 1e-12, Factor(G, CMS2), 981)
	chk.Float64(tst, "cm/s2 to m/s2", 1e-15, Factor(CMS2, MS2), 0.01)
	u, _ := ParseAccelUnit("m/s^2")
	chk.String(tst, string(u), string(MS2))
	if _, err := ParseAccelUnit("ft/s2"); !errors.Is(err, sap.ErrUnsupported) {
		tst.Errorf("unknown unit should be unsupported")
	}
}

func Test_cases01(tst *testing.T) {

	chk.PrintTitle("cases01. spectrum against averaged histories")

	e := memsap.New()
	m := sap.NewModel(e, nil)
	e.AddPoint(0, 0, 0, "a")
	e.AddPoint(0, 0, 1, "b")
	e.SetLinearProp(sap.LinkPropData{Name: "P", DOF: sap.AllDOF})
	e.AddLink("a", "b", "P", "L")

	if err := DefineDead(m); err != nil {
		tst.Errorf("dead: %v", err)
	}
	dead, found := e.StaticLoads(m.DeadCase)
	if !found {
		tst.Errorf("dead case is missing")
		return
	}
	chk.Int(tst, "dead loads", len(dead), 1)
	chk.String(tst, dead[0].Type, "Accel")
	chk.String(tst, dead[0].Name, "U3")
	chk.String(tst, dead[0].Func, "")
	chk.Float64(tst, "gravity", 1e-15, dead[0].SF, 9.81)
	if err := DefineModal(m, DefaultModalCase, 0); err != nil {
		tst.Errorf("modal: %v", err)
	}
	s, _ := ReadSpectrum(strings.NewReader(spectrumFile))
	if err := DefineSpectrumFunction(m, "E2Spectrum", s, 0.02); err != nil {
		tst.Errorf("function: %v", err)
	}
	xs := Longitudinal("E2Spectrum", G, DefaultVertical)
	chk.Int(tst, "excitations", len(xs), 2)
	chk.String(tst, xs[0].Dir, "U1")
	chk.String(tst, xs[1].Dir, "U3")
	chk.Float64(tst, "vertical scale", 1e-15, xs[1].Scale, 0.65)
	if err := DefineSpectrumCase(m, "E2X", DefaultModalCase, xs, sap.SRSS, 0.05); err != nil {
		tst.Errorf("spectrum case: %v", err)
	}
	rs, _ := e.SpectrumCase("E2X")
	chk.Int(tst, "loads", len(rs.Loads), 2)
	chk.Float64(tst, "U1 factor", 1e-12, rs.Loads[0].SF, 9.81)
	chk.Float64(tst, "U3 factor", 1e-12, rs.Loads[1].SF, 0.65*9.81)
	if rs.ModalCombo != sap.SRSS {
		tst.Errorf("modal combination should be SRSS")
	}

	recs, _ := ReadDAT(strings.NewReader(datFile), "W")
	names, err := DefineRecords(m, "E2X", DefaultModalCase, recs, xs, 0.05)
	if err != nil {
		tst.Errorf("records: %v", err)
		return
	}
	chk.Strings(tst, "history cases", names, []string{"E2X_W_1", "E2X_W_2"})
	hc, _ := e.HistoryCase("E2X_W_2")
	chk.Int(tst, "steps", hc.Steps, 3)
	chk.Float64(tst, "dt", 1e-15, hc.Dt, 0.01)
	chk.String(tst, hc.Loads[0].Func, "W_2")
	chk.Int(tst, "history loads", len(hc.Loads), 2)
	chk.String(tst, hc.Loads[1].Name, "U3")
	chk.String(tst, hc.Loads[1].Func, "W_2")

	if err := AverageCombo(m, "E2X_TH", names); err != nil {
		tst.Errorf("average: %v", err)
	}
	items, _ := e.ComboCases("E2X_TH")
	chk.Float64(tst, "1/N", 1e-15, items[1].SF, 0.5)
	kind, _ := e.ComboKind("E2X_TH")
	if kind != sap.ComboAbsAdd {
		tst.Errorf("average should be AbsAdd")
	}

	e.SeedLinkForce("E2X_W_1", "L", sap.ForceRow{V2: 10})
	e.SeedLinkForce("E2X_W_2", "L", sap.ForceRow{V2: -14})
	e.RunAnalysis()
	m.SelectOnlyCombo("E2X_TH")
	rows, ret := e.LinkForce("L", sap.ObjectElm)
	chk.Int(tst, "results", ret, 0)
	chk.Float64(tst, "mean shear", 1e-12, rows[0].V2, 12)

	if err := DefineDirectHistory(m, "E2X_DI", xs, HistoryOptions{Steps: 10, Dt: 0.01}); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("direct history without periods should be rejected")
	}
	if err := DefineSpectrumCase(m, "bad", DefaultModalCase, []Excitation{{Dir: "X"}}, sap.SRSS, 0.05); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("bad direction should be rejected")
	}
}

func Test_combos01(tst *testing.T) {

	chk.PrintTitle("combos01. factored design combinations")

	v, gov := Governing(100, 50, DesignCombinations)
	chk.Float64(tst, "governing", 1e-12, v, 170)
	chk.String(tst, gov.ID, "2")
	v, gov = Governing(-100, 50, DesignCombinations)
	chk.Float64(tst, "uplift", 1e-12, v, -40)
	chk.String(tst, gov.ID, "3")

	e := memsap.New()
	m := sap.NewModel(e, nil)
	e.SetStaticLinear("EQ", nil)
	if err := Average("AVG", []string{"EQ"}).Define(m); err != nil {
		tst.Errorf("average: %v", err)
	}
	c := DesignCombinations[1].Combo("D+E", "DEAD", "AVG", true)
	if err := c.Define(m); err != nil {
		tst.Errorf("design combination: %v", err)
	}
	items, _ := e.ComboCases("D+E")
	chk.Float64(tst, "dead factor", 1e-15, items[0].SF, 1.2)
	if !items[1].IsCombo {
		tst.Errorf("earthquake entry should be a nested combination")
	}
	names, err := DefineDesign(m, "AVG", true)
	if err != nil {
		tst.Errorf("design set: %v", err)
	}
	chk.Strings(tst, "design names", names, []string{"AVG_D1", "AVG_D2", "AVG_D3"})
	items, _ = e.ComboCases("AVG_D3")
	chk.String(tst, items[0].Name, sap.DefaultDeadCase)
	chk.Float64(tst, "uplift dead factor", 1e-15, items[0].SF, 0.9)

	if err := (Combo{Name: "empty"}).Define(m); !errors.Is(err, sap.ErrDataMissing) {
		tst.Errorf("empty combination should report missing data")
	}
}

func Test_rayleigh01(tst *testing.T) {

	chk.PrintTitle("rayleigh01. control period selection")

	table := `Mode Period UX UY UZ
1 2.50 0.02 0.65 0.00
2 1.80 0.70 0.01 0.00
3 0.90 0.05 0.20 0.05
4 0.40 0.15 0.05 0.30
5 0.20 0.05 0.06 0.62
`
	r, err := ReadModalTable(strings.NewReader(table))
	if err != nil {
		tst.Errorf("table: %v", err)
		return
	}
	chk.Array(tst, "sum UY", 1e-12, r.SumUY, []float64{0.65, 0.66, 0.86, 0.91, 0.97})

	ps, err := RayleighPeriods(r, FirstRatio, SecondRatio)
	if err != nil {
		tst.Errorf("periods: %v", err)
		return
	}
	chk.Float64(tst, "X first", 1e-15, ps["X"].First, 1.8)
	chk.Float64(tst, "X second", 1e-15, ps["X"].Second, 0.4)
	chk.Float64(tst, "Y first", 1e-15, ps["Y"].First, 2.5)
	chk.Float64(tst, "Y second", 1e-15, ps["Y"].Second, 0.4)
	chk.Int(tst, "Z first mode", ps["Z"].FirstMode, 4)
	chk.Float64(tst, "Z second", 1e-15, ps["Z"].Second, 0.2)
	for _, p := range ps {
		if p.First < p.Second {
			tst.Errorf("direction %s: first period below second", p.Dir)
		}
	}
	chk.Float64(tst, "effective Z", 1e-15, EffectiveZ(ps["Y"], ps["Z"]), 0.2)
	ray := ps["X"].Rayleigh(0.05, 0.05)
	chk.Float64(tst, "rayleigh period", 1e-15, ray.Period2, 0.4)

	r.UZ = []float64{0, 0, 0.05, 0.05, 0.05}
	r.SumUZ = nil
	if _, err := RayleighPeriods(r, FirstRatio, SecondRatio); !errors.Is(err, sap.ErrDataMissing) {
		tst.Errorf("direction without dominant mode should report missing data")
	}

	// mass spread over small modes: the cumulative threshold is met before
	// any single mode carries enough
	p, err := SelectPeriods("X", []float64{2, 1.5, 1, 0.5}, []float64{0.2, 0.2, 0.2, 0.35}, nil, 0.3, 0.5)
	if !errors.Is(err, sap.ErrContract) {
		tst.Errorf("first period below second should be rejected, got %v", err)
	}
	chk.Int(tst, "late first mode", p.FirstMode, 4)
	chk.Int(tst, "early second mode", p.SecondMode, 3)

	e := memsap.New()
	m := sap.NewModel(e, nil)
	if _, err := ReadModalRatios(m); !errors.Is(err, sap.ErrContract) {
		tst.Errorf("unlocked model has no modal results")
	}
}
