package memsap

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

type loadCase struct {
	kind     sap.CaseKind
	loads    []sap.CaseLoad
	initial  string
	maxModes int
	minModes int
	spectrum *sap.SpectrumCase
	history  *sap.HistoryCase
}

type combo struct {
	kind  sap.ComboKind
	items []sap.ComboItem
}

// load cases ///////////////////////////////////////////////////////////////

func (e *Engine) setCase(name string, c *loadCase) int {
	if name == "" {
		return failed
	}
	e.cases[name] = c
	if _, found := e.runFlags[name]; !found {
		e.runFlags[name] = true
	}
	return ok
}

func (e *Engine) SetStaticLinear(name string, loads []sap.CaseLoad) int {
	e.record("LoadCases.StaticLinear.SetCase", name, loads)
	if !e.checkLoads(loads, true) {
		return failed
	}
	return e.setCase(name, &loadCase{kind: sap.CaseStaticLinear, loads: append([]sap.CaseLoad(nil), loads...)})
}

func (e *Engine) SetModalEigen(name, initialCase string, maxModes, minModes int) int {
	e.record("LoadCases.ModalEigen.SetCase", name, initialCase, maxModes, minModes)
	if maxModes < 1 || minModes > maxModes {
		return failed
	}
	if initialCase != "" {
		if _, found := e.cases[initialCase]; !found {
			return failed
		}
	}
	return e.setCase(name, &loadCase{kind: sap.CaseModalEigen, initial: initialCase, maxModes: maxModes, minModes: minModes})
}

// checkLoads validates acceleration loads; a static acceleration is a plain
// scale factor and drives no function
func (e *Engine) checkLoads(loads []sap.CaseLoad, static bool) bool {
	for _, l := range loads {
		if l.Type == "Accel" {
			if l.Name != "U1" && l.Name != "U2" && l.Name != "U3" {
				return false
			}
			if static {
				continue
			}
			if _, found := e.functions[l.Func]; !found {
				return false
			}
		}
	}
	return true
}

func (e *Engine) SetResponseSpectrum(name string, c sap.SpectrumCase) int {
	e.record("LoadCases.ResponseSpectrum.SetCase", name, c.ModalCase, c.Loads, c.ModalCombo, c.Damping)
	if !e.checkLoads(c.Loads, false) {
		return failed
	}
	if mc, found := e.cases[c.ModalCase]; !found || mc.kind != sap.CaseModalEigen {
		return failed
	}
	c.Loads = append([]sap.CaseLoad(nil), c.Loads...)
	return e.setCase(name, &loadCase{kind: sap.CaseSpectrum, spectrum: &c})
}

func (e *Engine) SetModalHistory(name string, c sap.HistoryCase) int {
	e.record("LoadCases.ModHistNonlinear.SetCase", name, c.ModalCase, c.Loads, c.Steps, c.Dt, c.Damping)
	if !e.checkLoads(c.Loads, false) || c.Steps < 1 || c.Dt <= 0 {
		return failed
	}
	if mc, found := e.cases[c.ModalCase]; !found || mc.kind != sap.CaseModalEigen {
		return failed
	}
	c.Loads = append([]sap.CaseLoad(nil), c.Loads...)
	return e.setCase(name, &loadCase{kind: sap.CaseModalHistory, history: &c})
}

func (e *Engine) SetDirectHistory(name string, c sap.HistoryCase) int {
	e.record("LoadCases.DirHistNonlinear.SetCase", name, c.Integration, c.Loads, c.Steps, c.Dt, c.Rayleigh)
	if !e.checkLoads(c.Loads, false) || c.Steps < 1 || c.Dt <= 0 {
		return failed
	}
	if c.InitialCase != "" {
		if _, found := e.cases[c.InitialCase]; !found {
			return failed
		}
	}
	c.Loads = append([]sap.CaseLoad(nil), c.Loads...)
	return e.setCase(name, &loadCase{kind: sap.CaseDirectHistory, history: &c})
}

func (e *Engine) CaseType(name string) (sap.CaseKind, int) {
	c, found := e.cases[name]
	if !found {
		return 0, failed
	}
	return c.kind, ok
}

func (e *Engine) CaseNames() ([]string, int) {
	return sortedKeys(e.cases), ok
}

// StaticLoads returns the loads of a static-linear case
func (e *Engine) StaticLoads(name string) ([]sap.CaseLoad, bool) {
	c, found := e.cases[name]
	if !found || c.kind != sap.CaseStaticLinear {
		return nil, false
	}
	return append([]sap.CaseLoad(nil), c.loads...), true
}

// SpectrumCase returns the stored definition of a response-spectrum case
func (e *Engine) SpectrumCase(name string) (sap.SpectrumCase, bool) {
	c, found := e.cases[name]
	if !found || c.spectrum == nil {
		return sap.SpectrumCase{}, false
	}
	return *c.spectrum, true
}

// HistoryCase returns the stored definition of a time-history case
func (e *Engine) HistoryCase(name string) (sap.HistoryCase, bool) {
	c, found := e.cases[name]
	if !found || c.history == nil {
		return sap.HistoryCase{}, false
	}
	return *c.history, true
}

// functions ////////////////////////////////////////////////////////////////

func (e *Engine) SetSpectrumFunction(name string, periods, values []float64, damping float64) int {
	e.record("Func.FuncRS.SetUser", name, len(periods), damping)
	if name == "" || len(periods) == 0 || len(periods) != len(values) || damping < 0 {
		return failed
	}
	e.functions[name] = [2][]float64{append([]float64(nil), periods...), append([]float64(nil), values...)}
	return ok
}

func (e *Engine) SetHistoryFunction(name string, times, values []float64) int {
	e.record("Func.FuncTH.SetUser", name, len(times))
	if name == "" || len(times) == 0 || len(times) != len(values) {
		return failed
	}
	e.functions[name] = [2][]float64{append([]float64(nil), times...), append([]float64(nil), values...)}
	return ok
}

func (e *Engine) FunctionNames() ([]string, int) {
	return sortedKeys(e.functions), ok
}

// Function returns the abscissae and ordinates of a stored function
func (e *Engine) Function(name string) ([]float64, []float64, bool) {
	f, found := e.functions[name]
	return f[0], f[1], found
}

// combinations /////////////////////////////////////////////////////////////

func (e *Engine) AddCombo(name string, kind sap.ComboKind) int {
	e.record("RespCombo.Add", name, kind)
	if name == "" || kind < sap.ComboLinearAdd || kind > sap.ComboRangeAdd {
		return failed
	}
	if _, found := e.cases[name]; found {
		return failed
	}
	e.combos[name] = &combo{kind: kind}
	return ok
}

func (e *Engine) SetComboCase(name string, item sap.ComboItem) int {
	e.record("RespCombo.SetCaseList", name, item.Name, item.IsCombo, item.SF)
	c, found := e.combos[name]
	if !found {
		return failed
	}
	if item.IsCombo {
		if _, found := e.combos[item.Name]; !found || item.Name == name {
			return failed
		}
	} else if _, found := e.cases[item.Name]; !found {
		return failed
	}
	for i, it := range c.items {
		if it.Name == item.Name && it.IsCombo == item.IsCombo {
			c.items[i] = item
			return ok
		}
	}
	c.items = append(c.items, item)
	return ok
}

func (e *Engine) ComboCases(name string) ([]sap.ComboItem, int) {
	c, found := e.combos[name]
	if !found {
		return nil, failed
	}
	return append([]sap.ComboItem(nil), c.items...), ok
}

func (e *Engine) ComboNames() ([]string, int) {
	return sortedKeys(e.combos), ok
}

// ComboKind returns the type of a stored combination
func (e *Engine) ComboKind(name string) (sap.ComboKind, bool) {
	c, found := e.combos[name]
	if !found {
		return 0, false
	}
	return c.kind, true
}

// analysis /////////////////////////////////////////////////////////////////

func (e *Engine) SetRunFlag(caseName string, run bool) int {
	e.record("Analyze.SetRunCaseFlag", caseName, run)
	if _, found := e.cases[caseName]; !found {
		return failed
	}
	e.runFlags[caseName] = run
	return ok
}

func (e *Engine) RunFlag(caseName string) (bool, int) {
	run, found := e.runFlags[caseName]
	if !found {
		return false, failed
	}
	return run, ok
}

// RunAnalysis locks the model and marks every flagged case as run. There is
// no solver behind it: results come from the Seed* methods.
func (e *Engine) RunAnalysis() int {
	e.record("Analyze.RunAnalysis")
	if len(e.points) == 0 {
		return failed
	}
	e.locked = true
	for name, run := range e.runFlags {
		if run {
			e.ran[name] = true
		}
	}
	return ok
}

// Ran reports whether a case was part of the last analysis run
func (e *Engine) Ran(caseName string) bool { return e.ran[caseName] }

// results //////////////////////////////////////////////////////////////////

func (e *Engine) DeselectAllForOutput() int {
	e.record("Results.Setup.DeselectAllCasesAndCombosForOutput")
	e.selectedCases = make(map[string]bool)
	e.selectedCombos = make(map[string]bool)
	return ok
}

func (e *Engine) SelectCaseForOutput(name string) int {
	e.record("Results.Setup.SetCaseSelectedForOutput", name)
	if _, found := e.cases[name]; !found {
		return failed
	}
	e.selectedCases[name] = true
	return ok
}

func (e *Engine) SelectComboForOutput(name string) int {
	e.record("Results.Setup.SetComboSelectedForOutput", name)
	if _, found := e.combos[name]; !found {
		return failed
	}
	e.selectedCombos[name] = true
	return ok
}

// SeedLinkForce stores the rows LinkForce returns for one link and case
func (e *Engine) SeedLinkForce(caseName, linkName string, rows ...sap.ForceRow) {
	if e.seedLinkForce[caseName] == nil {
		e.seedLinkForce[caseName] = make(map[string][]sap.ForceRow)
	}
	e.seedLinkForce[caseName][linkName] = rows
}

// SeedReaction stores the row JointReaction returns for one point and case
func (e *Engine) SeedReaction(caseName, pointName string, row sap.JointRow) {
	if e.seedReaction[caseName] == nil {
		e.seedReaction[caseName] = make(map[string][]sap.JointRow)
	}
	e.seedReaction[caseName][pointName] = []sap.JointRow{row}
}

// SeedDeformation stores the row LinkDeformation returns for one link and case
func (e *Engine) SeedDeformation(caseName, linkName string, row sap.DeformRow) {
	if e.seedDeform[caseName] == nil {
		e.seedDeform[caseName] = make(map[string][]sap.DeformRow)
	}
	e.seedDeform[caseName][linkName] = []sap.DeformRow{row}
}

// SeedModalRatios stores the table ModalParticipatingMassRatios returns
func (e *Engine) SeedModalRatios(r sap.ModalRatios) {
	e.seedModal = &r
}

func (e *Engine) targets(name string, item sap.ItemType, kind sap.ObjectKind) ([]string, bool) {
	switch item {
	case sap.ObjectElm, sap.Element:
		if !e.exists(kind, name) {
			return nil, false
		}
		return []string{name}, true
	case sap.GroupElm:
		members, found := e.groups[name]
		if !found {
			return nil, false
		}
		var out []string
		for _, m := range members {
			if m.Kind == kind {
				out = append(out, m.Name)
			}
		}
		return out, true
	}
	return nil, false
}

// outputCases returns selected cases that have results, in name order
func (e *Engine) outputCases() []string {
	var out []string
	for c := range e.selectedCases {
		if e.ran[c] {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

func (e *Engine) outputCombos() []string {
	var out []string
	for c := range e.selectedCombos {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (e *Engine) caseLinkForce(caseName, linkName string) []sap.ForceRow {
	rows := e.seedLinkForce[caseName][linkName]
	if rows == nil {
		l := e.links[linkName]
		rows = []sap.ForceRow{{Point: l.i}, {Point: l.j}}
	}
	out := make([]sap.ForceRow, len(rows))
	for i, r := range rows {
		r.Obj, r.Elm, r.Case = linkName, linkName, caseName
		out[i] = r
	}
	return out
}

// comboCases flattens a combination into its cases with accumulated factors
func (e *Engine) comboCases(name string, sf float64, depth int) []sap.ComboItem {
	c := e.combos[name]
	if c == nil || depth > 8 {
		return nil
	}
	var out []sap.ComboItem
	for _, it := range c.items {
		if it.IsCombo {
			out = append(out, e.comboCases(it.Name, sf*it.SF, depth+1)...)
			continue
		}
		if e.ran[it.Name] {
			out = append(out, sap.ComboItem{Name: it.Name, SF: sf * it.SF})
		}
	}
	return out
}

func combine(kind sap.ComboKind, parts [][]float64) []float64 {
	if len(parts) == 0 {
		return nil
	}
	out := make([]float64, len(parts[0]))
	for i := range out {
		switch kind {
		case sap.ComboAbsAdd:
			for _, p := range parts {
				out[i] += math.Abs(p[i])
			}
		case sap.ComboSRSS:
			for _, p := range parts {
				out[i] += p[i] * p[i]
			}
			out[i] = math.Sqrt(out[i])
		case sap.ComboEnvelope:
			out[i] = parts[0][i]
			for _, p := range parts[1:] {
				if math.Abs(p[i]) > math.Abs(out[i]) {
					out[i] = p[i]
				}
			}
		default:
			for _, p := range parts {
				out[i] += p[i]
			}
		}
	}
	return out
}

func forceValues(r sap.ForceRow, sf float64) []float64 {
	return []float64{sf * r.P, sf * r.V2, sf * r.V3, sf * r.T, sf * r.M2, sf * r.M3}
}

func (e *Engine) LinkForce(name string, item sap.ItemType) ([]sap.ForceRow, int) {
	if !e.locked {
		return nil, failed
	}
	links, found := e.targets(name, item, sap.ObjLink)
	if !found {
		return nil, failed
	}
	var out []sap.ForceRow
	for _, c := range e.outputCases() {
		for _, l := range links {
			out = append(out, e.caseLinkForce(c, l)...)
		}
	}
	for _, cname := range e.outputCombos() {
		items := e.comboCases(cname, 1, 0)
		if len(items) == 0 {
			continue
		}
		kind := e.combos[cname].kind
		for _, l := range links {
			base := e.caseLinkForce(items[0].Name, l)
			for row := range base {
				var parts [][]float64
				for _, it := range items {
					rows := e.caseLinkForce(it.Name, l)
					if row < len(rows) {
						parts = append(parts, forceValues(rows[row], it.SF))
					}
				}
				v := combine(kind, parts)
				out = append(out, sap.ForceRow{
					Obj: l, Elm: l, Point: base[row].Point, Case: cname, StepType: "Max",
					P: v[0], V2: v[1], V3: v[2], T: v[3], M2: v[4], M3: v[5],
				})
			}
		}
	}
	return out, ok
}

func (e *Engine) LinkDeformation(name string, item sap.ItemType) ([]sap.DeformRow, int) {
	if !e.locked {
		return nil, failed
	}
	links, found := e.targets(name, item, sap.ObjLink)
	if !found {
		return nil, failed
	}
	var out []sap.DeformRow
	for _, c := range e.outputCases() {
		for _, l := range links {
			rows := e.seedDeform[c][l]
			if rows == nil {
				rows = []sap.DeformRow{{}}
			}
			for _, r := range rows {
				r.Obj, r.Elm, r.Case = l, l, c
				out = append(out, r)
			}
		}
	}
	return out, ok
}

func (e *Engine) FrameJointForce(name string, item sap.ItemType) ([]sap.JointRow, int) {
	if !e.locked {
		return nil, failed
	}
	frames, found := e.targets(name, item, sap.ObjFrame)
	if !found {
		return nil, failed
	}
	var out []sap.JointRow
	for _, c := range e.outputCases() {
		for _, f := range frames {
			fr := e.frames[f]
			out = append(out,
				sap.JointRow{Obj: f, Elm: fr.i, Case: c},
				sap.JointRow{Obj: f, Elm: fr.j, Case: c})
		}
	}
	return out, ok
}

func jointValues(r sap.JointRow, sf float64) []float64 {
	return []float64{sf * r.F1, sf * r.F2, sf * r.F3, sf * r.M1, sf * r.M2, sf * r.M3}
}

func (e *Engine) caseReaction(caseName, pointName string) sap.JointRow {
	var r sap.JointRow
	if rows := e.seedReaction[caseName][pointName]; len(rows) > 0 {
		r = rows[0]
	}
	r.Obj, r.Elm, r.Case = pointName, pointName, caseName
	return r
}

func (e *Engine) JointReaction(name string, item sap.ItemType) ([]sap.JointRow, int) {
	if !e.locked {
		return nil, failed
	}
	points, found := e.targets(name, item, sap.ObjPoint)
	if !found {
		return nil, failed
	}
	var out []sap.JointRow
	for _, c := range e.outputCases() {
		for _, p := range points {
			out = append(out, e.caseReaction(c, p))
		}
	}
	for _, cname := range e.outputCombos() {
		items := e.comboCases(cname, 1, 0)
		if len(items) == 0 {
			continue
		}
		kind := e.combos[cname].kind
		for _, p := range points {
			var parts [][]float64
			for _, it := range items {
				parts = append(parts, jointValues(e.caseReaction(it.Name, p), it.SF))
			}
			v := combine(kind, parts)
			out = append(out, sap.JointRow{
				Obj: p, Elm: p, Case: cname, StepType: "Max",
				F1: v[0], F2: v[1], F3: v[2], M1: v[3], M2: v[4], M3: v[5],
			})
		}
	}
	return out, ok
}

func (e *Engine) ModalParticipatingMassRatios() (sap.ModalRatios, int) {
	if !e.locked {
		return sap.ModalRatios{}, failed
	}
	if e.seedModal == nil {
		return sap.ModalRatios{}, ok
	}
	return *e.seedModal, ok
}
