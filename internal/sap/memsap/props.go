package memsap

import (
	"github.com/alexiusacademia/gobridge/internal/sap"
)

// link properties //////////////////////////////////////////////////////////

func (e *Engine) setProp(kind sap.LinkPropKind, d sap.LinkPropData, w sap.WenData) int {
	if e.locked || d.Name == "" {
		return failed
	}
	for i := range d.DOF {
		if !d.DOF[i] && (d.Fixed[i] || d.NonLinear[i]) {
			return failed
		}
		if d.Fixed[i] && d.NonLinear[i] {
			return failed
		}
	}
	lp := &linkProp{kind: kind, data: d, wen: w, curves: make(map[sap.DOF][2][]float64)}
	if old, found := e.linkProps[d.Name]; found && old.kind == kind {
		for dof, c := range old.curves {
			if d.NonLinear[dof] {
				lp.curves[dof] = c
			}
		}
	}
	e.linkProps[d.Name] = lp
	return ok
}

func (e *Engine) SetLinearProp(d sap.LinkPropData) int {
	e.record("PropLink.SetLinear", d.Name, d.DOF, d.Fixed, d.Ke, d.Ce, d.DJ2, d.DJ3)
	d.NonLinear = sap.DOFSet{}
	return e.setProp(sap.LinkLinear, d, sap.WenData{})
}

func (e *Engine) LinearProp(name string) (sap.LinkPropData, int) {
	lp, found := e.linkProps[name]
	if !found || lp.kind != sap.LinkLinear {
		return sap.LinkPropData{}, failed
	}
	return lp.data, ok
}

func (e *Engine) SetMultiElasticProp(d sap.LinkPropData) int {
	e.record("PropLink.SetMultiLinearElastic", d.Name, d.DOF, d.Fixed, d.NonLinear, d.Ke, d.Ce, d.DJ2, d.DJ3)
	return e.setProp(sap.LinkMultiElastic, d, sap.WenData{})
}

func (e *Engine) MultiElasticProp(name string) (sap.LinkPropData, int) {
	lp, found := e.linkProps[name]
	if !found || lp.kind != sap.LinkMultiElastic {
		return sap.LinkPropData{}, failed
	}
	return lp.data, ok
}

func (e *Engine) SetMultiLinearPoints(name string, dof sap.DOF, disp, force []float64, hysteresis string) int {
	e.record("PropLink.SetMultiLinearPoints", name, dof, disp, force, hysteresis)
	lp, found := e.linkProps[name]
	if e.locked || !found || lp.kind != sap.LinkMultiElastic {
		return failed
	}
	if dof < sap.U1 || dof > sap.R3 || !lp.data.NonLinear[dof] {
		return failed
	}
	if len(disp) != len(force) || len(disp) < 2 {
		return failed
	}
	for i := 1; i < len(disp); i++ {
		if disp[i] <= disp[i-1] {
			return failed
		}
	}
	lp.curves[dof] = [2][]float64{append([]float64(nil), disp...), append([]float64(nil), force...)}
	return ok
}

func (e *Engine) MultiLinearPoints(name string, dof sap.DOF) ([]float64, []float64, int) {
	lp, found := e.linkProps[name]
	if !found || lp.kind != sap.LinkMultiElastic {
		return nil, nil, failed
	}
	c, found := lp.curves[dof]
	if !found {
		return nil, nil, failed
	}
	return append([]float64(nil), c[0]...), append([]float64(nil), c[1]...), ok
}

func (e *Engine) SetPlasticWenProp(d sap.LinkPropData, w sap.WenData) int {
	e.record("PropLink.SetPlasticWen", d.Name, d.DOF, d.Fixed, d.NonLinear, d.Ke, d.Ce, w.K, w.Yield, w.Ratio, w.Exp, d.DJ2, d.DJ3)
	for i := range w.Exp {
		if d.NonLinear[i] && (w.Exp[i] < 1 || w.Yield[i] < 0 || w.K[i] < 0) {
			return failed
		}
	}
	return e.setProp(sap.LinkPlasticWen, d, w)
}

func (e *Engine) PlasticWenProp(name string) (sap.LinkPropData, sap.WenData, int) {
	lp, found := e.linkProps[name]
	if !found || lp.kind != sap.LinkPlasticWen {
		return sap.LinkPropData{}, sap.WenData{}, failed
	}
	return lp.data, lp.wen, ok
}

func (e *Engine) LinkPropType(name string) (sap.LinkPropKind, int) {
	lp, found := e.linkProps[name]
	if !found {
		return 0, failed
	}
	return lp.kind, ok
}

func (e *Engine) LinkPropNames() ([]string, int) {
	return sortedKeys(e.linkProps), ok
}

// constraints //////////////////////////////////////////////////////////////

func (e *Engine) SetBodyConstraint(name string, dof sap.DOFSet) int {
	e.record("ConstraintDef.SetBody", name, dof)
	if e.locked || name == "" {
		return failed
	}
	e.constraints[name] = dof
	return ok
}

func (e *Engine) SetEqualConstraint(name string, dof sap.DOFSet) int {
	e.record("ConstraintDef.SetEqual", name, dof)
	if e.locked || name == "" {
		return failed
	}
	e.constraints[name] = dof
	return ok
}

func (e *Engine) AssignPointConstraint(pointName, constraint string, replace bool) int {
	e.record("PointObj.SetConstraint", pointName, constraint, replace)
	p, found := e.points[pointName]
	if e.locked || !found {
		return failed
	}
	if _, found := e.constraints[constraint]; !found {
		return failed
	}
	if replace {
		p.constrs = nil
	}
	if !sap.Contains(p.constrs, constraint) {
		p.constrs = append(p.constrs, constraint)
	}
	return ok
}

func (e *Engine) PointConstraints(pointName string) ([]string, int) {
	p, found := e.points[pointName]
	if !found {
		return nil, failed
	}
	return append([]string(nil), p.constrs...), ok
}

// groups ///////////////////////////////////////////////////////////////////

func (e *Engine) SetGroup(name string) int {
	e.record("GroupDef.SetGroup", name)
	if name == "" {
		return failed
	}
	if _, found := e.groups[name]; !found {
		e.groups[name] = nil
	}
	return ok
}

func (e *Engine) exists(kind sap.ObjectKind, name string) bool {
	switch kind {
	case sap.ObjPoint:
		return e.points[name] != nil
	case sap.ObjFrame:
		return e.frames[name] != nil
	case sap.ObjLink:
		return e.links[name] != nil
	}
	return false
}

func (e *Engine) AssignToGroup(kind sap.ObjectKind, name, group string) int {
	e.record("SetGroupAssign", kind, name, group)
	members, found := e.groups[group]
	if !found || !e.exists(kind, name) {
		return failed
	}
	c := sap.Connection{Kind: kind, Name: name}
	for _, m := range members {
		if m == c {
			return ok
		}
	}
	e.groups[group] = append(members, c)
	return ok
}

func (e *Engine) ClearGroup(name string) int {
	e.record("GroupDef.Clear", name)
	if _, found := e.groups[name]; !found {
		return failed
	}
	e.groups[name] = nil
	return ok
}

func (e *Engine) GroupAssignments(name string) ([]sap.Connection, int) {
	members, found := e.groups[name]
	if !found {
		return nil, failed
	}
	return append([]sap.Connection(nil), members...), ok
}
