package pier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobridge/internal/frame"
	"github.com/alexiusacademia/gobridge/internal/sap"
	"github.com/alexiusacademia/gobridge/internal/section"
)

// Coupling selects how pier legs, caps and bearing pads are tied together
type Coupling string

const (
	CouplingFrame Coupling = "frame" // rigid frame elements
	CouplingBody  Coupling = "body"  // 6-dof body constraint
	CouplingEqual Coupling = "equal" // 6-dof equal constraint
)

// DefaultCoupling is used when nothing else is configured
const DefaultCoupling = CouplingFrame

// ParseCoupling converts a configuration value; empty selects the default
func ParseCoupling(s string) (Coupling, error) {
	switch c := Coupling(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return DefaultCoupling, nil
	case CouplingFrame, CouplingBody, CouplingEqual:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown coupling mode %q (frame, body or equal)", sap.ErrContract, s)
}

// Couple ties slaves to master. In frame mode one rigid element per slave is
// created, named frameNames[i]. In constraint modes one constraint called
// name holds the master and every slave.
func Couple(m *sap.Model, cat *section.Catalog, mode Coupling, name, master string, slaves, frameNames []string) ([]*frame.Frame, error) {
	eng := m.Engine()
	switch mode {
	case CouplingBody, CouplingEqual:
		var ret int
		if mode == CouplingBody {
			name += "_Body"
			ret = eng.SetBodyConstraint(name, sap.AllDOF)
		} else {
			name += "_Equal"
			ret = eng.SetEqualConstraint(name, sap.AllDOF)
		}
		if err := m.Check("ConstraintDef.Set", ret); err != nil {
			return nil, m.Report(nil, err)
		}
		var errs []error
		for _, p := range append([]string{master}, slaves...) {
			errs = append(errs, m.Report(nil, m.Check("PointObj.SetConstraint", eng.AssignPointConstraint(p, name, false))))
		}
		return nil, errors.Join(errs...)
	}

	var (
		frames []*frame.Frame
		errs   []error
	)
	for i, s := range slaves {
		f, err := frame.Rigid(m, cat, master, s, frameNames[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		frames = append(frames, f)
	}
	return frames, errors.Join(errs...)
}
