package bearing

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Ideal linear stiffnesses (kN/m)
const (
	Stiff = 1e7
	Soft  = 1.0
	GapK  = 1e-3
)

// Ideal template names. In link local axes U1 is vertical, U2 longitudinal
// and U3 transverse.
const (
	IdealFixed   = "Fixed"
	YSliding     = "y_sliding"
	XSliding     = "x_sliding"
	BothSliding  = "Both_sliding"
	IdealGap     = "gap"
	idealNoteFmt = "ideal %s bearing"
)

var idealKe = map[string][6]float64{
	IdealFixed:  {Stiff, Stiff, Stiff},
	YSliding:    {Stiff, Stiff, Soft},
	XSliding:    {Stiff, Soft, Stiff},
	BothSliding: {Stiff, Soft, Soft},
	IdealGap:    {GapK, 0, 0},
}

// IdealNames lists the ideal templates
var IdealNames = []string{IdealFixed, YSliding, XSliding, BothSliding, IdealGap}

// Ideal returns a fresh linear template. Rotations carry no stiffness and
// nothing is fixed.
func Ideal(name string) (*Prop, error) {
	ke, found := idealKe[name]
	if !found {
		return nil, fmt.Errorf("%w: no ideal bearing called %q", sap.ErrDataMissing, name)
	}
	p := NewLinear(name, ke, sap.U1, sap.U2, sap.U3)
	p.Notes = fmt.Sprintf(idealNoteFmt, name)
	return p, nil
}

// InnerOuter returns the ideal templates for the inner and outer bearings
// of a pier side: fixed piers hold the girder longitudinally.
func InnerOuter(fixed bool) (inner, outer string) {
	if fixed {
		return IdealFixed, YSliding
	}
	return XSliding, BothSliding
}
