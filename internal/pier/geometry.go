package pier

import (
	"fmt"
)

// Side is one leg of the twin-leg pier
type Side string

const (
	Left  Side = "left"  // y < 0
	Right Side = "right" // y > 0
)

// Sides lists both legs, left first
var Sides = [2]Side{Left, Right}

// Sign is -1 for the left leg and +1 for the right leg
func (s Side) Sign() float64 {
	if s == Left {
		return -1
	}
	return 1
}

// CapTolerance is the cap height below which no cap block is emitted
const CapTolerance = 1e-3

// Geometry is the envelope of a double-box hollow pier (m)
type Geometry struct {
	Height         float64 `json:"height"`          // leg height above the cap
	CapHeight      float64 `json:"cap_height"`      // 0 for no cap block
	BottomSolid    float64 `json:"bottom_solid"`    // solid length at the leg bottom
	TopSolid       float64 `json:"top_solid"`       // solid length at the leg top
	HollowCount    int     `json:"hollow_count"`    // hollow elements per leg
	Spacing        float64 `json:"spacing"`         // distance between leg axes
	BearingSpacing float64 `json:"bearing_spacing"` // distance between inner and outer pads
	Offset         float64 `json:"offset"`          // longitudinal pad offset on intermediate piers
	Elevation      float64 `json:"elevation"`       // base node z

	// Cross sections
	LegWidth  float64 `json:"leg_width"` // transverse
	LegDepth  float64 `json:"leg_depth"` // longitudinal
	Wall      float64 `json:"wall"`
	CapWidth  float64 `json:"cap_width,omitempty"`
	CapLength float64 `json:"cap_length,omitempty"`
}

// DefaultGeometry is the tall twin-leg pier of the five-span reference bridge
func DefaultGeometry() Geometry {
	return Geometry{
		Height:         60.9,
		CapHeight:      4.0,
		BottomSolid:    2.0,
		TopSolid:       3.0,
		HollowCount:    3,
		Spacing:        20.75,
		BearingSpacing: 7.0,
		Offset:         1.0,
		LegWidth:       9.0,
		LegDepth:       6.5,
		Wall:           0.8,
	}
}

// Validate checks the geometric envelope
func (g Geometry) Validate() error {
	if g.HollowCount < 1 {
		return fmt.Errorf("hollow element count must be at least 1, got %d", g.HollowCount)
	}
	if g.BottomSolid <= 0 || g.TopSolid <= 0 {
		return fmt.Errorf("solid segment lengths must be positive")
	}
	if g.Height <= g.BottomSolid+g.TopSolid {
		return fmt.Errorf("height %.3f leaves no room for the hollow segment", g.Height)
	}
	if g.Spacing <= 0 {
		return fmt.Errorf("leg spacing must be positive")
	}
	if g.BearingSpacing < 0 || g.Offset < 0 || g.CapHeight < 0 {
		return fmt.Errorf("bearing spacing, offset and cap height cannot be negative")
	}
	if g.LegWidth <= 0 || g.LegDepth <= 0 || g.Wall <= 0 {
		return fmt.Errorf("leg section dimensions must be positive")
	}
	if 2*g.Wall >= g.LegWidth || 2*g.Wall >= g.LegDepth {
		return fmt.Errorf("wall %.3f is too thick for a %.3f x %.3f leg", g.Wall, g.LegWidth, g.LegDepth)
	}
	return nil
}

// HasCap reports whether the cap block is emitted
func (g Geometry) HasCap() bool { return g.CapHeight > CapTolerance }

// capWidth is the transverse cap size, covering both legs when not given
func (g Geometry) capWidth() float64 {
	if g.CapWidth > 0 {
		return g.CapWidth
	}
	return g.Spacing + g.LegWidth + 2
}

// capLength is the longitudinal cap size
func (g Geometry) capLength() float64 {
	if g.CapLength > 0 {
		return g.CapLength
	}
	return g.LegDepth + 2
}

// CapArea is the plan area of the cap block
func (g Geometry) CapArea() float64 { return g.capWidth() * g.capLength() }

// LegBottom is the elevation of the leg bottoms
func (g Geometry) LegBottom() float64 {
	if g.HasCap() {
		return g.Elevation + g.CapHeight
	}
	return g.Elevation
}

// Top is the elevation of the leg tops and the bearing pads
func (g Geometry) Top() float64 { return g.LegBottom() + g.Height }

// LegLevels returns the role and elevation of every longitudinal leg node,
// bottom to top. There are 5 + (HollowCount-1) of them.
func (g Geometry) LegLevels() (roles []string, z []float64) {
	z0 := g.LegBottom()
	hb := z0 + g.BottomSolid
	ht := z0 + g.Height - g.TopSolid

	roles = append(roles, "Bottom", "BottomMiddle", "HollowBottom")
	z = append(z, z0, z0+g.BottomSolid/2, hb)

	// N-1 evenly spaced intermediate nodes, numbered from 0
	n := g.HollowCount
	for k := 1; k < n; k++ {
		roles = append(roles, fmt.Sprintf("HollowMiddle_%d", k-1))
		z = append(z, hb+float64(k)*(ht-hb)/float64(n))
	}

	roles = append(roles, "HollowTop", "Top")
	z = append(z, ht, z0+g.Height)
	return
}
