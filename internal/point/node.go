package point

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Tolerance for deciding that two coordinates are the same point (m)
const Tolerance = 1e-6

// Node is a named point of the model
type Node struct {
	Name string
	X    float64
	Y    float64
	Z    float64

	m *sap.Model
}

// Exists reports whether the engine holds a point called name
func Exists(m *sap.Model, name string) bool {
	_, _, _, ret := m.Engine().PointCoord(name)
	return ret == 0
}

// Add creates the point unless it already exists. An existing point keeps
// its coordinates; a mismatch is reported but not treated as an error.
func Add(m *sap.Model, name string, x, y, z float64) (*Node, error) {
	eng := m.Engine()
	if ex, ey, ez, ret := eng.PointCoord(name); ret == 0 {
		if math.Abs(ex-x) > Tolerance || math.Abs(ey-y) > Tolerance || math.Abs(ez-z) > Tolerance {
			m.Log.Warnf("point %s already exists at (%.3f, %.3f, %.3f), requested (%.3f, %.3f, %.3f)",
				name, ex, ey, ez, x, y, z)
		}
		return &Node{Name: name, X: ex, Y: ey, Z: ez, m: m}, nil
	}
	got, ret := eng.AddPoint(x, y, z, name)
	if err := m.Check("PointObj.AddCartesian", ret); err != nil {
		return nil, m.Report(nil, err)
	}
	if got != name {
		m.Log.Warnf("point %s was renamed to %s by the engine", name, got)
	}
	return &Node{Name: got, X: x, Y: y, Z: z, m: m}, nil
}

// Coord returns the position of the node
func (n *Node) Coord() (x, y, z float64) { return n.X, n.Y, n.Z }

// SetMass writes value on each listed dof. Unlisted dofs keep their mass.
func (n *Node) SetMass(value float64, dofs ...sap.DOF) error {
	values := make([]float64, len(dofs))
	for i := range values {
		values[i] = value
	}
	return n.SetMasses(values, dofs...)
}

// SetMasses writes values[i] on dofs[i]
func (n *Node) SetMasses(values []float64, dofs ...sap.DOF) error {
	if len(values) != len(dofs) {
		return n.m.Report(nil, fmt.Errorf("%w: point %s: %d mass values for %d dofs", sap.ErrContract, n.Name, len(values), len(dofs)))
	}
	eng := n.m.Engine()
	mass, ret := eng.PointMass(n.Name)
	if err := n.m.Check("PointObj.GetMass", ret); err != nil {
		return n.m.Report(nil, err)
	}
	for i, d := range dofs {
		mass[d] = values[i]
	}
	return n.m.Report(nil, n.m.Check("PointObj.SetMass", eng.SetPointMass(n.Name, mass, true)))
}

// Mass returns the six mass components of the node
func (n *Node) Mass() ([6]float64, error) {
	mass, ret := n.m.Engine().PointMass(n.Name)
	return mass, n.m.Check("PointObj.GetMass", ret)
}

// Fix sets the restraint set of the node to exactly dofs
func (n *Node) Fix(dofs ...sap.DOF) error {
	return n.m.Report(nil, n.m.Check("PointObj.SetRestraint", n.m.Engine().SetRestraint(n.Name, sap.NewDOFSet(dofs...))))
}

// Distance is the euclidean distance between two nodes
func Distance(a, b *Node) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y) + (a.Z-b.Z)*(a.Z-b.Z))
}
