package base

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/point"
	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Kind discriminates the base variants
type Kind int

const (
	Fixed Kind = iota + 1
	SixSpring
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case SixSpring:
		return "spring"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Base is the support below a pier cap
type Base struct {
	Kind Kind

	// Fixed: restrained dofs
	Restraint []sap.DOF

	// SixSpring: data source and row key
	Table *SpringTable
	File  string
	Key   string

	node *point.Node
}

// NewFixed restrains the listed dofs (all six when none given)
func NewFixed(dofs ...sap.DOF) *Base {
	if len(dofs) == 0 {
		dofs = sap.AllDOF.List()
	}
	return &Base{Kind: Fixed, Restraint: dofs}
}

// NewSpring reads the coupled spring of row key from a data file at build time
func NewSpring(file, key string) *Base {
	return &Base{Kind: SixSpring, File: file, Key: key}
}

// NewSpringFromTable uses an already parsed table
func NewSpringFromTable(t *SpringTable, key string) *Base {
	return &Base{Kind: SixSpring, Table: t, Key: key}
}

// ConnectWith binds the base to the node it supports
func (b *Base) ConnectWith(n *point.Node) { b.node = n }

// Node returns the supported node (nil before ConnectWith)
func (b *Base) Node() *point.Node { return b.node }

// Build emits the restraint or the coupled spring at the node
func (b *Base) Build(m *sap.Model) error {
	if b.node == nil {
		return m.Report(nil, fmt.Errorf("%w: base is not connected to a node", sap.ErrContract))
	}
	switch b.Kind {
	case Fixed:
		return b.node.Fix(b.Restraint...)
	case SixSpring:
		return b.buildSpring(m)
	}
	return m.Report(nil, fmt.Errorf("%w: base kind %v", sap.ErrUnsupported, b.Kind))
}

func (b *Base) buildSpring(m *sap.Model) error {
	t := b.Table
	if t == nil {
		var err error
		if t, err = LoadSpringTable(b.File); err != nil {
			return m.Report(nil, fmt.Errorf("%w: spring file: %v", sap.ErrDataMissing, err))
		}
		b.Table = t
	}
	row, found := t.Find(b.Key)
	if !found {
		return m.Report(nil, fmt.Errorf("%w: no spring row for %q (node %s)", sap.ErrDataMissing, b.Key, b.node.Name))
	}
	k, err := row.Coupled()
	if err != nil {
		return m.Report(nil, err)
	}
	if !PositiveDefinite(StiffnessMatrix(k)) {
		m.Log.Warnf("spring %q at %s is not positive definite", row.Key, b.node.Name)
	}
	m.Log.Tracef("spring %q (line %d) -> %s", row.Key, row.Line, b.node.Name)
	return m.Report(nil, m.WithUnits(sap.KNmC, func() error {
		return m.Check("PointObj.SetSpringCoupled", m.Engine().SetSpringCoupled(b.node.Name, k, true))
	}))
}
