package section

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/alexiusacademia/gobridge/internal/material"
	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Rigid link defaults
const (
	RigidName      = "RigidLink"
	RigidStiffness = 1e7
	RigidArea      = 0.01
)

type rigidKey struct {
	name      string
	stiffness float64
}

// Catalog owns the sections emitted into one model
type Catalog struct {
	m        *sap.Model
	sections map[string]*Section
	rigid    map[rigidKey]*Section
}

// NewCatalog creates an empty catalog bound to a model
func NewCatalog(m *sap.Model) *Catalog {
	return &Catalog{
		m:        m,
		sections: make(map[string]*Section),
		rigid:    make(map[rigidKey]*Section),
	}
}

// Model returns the model the catalog emits into
func (c *Catalog) Model() *sap.Model { return c.m }

// Define registers s and emits it unless the engine already has it.
// Non-prismatic sections emit their segment sections first.
func (c *Catalog) Define(s *Section) error {
	if old, found := c.sections[s.Name]; found && old != s {
		c.m.Log.Tracef("section %s redefined", s.Name)
	}
	c.sections[s.Name] = s
	if s.IsDefined(c.m) {
		return nil
	}
	if s.Kind == NonPrismatic {
		for _, seg := range s.Segments {
			for _, ref := range []string{seg.Start, seg.End} {
				dep, found := c.sections[ref]
				if !found {
					return c.m.Report(nil, fmt.Errorf("%w: section %s references undefined section %s", sap.ErrDataMissing, s.Name, ref))
				}
				if !dep.IsDefined(c.m) {
					if err := dep.Define(c.m); err != nil {
						return err
					}
				}
			}
		}
	}
	return s.Define(c.m)
}

// Get returns a registered section
func (c *Catalog) Get(name string) (*Section, bool) {
	s, found := c.sections[name]
	return s, found
}

// Names returns the registered section names in order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sections))
	for n := range c.sections {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RigidLink returns the rigid section for (name, stiffness), creating and
// emitting it the first time. An empty name or zero stiffness take the
// package defaults.
func (c *Catalog) RigidLink(name string, stiffness float64) (*Section, error) {
	if name == "" {
		name = RigidName
	}
	if stiffness == 0 {
		stiffness = RigidStiffness
	}
	key := rigidKey{name, stiffness}
	if s, found := c.rigid[key]; found {
		return s, nil
	}
	s := &Section{
		Name:     name,
		Kind:     General,
		Material: material.PierConcrete,
		Units:    sap.KNmC,
		Depth:    1,
		Width:    1,
		Area:     RigidArea,
		J:        stiffness,
		I22:      stiffness,
		I33:      stiffness,
		Notes:    "rigid link",
		NoMass:   true,
	}
	if err := c.Define(s); err != nil {
		return nil, err
	}
	c.rigid[key] = s
	return s, nil
}

// LoadFromFile loads a list of section definitions from a JSON file
func LoadFromFile(filepath string) ([]*Section, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var sections []*Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, err
	}

	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	return sections, nil
}
