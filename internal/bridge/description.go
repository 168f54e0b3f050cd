package bridge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexiusacademia/gobridge/internal/girder"
	"github.com/alexiusacademia/gobridge/internal/pier"
)

// Base kinds of a description
const (
	BaseFixed  = "fixed"
	BaseSpring = "spring"
)

// BaseSpec describes the support of a pier
type BaseSpec struct {
	Kind string `json:"kind"`          // fixed | spring
	Key  string `json:"key,omitempty"` // spring row key, defaults to the pier name
}

// PierSpec describes one pier
type PierSpec struct {
	Name         string         `json:"name"`
	Station      float64        `json:"station"`
	Intermediate bool           `json:"intermediate,omitempty"`
	Geometry     *pier.Geometry `json:"geometry,omitempty"`
	Base         BaseSpec       `json:"base"`
}

// GirderSpec describes one continuous girder
type GirderSpec struct {
	Name         string      `json:"name"`
	Piers        []string    `json:"piers"`
	Fixed        []string    `json:"fixed,omitempty"`
	Plan         girder.Plan `json:"plan"`
	Elements     int         `json:"elements,omitempty"`
	PadThickness float64     `json:"pad_thickness,omitempty"`
	Depth        float64     `json:"depth,omitempty"`
	SpanCount    int         `json:"span_count,omitempty"`
}

// Description is the JSON form of a bridge
type Description struct {
	Name       string       `json:"name"`
	Coupling   string       `json:"coupling,omitempty"`
	SpringFile string       `json:"spring_file,omitempty"`
	Piers      []PierSpec   `json:"piers"`
	Girders    []GirderSpec `json:"girders"`
}

// Validate checks names and references
func (d *Description) Validate() error {
	if len(d.Piers) == 0 {
		return &ValidationError{"bridge must have at least one pier"}
	}
	if _, err := pier.ParseCoupling(d.Coupling); err != nil {
		return &ValidationError{fmt.Sprintf("coupling %q must be frame, body or equal", d.Coupling)}
	}
	seen := make(map[string]bool)
	for i, p := range d.Piers {
		if p.Name == "" {
			return &ValidationError{fmt.Sprintf("pier %d must have a name", i+1)}
		}
		if seen[p.Name] {
			return &ValidationError{fmt.Sprintf("pier %s is defined twice", p.Name)}
		}
		seen[p.Name] = true
		if p.Geometry != nil {
			if err := p.Geometry.Validate(); err != nil {
				return &ValidationError{fmt.Sprintf("pier %s: %v", p.Name, err)}
			}
		}
		switch p.Base.Kind {
		case "", BaseFixed:
		case BaseSpring:
			if d.SpringFile == "" {
				return &ValidationError{fmt.Sprintf("pier %s has a spring base but no spring file is given", p.Name)}
			}
		default:
			return &ValidationError{fmt.Sprintf("pier %s: unknown base kind %q", p.Name, p.Base.Kind)}
		}
	}

	girders := make(map[string]bool)
	for i, g := range d.Girders {
		if g.Name == "" {
			return &ValidationError{fmt.Sprintf("girder %d must have a name", i+1)}
		}
		if girders[g.Name] {
			return &ValidationError{fmt.Sprintf("girder %s is defined twice", g.Name)}
		}
		girders[g.Name] = true
		if len(g.Piers) == 0 {
			return &ValidationError{fmt.Sprintf("girder %s has no piers", g.Name)}
		}
		if g.Plan < girder.PlanI || g.Plan > girder.PlanIII {
			return &ValidationError{fmt.Sprintf("girder %s: plan must be I, II or III", g.Name)}
		}
		for _, name := range append(append([]string(nil), g.Piers...), g.Fixed...) {
			if !seen[name] {
				return &ValidationError{fmt.Sprintf("girder %s references unknown pier %s", g.Name, name)}
			}
		}
	}
	return nil
}

// LoadFromFile reads and validates a bridge description
func LoadFromFile(filepath string) (*Description, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var d Description
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

// ValidationError represents a bridge description error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// FiveSpanScenario returns 16 piers at 90 m with intermediate piers #1, #6,
// #11 and #16, carrying three five-span plan I girders
func FiveSpanScenario() *Description {
	d := &Description{Name: "five-span", Coupling: string(pier.DefaultCoupling)}
	g := pier.DefaultGeometry()
	for i := 1; i <= 16; i++ {
		geo := g
		d.Piers = append(d.Piers, PierSpec{
			Name:         fmt.Sprintf("#%d", i),
			Station:      90 * float64(i-1),
			Intermediate: (i-1)%5 == 0,
			Geometry:     &geo,
			Base:         BaseSpec{Kind: BaseFixed},
		})
	}
	for k := 0; k < 3; k++ {
		gs := GirderSpec{
			Name:  fmt.Sprintf("G%d", k+1),
			Fixed: []string{fmt.Sprintf("#%d", 5*k+3)},
			Plan:  girder.PlanI,
		}
		for i := 5*k + 1; i <= 5*k+6; i++ {
			gs.Piers = append(gs.Piers, fmt.Sprintf("#%d", i))
		}
		d.Girders = append(d.Girders, gs)
	}
	return d
}
