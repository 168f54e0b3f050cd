package memsap

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

func (e *Engine) record(verb string, args ...interface{}) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	e.script = append(e.script, verb+"("+strings.Join(parts, ", ")+")")
}

// Script returns every verb received since construction, in order
func (e *Engine) Script() []string {
	return append([]string(nil), e.script...)
}

// Calls counts the recorded calls of one verb
func (e *Engine) Calls(verb string) int {
	n := 0
	prefix := verb + "("
	for _, s := range e.script {
		if strings.HasPrefix(s, prefix) {
			n++
		}
	}
	return n
}

// WriteScript writes the recorded verbs, one per line
func (e *Engine) WriteScript(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, s := range e.script {
		if _, err := fmt.Fprintf(bw, "%5d  %s\n", i+1, s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Stats counts the objects held by the model
type Stats struct {
	Points      int
	Frames      int
	Links       int
	Sections    int
	LinkProps   int
	Constraints int
	Groups      int
	Cases       int
	Combos      int
}

// Stats returns the object counts of the model
func (e *Engine) Stats() Stats {
	return Stats{
		Points:      len(e.points),
		Frames:      len(e.frames),
		Links:       len(e.links),
		Sections:    len(e.sections),
		LinkProps:   len(e.linkProps),
		Constraints: len(e.constraints),
		Groups:      len(e.groups),
		Cases:       len(e.cases),
		Combos:      len(e.combos),
	}
}

// Connected reports whether obj is attached to point
func (e *Engine) Connected(pointName string, obj sap.Connection) bool {
	p := e.points[pointName]
	if p == nil {
		return false
	}
	for _, c := range p.conns {
		if c == obj {
			return true
		}
	}
	return false
}
