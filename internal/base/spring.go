package base

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobridge/internal/sap"
	"gonum.org/v1/gonum/mat"
)

// SpringTerms is the number of lower-triangular terms of a 6x6 matrix
const SpringTerms = 21

// SpringRow is one record of a spring data file
type SpringRow struct {
	Key    string
	Values []float64 // lower triangle, row by row; empty cells are 0
	Tag    string    // coordinate tag, normally GLOBAL
	Line   int
}

// SpringTable holds the records of a spring data file in file order
type SpringTable struct {
	Rows []SpringRow
}

// ParseSpringTable reads tab-separated records: key, the matrix terms and a
// trailing tag. Lines whose terms are not numeric (headers) are skipped.
func ParseSpringTable(r io.Reader) (*SpringTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	t := &SpringTable{}
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("spring table line %d: %w", line, err)
		}
		if len(rec) < 2 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		row, ok := parseRow(rec)
		if !ok {
			continue
		}
		row.Line = line
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func parseRow(rec []string) (SpringRow, bool) {
	row := SpringRow{Key: strings.TrimSpace(rec[0])}
	cells := rec[1:]
	last := strings.TrimSpace(cells[len(cells)-1])
	if _, err := strconv.ParseFloat(last, 64); err != nil && last != "" {
		row.Tag = last
		cells = cells[:len(cells)-1]
	}
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			row.Values = append(row.Values, 0)
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return row, false
		}
		row.Values = append(row.Values, v)
	}
	return row, true
}

// LoadSpringTable reads a spring data file
func LoadSpringTable(path string) (*SpringTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSpringTable(f)
}

// suffix returns the part of a key after its last '#'
func suffix(key string) string {
	key = strings.TrimSpace(key)
	if i := strings.LastIndex(key, "#"); i >= 0 {
		return strings.TrimSpace(key[i+1:])
	}
	return key
}

// Find returns the row whose key equals key, or failing that the first row
// whose key suffix after '#' equals the suffix of key.
func (t *SpringTable) Find(key string) (SpringRow, bool) {
	key = strings.TrimSpace(key)
	for _, r := range t.Rows {
		if r.Key == key {
			return r, true
		}
	}
	want := suffix(key)
	for _, r := range t.Rows {
		if suffix(r.Key) == want {
			return r, true
		}
	}
	return SpringRow{}, false
}

// Coupled checks the value count and returns the 21 terms
func (r SpringRow) Coupled() ([SpringTerms]float64, error) {
	var k [SpringTerms]float64
	if len(r.Values) != SpringTerms {
		return k, fmt.Errorf("%w: spring row %q has %d values, want %d", sap.ErrDataMissing, r.Key, len(r.Values), SpringTerms)
	}
	copy(k[:], r.Values)
	return k, nil
}

// StiffnessMatrix expands the 21 lower-triangular terms into a symmetric matrix
func StiffnessMatrix(k [SpringTerms]float64) *mat.SymDense {
	s := mat.NewSymDense(6, nil)
	n := 0
	for i := 0; i < 6; i++ {
		for j := 0; j <= i; j++ {
			s.SetSym(i, j, k[n])
			n++
		}
	}
	return s
}

// PositiveDefinite reports whether the spring matrix admits a Cholesky factorization
func PositiveDefinite(s *mat.SymDense) bool {
	var chol mat.Cholesky
	return chol.Factorize(s)
}
