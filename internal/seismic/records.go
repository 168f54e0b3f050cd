// Package seismic reads ground-motion inputs and defines the seismic load
// cases, functions and combinations of a bridge model.
package seismic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobridge/internal/material"
	"github.com/alexiusacademia/gobridge/internal/sap"
)

// AccelUnit is the unit of acceleration values in a record
type AccelUnit string

const (
	MS2  AccelUnit = "m/s2"
	CMS2 AccelUnit = "cm/s2"
	G    AccelUnit = "g"
)

// ParseAccelUnit accepts m/s2, cm/s2 and g (also m/s^2, gal)
func ParseAccelUnit(s string) (AccelUnit, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "^", "")) {
	case "m/s2", "ms2":
		return MS2, nil
	case "cm/s2", "cms2", "gal":
		return CMS2, nil
	case "g":
		return G, nil
	}
	return "", fmt.Errorf("%w: unknown acceleration unit %q", sap.ErrUnsupported, s)
}

// PerMS2 is the size of one unit in m/s2
func (u AccelUnit) PerMS2() float64 {
	switch u {
	case CMS2:
		return 0.01
	case G:
		return material.Gravity
	}
	return 1
}

// Factor converts values in unit from to unit to
func Factor(from, to AccelUnit) float64 {
	return from.PerMS2() / to.PerMS2()
}

// Spectrum is a response-spectrum curve: period (s) against acceleration
type Spectrum struct {
	Periods []float64
	Values  []float64
}

// Max returns the peak spectral value and its period
func (s *Spectrum) Max() (period, value float64) {
	for i, v := range s.Values {
		if i == 0 || v > value {
			period, value = s.Periods[i], v
		}
	}
	return
}

// At interpolates linearly; outside the table the end values hold
func (s *Spectrum) At(t float64) float64 {
	n := len(s.Periods)
	if n == 0 {
		return 0
	}
	if t <= s.Periods[0] {
		return s.Values[0]
	}
	for i := 1; i < n; i++ {
		if t <= s.Periods[i] {
			a, b := s.Periods[i-1], s.Periods[i]
			return s.Values[i-1] + (s.Values[i]-s.Values[i-1])*(t-a)/(b-a)
		}
	}
	return s.Values[n-1]
}

// Resample returns n values on a uniform period grid from the first to the
// last period
func (s *Spectrum) Resample(n int) []float64 {
	if n < 2 || len(s.Periods) == 0 {
		return append([]float64(nil), s.Values...)
	}
	t0, t1 := s.Periods[0], s.Periods[len(s.Periods)-1]
	out := make([]float64, n)
	for i := range out {
		out[i] = s.At(t0 + (t1-t0)*float64(i)/float64(n-1))
	}
	return out
}

// History is an acceleration time history
type History struct {
	Name   string
	Times  []float64
	Values []float64
}

// Dt returns the first time step (0 for fewer than two samples)
func (h *History) Dt() float64 {
	if len(h.Times) < 2 {
		return 0
	}
	return h.Times[1] - h.Times[0]
}

// Duration is the time of the last sample
func (h *History) Duration() float64 {
	if len(h.Times) == 0 {
		return 0
	}
	return h.Times[len(h.Times)-1]
}

// Scale multiplies every value by f
func (h *History) Scale(f float64) {
	for i := range h.Values {
		h.Values[i] *= f
	}
}

// numbers parses every field of a line; ok is false when a field is not a number
func numbers(line string) (out []float64, ok bool) {
	for _, f := range strings.Fields(line) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, len(out) > 0
}

// scan calls fn with the numeric fields of every line from the first fully
// numeric one on. Leading header lines and blank lines are skipped.
func scan(r io.Reader, fn func(line int, v []float64) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	started := false
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, ok := numbers(text)
		if !ok {
			if !started {
				continue
			}
			return fmt.Errorf("line %d: %q is not numeric", line, text)
		}
		started = true
		if err := fn(line, v); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadSpectrum reads whitespace-separated (period, value) pairs
func ReadSpectrum(r io.Reader) (*Spectrum, error) {
	s := &Spectrum{}
	err := scan(r, func(line int, v []float64) error {
		if len(v) < 2 {
			return fmt.Errorf("line %d: need period and value", line)
		}
		if n := len(s.Periods); n > 0 && v[0] <= s.Periods[n-1] {
			return fmt.Errorf("line %d: periods must increase", line)
		}
		s.Periods = append(s.Periods, v[0])
		s.Values = append(s.Values, v[1])
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(s.Periods) == 0 {
		return nil, fmt.Errorf("%w: spectrum has no data", sap.ErrDataMissing)
	}
	return s, nil
}

// LoadSpectrum reads a spectrum file
func LoadSpectrum(path string) (*Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ReadSpectrum(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ReadHistory reads a one-column (values at dt) or two-column (time, value)
// record. dt is only used for one-column records.
func ReadHistory(r io.Reader, dt float64) (*History, error) {
	h := &History{}
	columns := 0
	err := scan(r, func(line int, v []float64) error {
		if columns == 0 {
			columns = len(v)
			if columns > 2 {
				columns = 2
			}
			if columns == 1 && dt <= 0 {
				return fmt.Errorf("%w: one-column record needs a positive time step", sap.ErrContract)
			}
		}
		if columns == 1 {
			for _, x := range v {
				h.Times = append(h.Times, float64(len(h.Values))*dt)
				h.Values = append(h.Values, x)
			}
			return nil
		}
		if len(v) < 2 {
			return fmt.Errorf("line %d: need time and value", line)
		}
		h.Times = append(h.Times, v[0])
		h.Values = append(h.Values, v[1])
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(h.Values) == 0 {
		return nil, fmt.Errorf("%w: time history has no data", sap.ErrDataMissing)
	}
	return h, nil
}

// LoadHistory reads a time-history file, naming it after the file
func LoadHistory(path string, dt float64) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h, err := ReadHistory(f, dt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := path[strings.LastIndexAny(path, `/\`)+1:]
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	h.Name = base
	return h, nil
}

// ReadDAT reads aggregated records. Each record starts with a `<N> <dt>`
// line followed by N samples spread over any number of lines. Records are
// named prefix_1, prefix_2, ...
func ReadDAT(r io.Reader, prefix string) ([]*History, error) {
	var (
		out  []*History
		cur  *History
		want int
		dt   float64
	)
	closeRecord := func() error {
		if cur != nil && len(cur.Values) != want {
			return fmt.Errorf("record %s: %d of %d samples", cur.Name, len(cur.Values), want)
		}
		return nil
	}
	err := scan(r, func(line int, v []float64) error {
		if cur == nil || len(cur.Values) == want {
			if err := closeRecord(); err != nil {
				return err
			}
			if len(v) != 2 || v[0] < 1 || v[0] != float64(int(v[0])) || v[1] <= 0 {
				return fmt.Errorf("line %d: expected a `<N> <dt>` record header", line)
			}
			want, dt = int(v[0]), v[1]
			cur = &History{Name: fmt.Sprintf("%s_%d", prefix, len(out)+1)}
			out = append(out, cur)
			return nil
		}
		if len(cur.Values)+len(v) > want {
			return fmt.Errorf("line %d: record %s has more than %d samples", line, cur.Name, want)
		}
		for _, x := range v {
			cur.Times = append(cur.Times, float64(len(cur.Values))*dt)
			cur.Values = append(cur.Values, x)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := closeRecord(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: DAT file has no records", sap.ErrDataMissing)
	}
	return out, nil
}

// LoadDAT reads a DAT file
func LoadDAT(path, prefix string) ([]*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	hs, err := ReadDAT(f, prefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hs, nil
}
