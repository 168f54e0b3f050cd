package seismic

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/alexiusacademia/gobridge/internal/sap"
)

// Period selection thresholds
const (
	FirstRatio  = 0.1 // per-mode mass ratio of the first control period
	SecondRatio = 0.9 // cumulative mass ratio of the second control period
)

// Directions of the modal ratio table
var Directions = []string{"X", "Y", "Z"}

// Periods are the two Rayleigh control periods of one direction
type Periods struct {
	Dir        string
	First      float64
	Second     float64
	FirstMode  int // 1-based
	SecondMode int
}

// Rayleigh returns proportional damping through both periods
func (p Periods) Rayleigh(d1, d2 float64) *sap.Rayleigh {
	return &sap.Rayleigh{Period1: p.First, Period2: p.Second, Damping1: d1, Damping2: d2}
}

func cumulative(ratio []float64) []float64 {
	out := make([]float64, len(ratio))
	sum := 0.0
	for i, r := range ratio {
		sum += r
		out[i] = sum
	}
	return out
}

// SelectPeriods walks the modes in order (longest period first). The first
// period is that of the first mode whose own ratio exceeds first; the second
// that of the first mode whose cumulative ratio exceeds second.
func SelectPeriods(dir string, periods, ratio, sum []float64, first, second float64) (Periods, error) {
	if len(sum) == 0 {
		sum = cumulative(ratio)
	}
	if len(ratio) != len(periods) || len(sum) != len(periods) {
		return Periods{}, fmt.Errorf("%w: direction %s: %d periods, %d ratios, %d sums", sap.ErrContract, dir, len(periods), len(ratio), len(sum))
	}
	p := Periods{Dir: dir}
	for i := range periods {
		if p.FirstMode == 0 && ratio[i] > first {
			p.First, p.FirstMode = periods[i], i+1
		}
		if p.SecondMode == 0 && sum[i] > second {
			p.Second, p.SecondMode = periods[i], i+1
		}
	}
	if p.FirstMode == 0 {
		return p, fmt.Errorf("%w: direction %s: no mode carries more than %g of the mass", sap.ErrDataMissing, dir, first)
	}
	if p.SecondMode == 0 {
		return p, fmt.Errorf("%w: direction %s: cumulative mass never exceeds %g, add modes", sap.ErrDataMissing, dir, second)
	}
	if p.First < p.Second {
		return p, fmt.Errorf("%w: direction %s: first period %g s (mode %d) is shorter than second period %g s (mode %d)",
			sap.ErrContract, dir, p.First, p.FirstMode, p.Second, p.SecondMode)
	}
	return p, nil
}

// RayleighPeriods selects the control periods of X, Y and Z. Directions
// that fail are returned with their error joined.
func RayleighPeriods(r sap.ModalRatios, first, second float64) (map[string]Periods, error) {
	ratios := map[string][2][]float64{
		"X": {r.UX, r.SumUX},
		"Y": {r.UY, r.SumUY},
		"Z": {r.UZ, r.SumUZ},
	}
	out := make(map[string]Periods)
	var errs []error
	for _, dir := range Directions {
		p, err := SelectPeriods(dir, r.Periods, ratios[dir][0], ratios[dir][1], first, second)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[dir] = p
	}
	return out, errors.Join(errs...)
}

// EffectiveZ is the second control period of vertical excitation
func EffectiveZ(y, z Periods) float64 {
	return math.Min(z.Second, y.Second)
}

// ReadModalRatios reads the participating mass ratios of the last run
func ReadModalRatios(m *sap.Model) (sap.ModalRatios, error) {
	if !m.IsLocked() {
		return sap.ModalRatios{}, m.Report(nil, fmt.Errorf("%w: modal results need an analysed model", sap.ErrContract))
	}
	r, ret := m.Engine().ModalParticipatingMassRatios()
	if err := m.Check("Results.ModalParticipatingMassRatios", ret); err != nil {
		return r, m.Report(nil, err)
	}
	if len(r.Periods) == 0 {
		return r, m.Report(nil, fmt.Errorf("%w: no modal results", sap.ErrDataMissing))
	}
	return r, nil
}

// ReadModalTable reads a text table of mode, period, UX, UY, UZ and
// optionally SumUX, SumUY, SumUZ. Header lines are skipped. Missing sums are
// accumulated.
func ReadModalTable(r io.Reader) (sap.ModalRatios, error) {
	var t sap.ModalRatios
	withSums := false
	err := scan(r, func(line int, v []float64) error {
		if len(v) < 5 {
			return fmt.Errorf("line %d: need mode, period, UX, UY and UZ", line)
		}
		if len(t.Periods) == 0 {
			withSums = len(v) >= 8
		}
		t.Periods = append(t.Periods, v[1])
		t.UX = append(t.UX, v[2])
		t.UY = append(t.UY, v[3])
		t.UZ = append(t.UZ, v[4])
		if withSums {
			if len(v) < 8 {
				return fmt.Errorf("line %d: missing cumulative ratios", line)
			}
			t.SumUX = append(t.SumUX, v[5])
			t.SumUY = append(t.SumUY, v[6])
			t.SumUZ = append(t.SumUZ, v[7])
		}
		return nil
	})
	if err != nil {
		return t, err
	}
	if len(t.Periods) == 0 {
		return t, fmt.Errorf("%w: modal table has no rows", sap.ErrDataMissing)
	}
	if !withSums {
		t.SumUX, t.SumUY, t.SumUZ = cumulative(t.UX), cumulative(t.UY), cumulative(t.UZ)
	}
	return t, nil
}

// LoadModalTable reads a modal table file
func LoadModalTable(path string) (sap.ModalRatios, error) {
	f, err := os.Open(path)
	if err != nil {
		return sap.ModalRatios{}, err
	}
	defer f.Close()
	return ReadModalTable(f)
}
