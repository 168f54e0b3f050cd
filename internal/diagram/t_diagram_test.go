package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobridge/internal/bearing"
	"github.com/alexiusacademia/gobridge/internal/seismic"
	"github.com/cpmech/gosl/chk"
)

var spectrum = &seismic.Spectrum{
	Periods: []float64{0, 0.1, 0.5, 2},
	Values:  []float64{0.4, 1, 1, 0.25},
}

func Test_diagram01(tst *testing.T) {

	chk.PrintTitle("diagram01. terminal charts")

	out := ASCIISpectrum(spectrum, "E2")
	if !strings.Contains(out, "E2  T = 0.00 .. 2.00 s") {
		tst.Errorf("caption missing:\n%s", out)
	}
	if ASCIISpectrum(&seismic.Spectrum{}, "none") != "" {
		tst.Errorf("empty spectrum should draw nothing")
	}

	c := bearing.Wen{K: 40000, Yield: 100}.Backbone(0.01)
	out = ASCIIBackbone(c, "B1 U2")
	if !strings.Contains(out, "B1 U2") {
		tst.Errorf("backbone caption missing:\n%s", out)
	}

	h := &seismic.History{Name: "W_1", Times: make([]float64, 500), Values: make([]float64, 500)}
	for i := range h.Times {
		h.Times[i] = 0.01 * float64(i)
		h.Values[i] = float64(i%7) - 3
	}
	if !strings.Contains(ASCIIHistory(h), "W_1  500 steps") {
		tst.Errorf("history caption missing")
	}

	box := DrawSummaryBox("Bearing", []string{"Fy = 100.0 kN"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	chk.Int(tst, "box lines", len(lines), 5)
	n := len([]rune(lines[0]))
	for _, l := range lines {
		chk.Int(tst, "box width", len([]rune(l)), n)
	}
}

func Test_diagram02(tst *testing.T) {

	chk.PrintTitle("diagram02. image export")

	dir := tst.TempDir()
	path := filepath.Join(dir, "plots", "spectrum.png")
	if err := ExportSpectrum(spectrum, "E2", "g", path); err != nil {
		tst.Errorf("spectrum: %v", err)
		return
	}
	if _, err := os.Stat(path); err != nil {
		tst.Errorf("spectrum image missing: %v", err)
	}

	c := bearing.Curve{Disp: []float64{-1, -0.0025, 0, 0.0025, 1}, Force: []float64{-50, -50, 0, 50, 50}}
	if err := ExportBackbone("B1", c, filepath.Join(dir, "b1")); err != nil {
		tst.Errorf("backbone: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b1.png")); err != nil {
		tst.Errorf("unknown extension should fall back to png: %v", err)
	}

	if err := ExportBackbone("bad", bearing.Curve{Disp: []float64{0}}, filepath.Join(dir, "bad.png")); err == nil {
		tst.Errorf("single point backbone should be rejected")
	}
	if err := ExportSpectrum(&seismic.Spectrum{}, "none", "g", filepath.Join(dir, "none.svg")); err == nil {
		tst.Errorf("empty spectrum should be rejected")
	}
}
